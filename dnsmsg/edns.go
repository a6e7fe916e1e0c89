package dnsmsg

import "github.com/dnsscience/dnscore/rr"

// NewOPT builds a bare EDNS(0) OPT record advertising udpSize, with the
// given EDNS version and DO bit, no options, and the extended RCODE left
// zero.
func NewOPT(udpSize uint16, version uint8, do bool) *rr.OPT {
	opt := &rr.OPT{}
	opt.H.Name = "."
	opt.H.Type = rr.TypeOPT
	opt.SetUDPSize(udpSize)
	opt.SetVersion(version)
	opt.SetDO(do)
	return opt
}

// SetEDNS replaces any existing OPT record in the additional section with
// opt, or appends it if none is present.
func (m *Message) SetEDNS(opt *rr.OPT) {
	if _, i := m.EDNS(); i >= 0 {
		m.Additional[i] = opt
		return
	}
	m.Additional = append(m.Additional, opt)
}
