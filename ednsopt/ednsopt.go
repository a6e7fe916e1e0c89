// Package ednsopt decodes and builds EDNS(0) option values (RFC 6891
// §6.1.2): the (code, length, value) triples carried in an OPT record's
// rdata. Options are opaque to rr.OPT itself; this package gives the
// common ones (NSID, Cookie, Client Subnet) typed accessors.
package ednsopt

import (
	"encoding/binary"
	"errors"
	"net"

	"github.com/dnsscience/dnscore/rr"
)

// Well-known EDNS option codes (RFC 6891, RFC 7871, RFC 7873, RFC 9018).
const (
	CodeNSID         uint16 = 3
	CodeClientSubnet uint16 = 8
	CodeExpire       uint16 = 9
	CodeCookie       uint16 = 10
	CodeTCPKeepalive uint16 = 11
	CodePadding      uint16 = 12
)

var (
	ErrBadOption = errors.New("ednsopt: malformed option data")
	ErrBadSubnet = errors.New("ednsopt: malformed client subnet option")
	ErrBadCookie = errors.New("ednsopt: malformed cookie option")
)

// NSID returns the raw NSID payload carried by opt, if present.
func NSID(opt *rr.OPT) ([]byte, bool) {
	o, ok := opt.Option(CodeNSID)
	if !ok {
		return nil, false
	}
	return o.Data, true
}

// WithNSID appends an NSID option to opt.
func WithNSID(opt *rr.OPT, payload []byte) {
	opt.Options = append(opt.Options, rr.EDNSOption{Code: CodeNSID, Data: payload})
}

// ClientSubnet is the decoded form of an EDNS Client Subnet option
// (RFC 7871).
type ClientSubnet struct {
	Family       uint16 // 1 = IPv4, 2 = IPv6
	SourcePrefix uint8
	ScopePrefix  uint8
	Address      net.IP
}

// Subnet decodes the EDNS Client Subnet option carried by opt, if present.
func Subnet(opt *rr.OPT) (ClientSubnet, bool, error) {
	o, ok := opt.Option(CodeClientSubnet)
	if !ok {
		return ClientSubnet{}, false, nil
	}
	if len(o.Data) < 4 {
		return ClientSubnet{}, true, ErrBadSubnet
	}
	family := binary.BigEndian.Uint16(o.Data[0:2])
	srcPrefix := o.Data[2]
	scopePrefix := o.Data[3]
	addrBytes := o.Data[4:]

	var ip net.IP
	switch family {
	case 1:
		buf := make([]byte, 4)
		copy(buf, addrBytes)
		ip = net.IP(buf)
	case 2:
		buf := make([]byte, 16)
		copy(buf, addrBytes)
		ip = net.IP(buf)
	default:
		return ClientSubnet{}, true, ErrBadSubnet
	}
	return ClientSubnet{Family: family, SourcePrefix: srcPrefix, ScopePrefix: scopePrefix, Address: ip}, true, nil
}

// WithSubnet appends an EDNS Client Subnet option encoding cs to opt. Only
// the bytes covering SourcePrefix bits of the address are encoded, per
// RFC 7871 §6.
func WithSubnet(opt *rr.OPT, cs ClientSubnet) error {
	var addr []byte
	switch cs.Family {
	case 1:
		v4 := cs.Address.To4()
		if v4 == nil {
			return ErrBadSubnet
		}
		addr = v4
	case 2:
		v6 := cs.Address.To16()
		if v6 == nil {
			return ErrBadSubnet
		}
		addr = v6
	default:
		return ErrBadSubnet
	}
	nbytes := (int(cs.SourcePrefix) + 7) / 8
	if nbytes > len(addr) {
		nbytes = len(addr)
	}
	data := make([]byte, 4+nbytes)
	binary.BigEndian.PutUint16(data[0:2], cs.Family)
	data[2] = cs.SourcePrefix
	data[3] = cs.ScopePrefix
	copy(data[4:], addr[:nbytes])
	opt.Options = append(opt.Options, rr.EDNSOption{Code: CodeClientSubnet, Data: data})
	return nil
}

// Cookie is the decoded form of an EDNS Cookie option (RFC 7873 §4,
// RFC 9018).
type Cookie struct {
	Client [8]byte
	Server []byte // 8-32 bytes when present
}

// DecodeCookie parses an EDNS Cookie option's raw value.
func DecodeCookie(data []byte) (Cookie, error) {
	if len(data) < 8 {
		return Cookie{}, ErrBadCookie
	}
	var c Cookie
	copy(c.Client[:], data[:8])
	if len(data) > 8 {
		if len(data) < 16 || len(data) > 40 {
			return Cookie{}, ErrBadCookie
		}
		c.Server = append([]byte(nil), data[8:]...)
	}
	return c, nil
}

// Encode renders a Cookie option's wire value.
func (c Cookie) Encode() []byte {
	data := make([]byte, 8+len(c.Server))
	copy(data[:8], c.Client[:])
	copy(data[8:], c.Server)
	return data
}

// CookieOption returns the decoded Cookie option carried by opt, if present.
func CookieOption(opt *rr.OPT) (Cookie, bool, error) {
	o, ok := opt.Option(CodeCookie)
	if !ok {
		return Cookie{}, false, nil
	}
	c, err := DecodeCookie(o.Data)
	return c, true, err
}

// WithCookie appends a Cookie option to opt.
func WithCookie(opt *rr.OPT, c Cookie) {
	opt.Options = append(opt.Options, rr.EDNSOption{Code: CodeCookie, Data: c.Encode()})
}

// ServerCookieSigner computes a server cookie over a client cookie and the
// client's source address. Callers supply the keyed function (e.g. a
// siphash.New(secret) MAC), so this package holds no secret material or
// rotation policy of its own: that is server/transport state, out of
// scope for a wire-format library.
type ServerCookieSigner func(clientCookie [8]byte, clientIP net.IP) [8]byte

// SignServerCookie builds a Cookie carrying clientCookie and a freshly
// computed server cookie.
func SignServerCookie(sign ServerCookieSigner, clientCookie [8]byte, clientIP net.IP) Cookie {
	sc := sign(clientCookie, clientIP)
	return Cookie{Client: clientCookie, Server: sc[:]}
}
