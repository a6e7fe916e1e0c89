package rr

import (
	"encoding/hex"
	"fmt"

	"github.com/dnsscience/dnscore/dnswire"
)

// EDNSOption is one (code, length, value) entry in an OPT record's rdata
// (RFC 6891 §6.1.2).
type EDNSOption struct {
	Code uint16
	Data []byte
}

// OPT is the EDNS(0) pseudo-record (RFC 6891). Unlike every other RR, its
// header fields are repurposed: Class carries the requestor's UDP payload
// size and TTL packs the extended RCODE, version, and the DO bit. Header
// is otherwise an ordinary rr.Header so OPT packs/unpacks through the same
// Pack/Unpack path as any other record; dnsmsg is responsible for pulling
// one out of the additional section and interpreting it.
type OPT struct {
	H       Header
	Options []EDNSOption
}

func (r *OPT) Hdr() *Header { return &r.H }

func (r *OPT) RdataString() string {
	s := ""
	for i, o := range r.Options {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%d:%x", o.Code, o.Data)
	}
	return s
}

func (r *OPT) Canonicalize() {}

func (r *OPT) RdataJSON() map[string]any {
	opts := make([]map[string]any, len(r.Options))
	for i, o := range r.Options {
		opts[i] = map[string]any{"code": o.Code, "data": hex.EncodeToString(o.Data)}
	}
	return map[string]any{
		"udpSize":       r.UDPSize(),
		"extendedRcode": r.ExtendedRcode(),
		"version":       r.Version(),
		"do":            r.DO(),
		"options":       opts,
	}
}

func (r *OPT) Clone() RR {
	c := &OPT{H: r.H, Options: make([]EDNSOption, len(r.Options))}
	for i, o := range r.Options {
		c.Options[i] = EDNSOption{Code: o.Code, Data: append([]byte(nil), o.Data...)}
	}
	return c
}

func (r *OPT) PackRdata(w *dnswire.Writer) error {
	for _, o := range r.Options {
		w.Uint16(o.Code)
		w.Uint16(uint16(len(o.Data)))
		w.Bytes(o.Data)
	}
	return nil
}

func (r *OPT) UnpackRdata(src *dnswire.Reader) error {
	r.Options = nil
	for src.Len() > 0 {
		code, err := src.Uint16()
		if err != nil {
			return err
		}
		l, err := src.Uint16()
		if err != nil {
			return err
		}
		data, err := src.Bytes(int(l))
		if err != nil {
			return err
		}
		r.Options = append(r.Options, EDNSOption{Code: code, Data: data})
	}
	return nil
}

// UDPSize returns the requestor's advertised UDP payload size.
func (r *OPT) UDPSize() uint16 { return r.H.Class }

// SetUDPSize stores the requestor's advertised UDP payload size.
func (r *OPT) SetUDPSize(v uint16) { r.H.Class = v }

// ExtendedRcode returns the high 8 bits of the 12-bit extended RCODE.
func (r *OPT) ExtendedRcode() uint8 { return uint8(r.H.TTL >> 24) }

// SetExtendedRcode stores the high 8 bits of the 12-bit extended RCODE.
func (r *OPT) SetExtendedRcode(v uint8) {
	r.H.TTL = (r.H.TTL &^ (0xFF << 24)) | uint32(v)<<24
}

// Version returns the EDNS version.
func (r *OPT) Version() uint8 { return uint8(r.H.TTL >> 16) }

// SetVersion stores the EDNS version.
func (r *OPT) SetVersion(v uint8) {
	r.H.TTL = (r.H.TTL &^ (0xFF << 16)) | uint32(v)<<16
}

// DO reports the DNSSEC-OK bit.
func (r *OPT) DO() bool { return r.H.TTL&0x00008000 != 0 }

// SetDO sets or clears the DNSSEC-OK bit.
func (r *OPT) SetDO(do bool) {
	if do {
		r.H.TTL |= 0x00008000
	} else {
		r.H.TTL &^= 0x00008000
	}
}

// Option returns the first option with the given code, if present.
func (r *OPT) Option(code uint16) (EDNSOption, bool) {
	for _, o := range r.Options {
		if o.Code == code {
			return o, true
		}
	}
	return EDNSOption{}, false
}

func init() {
	Register(TypeOPT, func() RR { return &OPT{} })
}
