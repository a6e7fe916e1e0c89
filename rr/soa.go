package rr

import (
	"fmt"

	"github.com/dnsscience/dnscore/dnswire"
	"github.com/dnsscience/dnscore/present"
)

// SOA is the start-of-authority record (RFC 1035 §3.3.13).
type SOA struct {
	H       Header
	Ns      string
	Mbox    string
	Serial  uint32
	Refresh uint32
	Retry   uint32
	Expire  uint32
	Minttl  uint32
}

func (r *SOA) Hdr() *Header { return &r.H }

func (r *SOA) RdataString() string {
	return fmt.Sprintf("%s %s %d %d %d %d %d", r.Ns, r.Mbox, r.Serial, r.Refresh, r.Retry, r.Expire, r.Minttl)
}

func (r *SOA) Canonicalize() {
	r.Ns = lowerName(r.Ns)
	r.Mbox = lowerName(r.Mbox)
}

func (r *SOA) Clone() RR { c := *r; return &c }

func (r *SOA) RdataJSON() map[string]any {
	return map[string]any{
		"ns": r.Ns, "mbox": r.Mbox, "serial": r.Serial,
		"refresh": r.Refresh, "retry": r.Retry, "expire": r.Expire, "minimum": r.Minttl,
	}
}

func (r *SOA) PackRdata(w *dnswire.Writer) error {
	if err := w.Name(r.Ns); err != nil {
		return err
	}
	if err := w.Name(r.Mbox); err != nil {
		return err
	}
	w.Uint32(r.Serial)
	w.Uint32(r.Refresh)
	w.Uint32(r.Retry)
	w.Uint32(r.Expire)
	w.Uint32(r.Minttl)
	return nil
}

func (r *SOA) UnpackRdata(src *dnswire.Reader) error {
	var err error
	if r.Ns, err = src.Name(); err != nil {
		return err
	}
	if r.Mbox, err = src.Name(); err != nil {
		return err
	}
	if r.Serial, err = src.Uint32(); err != nil {
		return err
	}
	if r.Refresh, err = src.Uint32(); err != nil {
		return err
	}
	if r.Retry, err = src.Uint32(); err != nil {
		return err
	}
	if r.Expire, err = src.Uint32(); err != nil {
		return err
	}
	r.Minttl, err = src.Uint32()
	return err
}

func init() {
	Register(TypeSOA, func() RR { return &SOA{} })
	RegisterParser(TypeSOA, func(tokens []string) (RR, error) {
		if len(tokens) < 7 {
			return nil, fmt.Errorf("rr: SOA needs 7 fields, got %d", len(tokens))
		}
		serial, err := present.ParseUint(tokens[2], 32)
		if err != nil {
			return nil, err
		}
		refresh, err := present.ParseUint(tokens[3], 32)
		if err != nil {
			return nil, err
		}
		retry, err := present.ParseUint(tokens[4], 32)
		if err != nil {
			return nil, err
		}
		expire, err := present.ParseUint(tokens[5], 32)
		if err != nil {
			return nil, err
		}
		minttl, err := present.ParseUint(tokens[6], 32)
		if err != nil {
			return nil, err
		}
		return &SOA{
			Ns: tokens[0], Mbox: tokens[1],
			Serial: uint32(serial), Refresh: uint32(refresh), Retry: uint32(retry),
			Expire: uint32(expire), Minttl: uint32(minttl),
		}, nil
	})
}
