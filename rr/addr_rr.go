package rr

import (
	"fmt"
	"net"

	"github.com/dnsscience/dnscore/dnswire"
)

// A is an IPv4 host address (RFC 1035 §3.4.1).
type A struct {
	H  Header
	IP net.IP
}

func (r *A) Hdr() *Header        { return &r.H }
func (r *A) RdataString() string { return r.IP.String() }
func (r *A) Canonicalize()       {}
func (r *A) Clone() RR {
	c := *r
	c.IP = append(net.IP(nil), r.IP...)
	return &c
}

func (r *A) RdataJSON() map[string]any { return map[string]any{"address": r.IP.String()} }

func (r *A) PackRdata(w *dnswire.Writer) error { return w.IPv4(r.IP) }
func (r *A) UnpackRdata(src *dnswire.Reader) error {
	ip, err := src.IPv4()
	if err != nil {
		return err
	}
	r.IP = ip
	return nil
}

// AAAA is an IPv6 host address (RFC 3596).
type AAAA struct {
	H  Header
	IP net.IP
}

func (r *AAAA) Hdr() *Header        { return &r.H }
func (r *AAAA) RdataString() string { return r.IP.String() }
func (r *AAAA) Canonicalize()       {}
func (r *AAAA) Clone() RR {
	c := *r
	c.IP = append(net.IP(nil), r.IP...)
	return &c
}

func (r *AAAA) RdataJSON() map[string]any { return map[string]any{"address": r.IP.String()} }

func (r *AAAA) PackRdata(w *dnswire.Writer) error { return w.IPv6(r.IP) }
func (r *AAAA) UnpackRdata(src *dnswire.Reader) error {
	ip, err := src.IPv6()
	if err != nil {
		return err
	}
	r.IP = ip
	return nil
}

func init() {
	Register(TypeA, func() RR { return &A{} })
	Register(TypeAAAA, func() RR { return &AAAA{} })

	RegisterParser(TypeA, func(tokens []string) (RR, error) {
		t, err := need(tokens, 0, "A address")
		if err != nil {
			return nil, err
		}
		ip := net.ParseIP(t)
		if ip == nil || ip.To4() == nil {
			return nil, fmt.Errorf("rr: bad A address %q", t)
		}
		return &A{IP: ip.To4()}, nil
	})
	RegisterParser(TypeAAAA, func(tokens []string) (RR, error) {
		t, err := need(tokens, 0, "AAAA address")
		if err != nil {
			return nil, err
		}
		ip := net.ParseIP(t)
		if ip == nil || ip.To4() != nil {
			return nil, fmt.Errorf("rr: bad AAAA address %q", t)
		}
		return &AAAA{IP: ip.To16()}, nil
	})
}
