package rr

import (
	"fmt"

	"github.com/dnsscience/dnscore/dnswire"
	"github.com/dnsscience/dnscore/present"
)

// NAPTR is a naming authority pointer (RFC 3403).
type NAPTR struct {
	H           Header
	Order       uint16
	Preference  uint16
	Flags       string
	Service     string
	Regexp      string
	Replacement string
}

func (r *NAPTR) Hdr() *Header { return &r.H }
func (r *NAPTR) RdataString() string {
	return fmt.Sprintf("%d %d %q %q %q %s", r.Order, r.Preference, r.Flags, r.Service, r.Regexp, r.Replacement)
}
func (r *NAPTR) Canonicalize() { r.Replacement = lowerName(r.Replacement) }
func (r *NAPTR) RdataJSON() map[string]any {
	return map[string]any{
		"order":       r.Order,
		"preference":  r.Preference,
		"flags":       r.Flags,
		"service":     r.Service,
		"regexp":      r.Regexp,
		"replacement": r.Replacement,
	}
}
func (r *NAPTR) Clone() RR     { c := *r; return &c }

func (r *NAPTR) PackRdata(w *dnswire.Writer) error {
	w.Uint16(r.Order)
	w.Uint16(r.Preference)
	if err := w.CharString(r.Flags); err != nil {
		return err
	}
	if err := w.CharString(r.Service); err != nil {
		return err
	}
	if err := w.CharString(r.Regexp); err != nil {
		return err
	}
	return w.Name(r.Replacement)
}

func (r *NAPTR) UnpackRdata(src *dnswire.Reader) error {
	var err error
	if r.Order, err = src.Uint16(); err != nil {
		return err
	}
	if r.Preference, err = src.Uint16(); err != nil {
		return err
	}
	if r.Flags, err = src.CharString(); err != nil {
		return err
	}
	if r.Service, err = src.CharString(); err != nil {
		return err
	}
	if r.Regexp, err = src.CharString(); err != nil {
		return err
	}
	r.Replacement, err = src.Name()
	return err
}

func init() {
	Register(TypeNAPTR, func() RR { return &NAPTR{} })
	RegisterParser(TypeNAPTR, func(tokens []string) (RR, error) {
		if len(tokens) < 6 {
			return nil, fmt.Errorf("rr: NAPTR needs 6 fields")
		}
		o, err := present.ParseUint(tokens[0], 16)
		if err != nil {
			return nil, err
		}
		p, err := present.ParseUint(tokens[1], 16)
		if err != nil {
			return nil, err
		}
		return &NAPTR{
			Order: uint16(o), Preference: uint16(p),
			Flags: trimQuotes(tokens[2]), Service: trimQuotes(tokens[3]), Regexp: trimQuotes(tokens[4]),
			Replacement: tokens[5],
		}, nil
	})
}

func trimQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
