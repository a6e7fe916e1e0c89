package rr

import (
	"fmt"

	"github.com/dnsscience/dnscore/dnswire"
	"github.com/dnsscience/dnscore/present"
)

// SRV locates a service (RFC 2782).
type SRV struct {
	H        Header
	Priority uint16
	Weight   uint16
	Port     uint16
	Target   string
}

func (r *SRV) Hdr() *Header { return &r.H }
func (r *SRV) RdataString() string {
	return fmt.Sprintf("%d %d %d %s", r.Priority, r.Weight, r.Port, r.Target)
}

// RFC 2782 doesn't require SRV target lowercasing for DNSSEC canonical
// form, but RFC 4034 §6.2 lists SRV among the embedded-name types.
func (r *SRV) Canonicalize() { r.Target = lowerName(r.Target) }
func (r *SRV) Clone() RR     { c := *r; return &c }
func (r *SRV) RdataJSON() map[string]any {
	return map[string]any{
		"priority": r.Priority, "weight": r.Weight, "port": r.Port, "target": r.Target,
	}
}

func (r *SRV) PackRdata(w *dnswire.Writer) error {
	w.Uint16(r.Priority)
	w.Uint16(r.Weight)
	w.Uint16(r.Port)
	return w.Name(r.Target)
}

func (r *SRV) UnpackRdata(src *dnswire.Reader) error {
	var err error
	if r.Priority, err = src.Uint16(); err != nil {
		return err
	}
	if r.Weight, err = src.Uint16(); err != nil {
		return err
	}
	if r.Port, err = src.Uint16(); err != nil {
		return err
	}
	r.Target, err = src.Name()
	return err
}

func init() {
	Register(TypeSRV, func() RR { return &SRV{} })
	RegisterParser(TypeSRV, func(tokens []string) (RR, error) {
		if len(tokens) < 4 {
			return nil, fmt.Errorf("rr: SRV needs 4 fields")
		}
		pr, err := present.ParseUint(tokens[0], 16)
		if err != nil {
			return nil, err
		}
		wt, err := present.ParseUint(tokens[1], 16)
		if err != nil {
			return nil, err
		}
		pt, err := present.ParseUint(tokens[2], 16)
		if err != nil {
			return nil, err
		}
		return &SRV{Priority: uint16(pr), Weight: uint16(wt), Port: uint16(pt), Target: tokens[3]}, nil
	})
}
