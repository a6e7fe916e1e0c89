package rr

import (
	"fmt"

	"github.com/dnsscience/dnscore/dnswire"
	"github.com/dnsscience/dnscore/present"
)

// URI maps a name to a weighted/prioritized URI (RFC 7553).
type URI struct {
	H        Header
	Priority uint16
	Weight   uint16
	Target   string
}

func (r *URI) Hdr() *Header { return &r.H }
func (r *URI) RdataString() string {
	return fmt.Sprintf("%d %d %q", r.Priority, r.Weight, r.Target)
}
func (r *URI) Canonicalize() {}
func (r *URI) Clone() RR     { c := *r; return &c }
func (r *URI) RdataJSON() map[string]any {
	return map[string]any{"priority": r.Priority, "weight": r.Weight, "target": r.Target}
}

func (r *URI) PackRdata(w *dnswire.Writer) error {
	w.Uint16(r.Priority)
	w.Uint16(r.Weight)
	w.Bytes([]byte(r.Target))
	return nil
}

func (r *URI) UnpackRdata(src *dnswire.Reader) error {
	var err error
	if r.Priority, err = src.Uint16(); err != nil {
		return err
	}
	if r.Weight, err = src.Uint16(); err != nil {
		return err
	}
	r.Target = string(src.Remaining())
	return nil
}

func init() {
	Register(TypeURI, func() RR { return &URI{} })
	RegisterParser(TypeURI, func(tokens []string) (RR, error) {
		if len(tokens) < 3 {
			return nil, fmt.Errorf("rr: URI needs 3 fields")
		}
		p, err := present.ParseUint(tokens[0], 16)
		if err != nil {
			return nil, err
		}
		w, err := present.ParseUint(tokens[1], 16)
		if err != nil {
			return nil, err
		}
		return &URI{Priority: uint16(p), Weight: uint16(w), Target: trimQuotes(tokens[2])}, nil
	})
}
