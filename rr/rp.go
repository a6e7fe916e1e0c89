package rr

import (
	"fmt"

	"github.com/dnsscience/dnscore/dnswire"
)

// RP is a responsible-person record (RFC 1183).
type RP struct {
	H    Header
	Mbox string
	Txt  string
}

func (r *RP) Hdr() *Header        { return &r.H }
func (r *RP) RdataString() string { return fmt.Sprintf("%s %s", r.Mbox, r.Txt) }
func (r *RP) Canonicalize() {
	r.Mbox = lowerName(r.Mbox)
	r.Txt = lowerName(r.Txt)
}
func (r *RP) Clone() RR { c := *r; return &c }
func (r *RP) RdataJSON() map[string]any {
	return map[string]any{"mbox": r.Mbox, "txt": r.Txt}
}

func (r *RP) PackRdata(w *dnswire.Writer) error {
	if err := w.Name(r.Mbox); err != nil {
		return err
	}
	return w.Name(r.Txt)
}

func (r *RP) UnpackRdata(src *dnswire.Reader) error {
	var err error
	if r.Mbox, err = src.Name(); err != nil {
		return err
	}
	r.Txt, err = src.Name()
	return err
}

func init() {
	Register(TypeRP, func() RR { return &RP{} })
	RegisterParser(TypeRP, func(tokens []string) (RR, error) {
		if len(tokens) < 2 {
			return nil, fmt.Errorf("rr: RP needs 2 fields")
		}
		return &RP{Mbox: tokens[0], Txt: tokens[1]}, nil
	})
}
