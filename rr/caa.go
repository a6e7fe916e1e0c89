package rr

import (
	"fmt"

	"github.com/dnsscience/dnscore/dnswire"
	"github.com/dnsscience/dnscore/present"
)

// CAA constrains which CAs may issue certificates for the name (RFC 6844).
type CAA struct {
	H     Header
	Flag  uint8
	Tag   string
	Value string
}

func (r *CAA) Hdr() *Header        { return &r.H }
func (r *CAA) RdataString() string { return fmt.Sprintf("%d %s %q", r.Flag, r.Tag, r.Value) }
func (r *CAA) Canonicalize()       {}
func (r *CAA) RdataJSON() map[string]any {
	return map[string]any{"flag": r.Flag, "tag": r.Tag, "value": r.Value}
}
func (r *CAA) Clone() RR           { c := *r; return &c }

func (r *CAA) PackRdata(w *dnswire.Writer) error {
	w.Uint8(r.Flag)
	if err := w.CharString(r.Tag); err != nil {
		return err
	}
	w.Bytes([]byte(r.Value))
	return nil
}

func (r *CAA) UnpackRdata(src *dnswire.Reader) error {
	var err error
	if r.Flag, err = src.Uint8(); err != nil {
		return err
	}
	if r.Tag, err = src.CharString(); err != nil {
		return err
	}
	r.Value = string(src.Remaining())
	return nil
}

func init() {
	Register(TypeCAA, func() RR { return &CAA{} })
	RegisterParser(TypeCAA, func(tokens []string) (RR, error) {
		if len(tokens) < 3 {
			return nil, fmt.Errorf("rr: CAA needs 3 fields")
		}
		f, err := present.ParseUint(tokens[0], 8)
		if err != nil {
			return nil, err
		}
		return &CAA{Flag: uint8(f), Tag: tokens[1], Value: trimQuotes(tokens[2])}, nil
	})
}
