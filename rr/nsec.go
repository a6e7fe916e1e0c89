package rr

import (
	"fmt"
	"strings"

	"github.com/dnsscience/dnscore/dnswire"
)

// NSEC proves non-existence by naming the next owner in canonical zone
// order and the set of types present at this owner (RFC 4034 §4).
type NSEC struct {
	H        Header
	NextName string
	Types    []uint16
}

func (r *NSEC) Hdr() *Header { return &r.H }
func (r *NSEC) RdataString() string {
	names := make([]string, len(r.Types))
	for i, t := range r.Types {
		names[i] = TypeToString(t)
	}
	return r.NextName + " " + strings.Join(names, " ")
}

// The next-owner name is not lowercased: RFC 4034 §6.2 excludes NSEC from
// the embedded-name canonicalization list (it's covered by its own rules).
func (r *NSEC) Canonicalize() {}
func (r *NSEC) RdataJSON() map[string]any {
	types := make([]string, len(r.Types))
	for i, t := range r.Types {
		types[i] = TypeToString(t)
	}
	return map[string]any{"nextName": r.NextName, "types": types}
}
func (r *NSEC) Clone() RR {
	c := *r
	c.Types = append([]uint16(nil), r.Types...)
	return &c
}

func (r *NSEC) PackRdata(w *dnswire.Writer) error {
	if err := w.NameUncompressed(r.NextName); err != nil {
		return err
	}
	w.TypeBitMap(r.Types)
	return nil
}

func (r *NSEC) UnpackRdata(src *dnswire.Reader) error {
	var err error
	if r.NextName, err = src.Name(); err != nil {
		return err
	}
	r.Types, err = src.TypeBitMap()
	return err
}

func init() {
	Register(TypeNSEC, func() RR { return &NSEC{} })
	RegisterParser(TypeNSEC, func(tokens []string) (RR, error) {
		t, err := need(tokens, 0, "NSEC next name")
		if err != nil {
			return nil, err
		}
		types, err := parseTypeList(tokens[1:])
		if err != nil {
			return nil, err
		}
		return &NSEC{NextName: t, Types: types}, nil
	})
}

func parseTypeList(tokens []string) ([]uint16, error) {
	out := make([]uint16, 0, len(tokens))
	for _, tok := range tokens {
		t, ok := StringToType(tok)
		if !ok {
			return nil, fmt.Errorf("rr: unknown type mnemonic %q", tok)
		}
		out = append(out, t)
	}
	return out, nil
}
