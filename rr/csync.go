package rr

import (
	"fmt"

	"github.com/dnsscience/dnscore/dnswire"
	"github.com/dnsscience/dnscore/present"
)

// CSYNC signals a child zone's readiness for a parent-side sync (RFC 7477).
type CSYNC struct {
	H      Header
	Serial uint32
	Flags  uint16
	Types  []uint16
}

func (r *CSYNC) Hdr() *Header { return &r.H }
func (r *CSYNC) RdataString() string {
	s := fmt.Sprintf("%d %d", r.Serial, r.Flags)
	for _, t := range r.Types {
		s += " " + TypeToString(t)
	}
	return s
}
func (r *CSYNC) Canonicalize() {}
func (r *CSYNC) RdataJSON() map[string]any {
	types := make([]string, len(r.Types))
	for i, t := range r.Types {
		types[i] = TypeToString(t)
	}
	return map[string]any{"serial": r.Serial, "flags": r.Flags, "types": types}
}
func (r *CSYNC) Clone() RR {
	c := *r
	c.Types = append([]uint16(nil), r.Types...)
	return &c
}

func (r *CSYNC) PackRdata(w *dnswire.Writer) error {
	w.Uint32(r.Serial)
	w.Uint16(r.Flags)
	w.TypeBitMap(r.Types)
	return nil
}

func (r *CSYNC) UnpackRdata(src *dnswire.Reader) error {
	var err error
	if r.Serial, err = src.Uint32(); err != nil {
		return err
	}
	if r.Flags, err = src.Uint16(); err != nil {
		return err
	}
	r.Types, err = src.TypeBitMap()
	return err
}

func init() {
	Register(TypeCSYNC, func() RR { return &CSYNC{} })
	RegisterParser(TypeCSYNC, func(tokens []string) (RR, error) {
		if len(tokens) < 2 {
			return nil, fmt.Errorf("rr: CSYNC needs at least 2 fields")
		}
		serial, err := present.ParseUint(tokens[0], 32)
		if err != nil {
			return nil, err
		}
		flags, err := present.ParseUint(tokens[1], 16)
		if err != nil {
			return nil, err
		}
		types, err := parseTypeList(tokens[2:])
		if err != nil {
			return nil, err
		}
		return &CSYNC{Serial: uint32(serial), Flags: uint16(flags), Types: types}, nil
	})
}
