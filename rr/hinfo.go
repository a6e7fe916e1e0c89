package rr

import (
	"fmt"

	"github.com/dnsscience/dnscore/dnswire"
)

// HINFO identifies host hardware/OS (RFC 1035 §3.3.2).
type HINFO struct {
	H   Header
	Cpu string
	Os  string
}

func (r *HINFO) Hdr() *Header { return &r.H }
func (r *HINFO) RdataString() string {
	return fmt.Sprintf("%q %q", r.Cpu, r.Os)
}
func (r *HINFO) Canonicalize() {}
func (r *HINFO) RdataJSON() map[string]any {
	return map[string]any{"cpu": r.Cpu, "os": r.Os}
}
func (r *HINFO) Clone() RR     { c := *r; return &c }

func (r *HINFO) PackRdata(w *dnswire.Writer) error {
	if err := w.CharString(r.Cpu); err != nil {
		return err
	}
	return w.CharString(r.Os)
}

func (r *HINFO) UnpackRdata(src *dnswire.Reader) error {
	var err error
	if r.Cpu, err = src.CharString(); err != nil {
		return err
	}
	r.Os, err = src.CharString()
	return err
}

func init() {
	Register(TypeHINFO, func() RR { return &HINFO{} })
	RegisterParser(TypeHINFO, func(tokens []string) (RR, error) {
		if len(tokens) < 2 {
			return nil, fmt.Errorf("rr: HINFO needs 2 fields")
		}
		return &HINFO{Cpu: tokens[0], Os: tokens[1]}, nil
	})
}
