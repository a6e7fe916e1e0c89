package rr

import (
	"fmt"

	"github.com/dnsscience/dnscore/dnswire"
	"github.com/dnsscience/dnscore/present"
)

// prefName backs the RRs shaped as (uint16 preference, domain name):
// MX, KX, and RT.
type prefName struct {
	H    Header
	Pref uint16
	Name string
}

func (r *prefName) Hdr() *Header { return &r.H }
func (r *prefName) RdataString() string {
	return fmt.Sprintf("%d %s", r.Pref, r.Name)
}
func (r *prefName) Canonicalize() { r.Name = lowerName(r.Name) }
func (r *prefName) RdataJSON() map[string]any {
	return map[string]any{"preference": r.Pref, "name": r.Name}
}

func (r *prefName) PackRdata(w *dnswire.Writer) error {
	w.Uint16(r.Pref)
	return w.Name(r.Name)
}

func (r *prefName) UnpackRdata(src *dnswire.Reader) error {
	var err error
	if r.Pref, err = src.Uint16(); err != nil {
		return err
	}
	r.Name, err = src.Name()
	return err
}

func parsePrefName(tokens []string) (uint16, string, error) {
	if len(tokens) < 2 {
		return 0, "", fmt.Errorf("rr: expected \"preference name\"")
	}
	p, err := present.ParseUint(tokens[0], 16)
	if err != nil {
		return 0, "", err
	}
	return uint16(p), tokens[1], nil
}

// MX is a mail exchanger (RFC 1035 §3.3.9).
type MX struct{ prefName }

func (r *MX) Clone() RR { c := *r; return &c }

// KX is a key exchanger (RFC 2230).
type KX struct{ prefName }

func (r *KX) Clone() RR { c := *r; return &c }

// RT designates an intermediate host for route-through (RFC 1183).
type RT struct{ prefName }

func (r *RT) Clone() RR { c := *r; return &c }

// AFSDB locates an AFS cell database server (RFC 1183).
type AFSDB struct {
	H       Header
	Subtype uint16
	Host    string
}

func (r *AFSDB) Hdr() *Header { return &r.H }
func (r *AFSDB) RdataString() string {
	return fmt.Sprintf("%d %s", r.Subtype, r.Host)
}
func (r *AFSDB) Canonicalize() { r.Host = lowerName(r.Host) }
func (r *AFSDB) Clone() RR     { c := *r; return &c }
func (r *AFSDB) RdataJSON() map[string]any {
	return map[string]any{"subtype": r.Subtype, "host": r.Host}
}

func (r *AFSDB) PackRdata(w *dnswire.Writer) error {
	w.Uint16(r.Subtype)
	return w.Name(r.Host)
}

func (r *AFSDB) UnpackRdata(src *dnswire.Reader) error {
	var err error
	if r.Subtype, err = src.Uint16(); err != nil {
		return err
	}
	r.Host, err = src.Name()
	return err
}

func init() {
	Register(TypeMX, func() RR { return &MX{} })
	Register(TypeKX, func() RR { return &KX{} })
	Register(TypeRT, func() RR { return &RT{} })
	Register(TypeAFSDB, func() RR { return &AFSDB{} })

	RegisterParser(TypeMX, func(tokens []string) (RR, error) {
		p, n, err := parsePrefName(tokens)
		if err != nil {
			return nil, err
		}
		return &MX{prefName{Pref: p, Name: n}}, nil
	})
	RegisterParser(TypeKX, func(tokens []string) (RR, error) {
		p, n, err := parsePrefName(tokens)
		if err != nil {
			return nil, err
		}
		return &KX{prefName{Pref: p, Name: n}}, nil
	})
	RegisterParser(TypeRT, func(tokens []string) (RR, error) {
		p, n, err := parsePrefName(tokens)
		if err != nil {
			return nil, err
		}
		return &RT{prefName{Pref: p, Name: n}}, nil
	})
	RegisterParser(TypeAFSDB, func(tokens []string) (RR, error) {
		p, n, err := parsePrefName(tokens)
		if err != nil {
			return nil, err
		}
		return &AFSDB{Subtype: p, Host: n}, nil
	})
}
