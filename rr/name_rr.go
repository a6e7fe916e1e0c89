package rr

import (
	"github.com/dnsscience/dnscore/dnswire"
)

// singleName backs every RR whose entire rdata is one domain name (NS,
// CNAME, PTR, DNAME, and the historical MB/MD/MF/MG/MR mailbox types).
type singleName struct {
	H      Header
	Target string
}

func (r *singleName) Hdr() *Header        { return &r.H }
func (r *singleName) RdataString() string { return r.Target }

func (r *singleName) PackRdata(w *dnswire.Writer) error {
	return w.Name(r.Target)
}

func (r *singleName) UnpackRdata(src *dnswire.Reader) error {
	t, err := src.Name()
	if err != nil {
		return err
	}
	r.Target = t
	return nil
}

func (r *singleName) Canonicalize() { r.Target = lowerName(r.Target) }
func (r *singleName) RdataJSON() map[string]any {
	return map[string]any{"target": r.Target}
}

func parseSingleName(tokens []string) (string, error) {
	return need(tokens, 0, "domain name")
}

// NS is a delegation record (RFC 1035 §3.3.11).
type NS struct{ singleName }

func (r *NS) Clone() RR { c := *r; return &c }

// CNAME is a canonical-name alias (RFC 1035 §3.3.1).
type CNAME struct{ singleName }

func (r *CNAME) Clone() RR { c := *r; return &c }

// PTR is a pointer record (RFC 1035 §3.3.12).
type PTR struct{ singleName }

func (r *PTR) Clone() RR { c := *r; return &c }

// DNAME is a non-terminal name redirection (RFC 6672).
type DNAME struct{ singleName }

func (r *DNAME) Clone() RR { c := *r; return &c }

// MB/MD/MF/MG/MR are historical mailbox RRs (RFC 1035 §3.3), kept for
// completeness since the registry is otherwise a closed set per type code.
type MB struct{ singleName }

func (r *MB) Clone() RR { c := *r; return &c }

type MD struct{ singleName }

func (r *MD) Clone() RR { c := *r; return &c }

type MF struct{ singleName }

func (r *MF) Clone() RR { c := *r; return &c }

type MG struct{ singleName }

func (r *MG) Clone() RR { c := *r; return &c }

type MR struct{ singleName }

func (r *MR) Clone() RR { c := *r; return &c }

func init() {
	reg := func(t uint16, mk func() RR) { Register(t, mk) }
	reg(TypeNS, func() RR { return &NS{} })
	reg(TypeCNAME, func() RR { return &CNAME{} })
	reg(TypePTR, func() RR { return &PTR{} })
	reg(TypeDNAME, func() RR { return &DNAME{} })
	reg(TypeMB, func() RR { return &MB{} })
	reg(TypeMD, func() RR { return &MD{} })
	reg(TypeMF, func() RR { return &MF{} })
	reg(TypeMG, func() RR { return &MG{} })
	reg(TypeMR, func() RR { return &MR{} })

	RegisterParser(TypeNS, func(tokens []string) (RR, error) {
		t, err := parseSingleName(tokens)
		if err != nil {
			return nil, err
		}
		return &NS{singleName{Target: t}}, nil
	})
	RegisterParser(TypeCNAME, func(tokens []string) (RR, error) {
		t, err := parseSingleName(tokens)
		if err != nil {
			return nil, err
		}
		return &CNAME{singleName{Target: t}}, nil
	})
	RegisterParser(TypePTR, func(tokens []string) (RR, error) {
		t, err := parseSingleName(tokens)
		if err != nil {
			return nil, err
		}
		return &PTR{singleName{Target: t}}, nil
	})
	RegisterParser(TypeDNAME, func(tokens []string) (RR, error) {
		t, err := parseSingleName(tokens)
		if err != nil {
			return nil, err
		}
		return &DNAME{singleName{Target: t}}, nil
	})
}
