package rr

import (
	"fmt"
	"strings"

	"github.com/dnsscience/dnscore/dnswire"
)

// txtList backs RRs whose rdata is a sequence of character-strings: TXT
// and SPF (RFC 1035 §3.3.14, RFC 7208; SPF shares TXT's wire format).
type txtList struct {
	H    Header
	Strs []string
}

func (r *txtList) Hdr() *Header { return &r.H }

func (r *txtList) RdataString() string {
	parts := make([]string, len(r.Strs))
	for i, s := range r.Strs {
		parts[i] = fmt.Sprintf("%q", s)
	}
	return strings.Join(parts, " ")
}

func (r *txtList) Canonicalize() {}

func (r *txtList) RdataJSON() map[string]any {
	return map[string]any{"strings": append([]string(nil), r.Strs...)}
}

func (r *txtList) PackRdata(w *dnswire.Writer) error {
	if len(r.Strs) == 0 {
		return w.CharString("")
	}
	for _, s := range r.Strs {
		if err := w.CharString(s); err != nil {
			return err
		}
	}
	return nil
}

func (r *txtList) UnpackRdata(src *dnswire.Reader) error {
	r.Strs = nil
	for src.Len() > 0 {
		s, err := src.CharString()
		if err != nil {
			return err
		}
		r.Strs = append(r.Strs, s)
	}
	return nil
}

func parseTxtList(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = strings.Trim(t, "\"")
	}
	return out
}

// TXT is a free-text record (RFC 1035 §3.3.14).
type TXT struct{ txtList }

func (r *TXT) Clone() RR {
	c := *r
	c.Strs = append([]string(nil), r.Strs...)
	return &c
}

// SPF carries Sender Policy Framework text (RFC 7208; obsoleted in favor of
// TXT but kept for backward compatible zones).
type SPF struct{ txtList }

func (r *SPF) Clone() RR {
	c := *r
	c.Strs = append([]string(nil), r.Strs...)
	return &c
}

func init() {
	Register(TypeTXT, func() RR { return &TXT{} })
	Register(TypeSPF, func() RR { return &SPF{} })
	RegisterParser(TypeTXT, func(tokens []string) (RR, error) {
		return &TXT{txtList{Strs: parseTxtList(tokens)}}, nil
	})
	RegisterParser(TypeSPF, func(tokens []string) (RR, error) {
		return &SPF{txtList{Strs: parseTxtList(tokens)}}, nil
	})
}
