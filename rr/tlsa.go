package rr

import (
	"encoding/hex"
	"fmt"

	"github.com/dnsscience/dnscore/dnswire"
	"github.com/dnsscience/dnscore/present"
)

// tlsaRdata backs TLSA (RFC 6698) and SMIMEA (RFC 8162), which share a wire
// format: certificate usage / selector / matching type plus association
// data.
type tlsaRdata struct {
	H            Header
	Usage        uint8
	Selector     uint8
	MatchingType uint8
	Data         []byte
}

func (r *tlsaRdata) Hdr() *Header { return &r.H }
func (r *tlsaRdata) RdataString() string {
	return fmt.Sprintf("%d %d %d %s", r.Usage, r.Selector, r.MatchingType, present.HexChunked(r.Data))
}
func (r *tlsaRdata) Canonicalize() {}
func (r *tlsaRdata) RdataJSON() map[string]any {
	return map[string]any{
		"usage":        r.Usage,
		"selector":     r.Selector,
		"matchingType": r.MatchingType,
		"data":         hex.EncodeToString(r.Data),
	}
}

func (r *tlsaRdata) PackRdata(w *dnswire.Writer) error {
	w.Uint8(r.Usage)
	w.Uint8(r.Selector)
	w.Uint8(r.MatchingType)
	w.Bytes(r.Data)
	return nil
}

func (r *tlsaRdata) UnpackRdata(src *dnswire.Reader) error {
	var err error
	if r.Usage, err = src.Uint8(); err != nil {
		return err
	}
	if r.Selector, err = src.Uint8(); err != nil {
		return err
	}
	if r.MatchingType, err = src.Uint8(); err != nil {
		return err
	}
	r.Data = src.Remaining()
	return nil
}

func parseTLSA(tokens []string) (tlsaRdata, error) {
	if len(tokens) < 4 {
		return tlsaRdata{}, fmt.Errorf("rr: TLSA/SMIMEA needs 4 fields")
	}
	u, err := present.ParseUint(tokens[0], 8)
	if err != nil {
		return tlsaRdata{}, err
	}
	s, err := present.ParseUint(tokens[1], 8)
	if err != nil {
		return tlsaRdata{}, err
	}
	m, err := present.ParseUint(tokens[2], 8)
	if err != nil {
		return tlsaRdata{}, err
	}
	data, err := present.DecodeHex(joinTokens(tokens[3:]))
	if err != nil {
		return tlsaRdata{}, err
	}
	return tlsaRdata{Usage: uint8(u), Selector: uint8(s), MatchingType: uint8(m), Data: data}, nil
}

// TLSA associates a TLS server certificate with the domain (RFC 6698).
type TLSA struct{ tlsaRdata }

func (r *TLSA) Clone() RR {
	c := *r
	c.Data = append([]byte(nil), r.Data...)
	return &c
}

// SMIMEA associates an S/MIME certificate with the domain (RFC 8162).
type SMIMEA struct{ tlsaRdata }

func (r *SMIMEA) Clone() RR {
	c := *r
	c.Data = append([]byte(nil), r.Data...)
	return &c
}

func init() {
	Register(TypeTLSA, func() RR { return &TLSA{} })
	Register(TypeSMIMEA, func() RR { return &SMIMEA{} })
	RegisterParser(TypeTLSA, func(tokens []string) (RR, error) {
		d, err := parseTLSA(tokens)
		if err != nil {
			return nil, err
		}
		return &TLSA{d}, nil
	})
	RegisterParser(TypeSMIMEA, func(tokens []string) (RR, error) {
		d, err := parseTLSA(tokens)
		if err != nil {
			return nil, err
		}
		return &SMIMEA{d}, nil
	})
}
