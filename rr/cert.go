package rr

import (
	"encoding/base64"
	"fmt"

	"github.com/dnsscience/dnscore/dnswire"
	"github.com/dnsscience/dnscore/present"
)

// CERT stores a certificate or CRL (RFC 4398).
type CERT struct {
	H         Header
	Type      uint16
	KeyTag    uint16
	Algorithm uint8
	Cert      []byte
}

func (r *CERT) Hdr() *Header { return &r.H }
func (r *CERT) RdataString() string {
	return fmt.Sprintf("%d %d %d %s", r.Type, r.KeyTag, r.Algorithm, present.Base64Chunked(r.Cert))
}
func (r *CERT) Canonicalize() {}
func (r *CERT) Clone() RR {
	c := *r
	c.Cert = append([]byte(nil), r.Cert...)
	return &c
}

func (r *CERT) RdataJSON() map[string]any {
	return map[string]any{
		"type":      r.Type,
		"keyTag":    r.KeyTag,
		"algorithm": r.Algorithm,
		"cert":      base64.StdEncoding.EncodeToString(r.Cert),
	}
}

func (r *CERT) PackRdata(w *dnswire.Writer) error {
	w.Uint16(r.Type)
	w.Uint16(r.KeyTag)
	w.Uint8(r.Algorithm)
	w.Bytes(r.Cert)
	return nil
}

func (r *CERT) UnpackRdata(src *dnswire.Reader) error {
	var err error
	if r.Type, err = src.Uint16(); err != nil {
		return err
	}
	if r.KeyTag, err = src.Uint16(); err != nil {
		return err
	}
	if r.Algorithm, err = src.Uint8(); err != nil {
		return err
	}
	r.Cert = src.Remaining()
	return nil
}

func init() {
	Register(TypeCERT, func() RR { return &CERT{} })
	RegisterParser(TypeCERT, func(tokens []string) (RR, error) {
		if len(tokens) < 4 {
			return nil, fmt.Errorf("rr: CERT needs 4 fields")
		}
		typ, err := present.ParseUint(tokens[0], 16)
		if err != nil {
			return nil, err
		}
		tag, err := present.ParseUint(tokens[1], 16)
		if err != nil {
			return nil, err
		}
		alg, err := present.ParseUint(tokens[2], 8)
		if err != nil {
			return nil, err
		}
		data, err := present.DecodeBase64(joinTokens(tokens[3:]))
		if err != nil {
			return nil, err
		}
		return &CERT{Type: uint16(typ), KeyTag: uint16(tag), Algorithm: uint8(alg), Cert: data}, nil
	})
}

func joinTokens(tokens []string) string {
	s := ""
	for _, t := range tokens {
		s += t
	}
	return s
}
