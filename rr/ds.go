package rr

import (
	"encoding/hex"
	"fmt"

	"github.com/dnsscience/dnscore/dnswire"
	"github.com/dnsscience/dnscore/present"
)

// dsRdata backs DS and CDS (RFC 4034 §5, RFC 7344): delegation-signer
// digests published by the parent (or staged by the child, for CDS).
type dsRdata struct {
	H          Header
	KeyTag     uint16
	Algorithm  uint8
	DigestType uint8
	Digest     []byte
}

func (r *dsRdata) Hdr() *Header { return &r.H }
func (r *dsRdata) RdataString() string {
	return fmt.Sprintf("%d %d %d %s", r.KeyTag, r.Algorithm, r.DigestType, present.HexChunked(r.Digest))
}
func (r *dsRdata) Canonicalize() {}
func (r *dsRdata) RdataJSON() map[string]any {
	return map[string]any{
		"keyTag":     r.KeyTag,
		"algorithm":  r.Algorithm,
		"digestType": r.DigestType,
		"digest":     hex.EncodeToString(r.Digest),
	}
}

func (r *dsRdata) PackRdata(w *dnswire.Writer) error {
	w.Uint16(r.KeyTag)
	w.Uint8(r.Algorithm)
	w.Uint8(r.DigestType)
	w.Bytes(r.Digest)
	return nil
}

func (r *dsRdata) UnpackRdata(src *dnswire.Reader) error {
	var err error
	if r.KeyTag, err = src.Uint16(); err != nil {
		return err
	}
	if r.Algorithm, err = src.Uint8(); err != nil {
		return err
	}
	if r.DigestType, err = src.Uint8(); err != nil {
		return err
	}
	r.Digest = src.Remaining()
	return nil
}

func parseDS(tokens []string) (dsRdata, error) {
	if len(tokens) < 4 {
		return dsRdata{}, fmt.Errorf("rr: DS/CDS needs 4 fields")
	}
	tag, err := present.ParseUint(tokens[0], 16)
	if err != nil {
		return dsRdata{}, err
	}
	alg, err := present.ParseUint(tokens[1], 8)
	if err != nil {
		return dsRdata{}, err
	}
	dt, err := present.ParseUint(tokens[2], 8)
	if err != nil {
		return dsRdata{}, err
	}
	digest, err := present.DecodeHex(joinTokens(tokens[3:]))
	if err != nil {
		return dsRdata{}, err
	}
	return dsRdata{KeyTag: uint16(tag), Algorithm: uint8(alg), DigestType: uint8(dt), Digest: digest}, nil
}

// DS is a delegation-signer record published in the parent zone.
type DS struct{ dsRdata }

func (r *DS) Clone() RR {
	c := *r
	c.Digest = append([]byte(nil), r.Digest...)
	return &c
}

// CDS is a child-side staged DS awaiting publication by the parent (RFC 7344).
type CDS struct{ dsRdata }

func (r *CDS) Clone() RR {
	c := *r
	c.Digest = append([]byte(nil), r.Digest...)
	return &c
}

func init() {
	Register(TypeDS, func() RR { return &DS{} })
	Register(TypeCDS, func() RR { return &CDS{} })
	RegisterParser(TypeDS, func(tokens []string) (RR, error) {
		d, err := parseDS(tokens)
		if err != nil {
			return nil, err
		}
		return &DS{d}, nil
	})
	RegisterParser(TypeCDS, func(tokens []string) (RR, error) {
		d, err := parseDS(tokens)
		if err != nil {
			return nil, err
		}
		return &CDS{d}, nil
	})
}
