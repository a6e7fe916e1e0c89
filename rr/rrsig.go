package rr

import (
	"encoding/base64"
	"fmt"

	"github.com/dnsscience/dnscore/dnswire"
	"github.com/dnsscience/dnscore/present"
)

// sigRdata backs RRSIG (RFC 4034 §3) and the historical transaction/zone
// SIG record (RFC 2535, RFC 2931 SIG(0)): both share the same field order,
// differing only in which type code a bare "SIG" covers (0 for SIG(0)).
type sigRdata struct {
	H           Header
	TypeCovered uint16
	Algorithm   uint8
	Labels      uint8
	OrigTTL     uint32
	Expiration  uint32
	Inception   uint32
	KeyTag      uint16
	SignerName  string
	Signature   []byte
}

func (r *sigRdata) Hdr() *Header { return &r.H }

func (r *sigRdata) RdataString() string {
	return fmt.Sprintf("%s %d %d %d %s %s %d %s %s",
		TypeToString(r.TypeCovered), r.Algorithm, r.Labels, r.OrigTTL,
		present.TimeToString(r.Expiration), present.TimeToString(r.Inception),
		r.KeyTag, r.SignerName, present.Base64Chunked(r.Signature))
}

// Per RFC 4034 §6.2 the signer name is lowercased in canonical form; the
// type-covered/other fields aren't names and are untouched.
func (r *sigRdata) Canonicalize() { r.SignerName = lowerName(r.SignerName) }

func (r *sigRdata) RdataJSON() map[string]any {
	return map[string]any{
		"typeCovered": TypeToString(r.TypeCovered),
		"algorithm":   r.Algorithm,
		"labels":      r.Labels,
		"originalTTL": r.OrigTTL,
		"expiration":  r.Expiration,
		"inception":   r.Inception,
		"keyTag":      r.KeyTag,
		"signerName":  r.SignerName,
		"signature":   base64.StdEncoding.EncodeToString(r.Signature),
	}
}

func (r *sigRdata) PackRdata(w *dnswire.Writer) error {
	w.Uint16(r.TypeCovered)
	w.Uint8(r.Algorithm)
	w.Uint8(r.Labels)
	w.Uint32(r.OrigTTL)
	w.Uint32(r.Expiration)
	w.Uint32(r.Inception)
	w.Uint16(r.KeyTag)
	if err := w.NameUncompressed(r.SignerName); err != nil {
		return err
	}
	w.Bytes(r.Signature)
	return nil
}

func (r *sigRdata) UnpackRdata(src *dnswire.Reader) error {
	var err error
	if r.TypeCovered, err = src.Uint16(); err != nil {
		return err
	}
	if r.Algorithm, err = src.Uint8(); err != nil {
		return err
	}
	if r.Labels, err = src.Uint8(); err != nil {
		return err
	}
	if r.OrigTTL, err = src.Uint32(); err != nil {
		return err
	}
	if r.Expiration, err = src.Uint32(); err != nil {
		return err
	}
	if r.Inception, err = src.Uint32(); err != nil {
		return err
	}
	if r.KeyTag, err = src.Uint16(); err != nil {
		return err
	}
	if r.SignerName, err = src.Name(); err != nil {
		return err
	}
	r.Signature = src.Remaining()
	return nil
}

func parseSig(tokens []string, now func() uint32) (sigRdata, error) {
	if len(tokens) < 9 {
		return sigRdata{}, fmt.Errorf("rr: RRSIG/SIG needs 9 fields")
	}
	tc, ok := StringToType(tokens[0])
	if !ok {
		return sigRdata{}, fmt.Errorf("rr: bad type-covered %q", tokens[0])
	}
	alg, err := present.ParseUint(tokens[1], 8)
	if err != nil {
		return sigRdata{}, err
	}
	labels, err := present.ParseUint(tokens[2], 8)
	if err != nil {
		return sigRdata{}, err
	}
	origTTL, err := present.ParseUint(tokens[3], 32)
	if err != nil {
		return sigRdata{}, err
	}
	exp, err := parseSigTime(tokens[4], now)
	if err != nil {
		return sigRdata{}, err
	}
	inc, err := parseSigTime(tokens[5], now)
	if err != nil {
		return sigRdata{}, err
	}
	tag, err := present.ParseUint(tokens[6], 16)
	if err != nil {
		return sigRdata{}, err
	}
	sig, err := present.DecodeBase64(joinTokens(tokens[8:]))
	if err != nil {
		return sigRdata{}, err
	}
	return sigRdata{
		TypeCovered: tc, Algorithm: uint8(alg), Labels: uint8(labels), OrigTTL: uint32(origTTL),
		Expiration: exp, Inception: inc, KeyTag: uint16(tag), SignerName: tokens[7], Signature: sig,
	}, nil
}

func parseSigTime(tok string, now func() uint32) (uint32, error) {
	// Accept either the YYYYMMDDhhmmss presentation form or a bare
	// decimal seconds-since-epoch value (both appear in the wild).
	if len(tok) == 14 {
		allDigits := true
		for _, c := range tok {
			if c < '0' || c > '9' {
				allDigits = false
				break
			}
		}
		if allDigits {
			t, err := present.StringToTime(tok, nowTime(now))
			if err == nil {
				return t, nil
			}
		}
	}
	v, err := present.ParseUint(tok, 32)
	if err != nil {
		return 0, fmt.Errorf("rr: bad signature time %q: %w", tok, err)
	}
	return uint32(v), nil
}

// RRSIG carries a DNSSEC signature over an RRset (RFC 4034 §3).
type RRSIG struct{ sigRdata }

func (r *RRSIG) Clone() RR {
	c := *r
	c.Signature = append([]byte(nil), r.Signature...)
	return &c
}

// SIG is the historical transaction-signature record, reused for SIG(0)
// (RFC 2931) with TypeCovered == 0.
type SIG struct{ sigRdata }

func (r *SIG) Clone() RR {
	c := *r
	c.Signature = append([]byte(nil), r.Signature...)
	return &c
}

func init() {
	Register(TypeRRSIG, func() RR { return &RRSIG{} })
	Register(TypeSIG, func() RR { return &SIG{} })
	RegisterParser(TypeRRSIG, func(tokens []string) (RR, error) {
		s, err := parseSig(tokens, defaultNow)
		if err != nil {
			return nil, err
		}
		return &RRSIG{s}, nil
	})
	RegisterParser(TypeSIG, func(tokens []string) (RR, error) {
		s, err := parseSig(tokens, defaultNow)
		if err != nil {
			return nil, err
		}
		return &SIG{s}, nil
	})
}
