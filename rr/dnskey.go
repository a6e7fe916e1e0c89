package rr

import (
	"encoding/base64"
	"fmt"

	"github.com/dnsscience/dnscore/dnswire"
	"github.com/dnsscience/dnscore/present"
)

// keyRdata backs DNSKEY, CDNSKEY, and the historical KEY record (RFC 4034
// §2, RFC 7344, RFC 2535): flags/protocol/algorithm plus an opaque public
// key blob whose structure depends on Algorithm.
type keyRdata struct {
	H         Header
	Flags     uint16
	Protocol  uint8
	Algorithm uint8
	PublicKey []byte
}

func (r *keyRdata) Hdr() *Header { return &r.H }
func (r *keyRdata) RdataString() string {
	return fmt.Sprintf("%d %d %d %s", r.Flags, r.Protocol, r.Algorithm, present.Base64Chunked(r.PublicKey))
}
func (r *keyRdata) Canonicalize() {}
func (r *keyRdata) RdataJSON() map[string]any {
	return map[string]any{
		"flags":     r.Flags,
		"protocol":  r.Protocol,
		"algorithm": r.Algorithm,
		"publicKey": base64.StdEncoding.EncodeToString(r.PublicKey),
	}
}

func (r *keyRdata) PackRdata(w *dnswire.Writer) error {
	w.Uint16(r.Flags)
	w.Uint8(r.Protocol)
	w.Uint8(r.Algorithm)
	w.Bytes(r.PublicKey)
	return nil
}

func (r *keyRdata) UnpackRdata(src *dnswire.Reader) error {
	var err error
	if r.Flags, err = src.Uint16(); err != nil {
		return err
	}
	if r.Protocol, err = src.Uint8(); err != nil {
		return err
	}
	if r.Algorithm, err = src.Uint8(); err != nil {
		return err
	}
	r.PublicKey = src.Remaining()
	return nil
}

func parseKey(tokens []string) (keyRdata, error) {
	if len(tokens) < 4 {
		return keyRdata{}, fmt.Errorf("rr: DNSKEY-family rdata needs 4 fields")
	}
	flags, err := present.ParseUint(tokens[0], 16)
	if err != nil {
		return keyRdata{}, err
	}
	proto, err := present.ParseUint(tokens[1], 8)
	if err != nil {
		return keyRdata{}, err
	}
	alg, err := present.ParseUint(tokens[2], 8)
	if err != nil {
		return keyRdata{}, err
	}
	key, err := present.DecodeBase64(joinTokens(tokens[3:]))
	if err != nil {
		return keyRdata{}, err
	}
	return keyRdata{Flags: uint16(flags), Protocol: uint8(proto), Algorithm: uint8(alg), PublicKey: key}, nil
}

// DNSKEY publishes a zone signing or key signing public key (RFC 4034 §2).
type DNSKEY struct{ keyRdata }

func (r *DNSKEY) Clone() RR {
	c := *r
	c.PublicKey = append([]byte(nil), r.PublicKey...)
	return &c
}

// CDNSKEY is a child-side staged DNSKEY awaiting publication (RFC 7344).
type CDNSKEY struct{ keyRdata }

func (r *CDNSKEY) Clone() RR {
	c := *r
	c.PublicKey = append([]byte(nil), r.PublicKey...)
	return &c
}

// KEY is the historical (RFC 2535) public-key record, structurally
// identical to DNSKEY, still used for SIG(0) signer keys in some profiles.
type KEY struct{ keyRdata }

func (r *KEY) Clone() RR {
	c := *r
	c.PublicKey = append([]byte(nil), r.PublicKey...)
	return &c
}

func init() {
	Register(TypeDNSKEY, func() RR { return &DNSKEY{} })
	Register(TypeCDNSKEY, func() RR { return &CDNSKEY{} })
	Register(TypeKEY, func() RR { return &KEY{} })
	RegisterParser(TypeDNSKEY, func(tokens []string) (RR, error) {
		k, err := parseKey(tokens)
		if err != nil {
			return nil, err
		}
		return &DNSKEY{k}, nil
	})
	RegisterParser(TypeCDNSKEY, func(tokens []string) (RR, error) {
		k, err := parseKey(tokens)
		if err != nil {
			return nil, err
		}
		return &CDNSKEY{k}, nil
	})
	RegisterParser(TypeKEY, func(tokens []string) (RR, error) {
		k, err := parseKey(tokens)
		if err != nil {
			return nil, err
		}
		return &KEY{k}, nil
	})
}

// DNSKEY flag bits (RFC 4034 §2.1.1).
const (
	DNSKEYFlagZoneKey uint16 = 1 << 8
	DNSKEYFlagSEP     uint16 = 1 << 0
	DNSKEYFlagRevoke  uint16 = 1 << 7
)
