package rr

import (
	"encoding/base64"
	"fmt"
	"net"

	"github.com/dnsscience/dnscore/dnswire"
	"github.com/dnsscience/dnscore/present"
)

// IPSECKEY carries keying material for opportunistic IPsec (RFC 4025).
type IPSECKEY struct {
	H           Header
	Precedence  uint8
	GatewayType uint8
	Algorithm   uint8
	Gateway     string // ".", IPv4, IPv6, or domain name per GatewayType
	PublicKey   []byte
}

func (r *IPSECKEY) Hdr() *Header { return &r.H }
func (r *IPSECKEY) RdataString() string {
	return fmt.Sprintf("%d %d %d %s %s", r.Precedence, r.GatewayType, r.Algorithm, r.Gateway, present.Base64Chunked(r.PublicKey))
}
func (r *IPSECKEY) Canonicalize() {}
func (r *IPSECKEY) RdataJSON() map[string]any {
	return map[string]any{
		"precedence":  r.Precedence,
		"gatewayType": r.GatewayType,
		"algorithm":   r.Algorithm,
		"gateway":     r.Gateway,
		"publicKey":   base64.StdEncoding.EncodeToString(r.PublicKey),
	}
}
func (r *IPSECKEY) Clone() RR {
	c := *r
	c.PublicKey = append([]byte(nil), r.PublicKey...)
	return &c
}

func (r *IPSECKEY) PackRdata(w *dnswire.Writer) error {
	w.Uint8(r.Precedence)
	w.Uint8(r.GatewayType)
	w.Uint8(r.Algorithm)
	switch r.GatewayType {
	case 0:
		// no gateway
	case 1:
		if err := w.IPv4(net.ParseIP(r.Gateway)); err != nil {
			return err
		}
	case 2:
		if err := w.IPv6(net.ParseIP(r.Gateway)); err != nil {
			return err
		}
	case 3:
		if err := w.NameUncompressed(r.Gateway); err != nil {
			return err
		}
	default:
		return fmt.Errorf("rr: bad IPSECKEY gateway type %d", r.GatewayType)
	}
	w.Bytes(r.PublicKey)
	return nil
}

func (r *IPSECKEY) UnpackRdata(src *dnswire.Reader) error {
	var err error
	if r.Precedence, err = src.Uint8(); err != nil {
		return err
	}
	if r.GatewayType, err = src.Uint8(); err != nil {
		return err
	}
	if r.Algorithm, err = src.Uint8(); err != nil {
		return err
	}
	switch r.GatewayType {
	case 0:
		r.Gateway = "."
	case 1:
		ip, err := src.IPv4()
		if err != nil {
			return err
		}
		r.Gateway = ip.String()
	case 2:
		ip, err := src.IPv6()
		if err != nil {
			return err
		}
		r.Gateway = ip.String()
	case 3:
		if r.Gateway, err = src.Name(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("rr: bad IPSECKEY gateway type %d", r.GatewayType)
	}
	r.PublicKey = src.Remaining()
	return nil
}

func init() {
	Register(TypeIPSECKEY, func() RR { return &IPSECKEY{} })
	RegisterParser(TypeIPSECKEY, func(tokens []string) (RR, error) {
		if len(tokens) < 5 {
			return nil, fmt.Errorf("rr: IPSECKEY needs 5 fields")
		}
		prec, err := present.ParseUint(tokens[0], 8)
		if err != nil {
			return nil, err
		}
		gt, err := present.ParseUint(tokens[1], 8)
		if err != nil {
			return nil, err
		}
		alg, err := present.ParseUint(tokens[2], 8)
		if err != nil {
			return nil, err
		}
		key, err := present.DecodeBase64(joinTokens(tokens[4:]))
		if err != nil {
			return nil, err
		}
		return &IPSECKEY{
			Precedence: uint8(prec), GatewayType: uint8(gt), Algorithm: uint8(alg),
			Gateway: tokens[3], PublicKey: key,
		}, nil
	})
}
