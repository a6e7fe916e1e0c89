package rr

import (
	"encoding/hex"
	"fmt"

	"github.com/dnsscience/dnscore/dnswire"
	"github.com/dnsscience/dnscore/present"
)

// SSHFP stores an SSH public key fingerprint (RFC 4255).
type SSHFP struct {
	H           Header
	Algorithm   uint8
	FPType      uint8
	Fingerprint []byte
}

func (r *SSHFP) Hdr() *Header { return &r.H }
func (r *SSHFP) RdataString() string {
	return fmt.Sprintf("%d %d %s", r.Algorithm, r.FPType, present.HexChunked(r.Fingerprint))
}
func (r *SSHFP) Canonicalize() {}
func (r *SSHFP) RdataJSON() map[string]any {
	return map[string]any{
		"algorithm":   r.Algorithm,
		"fpType":      r.FPType,
		"fingerprint": hex.EncodeToString(r.Fingerprint),
	}
}
func (r *SSHFP) Clone() RR {
	c := *r
	c.Fingerprint = append([]byte(nil), r.Fingerprint...)
	return &c
}

func (r *SSHFP) PackRdata(w *dnswire.Writer) error {
	w.Uint8(r.Algorithm)
	w.Uint8(r.FPType)
	w.Bytes(r.Fingerprint)
	return nil
}

func (r *SSHFP) UnpackRdata(src *dnswire.Reader) error {
	var err error
	if r.Algorithm, err = src.Uint8(); err != nil {
		return err
	}
	if r.FPType, err = src.Uint8(); err != nil {
		return err
	}
	r.Fingerprint = src.Remaining()
	return nil
}

func init() {
	Register(TypeSSHFP, func() RR { return &SSHFP{} })
	RegisterParser(TypeSSHFP, func(tokens []string) (RR, error) {
		if len(tokens) < 3 {
			return nil, fmt.Errorf("rr: SSHFP needs 3 fields")
		}
		alg, err := present.ParseUint(tokens[0], 8)
		if err != nil {
			return nil, err
		}
		typ, err := present.ParseUint(tokens[1], 8)
		if err != nil {
			return nil, err
		}
		fp, err := present.DecodeHex(joinTokens(tokens[2:]))
		if err != nil {
			return nil, err
		}
		return &SSHFP{Algorithm: uint8(alg), FPType: uint8(typ), Fingerprint: fp}, nil
	})
}
