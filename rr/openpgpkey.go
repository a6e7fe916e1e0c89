package rr

import (
	"encoding/base64"

	"github.com/dnsscience/dnscore/dnswire"
	"github.com/dnsscience/dnscore/present"
)

// OPENPGPKEY stores an OpenPGP certificate for the owner name (RFC 7929).
type OPENPGPKEY struct {
	H   Header
	Key []byte
}

func (r *OPENPGPKEY) Hdr() *Header        { return &r.H }
func (r *OPENPGPKEY) RdataString() string { return present.Base64Chunked(r.Key) }
func (r *OPENPGPKEY) Canonicalize()       {}
func (r *OPENPGPKEY) RdataJSON() map[string]any {
	return map[string]any{"key": base64.StdEncoding.EncodeToString(r.Key)}
}
func (r *OPENPGPKEY) Clone() RR {
	c := *r
	c.Key = append([]byte(nil), r.Key...)
	return &c
}

func (r *OPENPGPKEY) PackRdata(w *dnswire.Writer) error {
	w.Bytes(r.Key)
	return nil
}

func (r *OPENPGPKEY) UnpackRdata(src *dnswire.Reader) error {
	r.Key = src.Remaining()
	return nil
}

func init() {
	Register(TypeOPENPGPKEY, func() RR { return &OPENPGPKEY{} })
	RegisterParser(TypeOPENPGPKEY, func(tokens []string) (RR, error) {
		key, err := present.DecodeBase64(joinTokens(tokens))
		if err != nil {
			return nil, err
		}
		return &OPENPGPKEY{Key: key}, nil
	})
}
