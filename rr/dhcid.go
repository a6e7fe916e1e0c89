package rr

import (
	"encoding/base64"

	"github.com/dnsscience/dnscore/dnswire"
	"github.com/dnsscience/dnscore/present"
)

// DHCID associates a DHCP client identity with a name (RFC 4701).
type DHCID struct {
	H    Header
	Data []byte
}

func (r *DHCID) Hdr() *Header        { return &r.H }
func (r *DHCID) RdataString() string { return present.Base64Chunked(r.Data) }
func (r *DHCID) Canonicalize()       {}
func (r *DHCID) RdataJSON() map[string]any {
	return map[string]any{"data": base64.StdEncoding.EncodeToString(r.Data)}
}
func (r *DHCID) Clone() RR {
	c := *r
	c.Data = append([]byte(nil), r.Data...)
	return &c
}

func (r *DHCID) PackRdata(w *dnswire.Writer) error {
	w.Bytes(r.Data)
	return nil
}

func (r *DHCID) UnpackRdata(src *dnswire.Reader) error {
	r.Data = src.Remaining()
	return nil
}

func init() {
	Register(TypeDHCID, func() RR { return &DHCID{} })
	RegisterParser(TypeDHCID, func(tokens []string) (RR, error) {
		data, err := present.DecodeBase64(joinTokens(tokens))
		if err != nil {
			return nil, err
		}
		return &DHCID{Data: data}, nil
	})
}
