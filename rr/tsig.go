package rr

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/dnsscience/dnscore/dnswire"
	"github.com/dnsscience/dnscore/present"
)

// TSIG carries a transaction signature over a message (RFC 8945 §4.2). It
// is never stored in a zone; it is appended to the additional section of a
// signed message and stripped before the message is otherwise processed.
type TSIG struct {
	H          Header
	Algorithm  string
	TimeSigned uint64 // 48-bit
	Fudge      uint16
	MAC        []byte
	OrigID     uint16
	Error      uint16
	OtherData  []byte
}

func (r *TSIG) Hdr() *Header { return &r.H }

func (r *TSIG) RdataString() string {
	return fmt.Sprintf("%s %d %d %s %d %d %s",
		r.Algorithm, r.TimeSigned, r.Fudge, present.Base64Chunked(r.MAC),
		r.OrigID, r.Error, present.HexChunked(r.OtherData))
}

func (r *TSIG) Canonicalize() {
	r.Algorithm = lowerName(r.Algorithm)
}

func (r *TSIG) RdataJSON() map[string]any {
	return map[string]any{
		"algorithm":  r.Algorithm,
		"timeSigned": r.TimeSigned,
		"fudge":      r.Fudge,
		"mac":        base64.StdEncoding.EncodeToString(r.MAC),
		"origID":     r.OrigID,
		"error":      r.Error,
		"otherData":  hex.EncodeToString(r.OtherData),
	}
}

func (r *TSIG) Clone() RR {
	c := *r
	c.MAC = append([]byte(nil), r.MAC...)
	c.OtherData = append([]byte(nil), r.OtherData...)
	return &c
}

func (r *TSIG) PackRdata(w *dnswire.Writer) error {
	if err := w.NameUncompressed(r.Algorithm); err != nil {
		return err
	}
	w.Uint48(r.TimeSigned)
	w.Uint16(r.Fudge)
	w.Uint16(uint16(len(r.MAC)))
	w.Bytes(r.MAC)
	w.Uint16(r.OrigID)
	w.Uint16(r.Error)
	w.Uint16(uint16(len(r.OtherData)))
	w.Bytes(r.OtherData)
	return nil
}

func (r *TSIG) UnpackRdata(src *dnswire.Reader) error {
	var err error
	if r.Algorithm, err = src.Name(); err != nil {
		return err
	}
	if r.TimeSigned, err = src.Uint48(); err != nil {
		return err
	}
	if r.Fudge, err = src.Uint16(); err != nil {
		return err
	}
	macLen, err := src.Uint16()
	if err != nil {
		return err
	}
	if r.MAC, err = src.Bytes(int(macLen)); err != nil {
		return err
	}
	if r.OrigID, err = src.Uint16(); err != nil {
		return err
	}
	if r.Error, err = src.Uint16(); err != nil {
		return err
	}
	otherLen, err := src.Uint16()
	if err != nil {
		return err
	}
	r.OtherData, err = src.Bytes(int(otherLen))
	return err
}

func init() {
	Register(TypeTSIG, func() RR { return &TSIG{} })
}
