package rr

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/dnsscience/dnscore/dnswire"
)

// UNKNOWN is the fallback variant for any type code the registry has no
// dedicated Go type for (RFC 3597). It preserves the raw, rdlength-bounded
// rdata payload byte for byte.
type UNKNOWN struct {
	H    Header
	Data []byte
}

func (u *UNKNOWN) Hdr() *Header { return &u.H }

func (u *UNKNOWN) RdataString() string {
	return "\\# " + strconv.Itoa(len(u.Data)) + " " + hex.EncodeToString(u.Data)
}

func (u *UNKNOWN) PackRdata(w *dnswire.Writer) error {
	w.Bytes(u.Data)
	return nil
}

func (u *UNKNOWN) UnpackRdata(r *dnswire.Reader) error {
	u.Data = r.Remaining()
	return nil
}

func (u *UNKNOWN) Canonicalize() {}

func (u *UNKNOWN) RdataJSON() map[string]any {
	return map[string]any{"data": hex.EncodeToString(u.Data)}
}

func (u *UNKNOWN) Clone() RR {
	c := &UNKNOWN{H: u.H, Data: append([]byte(nil), u.Data...)}
	return c
}

// ParseUnknownRdata parses the RFC 3597 "\# <len> <hex>" generic form used
// by the zone parser whenever a type isn't in the schema-driven path.
func ParseUnknownRdata(tokens []string) ([]byte, error) {
	if len(tokens) < 1 || tokens[0] != "\\#" {
		return nil, strconvErr("not an RFC 3597 unknown rdata")
	}
	if len(tokens) < 2 {
		return []byte{}, nil
	}
	n, err := strconv.Atoi(tokens[1])
	if err != nil {
		return nil, err
	}
	hexStr := strings.Join(tokens[2:], "")
	b, err := hex.DecodeString(hexStr)
	if err != nil {
		return nil, err
	}
	if len(b) != n {
		return nil, strconvErr("rdata length mismatch")
	}
	return b, nil
}

type strErr string

func (e strErr) Error() string { return string(e) }
func strconvErr(s string) error { return strErr(s) }
