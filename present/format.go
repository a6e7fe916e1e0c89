// Package present implements the field-level presentation-form formatting
// used by the rr package's RdataString methods and presentation-form rdata
// parsers (RFC 1035 §5, RFC 4034 §3.2): chunked hex/base64, the DNS 32-bit
// signature-time format, and small token helpers.
package present

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// chunk width used for long hex/base64 fields in zone-file output, matching
// BIND's convention of wrapping at 56 columns inside a parenthesized group.
const chunkWidth = 56

// HexChunked renders b as uppercase hex, inserting a space every 56
// characters so multi-line presentation output stays legible.
func HexChunked(b []byte) string {
	return chunk(strings.ToUpper(hex.EncodeToString(b)))
}

// Base64Chunked renders b as standard base64, chunked the same way.
func Base64Chunked(b []byte) string {
	return chunk(base64.StdEncoding.EncodeToString(b))
}

func chunk(s string) string {
	if len(s) <= chunkWidth {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i += chunkWidth {
		if i > 0 {
			sb.WriteByte(' ')
		}
		end := i + chunkWidth
		if end > len(s) {
			end = len(s)
		}
		sb.WriteString(s[i:end])
	}
	return sb.String()
}

// DecodeHex strips whitespace before decoding, since chunked presentation
// form splits hex across multiple tokens/lines.
func DecodeHex(s string) ([]byte, error) {
	return hex.DecodeString(stripSpace(s))
}

// DecodeBase64 strips whitespace before decoding, for the same reason.
func DecodeBase64(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(stripSpace(s))
}

func stripSpace(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// TimeToString renders a 32-bit DNS timestamp (seconds since the Unix
// epoch, mod 2^32) as YYYYMMDDhhmmss UTC.
func TimeToString(t uint32) string {
	return time.Unix(int64(t), 0).UTC().Format("20060102150405")
}

// StringToTime parses YYYYMMDDhhmmss UTC back into a 32-bit DNS timestamp:
// the parsed instant's seconds since the Unix epoch, mod 2^32 (RFC 4034
// §3.1.5). The intermediate value is chosen relative to now, but it is
// congruent to the parsed instant mod 2^32, so the result does not depend
// on now.
func StringToTime(s string, now time.Time) (uint32, error) {
	t, err := time.Parse("20060102150405", s)
	if err != nil {
		return 0, fmt.Errorf("present: bad time %q: %w", s, err)
	}
	sec := t.Unix()
	mod := int64(1) << 32
	base := now.Unix()
	// Choose the representative in (base-2^31, base+2^31] congruent to sec
	// mod 2^32, matching DNS serial-number comparison semantics.
	delta := ((sec-base)%mod + mod) % mod
	if delta > mod/2 {
		delta -= mod
	}
	return uint32(uint64(base+delta) & 0xFFFFFFFF), nil
}

// SerialAfter reports whether a is strictly after b using RFC 1982 serial
// number arithmetic (used for RRSIG validity-window comparisons, mod 2^32).
func SerialAfter(a, b uint32) bool {
	return int32(a-b) > 0
}

// SerialBefore reports whether a is strictly before b under the same
// arithmetic.
func SerialBefore(a, b uint32) bool {
	return int32(a-b) < 0
}

// ParseUint parses an unsigned decimal token into the given bit width.
func ParseUint(tok string, bits int) (uint64, error) {
	v, err := strconv.ParseUint(tok, 10, bits)
	if err != nil {
		return 0, fmt.Errorf("present: bad integer %q: %w", tok, err)
	}
	return v, nil
}

var errEmptyToken = errors.New("present: empty token")

// Need returns the i'th token or an error if too few were supplied.
func Need(tokens []string, i int, what string) (string, error) {
	if i >= len(tokens) {
		return "", fmt.Errorf("present: missing %s", what)
	}
	if tokens[i] == "" {
		return "", errEmptyToken
	}
	return tokens[i], nil
}
