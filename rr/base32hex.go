package rr

import "encoding/base32"

// base32HexEncoding is RFC 5155's unpadded base32hex alphabet for NSEC3
// owner/next-hashed-name fields.
var base32HexEncoding = base32.HexEncoding.WithPadding(base32.NoPadding)

func base32Hex(b []byte) string {
	return base32HexEncoding.EncodeToString(b)
}

func decodeBase32Hex(s string) ([]byte, error) {
	return base32HexEncoding.DecodeString(s)
}
