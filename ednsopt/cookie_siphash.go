package ednsopt

import (
	"encoding/binary"
	"net"
	"time"

	"github.com/dchest/siphash"
)

// NewSipHashSigner returns a ServerCookieSigner computing
// SipHash-2-4(secret, client-cookie || client-IP || version || timestamp),
// the construction RFC 9018 §4 and common resolver implementations use.
// Secret rotation and freshness-window policy belong to the caller (server
// state), not this wire-format library.
func NewSipHashSigner(secret [16]byte, now func() time.Time) ServerCookieSigner {
	if now == nil {
		now = time.Now
	}
	return func(clientCookie [8]byte, clientIP net.IP) [8]byte {
		var out [8]byte
		h := siphash.New(secret[:])
		h.Write(clientCookie[:])
		h.Write(clientIP)
		h.Write([]byte{1, 0, 0, 0}) // version 1, reserved
		var ts [4]byte
		binary.BigEndian.PutUint32(ts[:], uint32(now().Unix()))
		h.Write(ts[:])
		binary.LittleEndian.PutUint64(out[:], h.Sum64())
		return out
	}
}
