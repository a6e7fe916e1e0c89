package dnstsig

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"

	"github.com/dnsscience/dnscore/name"
)

// TSIG algorithm names, presentation form (RFC 8945 §6).
const (
	HMACMD5    = "hmac-md5.sig-alg.reg.int."
	HMACSHA1   = "hmac-sha1."
	HMACSHA256 = "hmac-sha256."
	HMACSHA512 = "hmac-sha512."
)

var hashConstructors = map[string]func() hash.Hash{
	HMACMD5:    md5.New,
	HMACSHA1:   sha1.New,
	HMACSHA256: sha256.New,
	HMACSHA512: sha512.New,
}

func macHash(algorithm string) (func() hash.Hash, error) {
	h, ok := hashConstructors[name.ToLower(name.Fqdn(algorithm))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, algorithm)
	}
	return h, nil
}
