package dnssec

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"

	"github.com/dnsscience/dnscore/dnswire"
	"github.com/dnsscience/dnscore/name"
	"github.com/dnsscience/dnscore/rr"
)

// DS digest type codes (RFC 4034 §5.1.4, RFC 4509, RFC 6605).
const (
	DigestSHA1   uint8 = 1
	DigestSHA256 uint8 = 2
	DigestGOST94 uint8 = 3
	DigestSHA384 uint8 = 4
)

// digestHashers are simple fixed one-way digests, not a pluggable
// asymmetric-crypto surface, so they're used directly from the standard
// library rather than behind a capability interface.
var digestHashers = map[uint8]func() hash.Hash{
	DigestSHA1:   sha1.New,
	DigestSHA256: sha256.New,
	DigestSHA384: sha512.New384,
}

// MakeDS computes the delegation-signer record a parent zone publishes
// for key, per RFC 4034 §5.1.4: digest = hash(canonical owner || DNSKEY
// rdata).
func MakeDS(owner string, key *rr.DNSKEY, digestType uint8) (*rr.DS, error) {
	newHash, ok := digestHashers[digestType]
	if !ok {
		return nil, fmt.Errorf("dnssec: unsupported DS digest type %d", digestType)
	}
	h := newHash()
	ownerBytes, err := canonicalOwnerBytes(owner)
	if err != nil {
		return nil, err
	}
	h.Write(ownerBytes)
	h.Write(encodeKeyRdata(key))

	out := &rr.DS{}
	out.KeyTag = KeyTag(key)
	out.Algorithm = key.Algorithm
	out.DigestType = digestType
	out.Digest = h.Sum(nil)
	return out, nil
}

// canonicalOwnerBytes returns the uncompressed, lowercased wire encoding
// of a name, the form every DNSSEC digest and signature input uses.
func canonicalOwnerBytes(owner string) ([]byte, error) {
	w := dnswire.NewWriter(nil, false)
	if err := w.NameUncompressed(name.ToLower(owner)); err != nil {
		return nil, err
	}
	return w.Buf, nil
}
