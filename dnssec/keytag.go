// Package dnssec implements RFC 4034/4035 signature and delegation-trust
// mechanics: key tags, DS digests, RRSIG canonical-form construction, and
// validation, including the DS-to-DNSKEY chain-of-trust check. It never
// implements an asymmetric primitive itself; Verify and Sign take a
// Verifier/Signer capability so callers bring their own crypto library.
package dnssec

import "github.com/dnsscience/dnscore/rr"

// AlgRSAMD5 is the one DNSKEY algorithm with a bespoke key tag rule
// (RFC 4034 Appendix B.1); every other algorithm uses the generic fold.
const AlgRSAMD5 = 1

// KeyTag computes the 16-bit key tag RRSIG.keyTag must match (RFC 4034
// Appendix B). The RSA/MD5 special case reads the tag out of the key's
// own rdata; everything else is a ones'-complement fold of 16-bit words
// over the encoded rdata.
func KeyTag(key *rr.DNSKEY) uint16 {
	rdata := encodeKeyRdata(key)
	if key.Algorithm == AlgRSAMD5 {
		if len(rdata) < 2 {
			return 0
		}
		return uint16(rdata[len(rdata)-2])<<8 | uint16(rdata[len(rdata)-1])
	}
	return keyTagFold(rdata)
}

func keyTagFold(rdata []byte) uint16 {
	var ac uint32
	for i := 0; i < len(rdata); i++ {
		if i&1 == 0 {
			ac += uint32(rdata[i]) << 8
		} else {
			ac += uint32(rdata[i])
		}
	}
	ac += (ac >> 16) & 0xFFFF
	return uint16(ac & 0xFFFF)
}

// encodeKeyRdata renders a DNSKEY's rdata in wire form (flags, protocol,
// algorithm, public key), the byte string the key tag is computed over.
func encodeKeyRdata(key *rr.DNSKEY) []byte {
	buf := make([]byte, 4, 4+len(key.PublicKey))
	buf[0] = byte(key.Flags >> 8)
	buf[1] = byte(key.Flags)
	buf[2] = key.Protocol
	buf[3] = key.Algorithm
	return append(buf, key.PublicKey...)
}
