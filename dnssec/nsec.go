package dnssec

import (
	"bytes"
	"crypto/sha1"
	"encoding/base32"
	"fmt"

	"github.com/dnsscience/dnscore/name"
	"github.com/dnsscience/dnscore/rr"
	"github.com/dnsscience/dnscore/stats"
)

// HasType reports whether t appears in an NSEC/NSEC3 type bitmap.
func HasType(types []uint16, t uint16) bool {
	for _, v := range types {
		if v == t {
			return true
		}
	}
	return false
}

// canonicalKey returns a byte key for name whose plain byte order is the
// canonical DNS name order RFC 4034 §6.1 defines, the comparison basis
// for NSEC ownership ranges.
func canonicalKey(n string) []byte {
	labels, err := name.Labels(n)
	if err != nil {
		return nil
	}
	// Canonical DNS name order compares most-significant (rightmost)
	// label first, each label as an ASCII-lowercased octet string in
	// which a prefix sorts first. Labels are written rightmost first;
	// each label octet is written as 0x01 followed by the octet, and each
	// label ends with 0x00, so a plain byte compare gives that order.
	var buf bytes.Buffer
	for i := len(labels) - 1; i >= 0; i-- {
		for _, c := range labels[i] {
			if c >= 'A' && c <= 'Z' {
				c += 'a' - 'A'
			}
			buf.WriteByte(1)
			buf.WriteByte(c)
		}
		buf.WriteByte(0)
	}
	return buf.Bytes()
}

// covers reports whether qname falls in the open range (owner, next),
// both ends excluded, honoring zone-apex wraparound (next <= owner names the end of
// the zone, so the covered range wraps to before owner too).
func covers(owner, next, qname []byte) bool {
	if bytes.Compare(next, owner) <= 0 {
		return bytes.Compare(qname, owner) > 0 || bytes.Compare(qname, next) < 0
	}
	return bytes.Compare(qname, owner) > 0 && bytes.Compare(qname, next) < 0
}

// VerifyNXDOMAIN checks that nsec's owner/next-name range covers qname,
// proving qname does not exist.
func VerifyNXDOMAIN(nsec *rr.NSEC, qname string) error {
	owner := canonicalKey(nsec.H.Name)
	next := canonicalKey(nsec.NextName)
	q := canonicalKey(qname)
	if !covers(owner, next, q) {
		err := fmt.Errorf("dnssec: NSEC range %s-%s does not cover %s", nsec.H.Name, nsec.NextName, qname)
		stats.ObserveDNSSEC("nsec-nxdomain", err)
		return err
	}
	stats.ObserveDNSSEC("nsec-nxdomain", nil)
	return nil
}

// VerifyNODATA checks that nsec is the exact owner for qname and that
// qtype is absent from its type bitmap, proving the name exists but the
// type does not.
func VerifyNODATA(nsec *rr.NSEC, qname string, qtype uint16) error {
	if !name.Equal(nsec.H.Name, qname) {
		return fmt.Errorf("dnssec: NSEC owner %q != query name %q", nsec.H.Name, qname)
	}
	if HasType(nsec.Types, qtype) {
		return fmt.Errorf("dnssec: NSEC at %q asserts type %s exists", qname, rr.TypeToString(qtype))
	}
	return nil
}

var nsec3B32 = base32.HexEncoding.WithPadding(base32.NoPadding)

// NSEC3Hash computes the iterated SHA-1 hash RFC 5155 §5 defines for an
// owner name under the given salt and iteration count.
func NSEC3Hash(ownerName string, iterations uint16, salt []byte) []byte {
	wire, _ := canonicalOwnerBytes(ownerName)
	h := sha1.Sum(append(append([]byte{}, wire...), salt...))
	digest := h[:]
	for i := uint16(0); i < iterations; i++ {
		next := sha1.Sum(append(append([]byte{}, digest...), salt...))
		digest = next[:]
	}
	return digest
}

// VerifyNSEC3NXDOMAIN checks that rec's hashed owner/next-hash range
// covers the NSEC3 hash of qname.
func VerifyNSEC3NXDOMAIN(rec *rr.NSEC3, zoneOrigin, qname string) error {
	qhash := NSEC3Hash(qname, rec.Iterations, rec.Salt)
	ownerHash, err := ownerHashBytes(rec, zoneOrigin)
	if err != nil {
		return err
	}
	if !covers(ownerHash, rec.NextHashed, qhash) {
		err := fmt.Errorf("dnssec: NSEC3 hash range does not cover %s", qname)
		stats.ObserveDNSSEC("nsec3-nxdomain", err)
		return err
	}
	stats.ObserveDNSSEC("nsec3-nxdomain", nil)
	return nil
}

// ownerHashBytes decodes an NSEC3 record's base32hex owner label (the
// first label of its owner name) back to raw hash bytes.
func ownerHashBytes(rec *rr.NSEC3, zoneOrigin string) ([]byte, error) {
	labels, err := name.Labels(rec.H.Name)
	if err != nil || len(labels) == 0 {
		return nil, fmt.Errorf("dnssec: malformed NSEC3 owner %q", rec.H.Name)
	}
	return nsec3B32.DecodeString(string(labels[0]))
}
