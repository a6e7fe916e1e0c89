package dnssec

import (
	"fmt"

	"github.com/dnsscience/dnscore/name"
	"github.com/dnsscience/dnscore/rr"
)

// Verifier checks an asymmetric signature. Implementations wrap a real
// crypto library (RSA/ECDSA/Ed25519/...); this package never implements
// one itself.
type Verifier interface {
	Verify(algorithm uint8, tbs, signature, publicKey []byte) error
}

// Signer produces an asymmetric signature, the counterpart of Verifier.
type Signer interface {
	Sign(algorithm uint8, tbs, privateKey []byte) ([]byte, error)
}

const dnskeyProtocol = 3

// Verify checks rrsig against rrset using key, per RFC 4035 §5.3.2: the
// key tag, class, algorithm, and signer name must all line up, and the
// constructed TBS must verify under v.
func Verify(v Verifier, rrsig *rr.RRSIG, rrset []rr.RR, key *rr.DNSKEY) error {
	if KeyTag(key) != rrsig.KeyTag {
		return fmt.Errorf("dnssec: key tag mismatch: RRSIG=%d DNSKEY=%d", rrsig.KeyTag, KeyTag(key))
	}
	if key.Algorithm != rrsig.Algorithm {
		return fmt.Errorf("dnssec: algorithm mismatch: RRSIG=%d DNSKEY=%d", rrsig.Algorithm, key.Algorithm)
	}
	if key.Protocol != dnskeyProtocol {
		return fmt.Errorf("dnssec: DNSKEY protocol %d != 3", key.Protocol)
	}
	if len(rrset) > 0 && rrset[0].Hdr().Class != key.H.Class {
		return fmt.Errorf("dnssec: RRset class %d != DNSKEY class %d", rrset[0].Hdr().Class, key.H.Class)
	}
	if !name.Equal(rrsig.SignerName, key.H.Name) {
		return fmt.Errorf("dnssec: signer name %q != DNSKEY owner %q", rrsig.SignerName, key.H.Name)
	}
	if len(rrset) > 0 && rrset[0].Hdr().Type != rrsig.TypeCovered {
		return fmt.Errorf("dnssec: RRset type %d != RRSIG.typeCovered %d", rrset[0].Hdr().Type, rrsig.TypeCovered)
	}

	tbs, err := BuildTBS(sigFromRRSIG(rrsig), rrset)
	if err != nil {
		return err
	}
	return v.Verify(rrsig.Algorithm, tbs, rrsig.Signature, key.PublicKey)
}

// Sign builds a fresh RRSIG over rrset using key and s. Inception and
// expiration are stored exactly as passed; Sign does not derive them from
// the current time. origTTL and typeCovered are taken from the first
// member of the RRset, and labels from its owner name, not counting a
// leading wildcard label.
func Sign(s Signer, rrset []rr.RR, signerName string, key *rr.DNSKEY, inception, expiration uint32, privateKey []byte) (*rr.RRSIG, error) {
	if len(rrset) == 0 {
		return nil, fmt.Errorf("dnssec: cannot sign an empty RRset")
	}
	owner := rrset[0].Hdr().Name
	labels := uint8(name.CountLabels(owner))
	if isWildcard(owner) {
		labels--
	}

	sig := Signature{
		TypeCovered: rrset[0].Hdr().Type,
		Algorithm:   key.Algorithm,
		Labels:      labels,
		OrigTTL:     rrset[0].Hdr().TTL,
		Expiration:  expiration,
		Inception:   inception,
		KeyTag:      KeyTag(key),
		SignerName:  signerName,
	}
	tbs, err := BuildTBS(sig, rrset)
	if err != nil {
		return nil, err
	}
	signature, err := s.Sign(key.Algorithm, tbs, privateKey)
	if err != nil {
		return nil, err
	}

	out := &rr.RRSIG{}
	out.TypeCovered = sig.TypeCovered
	out.Algorithm = sig.Algorithm
	out.Labels = sig.Labels
	out.OrigTTL = sig.OrigTTL
	out.Expiration = sig.Expiration
	out.Inception = sig.Inception
	out.KeyTag = sig.KeyTag
	out.SignerName = signerName
	out.Signature = signature
	return out, nil
}

func isWildcard(owner string) bool {
	labels, err := name.Labels(owner)
	return err == nil && len(labels) > 0 && len(labels[0]) == 1 && labels[0][0] == '*'
}
