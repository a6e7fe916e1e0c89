package dnssec

import (
	"fmt"

	"github.com/dnsscience/dnscore/rr"
	"github.com/dnsscience/dnscore/stats"
)

// nonCovered are the types an answer or authority section may carry that
// never need their own RRSIG coverage check: the signatures and
// transaction machinery themselves.
var nonCovered = map[uint16]bool{
	rr.TypeRRSIG: true,
	rr.TypeSIG:   true,
	rr.TypeOPT:   true,
	rr.TypeTSIG:  true,
}

// RequiredTypes returns the set of RR types in section that a validator
// must find RRSIG coverage for. referral narrows the set to the types a
// delegation response actually needs signed (NS at a referral is
// unsigned by design; only DS/NSEC/NSEC3 matter there).
func RequiredTypes(section []rr.RR, referral bool) map[uint16]bool {
	required := make(map[uint16]bool)
	for _, r := range section {
		t := r.Hdr().Type
		if nonCovered[t] {
			continue
		}
		if referral && t != rr.TypeDS && t != rr.TypeNSEC && t != rr.TypeNSEC3 {
			continue
		}
		required[t] = true
	}
	return required
}

// VerifySection checks every signed RRset in section against the
// supplied zone signing keys (by key tag) and reports whether every
// required type ended up covered by a valid, in-window signature.
func VerifySection(v Verifier, section []rr.RR, zsk map[uint16]*rr.DNSKEY, now uint32, referral bool) error {
	required := RequiredTypes(section, referral)

	byType := make(map[uint16][]rr.RR)
	for _, r := range section {
		byType[r.Hdr().Type] = append(byType[r.Hdr().Type], r)
	}

	for _, r := range section {
		rrsig, ok := r.(*rr.RRSIG)
		if !ok {
			continue
		}
		if !InWindow(now, rrsig.Inception, rrsig.Expiration) {
			continue
		}
		key, ok := zsk[rrsig.KeyTag]
		if !ok {
			continue
		}
		if !required[rrsig.TypeCovered] {
			continue
		}
		rrset := byType[rrsig.TypeCovered]
		if err := Verify(v, rrsig, rrset, key); err != nil {
			continue
		}
		delete(required, rrsig.TypeCovered)
	}

	if len(required) > 0 {
		missing := make([]uint16, 0, len(required))
		for t := range required {
			missing = append(missing, t)
		}
		err := fmt.Errorf("dnssec: %d required type(s) left unverified: %v", len(missing), typeNames(missing))
		stats.ObserveDNSSEC("section", err)
		return err
	}
	stats.ObserveDNSSEC("section", nil)
	return nil
}

func typeNames(types []uint16) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = rr.TypeToString(t)
	}
	return out
}
