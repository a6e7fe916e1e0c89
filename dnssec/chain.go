package dnssec

import (
	"fmt"

	"github.com/dnsscience/dnscore/rr"
)

// VerifyChain checks that every ds entry matches a DNSKEY in keys (keyed
// by key tag), recomputing the DS digest from the candidate key rather
// than trusting the parent's algorithm/digest-type claims blindly. It
// returns the subset of keys that are anchored by at least one DS.
func VerifyChain(dsSet []*rr.DS, owner string, keys []*rr.DNSKEY) ([]*rr.DNSKEY, error) {
	byTag := make(map[uint16][]*rr.DNSKEY, len(keys))
	for _, k := range keys {
		byTag[KeyTag(k)] = append(byTag[KeyTag(k)], k)
	}

	var trusted []*rr.DNSKEY
	for _, ds := range dsSet {
		candidates, ok := byTag[ds.KeyTag]
		if !ok {
			return nil, fmt.Errorf("dnssec: no DNSKEY with key tag %d for DS", ds.KeyTag)
		}
		var matched *rr.DNSKEY
		for _, k := range candidates {
			if k.Algorithm != ds.Algorithm {
				continue
			}
			fresh, err := MakeDS(owner, k, ds.DigestType)
			if err != nil {
				return nil, err
			}
			if string(fresh.Digest) == string(ds.Digest) {
				matched = k
				break
			}
		}
		if matched == nil {
			return nil, fmt.Errorf("dnssec: DS for key tag %d does not match any candidate DNSKEY digest", ds.KeyTag)
		}
		dup := false
		for _, k := range trusted {
			if k == matched {
				dup = true
				break
			}
		}
		if !dup {
			trusted = append(trusted, matched)
		}
	}
	return trusted, nil
}
