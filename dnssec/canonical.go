package dnssec

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/dnsscience/dnscore/dnswire"
	"github.com/dnsscience/dnscore/name"
	"github.com/dnsscience/dnscore/rr"
)

// BuildTBS assembles the to-be-signed octet string for sig over rrset,
// per RFC 4034 §3.1.8.1. rrset must be non-empty and uniform in owner
// name, type, and class; every member's owner must have at least
// sig.Labels labels (the root excluded).
func BuildTBS(sig Signature, rrset []rr.RR) ([]byte, error) {
	if len(rrset) == 0 {
		return nil, fmt.Errorf("dnssec: empty RRset")
	}
	first := rrset[0].Hdr()
	for _, r := range rrset[1:] {
		h := r.Hdr()
		if !name.Equal(h.Name, first.Name) || h.Type != first.Type || h.Class != first.Class {
			return nil, fmt.Errorf("dnssec: RRset is not uniform in owner/type/class")
		}
	}

	type canonRR struct {
		full  []byte
		rdata []byte
	}
	canon := make([]canonRR, 0, len(rrset))
	for _, r := range rrset {
		h := r.Hdr()
		ownerLabels := name.CountLabels(h.Name)
		if int(sig.Labels) > ownerLabels {
			return nil, fmt.Errorf("dnssec: owner %q has fewer labels than RRSIG.labels", h.Name)
		}
		owner := name.ToLower(h.Name)
		if int(sig.Labels) < ownerLabels {
			owner = "*." + wildcardSuffix(owner, int(sig.Labels))
		}

		clone := r.Clone()
		*clone.Hdr() = rr.Header{Name: owner, Type: h.Type, Class: h.Class, TTL: sig.OrigTTL}
		clone.Canonicalize()

		full, rdata, err := encodeCanonicalRR(clone)
		if err != nil {
			return nil, err
		}
		canon = append(canon, canonRR{full: full, rdata: rdata})
	}

	// RFC 4034 §6.3: order is determined by a byte-wise comparison of the
	// rdata only, not the owner/type/class/TTL/rdlength that precede it.
	sort.Slice(canon, func(i, j int) bool {
		return bytes.Compare(canon[i].rdata, canon[j].rdata) < 0
	})
	deduped := canon[:0]
	for i, c := range canon {
		if i > 0 && bytes.Equal(c.rdata, deduped[len(deduped)-1].rdata) {
			continue
		}
		deduped = append(deduped, c)
	}

	prefix, err := encodeSigPrefix(sig)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	out.Write(prefix)
	for _, c := range deduped {
		out.Write(c.full)
	}
	return out.Bytes(), nil
}

// wildcardSuffix returns the last n labels of owner, in presentation
// form, for RFC 4034 §3.1.3 wildcard expansion.
func wildcardSuffix(owner string, n int) string {
	labels, err := name.Labels(owner)
	if err != nil || n > len(labels) {
		return owner
	}
	return name.ToPresentation(labels[len(labels)-n:])
}

// encodeCanonicalRR renders r in canonical wire form: uncompressed name,
// type, class, TTL, rdlength, canonicalized rdata. It returns both the
// full encoding (for output) and the rdata-only slice (for RFC 4034
// §6.3 ordering, which compares rdata alone).
func encodeCanonicalRR(r rr.RR) (full, rdata []byte, err error) {
	h := r.Hdr()
	w := dnswire.NewWriter(nil, false)
	if err := w.NameUncompressed(h.Name); err != nil {
		return nil, nil, err
	}
	w.Uint16(h.Type)
	w.Uint16(h.Class)
	w.Uint32(h.TTL)
	rdlenOff := w.Offset()
	w.Uint16(0)
	start := w.Offset()
	if err := r.PackRdata(w); err != nil {
		return nil, nil, err
	}
	rdlen := w.Offset() - start
	w.Buf[rdlenOff] = byte(rdlen >> 8)
	w.Buf[rdlenOff+1] = byte(rdlen)
	return w.Buf, w.Buf[start:], nil
}

// Signature is the subset of RRSIG fields BuildTBS needs, factored out so
// Sign can build the to-be-signed input before the RRSIG record exists.
type Signature struct {
	TypeCovered uint16
	Algorithm   uint8
	Labels      uint8
	OrigTTL     uint32
	Expiration  uint32
	Inception   uint32
	KeyTag      uint16
	SignerName  string
}

func sigFromRRSIG(r *rr.RRSIG) Signature {
	return Signature{
		TypeCovered: r.TypeCovered, Algorithm: r.Algorithm, Labels: r.Labels,
		OrigTTL: r.OrigTTL, Expiration: r.Expiration, Inception: r.Inception,
		KeyTag: r.KeyTag, SignerName: r.SignerName,
	}
}

// encodeSigPrefix renders the RRSIG_TBS_prefix: the RRSIG rdata fields up
// to (but excluding) the signature, with the signer name lowercased and
// uncompressed.
func encodeSigPrefix(sig Signature) ([]byte, error) {
	w := dnswire.NewWriter(nil, false)
	w.Uint16(sig.TypeCovered)
	w.Uint8(sig.Algorithm)
	w.Uint8(sig.Labels)
	w.Uint32(sig.OrigTTL)
	w.Uint32(sig.Expiration)
	w.Uint32(sig.Inception)
	w.Uint16(sig.KeyTag)
	if err := w.NameUncompressed(strings.ToLower(sig.SignerName)); err != nil {
		return nil, err
	}
	return w.Buf, nil
}
