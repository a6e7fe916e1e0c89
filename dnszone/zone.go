package dnszone

import (
	"fmt"

	"github.com/dnsscience/dnscore/name"
	"github.com/dnsscience/dnscore/rr"
)

// Zone holds a fully parsed zone: its SOA, and every other record indexed
// by owner name and type, the way a server needs to answer queries
// against it.
type Zone struct {
	Origin string
	Class  uint16

	SOA *rr.SOA

	// Records maps owner name -> type -> the RRset at that (owner, type).
	Records map[string]map[uint16][]rr.RR
}

// NewZone returns an empty zone rooted at origin.
func NewZone(origin string) *Zone {
	return &Zone{
		Origin:  name.Fqdn(origin),
		Class:   rr.ClassINET,
		Records: make(map[string]map[uint16][]rr.RR),
	}
}

// AddRecord inserts r into the zone, indexed under its own owner and
// type. The SOA record is additionally cached on Zone.SOA.
func (z *Zone) AddRecord(r rr.RR) error {
	h := r.Hdr()
	if !name.IsSubDomain(z.Origin, h.Name) {
		return fmt.Errorf("dnszone: record %s not within zone %s", h.Name, z.Origin)
	}
	owner := name.ToLower(h.Name)
	if z.Records[owner] == nil {
		z.Records[owner] = make(map[uint16][]rr.RR)
	}
	z.Records[owner][h.Type] = append(z.Records[owner][h.Type], r)
	if h.Type == rr.TypeSOA {
		if soa, ok := r.(*rr.SOA); ok {
			z.SOA = soa
		}
	}
	return nil
}

// Lookup returns the RRset at (owner, rrtype), resolving a wildcard
// ancestor (RFC 1035 §4.3.3) when no exact match exists.
func (z *Zone) Lookup(owner string, rrtype uint16) []rr.RR {
	owner = name.ToLower(name.Fqdn(owner))
	if typeMap, ok := z.Records[owner]; ok {
		if rrs, ok := typeMap[rrtype]; ok {
			return rrs
		}
	}

	labels, err := name.Labels(owner)
	if err != nil {
		return nil
	}
	for i := 1; i < len(labels); i++ {
		wildcard := "*." + name.ToPresentation(labels[i:])
		typeMap, ok := z.Records[wildcard]
		if !ok {
			continue
		}
		rrs, ok := typeMap[rrtype]
		if !ok {
			continue
		}
		out := make([]rr.RR, len(rrs))
		for j, r := range rrs {
			clone := r.Clone()
			*clone.Hdr() = *r.Hdr()
			clone.Hdr().Name = owner
			out[j] = clone
		}
		return out
	}
	return nil
}

// AllRecords returns every record in the zone, in no particular order.
func (z *Zone) AllRecords() []rr.RR {
	var out []rr.RR
	for _, typeMap := range z.Records {
		for _, rrs := range typeMap {
			out = append(out, rrs...)
		}
	}
	return out
}

// Nameservers returns the NS RRset at the zone apex.
func (z *Zone) Nameservers() []*rr.NS {
	rrs := z.Lookup(z.Origin, rr.TypeNS)
	out := make([]*rr.NS, 0, len(rrs))
	for _, r := range rrs {
		if ns, ok := r.(*rr.NS); ok {
			out = append(out, ns)
		}
	}
	return out
}

// Validate performs the structural checks RFC 1035/2181 place on a zone:
// an SOA at the apex, at least one apex NS, in-zone NS glue, CNAME
// exclusivity, and MX targets that aren't themselves CNAMEs.
func (z *Zone) Validate() error {
	if z.SOA == nil {
		return fmt.Errorf("dnszone: zone %s has no SOA record", z.Origin)
	}
	if name.ToLower(z.SOA.H.Name) != z.Origin {
		return fmt.Errorf("dnszone: SOA owner %s does not match origin %s", z.SOA.H.Name, z.Origin)
	}
	if len(z.Nameservers()) == 0 {
		return fmt.Errorf("dnszone: zone %s has no apex NS records", z.Origin)
	}
	for _, ns := range z.Nameservers() {
		if name.IsSubDomain(z.Origin, ns.Target) {
			if len(z.Lookup(ns.Target, rr.TypeA)) == 0 && len(z.Lookup(ns.Target, rr.TypeAAAA)) == 0 {
				return fmt.Errorf("dnszone: nameserver %s is in-zone but has no glue", ns.Target)
			}
		}
	}
	for owner, typeMap := range z.Records {
		if cnames, ok := typeMap[rr.TypeCNAME]; ok {
			if len(typeMap) > 1 {
				return fmt.Errorf("dnszone: CNAME at %s coexists with other types", owner)
			}
			if len(cnames) > 1 {
				return fmt.Errorf("dnszone: multiple CNAME records at %s", owner)
			}
		}
	}
	for owner, typeMap := range z.Records {
		for _, r := range typeMap[rr.TypeMX] {
			mx := r.(*rr.MX)
			if mx.Name == "." {
				continue // RFC 7505 null MX
			}
			if len(z.Lookup(mx.Name, rr.TypeCNAME)) > 0 {
				return fmt.Errorf("dnszone: MX at %s points to CNAME %s", owner, mx.Name)
			}
		}
	}
	return nil
}

// NextSerial computes the zone's next SOA serial under the common
// YYYYMMDDnn convention: when current is below today's YYYYMMDD00 it
// returns today's YYYYMMDD00, otherwise current+1.
func NextSerial(current uint32, today string) uint32 {
	var todaySerial uint32
	fmt.Sscanf(today+"00", "%d", &todaySerial)
	if current < todaySerial {
		return todaySerial
	}
	if current < todaySerial+99 {
		return current + 1
	}
	return current + 1
}

// Stats summarizes a zone's size.
type Stats struct {
	Owners     int
	RRSets     int
	Records    int
}

// GetStats reports zone size.
func (z *Zone) GetStats() Stats {
	var s Stats
	s.Owners = len(z.Records)
	for _, typeMap := range z.Records {
		for _, rrs := range typeMap {
			s.RRSets++
			s.Records += len(rrs)
		}
	}
	return s
}
