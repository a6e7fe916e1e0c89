package dnszone

import (
	"net"
	"testing"

	"github.com/dnsscience/dnscore/rr"
)

func mustAdd(t *testing.T, z *Zone, r rr.RR) {
	t.Helper()
	if err := z.AddRecord(r); err != nil {
		t.Fatalf("AddRecord(%v) error: %v", r, err)
	}
}

// mustRR builds an RR of rtype from presentation-form rdata tokens and
// stamps the given header onto it, for types (like NS/CNAME/MX) whose
// struct embeds an unexported helper type and so can't be built with a
// keyed literal outside the rr package.
func mustRR(t *testing.T, rtype uint16, hdr rr.Header, tokens ...string) rr.RR {
	t.Helper()
	r, err := rr.ParseRdata(rtype, tokens)
	if err != nil {
		t.Fatalf("ParseRdata(%s, %v) error: %v", rr.TypeToString(rtype), tokens, err)
	}
	*r.Hdr() = hdr
	return r
}

func baseZone(t *testing.T) *Zone {
	z := NewZone("example.org.")
	mustAdd(t, z, &rr.SOA{
		H:      rr.Header{Name: "example.org.", Type: rr.TypeSOA, Class: rr.ClassINET, TTL: 3600},
		Ns:     "ns1.example.org.", Mbox: "hostmaster.example.org.",
		Serial: 1, Refresh: 3600, Retry: 900, Expire: 604800, Minttl: 300,
	})
	mustAdd(t, z, mustRR(t, rr.TypeNS, rr.Header{Name: "example.org.", Type: rr.TypeNS, Class: rr.ClassINET, TTL: 3600}, "ns1.example.org."))
	mustAdd(t, z, &rr.A{H: rr.Header{Name: "ns1.example.org.", Type: rr.TypeA, Class: rr.ClassINET, TTL: 3600}, IP: net.ParseIP("192.0.2.1")})
	return z
}

func TestValidateHealthyZone(t *testing.T) {
	z := baseZone(t)
	if err := z.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestValidateRejectsCNAMECoexistence(t *testing.T) {
	z := baseZone(t)
	mustAdd(t, z, mustRR(t, rr.TypeCNAME, rr.Header{Name: "dup.example.org.", Type: rr.TypeCNAME, Class: rr.ClassINET, TTL: 300}, "elsewhere.example.org."))
	mustAdd(t, z, &rr.A{H: rr.Header{Name: "dup.example.org.", Type: rr.TypeA, Class: rr.ClassINET, TTL: 300}, IP: net.ParseIP("192.0.2.5")})
	if err := z.Validate(); err == nil {
		t.Error("Validate() should reject a CNAME coexisting with another RRset")
	}
}

func TestValidateRejectsMXToCNAME(t *testing.T) {
	z := baseZone(t)
	mustAdd(t, z, mustRR(t, rr.TypeCNAME, rr.Header{Name: "alias.example.org.", Type: rr.TypeCNAME, Class: rr.ClassINET, TTL: 300}, "real.example.org."))
	mustAdd(t, z, mustRR(t, rr.TypeMX, rr.Header{Name: "mail.example.org.", Type: rr.TypeMX, Class: rr.ClassINET, TTL: 300}, "10", "alias.example.org."))

	if err := z.Validate(); err == nil {
		t.Error("Validate() should reject an MX pointing at a CNAME")
	}
}

func TestGetStats(t *testing.T) {
	z := baseZone(t)
	stats := z.GetStats()
	if stats.Records != 3 {
		t.Errorf("Records = %d, want 3", stats.Records)
	}
	if stats.Owners != 2 {
		t.Errorf("Owners = %d, want 2", stats.Owners)
	}
}

func TestLookupWildcardClonesOwner(t *testing.T) {
	z := baseZone(t)
	mustAdd(t, z, &rr.A{H: rr.Header{Name: "*.example.org.", Type: rr.TypeA, Class: rr.ClassINET, TTL: 300}, IP: net.ParseIP("192.0.2.99")})

	got := z.Lookup("anything.example.org.", rr.TypeA)
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
	if got[0].Hdr().Name != "anything.example.org." {
		t.Errorf("wildcard match owner = %q, want the queried name", got[0].Hdr().Name)
	}
	// the template record stored in the zone must be untouched
	tpl := z.Records["*.example.org."][rr.TypeA][0]
	if tpl.Hdr().Name != "*.example.org." {
		t.Errorf("wildcard template record mutated: %q", tpl.Hdr().Name)
	}
}
