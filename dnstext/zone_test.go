package dnstext

import (
	"strings"
	"testing"

	"github.com/dnsscience/dnscore/dnszone"
	"github.com/dnsscience/dnscore/rr"
)

const testZoneText = `$TTL 3600
$ORIGIN example.org.
@	IN	SOA	ns1.example.org. hostmaster.example.org. (
			2024010100 ; serial
			3600       ; refresh
			900        ; retry
			604800     ; expire
			300 )      ; minimum
	IN	NS	ns1
	IN	NS	ns2
ns1	IN	A	192.0.2.1
ns2	IN	A	192.0.2.2
www	IN	A	192.0.2.10
mail	IN	MX	10 mail.example.org.
mail	IN	A	192.0.2.20
`

func TestWriteZoneContainsDirectivesAndRecords(t *testing.T) {
	z, err := dnszone.Parse(testZoneText, "example.org.", 0, nil)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	out := WriteZone(z)
	for _, want := range []string{"$ORIGIN example.org.", "$TTL 300", "SOA", "NS", "192.0.2.1", "192.0.2.10"} {
		if !strings.Contains(out, want) {
			t.Errorf("WriteZone output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteZoneRoundTrips(t *testing.T) {
	z, err := dnszone.Parse(testZoneText, "example.org.", 0, nil)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	out := WriteZone(z)
	z2, err := dnszone.Parse(out, "example.org.", 0, nil)
	if err != nil {
		t.Fatalf("re-parsing WriteZone output failed: %v\n%s", err, out)
	}

	if z2.SOA == nil || z2.SOA.Serial != z.SOA.Serial {
		t.Fatalf("SOA serial did not round-trip")
	}
	if len(z2.Nameservers()) != len(z.Nameservers()) {
		t.Fatalf("nameserver count = %d, want %d", len(z2.Nameservers()), len(z.Nameservers()))
	}

	want := z.Lookup("www.example.org.", rr.TypeA)
	got := z2.Lookup("www.example.org.", rr.TypeA)
	if len(got) != len(want) || len(got) == 0 {
		t.Fatalf("www A records round-trip = %d, want %d", len(got), len(want))
	}
	if got[0].RdataString() != want[0].RdataString() {
		t.Errorf("www A rdata = %q, want %q", got[0].RdataString(), want[0].RdataString())
	}
}
