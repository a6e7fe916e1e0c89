package dnszone

import (
	"testing"

	"github.com/dnsscience/dnscore/rr"
)

const testZone = `$TTL 3600
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
	IN	A	192.0.2.11
mail	IN	MX	10 mail.example.org.
mail	IN	A	192.0.2.20
*	IN	A	192.0.2.99
`

func TestParseZoneBasics(t *testing.T) {
	z, err := Parse(testZone, "example.org.", 0, nil)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if z.SOA == nil {
		t.Fatal("zone has no SOA")
	}
	if z.SOA.Serial != 2024010100 {
		t.Errorf("SOA serial = %d", z.SOA.Serial)
	}
	if len(z.Nameservers()) != 2 {
		t.Errorf("got %d nameservers, want 2", len(z.Nameservers()))
	}

	www := z.Lookup("www.example.org.", rr.TypeA)
	if len(www) != 2 {
		t.Fatalf("www A records = %d, want 2 (owner elision)", len(www))
	}

	mxRRs := z.Lookup("mail.example.org.", rr.TypeMX)
	if len(mxRRs) != 1 {
		t.Fatalf("mail MX records = %d, want 1", len(mxRRs))
	}
	mx := mxRRs[0].(*rr.MX)
	if mx.Name != "mail.example.org." || mx.Pref != 10 {
		t.Errorf("MX = %+v", mx)
	}

	wild := z.Lookup("anything.example.org.", rr.TypeA)
	if len(wild) != 1 {
		t.Fatalf("wildcard lookup returned %d records, want 1", len(wild))
	}

	if err := z.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestParseMultiLineParens(t *testing.T) {
	src := "$ORIGIN example.org.\n@ IN SOA ns1 hostmaster (1 2 3 4 5)\n@ IN NS ns1\nns1 IN A 192.0.2.1\n"
	z, err := Parse(src, "example.org.", 3600, nil)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if z.SOA == nil || z.SOA.Serial != 1 {
		t.Fatalf("SOA not parsed through paren group: %+v", z.SOA)
	}
}

func TestParseDefaultTTLFallsThroughToDirective(t *testing.T) {
	src := "$ORIGIN example.org.\n$TTL 7200\n@ IN SOA ns1 hostmaster (1 2 3 4 5)\n@ IN NS ns1\nns1 60 IN A 192.0.2.1\nns2 IN A 192.0.2.2\n"
	z, err := Parse(src, "example.org.", 0, nil)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	a1 := z.Lookup("ns1.example.org.", rr.TypeA)[0]
	if a1.Hdr().TTL != 60 {
		t.Errorf("ns1 TTL = %d, want explicit 60", a1.Hdr().TTL)
	}
	a2 := z.Lookup("ns2.example.org.", rr.TypeA)[0]
	if a2.Hdr().TTL != 7200 {
		t.Errorf("ns2 TTL = %d, want $TTL default 7200", a2.Hdr().TTL)
	}
}

type mapResolver map[string]string

func (m mapResolver) ReadInclude(path string) (string, error) {
	return m[path], nil
}

func TestParseInclude(t *testing.T) {
	resolver := mapResolver{
		"extra.zone": "extra IN A 192.0.2.50\n",
	}
	src := "$ORIGIN example.org.\n@ IN SOA ns1 hostmaster (1 2 3 4 5)\n@ IN NS ns1\nns1 IN A 192.0.2.1\n$INCLUDE extra.zone\n"
	z, err := Parse(src, "example.org.", 3600, resolver)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(z.Lookup("extra.example.org.", rr.TypeA)) != 1 {
		t.Error("$INCLUDE record was not added to the zone")
	}
}

func TestGenerateExpandsRange(t *testing.T) {
	src := "$ORIGIN example.org.\n@ IN SOA ns1 hostmaster (1 2 3 4 5)\n@ IN NS ns1\nns1 IN A 192.0.2.1\n$GENERATE 1-3 host$ IN A 192.0.2.$\n"
	z, err := Parse(src, "example.org.", 3600, nil)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	for i := 1; i <= 3; i++ {
		recs := z.Lookup(hostName(i), rr.TypeA)
		if len(recs) != 1 {
			t.Errorf("host%d: got %d A records, want 1", i, len(recs))
		}
	}
}

func hostName(i int) string {
	return "host" + itoa(i) + ".example.org."
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var b []byte
	for i > 0 {
		b = append([]byte{byte('0' + i%10)}, b...)
		i /= 10
	}
	return string(b)
}

func TestParseRejectsUnknownType(t *testing.T) {
	src := "$ORIGIN example.org.\n@ IN SOA ns1 hostmaster (1 2 3 4 5)\n@ IN NS ns1\nbad IN NOTAREALTYPE foo\n"
	_, err := Parse(src, "example.org.", 3600, nil)
	if err == nil {
		t.Fatal("expected an error for an unknown record type")
	}
}

func TestValidateRejectsMissingSOA(t *testing.T) {
	z := NewZone("example.org.")
	if err := z.Validate(); err == nil {
		t.Error("Validate() should fail without an SOA")
	}
}

func TestParseWithConfigNonStrictSkipsBadRecords(t *testing.T) {
	src := "$ORIGIN example.org.\n@ IN SOA ns1 hostmaster (1 2 3 4 5)\n@ IN NS ns1\nbad IN NOTAREALTYPE foo\nwww IN A 192.0.2.1\n"
	cfg := DefaultConfig()
	cfg.Strict = false
	z, err := ParseWithConfig(src, "example.org.", cfg, nil)
	if err == nil {
		t.Fatal("expected a skipped-record error in non-strict mode")
	}
	if z == nil || z.SOA == nil {
		t.Fatal("non-strict parse should still return the records that did parse")
	}
	if got := z.Lookup("www.example.org.", rr.TypeA); len(got) != 1 {
		t.Errorf("www A record should have survived the skip, got %d", len(got))
	}
}

func TestParseWithConfigRejectsIncludesWhenDisabled(t *testing.T) {
	src := "$ORIGIN example.org.\n@ IN SOA ns1 hostmaster (1 2 3 4 5)\n@ IN NS ns1\n$INCLUDE other.zone\n"
	cfg := DefaultConfig()
	cfg.AllowIncludes = false
	_, err := ParseWithConfig(src, "example.org.", cfg, mapResolver{"other.zone": "extra IN A 192.0.2.5\n"})
	if err == nil {
		t.Fatal("expected an error when includes are disabled")
	}
}
