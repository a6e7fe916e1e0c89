package rr

import (
	"bytes"
	"net"
	"testing"

	"github.com/dnsscience/dnscore/dnswire"
)

func packRR(t *testing.T, r RR) []byte {
	t.Helper()
	w := dnswire.NewWriter(nil, false)
	if err := Pack(w, r); err != nil {
		t.Fatalf("Pack() error: %v", err)
	}
	return w.Buf
}

func unpackRR(t *testing.T, msg []byte) RR {
	t.Helper()
	rd, err := dnswire.NewMessageReader(msg, 0)
	if err != nil {
		t.Fatalf("NewMessageReader() error: %v", err)
	}
	rec, err := Unpack(rd)
	if err != nil {
		t.Fatalf("Unpack() error: %v", err)
	}
	if rd.Len() != 0 {
		t.Errorf("Unpack() left %d trailing bytes", rd.Len())
	}
	return rec
}

func TestRoundTripA(t *testing.T) {
	want := &A{H: Header{Name: "example.com.", Type: TypeA, Class: ClassINET, TTL: 3600}, IP: net.ParseIP("192.0.2.1")}
	msg := packRR(t, want)
	got := unpackRR(t, msg).(*A)
	if !got.IP.Equal(want.IP) {
		t.Errorf("IP = %v, want %v", got.IP, want.IP)
	}
	if got.H != want.H {
		t.Errorf("Header = %+v, want %+v", got.H, want.H)
	}
}

func TestRoundTripAAAA(t *testing.T) {
	want := &AAAA{H: Header{Name: "example.com.", Type: TypeAAAA, Class: ClassINET, TTL: 300}, IP: net.ParseIP("2001:db8::1")}
	msg := packRR(t, want)
	got := unpackRR(t, msg).(*AAAA)
	if !got.IP.Equal(want.IP) {
		t.Errorf("IP = %v, want %v", got.IP, want.IP)
	}
}

func TestRoundTripMX(t *testing.T) {
	want := &MX{prefName{H: Header{Name: "example.com.", Type: TypeMX, Class: ClassINET, TTL: 300}, Pref: 10, Name: "mail.example.com."}}
	msg := packRR(t, want)
	got := unpackRR(t, msg).(*MX)
	if got.Pref != 10 || got.Name != "mail.example.com." {
		t.Errorf("got %+v", got)
	}
}

func TestRoundTripSOA(t *testing.T) {
	want := &SOA{
		H: Header{Name: "example.com.", Type: TypeSOA, Class: ClassINET, TTL: 3600},
		Ns: "ns1.example.com.", Mbox: "hostmaster.example.com.",
		Serial: 2024010100, Refresh: 3600, Retry: 900, Expire: 1209600, Minttl: 300,
	}
	msg := packRR(t, want)
	got := unpackRR(t, msg).(*SOA)
	if *got != *want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestRoundTripTXT(t *testing.T) {
	want := &TXT{txtList{H: Header{Name: "example.com.", Type: TypeTXT, Class: ClassINET, TTL: 300}, Strs: []string{"hello world", "second"}}}
	msg := packRR(t, want)
	got := unpackRR(t, msg).(*TXT)
	if len(got.Strs) != 2 || got.Strs[0] != "hello world" || got.Strs[1] != "second" {
		t.Errorf("got %+v", got.Strs)
	}
}

func TestRoundTripNSEC(t *testing.T) {
	want := &NSEC{
		H:        Header{Name: "example.com.", Type: TypeNSEC, Class: ClassINET, TTL: 300},
		NextName: "www.example.com.",
		Types:    []uint16{TypeA, TypeMX, TypeRRSIG, TypeNSEC},
	}
	msg := packRR(t, want)
	got := unpackRR(t, msg).(*NSEC)
	if got.NextName != want.NextName {
		t.Errorf("NextName = %q, want %q", got.NextName, want.NextName)
	}
	if !uint16SliceEqual(got.Types, want.Types) {
		t.Errorf("Types = %v, want %v", got.Types, want.Types)
	}
}

func TestRoundTripNSEC3(t *testing.T) {
	want := &NSEC3{
		H: Header{Name: "q1jvbvm8nl6c3v8hhq0g0v9pq5a1k2nb.example.com.", Type: TypeNSEC3, Class: ClassINET, TTL: 300},
		Algorithm: 1, Flags: 0, Iterations: 10,
		Salt:       []byte{0xAA, 0xBB},
		NextHashed: []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20},
		Types:      []uint16{TypeA, TypeRRSIG},
	}
	msg := packRR(t, want)
	got := unpackRR(t, msg).(*NSEC3)
	if !bytes.Equal(got.Salt, want.Salt) || !bytes.Equal(got.NextHashed, want.NextHashed) {
		t.Errorf("got %+v", got)
	}
	if !uint16SliceEqual(got.Types, want.Types) {
		t.Errorf("Types = %v, want %v", got.Types, want.Types)
	}
}

func TestRoundTripRRSIG(t *testing.T) {
	want := &RRSIG{sigRdata{
		H:           Header{Name: "example.com.", Type: TypeRRSIG, Class: ClassINET, TTL: 300},
		TypeCovered: TypeA, Algorithm: 8, Labels: 2, OrigTTL: 300,
		Expiration: 2000000000, Inception: 1900000000, KeyTag: 12345,
		SignerName: "Example.COM.",
		Signature:  []byte{1, 2, 3, 4, 5, 6, 7, 8},
	}}
	msg := packRR(t, want)
	got := unpackRR(t, msg).(*RRSIG)
	if got.SignerName != "Example.COM." {
		t.Errorf("SignerName = %q, want preserved case before Canonicalize", got.SignerName)
	}
	got.Canonicalize()
	if got.SignerName != "example.com." {
		t.Errorf("Canonicalize() SignerName = %q, want lowercase", got.SignerName)
	}
	if !bytes.Equal(got.Signature, want.Signature) {
		t.Errorf("Signature = %v, want %v", got.Signature, want.Signature)
	}
}

func TestCanonicalizeLowercasesEmbeddedNames(t *testing.T) {
	cases := []struct {
		name string
		rr   RR
		get  func(RR) string
	}{
		{"CNAME", &CNAME{singleName{H: Header{Name: "a."}, Target: "TARGET.Example.com."}}, func(r RR) string { return r.(*CNAME).Target }},
		{"NS", &NS{singleName{H: Header{Name: "a."}, Target: "NS1.Example.COM."}}, func(r RR) string { return r.(*NS).Target }},
		{"SRV", &SRV{H: Header{Name: "a."}, Target: "Svc.Example.COM."}, func(r RR) string { return r.(*SRV).Target }},
		{"RP", &RP{H: Header{Name: "a."}, Mbox: "Admin.Example.COM.", Txt: "Txt.Example.COM."}, func(r RR) string { return r.(*RP).Mbox }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			c.rr.Canonicalize()
			got := c.get(c.rr)
			if got != lowerName(got) {
				t.Errorf("%s: Canonicalize() left %q un-lowercased", c.name, got)
			}
		})
	}
}

func TestNSECCanonicalizeIsNoOp(t *testing.T) {
	r := &NSEC{H: Header{Name: "a."}, NextName: "Next.Example.COM."}
	r.Canonicalize()
	if r.NextName != "Next.Example.COM." {
		t.Errorf("NSEC.Canonicalize() must not touch NextName, got %q", r.NextName)
	}
}

func TestUnknownTypeFallback(t *testing.T) {
	data := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	u := &UNKNOWN{H: Header{Name: "example.com.", Type: 65280, Class: ClassINET, TTL: 60}, Data: data}
	msg := packRR(t, u)
	got := unpackRR(t, msg).(*UNKNOWN)
	if !bytes.Equal(got.Data, data) {
		t.Errorf("Data = %x, want %x", got.Data, data)
	}
	rdata := got.RdataString()
	if rdata != "\\# 4 deadbeef" {
		t.Errorf("RdataString() = %q, want RFC 3597 form", rdata)
	}
}

func TestParseUnknownRdataRoundTrip(t *testing.T) {
	rr, err := ParseRdata(TypeA, []string{"\\#", "4", "c0000201"})
	if err != nil {
		t.Fatalf("ParseRdata() error: %v", err)
	}
	u, ok := rr.(*UNKNOWN)
	if !ok {
		t.Fatalf("ParseRdata() with \\# marker must return *UNKNOWN, got %T", rr)
	}
	if !bytes.Equal(u.Data, []byte{0xc0, 0x00, 0x02, 0x01}) {
		t.Errorf("Data = %x", u.Data)
	}
}

func TestCloneIsDeepCopy(t *testing.T) {
	orig := &TXT{txtList{H: Header{Name: "a."}, Strs: []string{"one"}}}
	clone := orig.Clone().(*TXT)
	clone.Strs[0] = "mutated"
	if orig.Strs[0] != "one" {
		t.Error("Clone() shared backing array with original")
	}
}

func TestRdlengthDisciplineSkipsUnconsumedBytes(t *testing.T) {
	// HINFO's UnpackRdata reads exactly two character-strings; simulate a
	// registered type under-reading by appending one extra rdata byte after
	// them and declaring an rdlength one larger than the HINFO payload.
	w := dnswire.NewWriter(nil, false)
	h := &HINFO{H: Header{Name: "a.", Type: TypeHINFO, Class: ClassINET, TTL: 60}, Cpu: "x", Os: "y"}
	if err := Pack(w, h); err != nil {
		t.Fatalf("Pack() error: %v", err)
	}
	// Owner "a." is 3 bytes, so rdlength is at offsets 11-12; bump it 4 -> 5.
	w.Uint8(0)
	w.Buf[12]++
	// Append a second RR right after to prove the reader landed exactly at
	// its start.
	second := &A{H: Header{Name: "b.", Type: TypeA, Class: ClassINET, TTL: 60}, IP: net.ParseIP("203.0.113.9")}
	if err := Pack(w, second); err != nil {
		t.Fatalf("Pack() error: %v", err)
	}
	rd, err := dnswire.NewMessageReader(w.Buf, 0)
	if err != nil {
		t.Fatalf("NewMessageReader() error: %v", err)
	}
	if _, err := Unpack(rd); err != nil {
		t.Fatalf("Unpack() #1 error: %v", err)
	}
	rec2, err := Unpack(rd)
	if err != nil {
		t.Fatalf("Unpack() #2 error: %v", err)
	}
	got, ok := rec2.(*A)
	if !ok || !got.IP.Equal(net.ParseIP("203.0.113.9")) {
		t.Errorf("second record = %+v, want A 203.0.113.9", rec2)
	}
}

func uint16SliceEqual(a, b []uint16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
