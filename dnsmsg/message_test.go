package dnsmsg

import (
	"net"
	"testing"

	"github.com/dnsscience/dnscore/rr"
)

func TestRoundTripQuery(t *testing.T) {
	m := &Message{
		Header: Header{ID: 0x1234, RecursionDesired: true},
		Question: []Question{
			{Name: "example.com.", Type: rr.TypeA, Class: rr.ClassINET},
		},
	}
	buf, err := Pack(m)
	if err != nil {
		t.Fatalf("Pack() error: %v", err)
	}
	got, err := Unpack(buf)
	if err != nil {
		t.Fatalf("Unpack() error: %v", err)
	}
	if got.Header.ID != 0x1234 {
		t.Errorf("ID = %x, want 0x1234", got.Header.ID)
	}
	if !got.Header.RecursionDesired {
		t.Error("RecursionDesired should be true")
	}
	if len(got.Question) != 1 || got.Question[0].Name != "example.com." {
		t.Errorf("Question = %+v", got.Question)
	}
}

func TestRoundTripResponseWithAnswers(t *testing.T) {
	m := &Message{
		Header: Header{ID: 42, Response: true, Authoritative: true, Rcode: RcodeSuccess},
		Question: []Question{
			{Name: "example.com.", Type: rr.TypeA, Class: rr.ClassINET},
		},
		Answer: []rr.RR{
			&rr.A{H: rr.Header{Name: "example.com.", Type: rr.TypeA, Class: rr.ClassINET, TTL: 300}, IP: net.ParseIP("192.0.2.1")},
			&rr.A{H: rr.Header{Name: "example.com.", Type: rr.TypeA, Class: rr.ClassINET, TTL: 300}, IP: net.ParseIP("192.0.2.2")},
		},
	}
	buf, err := Pack(m)
	if err != nil {
		t.Fatalf("Pack() error: %v", err)
	}
	got, err := Unpack(buf)
	if err != nil {
		t.Fatalf("Unpack() error: %v", err)
	}
	if len(got.Answer) != 2 {
		t.Fatalf("got %d answers, want 2", len(got.Answer))
	}
	a0, ok := got.Answer[0].(*rr.A)
	if !ok || !a0.IP.Equal(net.ParseIP("192.0.2.1")) {
		t.Errorf("Answer[0] = %+v", got.Answer[0])
	}
}

func TestCompressionSharesOwnerAcrossRecords(t *testing.T) {
	m := &Message{
		Header:   Header{ID: 1, Response: true},
		Question: []Question{{Name: "www.example.com.", Type: rr.TypeA, Class: rr.ClassINET}},
		Answer: []rr.RR{
			&rr.A{H: rr.Header{Name: "www.example.com.", Type: rr.TypeA, Class: rr.ClassINET, TTL: 60}, IP: net.ParseIP("192.0.2.1")},
		},
	}
	buf, err := Pack(m)
	if err != nil {
		t.Fatalf("Pack() error: %v", err)
	}
	// Uncompressed, the question name alone is 17 bytes; if the answer's
	// owner reused the question's name via a pointer the message should be
	// far short of double that plus fixed fields.
	if len(buf) > HeaderSize+4+17+2+2+2+4+2+4+2 {
		t.Errorf("message len %d suggests the answer owner wasn't compressed against the question", len(buf))
	}
}

func TestEDNSRoundTrip(t *testing.T) {
	m := &Message{Header: Header{ID: 7}}
	opt := NewOPT(4096, 0, true)
	m.SetEDNS(opt)

	buf, err := Pack(m)
	if err != nil {
		t.Fatalf("Pack() error: %v", err)
	}
	got, err := Unpack(buf)
	if err != nil {
		t.Fatalf("Unpack() error: %v", err)
	}
	gotOpt, idx := got.EDNS()
	if idx < 0 {
		t.Fatal("EDNS() found no OPT record")
	}
	if gotOpt.UDPSize() != 4096 {
		t.Errorf("UDPSize() = %d, want 4096", gotOpt.UDPSize())
	}
	if !gotOpt.DO() {
		t.Error("DO() should be true")
	}
}

func TestExtendedRcodeRoundTrip(t *testing.T) {
	m := &Message{Header: Header{ID: 1}}
	m.SetEDNS(NewOPT(1232, 0, false))
	m.SetExtendedRcode(RcodeBadVers)
	if m.Header.Rcode != uint8(RcodeBadVers&0x0F) {
		t.Errorf("header Rcode = %d", m.Header.Rcode)
	}
	if got := m.ExtendedRcode(); got != RcodeBadVers {
		t.Errorf("ExtendedRcode() = %d, want %d", got, RcodeBadVers)
	}
}

func TestMessageTooShort(t *testing.T) {
	_, err := Unpack([]byte{0x00, 0x01})
	if err != ErrMessageTooShort {
		t.Errorf("err = %v, want ErrMessageTooShort", err)
	}
}

func TestPackUDPTruncatesAnswerSection(t *testing.T) {
	m := &Message{
		Header:   Header{ID: 1, Response: true},
		Question: []Question{{Name: "example.com.", Type: rr.TypeA, Class: rr.ClassINET}},
	}
	// 40 A records comfortably exceed a 512-byte UDP response.
	for i := 0; i < 40; i++ {
		m.Answer = append(m.Answer, &rr.A{
			H:  rr.Header{Name: "example.com.", Type: rr.TypeA, Class: rr.ClassINET, TTL: 300},
			IP: net.ParseIP("192.0.2.1"),
		})
	}

	buf, err := PackUDP(m, 512)
	if err != nil {
		t.Fatalf("PackUDP() error: %v", err)
	}
	if len(buf) > 512 {
		t.Errorf("PackUDP() produced %d bytes, want <= 512", len(buf))
	}
	got, err := Unpack(buf)
	if err != nil {
		t.Fatalf("Unpack() error: %v", err)
	}
	if !got.Header.Truncated {
		t.Error("Truncated should be true when not all answers fit")
	}
	if len(got.Answer) >= 40 {
		t.Errorf("got %d answers, want fewer than the original 40", len(got.Answer))
	}
}

func TestPackUDPDropsAdditionalWithoutTruncating(t *testing.T) {
	m := &Message{
		Header:   Header{ID: 1, Response: true},
		Question: []Question{{Name: "example.com.", Type: rr.TypeA, Class: rr.ClassINET}},
		Answer: []rr.RR{
			&rr.A{H: rr.Header{Name: "example.com.", Type: rr.TypeA, Class: rr.ClassINET, TTL: 300}, IP: net.ParseIP("192.0.2.1")},
		},
	}
	for i := 0; i < 40; i++ {
		m.Additional = append(m.Additional, &rr.A{
			H:  rr.Header{Name: "glue.example.com.", Type: rr.TypeA, Class: rr.ClassINET, TTL: 300},
			IP: net.ParseIP("192.0.2.9"),
		})
	}
	buf, err := PackUDP(m, 512)
	if err != nil {
		t.Fatalf("PackUDP() error: %v", err)
	}
	got, err := Unpack(buf)
	if err != nil {
		t.Fatalf("Unpack() error: %v", err)
	}
	if got.Header.Truncated {
		t.Error("Truncated should be false when only additional records were dropped")
	}
	if len(got.Answer) != 1 {
		t.Errorf("got %d answers, want 1 (must not be affected by additional overflow)", len(got.Answer))
	}
	if len(got.Additional) >= 40 {
		t.Errorf("got %d additional records, want fewer than the original 40", len(got.Additional))
	}
}
