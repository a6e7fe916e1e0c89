package dnstsig

import (
	"testing"

	"github.com/dnsscience/dnscore/dnsmsg"
	"github.com/dnsscience/dnscore/rr"
)

func baseQuery() *dnsmsg.Message {
	return &dnsmsg.Message{
		Header:   dnsmsg.Header{ID: 0x1234, RecursionDesired: true},
		Question: []dnsmsg.Question{{Name: "example.com.", Type: rr.TypeA, Class: rr.ClassINET}},
	}
}

func TestAppendAndVerifyRoundTrip(t *testing.T) {
	key := Key{Name: "example.", Algorithm: HMACSHA256, Secret: make([]byte, 32)}
	m := baseQuery()

	if err := Append(m, key, 1_700_000_000, SignOptions{}); err != nil {
		t.Fatalf("Append() error: %v", err)
	}
	if len(m.Additional) != 1 {
		t.Fatalf("Additional = %d records, want 1", len(m.Additional))
	}
	if _, ok := m.Additional[0].(*rr.TSIG); !ok {
		t.Fatalf("last additional record is %T, want *rr.TSIG", m.Additional[0])
	}

	if err := Verify(m, key, 1_700_000_010); err != nil {
		t.Errorf("Verify() error: %v", err)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	signing := Key{Name: "example.", Algorithm: HMACSHA256, Secret: make([]byte, 32)}
	m := baseQuery()
	if err := Append(m, signing, 1_700_000_000, SignOptions{}); err != nil {
		t.Fatalf("Append() error: %v", err)
	}

	wrong := make([]byte, 32)
	wrong[0] = 0x01
	verifying := Key{Name: "example.", Algorithm: HMACSHA256, Secret: wrong}
	if err := Verify(m, verifying, 1_700_000_010); err == nil {
		t.Error("Verify() should reject a mismatched secret")
	}
}

func TestVerifyRejectsStaleTime(t *testing.T) {
	key := Key{Name: "example.", Algorithm: HMACSHA256, Secret: make([]byte, 32)}
	m := baseQuery()
	if err := Append(m, key, 1_700_000_000, SignOptions{Fudge: 60}); err != nil {
		t.Fatalf("Append() error: %v", err)
	}
	if err := Verify(m, key, 1_700_001_000); err != ErrBadTime {
		t.Errorf("Verify() error = %v, want ErrBadTime", err)
	}
}

func TestAppendReplacesExistingTSIG(t *testing.T) {
	key := Key{Name: "example.", Algorithm: HMACSHA256, Secret: make([]byte, 32)}
	m := baseQuery()
	if err := Append(m, key, 1_700_000_000, SignOptions{}); err != nil {
		t.Fatalf("Append() error: %v", err)
	}
	first := m.Additional[0].(*rr.TSIG).MAC

	if err := Append(m, key, 1_700_000_500, SignOptions{}); err != nil {
		t.Fatalf("second Append() error: %v", err)
	}
	if len(m.Additional) != 1 {
		t.Fatalf("Additional = %d records after re-sign, want 1", len(m.Additional))
	}
	second := m.Additional[0].(*rr.TSIG).MAC
	if string(first) == string(second) {
		t.Error("re-signing at a different time should change the MAC")
	}
}

func TestVerifyRejectsMissingTSIG(t *testing.T) {
	key := Key{Name: "example.", Algorithm: HMACSHA256, Secret: make([]byte, 32)}
	m := baseQuery()
	if err := Verify(m, key, 1_700_000_000); err != ErrNoTSIG {
		t.Errorf("Verify() error = %v, want ErrNoTSIG", err)
	}
}
