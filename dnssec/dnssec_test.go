package dnssec

import (
	"bytes"
	"net"
	"testing"

	"github.com/dnsscience/dnscore/rr"
)

// fakeCrypto signs/verifies with a trivial reversible transform so tests
// can exercise the TBS construction without a real asymmetric primitive.
type fakeCrypto struct{}

func (fakeCrypto) Sign(algorithm uint8, tbs, privateKey []byte) ([]byte, error) {
	return append([]byte{algorithm}, tbs...), nil
}

func (fakeCrypto) Verify(algorithm uint8, tbs, signature, publicKey []byte) error {
	want := append([]byte{algorithm}, tbs...)
	if !bytes.Equal(signature, want) {
		return errMismatch
	}
	return nil
}

var errMismatch = errVerify("dnssec: signature mismatch")

type errVerify string

func (e errVerify) Error() string { return string(e) }

func testKey() *rr.DNSKEY {
	k := &rr.DNSKEY{}
	k.H = rr.Header{Name: "example.org.", Type: rr.TypeDNSKEY, Class: rr.ClassINET, TTL: 3600}
	k.Flags = 257
	k.Protocol = 3
	k.Algorithm = 8
	k.PublicKey = []byte{1, 2, 3, 4, 5, 6, 7, 8}
	return k
}

func TestKeyTagStable(t *testing.T) {
	k := testKey()
	tag1 := KeyTag(k)
	tag2 := KeyTag(k)
	if tag1 != tag2 {
		t.Fatal("KeyTag should be stable across calls")
	}
	k2 := testKey()
	k2.PublicKey = []byte{9, 9, 9, 9}
	if KeyTag(k2) == tag1 {
		t.Error("KeyTag should change with the public key")
	}
}

func TestMakeDSAndChain(t *testing.T) {
	k := testKey()
	ds, err := MakeDS("example.org.", k, DigestSHA256)
	if err != nil {
		t.Fatalf("MakeDS() error: %v", err)
	}
	if ds.KeyTag != KeyTag(k) || ds.Algorithm != k.Algorithm {
		t.Errorf("DS = %+v", ds)
	}

	trusted, err := VerifyChain([]*rr.DS{ds}, "example.org.", []*rr.DNSKEY{k})
	if err != nil {
		t.Fatalf("VerifyChain() error: %v", err)
	}
	if len(trusted) != 1 || trusted[0] != k {
		t.Errorf("VerifyChain() trusted = %v", trusted)
	}
}

func TestSignAndVerifyRoundTrip(t *testing.T) {
	key := testKey()
	rrset := []rr.RR{
		&rr.A{H: rr.Header{Name: "www.example.org.", Type: rr.TypeA, Class: rr.ClassINET, TTL: 300}, IP: net.ParseIP("192.0.2.1")},
		&rr.A{H: rr.Header{Name: "www.example.org.", Type: rr.TypeA, Class: rr.ClassINET, TTL: 300}, IP: net.ParseIP("192.0.2.2")},
	}

	sig, err := Sign(fakeCrypto{}, rrset, "example.org.", key, 1000, 2000, []byte("priv"))
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}
	if sig.Labels != 3 {
		t.Errorf("Labels = %d, want 3", sig.Labels)
	}

	if err := Verify(fakeCrypto{}, sig, rrset, key); err != nil {
		t.Errorf("Verify() error: %v", err)
	}

	// tampering with the RRset must break verification
	tampered := []rr.RR{rrset[0]}
	if err := Verify(fakeCrypto{}, sig, tampered, key); err == nil {
		t.Error("Verify() should fail over a different RRset")
	}
}

func TestInWindow(t *testing.T) {
	if !InWindow(1500, 1000, 2000) {
		t.Error("1500 should be within [1000,2000]")
	}
	if InWindow(2500, 1000, 2000) {
		t.Error("2500 should be outside [1000,2000]")
	}
	// serial wraparound: inception near the top of the uint32 range,
	// expiration having wrapped past zero.
	if !InWindow(10, 0xFFFFFFF0, 100) {
		t.Error("InWindow should handle serial-number wraparound")
	}
}
