package dnstsig

import (
	"bytes"
	"errors"
	"testing"

	"github.com/dnsscience/dnscore/rr"
)

type fakeAsymmetric struct{}

func (fakeAsymmetric) Sign(algorithm uint8, tbs, privateKey []byte) ([]byte, error) {
	return append([]byte{algorithm}, tbs...), nil
}

func (fakeAsymmetric) Verify(algorithm uint8, tbs, signature, publicKey []byte) error {
	want := append([]byte{algorithm}, tbs...)
	if !bytes.Equal(signature, want) {
		return errors.New("sig0: mismatch")
	}
	return nil
}

func TestSIG0RoundTrip(t *testing.T) {
	m := baseQuery()
	opts := SIG0Options{SignerName: "example.com.", KeyTag: 12345, Algorithm: 13}

	if err := AppendSIG0(m, fakeAsymmetric{}, opts, 1_700_000_000, []byte("priv")); err != nil {
		t.Fatalf("AppendSIG0() error: %v", err)
	}
	if len(m.Additional) != 1 {
		t.Fatalf("Additional = %d, want 1", len(m.Additional))
	}
	sig, ok := m.Additional[0].(*rr.SIG)
	if !ok || sig.TypeCovered != 0 {
		t.Fatalf("last record = %+v, want SIG(0)", m.Additional[0])
	}

	if err := VerifySIG0(m, fakeAsymmetric{}, nil, 1_700_000_010); err != nil {
		t.Errorf("VerifySIG0() error: %v", err)
	}
}

func TestSIG0RejectsExpired(t *testing.T) {
	m := baseQuery()
	opts := SIG0Options{SignerName: "example.com.", KeyTag: 1, Algorithm: 13, Fudge: 30}
	if err := AppendSIG0(m, fakeAsymmetric{}, opts, 1_700_000_000, nil); err != nil {
		t.Fatalf("AppendSIG0() error: %v", err)
	}
	if err := VerifySIG0(m, fakeAsymmetric{}, nil, 1_700_001_000); err != ErrBadTime {
		t.Errorf("VerifySIG0() error = %v, want ErrBadTime", err)
	}
}

func TestVerifySIG0RejectsMissing(t *testing.T) {
	m := baseQuery()
	if err := VerifySIG0(m, fakeAsymmetric{}, nil, 1_700_000_000); err != ErrNoSIG0 {
		t.Errorf("VerifySIG0() error = %v, want ErrNoSIG0", err)
	}
}
