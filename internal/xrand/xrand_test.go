package xrand

import "testing"

func TestBytesLength(t *testing.T) {
	b, err := Bytes(16)
	if err != nil {
		t.Fatalf("Bytes() error: %v", err)
	}
	if len(b) != 16 {
		t.Errorf("len = %d, want 16", len(b))
	}
}

func TestSaltZeroLength(t *testing.T) {
	s, err := Salt(0)
	if err != nil || s != nil {
		t.Errorf("Salt(0) = %v, %v, want nil, nil", s, err)
	}
}

func TestUint32Varies(t *testing.T) {
	a, err := Uint32()
	if err != nil {
		t.Fatalf("Uint32() error: %v", err)
	}
	b, _ := Uint32()
	if a == b {
		t.Skip("extremely unlikely but not impossible collision")
	}
}
