package dnssec

import "testing"

func TestCanonicalKeyOrdering(t *testing.T) {
	a := canonicalKey("a.example.org.")
	b := canonicalKey("b.example.org.")
	c := canonicalKey("example.org.")
	if !(string(c) < string(a) && string(a) < string(b)) {
		t.Errorf("canonical order broken: example.org.=%x a=%x b=%x", c, a, b)
	}
}

func TestCoversWraparound(t *testing.T) {
	owner := canonicalKey("z.example.org.")
	next := canonicalKey("a.example.org.") // wraps to the zone apex
	mid := canonicalKey("zz.example.org.")
	if !covers(owner, next, mid) {
		t.Error("covers() should wrap past the last NSEC owner in a zone")
	}
}

func TestNSEC3HashDeterministic(t *testing.T) {
	h1 := NSEC3Hash("www.example.org.", 10, []byte{0xaa, 0xbb})
	h2 := NSEC3Hash("www.example.org.", 10, []byte{0xaa, 0xbb})
	if string(h1) != string(h2) {
		t.Error("NSEC3Hash should be deterministic for identical inputs")
	}
	h3 := NSEC3Hash("other.example.org.", 10, []byte{0xaa, 0xbb})
	if string(h1) == string(h3) {
		t.Error("NSEC3Hash should vary with the owner name")
	}
}
