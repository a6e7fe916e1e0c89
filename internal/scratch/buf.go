// Package scratch provides pooled byte buffers for the hot paths of the
// name and message codecs. Every buffer obtained from this package is
// exclusive to the caller between Get and Put; nothing here is shared
// process-global mutable state, only a sync.Pool cache of otherwise
// per-call allocations.
package scratch

import "sync"

// NameBufSize bounds the scratch buffer used while escaping/unescaping a
// single name. RFC 1035 caps a wire name at 255 octets; escaping can grow
// that up to 4x (\DDD per byte), so 1100 bytes covers the worst case with
// headroom while staying within the "stack-sized" budget the codec targets.
const NameBufSize = 1100

var namePool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, 0, NameBufSize)
		return &buf
	},
}

// GetNameBuf returns an empty, exclusively-owned byte slice with spare
// capacity for name escaping/unescaping.
func GetNameBuf() *[]byte {
	b := namePool.Get().(*[]byte)
	*b = (*b)[:0]
	return b
}

// PutNameBuf returns a buffer obtained from GetNameBuf. Oversized buffers
// (grown past a few KiB by a pathological input) are dropped instead of
// pooled so one large message can't permanently inflate the pool.
func PutNameBuf(b *[]byte) {
	if cap(*b) > 8*NameBufSize {
		return
	}
	namePool.Put(b)
}

// Label-count and pointer-count working sets used while decoding a
// compressed name; pooled for the same reason as the byte buffers above.
var visitedPool = sync.Pool{
	New: func() interface{} {
		return make(map[int]struct{}, 16)
	},
}

// GetVisited returns an empty set used to detect compression-pointer loops.
func GetVisited() map[int]struct{} {
	return visitedPool.Get().(map[int]struct{})
}

// PutVisited clears and returns a visited-set to the pool.
func PutVisited(m map[int]struct{}) {
	if len(m) > 256 {
		return
	}
	for k := range m {
		delete(m, k)
	}
	visitedPool.Put(m)
}
