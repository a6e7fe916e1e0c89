// Package pool reduces allocation pressure on the message codec's hot
// path: a sync.Pool of *dnsmsg.Message for decode reuse, and size-tiered
// byte-buffer pools for UDP, EDNS0, and TCP-sized encode targets.
package pool

import (
	"sync"
	"sync/atomic"

	"github.com/dnsscience/dnscore/dnsmsg"
)

const (
	SmallBufferSize  = 512   // UDP queries without EDNS(0)
	MediumBufferSize = 4096  // typical EDNS(0) responses
	LargeBufferSize  = 65535 // TCP / max message size
)

var messageGets, messagePuts, messageNews uint64

var MessagePool = sync.Pool{
	New: func() interface{} {
		atomic.AddUint64(&messageNews, 1)
		return new(dnsmsg.Message)
	},
}

// GetMessage returns a zeroed *dnsmsg.Message from the pool.
func GetMessage() *dnsmsg.Message {
	atomic.AddUint64(&messageGets, 1)
	return MessagePool.Get().(*dnsmsg.Message)
}

// PutMessage clears msg's fields and returns it to the pool. Section
// slices are truncated, not discarded, so their backing arrays are reused.
func PutMessage(msg *dnsmsg.Message) {
	if msg == nil {
		return
	}
	msg.Header = dnsmsg.Header{}
	msg.Question = msg.Question[:0]
	msg.Answer = msg.Answer[:0]
	msg.Authority = msg.Authority[:0]
	msg.Additional = msg.Additional[:0]
	atomic.AddUint64(&messagePuts, 1)
	MessagePool.Put(msg)
}

var SmallBufferPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, SmallBufferSize)
		return &buf
	},
}

func GetSmallBuffer() []byte {
	bufPtr := SmallBufferPool.Get().(*[]byte)
	return (*bufPtr)[:SmallBufferSize]
}

func PutSmallBuffer(buf []byte) {
	if cap(buf) < SmallBufferSize {
		return
	}
	buf = buf[:cap(buf)]
	SmallBufferPool.Put(&buf)
}

var MediumBufferPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, MediumBufferSize)
		return &buf
	},
}

func GetMediumBuffer() []byte {
	bufPtr := MediumBufferPool.Get().(*[]byte)
	return (*bufPtr)[:MediumBufferSize]
}

func PutMediumBuffer(buf []byte) {
	if cap(buf) < MediumBufferSize {
		return
	}
	buf = buf[:cap(buf)]
	MediumBufferPool.Put(&buf)
}

var LargeBufferPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, LargeBufferSize)
		return &buf
	},
}

func GetLargeBuffer() []byte {
	bufPtr := LargeBufferPool.Get().(*[]byte)
	return (*bufPtr)[:LargeBufferSize]
}

func PutLargeBuffer(buf []byte) {
	if cap(buf) < LargeBufferSize {
		return
	}
	buf = buf[:cap(buf)]
	LargeBufferPool.Put(&buf)
}

// GetBuffer picks the smallest tier that fits size.
func GetBuffer(size int) []byte {
	switch {
	case size <= SmallBufferSize:
		return GetSmallBuffer()
	case size <= MediumBufferSize:
		return GetMediumBuffer()
	default:
		return GetLargeBuffer()
	}
}

// PutBuffer returns buf to the pool matching its capacity; buffers whose
// capacity doesn't match a tier exactly are left for the GC.
func PutBuffer(buf []byte) {
	switch cap(buf) {
	case SmallBufferSize:
		PutSmallBuffer(buf)
	case MediumBufferSize:
		PutMediumBuffer(buf)
	case LargeBufferSize:
		PutLargeBuffer(buf)
	}
}

// Stats reports cumulative pool activity, for the pool-pressure gauges a
// caller may want to wire into its own metrics.
type Stats struct {
	Gets uint64
	Puts uint64
	News uint64 // pool misses
}

func PoolStats() Stats {
	return Stats{
		Gets: atomic.LoadUint64(&messageGets),
		Puts: atomic.LoadUint64(&messagePuts),
		News: atomic.LoadUint64(&messageNews),
	}
}

// ResetPools discards all pooled objects; useful under memory pressure or
// between test cases that want a clean allocator state.
func ResetPools() {
	MessagePool = sync.Pool{New: func() interface{} {
		atomic.AddUint64(&messageNews, 1)
		return new(dnsmsg.Message)
	}}
	SmallBufferPool = sync.Pool{New: func() interface{} {
		buf := make([]byte, SmallBufferSize)
		return &buf
	}}
	MediumBufferPool = sync.Pool{New: func() interface{} {
		buf := make([]byte, MediumBufferSize)
		return &buf
	}}
	LargeBufferPool = sync.Pool{New: func() interface{} {
		buf := make([]byte, LargeBufferSize)
		return &buf
	}}
}
