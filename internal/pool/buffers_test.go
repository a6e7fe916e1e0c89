package pool

import (
	"testing"

	"github.com/dnsscience/dnscore/dnsmsg"
	"github.com/dnsscience/dnscore/rr"
)

func TestMessagePool(t *testing.T) {
	msg := GetMessage()
	if msg == nil {
		t.Fatal("GetMessage() returned nil")
	}

	msg.Header.ID = 0x1234
	msg.Question = append(msg.Question, dnsmsg.Question{Name: "example.com.", Type: rr.TypeA, Class: rr.ClassINET})

	PutMessage(msg)

	msg2 := GetMessage()
	if msg2.Header.ID != 0 {
		t.Errorf("message not reset: ID = %d, want 0", msg2.Header.ID)
	}
	if len(msg2.Question) != 0 {
		t.Errorf("message not reset: Question len = %d, want 0", len(msg2.Question))
	}
}

func TestSmallBufferPool(t *testing.T) {
	buf := GetSmallBuffer()
	if len(buf) != SmallBufferSize {
		t.Errorf("buffer size = %d, want %d", len(buf), SmallBufferSize)
	}
	copy(buf, []byte("test data"))
	PutSmallBuffer(buf)

	buf2 := GetSmallBuffer()
	if len(buf2) != SmallBufferSize {
		t.Errorf("buffer size = %d, want %d", len(buf2), SmallBufferSize)
	}
}

func TestMediumBufferPool(t *testing.T) {
	buf := GetMediumBuffer()
	if len(buf) != MediumBufferSize {
		t.Errorf("buffer size = %d, want %d", len(buf), MediumBufferSize)
	}
	PutMediumBuffer(buf)

	buf2 := GetMediumBuffer()
	if len(buf2) != MediumBufferSize {
		t.Errorf("buffer size = %d, want %d", len(buf2), MediumBufferSize)
	}
}

func TestLargeBufferPool(t *testing.T) {
	buf := GetLargeBuffer()
	if len(buf) != LargeBufferSize {
		t.Errorf("buffer size = %d, want %d", len(buf), LargeBufferSize)
	}
	PutLargeBuffer(buf)

	buf2 := GetLargeBuffer()
	if len(buf2) != LargeBufferSize {
		t.Errorf("buffer size = %d, want %d", len(buf2), LargeBufferSize)
	}
}

func TestGetBuffer(t *testing.T) {
	tests := []struct {
		size        int
		expectedCap int
	}{
		{100, SmallBufferSize},
		{512, SmallBufferSize},
		{1024, MediumBufferSize},
		{4096, MediumBufferSize},
		{8192, LargeBufferSize},
		{65535, LargeBufferSize},
	}

	for _, tt := range tests {
		buf := GetBuffer(tt.size)
		if cap(buf) != tt.expectedCap {
			t.Errorf("GetBuffer(%d) cap = %d, want %d", tt.size, cap(buf), tt.expectedCap)
		}
		PutBuffer(buf)
	}
}

func TestPutBuffer(t *testing.T) {
	small := GetSmallBuffer()
	PutBuffer(small)

	medium := GetMediumBuffer()
	PutBuffer(medium)

	large := GetLargeBuffer()
	PutBuffer(large)

	weird := make([]byte, 1234)
	PutBuffer(weird) // should not panic, and is simply not pooled
}

func TestPutMessageNil(t *testing.T) {
	PutMessage(nil) // should not panic
}

func TestPutSmallBufferUndersized(t *testing.T) {
	small := make([]byte, 100)
	PutSmallBuffer(small) // should not panic or get pooled
}

func TestResetPools(t *testing.T) {
	msg := GetMessage()
	buf := GetSmallBuffer()

	ResetPools()

	msg2 := GetMessage()
	if msg2 == nil {
		t.Error("GetMessage() failed after ResetPools")
	}
	buf2 := GetSmallBuffer()
	if len(buf2) != SmallBufferSize {
		t.Error("GetSmallBuffer() failed after ResetPools")
	}

	PutMessage(msg)
	PutMessage(msg2)
	PutSmallBuffer(buf)
	PutSmallBuffer(buf2)
}

func TestMessageReset(t *testing.T) {
	msg := GetMessage()

	msg.Header.ID = 0x1234
	msg.Header.Response = true
	msg.Header.Authoritative = true
	msg.Header.Truncated = true
	msg.Header.RecursionDesired = true
	msg.Header.RecursionAvailable = true
	msg.Header.AuthenticatedData = true
	msg.Header.CheckingDisabled = true
	msg.Header.Rcode = dnsmsg.RcodeServerFailure

	msg.Question = append(msg.Question, dnsmsg.Question{Name: "example.com.", Type: rr.TypeA, Class: rr.ClassINET})

	PutMessage(msg)
	msg2 := GetMessage()

	if msg2.Header.ID != 0 {
		t.Errorf("ID not reset: got %d", msg2.Header.ID)
	}
	if msg2.Header.Response {
		t.Error("Response not reset")
	}
	if msg2.Header.Rcode != 0 {
		t.Errorf("Rcode not reset: got %d", msg2.Header.Rcode)
	}
	if len(msg2.Question) != 0 {
		t.Errorf("Question not reset: len = %d", len(msg2.Question))
	}

	PutMessage(msg2)
}

func TestPoolStatsTracksActivity(t *testing.T) {
	before := PoolStats()
	msg := GetMessage()
	PutMessage(msg)
	after := PoolStats()

	if after.Gets <= before.Gets {
		t.Error("PoolStats().Gets should increase after GetMessage")
	}
	if after.Puts <= before.Puts {
		t.Error("PoolStats().Puts should increase after PutMessage")
	}
}

func BenchmarkMessagePool(b *testing.B) {
	for i := 0; i < b.N; i++ {
		msg := GetMessage()
		msg.Question = append(msg.Question, dnsmsg.Question{Name: "example.com.", Type: rr.TypeA, Class: rr.ClassINET})
		PutMessage(msg)
	}
}

func BenchmarkSmallBufferPool(b *testing.B) {
	for i := 0; i < b.N; i++ {
		buf := GetSmallBuffer()
		PutSmallBuffer(buf)
	}
}
