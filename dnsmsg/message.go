// Package dnsmsg implements the full DNS wire message: the 12-byte header,
// the four sections, and EDNS(0) OPT handling, on top of dnswire and rr.
package dnsmsg

import (
	"errors"
	"fmt"
	"time"

	"github.com/dnsscience/dnscore/dnswire"
	"github.com/dnsscience/dnscore/rr"
	"github.com/dnsscience/dnscore/stats"
)

const HeaderSize = 12

// Opcode values (RFC 1035 §4.1.1, RFC 2136, RFC 1996).
const (
	OpcodeQuery  uint8 = 0
	OpcodeIQuery uint8 = 1
	OpcodeStatus uint8 = 2
	OpcodeNotify uint8 = 4
	OpcodeUpdate uint8 = 5
)

// Base (non-extended) RCODE values (RFC 1035 §4.1.1).
const (
	RcodeSuccess        uint8 = 0
	RcodeFormatError    uint8 = 1
	RcodeServerFailure  uint8 = 2
	RcodeNameError      uint8 = 3
	RcodeNotImplemented uint8 = 4
	RcodeRefused        uint8 = 5
	RcodeYXDomain       uint8 = 6
	RcodeYXRRSet        uint8 = 7
	RcodeNXRRSet        uint8 = 8
	RcodeNotAuth        uint8 = 9
	RcodeNotZone        uint8 = 10
)

// Extended RCODEs from the EDNS(0) high byte (RFC 6891 §9, RFC 7873).
const (
	RcodeBadVers   uint16 = 16
	RcodeBadCookie uint16 = 23
)

var (
	ErrMessageTooShort = errors.New("dnsmsg: message shorter than header")
	ErrTooManyRecords  = errors.New("dnsmsg: section record count exceeds limit")
)

// MaxRecordsPerSection bounds QDCOUNT/ANCOUNT/NSCOUNT/ARCOUNT during
// decode. It equals the largest value the 16-bit count field can hold, so
// the check never rejects a header, and each section's slice is
// preallocated to the count the header claims, however short the buffer.
const MaxRecordsPerSection = 65535

// Header carries the 12-byte DNS message header, decoded into named
// fields (RFC 1035 §4.1.1).
type Header struct {
	ID                 uint16
	Response           bool
	Opcode             uint8
	Authoritative      bool
	Truncated          bool
	RecursionDesired   bool
	RecursionAvailable bool
	Zero               bool
	AuthenticatedData  bool
	CheckingDisabled   bool
	Rcode              uint8 // low 4 bits; combine with OPT for the extended code

	QDCount uint16
	ANCount uint16
	NSCount uint16
	ARCount uint16
}

func (h *Header) packFlags() uint16 {
	var f uint16
	if h.Response {
		f |= 1 << 15
	}
	f |= uint16(h.Opcode&0x0F) << 11
	if h.Authoritative {
		f |= 1 << 10
	}
	if h.Truncated {
		f |= 1 << 9
	}
	if h.RecursionDesired {
		f |= 1 << 8
	}
	if h.RecursionAvailable {
		f |= 1 << 7
	}
	if h.Zero {
		f |= 1 << 6
	}
	if h.AuthenticatedData {
		f |= 1 << 5
	}
	if h.CheckingDisabled {
		f |= 1 << 4
	}
	f |= uint16(h.Rcode & 0x0F)
	return f
}

func (h *Header) unpackFlags(f uint16) {
	h.Response = f&(1<<15) != 0
	h.Opcode = uint8((f >> 11) & 0x0F)
	h.Authoritative = f&(1<<10) != 0
	h.Truncated = f&(1<<9) != 0
	h.RecursionDesired = f&(1<<8) != 0
	h.RecursionAvailable = f&(1<<7) != 0
	h.Zero = f&(1<<6) != 0
	h.AuthenticatedData = f&(1<<5) != 0
	h.CheckingDisabled = f&(1<<4) != 0
	h.Rcode = uint8(f & 0x0F)
}

// Question is one entry of the question section (RFC 1035 §4.1.2).
type Question struct {
	Name  string
	Type  uint16
	Class uint16
}

// Message is a fully decoded DNS message.
type Message struct {
	Header     Header
	Question   []Question
	Answer     []rr.RR
	Authority  []rr.RR
	Additional []rr.RR
}

// EDNS returns the OPT pseudo-record found in the additional section, if
// any, along with its index so callers can mutate it in place.
func (m *Message) EDNS() (*rr.OPT, int) {
	for i, r := range m.Additional {
		if opt, ok := r.(*rr.OPT); ok {
			return opt, i
		}
	}
	return nil, -1
}

// ExtendedRcode combines the header's 4-bit Rcode with the OPT record's
// extended high byte, if an OPT record is present.
func (m *Message) ExtendedRcode() uint16 {
	rc := uint16(m.Header.Rcode)
	if opt, _ := m.EDNS(); opt != nil {
		rc |= uint16(opt.ExtendedRcode()) << 4
	}
	return rc
}

// SetExtendedRcode splits a 12-bit extended RCODE across the header's low
// 4 bits and the OPT record's high byte. It is a no-op on the OPT side if
// the message carries no OPT record.
func (m *Message) SetExtendedRcode(rc uint16) {
	m.Header.Rcode = uint8(rc & 0x0F)
	if opt, _ := m.EDNS(); opt != nil {
		opt.SetExtendedRcode(uint8(rc >> 4))
	}
}

// Pack encodes the message to wire format. Domain names are always
// compressed against every previously written name in the message, per
// RFC 1035 §4.1.4.
func Pack(m *Message) ([]byte, error) {
	start := time.Now()
	buf, err := pack(m)
	if err == nil {
		direction := "query"
		if m.Header.Response {
			direction = "response"
		}
		stats.ObservePack(direction, time.Since(start))
	}
	return buf, err
}

func pack(m *Message) ([]byte, error) {
	m.Header.QDCount = uint16(len(m.Question))
	m.Header.ANCount = uint16(len(m.Answer))
	m.Header.NSCount = uint16(len(m.Authority))
	m.Header.ARCount = uint16(len(m.Additional))

	buf := make([]byte, 2, 512)
	buf[0] = byte(m.Header.ID >> 8)
	buf[1] = byte(m.Header.ID)
	flags := m.Header.packFlags()
	buf = append(buf, byte(flags>>8), byte(flags))
	buf = append(buf,
		byte(m.Header.QDCount>>8), byte(m.Header.QDCount),
		byte(m.Header.ANCount>>8), byte(m.Header.ANCount),
		byte(m.Header.NSCount>>8), byte(m.Header.NSCount),
		byte(m.Header.ARCount>>8), byte(m.Header.ARCount),
	)

	w := dnswire.NewWriter(buf, true)
	for i, q := range m.Question {
		if err := w.Name(q.Name); err != nil {
			return nil, fmt.Errorf("dnsmsg: pack question %d: %w", i, err)
		}
		w.Uint16(q.Type)
		w.Uint16(q.Class)
	}
	for _, section := range [][]rr.RR{m.Answer, m.Authority, m.Additional} {
		for i, rec := range section {
			if err := rr.Pack(w, rec); err != nil {
				return nil, fmt.Errorf("dnsmsg: pack record %d: %w", i, err)
			}
		}
	}
	return w.Buf, nil
}

// Unpack decodes a complete wire-format message.
func Unpack(msg []byte) (*Message, error) {
	start := time.Now()
	m, err := unpack(msg)
	stats.ObserveUnpack(time.Since(start), err)
	return m, err
}

func unpack(msg []byte) (*Message, error) {
	if len(msg) < HeaderSize {
		return nil, ErrMessageTooShort
	}
	m := &Message{}
	m.Header.ID = uint16(msg[0])<<8 | uint16(msg[1])
	flags := uint16(msg[2])<<8 | uint16(msg[3])
	m.Header.unpackFlags(flags)
	m.Header.QDCount = uint16(msg[4])<<8 | uint16(msg[5])
	m.Header.ANCount = uint16(msg[6])<<8 | uint16(msg[7])
	m.Header.NSCount = uint16(msg[8])<<8 | uint16(msg[9])
	m.Header.ARCount = uint16(msg[10])<<8 | uint16(msg[11])

	if int(m.Header.QDCount) > MaxRecordsPerSection || int(m.Header.ANCount) > MaxRecordsPerSection ||
		int(m.Header.NSCount) > MaxRecordsPerSection || int(m.Header.ARCount) > MaxRecordsPerSection {
		return nil, ErrTooManyRecords
	}

	r, err := dnswire.NewMessageReader(msg, HeaderSize)
	if err != nil {
		return nil, err
	}

	m.Question = make([]Question, 0, m.Header.QDCount)
	for i := 0; i < int(m.Header.QDCount); i++ {
		q, err := unpackQuestion(r)
		if err != nil {
			if errors.Is(err, dnswire.ErrShortRead) {
				return m, nil
			}
			return nil, fmt.Errorf("dnsmsg: unpack question %d: %w", i, err)
		}
		m.Question = append(m.Question, q)
	}

	m.Answer, err = unpackSection(r, int(m.Header.ANCount))
	if err != nil {
		if errors.Is(err, dnswire.ErrShortRead) {
			return m, nil
		}
		return nil, fmt.Errorf("dnsmsg: unpack answer: %w", err)
	}
	m.Authority, err = unpackSection(r, int(m.Header.NSCount))
	if err != nil {
		if errors.Is(err, dnswire.ErrShortRead) {
			return m, nil
		}
		return nil, fmt.Errorf("dnsmsg: unpack authority: %w", err)
	}
	m.Additional, err = unpackSection(r, int(m.Header.ARCount))
	if err != nil {
		if errors.Is(err, dnswire.ErrShortRead) {
			return m, nil
		}
		return nil, fmt.Errorf("dnsmsg: unpack additional: %w", err)
	}
	return m, nil
}

func unpackQuestion(r *dnswire.Reader) (Question, error) {
	name, err := r.Name()
	if err != nil {
		return Question{}, err
	}
	typ, err := r.Uint16()
	if err != nil {
		return Question{}, err
	}
	class, err := r.Uint16()
	if err != nil {
		return Question{}, err
	}
	return Question{Name: name, Type: typ, Class: class}, nil
}

// unpackSection decodes up to count records, stopping at the first
// ErrShortRead and returning the records decoded so far alongside it: a
// section truncated mid-record is a caller-visible partial result, not a
// hard failure. Any other error (malformed rdata) is returned with nil,
// since the message is not trustworthy beyond that point.
func unpackSection(r *dnswire.Reader, count int) ([]rr.RR, error) {
	out := make([]rr.RR, 0, count)
	for i := 0; i < count; i++ {
		rec, err := rr.Unpack(r)
		if err != nil {
			if errors.Is(err, dnswire.ErrShortRead) {
				return out, err
			}
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}
