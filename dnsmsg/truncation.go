package dnsmsg

import (
	"fmt"

	"github.com/dnsscience/dnscore/dnswire"
	"github.com/dnsscience/dnscore/rr"
)

// PackUDP encodes m to fit within maxSize bytes (the responder's chosen
// UDP payload limit, EDNS(0) or the plain 512-byte default), applying
// RFC 1035 §4.1.1's truncation policy: records are added greedily in
// section order; if the answer or authority section can't fit in full,
// TC is set and no further answer or authority records are included;
// the additional section is still packed as far as it fits, and its
// overflow is dropped silently, without setting TC, since none of its
// records affect the answer's correctness.
func PackUDP(m *Message, maxSize int) ([]byte, error) {
	hdr := m.Header
	hdr.QDCount = uint16(len(m.Question))

	buf := make([]byte, HeaderSize, maxSize)
	w := dnswire.NewWriter(buf, true)
	// Header is patched in at the end once final counts/flags are known;
	// reserve the space now so name compression offsets land correctly.
	for i, q := range m.Question {
		if err := w.Name(q.Name); err != nil {
			return nil, fmt.Errorf("dnsmsg: pack question %d: %w", i, err)
		}
		w.Uint16(q.Type)
		w.Uint16(q.Class)
	}

	truncated := false
	ancount := packSectionUDP(w, m.Answer, maxSize, &truncated)
	nscount := 0
	if !truncated {
		nscount = packSectionUDP(w, m.Authority, maxSize, &truncated)
	}
	// Additional-section overflow never sets TC: none of OPT/SIG0/glue
	// change the answer's correctness, so a client can re-query over TCP
	// only if it actually needed what was dropped.
	arDropped := false
	arcount := packSectionUDP(w, m.Additional, maxSize, &arDropped)

	hdr.ANCount = uint16(ancount)
	hdr.NSCount = uint16(nscount)
	hdr.ARCount = uint16(arcount)
	hdr.Truncated = truncated

	writeHeader(w.Buf, &hdr)
	return w.Buf, nil
}

// packSectionUDP packs as many records from section as fit within
// maxSize, stopping and flagging *overflowed at the first one that
// doesn't. It returns the number of records actually packed.
func packSectionUDP(w *dnswire.Writer, section []rr.RR, maxSize int, overflowed *bool) int {
	n := 0
	for _, rec := range section {
		before := w.Offset()
		if err := rr.Pack(w, rec); err != nil {
			// An encode error on one record can't be recovered from within
			// a size-fitting pass; drop it like an overflow and stop.
			w.Buf = w.Buf[:before]
			*overflowed = true
			break
		}
		if w.Offset() > maxSize {
			w.Buf = w.Buf[:before]
			*overflowed = true
			break
		}
		n++
	}
	return n
}

func writeHeader(buf []byte, h *Header) {
	buf[0] = byte(h.ID >> 8)
	buf[1] = byte(h.ID)
	flags := h.packFlags()
	buf[2] = byte(flags >> 8)
	buf[3] = byte(flags)
	buf[4] = byte(h.QDCount >> 8)
	buf[5] = byte(h.QDCount)
	buf[6] = byte(h.ANCount >> 8)
	buf[7] = byte(h.ANCount)
	buf[8] = byte(h.NSCount >> 8)
	buf[9] = byte(h.NSCount)
	buf[10] = byte(h.ARCount >> 8)
	buf[11] = byte(h.ARCount)
}
