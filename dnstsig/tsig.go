package dnstsig

import (
	"crypto/hmac"
	"crypto/subtle"
	"encoding/binary"
	"fmt"

	"github.com/dnsscience/dnscore/dnsmsg"
	"github.com/dnsscience/dnscore/dnswire"
	"github.com/dnsscience/dnscore/rr"
	"github.com/dnsscience/dnscore/stats"
)

// Append strips any existing trailing TSIG from m, computes a fresh MAC
// under key, and appends the signed TSIG record. now is used as the
// signature time when opts.TimeSigned is zero.
func Append(m *dnsmsg.Message, key Key, now uint32, opts SignOptions) error {
	m.Additional = withoutTrailingTSIG(m.Additional)

	fudge := opts.Fudge
	if fudge == 0 {
		fudge = 300
	}
	timeSigned := opts.TimeSigned
	if timeSigned == 0 {
		timeSigned = uint64(now)
	}
	origID := opts.OrigID
	if origID == 0 {
		origID = m.Header.ID
	}

	mac, err := computeMAC(m, key, origID, timeSigned, fudge, opts.Error, opts.OtherData, opts.RequestMAC, opts.TimersOnly)
	if err != nil {
		stats.ObserveTSIG("sign", err)
		return err
	}

	t := &rr.TSIG{}
	t.H = rr.Header{Name: ".", Type: rr.TypeTSIG, Class: rr.ClassANY, TTL: 0}
	t.Algorithm = key.Algorithm
	t.TimeSigned = timeSigned
	t.Fudge = fudge
	t.MAC = mac
	t.OrigID = origID
	t.Error = opts.Error
	t.OtherData = opts.OtherData
	m.Additional = append(m.Additional, t)
	stats.ObserveTSIG("sign", nil)
	return nil
}

// Verify checks the trailing TSIG record against key, within the fudge
// window around now, and constant-time-compares the recomputed MAC.
func Verify(m *dnsmsg.Message, key Key, now uint32) error {
	n := len(m.Additional)
	if n == 0 {
		stats.ObserveTSIG("verify", ErrNoTSIG)
		return ErrNoTSIG
	}
	t, ok := m.Additional[n-1].(*rr.TSIG)
	if !ok {
		stats.ObserveTSIG("verify", ErrNoTSIG)
		return ErrNoTSIG
	}
	if t.H.Name != "." || t.H.Class != rr.ClassANY || t.H.TTL != 0 {
		stats.ObserveTSIG("verify", ErrBadTSIGOwner)
		return ErrBadTSIGOwner
	}

	lo := int64(t.TimeSigned) - int64(t.Fudge)
	hi := int64(t.TimeSigned) + int64(t.Fudge)
	if int64(now) < lo || int64(now) > hi {
		stats.ObserveTSIG("verify", ErrBadTime)
		return ErrBadTime
	}

	stripped := *m
	stripped.Additional = m.Additional[:n-1]
	mac, err := computeMAC(&stripped, key, t.OrigID, t.TimeSigned, t.Fudge, t.Error, t.OtherData, nil, false)
	if err != nil {
		stats.ObserveTSIG("verify", err)
		return err
	}
	if subtle.ConstantTimeCompare(mac, t.MAC) != 1 {
		stats.ObserveTSIG("verify", ErrBadMAC)
		return ErrBadMAC
	}
	stats.ObserveTSIG("verify", nil)
	return nil
}

// withoutTrailingTSIG returns additional with any trailing TSIG record
// removed, leaving the slice untouched when none is present.
func withoutTrailingTSIG(additional []rr.RR) []rr.RR {
	n := len(additional)
	if n == 0 {
		return additional
	}
	if _, ok := additional[n-1].(*rr.TSIG); ok {
		return additional[:n-1]
	}
	return additional
}

// computeMAC builds the MAC input per RFC 8945 §4.3.3: an optional
// length-prefixed requestMAC (for responses signed over a prior TSIG),
// the message with its ID replaced by origID, and either the 8-byte
// timers or the full TSIG variable block.
func computeMAC(m *dnsmsg.Message, key Key, origID uint16, timeSigned uint64, fudge, errCode uint16, otherData, requestMAC []byte, timersOnly bool) ([]byte, error) {
	newHash, err := macHash(key.Algorithm)
	if err != nil {
		return nil, err
	}

	packCopy := *m
	packCopy.Header.ID = origID
	msgBytes, err := dnsmsg.Pack(&packCopy)
	if err != nil {
		return nil, fmt.Errorf("dnstsig: packing message for MAC: %w", err)
	}

	var input []byte
	if len(requestMAC) > 0 {
		input = binary.BigEndian.AppendUint16(input, uint16(len(requestMAC)))
		input = append(input, requestMAC...)
	}
	input = append(input, msgBytes...)

	if timersOnly {
		input = appendTimers(input, timeSigned, fudge)
	} else {
		w := dnswire.NewWriter(input, false)
		if err := w.NameUncompressed(key.Algorithm); err != nil {
			return nil, err
		}
		w.Uint48(timeSigned)
		w.Uint16(fudge)
		w.Uint16(errCode)
		w.Uint16(uint16(len(otherData)))
		w.Bytes(otherData)
		input = w.Buf
	}

	h := hmac.New(newHash, key.Secret)
	h.Write(input)
	return h.Sum(nil), nil
}

func appendTimers(buf []byte, timeSigned uint64, fudge uint16) []byte {
	buf = append(buf,
		byte(timeSigned>>40), byte(timeSigned>>32), byte(timeSigned>>24),
		byte(timeSigned>>16), byte(timeSigned>>8), byte(timeSigned),
	)
	buf = append(buf, byte(fudge>>8), byte(fudge))
	return buf
}
