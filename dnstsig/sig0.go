package dnstsig

import (
	"github.com/dnsscience/dnscore/dnsmsg"
	"github.com/dnsscience/dnscore/dnssec"
	"github.com/dnsscience/dnscore/dnswire"
	"github.com/dnsscience/dnscore/name"
	"github.com/dnsscience/dnscore/rr"
	"github.com/dnsscience/dnscore/stats"
)

// SIG0Options controls a SIG(0) sign operation.
type SIG0Options struct {
	SignerName string
	KeyTag     uint16
	Algorithm  uint8
	Fudge      uint32 // 0 defaults to 300
}

// AppendSIG0 signs m with a public-key algorithm over its preceding wire
// form and appends a SIG record (TypeCovered 0) to the additional section.
func AppendSIG0(m *dnsmsg.Message, signer dnssec.Signer, opts SIG0Options, now uint32, privateKey []byte) error {
	m.Additional = withoutTrailingSIG0(m.Additional)

	fudge := opts.Fudge
	if fudge == 0 {
		fudge = 300
	}

	s := &rr.SIG{}
	s.H = rr.Header{Name: ".", Type: rr.TypeSIG, Class: rr.ClassANY, TTL: 0}
	s.TypeCovered = 0
	s.Algorithm = opts.Algorithm
	s.Labels = 0
	s.OrigTTL = 0
	s.Inception = now
	s.Expiration = now + fudge
	s.KeyTag = opts.KeyTag
	s.SignerName = name.Fqdn(opts.SignerName)

	tbs, err := sig0ToBeSigned(s, m)
	if err != nil {
		stats.ObserveTSIG("sig0-sign", err)
		return err
	}
	signature, err := signer.Sign(opts.Algorithm, tbs, privateKey)
	if err != nil {
		stats.ObserveTSIG("sig0-sign", err)
		return err
	}
	s.Signature = signature
	m.Additional = append(m.Additional, s)
	stats.ObserveTSIG("sig0-sign", nil)
	return nil
}

// VerifySIG0 checks the trailing SIG(0) record against publicKey, within
// its inception/expiration window around now.
func VerifySIG0(m *dnsmsg.Message, verifier dnssec.Verifier, publicKey []byte, now uint32) error {
	n := len(m.Additional)
	if n == 0 {
		stats.ObserveTSIG("sig0-verify", ErrNoSIG0)
		return ErrNoSIG0
	}
	s, ok := m.Additional[n-1].(*rr.SIG)
	if !ok || s.TypeCovered != 0 {
		stats.ObserveTSIG("sig0-verify", ErrNoSIG0)
		return ErrNoSIG0
	}
	if !dnssec.InWindow(now, s.Inception, s.Expiration) {
		stats.ObserveTSIG("sig0-verify", ErrBadTime)
		return ErrBadTime
	}

	stripped := *m
	stripped.Additional = m.Additional[:n-1]
	tbs, err := sig0ToBeSigned(s, &stripped)
	if err != nil {
		stats.ObserveTSIG("sig0-verify", err)
		return err
	}
	err = verifier.Verify(s.Algorithm, tbs, s.Signature, publicKey)
	stats.ObserveTSIG("sig0-verify", err)
	return err
}

// sig0ToBeSigned builds SIG_rdata_without_signature || preceding_message_bytes,
// with m's own trailing SIG(0), if any, already excluded by the caller.
func sig0ToBeSigned(s *rr.SIG, m *dnsmsg.Message) ([]byte, error) {
	w := dnswire.NewWriter(nil, false)
	w.Uint16(s.TypeCovered)
	w.Uint8(s.Algorithm)
	w.Uint8(s.Labels)
	w.Uint32(s.OrigTTL)
	w.Uint32(s.Expiration)
	w.Uint32(s.Inception)
	w.Uint16(s.KeyTag)
	if err := w.NameUncompressed(s.SignerName); err != nil {
		return nil, err
	}

	msgBytes, err := dnsmsg.Pack(m)
	if err != nil {
		return nil, err
	}
	return append(w.Buf, msgBytes...), nil
}

func withoutTrailingSIG0(additional []rr.RR) []rr.RR {
	n := len(additional)
	if n == 0 {
		return additional
	}
	if s, ok := additional[n-1].(*rr.SIG); ok && s.TypeCovered == 0 {
		return additional[:n-1]
	}
	return additional
}
