// Package dnstsig implements transaction-level message authentication:
// shared-secret TSIG (RFC 8945) and public-key SIG(0) (RFC 2931). Both
// append a signature record to a message's additional section and are
// verified against the same wire bytes the signer produced.
package dnstsig

import "errors"

var (
	ErrUnknownAlgorithm = errors.New("dnstsig: unknown algorithm")
	ErrNoTSIG           = errors.New("dnstsig: message carries no trailing TSIG record")
	ErrNoSIG0           = errors.New("dnstsig: message carries no trailing SIG(0) record")
	ErrBadTSIGOwner     = errors.New("dnstsig: TSIG record must be owner \".\", class ANY, ttl 0")
	ErrBadTime          = errors.New("dnstsig: signature time outside the fudge window")
	ErrBadMAC           = errors.New("dnstsig: MAC verification failed")
)
