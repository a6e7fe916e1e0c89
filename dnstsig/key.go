package dnstsig

// Key is a shared TSIG secret, identified by name for lookup against a
// key ring and keyed to a specific HMAC algorithm.
type Key struct {
	Name      string
	Algorithm string
	Secret    []byte
}

// SignOptions controls the optional fields of a TSIG sign operation.
// The zero value signs a fresh query: no requestMAC, full (non-timers-only)
// variables, fudge defaulted to 300 seconds.
type SignOptions struct {
	Fudge      uint16 // 0 defaults to 300
	TimeSigned uint64 // 0 defaults to now
	OrigID     uint16 // 0 defaults to the message's current ID
	Error      uint16
	OtherData  []byte
	RequestMAC []byte // prior response's MAC, for chained TSIGs over a TCP stream
	TimersOnly bool
}
