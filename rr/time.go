package rr

import "time"

// defaultNow supplies the wall-clock reference the zone/presentation parser
// uses to resolve RRSIG/SIG timestamps against the current 32-bit epoch
// window (RFC 4034 §3.1.5). Tests needing a fixed clock call parseSig
// directly with their own now function instead of going through the
// registered parser.
func defaultNow() uint32 { return uint32(time.Now().Unix()) }

func nowTime(now func() uint32) time.Time {
	return time.Unix(int64(now()), 0).UTC()
}
