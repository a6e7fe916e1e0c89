package rr

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dnsscience/dnscore/dnswire"
)

// LOC encodes geographic position and precision for the owner name
// (RFC 1876). Latitude and longitude are stored as the wire's 32-bit
// "2^31 + thousandths of an arc-second north/east of the equator/prime
// meridian" values; size/precision use RFC 1876's base-10 exponent
// encoding, and altitude is centimeters above a -100000m base.
type LOC struct {
	H         Header
	Version   uint8
	Size      uint8 // exponent-encoded centimeters
	HorizPre  uint8 // exponent-encoded centimeters
	VertPre   uint8 // exponent-encoded centimeters
	Latitude  uint32
	Longitude uint32
	Altitude  uint32 // centimeters above/below -100000m
}

const locEquator = uint32(1) << 31
const locAltBase = int64(10000000) // -100000m in centimeters

func (r *LOC) Hdr() *Header { return &r.H }

func (r *LOC) RdataString() string {
	lat := locDegString(r.Latitude, 'N', 'S')
	lon := locDegString(r.Longitude, 'E', 'W')
	alt := float64(int64(r.Altitude)-locAltBase) / 100
	return fmt.Sprintf("%s %s %.2fm %sm %sm %sm",
		lat, lon, alt,
		locSizeString(r.Size), locSizeString(r.HorizPre), locSizeString(r.VertPre))
}

func (r *LOC) Canonicalize() {}
func (r *LOC) Clone() RR     { c := *r; return &c }
func (r *LOC) RdataJSON() map[string]any {
	return map[string]any{
		"version":   r.Version,
		"size":      r.Size,
		"horizPre":  r.HorizPre,
		"vertPre":   r.VertPre,
		"latitude":  r.Latitude,
		"longitude": r.Longitude,
		"altitude":  r.Altitude,
	}
}

func (r *LOC) PackRdata(w *dnswire.Writer) error {
	w.Uint8(r.Version)
	w.Uint8(r.Size)
	w.Uint8(r.HorizPre)
	w.Uint8(r.VertPre)
	w.Uint32(r.Latitude)
	w.Uint32(r.Longitude)
	w.Uint32(r.Altitude)
	return nil
}

func (r *LOC) UnpackRdata(src *dnswire.Reader) error {
	var err error
	if r.Version, err = src.Uint8(); err != nil {
		return err
	}
	if r.Size, err = src.Uint8(); err != nil {
		return err
	}
	if r.HorizPre, err = src.Uint8(); err != nil {
		return err
	}
	if r.VertPre, err = src.Uint8(); err != nil {
		return err
	}
	if r.Latitude, err = src.Uint32(); err != nil {
		return err
	}
	if r.Longitude, err = src.Uint32(); err != nil {
		return err
	}
	r.Altitude, err = src.Uint32()
	return err
}

// locExponent packs a decimal value (in centimeters) into RFC 1876's
// base*10^exponent nibble pair, base in [0,9], exponent in [0,9].
func locExponent(centimeters uint64) uint8 {
	exp := 0
	for centimeters >= 10 {
		centimeters /= 10
		exp++
	}
	return uint8(centimeters<<4) | uint8(exp)
}

func locSizeString(v uint8) string {
	base := uint64(v >> 4)
	exp := uint64(v & 0x0f)
	cm := base
	for i := uint64(0); i < exp; i++ {
		cm *= 10
	}
	return strconv.FormatFloat(float64(cm)/100, 'f', -1, 64)
}

func locDegString(v uint32, pos, neg byte) string {
	var sign byte = pos
	var delta int64
	if v >= locEquator {
		delta = int64(v - locEquator)
	} else {
		sign = neg
		delta = int64(locEquator - v)
	}
	// delta is in thousandths of an arc-second.
	total := delta // thousandths of an arc-second
	deg := total / (1000 * 60 * 60)
	rem := total % (1000 * 60 * 60)
	min := rem / (1000 * 60)
	rem %= 1000 * 60
	sec := float64(rem) / 1000
	return fmt.Sprintf("%d %d %.3f %c", deg, min, sec, sign)
}

// parseLocAngle parses "deg [min [sec]] N|S|E|W" and returns the wire's
// equator/meridian-relative thousandths-of-an-arc-second value, along with
// the number of tokens consumed.
func parseLocAngle(tokens []string, positive, negative string) (uint32, int, error) {
	if len(tokens) == 0 {
		return 0, 0, fmt.Errorf("rr: LOC missing angle")
	}
	var deg, min float64
	var sec float64
	var sign string
	i := 0
	read := func() (float64, bool) {
		if i >= len(tokens) {
			return 0, false
		}
		v, err := strconv.ParseFloat(tokens[i], 64)
		if err != nil {
			return 0, false
		}
		i++
		return v, true
	}
	var ok bool
	if deg, ok = read(); !ok {
		return 0, 0, fmt.Errorf("rr: LOC bad degrees %q", tokens[0])
	}
	if min, ok = read(); ok {
		if sec, ok = read(); !ok {
			sec = 0
		}
	}
	if i >= len(tokens) {
		return 0, 0, fmt.Errorf("rr: LOC missing hemisphere")
	}
	sign = strings.ToUpper(tokens[i])
	i++
	milliarcsec := (deg*3600 + min*60 + sec) * 1000
	total := int64(math.Round(milliarcsec))
	var val uint32
	switch sign {
	case strings.ToUpper(positive):
		val = locEquator + uint32(total)
	case strings.ToUpper(negative):
		val = locEquator - uint32(total)
	default:
		return 0, 0, fmt.Errorf("rr: LOC bad hemisphere %q", sign)
	}
	return val, i, nil
}

func parseLocSize(tok string) (uint8, error) {
	s := strings.TrimSuffix(tok, "m")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("rr: LOC bad size %q", tok)
	}
	return locExponent(uint64(math.Round(f * 100))), nil
}

func init() {
	Register(TypeLOC, func() RR { return &LOC{} })
	RegisterParser(TypeLOC, func(tokens []string) (RR, error) {
		lat, n, err := parseLocAngle(tokens, "N", "S")
		if err != nil {
			return nil, err
		}
		tokens = tokens[n:]
		lon, n, err := parseLocAngle(tokens, "E", "W")
		if err != nil {
			return nil, err
		}
		tokens = tokens[n:]

		alt := int64(0)
		size, horiz, vert := uint8(0x12), uint8(0x16), uint8(0x13)
		if len(tokens) > 0 {
			s := strings.TrimSuffix(tokens[0], "m")
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("rr: LOC bad altitude %q", tokens[0])
			}
			alt = int64(math.Round(f*100)) + locAltBase
			tokens = tokens[1:]
		}
		if len(tokens) > 0 {
			if size, err = parseLocSize(tokens[0]); err != nil {
				return nil, err
			}
			tokens = tokens[1:]
		}
		if len(tokens) > 0 {
			if horiz, err = parseLocSize(tokens[0]); err != nil {
				return nil, err
			}
			tokens = tokens[1:]
		}
		if len(tokens) > 0 {
			if vert, err = parseLocSize(tokens[0]); err != nil {
				return nil, err
			}
		}
		return &LOC{
			Version: 0, Size: size, HorizPre: horiz, VertPre: vert,
			Latitude: lat, Longitude: lon, Altitude: uint32(alt),
		}, nil
	})
}
