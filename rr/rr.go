// Package rr implements the tagged-variant registry of DNS resource record
// types: one Go type per IANA type code, each declaring how to encode,
// decode, canonicalize, and render itself in presentation form. No variant
// reports its encoded size ahead of packing; Pack learns the rdata length
// only after PackRdata has written it.
package rr

import (
	"errors"
	"fmt"

	"github.com/dnsscience/dnscore/dnswire"
	"github.com/dnsscience/dnscore/name"
)

var (
	ErrRdataTooLong = errors.New("rr: rdata exceeds 65535 bytes")
)

// Header carries the fields common to every record: owner name, type,
// class, and TTL.
type Header struct {
	Name  string
	Type  uint16
	Class uint16
	TTL   uint32
}

func (h Header) String() string {
	return fmt.Sprintf("%s\t%d\t%s\t%s", h.Name, h.TTL, ClassToString(h.Class), TypeToString(h.Type))
}

// RR is implemented by every resource-record variant, including the
// UNKNOWN fallback used for type codes the registry doesn't model.
type RR interface {
	Hdr() *Header
	// RdataString renders only the rdata fields in presentation form.
	RdataString() string
	// PackRdata encodes rdata fields, in schema order, to w.
	PackRdata(w *dnswire.Writer) error
	// UnpackRdata decodes rdata fields from a reader scoped to rdlength.
	UnpackRdata(r *dnswire.Reader) error
	// Canonicalize lowercases any embedded domain names for the fixed set
	// of types RFC 4034 §6.2 requires it for; a no-op otherwise.
	Canonicalize()
	// Clone returns a deep copy.
	Clone() RR
	// RdataJSON renders the rdata fields as a JSON-compatible map, mapping
	// each field to the JSON kind that matches its presentation-form
	// encoding: integers as numbers, hex/base64 blobs as strings, name and
	// type-bitmap lists as arrays.
	RdataJSON() map[string]any
}

// factory is the tagged-variant construction table, keyed by type code.
var factory = map[uint16]func() RR{}

// Register adds a constructor to the registry; called from each type's
// init(). Re-registering a type code is a programmer error and panics.
func Register(t uint16, new func() RR) {
	if _, dup := factory[t]; dup {
		panic(fmt.Sprintf("rr: duplicate registration for type %d", t))
	}
	factory[t] = new
}

// New constructs a zero-value RR for the given type, falling back to
// UNKNOWN when the type isn't in the registry.
func New(t uint16) RR {
	if f, ok := factory[t]; ok {
		r := f()
		*r.Hdr() = Header{Type: t}
		return r
	}
	u := &UNKNOWN{}
	u.H = Header{Type: t}
	return u
}

// Pack writes a complete RR (header, rdlength, rdata) to w, patching the
// rdlength field after encoding rdata so its value is known.
func Pack(w *dnswire.Writer, r RR) error {
	h := r.Hdr()
	if err := w.Name(h.Name); err != nil {
		return err
	}
	w.Uint16(h.Type)
	w.Uint16(h.Class)
	w.Uint32(h.TTL)
	rdlenOff := w.Offset()
	w.Uint16(0)
	start := w.Offset()
	if err := r.PackRdata(w); err != nil {
		return err
	}
	rdlen := w.Offset() - start
	if rdlen > 0xFFFF {
		return ErrRdataTooLong
	}
	w.Buf[rdlenOff] = byte(rdlen >> 8)
	w.Buf[rdlenOff+1] = byte(rdlen)
	return nil
}

// Unpack decodes a complete RR (header, rdlength-bounded rdata) from r.
// Per the "rdlength discipline" rule, the outer reader always advances by
// exactly rdlength, even if the variant's UnpackRdata consumed less.
func Unpack(r *dnswire.Reader) (RR, error) {
	nm, err := r.Name()
	if err != nil {
		return nil, err
	}
	typ, err := r.Uint16()
	if err != nil {
		return nil, err
	}
	class, err := r.Uint16()
	if err != nil {
		return nil, err
	}
	ttl, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	rdlen, err := r.Uint16()
	if err != nil {
		return nil, err
	}

	rdReader, err := dnswire.NewReader(r.Msg, r.Offset(), int(rdlen))
	if err != nil {
		return nil, err
	}

	rec := New(typ)
	*rec.Hdr() = Header{Name: nm, Type: typ, Class: class, TTL: ttl}
	if err := rec.UnpackRdata(rdReader); err != nil {
		return nil, err
	}

	if err := skip(r, int(rdlen)); err != nil {
		return nil, err
	}
	return rec, nil
}

func skip(r *dnswire.Reader, n int) error {
	if r.Len() < n {
		return dnswire.ErrShortRead
	}
	_, err := r.Bytes(n)
	return err
}

// String renders a full RR (header + rdata) in RFC 1035 presentation form.
func String(r RR) string {
	return r.Hdr().String() + "\t" + r.RdataString()
}

// ToJSON renders a full RR (header + rdata) as a JSON-compatible map: the
// common header fields alongside whatever RdataJSON contributes for the
// variant.
func ToJSON(r RR) map[string]any {
	h := r.Hdr()
	m := map[string]any{
		"name":  h.Name,
		"type":  TypeToString(h.Type),
		"class": ClassToString(h.Class),
		"ttl":   h.TTL,
	}
	for k, v := range r.RdataJSON() {
		m[k] = v
	}
	return m
}

// lowerName is a small helper every Canonicalize implementation uses to
// fold an embedded name to lowercase without otherwise touching it.
func lowerName(s string) string { return name.ToLower(s) }

// parsers is the presentation-form (zone file / text) construction table,
// keyed by type code; the counterpart of factory for ParseRdata.
var parsers = map[uint16]func(tokens []string) (RR, error){}

// RegisterParser adds a token-based rdata parser to the registry; called
// from each type's init() alongside Register.
func RegisterParser(t uint16, parse func(tokens []string) (RR, error)) {
	parsers[t] = parse
}

// ParseRdata builds an RR of the given type from presentation-form rdata
// tokens (as produced by the zone lexer). A token sequence starting with
// the RFC 3597 "\#" marker is parsed as generic unknown rdata for any type;
// otherwise a type with no registered parser returns an error.
func ParseRdata(t uint16, tokens []string) (RR, error) {
	if len(tokens) > 0 && tokens[0] == "\\#" {
		data, err := ParseUnknownRdata(tokens)
		if err != nil {
			return nil, err
		}
		u := &UNKNOWN{H: Header{Type: t}, Data: data}
		return u, nil
	}
	if p, ok := parsers[t]; ok {
		return p(tokens)
	}
	return nil, fmt.Errorf("rr: no presentation parser registered for type %s", TypeToString(t))
}

func need(tokens []string, i int, what string) (string, error) {
	if i >= len(tokens) {
		return "", fmt.Errorf("rr: missing %s", what)
	}
	return tokens[i], nil
}
