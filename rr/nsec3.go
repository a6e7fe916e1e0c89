package rr

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/dnsscience/dnscore/dnswire"
	"github.com/dnsscience/dnscore/present"
)

// NSEC3 proves non-existence using hashed owner names instead of the
// plaintext next-name NSEC uses (RFC 5155 §3).
type NSEC3 struct {
	H          Header
	Algorithm  uint8
	Flags      uint8
	Iterations uint16
	Salt       []byte
	NextHashed []byte
	Types      []uint16
}

func (r *NSEC3) Hdr() *Header { return &r.H }

func (r *NSEC3) RdataString() string {
	salt := "-"
	if len(r.Salt) > 0 {
		salt = present.HexChunked(r.Salt)
	}
	names := make([]string, len(r.Types))
	for i, t := range r.Types {
		names[i] = TypeToString(t)
	}
	return fmt.Sprintf("%d %d %d %s %s %s", r.Algorithm, r.Flags, r.Iterations, salt,
		base32Hex(r.NextHashed), strings.Join(names, " "))
}

func (r *NSEC3) Canonicalize() {}
func (r *NSEC3) RdataJSON() map[string]any {
	types := make([]string, len(r.Types))
	for i, t := range r.Types {
		types[i] = TypeToString(t)
	}
	return map[string]any{
		"algorithm":  r.Algorithm,
		"flags":      r.Flags,
		"iterations": r.Iterations,
		"salt":       hex.EncodeToString(r.Salt),
		"nextHashed": hex.EncodeToString(r.NextHashed),
		"types":      types,
	}
}
func (r *NSEC3) Clone() RR {
	c := *r
	c.Salt = append([]byte(nil), r.Salt...)
	c.NextHashed = append([]byte(nil), r.NextHashed...)
	c.Types = append([]uint16(nil), r.Types...)
	return &c
}

func (r *NSEC3) PackRdata(w *dnswire.Writer) error {
	w.Uint8(r.Algorithm)
	w.Uint8(r.Flags)
	w.Uint16(r.Iterations)
	w.Uint8(uint8(len(r.Salt)))
	w.Bytes(r.Salt)
	w.Uint8(uint8(len(r.NextHashed)))
	w.Bytes(r.NextHashed)
	w.TypeBitMap(r.Types)
	return nil
}

func (r *NSEC3) UnpackRdata(src *dnswire.Reader) error {
	var err error
	if r.Algorithm, err = src.Uint8(); err != nil {
		return err
	}
	if r.Flags, err = src.Uint8(); err != nil {
		return err
	}
	if r.Iterations, err = src.Uint16(); err != nil {
		return err
	}
	saltLen, err := src.Uint8()
	if err != nil {
		return err
	}
	if r.Salt, err = src.Bytes(int(saltLen)); err != nil {
		return err
	}
	hashLen, err := src.Uint8()
	if err != nil {
		return err
	}
	if r.NextHashed, err = src.Bytes(int(hashLen)); err != nil {
		return err
	}
	r.Types, err = src.TypeBitMap()
	return err
}

// NSEC3PARAM publishes the hash parameters a zone's NSEC3 chain uses
// (RFC 5155 §4), without the owner-specific next-hash/type-bitmap fields.
type NSEC3PARAM struct {
	H          Header
	Algorithm  uint8
	Flags      uint8
	Iterations uint16
	Salt       []byte
}

func (r *NSEC3PARAM) Hdr() *Header { return &r.H }
func (r *NSEC3PARAM) RdataString() string {
	salt := "-"
	if len(r.Salt) > 0 {
		salt = present.HexChunked(r.Salt)
	}
	return fmt.Sprintf("%d %d %d %s", r.Algorithm, r.Flags, r.Iterations, salt)
}
func (r *NSEC3PARAM) Canonicalize() {}
func (r *NSEC3PARAM) RdataJSON() map[string]any {
	return map[string]any{
		"algorithm":  r.Algorithm,
		"flags":      r.Flags,
		"iterations": r.Iterations,
		"salt":       hex.EncodeToString(r.Salt),
	}
}
func (r *NSEC3PARAM) Clone() RR {
	c := *r
	c.Salt = append([]byte(nil), r.Salt...)
	return &c
}

func (r *NSEC3PARAM) PackRdata(w *dnswire.Writer) error {
	w.Uint8(r.Algorithm)
	w.Uint8(r.Flags)
	w.Uint16(r.Iterations)
	w.Uint8(uint8(len(r.Salt)))
	w.Bytes(r.Salt)
	return nil
}

func (r *NSEC3PARAM) UnpackRdata(src *dnswire.Reader) error {
	var err error
	if r.Algorithm, err = src.Uint8(); err != nil {
		return err
	}
	if r.Flags, err = src.Uint8(); err != nil {
		return err
	}
	if r.Iterations, err = src.Uint16(); err != nil {
		return err
	}
	saltLen, err := src.Uint8()
	if err != nil {
		return err
	}
	r.Salt, err = src.Bytes(int(saltLen))
	return err
}

func init() {
	Register(TypeNSEC3, func() RR { return &NSEC3{} })
	Register(TypeNSEC3PARAM, func() RR { return &NSEC3PARAM{} })

	RegisterParser(TypeNSEC3, func(tokens []string) (RR, error) {
		if len(tokens) < 5 {
			return nil, fmt.Errorf("rr: NSEC3 needs at least 5 fields")
		}
		alg, err := present.ParseUint(tokens[0], 8)
		if err != nil {
			return nil, err
		}
		flags, err := present.ParseUint(tokens[1], 8)
		if err != nil {
			return nil, err
		}
		iter, err := present.ParseUint(tokens[2], 16)
		if err != nil {
			return nil, err
		}
		var salt []byte
		if tokens[3] != "-" {
			salt, err = present.DecodeHex(tokens[3])
			if err != nil {
				return nil, err
			}
		}
		next, err := decodeBase32Hex(tokens[4])
		if err != nil {
			return nil, err
		}
		types, err := parseTypeList(tokens[5:])
		if err != nil {
			return nil, err
		}
		return &NSEC3{
			Algorithm: uint8(alg), Flags: uint8(flags), Iterations: uint16(iter),
			Salt: salt, NextHashed: next, Types: types,
		}, nil
	})

	RegisterParser(TypeNSEC3PARAM, func(tokens []string) (RR, error) {
		if len(tokens) < 4 {
			return nil, fmt.Errorf("rr: NSEC3PARAM needs 4 fields")
		}
		alg, err := present.ParseUint(tokens[0], 8)
		if err != nil {
			return nil, err
		}
		flags, err := present.ParseUint(tokens[1], 8)
		if err != nil {
			return nil, err
		}
		iter, err := present.ParseUint(tokens[2], 16)
		if err != nil {
			return nil, err
		}
		var salt []byte
		if tokens[3] != "-" {
			salt, err = present.DecodeHex(tokens[3])
			if err != nil {
				return nil, err
			}
		}
		return &NSEC3PARAM{Algorithm: uint8(alg), Flags: uint8(flags), Iterations: uint16(iter), Salt: salt}, nil
	})
}
