package rr

import (
	"encoding/hex"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/dnsscience/dnscore/dnswire"
)

// APLItem is one address-prefix entry within an APL rdata (RFC 3123).
type APLItem struct {
	Family  uint16 // 1 = IPv4, 2 = IPv6
	Prefix  uint8
	Negate  bool
	AFDPart []byte // significant octets only, trailing zero bytes trimmed
}

// APL lists address prefixes associated with the owner name (RFC 3123).
type APL struct {
	H     Header
	Items []APLItem
}

func (r *APL) Hdr() *Header { return &r.H }

func (r *APL) RdataString() string {
	parts := make([]string, len(r.Items))
	for i, it := range r.Items {
		neg := ""
		if it.Negate {
			neg = "!"
		}
		addr := aplAddrString(it.Family, it.AFDPart)
		parts[i] = fmt.Sprintf("%s%d:%s/%d", neg, it.Family, addr, it.Prefix)
	}
	return strings.Join(parts, " ")
}

func (r *APL) Canonicalize() {}
func (r *APL) Clone() RR {
	c := *r
	c.Items = make([]APLItem, len(r.Items))
	for i, it := range r.Items {
		it.AFDPart = append([]byte(nil), it.AFDPart...)
		c.Items[i] = it
	}
	return &c
}

func (r *APL) RdataJSON() map[string]any {
	items := make([]map[string]any, len(r.Items))
	for i, it := range r.Items {
		items[i] = map[string]any{
			"family": it.Family,
			"prefix": it.Prefix,
			"negate": it.Negate,
			"afd":    hex.EncodeToString(it.AFDPart),
		}
	}
	return map[string]any{"items": items}
}

func (r *APL) PackRdata(w *dnswire.Writer) error {
	for _, it := range r.Items {
		w.Uint16(it.Family)
		w.Uint8(it.Prefix)
		afdlen := uint8(len(it.AFDPart))
		if it.Negate {
			w.Uint8(afdlen | 0x80)
		} else {
			w.Uint8(afdlen)
		}
		w.Bytes(it.AFDPart)
	}
	return nil
}

func (r *APL) UnpackRdata(src *dnswire.Reader) error {
	r.Items = nil
	for src.Len() > 0 {
		family, err := src.Uint16()
		if err != nil {
			return err
		}
		prefix, err := src.Uint8()
		if err != nil {
			return err
		}
		b, err := src.Uint8()
		if err != nil {
			return err
		}
		negate := b&0x80 != 0
		afdlen := int(b &^ 0x80)
		data, err := src.Bytes(afdlen)
		if err != nil {
			return err
		}
		r.Items = append(r.Items, APLItem{Family: family, Prefix: prefix, Negate: negate, AFDPart: data})
	}
	return nil
}

func aplAddrString(family uint16, data []byte) string {
	switch family {
	case 1:
		buf := make([]byte, 4)
		copy(buf, data)
		return net.IP(buf).String()
	case 2:
		buf := make([]byte, 16)
		copy(buf, data)
		return net.IP(buf).String()
	default:
		return fmt.Sprintf("%x", data)
	}
}

func aplTrimTrailingZeros(b []byte) []byte {
	n := len(b)
	for n > 0 && b[n-1] == 0 {
		n--
	}
	return b[:n]
}

func init() {
	Register(TypeAPL, func() RR { return &APL{} })
	RegisterParser(TypeAPL, func(tokens []string) (RR, error) {
		items := make([]APLItem, 0, len(tokens))
		for _, tok := range tokens {
			negate := false
			if strings.HasPrefix(tok, "!") {
				negate = true
				tok = tok[1:]
			}
			famColon := strings.IndexByte(tok, ':')
			slash := strings.LastIndexByte(tok, '/')
			if famColon < 0 || slash < 0 || slash < famColon {
				return nil, fmt.Errorf("rr: APL bad item %q", tok)
			}
			famStr := tok[:famColon]
			addrStr := tok[famColon+1 : slash]
			prefixStr := tok[slash+1:]
			fam, err := strconv.Atoi(famStr)
			if err != nil {
				return nil, fmt.Errorf("rr: APL bad family %q", famStr)
			}
			prefix, err := strconv.Atoi(prefixStr)
			if err != nil {
				return nil, fmt.Errorf("rr: APL bad prefix %q", prefixStr)
			}
			ip := net.ParseIP(addrStr)
			if ip == nil {
				return nil, fmt.Errorf("rr: APL bad address %q", addrStr)
			}
			var afd []byte
			switch fam {
			case 1:
				v4 := ip.To4()
				if v4 == nil {
					return nil, fmt.Errorf("rr: APL family 1 needs IPv4 address")
				}
				afd = aplTrimTrailingZeros(v4)
			case 2:
				v6 := ip.To16()
				if v6 == nil || ip.To4() != nil {
					return nil, fmt.Errorf("rr: APL family 2 needs IPv6 address")
				}
				afd = aplTrimTrailingZeros(v6)
			default:
				return nil, fmt.Errorf("rr: APL unsupported family %d", fam)
			}
			items = append(items, APLItem{Family: uint16(fam), Prefix: uint8(prefix), Negate: negate, AFDPart: afd})
		}
		return &APL{Items: items}, nil
	})
}
