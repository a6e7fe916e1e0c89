package rr

// Type codes (IANA DNS Parameters, RFC 1035 and successors).
const (
	TypeNone       uint16 = 0
	TypeA          uint16 = 1
	TypeNS         uint16 = 2
	TypeMD         uint16 = 3
	TypeMF         uint16 = 4
	TypeCNAME      uint16 = 5
	TypeSOA        uint16 = 6
	TypeMB         uint16 = 7
	TypeMG         uint16 = 8
	TypeMR         uint16 = 9
	TypeNULL       uint16 = 10
	TypePTR        uint16 = 12
	TypeHINFO      uint16 = 13
	TypeMINFO      uint16 = 14
	TypeMX         uint16 = 15
	TypeTXT        uint16 = 16
	TypeRP         uint16 = 17
	TypeAFSDB      uint16 = 18
	TypeX25        uint16 = 19
	TypeISDN       uint16 = 20
	TypeRT         uint16 = 21
	TypeSIG        uint16 = 24
	TypeKEY        uint16 = 25
	TypePX         uint16 = 26
	TypeAAAA       uint16 = 28
	TypeLOC        uint16 = 29
	TypeNXT        uint16 = 30
	TypeSRV        uint16 = 33
	TypeNAPTR      uint16 = 35
	TypeKX         uint16 = 36
	TypeCERT       uint16 = 37
	TypeA6         uint16 = 38
	TypeDNAME      uint16 = 39
	TypeOPT        uint16 = 41
	TypeAPL        uint16 = 42
	TypeDS         uint16 = 43
	TypeSSHFP      uint16 = 44
	TypeIPSECKEY   uint16 = 45
	TypeRRSIG      uint16 = 46
	TypeNSEC       uint16 = 47
	TypeDNSKEY     uint16 = 48
	TypeDHCID      uint16 = 49
	TypeNSEC3      uint16 = 50
	TypeNSEC3PARAM uint16 = 51
	TypeTLSA       uint16 = 52
	TypeSMIMEA     uint16 = 53
	TypeHIP        uint16 = 55
	TypeCDS        uint16 = 59
	TypeCDNSKEY    uint16 = 60
	TypeOPENPGPKEY uint16 = 61
	TypeCSYNC      uint16 = 62
	TypeZONEMD     uint16 = 63
	TypeSVCB       uint16 = 64
	TypeHTTPS      uint16 = 65
	TypeSPF        uint16 = 99
	TypeNID        uint16 = 104
	TypeL32        uint16 = 105
	TypeL64        uint16 = 106
	TypeLP         uint16 = 107
	TypeEUI48      uint16 = 108
	TypeEUI64      uint16 = 109
	TypeTKEY       uint16 = 249
	TypeTSIG       uint16 = 250
	TypeURI        uint16 = 256
	TypeCAA        uint16 = 257

	// Question-only pseudo-types (§3 "extend type/class").
	TypeIXFR  uint16 = 251
	TypeAXFR  uint16 = 252
	TypeMAILB uint16 = 253
	TypeMAILA uint16 = 254
	TypeANY   uint16 = 255

	TypeTA  uint16 = 32768
	TypeDLV uint16 = 32769
)

// Class codes.
const (
	ClassINET   uint16 = 1
	ClassCHAOS  uint16 = 3
	ClassHESIOD uint16 = 4
	ClassNONE   uint16 = 254
	ClassANY    uint16 = 255
)

var typeNames = map[uint16]string{
	TypeA: "A", TypeNS: "NS", TypeMD: "MD", TypeMF: "MF", TypeCNAME: "CNAME",
	TypeSOA: "SOA", TypeMB: "MB", TypeMG: "MG", TypeMR: "MR", TypeNULL: "NULL",
	TypePTR: "PTR", TypeHINFO: "HINFO", TypeMINFO: "MINFO", TypeMX: "MX",
	TypeTXT: "TXT", TypeRP: "RP", TypeAFSDB: "AFSDB", TypeX25: "X25",
	TypeISDN: "ISDN", TypeRT: "RT", TypeSIG: "SIG", TypeKEY: "KEY", TypePX: "PX",
	TypeAAAA: "AAAA", TypeLOC: "LOC", TypeNXT: "NXT", TypeSRV: "SRV",
	TypeNAPTR: "NAPTR", TypeKX: "KX", TypeCERT: "CERT", TypeA6: "A6",
	TypeDNAME: "DNAME", TypeOPT: "OPT", TypeAPL: "APL", TypeDS: "DS",
	TypeSSHFP: "SSHFP", TypeIPSECKEY: "IPSECKEY", TypeRRSIG: "RRSIG",
	TypeNSEC: "NSEC", TypeDNSKEY: "DNSKEY", TypeDHCID: "DHCID",
	TypeNSEC3: "NSEC3", TypeNSEC3PARAM: "NSEC3PARAM", TypeTLSA: "TLSA",
	TypeSMIMEA: "SMIMEA", TypeHIP: "HIP", TypeCDS: "CDS", TypeCDNSKEY: "CDNSKEY",
	TypeOPENPGPKEY: "OPENPGPKEY", TypeCSYNC: "CSYNC", TypeZONEMD: "ZONEMD",
	TypeSVCB: "SVCB", TypeHTTPS: "HTTPS", TypeSPF: "SPF", TypeNID: "NID",
	TypeL32: "L32", TypeL64: "L64", TypeLP: "LP", TypeEUI48: "EUI48",
	TypeEUI64: "EUI64", TypeTKEY: "TKEY", TypeTSIG: "TSIG", TypeURI: "URI",
	TypeCAA: "CAA", TypeIXFR: "IXFR", TypeAXFR: "AXFR", TypeMAILB: "MAILB",
	TypeMAILA: "MAILA", TypeANY: "ANY", TypeTA: "TA", TypeDLV: "DLV",
}

var nameTypes = func() map[string]uint16 {
	m := make(map[string]uint16, len(typeNames))
	for k, v := range typeNames {
		m[v] = k
	}
	return m
}()

// TypeToString renders the mnemonic for a type code, falling back to the
// RFC 3597 "TYPEnnn" form for anything not in the static table.
func TypeToString(t uint16) string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "TYPE" + uitoa(uint32(t))
}

// StringToType parses a mnemonic or "TYPEnnn" form back into a type code.
func StringToType(s string) (uint16, bool) {
	if t, ok := nameTypes[s]; ok {
		return t, true
	}
	if len(s) > 4 && s[:4] == "TYPE" {
		if n, ok := atoiSafe(s[4:]); ok {
			return uint16(n), true
		}
	}
	return 0, false
}

var classNames = map[uint16]string{
	ClassINET: "IN", ClassCHAOS: "CH", ClassHESIOD: "HS", ClassNONE: "NONE", ClassANY: "ANY",
}

var nameClasses = func() map[string]uint16 {
	m := make(map[string]uint16, len(classNames))
	for k, v := range classNames {
		m[v] = k
	}
	return m
}()

func ClassToString(c uint16) string {
	if s, ok := classNames[c]; ok {
		return s
	}
	return "CLASS" + uitoa(uint32(c))
}

func StringToClass(s string) (uint16, bool) {
	if c, ok := nameClasses[s]; ok {
		return c, true
	}
	if len(s) > 5 && s[:5] == "CLASS" {
		if n, ok := atoiSafe(s[5:]); ok {
			return uint16(n), true
		}
	}
	return 0, false
}

func uitoa(v uint32) string {
	if v == 0 {
		return "0"
	}
	var b [10]byte
	i := len(b)
	for v > 0 {
		i--
		b[i] = byte('0' + v%10)
		v /= 10
	}
	return string(b[i:])
}

func atoiSafe(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
		if n > 0xFFFFFFFF {
			return 0, false
		}
	}
	return n, true
}
