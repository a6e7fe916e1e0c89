// Package dnstext renders a parsed zone back to RFC 1035 presentation form,
// the BIND-style master-file text that dnszone.Parser consumes.
package dnstext

import (
	"sort"
	"strconv"
	"strings"

	"github.com/dnsscience/dnscore/dnszone"
	"github.com/dnsscience/dnscore/rr"
)

// WriteZone renders z as a master-file body: a $ORIGIN line, a $TTL line
// taken from the SOA minimum, the SOA record, the apex NS set, then every
// remaining record grouped by owner name in sorted order. Each record line
// is produced by rr.String, so re-parsing the output with dnszone.Parser
// reconstructs the same records.
func WriteZone(z *dnszone.Zone) string {
	var b strings.Builder
	b.WriteString("$ORIGIN ")
	b.WriteString(z.Origin)
	b.WriteByte('\n')

	if z.SOA != nil {
		b.WriteString("$TTL ")
		b.WriteString(strconv.FormatUint(uint64(z.SOA.Minttl), 10))
		b.WriteByte('\n')
		b.WriteString(rr.String(z.SOA))
		b.WriteByte('\n')
	}

	written := make(map[rr.RR]bool)
	if z.SOA != nil {
		written[z.SOA] = true
	}

	for _, ns := range z.Nameservers() {
		writeRecord(&b, ns, written)
	}

	for _, owner := range sortedOwners(z) {
		typeMap := z.Records[owner]
		types := make([]uint16, 0, len(typeMap))
		for t := range typeMap {
			types = append(types, t)
		}
		sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
		for _, t := range types {
			for _, r := range typeMap[t] {
				writeRecord(&b, r, written)
			}
		}
	}

	return b.String()
}

func writeRecord(b *strings.Builder, r rr.RR, written map[rr.RR]bool) {
	if written[r] {
		return
	}
	written[r] = true
	b.WriteString(rr.String(r))
	b.WriteByte('\n')
}

func sortedOwners(z *dnszone.Zone) []string {
	owners := make([]string, 0, len(z.Records))
	for owner := range z.Records {
		owners = append(owners, owner)
	}
	sort.Strings(owners)
	return owners
}

