package tmpl

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dnsscience/dnscore/rr"
)

const testDoc = `
templates:
  tenant-web:
    A: 192.0.2.${octet}
    TXT: '"tenant=${name}"'
apply:
  - template: tenant-web
    ttl: 300
    to:
      - name: alpha
        octet: 10
      - name: beta
        octet: 11
`

func TestExpandAppliesTemplateToEachTarget(t *testing.T) {
	f, err := Parse([]byte(testDoc))
	require.NoError(t, err)

	records, err := f.Expand("example.org.")
	require.NoError(t, err)
	require.Len(t, records, 4) // 2 targets x (A + TXT)

	var sawAlphaA, sawBetaTXT bool
	for _, r := range records {
		if r.Hdr().Name == "alpha.example.org." {
			if a, ok := r.(*rr.A); ok && a.IP.String() == "192.0.2.10" {
				sawAlphaA = true
			}
		}
		if r.Hdr().Name == "beta.example.org." && r.Hdr().Type == rr.TypeTXT {
			sawBetaTXT = true
		}
		require.Equal(t, uint32(300), r.Hdr().TTL)
	}
	require.True(t, sawAlphaA, "expected an A record for alpha")
	require.True(t, sawBetaTXT, "expected a TXT record for beta")
}

func TestExpandRejectsUnknownTemplate(t *testing.T) {
	f, err := Parse([]byte(`
templates: {}
apply:
  - template: missing
    to:
      - name: x
`))
	require.NoError(t, err)
	_, err = f.Expand("example.org.")
	require.Error(t, err)
}
