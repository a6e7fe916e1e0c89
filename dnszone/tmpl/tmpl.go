// Package tmpl implements a YAML record-template mechanism for stamping
// out repetitive zone records (e.g. one CNAME + TXT pair per tenant)
// without hand-writing each one in a master file.
package tmpl

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dnsscience/dnscore/dnszone"
	"github.com/dnsscience/dnscore/rr"
)

// File is the top-level shape of a template document: a set of named
// templates, each a flat type->rdata-pattern map, plus a list of
// apply directives that instantiate a template once per substitution set.
type File struct {
	Templates map[string]Template `yaml:"templates"`
	Apply     []Apply              `yaml:"apply"`
}

// Template maps an RR type name (A, CNAME, TXT, MX, ...) to a rdata
// pattern string that may reference ${placeholder} variables, or a list
// of such patterns for multi-valued RRsets.
type Template map[string]interface{}

// Apply instantiates a named template once per entry in To, substituting
// each entry's key/value pairs (which must include "name" and "ttl"
// unless a template-wide default is used) into the template's patterns.
type Apply struct {
	Template string                   `yaml:"template"`
	TTL      uint32                   `yaml:"ttl,omitempty"`
	To       []map[string]interface{} `yaml:"to"`
}

// Parse decodes a template document from YAML text.
func Parse(src []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(src, &f); err != nil {
		return nil, fmt.Errorf("tmpl: %w", err)
	}
	return &f, nil
}

// Expand applies every Apply directive in f against origin and returns
// the resulting records, ready for Zone.AddRecord.
func (f *File) Expand(origin string) ([]rr.RR, error) {
	var out []rr.RR
	for _, ap := range f.Apply {
		tpl, ok := f.Templates[ap.Template]
		if !ok {
			return nil, fmt.Errorf("tmpl: apply references unknown template %q", ap.Template)
		}
		for _, vars := range ap.To {
			owner, ok := vars["name"].(string)
			if !ok {
				return nil, fmt.Errorf("tmpl: apply entry for template %q missing \"name\"", ap.Template)
			}
			ownerFQDN := owner
			if !strings.HasSuffix(owner, ".") {
				ownerFQDN = owner + "." + origin
			}
			ttl := ap.TTL
			if v, ok := vars["ttl"]; ok {
				ttl = toUint32(v)
			}
			recs, err := instantiate(tpl, ownerFQDN, ttl, vars)
			if err != nil {
				return nil, fmt.Errorf("tmpl: expanding %q for %q: %w", ap.Template, owner, err)
			}
			out = append(out, recs...)
		}
	}
	return out, nil
}

func instantiate(tpl Template, owner string, ttl uint32, vars map[string]interface{}) ([]rr.RR, error) {
	var out []rr.RR
	for typeName, pattern := range tpl {
		rtype, ok := rr.StringToType(typeName)
		if !ok {
			return nil, fmt.Errorf("unknown record type %q in template", typeName)
		}
		patterns := toStringList(pattern)
		for _, p := range patterns {
			rdataLine := substitute(p, vars)
			tokens := strings.Fields(rdataLine)
			r, err := rr.ParseRdata(rtype, tokens)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", typeName, err)
			}
			*r.Hdr() = rr.Header{Name: owner, Type: rtype, Class: rr.ClassINET, TTL: ttl}
			out = append(out, r)
		}
	}
	return out, nil
}

// substitute replaces every ${key} in pattern with vars[key]'s string form.
func substitute(pattern string, vars map[string]interface{}) string {
	var sb strings.Builder
	for i := 0; i < len(pattern); i++ {
		if pattern[i] == '$' && i+1 < len(pattern) && pattern[i+1] == '{' {
			end := strings.IndexByte(pattern[i+2:], '}')
			if end >= 0 {
				key := pattern[i+2 : i+2+end]
				if v, ok := vars[key]; ok {
					sb.WriteString(toString(v))
				}
				i += 2 + end
				continue
			}
		}
		sb.WriteByte(pattern[i])
	}
	return sb.String()
}

func toStringList(v interface{}) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, e := range t {
			out = append(out, toString(e))
		}
		return out
	default:
		return []string{toString(v)}
	}
}

func toString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func toUint32(v interface{}) uint32 {
	switch t := v.(type) {
	case int:
		return uint32(t)
	case uint32:
		return t
	case string:
		n, err := dnszone.ParseTTL(t)
		if err == nil {
			return n
		}
	}
	return 0
}
