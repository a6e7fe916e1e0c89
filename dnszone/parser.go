package dnszone

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dnsscience/dnscore/name"
	"github.com/dnsscience/dnscore/rr"
	"github.com/dnsscience/dnscore/stats"
)

// maxIncludeDepth bounds $INCLUDE nesting so a zone file cannot recurse
// into itself forever.
const maxIncludeDepth = 7

// IncludeResolver loads the text of a zone file named by an $INCLUDE
// directive. Kept as a caller-supplied capability rather than a direct
// filesystem call so this package carries no assumption about where zone
// files live.
type IncludeResolver interface {
	ReadInclude(path string) (string, error)
}

// Parser turns zone-file text into a Zone. It holds the mutable state RFC
// 1035 §5 master files accumulate across lines: the current origin, the
// default TTL, the last owner name (for elided-owner continuation lines),
// and include nesting depth.
type Parser struct {
	zone          *Zone
	origin        string
	class         uint16
	ttl           uint32
	haveTTL       bool
	lastName      string
	resolver      IncludeResolver
	depth         int
	file          string
	strict        bool
	allowIncludes bool
	maxDepth      int
	errs          []error
}

// NewParser returns a parser that will populate a zone rooted at origin.
// defaultTTL is used for any record that doesn't specify one and that
// precedes the file's own $TTL directive, if any. It runs in strict mode
// with includes enabled and the default nesting depth; use ParseWithConfig
// for other tunables.
func NewParser(origin string, defaultTTL uint32, resolver IncludeResolver) *Parser {
	origin = name.Fqdn(origin)
	return &Parser{
		zone:          NewZone(origin),
		origin:        origin,
		class:         rr.ClassINET,
		ttl:           defaultTTL,
		haveTTL:       defaultTTL > 0,
		lastName:      origin,
		resolver:      resolver,
		strict:        true,
		allowIncludes: true,
		maxDepth:      maxIncludeDepth,
	}
}

// Config holds zone parser tunables, mirroring the strictness/include
// knobs a caller needs when parsing zone data it doesn't fully trust.
type Config struct {
	DefaultTTL      uint32
	Strict          bool // abort on the first malformed record; false collects and reports them instead
	AllowIncludes   bool
	MaxIncludeDepth int // 0 uses the package default
}

// DefaultConfig returns the conservative parser configuration: strict
// mode, includes enabled, and the default nesting depth.
func DefaultConfig() Config {
	return Config{DefaultTTL: 3600, Strict: true, AllowIncludes: true, MaxIncludeDepth: maxIncludeDepth}
}

// Parse consumes src (the text of one zone file) and returns the
// populated zone, under DefaultConfig with the given origin and default
// TTL. Call once per top-level file; $INCLUDE is handled internally via
// the resolver supplied to NewParser.
func Parse(src, origin string, defaultTTL uint32, resolver IncludeResolver) (*Zone, error) {
	cfg := DefaultConfig()
	cfg.DefaultTTL = defaultTTL
	return ParseWithConfig(src, origin, cfg, resolver)
}

// ParseWithConfig is Parse with explicit strictness, include, and
// nesting-depth tunables. In non-strict mode a record line whose
// [ttl] [class] type rdata fails to parse, or whose owner lies outside
// the zone, is skipped rather than aborting the parse; the skipped
// records are reported together as a single wrapped error alongside the
// otherwise successfully populated zone. A line holding only an owner
// name, a malformed directive, and a failing record expanded from
// $GENERATE still abort the parse in either mode.
func ParseWithConfig(src, origin string, cfg Config, resolver IncludeResolver) (*Zone, error) {
	p := NewParser(origin, cfg.DefaultTTL, resolver)
	p.strict = cfg.Strict
	p.allowIncludes = cfg.AllowIncludes
	if cfg.MaxIncludeDepth > 0 {
		p.maxDepth = cfg.MaxIncludeDepth
	}

	if err := p.parseText(src, ""); err != nil {
		stats.ObserveZoneParse(0, err)
		return nil, err
	}

	st := p.zone.GetStats()
	if len(p.errs) > 0 {
		err := fmt.Errorf("dnszone: %d record(s) skipped: %w", len(p.errs), errors.Join(p.errs...))
		stats.ObserveZoneParse(st.Records, err)
		return p.zone, err
	}
	stats.ObserveZoneParse(st.Records, nil)
	return p.zone, nil
}

func (p *Parser) errf(tok Token, kind string) error {
	return &ParseError{File: p.file, Line: tok.Line, Col: tok.Col, Kind: kind, Tok: tok.Text}
}

func (p *Parser) parseText(src, file string) error {
	prevFile := p.file
	p.file = file
	defer func() { p.file = prevFile }()

	lx := newLexer(src)
	for {
		line, eof, err := p.readLogicalLine(lx)
		if err != nil {
			return err
		}
		if len(line) > 0 {
			if err := p.parseLine(line, lx); err != nil {
				return err
			}
		}
		if eof {
			return nil
		}
	}
}

// readLogicalLine collects tokens up to (and consuming) the next newline
// or EOF, representing one RFC 1035 logical line once parenthesized
// groups have already been collapsed by the lexer.
func (p *Parser) readLogicalLine(lx *lexer) ([]Token, bool, error) {
	var toks []Token
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, false, err
		}
		switch tok.Kind {
		case TokenEOF:
			return toks, true, nil
		case TokenNewline:
			return toks, false, nil
		default:
			toks = append(toks, tok)
		}
	}
}

func (p *Parser) parseLine(toks []Token, lx *lexer) error {
	switch toks[0].Kind {
	case TokenDirTTL:
		return p.parseDirTTL(toks)
	case TokenDirOrigin:
		return p.parseDirOrigin(toks)
	case TokenDirInclude:
		return p.parseDirInclude(toks)
	case TokenDirGenerate:
		return p.parseDirGenerate(toks)
	}

	owner := p.lastName
	rest := toks
	if toks[0].Kind == TokenBlank {
		rest = toks[1:]
		if len(rest) == 0 {
			return nil
		}
	} else {
		owner = p.expandName(toks[0].Text)
		rest = toks[1:]
	}
	if len(rest) == 0 {
		return p.errf(toks[len(toks)-1], "truncated record")
	}
	p.lastName = owner

	r, err := p.parseRecord(owner, rest, toks[0])
	if err == nil {
		err = p.zone.AddRecord(r)
	}
	if err != nil {
		if p.strict {
			return err
		}
		p.errs = append(p.errs, err)
	}
	return nil
}

// parseRecord consumes the [ttl] [class] type rdata... tail of a record
// line, in the order RFC 1035 allows them to appear.
func (p *Parser) parseRecord(owner string, toks []Token, ownerTok Token) (rr.RR, error) {
	ttl := p.ttl
	class := p.class
	i := 0

	for i < len(toks)-1 {
		text := toks[i].Text
		if v, err := ParseTTL(text); err == nil && isDigitLed(text) {
			ttl = v
			i++
			continue
		}
		if c, ok := rr.StringToClass(text); ok {
			class = c
			i++
			continue
		}
		break
	}
	if i >= len(toks) {
		return nil, p.errf(ownerTok, "missing record type")
	}
	typeTok := toks[i]
	rtype, ok := rr.StringToType(typeTok.Text)
	if !ok {
		return nil, p.errf(typeTok, "unknown record type")
	}
	i++

	rdataToks := make([]string, 0, len(toks)-i)
	for _, t := range toks[i:] {
		rdataToks = append(rdataToks, p.expandRdataToken(rtype, t.Text))
	}

	r, err := rr.ParseRdata(rtype, rdataToks)
	if err != nil {
		return nil, p.errf(typeTok, err.Error())
	}
	*r.Hdr() = rr.Header{Name: owner, Type: rtype, Class: class, TTL: ttl}
	return r, nil
}

// expandRdataToken fully-qualifies bare names inside the rdata of
// name-bearing record types, relative to the current origin.
func (p *Parser) expandRdataToken(rtype uint16, tok string) string {
	switch rtype {
	case rr.TypeNS, rr.TypeCNAME, rr.TypePTR, rr.TypeDNAME, rr.TypeMX, rr.TypeKX, rr.TypeRT, rr.TypeAFSDB, rr.TypeSRV, rr.TypeSOA:
		if tok == "@" || (tok != "" && !strings.HasSuffix(tok, ".") && !isNumeric(tok)) {
			return p.expandName(tok)
		}
	}
	return tok
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isDigitLed(s string) bool {
	return s != "" && (s[0] >= '0' && s[0] <= '9')
}

// expandName resolves "@" and bare (non-FQDN) labels against the current
// $ORIGIN, the way BIND master files do.
func (p *Parser) expandName(tok string) string {
	if tok == "@" {
		return p.origin
	}
	if strings.HasSuffix(tok, ".") {
		return tok
	}
	if tok == "" {
		return p.origin
	}
	return tok + "." + p.origin
}

func (p *Parser) parseDirTTL(toks []Token) error {
	if len(toks) < 2 {
		return p.errf(toks[0], "$TTL missing value")
	}
	v, err := ParseTTL(toks[1].Text)
	if err != nil {
		return p.errf(toks[1], err.Error())
	}
	p.ttl = v
	p.haveTTL = true
	return nil
}

func (p *Parser) parseDirOrigin(toks []Token) error {
	if len(toks) < 2 {
		return p.errf(toks[0], "$ORIGIN missing value")
	}
	p.origin = p.expandName(toks[1].Text)
	return nil
}

func (p *Parser) parseDirInclude(toks []Token) error {
	if len(toks) < 2 {
		return p.errf(toks[0], "$INCLUDE missing path")
	}
	if !p.allowIncludes {
		return p.errf(toks[0], "$INCLUDE disabled by parser configuration")
	}
	if p.resolver == nil {
		return p.errf(toks[0], "$INCLUDE used without an IncludeResolver")
	}
	if p.depth >= p.maxDepth {
		return p.errf(toks[0], "$INCLUDE nested too deeply")
	}
	path := toks[1].Text
	origin := p.origin
	if len(toks) >= 3 {
		origin = p.expandName(toks[2].Text)
	}
	text, err := p.resolver.ReadInclude(path)
	if err != nil {
		return p.errf(toks[1], "cannot read include: "+err.Error())
	}

	savedOrigin, savedLast := p.origin, p.lastName
	p.origin = origin
	p.lastName = origin
	p.depth++
	err = p.parseText(text, path)
	p.depth--
	p.origin, p.lastName = savedOrigin, savedLast
	return err
}

// parseDirGenerate expands a $GENERATE range lhs [ttl] [class] type rhs
// line (RFC unstandardized, originating with BIND) into one record per
// step of the range.
func (p *Parser) parseDirGenerate(toks []Token) error {
	if len(toks) < 3 {
		return p.errf(toks[0], "$GENERATE missing arguments")
	}
	start, stop, step, err := parseGenerateRange(toks[1].Text)
	if err != nil {
		return p.errf(toks[1], err.Error())
	}
	lhs := toks[2].Text
	rest := toks[3:]
	if len(rest) == 0 {
		return p.errf(toks[2], "$GENERATE missing record type")
	}

	for i := start; (step > 0 && i <= stop) || (step < 0 && i >= stop); i += step {
		ownerName, err := expandGeneratePattern(lhs, i)
		if err != nil {
			return p.errf(toks[2], err.Error())
		}
		owner := p.expandName(ownerName)

		expandedRest := make([]Token, len(rest))
		for j, t := range rest {
			text, err := expandGeneratePattern(t.Text, i)
			if err != nil {
				return p.errf(t, err.Error())
			}
			expandedRest[j] = Token{Kind: t.Kind, Text: text, Line: t.Line, Col: t.Col}
		}
		r, err := p.parseRecord(owner, expandedRest, toks[2])
		if err != nil {
			return err
		}
		p.lastName = owner
		if err := p.zone.AddRecord(r); err != nil {
			return err
		}
	}
	return nil
}

func parseGenerateRange(s string) (start, stop, step int64, err error) {
	step = 1
	main := s
	if idx := strings.IndexByte(s, '/'); idx >= 0 {
		main = s[:idx]
		step, err = strconv.ParseInt(s[idx+1:], 10, 64)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("bad $GENERATE step: %w", err)
		}
	}
	parts := strings.SplitN(main, "-", 2)
	if len(parts) != 2 {
		return 0, 0, 0, fmt.Errorf("bad $GENERATE range %q", s)
	}
	start, err = strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("bad $GENERATE range start: %w", err)
	}
	stop, err = strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("bad $GENERATE range stop: %w", err)
	}
	if step == 0 {
		step = 1
	}
	if stop < start && step > 0 {
		step = -step
	}
	return start, stop, step, nil
}

// expandGeneratePattern substitutes $ and ${offset,width,base} markers in
// pattern with values derived from iter, per BIND's $GENERATE syntax.
func expandGeneratePattern(pattern string, iter int64) (string, error) {
	var sb strings.Builder
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c != '$' {
			sb.WriteByte(c)
			continue
		}
		if i+1 < len(pattern) && pattern[i+1] == '$' {
			sb.WriteByte('$')
			i++
			continue
		}
		if i+1 < len(pattern) && pattern[i+1] == '{' {
			end := strings.IndexByte(pattern[i+2:], '}')
			if end < 0 {
				return "", fmt.Errorf("unterminated ${...} in $GENERATE pattern %q", pattern)
			}
			spec := pattern[i+2 : i+2+end]
			s, err := expandGenerateSpec(spec, iter)
			if err != nil {
				return "", err
			}
			sb.WriteString(s)
			i += 2 + end
			continue
		}
		sb.WriteString(strconv.FormatInt(iter, 10))
	}
	return sb.String(), nil
}

func expandGenerateSpec(spec string, iter int64) (string, error) {
	parts := strings.Split(spec, ",")
	offset := int64(0)
	width := 0
	base := "d"
	var err error
	if len(parts) >= 1 && parts[0] != "" {
		offset, err = strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			return "", fmt.Errorf("bad $GENERATE offset in %q", spec)
		}
	}
	if len(parts) >= 2 && parts[1] != "" {
		w, err := strconv.Atoi(parts[1])
		if err != nil {
			return "", fmt.Errorf("bad $GENERATE width in %q", spec)
		}
		width = w
	}
	if len(parts) >= 3 && parts[2] != "" {
		base = parts[2]
	}

	v := iter + offset
	var s string
	switch base {
	case "d", "D":
		s = strconv.FormatInt(v, 10)
	case "o", "O":
		s = strconv.FormatInt(v, 8)
	case "x":
		s = strconv.FormatInt(v, 16)
	case "X":
		s = strings.ToUpper(strconv.FormatInt(v, 16))
	default:
		return "", fmt.Errorf("bad $GENERATE base %q", base)
	}
	for len(s) < width {
		s = "0" + s
	}
	return s, nil
}
