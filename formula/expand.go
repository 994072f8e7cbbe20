// SPDX-License-Identifier: MIT

package formula

import (
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Expand turns "response ~ rhs" into an explicit term list.
//
// Grammar (recursive descent, lowest precedence first):
//
//	sum     := ["-"] product (("+" | "-") product)*
//	product := inter ("*" inter)*
//	inter   := atom (":" atom)*
//	atom    := IDENT | "0" | "1" | "(" sum ")"
//
// Semantics:
//   - A*B ⇒ A ∪ B ∪ A:B; A:B ⇒ {t ∪ u | t∈A, u∈B}; "+" is union; "-" removes.
//   - "0" or "-1" drops the intercept, "1" states it explicitly (default on).
//   - Terms are deduplicated by predictor set (a:b == b:a, first spelling wins)
//     and stably ordered by degree.
//   - Predictors are listed in order of first appearance in the text.
//
// Errors: ErrFormula for a missing/duplicated "~", an empty side, unknown
// characters, unbalanced parentheses and constants inside "*" or ":".
//
// Complexity: O(n + T²·P) for n input bytes, T terms of at most P predictors.
func Expand(text string) (*Expansion, error) {
	// Stage 1 (Validate): exactly one "~" with non-empty sides.
	idx := strings.Index(text, "~")
	if idx < 0 {
		return nil, formulaErrorf(text, "missing '~'")
	}
	if strings.Count(text, "~") > 1 {
		return nil, formulaErrorf(text, "more than one '~'")
	}
	response := strings.TrimSpace(text[:idx])
	if response == "" {
		return nil, formulaErrorf(text, "missing response")
	}
	rhs := text[idx+1:]
	if strings.TrimSpace(rhs) == "" {
		return nil, formulaErrorf(text, "empty right-hand side")
	}

	// Stage 2 (Tokenize + parse).
	toks, err := lex(text, rhs)
	if err != nil {
		return nil, err
	}
	p := &parser{text: text, toks: toks}
	e, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, formulaErrorf(text, "unexpected %q at offset %d", t.text, t.pos)
	}

	// Stage 3 (Finalize): order by degree, collect predictors.
	terms := e.terms
	sort.SliceStable(terms, func(i, j int) bool { return len(terms[i]) < len(terms[j]) })

	used := make(map[string]bool)
	for _, t := range terms {
		for _, name := range t {
			used[name] = true
		}
	}
	predictors := make([]string, 0, len(used))
	for _, name := range p.seen {
		if used[name] && !contains(predictors, name) {
			predictors = append(predictors, name)
		}
	}

	return &Expansion{
		Response:   response,
		Predictors: predictors,
		Terms:      terms,
		Intercept:  !e.zero,
	}, nil
}

type tokKind int

const (
	tokEOF tokKind = iota
	tokIdent
	tokNumber
	tokOp
)

type token struct {
	kind tokKind
	text string
	pos  int
}

// lex splits the right-hand side into tokens, skipping whitespace.
func lex(text, s string) ([]token, error) {
	var toks []token
	rs := []rune(s)
	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case strings.ContainsRune("+-*:()", r):
			toks = append(toks, token{kind: tokOp, text: string(r), pos: i})
			i++
		case unicode.IsDigit(r):
			j := i
			for j < len(rs) && (unicode.IsDigit(rs[j]) || rs[j] == '.') {
				j++
			}
			toks = append(toks, token{kind: tokNumber, text: string(rs[i:j]), pos: i})
			i = j
		case isIdentStart(r):
			j := i
			for j < len(rs) && isIdentPart(rs[j]) {
				j++
			}
			toks = append(toks, token{kind: tokIdent, text: string(rs[i:j]), pos: i})
			i = j
		default:
			return nil, formulaErrorf(text, "unexpected character %q", r)
		}
	}
	return append(toks, token{kind: tokEOF, pos: len(rs)}), nil
}

func isIdentStart(r rune) bool { return unicode.IsLetter(r) || r == '_' || r == '.' }

func isIdentPart(r rune) bool { return isIdentStart(r) || unicode.IsDigit(r) }

// expr is an intermediate term set. one/zero record explicit intercept terms.
type expr struct {
	terms []Term
	one   bool
	zero  bool
}

func (e expr) constant() bool { return e.one || e.zero }

type parser struct {
	text string
	toks []token
	pos  int
	seen []string // identifiers in order of appearance
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) acceptOp(op string) bool {
	if t := p.peek(); t.kind == tokOp && t.text == op {
		p.pos++
		return true
	}
	return false
}

func (p *parser) parseSum() (expr, error) {
	var out expr
	negate := p.acceptOp("-")
	for {
		e, err := p.parseProduct()
		if err != nil {
			return expr{}, err
		}
		if negate {
			out.terms = removeTerms(out.terms, e.terms)
			if e.one {
				out.zero = true
			}
		} else {
			out.terms = unionTerms(out.terms, e.terms)
			out.one = out.one || e.one
			out.zero = out.zero || e.zero
		}

		switch {
		case p.acceptOp("+"):
			negate = false
		case p.acceptOp("-"):
			negate = true
		default:
			return out, nil
		}
	}
}

func (p *parser) parseProduct() (expr, error) {
	left, err := p.parseInteraction()
	if err != nil {
		return expr{}, err
	}
	for p.acceptOp("*") {
		right, err := p.parseInteraction()
		if err != nil {
			return expr{}, err
		}
		if left.constant() || right.constant() {
			return expr{}, formulaErrorf(p.text, "constants cannot be crossed with '*'")
		}
		crossed := crossTerms(left.terms, right.terms)
		left.terms = unionTerms(unionTerms(left.terms, right.terms), crossed)
	}
	return left, nil
}

func (p *parser) parseInteraction() (expr, error) {
	left, err := p.parseAtom()
	if err != nil {
		return expr{}, err
	}
	for p.acceptOp(":") {
		right, err := p.parseAtom()
		if err != nil {
			return expr{}, err
		}
		if left.constant() || right.constant() {
			return expr{}, formulaErrorf(p.text, "constants cannot take part in ':' interactions")
		}
		left.terms = crossTerms(left.terms, right.terms)
	}
	return left, nil
}

func (p *parser) parseAtom() (expr, error) {
	t := p.next()
	switch t.kind {
	case tokIdent:
		p.seen = append(p.seen, t.text)
		return expr{terms: []Term{{t.text}}}, nil
	case tokNumber:
		v, err := strconv.ParseFloat(t.text, 64)
		if err != nil || (v != 0 && v != 1) {
			return expr{}, formulaErrorf(p.text, "only 0 and 1 are valid constants, got %q", t.text)
		}
		if v == 1 {
			return expr{one: true}, nil
		}
		return expr{zero: true}, nil
	case tokOp:
		if t.text == "(" {
			e, err := p.parseSum()
			if err != nil {
				return expr{}, err
			}
			if !p.acceptOp(")") {
				return expr{}, formulaErrorf(p.text, "missing ')'")
			}
			return e, nil
		}
		return expr{}, formulaErrorf(p.text, "unexpected %q at offset %d", t.text, t.pos)
	default:
		return expr{}, formulaErrorf(p.text, "unexpected end of formula")
	}
}

// unionTerms appends the terms of b not already in a.
func unionTerms(a, b []Term) []Term {
	out := append([]Term(nil), a...)
	keys := make(map[string]bool, len(a)+len(b))
	for _, t := range a {
		keys[t.key()] = true
	}
	for _, t := range b {
		if k := t.key(); !keys[k] {
			keys[k] = true
			out = append(out, t)
		}
	}
	return out
}

// removeTerms drops every term of a that is also in b.
func removeTerms(a, b []Term) []Term {
	drop := make(map[string]bool, len(b))
	for _, t := range b {
		drop[t.key()] = true
	}
	out := make([]Term, 0, len(a))
	for _, t := range a {
		if !drop[t.key()] {
			out = append(out, t)
		}
	}
	return out
}

// crossTerms builds {t ∪ u | t∈a, u∈b}, a's predictors first.
func crossTerms(a, b []Term) []Term {
	var out []Term
	for _, t := range a {
		for _, u := range b {
			merged := append(Term(nil), t...)
			for _, name := range u {
				if !contains(merged, name) {
					merged = append(merged, name)
				}
			}
			out = unionTerms(out, []Term{merged})
		}
	}
	return out
}
