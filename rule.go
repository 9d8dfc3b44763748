package faleproxy

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultRule replaces Yale with Fale.
var DefaultRule = Rule{Term: "Yale", Replacement: "Fale"}

// Rule describes a case-preserving term substitution.
//
// The term is matched in exactly three casings: all uppercase, capitalized
// and all lowercase. Each match is replaced by the replacement in the same
// casing. Other casings (e.g. "yAlE") are not matched, and matches are not
// restricted to word boundaries.
type Rule struct {
	Term        string `json:"term"`
	Replacement string `json:"replacement"`
}

// Variant is a single pattern and its replacement.
type Variant struct {
	Pattern     string
	Replacement string
}

// Validate returns an error if the rule cannot be applied idempotently.
//
// A second pass finds a new occurrence only if that occurrence overlaps a
// replaced span, so every casing of the replacement is checked against
// every casing of the term for containment and for edge overlaps.
func (r Rule) Validate() error {
	if r.Term == "" {
		return Errorf(EINVALID, "rule term required")
	}
	if r.Replacement == "" {
		return Errorf(EINVALID, "rule replacement required")
	}

	for _, repl := range caseForms(r.Replacement) {
		for _, term := range caseForms(r.Term) {
			if strings.Contains(repl, term) {
				return Errorf(EINVALID, "replacement %q contains term %q", repl, term)
			}
			if overlaps(repl, term) {
				return Errorf(EINVALID, "replacement %q can form term %q with adjacent text", repl, term)
			}
		}
	}
	return nil
}

// overlaps reports whether term contains repl, or whether a proper suffix or
// prefix of repl is also a prefix or suffix of term.
func overlaps(repl, term string) bool {
	if strings.Contains(term, repl) {
		return true
	}
	for i := 1; i < len(repl); i++ {
		if strings.HasPrefix(term, repl[i:]) || strings.HasSuffix(term, repl[:i]) {
			return true
		}
	}
	return false
}

// Variants returns the pattern/replacement pairs in the order uppercase,
// capitalized, lowercase. Patterns that collapse to the same string (terms
// without cased letters) are returned once.
func (r Rule) Variants() []Variant {
	if r.Term == "" {
		return nil
	}

	terms := caseForms(r.Term)
	repls := caseForms(r.Replacement)

	variants := make([]Variant, 0, len(terms))
	seen := make(map[string]bool, len(terms))
	for i, term := range terms {
		if seen[term] {
			continue
		}
		seen[term] = true
		variants = append(variants, Variant{Pattern: term, Replacement: repls[i]})
	}
	return variants
}

// Replacer compiles the rule into a strings.Replacer.
// The returned Replacer is safe for concurrent use.
func (r Rule) Replacer() *strings.Replacer {
	variants := r.Variants()
	oldnew := make([]string, 0, 2*len(variants))
	for _, v := range variants {
		oldnew = append(oldnew, v.Pattern, v.Replacement)
	}
	return strings.NewReplacer(oldnew...)
}

// Apply returns s with every variant of the term replaced.
// Substrings that do not match are returned byte-identical.
func (r Rule) Apply(s string) string {
	return r.Replacer().Replace(s)
}

// caseForms returns s in uppercase, capitalized and lowercase forms.
func caseForms(s string) [3]string {
	upper := cases.Upper(language.Und).String(s)
	lower := cases.Lower(language.Und).String(s)
	return [3]string{upper, capitalize(s), lower}
}

// capitalize uppercases the first rune of s and lowercases the rest.
func capitalize(s string) string {
	if s == "" {
		return ""
	}
	_, size := utf8.DecodeRuneInString(s)
	return cases.Upper(language.Und).String(s[:size]) + cases.Lower(language.Und).String(s[size:])
}
