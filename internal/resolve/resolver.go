// Package resolve canonicalizes free-text team and player names into
// stable join keys so signals from providers that spell the same club
// differently can be merged safely.
package resolve

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Resolve derives the canonical join key for a display name: Unicode
// decomposition with combining marks stripped, lowercased, all
// non-alphanumerics removed, then mapped through the alias table so
// sponsor-prefixed and historical spellings collapse to one key.
// Deterministic and order-independent, so two providers' spellings of the
// same club always yield the same key.
func Resolve(rawName string) string {
	key := normalize(rawName)
	if canonical, ok := lookupAlias(key); ok {
		return canonical
	}
	return key
}

// normalize folds a name to its bare alphanumeric form without alias
// mapping.
func normalize(rawName string) string {
	folded := fold(rawName)
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// fold strips diacritics and lowercases without touching separators.
func fold(s string) string {
	folded, _, err := transform.String(deaccent, s)
	if err != nil {
		// Transform only fails on malformed UTF-8; fold what we can.
		folded = s
	}
	return strings.ToLower(folded)
}

// genericTokens are football words shared by unrelated clubs. A match
// built on one of these alone would pair every "United" with every other
// "United", so they can never serve as the distinguishing token.
var genericTokens = map[string]bool{
	"united": true, "city": true, "town": true, "county": true,
	"real": true, "atletico": true, "athletic": true, "sporting": true,
	"deportivo": true, "racing": true, "dynamo": true, "dinamo": true,
	"lokomotiv": true, "union": true, "wanderers": true, "rovers": true,
	"club": true, "football": true,
}

// Match finds the best candidate for rawName; a miss returns ok=false and
// is never an error, callers treat it as "signal unavailable".
//
// Priority, first hit wins:
//
//  1. exact key equality
//  2. alias table lookup (aliases themselves normalized)
//  3. longest-overlap substring containment, shorter > 50% of longer
//  4. significant-word intersection on a non-generic token of length >= 4
//
// It returns the matched candidate's original spelling.
func Match(rawName string, candidates []string) (string, bool) {
	key := normalize(rawName)
	if key == "" {
		return "", false
	}

	for _, c := range candidates {
		if normalize(c) == key {
			return c, true
		}
	}

	// Alias-mapped comparison catches sponsor prefixes and historical
	// names on either side of the lookup.
	aliased := Resolve(rawName)
	for _, c := range candidates {
		if Resolve(c) == aliased {
			return c, true
		}
	}

	if c, ok := matchByContainment(key, candidates); ok {
		return c, true
	}

	return matchBySignificantWords(rawName, candidates)
}

// matchByContainment accepts a candidate when one normalized name
// contains the other and the shorter exceeds half the longer's length.
// The length guard rejects accidental substrings ("chester" inside
// "manchester"); among qualifying candidates the longest overlap wins,
// which disambiguates "Inter" against both "Inter Milan" and
// "Internazionale".
func matchByContainment(key string, candidates []string) (string, bool) {
	best := ""
	bestOverlap := 0
	for _, c := range candidates {
		ck := Resolve(c)
		if ck == "" {
			continue
		}
		shorter, longer := key, ck
		if len(shorter) > len(longer) {
			shorter, longer = longer, shorter
		}
		if !strings.Contains(longer, shorter) {
			continue
		}
		if len(shorter)*2 <= len(longer) {
			continue
		}
		if len(shorter) > bestOverlap {
			bestOverlap = len(shorter)
			best = c
		}
	}
	return best, best != ""
}

// matchBySignificantWords tokenizes both names, drops short and generic
// tokens, and requires at least one remaining token of length >= 4 to
// match exactly. Names whose generic suffixes conflict are rejected
// outright: "Manchester United" and "Manchester City" share the
// significant token "manchester", but "united" and "city" mark them as
// distinct clubs, so neither may resolve to the other.
func matchBySignificantWords(rawName string, candidates []string) (string, bool) {
	words := significantWords(rawName)
	generics := genericWords(rawName)
	if len(words) == 0 {
		return "", false
	}

	best := ""
	bestCount := 0
	tied := false
	for _, c := range candidates {
		if conflictingGenerics(generics, genericWords(c)) {
			continue
		}
		cwords := significantWords(c)
		count := 0
		for w := range words {
			if cwords[w] {
				count++
			}
		}
		switch {
		case count > bestCount:
			best, bestCount, tied = c, count, false
		case count == bestCount && count > 0:
			tied = true
		}
	}
	if bestCount == 0 || tied {
		return "", false
	}
	return best, true
}

// conflictingGenerics reports whether both names carry generic tokens yet
// share none of them, i.e. the names are distinguished only by words too
// generic to match on.
func conflictingGenerics(a, b map[string]bool) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	for w := range a {
		if b[w] {
			return false
		}
	}
	return true
}

func tokenize(name string) []string {
	return strings.FieldsFunc(fold(name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func significantWords(name string) map[string]bool {
	words := map[string]bool{}
	for _, tok := range tokenize(name) {
		if len(tok) < 4 || genericTokens[tok] {
			continue
		}
		words[tok] = true
	}
	return words
}

func genericWords(name string) map[string]bool {
	words := map[string]bool{}
	for _, tok := range tokenize(name) {
		if genericTokens[tok] {
			words[tok] = true
		}
	}
	return words
}
