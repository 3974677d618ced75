package cache

import (
	"fmt"
	"strings"
)

// Scope separates the key space of each aggregate kind.
type Scope string

const (
	ScopeAccounts Scope = "accounts"
	ScopeCards    Scope = "cards"
)

const (
	scopeSeparator     = ":"
	principalSeparator = "_"
	wildcard           = "*"
)

// ReadKey builds the principal-scoped key of a cached read:
// "<scope>:<lookupKey>_<principalID>".
//
// lookupKey is whatever the read was keyed on (numeric id, email, card
// number), so reads of one aggregate by id and by email live under two
// independent keys. Underscores and backslashes inside lookupKey are
// backslash-escaped, so the first unescaped "_" always ends the lookup key
// and no two (lookupKey, principalID) pairs share a key.
func ReadKey(scope Scope, lookupKey interface{}, principalID string) string {
	return string(scope) + scopeSeparator + escapeLookup(fmt.Sprint(lookupKey)) + principalSeparator + principalID
}

// EvictionPattern matches every principal-scoped key of lookupKey:
// "<scope>:<lookupKey>_*". Glob metacharacters inside the escaped lookupKey
// are escaped again so an email like "a*b@x.com" cannot widen the match to
// unrelated keys.
func EvictionPattern(scope Scope, lookupKey interface{}) string {
	return string(scope) + scopeSeparator + EscapeGlob(escapeLookup(fmt.Sprint(lookupKey))) + principalSeparator + wildcard
}

func escapeLookup(s string) string {
	if !strings.ContainsAny(s, `_\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		if r == '_' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// EscapeGlob backslash-escapes the characters that Redis MATCH patterns treat specially.
func EscapeGlob(s string) string {
	if !strings.ContainsAny(s, `*?[]\^`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\', '^':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ParseKey splits a read key into its scope and remainder.
func ParseKey(key string) (Scope, string, bool) {
	scope, rest, ok := strings.Cut(key, scopeSeparator)
	if !ok || scope == "" {
		return "", "", false
	}
	return Scope(scope), rest, true
}
