package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadKey(t *testing.T) {
	assert.Equal(t, "accounts:1_a@x.com", ReadKey(ScopeAccounts, uint(1), "a@x.com"))
	assert.Equal(t, "accounts:a@x.com_root@x.com", ReadKey(ScopeAccounts, "a@x.com", "root@x.com"))
	assert.Equal(t, "cards:42_a@x.com", ReadKey(ScopeCards, 42, "a@x.com"))
}

func TestReadKey_DistinctPerPrincipal(t *testing.T) {
	owner := ReadKey(ScopeAccounts, uint(1), "a@x.com")
	other := ReadKey(ScopeAccounts, uint(1), "b@x.com")
	assert.NotEqual(t, owner, other)
}

func TestReadKey_Injective(t *testing.T) {
	pairs := []struct {
		lookup    interface{}
		principal string
	}{
		{uint(1), "john_doe@x.com"},
		{"1_john", "doe@x.com"},
		{"1_john_doe@x.com", ""},
		{`1\`, "john_doe@x.com"},
		{`1\_john`, "doe@x.com"},
		{"4111111111111111", "a_b@x.com"},
		{"4111111111111111_a", "b@x.com"},
	}
	seen := map[string]int{}
	for i, p := range pairs {
		key := ReadKey(ScopeAccounts, p.lookup, p.principal)
		if j, dup := seen[key]; dup {
			t.Fatalf("pairs %d and %d share key %q", j, i, key)
		}
		seen[key] = i
	}
	assert.Equal(t, `accounts:1\_john_doe@x.com`, ReadKey(ScopeAccounts, "1_john", "doe@x.com"))
	assert.Equal(t, `accounts:a\\b_c@x.com`, ReadKey(ScopeAccounts, `a\b`, "c@x.com"))
}

func TestEvictionPattern(t *testing.T) {
	tests := []struct {
		name   string
		scope  Scope
		lookup interface{}
		want   string
	}{
		{"account id", ScopeAccounts, uint(1), "accounts:1_*"},
		{"account email", ScopeAccounts, "a@x.com", "accounts:a@x.com_*"},
		{"card id", ScopeCards, uint(9), "cards:9_*"},
		{"glob characters escaped", ScopeAccounts, "a*b?[c]@x.com", `accounts:a\*b\?\[c\]@x.com_*`},
		{"underscore escaped", ScopeAccounts, "john_doe@x.com", `accounts:john\\_doe@x.com_*`},
		{"backslash escaped", ScopeAccounts, `a\b@x.com`, `accounts:a\\\\b@x.com_*`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvictionPattern(tt.scope, tt.lookup))
		})
	}
}

func TestParseKey(t *testing.T) {
	scope, rest, ok := ParseKey("cards:9_a@x.com")
	assert.True(t, ok)
	assert.Equal(t, ScopeCards, scope)
	assert.Equal(t, "9_a@x.com", rest)

	_, _, ok = ParseKey("no-scope")
	assert.False(t, ok)
}
