package cache

import "strconv"

// Kind names the aggregate a mutation was applied to.
type Kind int

const (
	KindAccount Kind = iota
	KindCard
)

func (k Kind) String() string {
	switch k {
	case KindAccount:
		return "account"
	case KindCard:
		return "card"
	default:
		return "unknown"
	}
}

// Mutation lists every lookup key under which the aggregates touched by a
// write can have been read. Include previous values of alternate keys
// (an old email, an old card number) alongside the current ones.
type Mutation struct {
	Kind          Kind
	AccountID     uint
	AccountEmails []string
	CardIDs       []uint
	CardNumbers   []string
}

type target struct {
	scope Scope
	keys  func(Mutation) []string
}

var (
	accountTarget = target{scope: ScopeAccounts, keys: accountLookupKeys}
	cardTarget    = target{scope: ScopeCards, keys: cardLookupKeys}
)

// fanOut maps the mutated kind to the scopes whose cached views it
// invalidates, the kind itself first. Account views embed their cards and
// card views embed the owner's name through the holder, so each kind fans
// out to the other.
var fanOut = map[Kind][]target{
	KindAccount: {accountTarget, cardTarget},
	KindCard:    {cardTarget, accountTarget},
}

// Patterns returns the de-duplicated eviction patterns for m.
func Patterns(m Mutation) []string {
	var patterns []string
	seen := make(map[string]struct{})
	for _, t := range fanOut[m.Kind] {
		for _, key := range t.keys(m) {
			p := EvictionPattern(t.scope, key)
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			patterns = append(patterns, p)
		}
	}
	return patterns
}

func accountLookupKeys(m Mutation) []string {
	var keys []string
	if m.AccountID != 0 {
		keys = append(keys, strconv.FormatUint(uint64(m.AccountID), 10))
	}
	for _, email := range m.AccountEmails {
		if email != "" {
			keys = append(keys, email)
		}
	}
	return keys
}

func cardLookupKeys(m Mutation) []string {
	var keys []string
	for _, id := range m.CardIDs {
		if id != 0 {
			keys = append(keys, strconv.FormatUint(uint64(id), 10))
		}
	}
	for _, number := range m.CardNumbers {
		if number != "" {
			keys = append(keys, number)
		}
	}
	return keys
}
