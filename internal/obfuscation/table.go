package obfuscation

import "fmt"

// Category separates the placeholder vocabularies sharing one table.
type Category string

const (
	CategoryHost Category = "host"
	CategoryIPv4 Category = "ipv4"
)

type tableKey struct {
	category Category
	value    string
}

// ReplacementTable maps each sensitive value seen during a run to a stable
// placeholder. Entries are never removed. A single counter is shared by all
// categories, so the Nth distinct value resolved receives number N.
//
// The table is not safe for concurrent use; a run processes files one at a
// time.
type ReplacementTable struct {
	entries map[tableKey]string
}

// NewReplacementTable returns an empty table.
func NewReplacementTable() *ReplacementTable {
	return &ReplacementTable{entries: make(map[tableKey]string)}
}

// Resolve returns the placeholder for original, generating one from the
// category's vocabulary on first sight.
func (t *ReplacementTable) Resolve(category Category, original string) string {
	key := tableKey{category: category, value: original}
	if placeholder, ok := t.entries[key]; ok {
		return placeholder
	}
	placeholder := generatePlaceholder(category, len(t.entries)+1)
	t.entries[key] = placeholder
	return placeholder
}

// Len returns the number of distinct values resolved so far.
func (t *ReplacementTable) Len() int {
	return len(t.entries)
}

func generatePlaceholder(category Category, n int) string {
	switch category {
	case CategoryIPv4:
		// 192.0.2.0/24 is reserved for documentation (RFC 5737).
		return fmt.Sprintf("192.0.2.%d", n)
	default:
		return fmt.Sprintf("generic-domain-%d.com", n)
	}
}
