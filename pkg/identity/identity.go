package identity

import "strings"

// Players show up across provider payloads and manual entry under whatever
// gamertag they used that night. A Table maps normalized gamertags to a
// stable player id so stats accumulate on one row. Lookups are pure; the
// caller loads the table and passes it in.

// Table is an alias table: normalized gamertag -> stable player id, and
// stable player id -> canonical display name.
type Table struct {
	IDByName map[string]string
	NameByID map[string]string
}

// Normalize produces the lookup key for a display name.
func Normalize(displayName string) string {
	return strings.ToLower(strings.TrimSpace(displayName))
}

// Resolve maps a raw display name to a stable player identity. Resolution is
// total: names missing from the table resolve to their own normalized form,
// so two spellings of the same gamertag collapse only through trimming and
// lowercasing unless an alias entry exists.
func Resolve(displayName string, table *Table) string {
	key := Normalize(displayName)
	if table != nil {
		if id, ok := table.IDByName[key]; ok {
			return id
		}
	}
	return key
}

// DisplayName returns the canonical display name for a stable id, or "" when
// the table has no entry.
func (t *Table) DisplayName(id string) string {
	if t == nil {
		return ""
	}
	return t.NameByID[id]
}
