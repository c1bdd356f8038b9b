package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveWithoutTable(t *testing.T) {
	assert.Equal(t, "ace", Resolve("Ace", nil))
	assert.Equal(t, "ace", Resolve("  ace  ", nil))
	assert.Equal(t, Resolve("ACE", nil), Resolve("ace", nil), "case variants should share an identity")
}

func TestResolveWithTable(t *testing.T) {
	table := &Table{
		IDByName: map[string]string{
			"ace":       "player-001",
			"ace_alt":   "player-001",
			"netminder": "player-002",
		},
		NameByID: map[string]string{
			"player-001": "Ace",
			"player-002": "NetMinder",
		},
	}

	assert.Equal(t, "player-001", Resolve("Ace", table))
	assert.Equal(t, "player-001", Resolve("ACE_ALT", table), "aliases should resolve to the same id")
	assert.Equal(t, "player-002", Resolve(" NetMinder ", table))
	assert.Equal(t, "unknown", Resolve("Unknown", table), "unknown names fall back to themselves")
}

func TestDisplayName(t *testing.T) {
	table := &Table{NameByID: map[string]string{"player-001": "Ace"}}

	assert.Equal(t, "Ace", table.DisplayName("player-001"))
	assert.Equal(t, "", table.DisplayName("player-404"))

	var nilTable *Table
	assert.Equal(t, "", nilTable.DisplayName("player-001"))
}
