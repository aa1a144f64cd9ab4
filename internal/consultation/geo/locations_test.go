package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testResolver() *LocationResolver {
	return NewLocationResolver([]LocalityEntry{
		{Phrase: "Cambridge", PostalCode: "02139"},
		{Phrase: "Cambridge, MA", PostalCode: "02138"},
		{Phrase: "Boston", PostalCode: "02108"},
	})
}

func TestLocationResolver_BareZIPPassesThrough(t *testing.T) {
	r := testResolver()
	zip, ok := r.Resolve("02139")
	assert.True(t, ok)
	assert.Equal(t, "02139", zip)
}

func TestLocationResolver_LongestMatchWins(t *testing.T) {
	r := testResolver()
	zip, ok := r.Resolve("somewhere near Cambridge, MA please")
	assert.True(t, ok)
	assert.Equal(t, "02138", zip)
}

func TestLocationResolver_CaseAndWhitespaceInsensitive(t *testing.T) {
	r := testResolver()
	zip, ok := r.Resolve("  near   BOSTON   ")
	assert.True(t, ok)
	assert.Equal(t, "02108", zip)
}

func TestLocationResolver_NoMatch(t *testing.T) {
	r := testResolver()
	_, ok := r.Resolve("Anchorage")
	assert.False(t, ok)
}

func TestLocationResolver_EmptyInput(t *testing.T) {
	r := testResolver()
	_, ok := r.Resolve("   ")
	assert.False(t, ok)
}
