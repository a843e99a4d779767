package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCatalogLookup(t *testing.T) {
	catalog := BuildCatalog([]Token{
		{Symbol: "ETH", Price: 3000},
		{Symbol: "BTC", Price: 50000},
	})

	price, ok := catalog.Lookup("ETH")
	require.True(t, ok)
	assert.Equal(t, 3000.0, price)

	_, ok = catalog.Lookup("DOGE")
	assert.False(t, ok, "unknown symbol must be absent, not a default price")
}

func TestBuildCatalogDuplicatesLastWriteWins(t *testing.T) {
	catalog := BuildCatalog([]Token{
		{Symbol: "ETH", Price: 3000},
		{Symbol: "BTC", Price: 50000},
		{Symbol: "ETH", Price: 3100},
	})

	assert.Equal(t, 2, catalog.Len())

	price, ok := catalog.Lookup("ETH")
	require.True(t, ok)
	assert.Equal(t, 3100.0, price)

	// Symbol order keeps the first occurrence position.
	assert.Equal(t, []string{"ETH", "BTC"}, catalog.Symbols())
}

func TestNilCatalog(t *testing.T) {
	var catalog *Catalog

	_, ok := catalog.Lookup("ETH")
	assert.False(t, ok)
	assert.Zero(t, catalog.Len())
	assert.Nil(t, catalog.Symbols())
}
