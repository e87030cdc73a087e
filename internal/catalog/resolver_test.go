package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emycrochet/storefront-api/internal/domain"
	"github.com/emycrochet/storefront-api/pkg/errors"
)

func testSnapshot() *Snapshot {
	return NewSnapshot([]*domain.Product{
		{ID: "A", Name: "Fox", Price: decimal.RequireFromString("10.00"), Active: true},
		{ID: "B", Name: "Blanket", Price: decimal.RequireFromString("5.50"), Active: true},
		{ID: "inactive", Name: "Retired", Price: decimal.RequireFromString("9.99"), Active: false},
		{ID: "free", Name: "Zero Priced", Price: decimal.Zero, Active: true},
		{ID: "negative", Name: "Broken Row", Price: decimal.RequireFromString("-1"), Active: true},
	})
}

func TestResolveKnownItem(t *testing.T) {
	p, err := testSnapshot().Resolve("A")
	require.NoError(t, err)
	assert.Equal(t, "Fox", p.Name)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("10.00")))
}

func TestResolveRejectsInvalidEntries(t *testing.T) {
	snap := testSnapshot()

	for _, id := range []string{"missing", "inactive", "free", "negative", ""} {
		t.Run(id, func(t *testing.T) {
			_, err := snap.Resolve(id)
			var unknown *errors.ErrUnknownItem
			require.ErrorAs(t, err, &unknown)
			assert.Equal(t, id, unknown.ID)
		})
	}
}

func TestActiveListing(t *testing.T) {
	active := testSnapshot().Active()

	// Zero-priced entries still appear in the listing; only ordering
	// enforces price positivity.
	ids := make([]string, 0, len(active))
	for _, p := range active {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"A", "B", "free", "negative"}, ids)
}
