package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankCandidates(t *testing.T) {
	known := []string{"store.Order", "store.OrderItem", "store.Customer", "store.Product"}

	ranked := RankCandidates("store.Ordr", known)
	require.Len(t, ranked, len(known))

	assert.Equal(t, "store.Order", ranked[0].Name)
	assert.Equal(t, "store.OrderItem", ranked[1].Name)

	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}
}

func TestRankCandidates_TieBreaksByName(t *testing.T) {
	ranked := RankCandidates("x", []string{"b", "a"})
	require.Len(t, ranked, 2)
	assert.Equal(t, "a", ranked[0].Name)
	assert.Equal(t, "b", ranked[1].Name)
}

func TestSuggest(t *testing.T) {
	known := []string{"Order", "OrderItem", "Customer", "Product", "Audit"}

	t.Run("close names only", func(t *testing.T) {
		assert.Equal(t, []string{"Customer"}, Suggest("Custmer", known, 3))
	})

	t.Run("limit", func(t *testing.T) {
		got := Suggest("OrderItems", known, 1)
		assert.Equal(t, []string{"OrderItem"}, got)
	})

	t.Run("suffix stripping", func(t *testing.T) {
		assert.Contains(t, Suggest("OrderID", known, 3), "Order")
	})

	t.Run("nothing similar", func(t *testing.T) {
		assert.Empty(t, Suggest("Zzzzzzzz", known, 3))
	})

	t.Run("no known names", func(t *testing.T) {
		assert.Empty(t, Suggest("Order", nil, 3))
	})
}
