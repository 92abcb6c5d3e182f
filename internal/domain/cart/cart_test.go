package cart_test

import (
	"testing"

	"flowershop/internal/domain/cart"

	"github.com/stretchr/testify/assert"
)

func TestFromLines_MergesDuplicates(t *testing.T) {
	c := cart.FromLines([]cart.Line{
		{ProductID: 1, Quantity: 1},
		{ProductID: 2, Quantity: 3},
		{ProductID: 1, Quantity: 2},
	})

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, int64(3), c.Quantity(1))
	assert.Equal(t, int64(3), c.Quantity(2))
}

func TestLines_SortedByProductID(t *testing.T) {
	c := cart.New().Add(5, 1).Add(2, 1).Add(9, 1)

	lines := c.Lines()
	assert.Equal(t, []cart.Line{
		{ProductID: 2, Quantity: 1},
		{ProductID: 5, Quantity: 1},
		{ProductID: 9, Quantity: 1},
	}, lines)
}

// Addは元のスナップショットを変更しない
func TestAdd_DoesNotMutateOriginal(t *testing.T) {
	base := cart.New().Add(1, 2)
	next := base.Add(1, 3)

	assert.Equal(t, int64(2), base.Quantity(1))
	assert.Equal(t, int64(5), next.Quantity(1))
}

func TestWithQuantity_Replaces(t *testing.T) {
	base := cart.New().Add(1, 2)
	next := base.WithQuantity(1, 7)

	assert.Equal(t, int64(2), base.Quantity(1))
	assert.Equal(t, int64(7), next.Quantity(1))
}

func TestRemove(t *testing.T) {
	base := cart.New().Add(1, 2).Add(2, 1)
	next := base.Remove(1)

	assert.Equal(t, 2, base.Len())
	assert.Equal(t, 1, next.Len())
	assert.Equal(t, int64(0), next.Quantity(1))
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, cart.New().IsEmpty())
	assert.False(t, cart.New().Add(1, 1).IsEmpty())
	assert.True(t, cart.New().Add(1, 1).Remove(1).IsEmpty())
}
