package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuemby/addoncrawl/pkg/access"
	"github.com/cuemby/addoncrawl/pkg/model"
)

func TestGetMissThenHit(t *testing.T) {
	c := New(time.Minute, 10)
	d := access.New("p", "", access.Config{})

	_, ok := c.Get(d)
	assert.False(t, ok)

	label := "x"
	c.Set(d, model.Result{Kind: model.ResultContent, Page: model.Page{Leaf: &model.ListItem{Label: &label}}})

	got, ok := c.Get(d)
	require.True(t, ok)
	require.NotNil(t, got.Page.Leaf.Label)
	assert.Equal(t, "x", *got.Page.Leaf.Label)
}

func TestGetExpiresPastTTL(t *testing.T) {
	c := New(time.Nanosecond, 10)
	d := access.New("p", "", access.Config{})
	c.Set(d, model.Result{Kind: model.ResultContent})

	time.Sleep(time.Millisecond)
	_, ok := c.Get(d)
	assert.False(t, ok)
}

// TestGetReturnsIndependentCopy guards against the scheduler's
// ListItem.Extend mutating a stored entry in place: two hits on the
// same descriptor must never observe each other's in-place edits, the
// way they would if Get handed out the cached Page by reference.
func TestGetReturnsIndependentCopy(t *testing.T) {
	c := New(time.Minute, 10)
	d := access.New("shared", "", access.Config{})

	label := "shared"
	c.Set(d, model.Result{
		Kind: model.ResultContent,
		Page: model.Page{Leaf: &model.ListItem{
			Label:      &label,
			Properties: map[string]string{"IsPlayable": "true"},
		}},
	})

	first, ok := c.Get(d)
	require.True(t, ok)

	// Simulate what the scheduler does on a leaf reached via a parent
	// sub-entry: mutate the hit's leaf in place.
	first.Page.Leaf.Extend(model.ListItem{
		Properties: map[string]string{"extra": "from-first-parent"},
	})
	first.Page.Leaf.Properties["mutated"] = "yes"

	second, ok := c.Get(d)
	require.True(t, ok)

	assert.NotSame(t, first.Page.Leaf, second.Page.Leaf)
	_, hasExtra := second.Page.Leaf.Properties["extra"]
	assert.False(t, hasExtra, "mutation on one hit must not leak into another")
	_, hasMutated := second.Page.Leaf.Properties["mutated"]
	assert.False(t, hasMutated)
}

func TestPoisonedCacheAlwaysMisses(t *testing.T) {
	c := New(time.Minute, 10)
	c.poisoned = true

	d := access.New("p", "", access.Config{})
	c.Set(d, model.Result{Kind: model.ResultContent})
	_, ok := c.Get(d)
	assert.False(t, ok)
}
