package content

import (
	"strings"
	"testing"

	"github.com/storefront/platform/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	item, err := NewItem("  Summer Sale: Big Deals!  ", "Everything must go.", TypeBanner, nil, []string{"Sale", "sale", " summer ", ""})
	require.NoError(t, err)
	assert.Equal(t, "Summer Sale: Big Deals!", item.Title)
	assert.Equal(t, "summer-sale-big-deals", item.Slug)
	assert.Equal(t, StatusDraft, item.Status)
	assert.Equal(t, []string{"sale", "summer"}, item.Tags)
	assert.Equal(t, "Everything must go.", item.Excerpt)

	_, err = NewItem("", "", TypePage, nil, nil)
	require.Error(t, err)
	assert.True(t, shared.IsKind(err, shared.KindValidation))

	_, err = NewItem("Title", "", Type("video"), nil, nil)
	require.Error(t, err)

	page, err := NewItem("About", "", "", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, TypePage, page.Type)
}

func TestItem_Excerpt(t *testing.T) {
	body := strings.Repeat("word ", 100)
	item, err := NewItem("Long", body, TypePost, nil, nil)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(item.Excerpt, "..."))
	assert.LessOrEqual(t, len([]rune(item.Excerpt)), maxExcerpt+3)
}

func TestItem_Lifecycle(t *testing.T) {
	item, err := NewItem("FAQ", "", TypeFAQ, nil, nil)
	require.NoError(t, err)

	require.NoError(t, item.Publish())
	assert.Equal(t, StatusPublished, item.Status)
	assert.NotNil(t, item.PublishedAt)
	assert.Error(t, item.Publish())

	require.NoError(t, item.Archive())
	assert.Error(t, item.Archive())
	err = item.Publish()
	require.Error(t, err)
	assert.True(t, shared.IsKind(err, shared.KindInvalidState))
}

func TestItem_WithSlugSuffix(t *testing.T) {
	item, err := NewItem("Shipping Policy", "", TypePage, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "shipping-policy", item.WithSlugSuffix(1))
	assert.Equal(t, "shipping-policy-3", item.WithSlugSuffix(3))
}

func TestItem_Attach(t *testing.T) {
	item, err := NewItem("Hero", "", TypeBanner, nil, nil)
	require.NoError(t, err)
	a := item.Attach("content/hero.png", "hero.png", "image/png", 42)
	assert.Equal(t, item.ID, a.ContentID)
	assert.Len(t, item.Assets, 1)
}
