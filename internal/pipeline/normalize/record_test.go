package normalize

import (
	"testing"

	"trendscout/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRecord_FieldFallbacks(t *testing.T) {
	tests := []struct {
		name     string
		item     models.RawItem
		validate func(t *testing.T, p models.Product)
	}{
		{
			name: "primary keys win",
			item: models.RawItem{
				"product_name": "Magnetic Phone Mount",
				"title":        "ignored alternate",
				"cover_url":    "https://cdn.example.com/a.jpg",
				"statistics": map[string]interface{}{
					"play_count": float64(10000),
					"digg_count": float64(1500),
				},
				"sold_info": map[string]interface{}{
					"sold_count": float64(320),
				},
			},
			validate: func(t *testing.T, p models.Product) {
				assert.Equal(t, "Magnetic Phone Mount", p.Title)
				assert.Equal(t, "https://cdn.example.com/a.jpg", p.Image)
				assert.Equal(t, 10000, p.Views)
				assert.Equal(t, 1500, p.Likes)
				assert.Equal(t, 320, p.Sold)
				assert.InDelta(t, 15.0, p.Engagement, 0.001)
			},
		},
		{
			name: "alternate keys used when primaries absent",
			item: models.RawItem{
				"title": "LED Strip Lights",
				"image": "https://cdn.example.com/b.jpg",
				"rate_info": map[string]interface{}{
					"view_count": float64(900),
					"like_count": float64(30),
				},
				"sales": float64(12),
			},
			validate: func(t *testing.T, p models.Product) {
				assert.Equal(t, "LED Strip Lights", p.Title)
				assert.Equal(t, "https://cdn.example.com/b.jpg", p.Image)
				assert.Equal(t, 900, p.Views)
				assert.Equal(t, 30, p.Likes)
				assert.Equal(t, 12, p.Sold)
				assert.InDelta(t, 3.33, p.Engagement, 0.001)
			},
		},
		{
			name: "missing everything gets safe defaults",
			item: models.RawItem{},
			validate: func(t *testing.T, p models.Product) {
				assert.Equal(t, "No title", p.Title)
				assert.Empty(t, p.Image)
				assert.Zero(t, p.Views)
				assert.Zero(t, p.Likes)
				assert.Zero(t, p.Sold)
				assert.Zero(t, p.Price)
				assert.Zero(t, p.Engagement)
			},
		},
		{
			name: "zero views never divides",
			item: models.RawItem{
				"product_name": "Collapsible Water Bottle",
				"statistics": map[string]interface{}{
					"digg_count": float64(500),
				},
			},
			validate: func(t *testing.T, p models.Product) {
				assert.Equal(t, 500, p.Likes)
				assert.Zero(t, p.Engagement)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NormalizeRecord(tt.item, "phone accessories")
			require.NotEmpty(t, p.ID)
			assert.Equal(t, "phone accessories", p.Category)
			tt.validate(t, p)
		})
	}
}

func TestNormalizeRecord_RetainsRawAndMintsDistinctIDs(t *testing.T) {
	item := models.RawItem{"product_name": "Pet Hair Remover", "seller_note": "keep me"}

	a := NormalizeRecord(item, "pet supplies")
	b := NormalizeRecord(item, "pet supplies")

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "keep me", a.RawData["seller_note"])
}

func TestNormalizeRecord_EngagementRounding(t *testing.T) {
	item := models.RawItem{
		"product_name": "Car Trunk Organizer",
		"statistics": map[string]interface{}{
			"play_count": float64(3),
			"digg_count": float64(1),
		},
	}

	p := NormalizeRecord(item, "car accessories")
	assert.InDelta(t, 33.33, p.Engagement, 0.0001)
}
