package normalize

import (
	"math"

	"trendscout/internal/models"

	"github.com/google/uuid"
)

const fallbackTitle = "No title"

// NormalizeRecord maps one raw upstream item into a canonical Product.
// Every field prefers a primary key and falls back to alternates; missing
// fields default rather than fail. The minted ID is the stable key used
// to correlate AI assessments with their products.
func NormalizeRecord(item models.RawItem, category string) models.Product {
	p := models.Product{
		ID:       uuid.NewString(),
		Category: category,
		RawData:  item,
	}

	p.Title = firstString(item, "product_name", "title")
	if p.Title == "" {
		p.Title = fallbackTitle
	}
	p.Image = firstString(item, "cover_url", "image")

	p.Views = firstInt(item,
		[]string{"statistics", "play_count"},
		[]string{"rate_info", "view_count"},
	)
	p.Likes = firstInt(item,
		[]string{"statistics", "digg_count"},
		[]string{"rate_info", "like_count"},
	)
	p.Sold = firstInt(item,
		[]string{"sold_info", "sold_count"},
		[]string{"sold_info", "sales"},
		[]string{"sold_count"},
		[]string{"sales"},
	)

	p.Price = NormalizePrice(item)
	p.Engagement = engagementRate(p.Likes, p.Views)

	return p
}

// engagementRate is likes/views as a percentage, 2 decimals, 0 when there
// are no views.
func engagementRate(likes, views int) float64 {
	if views <= 0 {
		return 0
	}
	rate := float64(likes) / float64(views) * 100
	return math.Round(rate*100) / 100
}
