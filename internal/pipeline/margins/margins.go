// Package margins implements the fixed-formula dropshipping cost model
// and the static sourcing catalog.
package margins

import (
	"fmt"
	"math"
	"net/url"

	"trendscout/internal/models"
)

// Cost model ratios against the selling price.
const (
	supplierRate = 0.30
	adRate       = 0.25
	platformRate = 0.15
	shippingFlat = 5.00
)

// Calculate derives the full cost/profit breakdown from a selling price.
// Monetary fields are rounded to 2 decimals, the margin percentage to 1.
// Negative profit is a valid (if unprofitable) result.
func Calculate(price float64) models.MarginBreakdown {
	supplier := price * supplierRate
	ads := price * adRate
	fees := price * platformRate
	total := supplier + shippingFlat + ads + fees
	profit := price - total

	margin := 0.0
	if price > 0 {
		margin = profit / price * 100
	}

	return models.MarginBreakdown{
		SellingPrice:  round2(price),
		SupplierPrice: round2(supplier),
		ShippingCost:  round2(shippingFlat),
		AdCost:        round2(ads),
		PlatformFees:  round2(fees),
		TotalCost:     round2(total),
		Profit:        round2(profit),
		ProfitMargin:  round1(margin),
	}
}

// SourcingOptions returns the fixed 3-entry supplier catalog with a
// generated search URL per platform.
func SourcingOptions(title string) []models.SourcingOption {
	q := url.QueryEscape(title)
	return []models.SourcingOption{
		{
			Platform:     "AliExpress",
			SearchURL:    fmt.Sprintf("https://www.aliexpress.com/wholesale?SearchText=%s", q),
			AvgPriceTier: "$",
			ShippingTime: "15-30 days",
			Reliability:  "Medium",
		},
		{
			Platform:     "CJ Dropshipping",
			SearchURL:    fmt.Sprintf("https://cjdropshipping.com/search?q=%s", q),
			AvgPriceTier: "$$",
			ShippingTime: "7-15 days",
			Reliability:  "High",
		},
		{
			Platform:     "Spocket",
			SearchURL:    fmt.Sprintf("https://www.spocket.co/search?query=%s", q),
			AvgPriceTier: "$$$",
			ShippingTime: "3-7 days",
			Reliability:  "High",
		},
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
