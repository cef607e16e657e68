package models

import "time"

// RawItem is one record from the upstream trend API. Its shape varies by
// endpoint and provider version, so it is never assumed to have fixed keys.
type RawItem map[string]interface{}

// Trend labels the demand trajectory of a product.
type Trend string

const (
	TrendRising    Trend = "Rising"
	TrendStable    Trend = "Stable"
	TrendDeclining Trend = "Declining"
	TrendUnknown   Trend = "Unknown"
)

// Competition labels how crowded a product's market looks.
type Competition string

const (
	CompetitionLow    Competition = "Low"
	CompetitionMedium Competition = "Medium"
	CompetitionHigh   Competition = "High"
)

// Product is the canonical normalized record produced from one RawItem.
// ID is minted at normalization time and is the stable key used to merge
// AI assessments back onto their products.
type Product struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Image      string  `json:"image"`
	Views      int     `json:"views"`
	Likes      int     `json:"likes"`
	Sold       int     `json:"sold"`
	Price      float64 `json:"price"` // USD
	Engagement float64 `json:"engagement"`
	Category   string  `json:"category"`

	// RawData keeps the original upstream record for traceability. It is
	// never read by the scoring logic.
	RawData RawItem `json:"-"`
}

// Popularity is the additive views+likes+sold ranking proxy. It mixes
// incompatible units on purpose; it is a cheap ordering, not a metric.
func (p Product) Popularity() int {
	return p.Views + p.Likes + p.Sold
}

// MarginBreakdown is the fixed-formula dropshipping cost model for one
// selling price. It has no lifecycle of its own and is recomputed on demand.
type MarginBreakdown struct {
	SellingPrice  float64 `json:"sellingPrice"`
	SupplierPrice float64 `json:"supplierPrice"`
	ShippingCost  float64 `json:"shippingCost"`
	AdCost        float64 `json:"adCost"`
	PlatformFees  float64 `json:"platformFees"`
	TotalCost     float64 `json:"totalCost"`
	Profit        float64 `json:"profit"`
	ProfitMargin  float64 `json:"profitMargin"` // percent, 1 decimal
}

// SourcingOption is one supplier/channel suggestion for a product.
type SourcingOption struct {
	Platform     string `json:"platform"`
	SearchURL    string `json:"searchUrl"`
	AvgPriceTier string `json:"avgPriceTier"`
	ShippingTime string `json:"shippingTime"`
	Reliability  string `json:"reliability"`
}

// ScoredProduct is a Product annotated by the scoring engine.
type ScoredProduct struct {
	Product

	AIScore        int              `json:"aiScore"` // 0-100
	Trend          Trend            `json:"trend"`
	Competition    Competition      `json:"competition"`
	Recommendation string           `json:"recommendation"`
	Margins        MarginBreakdown  `json:"margins"`
	Sourcing       []SourcingOption `json:"sourcing"`
}

// NicheSummary is a category-level aggregate over the final scored list.
type NicheSummary struct {
	Category   string `json:"category"`
	Count      int    `json:"count"`
	AvgScore   int    `json:"avgScore"`
	TotalSales int    `json:"totalSales"`
}

// RecommendationsResult is the snapshot returned by one pipeline run.
type RecommendationsResult struct {
	Success     bool            `json:"success"`
	Message     string          `json:"message,omitempty"`
	Products    []ScoredProduct `json:"products"`
	Niches      []NicheSummary  `json:"niches"`
	Count       int             `json:"count"`
	GeneratedAt time.Time       `json:"generatedAt"`
}

// MarginsResult is the response of the standalone margin endpoint.
type MarginsResult struct {
	Title    string           `json:"title"`
	Margins  MarginBreakdown  `json:"margins"`
	Sourcing []SourcingOption `json:"sourcing"`
}
