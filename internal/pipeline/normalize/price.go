package normalize

import (
	"strconv"
	"strings"

	"trendscout/internal/models"
)

// vndPerUSD is a fixed approximation; the upstream reports VND prices as
// separator-formatted integers.
const vndPerUSD = 25000.0

// NormalizePrice extracts a single non-negative USD price from the
// heterogeneous upstream price fields. Unparseable input yields 0, never
// an error; zero-price items are excluded later by the candidate selector.
func NormalizePrice(item models.RawItem) float64 {
	info, ok := nestedMap(item, "price_info")
	if !ok {
		// No nested structure: top-level integer price is in minor
		// units, min_price is a plain decimal string.
		if cents, found := intField(item, "price"); found {
			return nonNegative(float64(cents) / 100)
		}
		if s := stringField(item, "min_price"); s != "" {
			if v, err := strconv.ParseFloat(s, 64); err == nil {
				return nonNegative(v)
			}
		}
		return 0
	}

	raw := firstString(info,
		"sale_price_decimal",
		"sale_price_format",
		"sale_price_min",
		"sale_price",
	)
	if raw == "" {
		raw = "0"
	}

	currency := stringField(info, "currency_name")
	symbol := stringField(info, "currency_symbol")

	switch {
	case strings.EqualFold(currency, "VND") || symbol == "₫":
		return nonNegative(parseSeparated(raw) / vndPerUSD)
	case strings.EqualFold(currency, "USD") || symbol == "$":
		return nonNegative(parseSeparated(raw))
	default:
		return nonNegative(parseLoose(raw))
	}
}

// parseSeparated strips dots and commas as thousands separators before
// parsing. Both are stripped uniformly regardless of locale, so "12,99"
// parses as 1299; this is the documented best-effort contract, not a bug.
func parseSeparated(raw string) float64 {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(digits.String(), 64)
	if err != nil {
		return 0
	}
	return v
}

// parseLoose keeps digits and decimal points and parses best-effort.
func parseLoose(raw string) float64 {
	var cleaned strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			cleaned.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(cleaned.String(), 64)
	if err != nil {
		return 0
	}
	return v
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
