package domain

// Fund is one mutual fund record as published by the scraping pipeline.
// The orchestration core treats it as opaque read-only data; only the
// tool set interprets it. Numeric-looking fields stay strings because
// the upstream scraper publishes them verbatim ("₹1,234 Cr", "12.4%").
type Fund struct {
	Title        string   `json:"title"`
	Tags         []string `json:"tags"`
	AUM          string   `json:"aum"`
	Decreased    bool     `json:"decrease from last time"`
	Return       string   `json:"return"`
	ExpenseRatio string   `json:"expense ratio"`
}

// HasTag reports whether the fund carries the given tag.
func (f Fund) HasTag(tag string) bool {
	for _, t := range f.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// FundDetails maps classification category -> fund type -> description.
type FundDetails = map[string]map[string]string

// CommodityHistory maps metal name ("gold", "silver") -> period -> price.
type CommodityHistory = map[string]map[string]string
