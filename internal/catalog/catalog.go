// Package catalog provides the product catalog store used by the outfit
// recommendation pipeline.
//
// Products carry sparse, vision-model-derived fashion attributes in a separate
// relation. A product without a vision_attributes row is still a valid
// candidate for broad searches; queries always left-join the attribute
// relation so that attribute absence never excludes a product.
package catalog

// Product is a single sellable catalog item.
type Product struct {
	SKU      string  `json:"sku"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	ImageKey string  `json:"image_key"`
	InStock  bool    `json:"in_stock"`
	Category string  `json:"category"` // catalog category, often generic or wrong
}

// VisionAttributes holds the fashion attributes a vision model derived for a
// SKU. At most one row exists per SKU and many SKUs have none.
type VisionAttributes struct {
	SKU             string  `json:"sku"`
	Color           string  `json:"color"`
	SecondaryColor  string  `json:"secondary_color"`
	Category        string  `json:"category"`
	Material        string  `json:"material"`
	Pattern         string  `json:"pattern"`
	Style           string  `json:"style"`
	Occasion        string  `json:"occasion"`
	Fit             string  `json:"fit"`
	FormalLevel     string  `json:"formal_level"`
	ConfidenceScore float64 `json:"confidence_score"`
}

// Item is a search result row: a product joined with its vision attributes.
// Attrs is nil when the SKU has no vision_attributes row.
type Item struct {
	Product
	Attrs      *VisionAttributes
	MatchCount int
}

// Color returns the primary vision color, or "" when unknown.
func (it Item) Color() string {
	if it.Attrs == nil {
		return ""
	}
	return it.Attrs.Color
}
