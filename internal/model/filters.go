package model

// Property type values accepted by the catalog.
const (
	PropertyTypeResidential = "residential"
	PropertyTypeCommercial  = "commercial"
	PropertyTypeLand        = "land"
	PropertyTypeCondo       = "condo"
	PropertyTypeApartment   = "apartment"
)

// Listing type values accepted by the catalog.
const (
	ListingTypeForSale = "for-sale"
	ListingTypeRental  = "rental"
)

// SearchFilters represents structured search criteria extracted from a
// natural language query. A nil pointer means the dimension is unconstrained.
type SearchFilters struct {
	PropertyType   *string  `json:"property_type,omitempty"`
	ListingType    *string  `json:"listing_type,omitempty"`
	BedroomsMin    *int     `json:"bedrooms_min,omitempty"`
	BedroomsMax    *int     `json:"bedrooms_max,omitempty"`
	BathroomsMin   *float64 `json:"bathrooms_min,omitempty"`
	BathroomsMax   *float64 `json:"bathrooms_max,omitempty"`
	PriceMin       *float64 `json:"price_min,omitempty"`
	PriceMax       *float64 `json:"price_max,omitempty"`
	SquareFeetMin  *float64 `json:"square_feet_min,omitempty"`
	SquareFeetMax  *float64 `json:"square_feet_max,omitempty"`
	YearBuiltMin   *int     `json:"year_built_min,omitempty"`
	Amenities      []string `json:"amenities,omitempty"`
	Location       *string  `json:"location,omitempty"`
}

// IsEmpty reports whether no dimension is constrained.
func (f *SearchFilters) IsEmpty() bool {
	if f == nil {
		return true
	}
	return f.PropertyType == nil && f.ListingType == nil &&
		f.BedroomsMin == nil && f.BedroomsMax == nil &&
		f.BathroomsMin == nil && f.BathroomsMax == nil &&
		f.PriceMin == nil && f.PriceMax == nil &&
		f.SquareFeetMin == nil && f.SquareFeetMax == nil &&
		f.YearBuiltMin == nil && len(f.Amenities) == 0 && f.Location == nil
}

// Sentinel values used by the mobile/web client's filter panel. A field equal
// to its sentinel carries no explicit constraint and must be excluded from
// the merge with model-extracted filters.
const (
	ClientFilterAny       = "any"
	ClientBedroomsStudio  = "studio"
	ClientDefaultPriceMin = 200000
	ClientDefaultPriceMax = 2000000
)

// ClientFilters is the UI-native filter object sent by the client alongside a
// smart search, using the filter panel's own field names and value ranges.
type ClientFilters struct {
	PropertyType string    `json:"propertyType,omitempty"`
	ListingType  string    `json:"listingType,omitempty"`
	Bedrooms     string    `json:"bedrooms,omitempty"`  // "any", "studio", "1".."5", "5+"
	Bathrooms    string    `json:"bathrooms,omitempty"` // "any", "1", "1.5", "2+", ...
	PriceRange   []float64 `json:"priceRange,omitempty"`
}
