package service

import (
	"context"
	"testing"
	"time"

	"propswipes/internal/model"
)

func newTestParser() *HeuristicParser {
	p := NewHeuristicParser()
	p.now = func() time.Time {
		return time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	}
	return p
}

func TestHeuristicParser_NoKeywords(t *testing.T) {
	parser := newTestParser()

	for _, query := range []string{"", "   ", "something nice please", "cozy and bright"} {
		got, err := parser.Extract(context.Background(), query)
		if err != nil {
			t.Fatalf("Extract(%q) returned error: %v", query, err)
		}
		if !got.IsEmpty() {
			t.Errorf("Extract(%q) = %+v, want empty filters", query, got)
		}
	}
}

func TestHeuristicParser_PropertyType(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{name: "land", query: "5 acres of land", want: model.PropertyTypeLand},
		{name: "condo", query: "downtown condo", want: model.PropertyTypeCondo},
		{name: "apartment", query: "apartment rental", want: model.PropertyTypeApartment},
		{name: "house maps to residential", query: "family house", want: model.PropertyTypeResidential},
		{name: "home maps to residential", query: "forever home", want: model.PropertyTypeResidential},
		{name: "commercial", query: "commercial space", want: model.PropertyTypeCommercial},
		// Multiple type words resolve to the last rule in source order,
		// not to any semantic priority.
		{name: "condo beats land in rule order", query: "land near a condo", want: model.PropertyTypeCondo},
		{name: "house beats condo in rule order", query: "condo or house", want: model.PropertyTypeResidential},
	}

	parser := newTestParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := parser.Extract(context.Background(), tt.query)
			if got.PropertyType == nil {
				t.Fatalf("Extract(%q): PropertyType unset, want %q", tt.query, tt.want)
			}
			if *got.PropertyType != tt.want {
				t.Errorf("Extract(%q): PropertyType = %q, want %q", tt.query, *got.PropertyType, tt.want)
			}
		})
	}
}

func TestHeuristicParser_ListingType(t *testing.T) {
	parser := newTestParser()

	got, _ := parser.Extract(context.Background(), "condo rental downtown")
	if got.ListingType == nil || *got.ListingType != model.ListingTypeRental {
		t.Errorf("expected rental, got %v", got.ListingType)
	}

	got, _ = parser.Extract(context.Background(), "house for sale")
	if got.ListingType == nil || *got.ListingType != model.ListingTypeForSale {
		t.Errorf("expected for-sale, got %v", got.ListingType)
	}

	// Both phrases present: the later rule wins.
	got, _ = parser.Extract(context.Background(), "rental or for sale, either works")
	if got.ListingType == nil || *got.ListingType != model.ListingTypeForSale {
		t.Errorf("expected for-sale to win, got %v", got.ListingType)
	}

	got, _ = parser.Extract(context.Background(), "plain query")
	if got.ListingType != nil {
		t.Errorf("expected unset listing type, got %q", *got.ListingType)
	}
}

func TestHeuristicParser_Bedrooms(t *testing.T) {
	parser := newTestParser()

	got, _ := parser.Extract(context.Background(), "3 bedrooms near the park")
	if got.BedroomsMin == nil || *got.BedroomsMin != 3 {
		t.Fatalf("expected bedroomsMin=3, got %v", got.BedroomsMin)
	}
	if got.BedroomsMax != nil {
		t.Errorf("bare bedroom count must not set a maximum, got %v", *got.BedroomsMax)
	}

	got, _ = parser.Extract(context.Background(), "at least 4 bedrooms")
	if got.BedroomsMin == nil || *got.BedroomsMin != 4 {
		t.Fatalf("expected bedroomsMin=4, got %v", got.BedroomsMin)
	}

	// The bare pattern runs second and overwrites the at-least value when a
	// second count appears in the query.
	got, _ = parser.Extract(context.Background(), "at least 4 bedrooms but 2 bedroom units are fine")
	if got.BedroomsMin == nil || *got.BedroomsMin != 4 {
		// The bare pattern scans left to right and finds "4 bedrooms"
		// inside the at-least phrase first, so the at-least value stands.
		t.Fatalf("expected bedroomsMin=4 from leftmost bare match, got %v", got.BedroomsMin)
	}
}

func TestHeuristicParser_Bathrooms(t *testing.T) {
	parser := newTestParser()

	got, _ := parser.Extract(context.Background(), "2.5 bathrooms please")
	if got.BathroomsMin == nil || *got.BathroomsMin != 2.5 {
		t.Fatalf("expected bathroomsMin=2.5, got %v", got.BathroomsMin)
	}

	got, _ = parser.Extract(context.Background(), "at least 2 bathrooms")
	if got.BathroomsMin == nil || *got.BathroomsMin != 2 {
		t.Fatalf("expected bathroomsMin=2, got %v", got.BathroomsMin)
	}
}

func TestHeuristicParser_Price(t *testing.T) {
	parser := newTestParser()

	got, _ := parser.Extract(context.Background(), "house over $300k")
	if got.PriceMin == nil || *got.PriceMin != 300000 {
		t.Fatalf("expected priceMin=300000, got %v", got.PriceMin)
	}
	if got.PriceMax != nil {
		t.Errorf("expected no priceMax, got %v", *got.PriceMax)
	}

	got, _ = parser.Extract(context.Background(), "less than 1.2m")
	if got.PriceMax == nil || *got.PriceMax != 1200000 {
		t.Fatalf("expected priceMax=1200000, got %v", got.PriceMax)
	}

	got, _ = parser.Extract(context.Background(), "between $250k and $400k")
	if got.PriceMin == nil || *got.PriceMin != 250000 {
		t.Fatalf("expected priceMin=250000, got %v", got.PriceMin)
	}
	if got.PriceMax == nil || *got.PriceMax != 400000 {
		t.Fatalf("expected priceMax=400000, got %v", got.PriceMax)
	}

	got, _ = parser.Extract(context.Background(), "between $500k to $750k")
	if got.PriceMin == nil || *got.PriceMin != 500000 || got.PriceMax == nil || *got.PriceMax != 750000 {
		t.Fatalf("expected 500000..750000, got %v..%v", got.PriceMin, got.PriceMax)
	}

	// Independent over/less-than phrases each set their own bound; only the
	// between phrasing sets both at once.
	got, _ = parser.Extract(context.Background(), "over $300k and less than 500000")
	if got.PriceMin == nil || *got.PriceMin != 300000 {
		t.Fatalf("expected priceMin=300000, got %v", got.PriceMin)
	}
	if got.PriceMax == nil || *got.PriceMax != 500000 {
		t.Fatalf("expected priceMax=500000, got %v", got.PriceMax)
	}

	// Unparsable amounts leave the bound unset.
	got, _ = parser.Extract(context.Background(), "condo over $abc")
	if got.PriceMin != nil {
		t.Errorf("expected unset priceMin for non-numeric amount, got %v", *got.PriceMin)
	}
}

func TestHeuristicParser_Area(t *testing.T) {
	parser := newTestParser()

	// Direct square footage sets a minimum only.
	got, _ := parser.Extract(context.Background(), "2,000 square feet house")
	if got.SquareFeetMin == nil || *got.SquareFeetMin != 2000 {
		t.Fatalf("expected squareFeetMin=2000, got %v", got.SquareFeetMin)
	}
	if got.SquareFeetMax != nil {
		t.Errorf("direct square footage must not set a maximum, got %v", *got.SquareFeetMax)
	}

	got, _ = parser.Extract(context.Background(), "1500 sqft condo")
	if got.SquareFeetMin == nil || *got.SquareFeetMin != 1500 {
		t.Fatalf("expected squareFeetMin=1500, got %v", got.SquareFeetMin)
	}

	got, _ = parser.Extract(context.Background(), "land over 1 acre")
	if got.SquareFeetMin == nil || *got.SquareFeetMin != 43560 {
		t.Fatalf("expected squareFeetMin=43560, got %v", got.SquareFeetMin)
	}
	if got.PriceMin != nil {
		t.Errorf("acreage phrase must not set priceMin, got %v", *got.PriceMin)
	}

	got, _ = parser.Extract(context.Background(), "less than 2 acres")
	if got.SquareFeetMax == nil || *got.SquareFeetMax != 87120 {
		t.Fatalf("expected squareFeetMax=87120, got %v", got.SquareFeetMax)
	}
	if got.PriceMax != nil {
		t.Errorf("acreage phrase must not set priceMax, got %v", *got.PriceMax)
	}

	got, _ = parser.Extract(context.Background(), "between 1 and 2 acres")
	if got.SquareFeetMin == nil || *got.SquareFeetMin != 43560 {
		t.Fatalf("expected squareFeetMin=43560, got %v", got.SquareFeetMin)
	}
	if got.SquareFeetMax == nil || *got.SquareFeetMax != 87120 {
		t.Fatalf("expected squareFeetMax=87120, got %v", got.SquareFeetMax)
	}
	if got.PriceMin != nil || got.PriceMax != nil {
		t.Errorf("acreage between must not set price bounds")
	}

	// Acreage phrasing overwrites a square-footage minimum from the direct
	// phrasing when both are present.
	got, _ = parser.Extract(context.Background(), "2000 sqft or over 1 acre")
	if got.SquareFeetMin == nil || *got.SquareFeetMin != 43560 {
		t.Fatalf("expected acreage to overwrite sqft minimum, got %v", got.SquareFeetMin)
	}
}

func TestHeuristicParser_Amenities(t *testing.T) {
	parser := newTestParser()

	got, _ := parser.Extract(context.Background(), "house with garage, pool and a nice garden")
	want := []string{"pool", "garage", "garden"}
	if len(got.Amenities) != len(want) {
		t.Fatalf("expected %v, got %v", want, got.Amenities)
	}
	// Catalog order, not query order.
	for i, amenity := range want {
		if got.Amenities[i] != amenity {
			t.Errorf("amenities[%d] = %q, want %q", i, got.Amenities[i], amenity)
		}
	}
}

func TestHeuristicParser_YearBuilt(t *testing.T) {
	parser := newTestParser()

	got, _ := parser.Extract(context.Background(), "built in the last 5 years")
	if got.YearBuiltMin == nil || *got.YearBuiltMin != 2021 {
		t.Fatalf("expected yearBuiltMin=2021, got %v", got.YearBuiltMin)
	}

	got, _ = parser.Extract(context.Background(), "charming old place")
	if got.YearBuiltMin != nil {
		t.Errorf("expected unset yearBuiltMin, got %v", *got.YearBuiltMin)
	}
}
