package service

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"propswipes/internal/model"
	"propswipes/internal/utils"
)

// amount matches a number with optional thousand separators, decimals and a
// k/m/mill magnitude suffix, plus a trailing capture that flags acreage
// phrasing so the price rules can skip it.
const amountPattern = `([\d][\d,]*(?:\.\d+)?(?:\s*(?:k|mill|m))?)(\s*acres?)?`

var (
	reAtLeastBedrooms  = regexp.MustCompile(`at least (\d+)\s*bedrooms?`)
	reBareBedrooms     = regexp.MustCompile(`(\d+)\s*bedrooms?`)
	reAtLeastBathrooms = regexp.MustCompile(`at least (\d+(?:\.\d+)?)\s*bathrooms?`)
	reBareBathrooms    = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*bathrooms?`)

	rePriceOver    = regexp.MustCompile(`over \$?` + amountPattern)
	rePriceUnder   = regexp.MustCompile(`less than \$?` + amountPattern)
	rePriceBetween = regexp.MustCompile(`between \$?` + amountPattern + `\s*(?:and|to)\s*\$?` + amountPattern)

	reSquareFeet   = regexp.MustCompile(`([\d][\d,]*)\s*(?:square feet|sq\.? ?ft\.?|sqft)`)
	reAcresOver    = regexp.MustCompile(`over ([\d.]+)\s*acres?`)
	reAcresUnder   = regexp.MustCompile(`less than ([\d.]+)\s*acres?`)
	reAcresBetween = regexp.MustCompile(`between ([\d.]+)\s*and\s*([\d.]+)\s*acres?`)

	reLastYears = regexp.MustCompile(`last (\d+)\s*years`)
)

// propertyTypeRules are checked in order; a later match overwrites an earlier
// one, so a query containing several type words resolves to the last rule in
// this list. That precedence is inherited behavior, not a ranking of types.
var propertyTypeRules = []struct {
	keyword string
	value   string
}{
	{"land", model.PropertyTypeLand},
	{"residential", model.PropertyTypeResidential},
	{"commercial", model.PropertyTypeCommercial},
	{"condo", model.PropertyTypeCondo},
	{"apartment", model.PropertyTypeApartment},
	{"house", model.PropertyTypeResidential},
	{"home", model.PropertyTypeResidential},
}

// amenityCatalog is the fixed set of phrases recognized by the heuristic
// extractor. Matched phrases are collected in catalog order.
var amenityCatalog = []string{
	"pool",
	"garage",
	"garden",
	"balcony",
	"fireplace",
	"gym",
	"air conditioning",
	"hardwood floors",
	"basement",
	"elevator",
	"pet friendly",
	"waterfront",
	"furnished",
	"parking",
}

// HeuristicParser derives search filters from a query using ordered keyword
// and pattern checks. It never fails: unmatched patterns simply leave the
// corresponding fields unset.
type HeuristicParser struct {
	now func() time.Time
}

// NewHeuristicParser creates a new heuristic parser
func NewHeuristicParser() *HeuristicParser {
	return &HeuristicParser{now: time.Now}
}

var _ FilterExtractor = (*HeuristicParser)(nil)

// Extract parses the query into structured filters. The error return is
// always nil; it exists to satisfy FilterExtractor.
func (p *HeuristicParser) Extract(_ context.Context, query string) (*model.SearchFilters, error) {
	f := &model.SearchFilters{}
	q := strings.ToLower(query)
	if strings.TrimSpace(q) == "" {
		return f, nil
	}

	p.extractPropertyType(q, f)
	p.extractListingType(q, f)
	p.extractRooms(q, f)
	p.extractPrice(q, f)
	p.extractArea(q, f)
	p.extractAmenities(q, f)
	p.extractYearBuilt(q, f)

	return f, nil
}

func (p *HeuristicParser) extractPropertyType(q string, f *model.SearchFilters) {
	for _, rule := range propertyTypeRules {
		if strings.Contains(q, rule.keyword) {
			value := rule.value
			f.PropertyType = &value
		}
	}
}

func (p *HeuristicParser) extractListingType(q string, f *model.SearchFilters) {
	if strings.Contains(q, "rental") {
		value := model.ListingTypeRental
		f.ListingType = &value
	}
	if strings.Contains(q, "for sale") {
		value := model.ListingTypeForSale
		f.ListingType = &value
	}
}

// extractRooms pulls bedroom/bathroom counts. The bare "N bedrooms" pattern
// runs after "at least N bedrooms" and overwrites it when both match; kept
// for compatibility with the original extractor even though a minimum-wins
// policy would arguably be more useful.
func (p *HeuristicParser) extractRooms(q string, f *model.SearchFilters) {
	if m := reAtLeastBedrooms.FindStringSubmatch(q); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			f.BedroomsMin = &n
		}
	}
	if m := reBareBedrooms.FindStringSubmatch(q); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			f.BedroomsMin = &n
		}
	}

	if m := reAtLeastBathrooms.FindStringSubmatch(q); m != nil {
		if n, err := strconv.ParseFloat(m[1], 64); err == nil {
			f.BathroomsMin = &n
		}
	}
	if m := reBareBathrooms.FindStringSubmatch(q); m != nil {
		if n, err := strconv.ParseFloat(m[1], 64); err == nil {
			f.BathroomsMin = &n
		}
	}
}

// extractPrice handles "over $X", "less than $X" and "between $X and $Y".
// Only the between phrasing sets both bounds at once; independent over/less
// phrases in the same query each set their own bound. Matches that turn out
// to be acreage phrases are left for extractArea.
func (p *HeuristicParser) extractPrice(q string, f *model.SearchFilters) {
	if m := rePriceBetween.FindStringSubmatch(q); m != nil && m[2] == "" && m[4] == "" {
		f.PriceMin = utils.ParseAmount(m[1])
		f.PriceMax = utils.ParseAmount(m[3])
	}
	if m := rePriceOver.FindStringSubmatch(q); m != nil && m[2] == "" {
		if v := utils.ParseAmount(m[1]); v != nil {
			f.PriceMin = v
		}
	}
	if m := rePriceUnder.FindStringSubmatch(q); m != nil && m[2] == "" {
		if v := utils.ParseAmount(m[1]); v != nil {
			f.PriceMax = v
		}
	}
}

// extractArea reads direct square footage (minimum only) and acreage
// phrases. Acreage bounds are converted at 43,560 sqft per acre and
// overwrite a square-footage minimum set by the direct phrasing.
func (p *HeuristicParser) extractArea(q string, f *model.SearchFilters) {
	if m := reSquareFeet.FindStringSubmatch(q); m != nil {
		if v := utils.ParseAmount(m[1]); v != nil {
			f.SquareFeetMin = v
		}
	}

	if m := reAcresBetween.FindStringSubmatch(q); m != nil {
		if lo, err := strconv.ParseFloat(m[1], 64); err == nil {
			v := utils.AcresToSquareFeet(lo)
			f.SquareFeetMin = &v
		}
		if hi, err := strconv.ParseFloat(m[2], 64); err == nil {
			v := utils.AcresToSquareFeet(hi)
			f.SquareFeetMax = &v
		}
		return
	}
	if m := reAcresOver.FindStringSubmatch(q); m != nil {
		if acres, err := strconv.ParseFloat(m[1], 64); err == nil {
			v := utils.AcresToSquareFeet(acres)
			f.SquareFeetMin = &v
		}
	}
	if m := reAcresUnder.FindStringSubmatch(q); m != nil {
		if acres, err := strconv.ParseFloat(m[1], 64); err == nil {
			v := utils.AcresToSquareFeet(acres)
			f.SquareFeetMax = &v
		}
	}
}

func (p *HeuristicParser) extractAmenities(q string, f *model.SearchFilters) {
	for _, phrase := range amenityCatalog {
		if strings.Contains(q, phrase) {
			f.Amenities = append(f.Amenities, phrase)
		}
	}
}

func (p *HeuristicParser) extractYearBuilt(q string, f *model.SearchFilters) {
	if m := reLastYears.FindStringSubmatch(q); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			year := p.now().Year() - n
			f.YearBuiltMin = &year
		}
	}
}
