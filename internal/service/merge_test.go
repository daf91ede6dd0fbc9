package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propswipes/internal/model"
)

func strPtr(s string) *string     { return &s }
func intPtr(n int) *int           { return &n }
func floatPtr(v float64) *float64 { return &v }

func TestMergeClientFilters_ModelWins(t *testing.T) {
	extracted := &model.SearchFilters{
		PropertyType: strPtr(model.PropertyTypeCondo),
		BedroomsMin:  intPtr(3),
		PriceMin:     floatPtr(100000),
		PriceMax:     floatPtr(300000),
	}
	current := &model.ClientFilters{
		PropertyType: "apartment",
		Bedrooms:     "1",
		PriceRange:   []float64{400000, 900000},
	}

	merged := MergeClientFilters(extracted, current)

	require.NotNil(t, merged.PropertyType)
	assert.Equal(t, model.PropertyTypeCondo, *merged.PropertyType)
	require.NotNil(t, merged.BedroomsMin)
	assert.Equal(t, 3, *merged.BedroomsMin)
	assert.Equal(t, 100000.0, *merged.PriceMin)
	assert.Equal(t, 300000.0, *merged.PriceMax)
}

func TestMergeClientFilters_ClientFillsGaps(t *testing.T) {
	extracted := &model.SearchFilters{Location: strPtr("austin")}
	current := &model.ClientFilters{
		PropertyType: "condo",
		ListingType:  "rental",
		Bedrooms:     "2+",
		Bathrooms:    "1.5",
		PriceRange:   []float64{150000, 600000},
	}

	merged := MergeClientFilters(extracted, current)

	require.NotNil(t, merged.PropertyType)
	assert.Equal(t, "condo", *merged.PropertyType)
	require.NotNil(t, merged.ListingType)
	assert.Equal(t, "rental", *merged.ListingType)
	require.NotNil(t, merged.BedroomsMin)
	assert.Equal(t, 2, *merged.BedroomsMin)
	require.NotNil(t, merged.BathroomsMin)
	assert.Equal(t, 1.5, *merged.BathroomsMin)
	require.NotNil(t, merged.PriceMin)
	assert.Equal(t, 150000.0, *merged.PriceMin)
	require.NotNil(t, merged.PriceMax)
	assert.Equal(t, 600000.0, *merged.PriceMax)
	// Location stays model-provided; the panel has no location concept.
	require.NotNil(t, merged.Location)
	assert.Equal(t, "austin", *merged.Location)
}

func TestMergeClientFilters_SentinelsExcluded(t *testing.T) {
	current := &model.ClientFilters{
		PropertyType: model.ClientFilterAny,
		ListingType:  model.ClientFilterAny,
		Bedrooms:     model.ClientFilterAny,
		Bathrooms:    model.ClientFilterAny,
		PriceRange:   []float64{model.ClientDefaultPriceMin, model.ClientDefaultPriceMax},
	}

	merged := MergeClientFilters(&model.SearchFilters{}, current)

	assert.True(t, merged.IsEmpty(), "sentinel panel values must not constrain the search, got %+v", merged)
}

func TestMergeClientFilters_StudioMapsToZero(t *testing.T) {
	current := &model.ClientFilters{Bedrooms: model.ClientBedroomsStudio}

	merged := MergeClientFilters(&model.SearchFilters{}, current)

	require.NotNil(t, merged.BedroomsMin)
	assert.Equal(t, 0, *merged.BedroomsMin)
}

func TestMergeClientFilters_NilInputs(t *testing.T) {
	merged := MergeClientFilters(nil, nil)
	require.NotNil(t, merged)
	assert.True(t, merged.IsEmpty())

	merged = MergeClientFilters(&model.SearchFilters{BedroomsMin: intPtr(2)}, nil)
	require.NotNil(t, merged.BedroomsMin)
	assert.Equal(t, 2, *merged.BedroomsMin)
}

func TestMergeClientFilters_PartialPriceRangeIgnored(t *testing.T) {
	// Malformed tuples carry no constraint.
	merged := MergeClientFilters(&model.SearchFilters{}, &model.ClientFilters{PriceRange: []float64{250000}})
	assert.Nil(t, merged.PriceMin)
	assert.Nil(t, merged.PriceMax)
}
