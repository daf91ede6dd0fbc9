package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/pgvector/pgvector-go"
)

// Listing represents a property listing
type Listing struct {
	ID           string          `json:"id" db:"id"`
	OwnerID      string          `json:"owner_id" db:"owner_id"`
	Title        *string         `json:"title,omitempty" db:"title"`
	Price        *float64        `json:"price,omitempty" db:"price"`
	PropertyType *string         `json:"property_type,omitempty" db:"property_type"`
	ListingType  *string         `json:"listing_type,omitempty" db:"listing_type"`
	Bedrooms     *int            `json:"bedrooms,omitempty" db:"bedrooms"`
	Bathrooms    *float64        `json:"bathrooms,omitempty" db:"bathrooms"`
	SquareFeet   *float64        `json:"square_feet,omitempty" db:"square_feet"`
	YearBuilt    *int            `json:"year_built,omitempty" db:"year_built"`
	Address      *string         `json:"address,omitempty" db:"address"`
	City         *string         `json:"city,omitempty" db:"city"`
	State        *string         `json:"state,omitempty" db:"state"`
	ZipCode      *string         `json:"zip_code,omitempty" db:"zip_code"`
	Latitude     *float64        `json:"latitude,omitempty" db:"latitude"`
	Longitude    *float64        `json:"longitude,omitempty" db:"longitude"`
	Images       JSONArray       `json:"images,omitempty" db:"images"`
	Videos       JSONArray       `json:"videos,omitempty" db:"videos"`
	Amenities    JSONArray       `json:"amenities,omitempty" db:"amenities"`
	Description  *string         `json:"description,omitempty" db:"description"`
	Status       string          `json:"status" db:"status"`
	Embedding    pgvector.Vector `json:"-" db:"embedding"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
	DeletedAt    *time.Time      `json:"-" db:"deleted_at"`

	OwnerSummary
}

// OwnerSummary is the denormalized profile of the listing's owner, carried on
// every search result for client display. Embedded so sqlx maps the aliased
// join columns directly.
type OwnerSummary struct {
	OwnerProfileID   *string `json:"owner_profile_id,omitempty" db:"owner_profile_id"`
	OwnerDisplayName *string `json:"owner_display_name,omitempty" db:"owner_display_name"`
	OwnerAvatarURL   *string `json:"owner_avatar_url,omitempty" db:"owner_avatar_url"`
	OwnerUserType    *string `json:"owner_user_type,omitempty" db:"owner_user_type"`
	OwnerPhone       *string `json:"owner_phone,omitempty" db:"owner_phone"`
}

// JSONArray represents a JSONB string array column
type JSONArray []string

// Value implements driver.Valuer interface
func (j JSONArray) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONArray) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), j)
	}
	return json.Unmarshal(bytes, j)
}
