package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"propswipes/internal/model"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// listingColumns is the shared projection for listing queries, including the
// owner profile join aliases. The embedding column is deliberately excluded
// from read paths.
const listingColumns = `
	l.id, l.owner_id, l.title, l.price, l.property_type, l.listing_type,
	l.bedrooms, l.bathrooms, l.square_feet, l.year_built,
	l.address, l.city, l.state, l.zip_code, l.latitude, l.longitude,
	l.images, l.videos, l.amenities, l.description, l.status,
	l.created_at, l.updated_at,
	p.id AS owner_profile_id, p.display_name AS owner_display_name,
	p.avatar_url AS owner_avatar_url, p.user_type AS owner_user_type,
	p.phone AS owner_phone`

// PostgresRepository handles database operations
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// NewPostgresRepositoryFromDB wraps an existing connection (used by tests).
func NewPostgresRepositoryFromDB(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// SearchListings translates the filter set into range/equality predicates
// against the listings table. Predicates are added only for present fields;
// approved, non-deleted listings are always required, and when a requester
// is supplied their own listings are excluded. Results come back newest
// first, capped at limit rows.
func (r *PostgresRepository) SearchListings(
	ctx context.Context,
	filters *model.SearchFilters,
	requesterUserID string,
	limit int,
) ([]model.Listing, error) {
	whereClauses := []string{"l.status = 'approved'", "l.deleted_at IS NULL"}
	args := []interface{}{}
	argIndex := 1

	if requesterUserID != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("l.owner_id NOT IN (SELECT id FROM profiles WHERE user_id = $%d)", argIndex))
		args = append(args, requesterUserID)
		argIndex++
	}

	if filters != nil {
		if filters.PropertyType != nil {
			whereClauses = append(whereClauses, fmt.Sprintf("l.property_type = $%d", argIndex))
			args = append(args, *filters.PropertyType)
			argIndex++
		}
		if filters.ListingType != nil {
			whereClauses = append(whereClauses, fmt.Sprintf("l.listing_type = $%d", argIndex))
			args = append(args, *filters.ListingType)
			argIndex++
		}
		if filters.PriceMin != nil {
			whereClauses = append(whereClauses, fmt.Sprintf("l.price >= $%d", argIndex))
			args = append(args, *filters.PriceMin)
			argIndex++
		}
		if filters.PriceMax != nil {
			whereClauses = append(whereClauses, fmt.Sprintf("l.price <= $%d", argIndex))
			args = append(args, *filters.PriceMax)
			argIndex++
		}
		if filters.SquareFeetMin != nil {
			whereClauses = append(whereClauses, fmt.Sprintf("l.square_feet >= $%d", argIndex))
			args = append(args, *filters.SquareFeetMin)
			argIndex++
		}
		if filters.SquareFeetMax != nil {
			whereClauses = append(whereClauses, fmt.Sprintf("l.square_feet <= $%d", argIndex))
			args = append(args, *filters.SquareFeetMax)
			argIndex++
		}
		// Min and max applied separately so equal values select an exact
		// bedroom count.
		if filters.BedroomsMin != nil {
			whereClauses = append(whereClauses, fmt.Sprintf("l.bedrooms >= $%d", argIndex))
			args = append(args, *filters.BedroomsMin)
			argIndex++
		}
		if filters.BedroomsMax != nil {
			whereClauses = append(whereClauses, fmt.Sprintf("l.bedrooms <= $%d", argIndex))
			args = append(args, *filters.BedroomsMax)
			argIndex++
		}
		if filters.BathroomsMin != nil {
			whereClauses = append(whereClauses, fmt.Sprintf("l.bathrooms >= $%d", argIndex))
			args = append(args, *filters.BathroomsMin)
			argIndex++
		}
		if filters.YearBuiltMin != nil {
			whereClauses = append(whereClauses, fmt.Sprintf("l.year_built >= $%d", argIndex))
			args = append(args, *filters.YearBuiltMin)
			argIndex++
		}
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM listings l
		JOIN profiles p ON p.id = l.owner_id
		WHERE %s
		ORDER BY l.created_at DESC
		LIMIT $%d
	`, listingColumns, strings.Join(whereClauses, " AND "), argIndex)
	args = append(args, limit)

	var listings []model.Listing
	if err := r.db.SelectContext(ctx, &listings, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch listings: %w", err)
	}

	return listings, nil
}

// GetListingByID retrieves a single approved listing by its ID
func (r *PostgresRepository) GetListingByID(ctx context.Context, id string) (*model.Listing, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM listings l
		JOIN profiles p ON p.id = l.owner_id
		WHERE l.id = $1 AND l.status = 'approved' AND l.deleted_at IS NULL
	`, listingColumns)

	var listing model.Listing
	err := r.db.GetContext(ctx, &listing, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return &listing, nil
}

// SimilarListings returns the nearest neighbours of a listing by description
// embedding distance, skipping the listing itself and rows without a vector.
func (r *PostgresRepository) SimilarListings(ctx context.Context, id string, limit int) ([]model.Listing, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM listings l
		JOIN profiles p ON p.id = l.owner_id
		WHERE l.status = 'approved' AND l.deleted_at IS NULL
			AND l.id != $1 AND l.embedding IS NOT NULL
		ORDER BY l.embedding <-> (SELECT embedding FROM listings WHERE id = $1)
		LIMIT $2
	`, listingColumns)

	var listings []model.Listing
	if err := r.db.SelectContext(ctx, &listings, query, id, limit); err != nil {
		return nil, fmt.Errorf("failed to fetch similar listings: %w", err)
	}
	return listings, nil
}

// UpdateEmbedding updates the embedding vector for a listing
func (r *PostgresRepository) UpdateEmbedding(ctx context.Context, id string, embedding []float32) error {
	vec := pgvector.NewVector(embedding)
	query := `UPDATE listings SET embedding = $1, updated_at = NOW() WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, vec, id); err != nil {
		return fmt.Errorf("failed to update embedding: %w", err)
	}
	return nil
}

// BatchUpdateEmbeddings updates embeddings for multiple listings inside one
// transaction; per-item failures are collected rather than aborting the run.
func (r *PostgresRepository) BatchUpdateEmbeddings(ctx context.Context, items []model.EmbeddingItem) (int, []string) {
	success := 0
	var errors []string

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		errors = append(errors, fmt.Sprintf("failed to start transaction: %v", err))
		return success, errors
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `UPDATE listings SET embedding = $1, updated_at = NOW() WHERE id = $2`)
	if err != nil {
		errors = append(errors, fmt.Sprintf("failed to prepare statement: %v", err))
		return success, errors
	}
	defer stmt.Close()

	for _, item := range items {
		vec := pgvector.NewVector(item.Embedding)
		if _, err := stmt.ExecContext(ctx, vec, item.ListingID); err != nil {
			errors = append(errors, fmt.Sprintf("listing %s: %v", item.ListingID, err))
			continue
		}
		success++
	}

	if err := tx.Commit(); err != nil {
		errors = append(errors, fmt.Sprintf("failed to commit transaction: %v", err))
		return 0, errors
	}

	return success, errors
}

// LogSearch logs a search query with its effective criteria and result set
func (r *PostgresRepository) LogSearch(ctx context.Context, searchID, query string, criteria *model.SearchFilters, resultCount int, listingIDs []string, responseTimeMs int) error {
	criteriaJSON, err := json.Marshal(criteria)
	if err != nil {
		return fmt.Errorf("failed to marshal criteria: %w", err)
	}

	logQuery := `
		INSERT INTO search_logs (search_id, query, criteria, result_count, returned_listing_ids, response_time_ms)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = r.db.ExecContext(ctx, logQuery, searchID, query, criteriaJSON, resultCount, pq.Array(listingIDs), responseTimeMs)
	if err != nil {
		return fmt.Errorf("failed to log search: %w", err)
	}
	return nil
}

// LogFeedback records a user swipe/action against a logged search
func (r *PostgresRepository) LogFeedback(ctx context.Context, searchID, listingID, action string) error {
	query := `
		UPDATE search_logs
		SET clicked_listing_id = $2, action = $3
		WHERE search_id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, searchID, listingID, action); err != nil {
		return fmt.Errorf("failed to log feedback: %w", err)
	}
	return nil
}
