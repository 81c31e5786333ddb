package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/supplyline/catsync/internal/catalog"
)

type mediaRepository struct {
	db *pgxpool.Pool
}

// NewMediaRepository creates a new PostgreSQL product image repository
func NewMediaRepository(db *pgxpool.Pool) catalog.MediaStore {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) AttachImage(ctx context.Context, productID uint64, url string, featured bool) error {
	query := `
		INSERT INTO catalog_product_images (product_id, url, featured)
		VALUES ($1, $2, $3)
	`

	if _, err := r.db.Exec(ctx, query, productID, url, featured); err != nil {
		return fmt.Errorf("%s product image: %w", ErrMsgFailedToInsert, err)
	}
	return nil
}

func (r *mediaRepository) ListImageURLs(ctx context.Context, productID uint64) ([]string, error) {
	query := `
		SELECT url
		FROM catalog_product_images
		WHERE product_id = $1
		ORDER BY featured DESC, id
	`

	rows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("%s product images: %w", ErrMsgFailedToQuery, err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("%s product image: %w", ErrMsgFailedToScan, err)
		}
		urls = append(urls, url)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s product images: %w", ErrMsgFailedToQuery, err)
	}
	return urls, nil
}
