package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/supplyline/catsync/internal/catalog"
	"github.com/supplyline/catsync/internal/domain"
)

type productRepository struct {
	db *pgxpool.Pool
}

// NewProductRepository creates a new PostgreSQL storefront product repository
func NewProductRepository(db *pgxpool.Pool) catalog.ProductStore {
	return &productRepository{db: db}
}

func (r *productRepository) CreateProduct(ctx context.Context, product *catalog.Product) (uint64, error) {
	query := `
		INSERT INTO catalog_products (title, slug, description, status, price, stock, in_stock, category_ids, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	metadataJSON, err := marshalMetadata(product.Metadata)
	if err != nil {
		return 0, err
	}

	var id uint64
	err = r.db.QueryRow(ctx, query,
		product.Title,
		product.Slug,
		product.Description,
		product.Status,
		product.Price,
		product.Stock,
		product.InStock,
		int64Slice(product.CategoryIDs),
		metadataJSON,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s product: %w", ErrMsgFailedToInsert, err)
	}

	product.ID = id
	return id, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *catalog.Product) error {
	query := `
		UPDATE catalog_products
		SET title = $2, slug = $3, description = $4, status = $5, price = $6, stock = $7,
		    in_stock = $8, category_ids = $9, metadata = $10, updated_at = now()
		WHERE id = $1
	`

	metadataJSON, err := marshalMetadata(product.Metadata)
	if err != nil {
		return err
	}

	result, err := r.db.Exec(ctx, query,
		product.ID,
		product.Title,
		product.Slug,
		product.Description,
		product.Status,
		product.Price,
		product.Stock,
		product.InStock,
		int64Slice(product.CategoryIDs),
		metadataJSON,
	)
	if err != nil {
		return fmt.Errorf("%s product: %w", ErrMsgFailedToUpdate, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: product %d", domain.ErrProductNotFound, product.ID)
	}
	return nil
}

func (r *productRepository) GetProduct(ctx context.Context, id uint64) (*catalog.Product, error) {
	query := `
		SELECT id, title, slug, description, status, price, stock, in_stock, category_ids, metadata
		FROM catalog_products
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *productRepository) FindProductByTitle(ctx context.Context, title string) (*catalog.Product, error) {
	query := `
		SELECT id, title, slug, description, status, price, stock, in_stock, category_ids, metadata
		FROM catalog_products
		WHERE lower(title) = lower($1)
		LIMIT 1
	`
	return r.scanOne(r.db.QueryRow(ctx, query, title))
}

func (r *productRepository) SetProductMetadata(ctx context.Context, id uint64, key, value string) error {
	query := `
		UPDATE catalog_products
		SET metadata = metadata || jsonb_build_object($2::text, $3::text), updated_at = now()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, key, value)
	if err != nil {
		return fmt.Errorf("%s product metadata: %w", ErrMsgFailedToUpdate, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: product %d", domain.ErrProductNotFound, id)
	}
	return nil
}

func (r *productRepository) SetProductCategories(ctx context.Context, id uint64, categoryIDs []uint64) error {
	return r.setColumn(ctx, id, `UPDATE catalog_products SET category_ids = $2, updated_at = now() WHERE id = $1`, int64Slice(categoryIDs))
}

func (r *productRepository) setColumn(ctx context.Context, id uint64, query string, value interface{}) error {
	result, err := r.db.Exec(ctx, query, id, value)
	if err != nil {
		return fmt.Errorf("%s product: %w", ErrMsgFailedToUpdate, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: product %d", domain.ErrProductNotFound, id)
	}
	return nil
}

func (r *productRepository) scanOne(row pgx.Row) (*catalog.Product, error) {
	var (
		p            catalog.Product
		categoryIDs  []int64
		metadataJSON []byte
	)

	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Description, &p.Status, &p.Price, &p.Stock, &p.InStock, &categoryIDs, &metadataJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s product: %w", ErrMsgFailedToScan, err)
	}

	for _, cid := range categoryIDs {
		p.CategoryIDs = append(p.CategoryIDs, uint64(cid))
	}
	if len(metadataJSON) > 0 {
		if err := json.Unmarshal(metadataJSON, &p.Metadata); err != nil {
			return nil, fmt.Errorf("%s product metadata: %w", ErrMsgFailedToScan, err)
		}
	}
	return &p, nil
}

func marshalMetadata(metadata map[string]string) ([]byte, error) {
	if metadata == nil {
		return []byte(`{}`), nil
	}
	data, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return data, nil
}

func int64Slice(ids []uint64) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		out = append(out, int64(id))
	}
	return out
}
