package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/supplyline/catsync/internal/catalog"
	"github.com/supplyline/catsync/internal/domain"
)

type taxonomyRepository struct {
	db *pgxpool.Pool
}

// NewTaxonomyRepository creates a new PostgreSQL storefront category repository
func NewTaxonomyRepository(db *pgxpool.Pool) catalog.TaxonomyStore {
	return &taxonomyRepository{db: db}
}

func (r *taxonomyRepository) CreateCategory(ctx context.Context, category *catalog.Category) (uint64, error) {
	query := `
		INSERT INTO catalog_categories (name, slug, parent_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id uint64
	err := r.db.QueryRow(ctx, query, category.Name, category.Slug, category.ParentID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s category: %w", ErrMsgFailedToInsert, err)
	}

	category.ID = id
	return id, nil
}

func (r *taxonomyRepository) GetCategoryBySlug(ctx context.Context, slug string) (*catalog.Category, error) {
	query := `SELECT id, name, slug, parent_id FROM catalog_categories WHERE slug = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, slug))
}

func (r *taxonomyRepository) UpdateCategoryParent(ctx context.Context, id, parentID uint64) error {
	result, err := r.db.Exec(ctx, `UPDATE catalog_categories SET parent_id = $2 WHERE id = $1`, id, parentID)
	if err != nil {
		return fmt.Errorf("%s category: %w", ErrMsgFailedToUpdate, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: category %d", domain.ErrCategoryNotFound, id)
	}
	return nil
}

func (r *taxonomyRepository) scanOne(row pgx.Row) (*catalog.Category, error) {
	var c catalog.Category
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.ParentID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s category: %w", ErrMsgFailedToScan, err)
	}
	return &c, nil
}
