package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/supplyline/catsync/internal/domain"
	"github.com/supplyline/catsync/internal/repository"
)

type mappingRepository struct {
	db *pgxpool.Pool
}

// NewMappingRepository creates a new PostgreSQL product mapping repository
func NewMappingRepository(db *pgxpool.Pool) repository.Mapping {
	return &mappingRepository{db: db}
}

// UpsertMapping writes the mapping row for the local product. A new row
// supersedes any existing row it collides with on either identity key
// (name_hash, or a non-zero supplier_product_id), not just the primary key;
// otherwise a renamed or re-keyed product leaves a stale row claiming the
// same identity.
func (r *mappingRepository) UpsertMapping(ctx context.Context, mapping *domain.ProductMapping) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s mapping: %w", ErrMsgFailedToUpsert, err)
	}
	defer tx.Rollback(ctx)

	supersede := `
		DELETE FROM product_mappings
		WHERE local_product_id <> $1
		  AND (name_hash = $2 OR (supplier_product_id <> 0 AND supplier_product_id = $3))
	`
	if _, err := tx.Exec(ctx, supersede,
		mapping.LocalProductID,
		mapping.NameHash,
		mapping.SupplierProductID,
	); err != nil {
		return fmt.Errorf("%s mapping: %w", ErrMsgFailedToUpsert, err)
	}

	query := `
		INSERT INTO product_mappings (local_product_id, supplier_product_id, name_hash, category_id, last_synced_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (local_product_id) DO UPDATE SET
			supplier_product_id = EXCLUDED.supplier_product_id,
			name_hash = EXCLUDED.name_hash,
			category_id = EXCLUDED.category_id,
			last_synced_at = EXCLUDED.last_synced_at
	`
	if _, err := tx.Exec(ctx, query,
		mapping.LocalProductID,
		mapping.SupplierProductID,
		mapping.NameHash,
		mapping.CategoryID,
		mapping.LastSyncedAt,
	); err != nil {
		return fmt.Errorf("%s mapping: %w", ErrMsgFailedToUpsert, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s mapping: %w", ErrMsgFailedToUpsert, err)
	}
	return nil
}

func (r *mappingRepository) GetBySupplierProductID(ctx context.Context, supplierProductID uint64) (*domain.ProductMapping, error) {
	query := `
		SELECT local_product_id, supplier_product_id, name_hash, category_id, last_synced_at
		FROM product_mappings
		WHERE supplier_product_id = $1 AND supplier_product_id <> 0
	`
	return r.scanOne(r.db.QueryRow(ctx, query, supplierProductID))
}

func (r *mappingRepository) GetByNameHash(ctx context.Context, nameHash string) (*domain.ProductMapping, error) {
	query := `
		SELECT local_product_id, supplier_product_id, name_hash, category_id, last_synced_at
		FROM product_mappings
		WHERE name_hash = $1
	`
	return r.scanOne(r.db.QueryRow(ctx, query, nameHash))
}

func (r *mappingRepository) CountMappings(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM product_mappings`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s mappings: %w", ErrMsgFailedToQuery, err)
	}
	return count, nil
}

func (r *mappingRepository) scanOne(row pgx.Row) (*domain.ProductMapping, error) {
	var m domain.ProductMapping
	err := row.Scan(&m.LocalProductID, &m.SupplierProductID, &m.NameHash, &m.CategoryID, &m.LastSyncedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrMappingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s mapping: %w", ErrMsgFailedToScan, err)
	}
	return &m, nil
}
