package repository

import (
	"context"

	"github.com/supplyline/catsync/internal/domain"
)

// Mapping defines the interface for supplier-to-local product mapping persistence
type Mapping interface {
	UpsertMapping(ctx context.Context, mapping *domain.ProductMapping) error
	GetBySupplierProductID(ctx context.Context, supplierProductID uint64) (*domain.ProductMapping, error)
	GetByNameHash(ctx context.Context, nameHash string) (*domain.ProductMapping, error)
	CountMappings(ctx context.Context) (int, error)
}
