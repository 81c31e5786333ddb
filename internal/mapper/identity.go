package mapper

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/supplyline/catsync/internal/catalog"
	"github.com/supplyline/catsync/internal/domain"
	"github.com/supplyline/catsync/internal/repository"
)

// NameHash digests the lower-cased, trimmed product name. It is the stable
// fallback identity for suppliers that recycle product IDs.
func NameHash(name string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(name))))
	return hex.EncodeToString(sum[:])
}

// Resolver maps a remote product record to a local product ID. Precedence is
// supplier ID, then name hash, then exact title lookup; each step can be
// switched off independently. A supplier-ID match always wins over a
// conflicting name match.
type Resolver struct {
	mappings repository.Mapping
	products catalog.ProductStore
}

func NewResolver(mappings repository.Mapping, products catalog.ProductStore) *Resolver {
	return &Resolver{mappings: mappings, products: products}
}

// Resolve returns the local product ID for the remote record, or found=false
// when no step produced a match.
func (r *Resolver) Resolve(ctx context.Context, remote *domain.RemoteProduct, settings domain.SyncSettings) (uint64, bool, error) {
	if settings.MatchBySupplierID && remote.ProductID != 0 {
		m, err := r.mappings.GetBySupplierProductID(ctx, remote.ProductID)
		if err == nil {
			return m.LocalProductID, true, nil
		}
		if !errors.Is(err, domain.ErrMappingNotFound) {
			return 0, false, fmt.Errorf("resolving by supplier id: %w", err)
		}
	}

	if settings.MatchByName {
		m, err := r.mappings.GetByNameHash(ctx, NameHash(remote.ProductName))
		if err == nil {
			return m.LocalProductID, true, nil
		}
		if !errors.Is(err, domain.ErrMappingNotFound) {
			return 0, false, fmt.Errorf("resolving by name hash: %w", err)
		}
	}

	if settings.MatchByTitle {
		p, err := r.products.FindProductByTitle(ctx, remote.ProductName)
		if err == nil {
			return p.ID, true, nil
		}
		if !errors.Is(err, domain.ErrProductNotFound) {
			return 0, false, fmt.Errorf("resolving by title: %w", err)
		}
	}

	return 0, false, nil
}
