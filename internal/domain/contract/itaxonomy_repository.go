package contract

import (
	"context"

	"github.com/mikiasgoitom/yamdb/internal/domain/entity"
)

// ITaxonomyRepository stores categories and genres. Both share one shape and
// differ only by collection.
type ITaxonomyRepository interface {
	Create(ctx context.Context, kind entity.TaxonomyKind, term *entity.Term) error
	GetBySlug(ctx context.Context, kind entity.TaxonomyKind, slug string) (*entity.Term, error)
	// GetBySlugs returns the terms that exist; missing slugs are simply absent.
	GetBySlugs(ctx context.Context, kind entity.TaxonomyKind, slugs []string) ([]*entity.Term, error)
	List(ctx context.Context, kind entity.TaxonomyKind, search string, pagination Pagination) ([]*entity.Term, int64, error)
	Delete(ctx context.Context, kind entity.TaxonomyKind, slug string) error
}
