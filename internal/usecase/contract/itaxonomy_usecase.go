package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/yamdb/internal/domain/entity"
)

type ITaxonomyUseCase interface {
	List(ctx context.Context, kind entity.TaxonomyKind, search string, page int) ([]*entity.Term, int64, error)
	Create(ctx context.Context, kind entity.TaxonomyKind, name, slug string) (*entity.Term, error)
	Delete(ctx context.Context, kind entity.TaxonomyKind, slug string) error
}
