package contract

import (
	"context"

	"github.com/mikiasgoitom/yamdb/internal/domain/entity"
)

// TitleFilterOptions are the optional, conjunctive title filters.
type TitleFilterOptions struct {
	GenreSlug    *string
	CategorySlug *string
	Year         *int
	Name         *string // case-sensitive substring
	Pagination   Pagination
}

// ITitleRepository provides methods for managing titles. Views are computed
// at read time and carry the aggregated rating.
type ITitleRepository interface {
	CreateTitle(ctx context.Context, title *entity.Title) error
	GetTitleByID(ctx context.Context, id string) (*entity.Title, error)
	GetTitleView(ctx context.Context, id string) (*entity.TitleView, error)
	ListTitleViews(ctx context.Context, opts *TitleFilterOptions) ([]*entity.TitleView, int64, error)
	UpdateTitle(ctx context.Context, title *entity.Title) error
	DeleteTitle(ctx context.Context, id string) error
	// UnsetCategory nulls the category of every title referencing slug.
	UnsetCategory(ctx context.Context, slug string) error
	// PullGenre removes slug from every title's genres.
	PullGenre(ctx context.Context, slug string) error
}
