package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/yamdb/internal/domain/entity"
)

// TitleInput carries title fields; nil means "leave unchanged" on partial update.
type TitleInput struct {
	Name        *string
	Year        *int
	Description *string
	Genre       []string
	GenreSet    bool
	Category    *string
}

// TitleFilter is the query-string side of title listing.
type TitleFilter struct {
	Genre    *string
	Category *string
	Year     *int
	Name     *string
	Page     int
}

type ITitleUseCase interface {
	ListTitles(ctx context.Context, filter TitleFilter) ([]*entity.TitleView, int64, error)
	GetTitle(ctx context.Context, id string) (*entity.TitleView, error)
	CreateTitle(ctx context.Context, in TitleInput) (*entity.TitleView, error)
	// UpdateTitle with replace requires the same fields as CreateTitle.
	UpdateTitle(ctx context.Context, id string, in TitleInput, replace bool) (*entity.TitleView, error)
	DeleteTitle(ctx context.Context, id string) error
}
