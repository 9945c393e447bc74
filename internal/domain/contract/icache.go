package contract

import (
	"context"

	"github.com/mikiasgoitom/yamdb/internal/domain/entity"
)

// ITitleCache caches title detail views. Writers must invalidate on every
// change that can affect a view, including review writes.
//
// A fill is guarded by a version token: read it with TitleVersion before
// loading the view, and SetTitle stores nothing if an invalidation ran in
// between.
type ITitleCache interface {
	GetTitle(ctx context.Context, id string) (*entity.TitleView, bool, error)
	TitleVersion(ctx context.Context, id string) (string, error)
	// SetTitle reports whether the view was stored.
	SetTitle(ctx context.Context, view *entity.TitleView, version string) (bool, error)
	InvalidateTitle(ctx context.Context, id string) error
	InvalidateAllTitles(ctx context.Context) error
}
