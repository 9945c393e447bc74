package contract

import (
	"context"

	"github.com/mikiasgoitom/yamdb/internal/domain/entity"
)

type IReviewRepository interface {
	// Create returns entity.ErrDuplicateReview when the author already reviewed the title.
	Create(ctx context.Context, review *entity.Review) error
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	// GetInTitle only matches a review that belongs to titleID.
	GetInTitle(ctx context.Context, titleID, reviewID string) (*entity.Review, error)
	ListByTitle(ctx context.Context, titleID string, pagination Pagination) ([]*entity.Review, int64, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id string) error
	ExistsByAuthorAndTitle(ctx context.Context, authorID, titleID string) (bool, error)

	// Cascade helpers.
	IDsByTitle(ctx context.Context, titleID string) ([]string, error)
	IDsByAuthor(ctx context.Context, authorID string) ([]string, error)
	DeleteByIDs(ctx context.Context, ids []string) error
}
