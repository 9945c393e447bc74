package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/yamdb/internal/domain/entity"
)

// IReviewUseCase updates are partial unless replace is set, in which case
// every writable field is required once the caller may modify the review.
type IReviewUseCase interface {
	ListReviews(ctx context.Context, titleID string, page int) ([]*entity.Review, int64, error)
	GetReview(ctx context.Context, titleID, reviewID string) (*entity.Review, error)
	CreateReview(ctx context.Context, author *entity.User, titleID, text string, score int) (*entity.Review, error)
	UpdateReview(ctx context.Context, actor *entity.User, titleID, reviewID string, text *string, score *int, replace bool) (*entity.Review, error)
	DeleteReview(ctx context.Context, actor *entity.User, titleID, reviewID string) error
}
