package contract

import (
	"context"

	"github.com/mikiasgoitom/yamdb/internal/domain/entity"
)

type ICommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	// GetByID only matches a comment that belongs to reviewID.
	GetByID(ctx context.Context, reviewID, commentID string) (*entity.Comment, error)
	ListByReview(ctx context.Context, reviewID string, pagination Pagination) ([]*entity.Comment, int64, error)
	Update(ctx context.Context, comment *entity.Comment) error
	Delete(ctx context.Context, id string) error

	// Cascade helpers.
	DeleteByReviewIDs(ctx context.Context, reviewIDs []string) error
	DeleteByAuthor(ctx context.Context, authorID string) error
}
