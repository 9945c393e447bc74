package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/yamdb/internal/domain/entity"
)

// ICommentUseCase addresses comments through their review; the review id
// alone keys the lookup.
type ICommentUseCase interface {
	ListComments(ctx context.Context, reviewID string, page int) ([]*entity.Comment, int64, error)
	GetComment(ctx context.Context, reviewID, commentID string) (*entity.Comment, error)
	CreateComment(ctx context.Context, author *entity.User, reviewID, text string) (*entity.Comment, error)
	// UpdateComment keeps the text when it is nil, unless replace requires it.
	UpdateComment(ctx context.Context, actor *entity.User, reviewID, commentID string, text *string, replace bool) (*entity.Comment, error)
	DeleteComment(ctx context.Context, actor *entity.User, reviewID, commentID string) error
}
