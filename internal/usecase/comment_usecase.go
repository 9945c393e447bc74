package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mikiasgoitom/yamdb/internal/domain/contract"
	"github.com/mikiasgoitom/yamdb/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/yamdb/internal/usecase/contract"
)

type commentUseCase struct {
	commentRepo contract.ICommentRepository
	reviewRepo  contract.IReviewRepository
	uuidgen     contract.IUUIDGenerator
	logger      usecasecontract.IAppLogger
	config      usecasecontract.IConfigProvider
}

func NewCommentUseCase(
	commentRepo contract.ICommentRepository,
	reviewRepo contract.IReviewRepository,
	uuidgen contract.IUUIDGenerator,
	logger usecasecontract.IAppLogger,
	cfg usecasecontract.IConfigProvider,
) usecasecontract.ICommentUseCase {
	return &commentUseCase{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
		uuidgen:     uuidgen,
		logger:      logger,
		config:      cfg,
	}
}

func (uc *commentUseCase) ListComments(ctx context.Context, reviewID string, page int) ([]*entity.Comment, int64, error) {
	if err := uc.ensureReview(ctx, reviewID); err != nil {
		return nil, 0, err
	}
	comments, total, err := uc.commentRepo.ListByReview(ctx, reviewID, contract.Pagination{Page: page, PageSize: uc.config.GetPageSize()})
	if err != nil {
		uc.logger.Errorf("failed to list comments of review %s: %v", reviewID, err)
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}
	return comments, total, nil
}

func (uc *commentUseCase) GetComment(ctx context.Context, reviewID, commentID string) (*entity.Comment, error) {
	if err := uc.ensureReview(ctx, reviewID); err != nil {
		return nil, err
	}
	return uc.load(ctx, reviewID, commentID)
}

func (uc *commentUseCase) CreateComment(ctx context.Context, author *entity.User, reviewID, text string) (*entity.Comment, error) {
	if author == nil {
		return nil, entity.ErrUnauthenticated
	}
	if err := uc.ensureReview(ctx, reviewID); err != nil {
		return nil, err
	}
	text = plainText(text)
	if err := validateContent(text); err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		ID:       uc.uuidgen.NewUUID(),
		ReviewID: reviewID,
		AuthorID: author.ID,
		Text:     text,
		PubDate:  time.Now().UTC(),
	}
	if err := uc.commentRepo.Create(ctx, comment); err != nil {
		uc.logger.Errorf("failed to create comment: %v", err)
		return nil, fmt.Errorf("create comment: %w", err)
	}
	comment.AuthorUsername = author.Username
	return comment, nil
}

func (uc *commentUseCase) UpdateComment(ctx context.Context, actor *entity.User, reviewID, commentID string, text *string, replace bool) (*entity.Comment, error) {
	if err := uc.ensureReview(ctx, reviewID); err != nil {
		return nil, err
	}
	comment, err := uc.load(ctx, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	// Check ownership
	if !actor.CanModify(comment.AuthorID) {
		return nil, entity.ErrPermissionDenied
	}
	if text == nil {
		if replace {
			return nil, entity.RequiredFields("text")
		}
		return comment, nil
	}
	cleaned := plainText(*text)
	if err := validateContent(cleaned); err != nil {
		return nil, err
	}
	comment.Text = cleaned
	if err := uc.commentRepo.Update(ctx, comment); err != nil {
		uc.logger.Errorf("failed to update comment %s: %v", commentID, err)
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return comment, nil
}

func (uc *commentUseCase) DeleteComment(ctx context.Context, actor *entity.User, reviewID, commentID string) error {
	if err := uc.ensureReview(ctx, reviewID); err != nil {
		return err
	}
	comment, err := uc.load(ctx, reviewID, commentID)
	if err != nil {
		return err
	}
	if !actor.CanModify(comment.AuthorID) {
		return entity.ErrPermissionDenied
	}
	if err := uc.commentRepo.Delete(ctx, comment.ID); err != nil {
		uc.logger.Errorf("failed to delete comment %s: %v", commentID, err)
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

func (uc *commentUseCase) ensureReview(ctx context.Context, reviewID string) error {
	if _, err := uc.reviewRepo.GetByID(ctx, reviewID); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return entity.ErrReviewNotFound
		}
		return fmt.Errorf("get review: %w", err)
	}
	return nil
}

func (uc *commentUseCase) load(ctx context.Context, reviewID, commentID string) (*entity.Comment, error) {
	comment, err := uc.commentRepo.GetByID(ctx, reviewID, commentID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, entity.ErrCommentNotFound
		}
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return comment, nil
}

// validateContent rejects blank text.
func validateContent(text string) error {
	if strings.TrimSpace(text) == "" {
		return entity.NewFieldError("text", "this field may not be blank")
	}
	return nil
}
