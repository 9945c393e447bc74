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

type reviewUseCase struct {
	reviewRepo  contract.IReviewRepository
	commentRepo contract.ICommentRepository
	titleRepo   contract.ITitleRepository
	uuidgen     contract.IUUIDGenerator
	titleCache  contract.ITitleCache
	logger      usecasecontract.IAppLogger
	config      usecasecontract.IConfigProvider
}

func NewReviewUseCase(
	reviewRepo contract.IReviewRepository,
	commentRepo contract.ICommentRepository,
	titleRepo contract.ITitleRepository,
	uuidgen contract.IUUIDGenerator,
	titleCache contract.ITitleCache,
	logger usecasecontract.IAppLogger,
	cfg usecasecontract.IConfigProvider,
) usecasecontract.IReviewUseCase {
	return &reviewUseCase{
		reviewRepo:  reviewRepo,
		commentRepo: commentRepo,
		titleRepo:   titleRepo,
		uuidgen:     uuidgen,
		titleCache:  titleCache,
		logger:      logger,
		config:      cfg,
	}
}

func (uc *reviewUseCase) ListReviews(ctx context.Context, titleID string, page int) ([]*entity.Review, int64, error) {
	if err := uc.ensureTitle(ctx, titleID); err != nil {
		return nil, 0, err
	}
	reviews, total, err := uc.reviewRepo.ListByTitle(ctx, titleID, contract.Pagination{Page: page, PageSize: uc.config.GetPageSize()})
	if err != nil {
		uc.logger.Errorf("failed to list reviews of title %s: %v", titleID, err)
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, total, nil
}

func (uc *reviewUseCase) GetReview(ctx context.Context, titleID, reviewID string) (*entity.Review, error) {
	if err := uc.ensureTitle(ctx, titleID); err != nil {
		return nil, err
	}
	return uc.load(ctx, titleID, reviewID)
}

func (uc *reviewUseCase) CreateReview(ctx context.Context, author *entity.User, titleID, text string, score int) (*entity.Review, error) {
	if author == nil {
		return nil, entity.ErrUnauthenticated
	}
	if err := uc.ensureTitle(ctx, titleID); err != nil {
		return nil, err
	}
	text = plainText(text)
	if err := validateReview(text, score); err != nil {
		return nil, err
	}

	exists, err := uc.reviewRepo.ExistsByAuthorAndTitle(ctx, author.ID, titleID)
	if err != nil {
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if exists {
		return nil, entity.ErrDuplicateReview
	}

	review := &entity.Review{
		ID:       uc.uuidgen.NewUUID(),
		TitleID:  titleID,
		AuthorID: author.ID,
		Text:     text,
		Score:    score,
		PubDate:  time.Now().UTC(),
	}
	// the unique index still decides a concurrent race
	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, entity.ErrDuplicateReview) {
			return nil, entity.ErrDuplicateReview
		}
		uc.logger.Errorf("failed to create review: %v", err)
		return nil, fmt.Errorf("create review: %w", err)
	}
	review.AuthorUsername = author.Username
	uc.invalidate(ctx, titleID)
	return review, nil
}

func (uc *reviewUseCase) UpdateReview(ctx context.Context, actor *entity.User, titleID, reviewID string, text *string, score *int, replace bool) (*entity.Review, error) {
	if err := uc.ensureTitle(ctx, titleID); err != nil {
		return nil, err
	}
	review, err := uc.load(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(review.AuthorID) {
		return nil, entity.ErrPermissionDenied
	}
	if replace {
		var missing []string
		if text == nil {
			missing = append(missing, "text")
		}
		if score == nil {
			missing = append(missing, "score")
		}
		if err := entity.RequiredFields(missing...); err != nil {
			return nil, err
		}
	}

	if text != nil {
		review.Text = plainText(*text)
	}
	if score != nil {
		review.Score = *score
	}
	if err := validateReview(review.Text, review.Score); err != nil {
		return nil, err
	}
	if err := uc.reviewRepo.Update(ctx, review); err != nil {
		uc.logger.Errorf("failed to update review %s: %v", reviewID, err)
		return nil, fmt.Errorf("update review: %w", err)
	}
	uc.invalidate(ctx, titleID)
	return review, nil
}

func (uc *reviewUseCase) DeleteReview(ctx context.Context, actor *entity.User, titleID, reviewID string) error {
	if err := uc.ensureTitle(ctx, titleID); err != nil {
		return err
	}
	review, err := uc.load(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	if !actor.CanModify(review.AuthorID) {
		return entity.ErrPermissionDenied
	}
	if err := uc.commentRepo.DeleteByReviewIDs(ctx, []string{review.ID}); err != nil {
		return fmt.Errorf("delete comments of review %s: %w", review.ID, err)
	}
	if err := uc.reviewRepo.Delete(ctx, review.ID); err != nil {
		uc.logger.Errorf("failed to delete review %s: %v", review.ID, err)
		return fmt.Errorf("delete review: %w", err)
	}
	uc.invalidate(ctx, titleID)
	return nil
}

func (uc *reviewUseCase) ensureTitle(ctx context.Context, titleID string) error {
	if _, err := uc.titleRepo.GetTitleByID(ctx, titleID); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return entity.ErrTitleNotFound
		}
		return fmt.Errorf("get title: %w", err)
	}
	return nil
}

func (uc *reviewUseCase) load(ctx context.Context, titleID, reviewID string) (*entity.Review, error) {
	review, err := uc.reviewRepo.GetInTitle(ctx, titleID, reviewID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, entity.ErrReviewNotFound
		}
		return nil, fmt.Errorf("get review: %w", err)
	}
	return review, nil
}

// invalidate drops the cached title view whose rating just changed.
func (uc *reviewUseCase) invalidate(ctx context.Context, titleID string) {
	if uc.titleCache == nil {
		return
	}
	if err := uc.titleCache.InvalidateTitle(ctx, titleID); err != nil {
		uc.logger.Warnf("cache error: invalidate title id=%s err=%v", titleID, err)
	}
}

func validateReview(text string, score int) error {
	if strings.TrimSpace(text) == "" {
		return entity.NewFieldError("text", "this field may not be blank")
	}
	if !entity.ValidScore(score) {
		return entity.NewFieldError("score", fmt.Sprintf("score must be between %d and %d", entity.MinScore, entity.MaxScore))
	}
	return nil
}
