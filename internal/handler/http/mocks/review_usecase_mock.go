package mocks

import (
	"context"
	"time"

	"github.com/mikiasgoitom/yamdb/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/yamdb/internal/usecase/contract"
)

// MockReviewUsecase holds one review by AuthorID and enforces authorship
// the way the real usecase does.
type MockReviewUsecase struct {
	ShouldFailDuplicate bool
	MissingTitle        bool
	MissingReview       bool

	MockReview entity.Review
	Deleted    bool
}

var _ usecasecontract.IReviewUseCase = (*MockReviewUsecase)(nil)

func NewMockReviewUsecase() *MockReviewUsecase {
	return &MockReviewUsecase{
		MockReview: entity.Review{
			ID:             "review-id",
			TitleID:        "title-id",
			AuthorID:       "user-id",
			AuthorUsername: "user_name",
			Text:           "Great",
			Score:          9,
			PubDate:        time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		},
	}
}

func (m *MockReviewUsecase) lookup(titleID, reviewID string) (*entity.Review, error) {
	if m.MissingTitle {
		return nil, entity.ErrTitleNotFound
	}
	if m.MissingReview || reviewID != m.MockReview.ID {
		return nil, entity.ErrReviewNotFound
	}
	r := m.MockReview
	return &r, nil
}

func (m *MockReviewUsecase) ListReviews(ctx context.Context, titleID string, page int) ([]*entity.Review, int64, error) {
	if m.MissingTitle {
		return nil, 0, entity.ErrTitleNotFound
	}
	r := m.MockReview
	return []*entity.Review{&r}, 1, nil
}

func (m *MockReviewUsecase) GetReview(ctx context.Context, titleID, reviewID string) (*entity.Review, error) {
	return m.lookup(titleID, reviewID)
}

func (m *MockReviewUsecase) CreateReview(ctx context.Context, author *entity.User, titleID, text string, score int) (*entity.Review, error) {
	if author == nil {
		return nil, entity.ErrUnauthenticated
	}
	if m.MissingTitle {
		return nil, entity.ErrTitleNotFound
	}
	if m.ShouldFailDuplicate {
		return nil, entity.ErrDuplicateReview
	}
	if !entity.ValidScore(score) {
		return nil, entity.NewFieldError("score", "score must be between 1 and 10")
	}
	r := m.MockReview
	r.AuthorID, r.AuthorUsername, r.Text, r.Score = author.ID, author.Username, text, score
	return &r, nil
}

func (m *MockReviewUsecase) UpdateReview(ctx context.Context, actor *entity.User, titleID, reviewID string, text *string, score *int, replace bool) (*entity.Review, error) {
	r, err := m.lookup(titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(r.AuthorID) {
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
		r.Text = *text
	}
	if score != nil {
		r.Score = *score
	}
	return r, nil
}

func (m *MockReviewUsecase) DeleteReview(ctx context.Context, actor *entity.User, titleID, reviewID string) error {
	r, err := m.lookup(titleID, reviewID)
	if err != nil {
		return err
	}
	if !actor.CanModify(r.AuthorID) {
		return entity.ErrPermissionDenied
	}
	m.Deleted = true
	return nil
}

// MockCommentUsecase holds one comment on MockReviewUsecase's review.
type MockCommentUsecase struct {
	MockComment entity.Comment
	LastText    string
}

var _ usecasecontract.ICommentUseCase = (*MockCommentUsecase)(nil)

func NewMockCommentUsecase() *MockCommentUsecase {
	return &MockCommentUsecase{
		MockComment: entity.Comment{
			ID:             "comment-id",
			ReviewID:       "review-id",
			AuthorID:       "user-id",
			AuthorUsername: "user_name",
			Text:           "Agreed",
			PubDate:        time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC),
		},
	}
}

func (m *MockCommentUsecase) lookup(reviewID, commentID string) (*entity.Comment, error) {
	if reviewID != m.MockComment.ReviewID || commentID != m.MockComment.ID {
		return nil, entity.ErrCommentNotFound
	}
	c := m.MockComment
	return &c, nil
}

func (m *MockCommentUsecase) ListComments(ctx context.Context, reviewID string, page int) ([]*entity.Comment, int64, error) {
	c := m.MockComment
	return []*entity.Comment{&c}, 1, nil
}

func (m *MockCommentUsecase) GetComment(ctx context.Context, reviewID, commentID string) (*entity.Comment, error) {
	return m.lookup(reviewID, commentID)
}

func (m *MockCommentUsecase) CreateComment(ctx context.Context, author *entity.User, reviewID, text string) (*entity.Comment, error) {
	if author == nil {
		return nil, entity.ErrUnauthenticated
	}
	m.LastText = text
	c := m.MockComment
	c.AuthorID, c.AuthorUsername, c.Text = author.ID, author.Username, text
	return &c, nil
}

func (m *MockCommentUsecase) UpdateComment(ctx context.Context, actor *entity.User, reviewID, commentID string, text *string, replace bool) (*entity.Comment, error) {
	c, err := m.lookup(reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(c.AuthorID) {
		return nil, entity.ErrPermissionDenied
	}
	if text == nil {
		if replace {
			return nil, entity.RequiredFields("text")
		}
		text = &c.Text
	}
	m.LastText = *text
	c.Text = *text
	return c, nil
}

func (m *MockCommentUsecase) DeleteComment(ctx context.Context, actor *entity.User, reviewID, commentID string) error {
	c, err := m.lookup(reviewID, commentID)
	if err != nil {
		return err
	}
	if !actor.CanModify(c.AuthorID) {
		return entity.ErrPermissionDenied
	}
	return nil
}
