package mocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/mikiasgoitom/yamdb/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/yamdb/internal/usecase/contract"
)

// MockTaxonomyUsecase serves a fixed term list for either kind.
type MockTaxonomyUsecase struct {
	ShouldFailCreate bool
	ShouldFailDelete bool

	MockTerms []*entity.Term
	LastKind  entity.TaxonomyKind
	Deleted   []string
}

var _ usecasecontract.ITaxonomyUseCase = (*MockTaxonomyUsecase)(nil)

func NewMockTaxonomyUsecase() *MockTaxonomyUsecase {
	return &MockTaxonomyUsecase{
		MockTerms: []*entity.Term{{Name: "Movie", Slug: "movie"}, {Name: "Book", Slug: "book"}},
	}
}

func (m *MockTaxonomyUsecase) List(ctx context.Context, kind entity.TaxonomyKind, search string, page int) ([]*entity.Term, int64, error) {
	m.LastKind = kind
	return m.MockTerms, int64(len(m.MockTerms)), nil
}

func (m *MockTaxonomyUsecase) Create(ctx context.Context, kind entity.TaxonomyKind, name, slug string) (*entity.Term, error) {
	m.LastKind = kind
	if m.ShouldFailCreate {
		return nil, entity.NewFieldError("slug", fmt.Sprintf("%s with this slug already exists", kind))
	}
	return &entity.Term{Name: name, Slug: slug}, nil
}

func (m *MockTaxonomyUsecase) Delete(ctx context.Context, kind entity.TaxonomyKind, slug string) error {
	m.LastKind = kind
	if m.ShouldFailDelete {
		return kind.NotFoundError()
	}
	m.Deleted = append(m.Deleted, slug)
	return nil
}

// MockTitleUsecase returns MockView for every title and records filters.
type MockTitleUsecase struct {
	ShouldFailGet    bool
	ShouldFailCreate bool
	ShouldFailList   bool

	MockView    entity.TitleView
	MockTotal   int64
	LastFilter  usecasecontract.TitleFilter
	LastInput   usecasecontract.TitleInput
	LastReplace bool
}

var _ usecasecontract.ITitleUseCase = (*MockTitleUsecase)(nil)

func NewMockTitleUsecase() *MockTitleUsecase {
	rating := 7.5
	return &MockTitleUsecase{
		MockView: entity.TitleView{
			ID:       "title-id",
			Name:     "The Kid",
			Year:     1921,
			Rating:   &rating,
			Genres:   []entity.Genre{{Name: "Drama", Slug: "drama"}},
			Category: &entity.Category{Name: "Movie", Slug: "movie"},
		},
		MockTotal: 1,
	}
}

func (m *MockTitleUsecase) ListTitles(ctx context.Context, filter usecasecontract.TitleFilter) ([]*entity.TitleView, int64, error) {
	m.LastFilter = filter
	if m.ShouldFailList {
		return nil, 0, errors.New("database unavailable")
	}
	v := m.MockView
	return []*entity.TitleView{&v}, m.MockTotal, nil
}

func (m *MockTitleUsecase) GetTitle(ctx context.Context, id string) (*entity.TitleView, error) {
	if m.ShouldFailGet {
		return nil, entity.ErrTitleNotFound
	}
	v := m.MockView
	return &v, nil
}

func (m *MockTitleUsecase) CreateTitle(ctx context.Context, in usecasecontract.TitleInput) (*entity.TitleView, error) {
	m.LastInput = in
	if m.ShouldFailCreate {
		return nil, entity.NewFieldError("genre", "object with slug=unknown does not exist")
	}
	v := m.MockView
	v.Rating = nil
	if in.Name != nil {
		v.Name = *in.Name
	}
	return &v, nil
}

func (m *MockTitleUsecase) UpdateTitle(ctx context.Context, id string, in usecasecontract.TitleInput, replace bool) (*entity.TitleView, error) {
	m.LastInput = in
	m.LastReplace = replace
	if m.ShouldFailGet {
		return nil, entity.ErrTitleNotFound
	}
	if replace {
		var missing []string
		if in.Name == nil {
			missing = append(missing, "name")
		}
		if in.Year == nil {
			missing = append(missing, "year")
		}
		if !in.GenreSet {
			missing = append(missing, "genre")
		}
		if in.Category == nil {
			missing = append(missing, "category")
		}
		if err := entity.RequiredFields(missing...); err != nil {
			return nil, err
		}
	}
	v := m.MockView
	if in.Name != nil {
		v.Name = *in.Name
	}
	return &v, nil
}

func (m *MockTitleUsecase) DeleteTitle(ctx context.Context, id string) error {
	if m.ShouldFailGet {
		return entity.ErrTitleNotFound
	}
	return nil
}
