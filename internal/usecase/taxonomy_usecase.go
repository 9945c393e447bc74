package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/mikiasgoitom/yamdb/internal/domain/contract"
	"github.com/mikiasgoitom/yamdb/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/yamdb/internal/usecase/contract"
)

// TaxonomyUsecase manages categories and genres.
type TaxonomyUsecase struct {
	taxonomyRepo contract.ITaxonomyRepository
	titleRepo    contract.ITitleRepository
	titleCache   contract.ITitleCache
	validator    usecasecontract.IValidator
	logger       usecasecontract.IAppLogger
	config       usecasecontract.IConfigProvider
}

func NewTaxonomyUsecase(
	taxonomyRepo contract.ITaxonomyRepository,
	titleRepo contract.ITitleRepository,
	validator usecasecontract.IValidator,
	logger usecasecontract.IAppLogger,
	cfg usecasecontract.IConfigProvider,
) *TaxonomyUsecase {
	return &TaxonomyUsecase{
		taxonomyRepo: taxonomyRepo,
		titleRepo:    titleRepo,
		validator:    validator,
		logger:       logger,
		config:       cfg,
	}
}

var _ usecasecontract.ITaxonomyUseCase = (*TaxonomyUsecase)(nil)

func (uc *TaxonomyUsecase) SetTitleCache(cache contract.ITitleCache) {
	uc.titleCache = cache
}

func (uc *TaxonomyUsecase) List(ctx context.Context, kind entity.TaxonomyKind, search string, page int) ([]*entity.Term, int64, error) {
	terms, total, err := uc.taxonomyRepo.List(ctx, kind, search, contract.Pagination{Page: page, PageSize: uc.config.GetPageSize()})
	if err != nil {
		uc.logger.Errorf("failed to list %s terms: %v", kind, err)
		return nil, 0, fmt.Errorf("list %s: %w", kind, err)
	}
	return terms, total, nil
}

func (uc *TaxonomyUsecase) Create(ctx context.Context, kind entity.TaxonomyKind, name, slug string) (*entity.Term, error) {
	if name == "" {
		return nil, entity.NewFieldError("name", "this field is required")
	}
	if err := uc.validator.ValidateSlug(slug); err != nil {
		return nil, entity.NewFieldError("slug", err.Error())
	}
	term := &entity.Term{Name: name, Slug: slug}
	if err := uc.taxonomyRepo.Create(ctx, kind, term); err != nil {
		if errors.Is(err, entity.ErrConflict) {
			return nil, entity.NewFieldError("slug", fmt.Sprintf("%s with this slug already exists", kind))
		}
		uc.logger.Errorf("failed to create %s %q: %v", kind, slug, err)
		return nil, fmt.Errorf("create %s: %w", kind, err)
	}
	return term, nil
}

// Delete removes the term and detaches it from every title. Titles keep
// existing with a null category or without the genre.
func (uc *TaxonomyUsecase) Delete(ctx context.Context, kind entity.TaxonomyKind, slug string) error {
	if err := uc.taxonomyRepo.Delete(ctx, kind, slug); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return kind.NotFoundError()
		}
		uc.logger.Errorf("failed to delete %s %q: %v", kind, slug, err)
		return fmt.Errorf("delete %s: %w", kind, err)
	}

	var err error
	if kind == entity.TaxonomyGenre {
		err = uc.titleRepo.PullGenre(ctx, slug)
	} else {
		err = uc.titleRepo.UnsetCategory(ctx, slug)
	}
	if err != nil {
		uc.logger.Errorf("failed to detach %s %q from titles: %v", kind, slug, err)
		return fmt.Errorf("detach %s from titles: %w", kind, err)
	}

	if uc.titleCache != nil {
		if err := uc.titleCache.InvalidateAllTitles(ctx); err != nil {
			uc.logger.Warnf("cache error: invalidate titles after %s delete: %v", kind, err)
		}
	}
	return nil
}
