package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mikiasgoitom/yamdb/internal/domain/contract"
	"github.com/mikiasgoitom/yamdb/internal/domain/entity"
	"github.com/mikiasgoitom/yamdb/internal/infrastructure/metrics"
	usecasecontract "github.com/mikiasgoitom/yamdb/internal/usecase/contract"
)

// TitleUseCaseImpl implements the ITitleUseCase interface
type TitleUseCaseImpl struct {
	titleRepo    contract.ITitleRepository
	taxonomyRepo contract.ITaxonomyRepository
	reviewRepo   contract.IReviewRepository
	commentRepo  contract.ICommentRepository
	uuidgen      contract.IUUIDGenerator
	logger       usecasecontract.IAppLogger
	config       usecasecontract.IConfigProvider
	titleCache   contract.ITitleCache
	now          func() time.Time
}

// NewTitleUseCase creates a new instance of TitleUseCase
func NewTitleUseCase(
	titleRepo contract.ITitleRepository,
	taxonomyRepo contract.ITaxonomyRepository,
	reviewRepo contract.IReviewRepository,
	commentRepo contract.ICommentRepository,
	uuidgen contract.IUUIDGenerator,
	logger usecasecontract.IAppLogger,
	cfg usecasecontract.IConfigProvider,
) *TitleUseCaseImpl {
	return &TitleUseCaseImpl{
		titleRepo:    titleRepo,
		taxonomyRepo: taxonomyRepo,
		reviewRepo:   reviewRepo,
		commentRepo:  commentRepo,
		uuidgen:      uuidgen,
		logger:       logger,
		config:       cfg,
		now:          time.Now,
	}
}

// check if TitleUseCaseImpl implements the ITitleUseCase
var _ usecasecontract.ITitleUseCase = (*TitleUseCaseImpl)(nil)

// separate title instance for titleCache injection
func (uc *TitleUseCaseImpl) SetTitleCache(cache contract.ITitleCache) {
	uc.titleCache = cache
}

func (uc *TitleUseCaseImpl) ListTitles(ctx context.Context, filter usecasecontract.TitleFilter) ([]*entity.TitleView, int64, error) {
	opts := &contract.TitleFilterOptions{
		GenreSlug:    filter.Genre,
		CategorySlug: filter.Category,
		Year:         filter.Year,
		Name:         filter.Name,
		Pagination:   contract.Pagination{Page: filter.Page, PageSize: uc.config.GetPageSize()},
	}
	titles, total, err := uc.titleRepo.ListTitleViews(ctx, opts)
	if err != nil {
		uc.logger.Errorf("failed to list titles: %v", err)
		return nil, 0, fmt.Errorf("list titles: %w", err)
	}
	return titles, total, nil
}

func (uc *TitleUseCaseImpl) GetTitle(ctx context.Context, id string) (*entity.TitleView, error) {
	version, cacheable := "", false
	if uc.titleCache != nil {
		cached, found, err := uc.titleCache.GetTitle(ctx, id)
		switch {
		case err != nil:
			uc.logger.Warnf("cache error: title detail id=%s err=%v", id, err)
		case found:
			metrics.CacheLookups.WithLabelValues("title", "hit").Inc()
			return cached, nil
		default:
			metrics.CacheLookups.WithLabelValues("title", "miss").Inc()
		}
		// version first, then the view
		if version, err = uc.titleCache.TitleVersion(ctx, id); err != nil {
			uc.logger.Warnf("cache error: title version id=%s err=%v", id, err)
		} else {
			cacheable = true
		}
	}

	view, err := uc.titleRepo.GetTitleView(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, entity.ErrTitleNotFound
		}
		uc.logger.Errorf("failed to retrieve title %s: %v", id, err)
		return nil, fmt.Errorf("get title: %w", err)
	}

	if cacheable {
		stored, err := uc.titleCache.SetTitle(ctx, view, version)
		switch {
		case err != nil:
			uc.logger.Warnf("cache error: set title id=%s err=%v", id, err)
		case !stored:
			uc.logger.Debugf("title %s changed while loading, not cached", id)
		}
	}
	return view, nil
}

// CreateTitle requires every writable field except description.
func (uc *TitleUseCaseImpl) CreateTitle(ctx context.Context, in usecasecontract.TitleInput) (*entity.TitleView, error) {
	switch {
	case in.Name == nil:
		return nil, entity.NewFieldError("name", "this field is required")
	case in.Year == nil:
		return nil, entity.NewFieldError("year", "this field is required")
	case !in.GenreSet:
		return nil, entity.NewFieldError("genre", "this field is required")
	case in.Category == nil:
		return nil, entity.NewFieldError("category", "this field is required")
	}

	now := uc.now().UTC()
	title := &entity.Title{
		ID:         uc.uuidgen.NewUUID(),
		GenreSlugs: []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.applyInput(ctx, title, in); err != nil {
		return nil, err
	}
	if err := uc.titleRepo.CreateTitle(ctx, title); err != nil {
		uc.logger.Errorf("failed to create title: %v", err)
		return nil, fmt.Errorf("create title: %w", err)
	}
	return uc.view(ctx, title.ID)
}

// UpdateTitle applies the non-nil fields of in. With replace, the fields
// CreateTitle requires must all be present.
func (uc *TitleUseCaseImpl) UpdateTitle(ctx context.Context, id string, in usecasecontract.TitleInput, replace bool) (*entity.TitleView, error) {
	title, err := uc.titleRepo.GetTitleByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, entity.ErrTitleNotFound
		}
		return nil, fmt.Errorf("get title: %w", err)
	}
	if replace {
		if err := entity.RequiredFields(missingTitleFields(in)...); err != nil {
			return nil, err
		}
	}
	if err := uc.applyInput(ctx, title, in); err != nil {
		return nil, err
	}
	title.UpdatedAt = uc.now().UTC()
	if err := uc.titleRepo.UpdateTitle(ctx, title); err != nil {
		uc.logger.Errorf("failed to update title %s: %v", id, err)
		return nil, fmt.Errorf("update title: %w", err)
	}
	uc.invalidate(ctx, id)
	return uc.view(ctx, id)
}

func missingTitleFields(in usecasecontract.TitleInput) []string {
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
	return missing
}

// DeleteTitle removes the title, its reviews and their comments.
func (uc *TitleUseCaseImpl) DeleteTitle(ctx context.Context, id string) error {
	if _, err := uc.titleRepo.GetTitleByID(ctx, id); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return entity.ErrTitleNotFound
		}
		return fmt.Errorf("get title: %w", err)
	}
	reviewIDs, err := uc.reviewRepo.IDsByTitle(ctx, id)
	if err != nil {
		return fmt.Errorf("collect reviews of title %s: %w", id, err)
	}
	if err := uc.commentRepo.DeleteByReviewIDs(ctx, reviewIDs); err != nil {
		return fmt.Errorf("delete comments of title %s: %w", id, err)
	}
	if err := uc.reviewRepo.DeleteByIDs(ctx, reviewIDs); err != nil {
		return fmt.Errorf("delete reviews of title %s: %w", id, err)
	}
	if err := uc.titleRepo.DeleteTitle(ctx, id); err != nil {
		uc.logger.Errorf("failed to delete title %s: %v", id, err)
		return fmt.Errorf("delete title: %w", err)
	}
	uc.invalidate(ctx, id)
	return nil
}

func (uc *TitleUseCaseImpl) view(ctx context.Context, id string) (*entity.TitleView, error) {
	view, err := uc.titleRepo.GetTitleView(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load title view: %w", err)
	}
	return view, nil
}

func (uc *TitleUseCaseImpl) invalidate(ctx context.Context, id string) {
	if uc.titleCache == nil {
		return
	}
	if err := uc.titleCache.InvalidateTitle(ctx, id); err != nil {
		uc.logger.Warnf("cache error: invalidate title id=%s err=%v", id, err)
	}
}

func (uc *TitleUseCaseImpl) applyInput(ctx context.Context, title *entity.Title, in usecasecontract.TitleInput) error {
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return entity.NewFieldError("name", "this field may not be blank")
		}
		title.Name = *in.Name
	}
	if in.Year != nil {
		if currentYear := uc.now().Year(); *in.Year > currentYear {
			return entity.NewFieldError("year", fmt.Sprintf("year cannot be greater than the current year (%d)", currentYear))
		}
		title.Year = *in.Year
	}
	if in.Description != nil {
		title.Description = in.Description
	}
	if in.GenreSet {
		slugs, err := uc.resolveGenres(ctx, in.Genre)
		if err != nil {
			return err
		}
		title.GenreSlugs = slugs
	}
	if in.Category != nil {
		if _, err := uc.taxonomyRepo.GetBySlug(ctx, entity.TaxonomyCategory, *in.Category); err != nil {
			if errors.Is(err, entity.ErrNotFound) {
				return entity.NewFieldError("category", fmt.Sprintf("object with slug=%s does not exist", *in.Category))
			}
			return fmt.Errorf("resolve category: %w", err)
		}
		slug := *in.Category
		title.CategorySlug = &slug
	}
	return nil
}

// resolveGenres deduplicates slugs and fails on the first unknown one.
func (uc *TitleUseCaseImpl) resolveGenres(ctx context.Context, slugs []string) ([]string, error) {
	unique := make([]string, 0, len(slugs))
	seen := make(map[string]struct{}, len(slugs))
	for _, s := range slugs {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		unique = append(unique, s)
	}
	if len(unique) == 0 {
		return unique, nil
	}

	found, err := uc.taxonomyRepo.GetBySlugs(ctx, entity.TaxonomyGenre, unique)
	if err != nil {
		return nil, fmt.Errorf("resolve genres: %w", err)
	}
	known := make(map[string]struct{}, len(found))
	for _, g := range found {
		known[g.Slug] = struct{}{}
	}
	for _, s := range unique {
		if _, ok := known[s]; !ok {
			return nil, entity.NewFieldError("genre", fmt.Sprintf("object with slug=%s does not exist", s))
		}
	}
	return unique, nil
}
