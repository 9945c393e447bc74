package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mikiasgoitom/yamdb/internal/domain/contract"
	"github.com/mikiasgoitom/yamdb/internal/domain/entity"
)

// memStore backs every fake repository so cascades and views can be observed
// across collections, the way the database would.
type memStore struct {
	mu       sync.Mutex
	users    map[string]*entity.User
	terms    map[entity.TaxonomyKind]map[string]*entity.Term
	titles   map[string]*entity.Title
	reviews  map[string]*entity.Review
	comments map[string]*entity.Comment
}

func newMemStore() *memStore {
	return &memStore{
		users: map[string]*entity.User{},
		terms: map[entity.TaxonomyKind]map[string]*entity.Term{
			entity.TaxonomyCategory: {},
			entity.TaxonomyGenre:    {},
		},
		titles:   map[string]*entity.Title{},
		reviews:  map[string]*entity.Review{},
		comments: map[string]*entity.Comment{},
	}
}

func page[T any](items []T, p contract.Pagination) []T {
	start := int(p.Skip())
	if start >= len(items) {
		return []T{}
	}
	end := len(items)
	if p.PageSize > 0 && start+p.PageSize < end {
		end = start + p.PageSize
	}
	return items[start:end]
}

// users

type fakeUserRepo struct{ s *memStore }

func (r *fakeUserRepo) clash(u *entity.User) bool {
	for _, other := range r.s.users {
		if other.ID != u.ID && (other.Username == u.Username || other.Email == u.Email) {
			return true
		}
	}
	return false
}

func (r *fakeUserRepo) CreateUser(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.clash(u) {
		return entity.ErrConflict
	}
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) find(match func(*entity.User) bool) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, entity.ErrNotFound
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.ID == id })
}

func (r *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Username == username })
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Email == email })
}

func (r *fakeUserRepo) GetUserByEmailAndUsername(_ context.Context, email, username string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Email == email && u.Username == username })
}

func (r *fakeUserRepo) ListUsers(_ context.Context, opts contract.UserFilterOptions) ([]*entity.User, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.User
	for _, u := range r.s.users {
		if strings.Contains(u.Username, opts.Search) {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return page(out, opts.Pagination), int64(len(out)), nil
}

func (r *fakeUserRepo) UpdateUser(_ context.Context, u *entity.User) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; !ok {
		return nil, entity.ErrNotFound
	}
	if r.clash(u) {
		return nil, entity.ErrConflict
	}
	cp := *u
	r.s.users[u.ID] = &cp
	out := cp
	return &out, nil
}

func (r *fakeUserRepo) DeleteUser(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return entity.ErrNotFound
	}
	delete(r.s.users, id)
	return nil
}

// taxonomy

type fakeTaxonomyRepo struct{ s *memStore }

func (r *fakeTaxonomyRepo) Create(_ context.Context, kind entity.TaxonomyKind, t *entity.Term) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.terms[kind][t.Slug]; ok {
		return entity.ErrConflict
	}
	cp := *t
	r.s.terms[kind][t.Slug] = &cp
	return nil
}

func (r *fakeTaxonomyRepo) GetBySlug(_ context.Context, kind entity.TaxonomyKind, slug string) (*entity.Term, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.terms[kind][slug]
	if !ok {
		return nil, entity.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTaxonomyRepo) GetBySlugs(_ context.Context, kind entity.TaxonomyKind, slugs []string) ([]*entity.Term, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Term
	for _, s := range slugs {
		if t, ok := r.s.terms[kind][s]; ok {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeTaxonomyRepo) List(_ context.Context, kind entity.TaxonomyKind, search string, p contract.Pagination) ([]*entity.Term, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Term
	for _, t := range r.s.terms[kind] {
		if strings.Contains(t.Name, search) {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, p), int64(len(out)), nil
}

func (r *fakeTaxonomyRepo) Delete(_ context.Context, kind entity.TaxonomyKind, slug string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.terms[kind][slug]; !ok {
		return entity.ErrNotFound
	}
	delete(r.s.terms[kind], slug)
	return nil
}

// titles

type fakeTitleRepo struct{ s *memStore }

func (r *fakeTitleRepo) CreateTitle(_ context.Context, t *entity.Title) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *t
	r.s.titles[t.ID] = &cp
	return nil
}

func (r *fakeTitleRepo) GetTitleByID(_ context.Context, id string) (*entity.Title, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.titles[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	cp := *t
	cp.GenreSlugs = append([]string{}, t.GenreSlugs...)
	return &cp, nil
}

// viewOf mirrors the lookup pipeline: expand slugs, average review scores.
func (r *fakeTitleRepo) viewOf(t *entity.Title) *entity.TitleView {
	var scores []int
	for _, rv := range r.s.reviews {
		if rv.TitleID == t.ID {
			scores = append(scores, rv.Score)
		}
	}
	view := &entity.TitleView{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Description: t.Description,
		Rating:      entity.AverageScore(scores),
		Genres:      []entity.Genre{},
	}
	for _, slug := range t.GenreSlugs {
		if g, ok := r.s.terms[entity.TaxonomyGenre][slug]; ok {
			view.Genres = append(view.Genres, *g)
		}
	}
	if t.CategorySlug != nil {
		if c, ok := r.s.terms[entity.TaxonomyCategory][*t.CategorySlug]; ok {
			cp := *c
			view.Category = &cp
		}
	}
	return view
}

func (r *fakeTitleRepo) GetTitleView(_ context.Context, id string) (*entity.TitleView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.titles[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return r.viewOf(t), nil
}

func (r *fakeTitleRepo) ListTitleViews(_ context.Context, opts *contract.TitleFilterOptions) ([]*entity.TitleView, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var matched []*entity.Title
	for _, t := range r.s.titles {
		if opts.CategorySlug != nil && (t.CategorySlug == nil || *t.CategorySlug != *opts.CategorySlug) {
			continue
		}
		if opts.Year != nil && t.Year != *opts.Year {
			continue
		}
		if opts.Name != nil && !strings.Contains(t.Name, *opts.Name) {
			continue
		}
		if opts.GenreSlug != nil {
			found := false
			for _, g := range t.GenreSlugs {
				found = found || g == *opts.GenreSlug
			}
			if !found {
				continue
			}
		}
		matched = append(matched, t)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Year != matched[j].Year {
			return matched[i].Year > matched[j].Year
		}
		return matched[i].Name < matched[j].Name
	})
	var out []*entity.TitleView
	for _, t := range page(matched, opts.Pagination) {
		out = append(out, r.viewOf(t))
	}
	return out, int64(len(matched)), nil
}

func (r *fakeTitleRepo) UpdateTitle(_ context.Context, t *entity.Title) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.titles[t.ID]; !ok {
		return entity.ErrNotFound
	}
	cp := *t
	r.s.titles[t.ID] = &cp
	return nil
}

func (r *fakeTitleRepo) DeleteTitle(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.titles[id]; !ok {
		return entity.ErrNotFound
	}
	delete(r.s.titles, id)
	return nil
}

func (r *fakeTitleRepo) UnsetCategory(_ context.Context, slug string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.titles {
		if t.CategorySlug != nil && *t.CategorySlug == slug {
			t.CategorySlug = nil
		}
	}
	return nil
}

func (r *fakeTitleRepo) PullGenre(_ context.Context, slug string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.titles {
		kept := t.GenreSlugs[:0]
		for _, g := range t.GenreSlugs {
			if g != slug {
				kept = append(kept, g)
			}
		}
		t.GenreSlugs = kept
	}
	return nil
}

// reviews

type fakeReviewRepo struct{ s *memStore }

func (r *fakeReviewRepo) withAuthor(rv *entity.Review) *entity.Review {
	cp := *rv
	if u, ok := r.s.users[rv.AuthorID]; ok {
		cp.AuthorUsername = u.Username
	}
	return &cp
}

func (r *fakeReviewRepo) Create(_ context.Context, rv *entity.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.reviews {
		if other.AuthorID == rv.AuthorID && other.TitleID == rv.TitleID {
			return entity.ErrDuplicateReview
		}
	}
	cp := *rv
	r.s.reviews[rv.ID] = &cp
	return nil
}

func (r *fakeReviewRepo) GetByID(_ context.Context, id string) (*entity.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rv, ok := r.s.reviews[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return r.withAuthor(rv), nil
}

func (r *fakeReviewRepo) GetInTitle(_ context.Context, titleID, reviewID string) (*entity.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rv, ok := r.s.reviews[reviewID]
	if !ok || rv.TitleID != titleID {
		return nil, entity.ErrNotFound
	}
	return r.withAuthor(rv), nil
}

func (r *fakeReviewRepo) ListByTitle(_ context.Context, titleID string, p contract.Pagination) ([]*entity.Review, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Review
	for _, rv := range r.s.reviews {
		if rv.TitleID == titleID {
			out = append(out, r.withAuthor(rv))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PubDate.After(out[j].PubDate) })
	return page(out, p), int64(len(out)), nil
}

func (r *fakeReviewRepo) Update(_ context.Context, rv *entity.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.reviews[rv.ID]; !ok {
		return entity.ErrNotFound
	}
	cp := *rv
	r.s.reviews[rv.ID] = &cp
	return nil
}

func (r *fakeReviewRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.reviews[id]; !ok {
		return entity.ErrNotFound
	}
	delete(r.s.reviews, id)
	return nil
}

func (r *fakeReviewRepo) ExistsByAuthorAndTitle(_ context.Context, authorID, titleID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rv := range r.s.reviews {
		if rv.AuthorID == authorID && rv.TitleID == titleID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeReviewRepo) ids(match func(*entity.Review) bool) []string {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []string
	for _, rv := range r.s.reviews {
		if match(rv) {
			out = append(out, rv.ID)
		}
	}
	return out
}

func (r *fakeReviewRepo) IDsByTitle(_ context.Context, titleID string) ([]string, error) {
	return r.ids(func(rv *entity.Review) bool { return rv.TitleID == titleID }), nil
}

func (r *fakeReviewRepo) IDsByAuthor(_ context.Context, authorID string) ([]string, error) {
	return r.ids(func(rv *entity.Review) bool { return rv.AuthorID == authorID }), nil
}

func (r *fakeReviewRepo) DeleteByIDs(_ context.Context, ids []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range ids {
		delete(r.s.reviews, id)
	}
	return nil
}

// comments

type fakeCommentRepo struct{ s *memStore }

func (r *fakeCommentRepo) Create(_ context.Context, c *entity.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *c
	r.s.comments[c.ID] = &cp
	return nil
}

func (r *fakeCommentRepo) GetByID(_ context.Context, reviewID, commentID string) (*entity.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.comments[commentID]
	if !ok || c.ReviewID != reviewID {
		return nil, entity.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCommentRepo) ListByReview(_ context.Context, reviewID string, p contract.Pagination) ([]*entity.Comment, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Comment
	for _, c := range r.s.comments {
		if c.ReviewID == reviewID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PubDate.After(out[j].PubDate) })
	return page(out, p), int64(len(out)), nil
}

func (r *fakeCommentRepo) Update(_ context.Context, c *entity.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.comments[c.ID]; !ok {
		return entity.ErrNotFound
	}
	cp := *c
	r.s.comments[c.ID] = &cp
	return nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.comments[id]; !ok {
		return entity.ErrNotFound
	}
	delete(r.s.comments, id)
	return nil
}

func (r *fakeCommentRepo) DeleteByReviewIDs(_ context.Context, reviewIDs []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	drop := map[string]bool{}
	for _, id := range reviewIDs {
		drop[id] = true
	}
	for id, c := range r.s.comments {
		if drop[c.ReviewID] {
			delete(r.s.comments, id)
		}
	}
	return nil
}

func (r *fakeCommentRepo) DeleteByAuthor(_ context.Context, authorID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, c := range r.s.comments {
		if c.AuthorID == authorID {
			delete(r.s.comments, id)
		}
	}
	return nil
}

// collaborators

type seqUUID struct{ n int }

func (g *seqUUID) NewUUID() string {
	g.n++
	return fmt.Sprintf("id-%03d", g.n)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{}) {}
func (nopLogger) Warnf(string, ...interface{}) {}
func (nopLogger) Errorf(string, ...interface{}) {}
func (nopLogger) Fatalf(string, ...interface{}) {}

type fakeConfig struct{ pageSize int }

func (c fakeConfig) GetAppBaseURL() string { return "http://localhost:8080" }
func (c fakeConfig) GetAccessTokenTTL() time.Duration { return time.Hour }
func (c fakeConfig) GetConfirmationCodeTTL() time.Duration { return time.Hour }
func (c fakeConfig) GetPageSize() int { return c.pageSize }
func (c fakeConfig) GetEmailFrom() string { return "noreply@yamdb.local" }

// fakeValidator applies the same rules as the real one, minus the regexes.
type fakeValidator struct{}

func (fakeValidator) ValidateEmail(email string) error {
	if !strings.Contains(email, "@") {
		return errors.New("invalid email")
	}
	return nil
}

func (fakeValidator) ValidateUsername(username string) error {
	if username == "" || strings.ContainsAny(username, " !#") {
		return errors.New("enter a valid username")
	}
	if username == entity.ReservedUsername {
		return errors.New("username 'me' is reserved")
	}
	return nil
}

func (fakeValidator) ValidateSlug(slug string) error {
	if slug == "" || strings.ContainsAny(slug, " /") {
		return errors.New("enter a valid slug")
	}
	return nil
}

type sentMail struct{ to, subject, body string }

type fakeMailer struct {
	sent []sentMail
	fail bool
}

func (m *fakeMailer) SendEmail(_ context.Context, to, subject, body string) error {
	if m.fail {
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, sentMail{to, subject, body})
	return nil
}

// stateCodes binds a code to the user's activation state and last login,
// which is all the usecase relies on.
type stateCodes struct{}

func (stateCodes) MakeCode(u *entity.User) (string, error) {
	login := int64(0)
	if u.LastLogin != nil {
		login = u.LastLogin.UnixNano()
	}
	return fmt.Sprintf("%s-%t-%d", u.ID, u.IsActive, login), nil
}

func (c stateCodes) CheckCode(u *entity.User, code string) bool {
	want, _ := c.MakeCode(u)
	return code == want
}

type fakeJWT struct{}

func (fakeJWT) GenerateAccessToken(userID string, role entity.UserRole) (string, error) {
	return "token:" + userID + ":" + string(role), nil
}

func (fakeJWT) ParseAccessToken(token string) (*entity.Claims, error) {
	parts := strings.Split(token, ":")
	if len(parts) != 3 || parts[0] != "token" {
		return nil, errors.New("malformed token")
	}
	return &entity.Claims{UserID: parts[1], Role: entity.UserRole(parts[2])}, nil
}

type fakeTitleCache struct {
	views       map[string]*entity.TitleView
	versions    map[string]int
	global      int
	invalidated []string
	flushes     int
}

func newFakeTitleCache() *fakeTitleCache {
	return &fakeTitleCache{views: map[string]*entity.TitleView{}, versions: map[string]int{}}
}

func (c *fakeTitleCache) GetTitle(_ context.Context, id string) (*entity.TitleView, bool, error) {
	v, ok := c.views[id]
	return v, ok, nil
}

func (c *fakeTitleCache) TitleVersion(_ context.Context, id string) (string, error) {
	return fmt.Sprintf("%d:%d", c.versions[id], c.global), nil
}

func (c *fakeTitleCache) SetTitle(ctx context.Context, v *entity.TitleView, version string) (bool, error) {
	if current, _ := c.TitleVersion(ctx, v.ID); current != version {
		return false, nil
	}
	c.views[v.ID] = v
	return true, nil
}

func (c *fakeTitleCache) InvalidateTitle(_ context.Context, id string) error {
	c.versions[id]++
	delete(c.views, id)
	c.invalidated = append(c.invalidated, id)
	return nil
}

func (c *fakeTitleCache) InvalidateAllTitles(_ context.Context) error {
	c.global++
	c.views = map[string]*entity.TitleView{}
	c.flushes++
	return nil
}

// fixture wires every usecase over one memStore.
type fixture struct {
	store    *memStore
	mailer   *fakeMailer
	cache    *fakeTitleCache
	auth     *AuthUsecase
	users    *UserUsecase
	taxonomy *TaxonomyUsecase
	titles   *TitleUseCaseImpl
	reviews  *reviewUseCase
	comments *commentUseCase
}

func newFixture() *fixture {
	s := newMemStore()
	userRepo := &fakeUserRepo{s}
	taxRepo := &fakeTaxonomyRepo{s}
	titleRepo := &fakeTitleRepo{s}
	reviewRepo := &fakeReviewRepo{s}
	commentRepo := &fakeCommentRepo{s}
	ids := &seqUUID{}
	cfg := fakeConfig{pageSize: 10}
	mailer := &fakeMailer{}
	cache := newFakeTitleCache()

	f := &fixture{store: s, mailer: mailer, cache: cache}
	f.auth = NewAuthUsecase(userRepo, stateCodes{}, mailer, fakeJWT{}, fakeValidator{}, ids, nopLogger{}, cfg)
	f.users = NewUserUsecase(userRepo, reviewRepo, commentRepo, fakeValidator{}, ids, nopLogger{}, cfg)
	f.users.SetTitleCache(cache)
	f.taxonomy = NewTaxonomyUsecase(taxRepo, titleRepo, fakeValidator{}, nopLogger{}, cfg)
	f.taxonomy.SetTitleCache(cache)
	f.titles = NewTitleUseCase(titleRepo, taxRepo, reviewRepo, commentRepo, ids, nopLogger{}, cfg)
	f.titles.SetTitleCache(cache)
	f.titles.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	f.reviews = NewReviewUseCase(reviewRepo, commentRepo, titleRepo, ids, cache, nopLogger{}, cfg).(*reviewUseCase)
	f.comments = NewCommentUseCase(commentRepo, reviewRepo, ids, nopLogger{}, cfg).(*commentUseCase)
	return f
}

// addUser stores an active user with the given role directly.
func (f *fixture) addUser(id, username string, role entity.UserRole) *entity.User {
	u := &entity.User{ID: id, Username: username, Email: username + "@example.com", Role: role, IsActive: true}
	f.store.users[id] = u
	cp := *u
	return &cp
}
