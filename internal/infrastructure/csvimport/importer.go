package csvimport

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/mikiasgoitom/yamdb/internal/domain/contract"
	"github.com/mikiasgoitom/yamdb/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/yamdb/internal/usecase/contract"
)

// File names tried for each fixture, in order. The first one present wins.
var (
	usersFiles      = []string{"users.csv", "user.csv"}
	categoryFiles   = []string{"category.csv", "categories.csv"}
	genreFiles      = []string{"genre.csv", "genres.csv"}
	titleFiles      = []string{"titles.csv", "title.csv"}
	genreTitleFiles = []string{"genre_title.csv"}
	reviewFiles     = []string{"review.csv", "reviews.csv"}
	commentFiles    = []string{"comments.csv", "comment.csv"}
)

// Stats counts imported records.
type Stats struct {
	Users      int
	Categories int
	Genres     int
	Titles     int
	Reviews    int
	Comments   int
}

// Importer loads fixture CSVs into the store. Fixture ids are numeric and
// only meaningful within one import; every record gets a fresh id.
type Importer struct {
	users    contract.IUserRepository
	taxonomy contract.ITaxonomyRepository
	titles   contract.ITitleRepository
	reviews  contract.IReviewRepository
	comments contract.ICommentRepository
	uuidgen  contract.IUUIDGenerator
	logger   usecasecontract.IAppLogger
	now      func() time.Time
}

func NewImporter(
	users contract.IUserRepository,
	taxonomy contract.ITaxonomyRepository,
	titles contract.ITitleRepository,
	reviews contract.IReviewRepository,
	comments contract.ICommentRepository,
	uuidgen contract.IUUIDGenerator,
	logger usecasecontract.IAppLogger,
) *Importer {
	return &Importer{
		users:    users,
		taxonomy: taxonomy,
		titles:   titles,
		reviews:  reviews,
		comments: comments,
		uuidgen:  uuidgen,
		logger:   logger,
		now:      time.Now,
	}
}

// run holds the fixture-id to store-id mappings of one import.
type run struct {
	users      map[string]string
	categories map[string]string // fixture id -> slug
	genres     map[string]string // fixture id -> slug
	titles     map[string]string
	reviews    map[string]string
	stats      Stats
}

// Import reads every known fixture from dir. Missing files are skipped.
func (im *Importer) Import(ctx context.Context, dir fs.FS) (Stats, error) {
	r := &run{
		users:      map[string]string{},
		categories: map[string]string{},
		genres:     map[string]string{},
		titles:     map[string]string{},
		reviews:    map[string]string{},
	}
	steps := []struct {
		files []string
		load  func(context.Context, *run, []record) error
	}{
		{usersFiles, im.loadUsers},
		{categoryFiles, im.loadTerms(entity.TaxonomyCategory)},
		{genreFiles, im.loadTerms(entity.TaxonomyGenre)},
	}
	for _, step := range steps {
		if err := im.step(ctx, dir, r, step.files, step.load); err != nil {
			return r.stats, err
		}
	}

	// genre links must be known before titles are written
	links := map[string][]string{}
	if name, recs, err := readFirst(dir, genreTitleFiles); err != nil {
		return r.stats, err
	} else if name != "" {
		for _, rec := range recs {
			slug, ok := r.genres[rec.get("genre_id")]
			if !ok {
				return r.stats, rec.errorf("unknown genre_id %q", rec.get("genre_id"))
			}
			titleID := rec.get("title_id")
			links[titleID] = append(links[titleID], slug)
		}
	}
	if err := im.step(ctx, dir, r, titleFiles, func(ctx context.Context, r *run, recs []record) error {
		return im.loadTitles(ctx, r, recs, links)
	}); err != nil {
		return r.stats, err
	}
	if err := im.step(ctx, dir, r, reviewFiles, im.loadReviews); err != nil {
		return r.stats, err
	}
	if err := im.step(ctx, dir, r, commentFiles, im.loadComments); err != nil {
		return r.stats, err
	}
	return r.stats, nil
}

func (im *Importer) step(ctx context.Context, dir fs.FS, r *run, files []string, load func(context.Context, *run, []record) error) error {
	name, recs, err := readFirst(dir, files)
	if err != nil {
		return err
	}
	if name == "" {
		im.logger.Warnf("csv import: none of %v found, skipping", files)
		return nil
	}
	if err := load(ctx, r, recs); err != nil {
		return err
	}
	im.logger.Infof("csv import: %s loaded (%d rows)", name, len(recs))
	return nil
}

func (im *Importer) loadUsers(ctx context.Context, r *run, recs []record) error {
	now := im.now().UTC()
	for _, rec := range recs {
		role := entity.UserRole(rec.get("role"))
		if role == "" {
			role = entity.DefaultRole()
		}
		if !role.Valid() {
			return rec.errorf("unknown role %q", role)
		}
		user := &entity.User{
			ID:        im.uuidgen.NewUUID(),
			Username:  rec.get("username"),
			Email:     rec.get("email"),
			Role:      role,
			Bio:       rec.get("bio"),
			FirstName: rec.get("first_name"),
			LastName:  rec.get("last_name"),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := im.users.CreateUser(ctx, user); err != nil {
			return rec.wrap("create user", err)
		}
		r.users[rec.get("id")] = user.ID
		r.stats.Users++
	}
	return nil
}

func (im *Importer) loadTerms(kind entity.TaxonomyKind) func(context.Context, *run, []record) error {
	return func(ctx context.Context, r *run, recs []record) error {
		ids := r.categories
		if kind == entity.TaxonomyGenre {
			ids = r.genres
		}
		for _, rec := range recs {
			term := &entity.Term{Name: rec.get("name"), Slug: rec.get("slug")}
			if err := im.taxonomy.Create(ctx, kind, term); err != nil {
				return rec.wrap("create "+string(kind), err)
			}
			ids[rec.get("id")] = term.Slug
			if kind == entity.TaxonomyGenre {
				r.stats.Genres++
			} else {
				r.stats.Categories++
			}
		}
		return nil
	}
}

func (im *Importer) loadTitles(ctx context.Context, r *run, recs []record, links map[string][]string) error {
	now := im.now().UTC()
	for _, rec := range recs {
		year, err := strconv.Atoi(rec.get("year"))
		if err != nil {
			return rec.errorf("year %q is not a number", rec.get("year"))
		}
		title := &entity.Title{
			ID:         im.uuidgen.NewUUID(),
			Name:       rec.get("name"),
			Year:       year,
			GenreSlugs: links[rec.get("id")],
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if d := rec.get("description"); d != "" {
			title.Description = &d
		}
		if catID := rec.get("category"); catID != "" {
			slug, ok := r.categories[catID]
			if !ok {
				return rec.errorf("unknown category %q", catID)
			}
			title.CategorySlug = &slug
		}
		if err := im.titles.CreateTitle(ctx, title); err != nil {
			return rec.wrap("create title", err)
		}
		r.titles[rec.get("id")] = title.ID
		r.stats.Titles++
	}
	return nil
}

func (im *Importer) loadReviews(ctx context.Context, r *run, recs []record) error {
	for _, rec := range recs {
		titleID, ok := r.titles[rec.get("title_id")]
		if !ok {
			return rec.errorf("unknown title_id %q", rec.get("title_id"))
		}
		authorID, ok := r.users[rec.get("author")]
		if !ok {
			return rec.errorf("unknown author %q", rec.get("author"))
		}
		score, err := strconv.Atoi(rec.get("score"))
		if err != nil || !entity.ValidScore(score) {
			return rec.errorf("score %q out of range", rec.get("score"))
		}
		pub, err := rec.time("pub_date", im.now)
		if err != nil {
			return err
		}
		review := &entity.Review{
			ID:       im.uuidgen.NewUUID(),
			TitleID:  titleID,
			AuthorID: authorID,
			Text:     rec.get("text"),
			Score:    score,
			PubDate:  pub,
		}
		if err := im.reviews.Create(ctx, review); err != nil {
			return rec.wrap("create review", err)
		}
		r.reviews[rec.get("id")] = review.ID
		r.stats.Reviews++
	}
	return nil
}

func (im *Importer) loadComments(ctx context.Context, r *run, recs []record) error {
	for _, rec := range recs {
		reviewID, ok := r.reviews[rec.get("review_id")]
		if !ok {
			return rec.errorf("unknown review_id %q", rec.get("review_id"))
		}
		authorID, ok := r.users[rec.get("author")]
		if !ok {
			return rec.errorf("unknown author %q", rec.get("author"))
		}
		pub, err := rec.time("pub_date", im.now)
		if err != nil {
			return err
		}
		comment := &entity.Comment{
			ID:       im.uuidgen.NewUUID(),
			ReviewID: reviewID,
			AuthorID: authorID,
			Text:     rec.get("text"),
			PubDate:  pub,
		}
		if err := im.comments.Create(ctx, comment); err != nil {
			return rec.wrap("create comment", err)
		}
		r.stats.Comments++
	}
	return nil
}

// record is one CSV row addressed by header name.
type record struct {
	file   string
	line   int
	fields map[string]string
}

func (rec record) get(col string) string {
	return strings.TrimSpace(rec.fields[col])
}

func (rec record) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%s:%d: %s", rec.file, rec.line, fmt.Sprintf(format, args...))
}

func (rec record) wrap(op string, err error) error {
	return fmt.Errorf("%s:%d: %s: %w", rec.file, rec.line, op, err)
}

// time parses an RFC 3339 column; an empty value means now.
func (rec record) time(col string, now func() time.Time) (time.Time, error) {
	v := rec.get(col)
	if v == "" {
		return now().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, rec.errorf("%s %q is not an RFC 3339 time", col, v)
	}
	return t.UTC(), nil
}

// readFirst reads the first existing file among names. It returns an empty
// name when none exists.
func readFirst(dir fs.FS, names []string) (string, []record, error) {
	for _, name := range names {
		f, err := dir.Open(name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", nil, fmt.Errorf("open %s: %w", name, err)
		}
		recs, err := readRecords(name, f)
		_ = f.Close()
		if err != nil {
			return "", nil, err
		}
		return name, recs, nil
	}
	return "", nil, nil
}

func readRecords(name string, r io.Reader) ([]record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: read header: %w", name, err)
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	var recs []record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return recs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", name, line, err)
		}
		fields := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(row) {
				fields[strings.TrimSpace(col)] = row[i]
			}
		}
		recs = append(recs, record{file: name, line: line, fields: fields})
	}
}
