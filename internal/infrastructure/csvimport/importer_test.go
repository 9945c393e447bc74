package csvimport

import (
	"context"
	"fmt"
	"testing"
	"testing/fstest"
	"time"

	"github.com/mikiasgoitom/yamdb/internal/domain/contract"
	"github.com/mikiasgoitom/yamdb/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	contract.IUserRepository
	created []*entity.User
}

func (f *fakeUsers) CreateUser(_ context.Context, u *entity.User) error {
	for _, existing := range f.created {
		if existing.Username == u.Username || existing.Email == u.Email {
			return entity.ErrConflict
		}
	}
	f.created = append(f.created, u)
	return nil
}

type fakeTaxonomy struct {
	contract.ITaxonomyRepository
	terms map[entity.TaxonomyKind][]*entity.Term
}

func (f *fakeTaxonomy) Create(_ context.Context, kind entity.TaxonomyKind, term *entity.Term) error {
	if f.terms == nil {
		f.terms = map[entity.TaxonomyKind][]*entity.Term{}
	}
	f.terms[kind] = append(f.terms[kind], term)
	return nil
}

type fakeTitles struct {
	contract.ITitleRepository
	created []*entity.Title
}

func (f *fakeTitles) CreateTitle(_ context.Context, t *entity.Title) error {
	f.created = append(f.created, t)
	return nil
}

type fakeReviews struct {
	contract.IReviewRepository
	created []*entity.Review
}

func (f *fakeReviews) Create(_ context.Context, r *entity.Review) error {
	for _, existing := range f.created {
		if existing.AuthorID == r.AuthorID && existing.TitleID == r.TitleID {
			return entity.ErrDuplicateReview
		}
	}
	f.created = append(f.created, r)
	return nil
}

type fakeComments struct {
	contract.ICommentRepository
	created []*entity.Comment
}

func (f *fakeComments) Create(_ context.Context, c *entity.Comment) error {
	f.created = append(f.created, c)
	return nil
}

type seqUUID struct{ n int }

func (s *seqUUID) NewUUID() string {
	s.n++
	return fmt.Sprintf("id-%03d", s.n)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}
func (nopLogger) Fatalf(string, ...interface{}) {}

type stores struct {
	users    *fakeUsers
	taxonomy *fakeTaxonomy
	titles   *fakeTitles
	reviews  *fakeReviews
	comments *fakeComments
}

func newImporter() (*Importer, *stores) {
	s := &stores{
		users:    &fakeUsers{},
		taxonomy: &fakeTaxonomy{},
		titles:   &fakeTitles{},
		reviews:  &fakeReviews{},
		comments: &fakeComments{},
	}
	im := NewImporter(s.users, s.taxonomy, s.titles, s.reviews, s.comments, &seqUUID{}, nopLogger{})
	im.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	return im, s
}

func file(data string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(data)}
}

func fixtures() fstest.MapFS {
	return fstest.MapFS{
		"users.csv": file("id,username,email,role,bio,first_name,last_name\n" +
			"100,bingobongo,bingobongo@yamdb.fake,user,,,\n" +
			"101,capt_obvious,capt_obvious@yamdb.fake,admin,,Captain,\n" +
			"102,faust,faust@yamdb.fake,moderator,\"bio, with comma\",,\n"),
		"category.csv": file("id,name,slug\n1,Фильм,movie\n2,Книга,book\n"),
		"genre.csv":    file("id,name,slug\n1,Драма,drama\n2,Комедия,comedy\n"),
		"titles.csv":   file("id,name,year,category\n1,Побег из Шоушенка,1994,1\n2,Гарри Поттер,2000,2\n"),
		"genre_title.csv": file("id,title_id,genre_id\n" +
			"1,1,1\n2,2,1\n3,2,2\n"),
		"review.csv": file("id,title_id,text,author,score,pub_date\n" +
			"1,1,Ну такое,100,5,2019-09-24T21:08:21.567Z\n" +
			"2,1,Шедевр,101,10,2019-09-24T21:08:21.567Z\n"),
		"comments.csv": file("id,review_id,text,author,pub_date\n" +
			"1,1,Согласен,102,2019-09-24T21:08:21.567Z\n"),
	}
}

func TestImportFullFixtureSet(t *testing.T) {
	im, s := newImporter()

	stats, err := im.Import(context.Background(), fixtures())
	require.NoError(t, err)
	assert.Equal(t, Stats{Users: 3, Categories: 2, Genres: 2, Titles: 2, Reviews: 2, Comments: 1}, stats)

	require.Len(t, s.users.created, 3)
	assert.Equal(t, entity.UserRoleAdmin, s.users.created[1].Role)
	assert.Equal(t, "Captain", s.users.created[1].FirstName)
	assert.Equal(t, "bio, with comma", s.users.created[2].Bio)
	assert.False(t, s.users.created[0].IsActive)

	require.Len(t, s.titles.created, 2)
	potter := s.titles.created[1]
	assert.Equal(t, 2000, potter.Year)
	require.NotNil(t, potter.CategorySlug)
	assert.Equal(t, "book", *potter.CategorySlug)
	assert.Equal(t, []string{"drama", "comedy"}, potter.GenreSlugs)

	require.Len(t, s.reviews.created, 2)
	first := s.reviews.created[0]
	assert.Equal(t, s.titles.created[0].ID, first.TitleID)
	assert.Equal(t, s.users.created[0].ID, first.AuthorID)
	assert.Equal(t, 2019, first.PubDate.Year())

	require.Len(t, s.comments.created, 1)
	assert.Equal(t, first.ID, s.comments.created[0].ReviewID)
	assert.Equal(t, s.users.created[2].ID, s.comments.created[0].AuthorID)
}

func TestImportSkipsMissingFiles(t *testing.T) {
	im, s := newImporter()
	dir := fstest.MapFS{
		"genres.csv": file("id,name,slug\n1,Рок,rock\n"),
	}

	stats, err := im.Import(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, Stats{Genres: 1}, stats)
	assert.Equal(t, "rock", s.taxonomy.terms[entity.TaxonomyGenre][0].Slug)
}

func TestImportTitleWithoutCategory(t *testing.T) {
	im, s := newImporter()
	dir := fstest.MapFS{
		"titles.csv": file("id,name,year,category\n1,Untitled,1999,\n"),
	}

	_, err := im.Import(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, s.titles.created, 1)
	assert.Nil(t, s.titles.created[0].CategorySlug)
	assert.Empty(t, s.titles.created[0].GenreSlugs)
}

func TestImportReportsBrokenRows(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(fstest.MapFS)
		message string
	}{
		{
			name: "unknown category",
			mutate: func(d fstest.MapFS) {
				d["titles.csv"] = file("id,name,year,category\n1,X,1994,9\n")
			},
			message: "titles.csv:2: unknown category",
		},
		{
			name: "bad year",
			mutate: func(d fstest.MapFS) {
				d["titles.csv"] = file("id,name,year,category\n1,X,soon,1\n")
			},
			message: "titles.csv:2: year",
		},
		{
			name: "score out of range",
			mutate: func(d fstest.MapFS) {
				d["review.csv"] = file("id,title_id,text,author,score,pub_date\n1,1,t,100,11,\n")
			},
			message: "review.csv:2: score",
		},
		{
			name: "unknown author",
			mutate: func(d fstest.MapFS) {
				d["review.csv"] = file("id,title_id,text,author,score,pub_date\n1,1,t,999,5,\n")
			},
			message: "review.csv:2: unknown author",
		},
		{
			name: "unknown genre link",
			mutate: func(d fstest.MapFS) {
				d["genre_title.csv"] = file("id,title_id,genre_id\n1,1,7\n")
			},
			message: "genre_title.csv:2: unknown genre_id",
		},
		{
			name: "unknown role",
			mutate: func(d fstest.MapFS) {
				d["users.csv"] = file("id,username,email,role\n1,a,a@b.c,staff\n")
			},
			message: "users.csv:2: unknown role",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			im, _ := newImporter()
			dir := fixtures()
			tt.mutate(dir)

			_, err := im.Import(context.Background(), dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestImportDuplicateReviewIsWrapped(t *testing.T) {
	im, _ := newImporter()
	dir := fixtures()
	dir["review.csv"] = file("id,title_id,text,author,score,pub_date\n" +
		"1,1,a,100,5,\n" +
		"2,1,b,100,6,\n")

	_, err := im.Import(context.Background(), dir)
	assert.ErrorIs(t, err, entity.ErrDuplicateReview)
	assert.Contains(t, err.Error(), "review.csv:3")
}

func TestImportEmptyPubDateUsesNow(t *testing.T) {
	im, s := newImporter()
	dir := fixtures()
	delete(dir, "comments.csv")
	dir["review.csv"] = file("id,title_id,text,author,score,pub_date\n1,1,a,100,5,\n")

	_, err := im.Import(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, im.now(), s.reviews.created[0].PubDate)
}
