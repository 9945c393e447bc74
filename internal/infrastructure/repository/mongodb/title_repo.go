package mongodb

import (
	"context"
	"fmt"

	"github.com/mikiasgoitom/yamdb/internal/domain/contract"
	"github.com/mikiasgoitom/yamdb/internal/domain/entity"
	"github.com/mikiasgoitom/yamdb/internal/infrastructure/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// TitleRepository represents the MongoDB implementation of the ITitleRepository interface.
type TitleRepository struct {
	collection *mongo.Collection
}

// NewTitleRepository creates and returns a new TitleRepository instance.
func NewTitleRepository(db *mongo.Database) *TitleRepository {
	return &TitleRepository{collection: db.Collection(database.TitlesCollection)}
}

var _ contract.ITitleRepository = (*TitleRepository)(nil)

// buildTitleFilter turns the optional filters into one conjunctive match.
func buildTitleFilter(opts *contract.TitleFilterOptions) bson.M {
	filter := bson.M{}
	if opts == nil {
		return filter
	}
	if opts.GenreSlug != nil {
		filter["genre_slugs"] = *opts.GenreSlug
	}
	if opts.CategorySlug != nil {
		filter["category_slug"] = *opts.CategorySlug
	}
	if opts.Year != nil {
		filter["year"] = *opts.Year
	}
	if opts.Name != nil && *opts.Name != "" {
		filter["name"] = containsPattern(*opts.Name, false)
	}
	return filter
}

// titleOrder is newest year first, then by name.
var titleOrder = bson.D{{Key: "year", Value: -1}, {Key: "name", Value: 1}, {Key: "_id", Value: 1}}

// viewStages expand category and genres and compute the rating from the
// title's reviews. $avg over an empty array yields null.
func viewStages() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.M{
			"from":         database.ReviewsCollection,
			"localField":   "_id",
			"foreignField": "title_id",
			"as":           "reviews",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         database.CategoriesCollection,
			"localField":   "category_slug",
			"foreignField": "slug",
			"as":           "category",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         database.GenresCollection,
			"localField":   "genre_slugs",
			"foreignField": "slug",
			"as":           "genres",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"rating":   bson.M{"$avg": "$reviews.score"},
			"category": bson.M{"$arrayElemAt": bson.A{"$category", 0}},
			"genres":   genresInStoredOrder(),
		}}},
		{{Key: "$project", Value: bson.M{
			"reviews":       0,
			"genre_slugs":   0,
			"category_slug": 0,
			"genres._id":    0,
			"category._id":  0,
		}}},
	}
}

// genresInStoredOrder rebuilds the looked-up genres in genre_slugs order;
// $lookup returns them in collection order. Slugs without a genre are dropped.
func genresInStoredOrder() bson.M {
	return bson.M{"$filter": bson.M{
		"input": bson.M{"$map": bson.M{
			"input": "$genre_slugs",
			"as":    "slug",
			"in": bson.M{"$arrayElemAt": bson.A{
				bson.M{"$filter": bson.M{
					"input": "$genres",
					"as":    "g",
					"cond":  bson.M{"$eq": bson.A{"$$g.slug", "$$slug"}},
				}},
				0,
			}},
		}},
		"as":   "g",
		"cond": bson.M{"$ne": bson.A{"$$g", nil}},
	}}
}

// titleViewPipeline filters and pages before the lookups so only the
// returned page pays for rating computation.
func titleViewPipeline(filter bson.M, p *contract.Pagination) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$sort", Value: titleOrder}},
	}
	if p != nil {
		pipeline = append(pipeline, pageStages(*p)...)
	}
	return append(pipeline, viewStages()...)
}

// CreateTitle inserts a new title record into the database.
func (r *TitleRepository) CreateTitle(ctx context.Context, title *entity.Title) error {
	if title.GenreSlugs == nil {
		title.GenreSlugs = []string{}
	}
	if _, err := r.collection.InsertOne(ctx, title); err != nil {
		return fmt.Errorf("failed to create title: %w", err)
	}
	return nil
}

func (r *TitleRepository) GetTitleByID(ctx context.Context, id string) (*entity.Title, error) {
	var title entity.Title
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&title); err != nil {
		return nil, notFoundOr(err)
	}
	return &title, nil
}

func (r *TitleRepository) GetTitleView(ctx context.Context, id string) (*entity.TitleView, error) {
	views, err := r.aggregate(ctx, titleViewPipeline(bson.M{"_id": id}, nil))
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, entity.ErrNotFound
	}
	return views[0], nil
}

// ListTitleViews returns one page of matching titles and the total match count.
func (r *TitleRepository) ListTitleViews(ctx context.Context, opts *contract.TitleFilterOptions) ([]*entity.TitleView, int64, error) {
	filter := buildTitleFilter(opts)
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count titles: %w", err)
	}
	var page *contract.Pagination
	if opts != nil {
		page = &opts.Pagination
	}
	views, err := r.aggregate(ctx, titleViewPipeline(filter, page))
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

func (r *TitleRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]*entity.TitleView, error) {
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate titles: %w", err)
	}
	defer cursor.Close(ctx)

	views := []*entity.TitleView{}
	if err := cursor.All(ctx, &views); err != nil {
		return nil, fmt.Errorf("failed to decode titles: %w", err)
	}
	for _, v := range views {
		if v.Genres == nil {
			v.Genres = []entity.Genre{}
		}
	}
	return views, nil
}

// UpdateTitle overwrites the writable fields of an existing title.
func (r *TitleRepository) UpdateTitle(ctx context.Context, title *entity.Title) error {
	update := bson.M{"$set": bson.M{
		"name":          title.Name,
		"year":          title.Year,
		"description":   title.Description,
		"category_slug": title.CategorySlug,
		"genre_slugs":   title.GenreSlugs,
		"updated_at":    title.UpdatedAt,
	}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": title.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update title: %w", err)
	}
	if res.MatchedCount == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *TitleRepository) DeleteTitle(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete title: %w", err)
	}
	if res.DeletedCount == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *TitleRepository) UnsetCategory(ctx context.Context, slug string) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"category_slug": slug},
		bson.M{"$set": bson.M{"category_slug": nil}},
	)
	if err != nil {
		return fmt.Errorf("failed to unset category %q: %w", slug, err)
	}
	return nil
}

func (r *TitleRepository) PullGenre(ctx context.Context, slug string) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"genre_slugs": slug},
		bson.M{"$pull": bson.M{"genre_slugs": slug}},
	)
	if err != nil {
		return fmt.Errorf("failed to pull genre %q: %w", slug, err)
	}
	return nil
}
