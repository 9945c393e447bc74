package mongodb

import (
	"context"
	"fmt"

	"github.com/mikiasgoitom/yamdb/internal/domain/contract"
	"github.com/mikiasgoitom/yamdb/internal/domain/entity"
	"github.com/mikiasgoitom/yamdb/internal/infrastructure/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReviewRepository implements contract.IReviewRepository. The unique
// (author_id, title_id) index backs the one-review-per-title rule.
type ReviewRepository struct {
	collection *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{collection: db.Collection(database.ReviewsCollection)}
}

var _ contract.IReviewRepository = (*ReviewRepository)(nil)

func (r *ReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	doc := *review
	doc.AuthorUsername = ""
	if _, err := r.collection.InsertOne(ctx, &doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return entity.ErrDuplicateReview
		}
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *ReviewRepository) findOne(ctx context.Context, filter bson.M) (*entity.Review, error) {
	pipeline := mongo.Pipeline{{{Key: "$match", Value: filter}}, {{Key: "$limit", Value: 1}}}
	pipeline = append(pipeline, authorStages()...)
	reviews, err := r.aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return nil, entity.ErrNotFound
	}
	return reviews[0], nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *ReviewRepository) GetInTitle(ctx context.Context, titleID, reviewID string) (*entity.Review, error) {
	return r.findOne(ctx, bson.M{"_id": reviewID, "title_id": titleID})
}

// ListByTitle returns the newest reviews of a title first.
func (r *ReviewRepository) ListByTitle(ctx context.Context, titleID string, p contract.Pagination) ([]*entity.Review, int64, error) {
	filter := bson.M{"title_id": titleID}
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$sort", Value: newestFirst}},
	}
	pipeline = append(pipeline, pageStages(p)...)
	pipeline = append(pipeline, authorStages()...)
	reviews, err := r.aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

func (r *ReviewRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]*entity.Review, error) {
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []*entity.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}

// Update writes text and score; ownership fields never change.
func (r *ReviewRepository) Update(ctx context.Context, review *entity.Review) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": review.ID},
		bson.M{"$set": bson.M{"text": review.Text, "score": review.Score}},
	)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}
	if res.MatchedCount == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if res.DeletedCount == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *ReviewRepository) ExistsByAuthorAndTitle(ctx context.Context, authorID, titleID string) (bool, error) {
	n, err := r.collection.CountDocuments(ctx,
		bson.M{"author_id": authorID, "title_id": titleID},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, fmt.Errorf("failed to check review: %w", err)
	}
	return n > 0, nil
}

func (r *ReviewRepository) ids(ctx context.Context, filter bson.M) ([]string, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to collect review ids: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID string `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode review ids: %w", err)
	}
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	return ids, nil
}

func (r *ReviewRepository) IDsByTitle(ctx context.Context, titleID string) ([]string, error) {
	return r.ids(ctx, bson.M{"title_id": titleID})
}

func (r *ReviewRepository) IDsByAuthor(ctx context.Context, authorID string) ([]string, error) {
	return r.ids(ctx, bson.M{"author_id": authorID})
}

func (r *ReviewRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}}); err != nil {
		return fmt.Errorf("failed to delete reviews: %w", err)
	}
	return nil
}
