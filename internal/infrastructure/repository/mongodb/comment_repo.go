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

// CommentRepository implements contract.ICommentRepository.
type CommentRepository struct {
	collection *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{collection: db.Collection(database.CommentsCollection)}
}

var _ contract.ICommentRepository = (*CommentRepository)(nil)

func (r *CommentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	doc := *comment
	doc.AuthorUsername = ""
	if _, err := r.collection.InsertOne(ctx, &doc); err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, reviewID, commentID string) (*entity.Comment, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": commentID, "review_id": reviewID}}},
		{{Key: "$limit", Value: 1}},
	}
	pipeline = append(pipeline, authorStages()...)
	comments, err := r.aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		return nil, entity.ErrNotFound
	}
	return comments[0], nil
}

// ListByReview returns the newest comments on a review first.
func (r *CommentRepository) ListByReview(ctx context.Context, reviewID string, p contract.Pagination) ([]*entity.Comment, int64, error) {
	filter := bson.M{"review_id": reviewID}
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count comments: %w", err)
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$sort", Value: newestFirst}},
	}
	pipeline = append(pipeline, pageStages(p)...)
	pipeline = append(pipeline, authorStages()...)
	comments, err := r.aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *CommentRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]*entity.Comment, error) {
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate comments: %w", err)
	}
	defer cursor.Close(ctx)

	comments := []*entity.Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}
	return comments, nil
}

func (r *CommentRepository) Update(ctx context.Context, comment *entity.Comment) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": comment.ID},
		bson.M{"$set": bson.M{"text": comment.Text}},
	)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	if res.MatchedCount == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if res.DeletedCount == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *CommentRepository) DeleteByReviewIDs(ctx context.Context, reviewIDs []string) error {
	if len(reviewIDs) == 0 {
		return nil
	}
	if _, err := r.collection.DeleteMany(ctx, bson.M{"review_id": bson.M{"$in": reviewIDs}}); err != nil {
		return fmt.Errorf("failed to delete comments of reviews: %w", err)
	}
	return nil
}

func (r *CommentRepository) DeleteByAuthor(ctx context.Context, authorID string) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{"author_id": authorID}); err != nil {
		return fmt.Errorf("failed to delete comments of author: %w", err)
	}
	return nil
}
