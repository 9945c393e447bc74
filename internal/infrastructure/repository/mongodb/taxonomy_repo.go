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

// TaxonomyRepository stores categories and genres in two collections of the
// same shape.
type TaxonomyRepository struct {
	collections map[entity.TaxonomyKind]*mongo.Collection
}

// NewTaxonomyRepository creates and returns a new TaxonomyRepository instance.
func NewTaxonomyRepository(db *mongo.Database) *TaxonomyRepository {
	return &TaxonomyRepository{
		collections: map[entity.TaxonomyKind]*mongo.Collection{
			entity.TaxonomyCategory: db.Collection(database.CategoriesCollection),
			entity.TaxonomyGenre:    db.Collection(database.GenresCollection),
		},
	}
}

var _ contract.ITaxonomyRepository = (*TaxonomyRepository)(nil)

func (r *TaxonomyRepository) collection(kind entity.TaxonomyKind) (*mongo.Collection, error) {
	c, ok := r.collections[kind]
	if !ok {
		return nil, fmt.Errorf("unknown taxonomy %q", kind)
	}
	return c, nil
}

func (r *TaxonomyRepository) Create(ctx context.Context, kind entity.TaxonomyKind, term *entity.Term) error {
	c, err := r.collection(kind)
	if err != nil {
		return err
	}
	if _, err := c.InsertOne(ctx, term); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return entity.ErrConflict
		}
		return fmt.Errorf("failed to create %s: %w", kind, err)
	}
	return nil
}

func (r *TaxonomyRepository) GetBySlug(ctx context.Context, kind entity.TaxonomyKind, slug string) (*entity.Term, error) {
	c, err := r.collection(kind)
	if err != nil {
		return nil, err
	}
	var term entity.Term
	if err := c.FindOne(ctx, bson.M{"slug": slug}).Decode(&term); err != nil {
		return nil, notFoundOr(err)
	}
	return &term, nil
}

func (r *TaxonomyRepository) GetBySlugs(ctx context.Context, kind entity.TaxonomyKind, slugs []string) ([]*entity.Term, error) {
	c, err := r.collection(kind)
	if err != nil {
		return nil, err
	}
	cursor, err := c.Find(ctx, bson.M{"slug": bson.M{"$in": slugs}})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve %s terms: %w", kind, err)
	}
	defer cursor.Close(ctx)

	terms := []*entity.Term{}
	if err := cursor.All(ctx, &terms); err != nil {
		return nil, fmt.Errorf("failed to decode %s terms: %w", kind, err)
	}
	return terms, nil
}

// List pages through terms ordered by name; search matches the name.
func (r *TaxonomyRepository) List(ctx context.Context, kind entity.TaxonomyKind, search string, p contract.Pagination) ([]*entity.Term, int64, error) {
	c, err := r.collection(kind)
	if err != nil {
		return nil, 0, err
	}
	filter := bson.M{}
	if search != "" {
		filter["name"] = containsPattern(search, true)
	}
	total, err := c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count %s terms: %w", kind, err)
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}, {Key: "slug", Value: 1}}).
		SetSkip(p.Skip())
	if p.PageSize > 0 {
		findOpts.SetLimit(p.Limit())
	}
	cursor, err := c.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list %s terms: %w", kind, err)
	}
	defer cursor.Close(ctx)

	terms := []*entity.Term{}
	if err := cursor.All(ctx, &terms); err != nil {
		return nil, 0, fmt.Errorf("failed to decode %s terms: %w", kind, err)
	}
	return terms, total, nil
}

func (r *TaxonomyRepository) Delete(ctx context.Context, kind entity.TaxonomyKind, slug string) error {
	c, err := r.collection(kind)
	if err != nil {
		return err
	}
	res, err := c.DeleteOne(ctx, bson.M{"slug": slug})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", kind, err)
	}
	if res.DeletedCount == 0 {
		return entity.ErrNotFound
	}
	return nil
}
