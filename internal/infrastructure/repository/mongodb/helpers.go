package mongodb

import (
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mikiasgoitom/yamdb/internal/domain/contract"
	"github.com/mikiasgoitom/yamdb/internal/domain/entity"
	"github.com/mikiasgoitom/yamdb/internal/infrastructure/database"
)

// notFoundOr maps mongo.ErrNoDocuments onto entity.ErrNotFound.
func notFoundOr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return entity.ErrNotFound
	}
	return err
}

// containsPattern matches s literally anywhere in a field.
func containsPattern(s string, caseInsensitive bool) bson.M {
	m := bson.M{"$regex": regexp.QuoteMeta(s)}
	if caseInsensitive {
		m["$options"] = "i"
	}
	return m
}

// pageStages returns $skip/$limit for p; a zero page size means no limit.
func pageStages(p contract.Pagination) []bson.D {
	stages := []bson.D{}
	if skip := p.Skip(); skip > 0 {
		stages = append(stages, bson.D{{Key: "$skip", Value: skip}})
	}
	if p.PageSize > 0 {
		stages = append(stages, bson.D{{Key: "$limit", Value: p.Limit()}})
	}
	return stages
}

// authorStages resolves author_id to the author's current username.
func authorStages() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.M{
			"from":         database.UsersCollection,
			"localField":   "author_id",
			"foreignField": "_id",
			"as":           "author",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"author_username": bson.M{"$ifNull": bson.A{bson.M{"$arrayElemAt": bson.A{"$author.username", 0}}, ""}},
		}}},
		{{Key: "$project", Value: bson.M{"author": 0}}},
	}
}

// newestFirst orders by publication date with the id as tiebreaker so pages
// never overlap.
var newestFirst = bson.D{{Key: "pub_date", Value: -1}, {Key: "_id", Value: -1}}
