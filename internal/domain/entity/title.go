package entity

import "time"

// Title is a reviewable work. Category and genres are referenced by slug.
type Title struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Year         int       `bson:"year" json:"year"`
	Description  *string   `bson:"description,omitempty" json:"description"`
	CategorySlug *string   `bson:"category_slug" json:"category"`
	GenreSlugs   []string  `bson:"genre_slugs" json:"genre"`
	CreatedAt    time.Time `bson:"created_at" json:"-"`
	UpdatedAt    time.Time `bson:"updated_at" json:"-"`
}

// TitleView is a Title with its references expanded and its rating computed.
// It is never persisted.
type TitleView struct {
	ID          string    `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Year        int       `bson:"year" json:"year"`
	Rating      *float64  `bson:"rating" json:"rating"`
	Description *string   `bson:"description,omitempty" json:"description"`
	Genres      []Genre   `bson:"genres" json:"genre"`
	Category    *Category `bson:"category,omitempty" json:"category"`
}

// AverageScore returns the arithmetic mean of scores, or nil when there are none.
func AverageScore(scores []int) *float64 {
	if len(scores) == 0 {
		return nil
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	avg := float64(sum) / float64(len(scores))
	return &avg
}
