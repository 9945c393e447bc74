package entity

import "time"

const (
	MinScore = 1
	MaxScore = 10
)

// Review is a user's scored opinion of a Title. One per (author, title).
type Review struct {
	ID             string    `bson:"_id,omitempty" json:"id"`
	TitleID        string    `bson:"title_id" json:"-"`
	AuthorID       string    `bson:"author_id" json:"-"`
	AuthorUsername string    `bson:"author_username,omitempty" json:"author"`
	Text           string    `bson:"text" json:"text"`
	Score          int       `bson:"score" json:"score"`
	PubDate        time.Time `bson:"pub_date" json:"pub_date"`
}

// ValidScore reports whether score is within the allowed range.
func ValidScore(score int) bool {
	return score >= MinScore && score <= MaxScore
}
