package entity

import "time"

// Comment is a reply to a Review.
type Comment struct {
	ID             string    `bson:"_id,omitempty" json:"id"`
	ReviewID       string    `bson:"review_id" json:"-"`
	AuthorID       string    `bson:"author_id" json:"-"`
	AuthorUsername string    `bson:"author_username,omitempty" json:"author"`
	Text           string    `bson:"text" json:"text"`
	PubDate        time.Time `bson:"pub_date" json:"pub_date"`
}
