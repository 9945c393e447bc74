package entity

// Term is the shared shape of categories and genres: a display name and a
// unique, immutable slug.
type Term struct {
	Name string `bson:"name" json:"name"`
	Slug string `bson:"slug" json:"slug"`
}

// Category is the single-valued classification of a Title.
type Category = Term

// Genre is a multi-valued classification of a Title.
type Genre = Term

// TaxonomyKind selects which collection a Term belongs to.
type TaxonomyKind string

const (
	TaxonomyCategory TaxonomyKind = "category"
	TaxonomyGenre    TaxonomyKind = "genre"
)

// NotFoundError returns the not-found sentinel for the kind.
func (k TaxonomyKind) NotFoundError() error {
	if k == TaxonomyGenre {
		return ErrGenreNotFound
	}
	return ErrCategoryNotFound
}
