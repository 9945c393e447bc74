package dto

import "github.com/mikiasgoitom/yamdb/internal/domain/entity"

// TermRequest creates a category or a genre.
type TermRequest struct {
	Name string `json:"name" binding:"required,max=256"`
	Slug string `json:"slug" binding:"required,max=50,slug"`
}

type TermResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func ToTermResponse(term *entity.Term) TermResponse {
	return TermResponse{Name: term.Name, Slug: term.Slug}
}

func ToTermResponses(terms []*entity.Term) []TermResponse {
	out := make([]TermResponse, 0, len(terms))
	for _, t := range terms {
		out = append(out, ToTermResponse(t))
	}
	return out
}
