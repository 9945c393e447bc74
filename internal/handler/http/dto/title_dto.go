package dto

import (
	"github.com/mikiasgoitom/yamdb/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/yamdb/internal/usecase/contract"
)

// TitleRequest is the write representation: genres and category by slug.
// A nil Genre means the field was absent; an empty one clears the genres.
type TitleRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=256"`
	Year        *int     `json:"year" binding:"omitempty,notfutureyear"`
	Description *string  `json:"description"`
	Genre       []string `json:"genre"`
	Category    *string  `json:"category" binding:"omitempty,max=50"`
}

// TitleResponse is the read representation with expanded references.
type TitleResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Year        int            `json:"year"`
	Rating      *float64       `json:"rating"`
	Description *string        `json:"description"`
	Genre       []TermResponse `json:"genre"`
	Category    *TermResponse  `json:"category"`
}

func (r TitleRequest) ToInput() usecasecontract.TitleInput {
	return usecasecontract.TitleInput{
		Name:        r.Name,
		Year:        r.Year,
		Description: r.Description,
		Genre:       r.Genre,
		GenreSet:    r.Genre != nil,
		Category:    r.Category,
	}
}

func ToTitleResponse(view *entity.TitleView) TitleResponse {
	resp := TitleResponse{
		ID:          view.ID,
		Name:        view.Name,
		Year:        view.Year,
		Rating:      view.Rating,
		Description: view.Description,
		Genre:       make([]TermResponse, 0, len(view.Genres)),
	}
	for i := range view.Genres {
		resp.Genre = append(resp.Genre, ToTermResponse(&view.Genres[i]))
	}
	if view.Category != nil {
		category := ToTermResponse(view.Category)
		resp.Category = &category
	}
	return resp
}

func ToTitleResponses(views []*entity.TitleView) []TitleResponse {
	out := make([]TitleResponse, 0, len(views))
	for _, v := range views {
		out = append(out, ToTitleResponse(v))
	}
	return out
}
