package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/yamdb/internal/handler/http/dto"
	usecasecontract "github.com/mikiasgoitom/yamdb/internal/usecase/contract"
)

type TitleHandler struct {
	paginator
	titleUC usecasecontract.ITitleUseCase
}

func NewTitleHandler(titleUC usecasecontract.ITitleUseCase, pageSize int) *TitleHandler {
	return &TitleHandler{
		paginator: paginator{pageSize: pageSize},
		titleUC:   titleUC,
	}
}

// ListTitles applies the genre, category, year and name filters together.
func (h *TitleHandler) ListTitles(c *gin.Context) {
	page, ok := h.page(c)
	if !ok {
		return
	}
	filter := usecasecontract.TitleFilter{Page: page}
	if v, ok := c.GetQuery("genre"); ok {
		filter.Genre = &v
	}
	if v, ok := c.GetQuery("category"); ok {
		filter.Category = &v
	}
	if v, ok := c.GetQuery("name"); ok {
		filter.Name = &v
	}
	if v, ok := c.GetQuery("year"); ok {
		year, err := strconv.Atoi(v)
		if err != nil {
			FieldErrorHandler(c, map[string][]string{"year": {"enter a whole number"}})
			return
		}
		filter.Year = &year
	}

	titles, total, err := h.titleUC.ListTitles(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}
	h.respond(c, page, total, dto.ToTitleResponses(titles))
}

func (h *TitleHandler) GetTitle(c *gin.Context) {
	view, err := h.titleUC.GetTitle(c.Request.Context(), c.Param("title_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToTitleResponse(view))
}

func (h *TitleHandler) CreateTitle(c *gin.Context) {
	var req dto.TitleRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	view, err := h.titleUC.CreateTitle(c.Request.Context(), req.ToInput())
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusCreated, dto.ToTitleResponse(view))
}

// UpdateTitle serves both PUT and PATCH; PUT requires the same fields as create.
func (h *TitleHandler) UpdateTitle(c *gin.Context) {
	var req dto.TitleRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	view, err := h.titleUC.UpdateTitle(c.Request.Context(), c.Param("title_id"), req.ToInput(), c.Request.Method == http.MethodPut)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToTitleResponse(view))
}

func (h *TitleHandler) DeleteTitle(c *gin.Context) {
	if err := h.titleUC.DeleteTitle(c.Request.Context(), c.Param("title_id")); err != nil {
		HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
