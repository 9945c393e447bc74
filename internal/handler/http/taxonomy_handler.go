package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/yamdb/internal/domain/entity"
	"github.com/mikiasgoitom/yamdb/internal/handler/http/dto"
	usecasecontract "github.com/mikiasgoitom/yamdb/internal/usecase/contract"
)

// TaxonomyHandler serves one kind of term. Categories and genres each get
// their own instance.
type TaxonomyHandler struct {
	paginator
	kind       entity.TaxonomyKind
	taxonomyUC usecasecontract.ITaxonomyUseCase
}

func NewTaxonomyHandler(kind entity.TaxonomyKind, taxonomyUC usecasecontract.ITaxonomyUseCase, pageSize int) *TaxonomyHandler {
	return &TaxonomyHandler{
		paginator:  paginator{pageSize: pageSize},
		kind:       kind,
		taxonomyUC: taxonomyUC,
	}
}

func (h *TaxonomyHandler) List(c *gin.Context) {
	page, ok := h.page(c)
	if !ok {
		return
	}
	terms, total, err := h.taxonomyUC.List(c.Request.Context(), h.kind, c.Query("search"), page)
	if err != nil {
		HandleError(c, err)
		return
	}
	h.respond(c, page, total, dto.ToTermResponses(terms))
}

func (h *TaxonomyHandler) Create(c *gin.Context) {
	var req dto.TermRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	term, err := h.taxonomyUC.Create(c.Request.Context(), h.kind, req.Name, req.Slug)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusCreated, dto.ToTermResponse(term))
}

func (h *TaxonomyHandler) Delete(c *gin.Context) {
	if err := h.taxonomyUC.Delete(c.Request.Context(), h.kind, c.Param("slug")); err != nil {
		HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
