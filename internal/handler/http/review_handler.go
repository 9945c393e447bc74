package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/yamdb/internal/handler/http/dto"
	"github.com/mikiasgoitom/yamdb/internal/handler/http/middleware"
	usecasecontract "github.com/mikiasgoitom/yamdb/internal/usecase/contract"
)

type ReviewHandler struct {
	paginator
	reviewUC usecasecontract.IReviewUseCase
}

func NewReviewHandler(reviewUC usecasecontract.IReviewUseCase, pageSize int) *ReviewHandler {
	return &ReviewHandler{
		paginator: paginator{pageSize: pageSize},
		reviewUC:  reviewUC,
	}
}

func (h *ReviewHandler) ListReviews(c *gin.Context) {
	page, ok := h.page(c)
	if !ok {
		return
	}
	reviews, total, err := h.reviewUC.ListReviews(c.Request.Context(), c.Param("title_id"), page)
	if err != nil {
		HandleError(c, err)
		return
	}
	h.respond(c, page, total, dto.ToReviewResponses(reviews))
}

func (h *ReviewHandler) GetReview(c *gin.Context) {
	review, err := h.reviewUC.GetReview(c.Request.Context(), c.Param("title_id"), c.Param("review_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToReviewResponse(review))
}

// CreateReview posts a review authored by the caller.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req dto.ReviewRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	if missing := missingReviewFields(req); len(missing) > 0 {
		FieldErrorHandler(c, missing)
		return
	}
	review, err := h.reviewUC.CreateReview(c.Request.Context(), middleware.CurrentUser(c), c.Param("title_id"), *req.Text, *req.Score)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusCreated, dto.ToReviewResponse(review))
}

// UpdateReview serves both PUT and PATCH; PUT requires every field.
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	var req dto.ReviewRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	review, err := h.reviewUC.UpdateReview(c.Request.Context(), middleware.CurrentUser(c),
		c.Param("title_id"), c.Param("review_id"), req.Text, req.Score, c.Request.Method == http.MethodPut)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToReviewResponse(review))
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	err := h.reviewUC.DeleteReview(c.Request.Context(), middleware.CurrentUser(c), c.Param("title_id"), c.Param("review_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func missingReviewFields(req dto.ReviewRequest) map[string][]string {
	missing := map[string][]string{}
	if req.Text == nil {
		missing["text"] = []string{"this field is required"}
	}
	if req.Score == nil {
		missing["score"] = []string{"this field is required"}
	}
	return missing
}
