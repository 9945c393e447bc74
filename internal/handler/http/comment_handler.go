package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/yamdb/internal/handler/http/dto"
	"github.com/mikiasgoitom/yamdb/internal/handler/http/middleware"
	usecasecontract "github.com/mikiasgoitom/yamdb/internal/usecase/contract"
)

// CommentHandler serves comments nested under /titles/{title_id}/reviews/{review_id}.
// The review must belong to the title in the path.
type CommentHandler struct {
	paginator
	commentUC usecasecontract.ICommentUseCase
	reviewUC  usecasecontract.IReviewUseCase
}

func NewCommentHandler(commentUC usecasecontract.ICommentUseCase, reviewUC usecasecontract.IReviewUseCase, pageSize int) *CommentHandler {
	return &CommentHandler{
		paginator: paginator{pageSize: pageSize},
		commentUC: commentUC,
		reviewUC:  reviewUC,
	}
}

// reviewID resolves the path's review; on failure the response is written.
func (h *CommentHandler) reviewID(c *gin.Context) (string, bool) {
	review, err := h.reviewUC.GetReview(c.Request.Context(), c.Param("title_id"), c.Param("review_id"))
	if err != nil {
		HandleError(c, err)
		return "", false
	}
	return review.ID, true
}

func (h *CommentHandler) GetReviewComments(c *gin.Context) {
	page, ok := h.page(c)
	if !ok {
		return
	}
	reviewID, ok := h.reviewID(c)
	if !ok {
		return
	}
	comments, total, err := h.commentUC.ListComments(c.Request.Context(), reviewID, page)
	if err != nil {
		HandleError(c, err)
		return
	}
	h.respond(c, page, total, dto.ToCommentResponses(comments))
}

func (h *CommentHandler) GetComment(c *gin.Context) {
	reviewID, ok := h.reviewID(c)
	if !ok {
		return
	}
	comment, err := h.commentUC.GetComment(c.Request.Context(), reviewID, c.Param("comment_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToCommentResponse(comment))
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	var req dto.CommentRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	if req.Text == nil {
		FieldErrorHandler(c, map[string][]string{"text": {"this field is required"}})
		return
	}
	reviewID, ok := h.reviewID(c)
	if !ok {
		return
	}
	comment, err := h.commentUC.CreateComment(c.Request.Context(), middleware.CurrentUser(c), reviewID, *req.Text)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusCreated, dto.ToCommentResponse(comment))
}

// UpdateComment serves PUT and PATCH; text is the only writable field.
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	var req dto.CommentRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	reviewID, ok := h.reviewID(c)
	if !ok {
		return
	}
	comment, err := h.commentUC.UpdateComment(c.Request.Context(), middleware.CurrentUser(c),
		reviewID, c.Param("comment_id"), req.Text, c.Request.Method == http.MethodPut)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToCommentResponse(comment))
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	reviewID, ok := h.reviewID(c)
	if !ok {
		return
	}
	if err := h.commentUC.DeleteComment(c.Request.Context(), middleware.CurrentUser(c), reviewID, c.Param("comment_id")); err != nil {
		HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
