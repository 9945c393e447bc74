package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	govalidator "github.com/go-playground/validator/v10"
	"github.com/mikiasgoitom/yamdb/internal/domain/entity"
	"github.com/mikiasgoitom/yamdb/internal/handler/http/dto"
	"github.com/mikiasgoitom/yamdb/internal/infrastructure/validator"
)

const errInvalidPage = "invalid page"

// ErrorHandler centralizes error handling for HTTP responses
func ErrorHandler(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.DetailResponse{Detail: message})
}

// SuccessHandler centralizes success responses
func SuccessHandler(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// FieldErrorHandler writes a 400 keyed by the offending fields.
func FieldErrorHandler(c *gin.Context, fields map[string][]string) {
	c.JSON(http.StatusBadRequest, fields)
}

// HandleError maps a usecase error to its HTTP response.
func HandleError(c *gin.Context, err error) {
	if fe, ok := entity.AsFieldError(err); ok {
		FieldErrorHandler(c, map[string][]string{fe.Field: {fe.Message}})
		return
	}
	var fields entity.FieldErrors
	if errors.As(err, &fields) {
		FieldErrorHandler(c, fields)
		return
	}
	switch {
	case errors.Is(err, entity.ErrInvalidConfirmationCode):
		c.JSON(http.StatusBadRequest, gin.H{"confirmation_code": "invalid"})
	case errors.Is(err, entity.ErrConflict), errors.Is(err, entity.ErrDuplicateReview):
		ErrorHandler(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, entity.ErrNotFound):
		ErrorHandler(c, http.StatusNotFound, err.Error())
	case errors.Is(err, entity.ErrUnauthenticated), errors.Is(err, entity.ErrInactiveUser):
		ErrorHandler(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, entity.ErrPermissionDenied):
		ErrorHandler(c, http.StatusForbidden, err.Error())
	default:
		slog.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
		ErrorHandler(c, http.StatusInternalServerError, "internal server error")
	}
}

// BindAndValidate binds the JSON body into req and writes a 400 on failure.
// An empty body binds nothing but still runs the struct's rules.
func BindAndValidate(c *gin.Context, req interface{}) error {
	err := c.ShouldBindJSON(req)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(req)
	}
	if err == nil {
		return nil
	}

	var verrs govalidator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &verrs):
		fields := make(map[string][]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = append(fields[fe.Field()], validator.Message(fe))
		}
		FieldErrorHandler(c, fields)
	case errors.As(err, &typeErr) && typeErr.Field != "":
		FieldErrorHandler(c, map[string][]string{typeErr.Field: {"incorrect type, expected " + typeErr.Type.String()}})
	default:
		ErrorHandler(c, http.StatusBadRequest, "malformed request body")
	}
	return err
}

// paginator renders list results in the page envelope.
type paginator struct {
	pageSize int
}

// page reads ?page=; it writes a 404 and returns false when it is unusable.
func (p paginator) page(c *gin.Context) (int, bool) {
	raw := c.Query("page")
	if raw == "" {
		return 1, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		ErrorHandler(c, http.StatusNotFound, errInvalidPage)
		return 0, false
	}
	return n, true
}

// respond writes the envelope for one page of results. Asking for a page
// past the last one is a 404.
func (p paginator) respond(c *gin.Context, page int, total int64, results interface{}) {
	size := int64(p.pageSize)
	if page > 1 && int64(page-1)*size >= total {
		ErrorHandler(c, http.StatusNotFound, errInvalidPage)
		return
	}
	resp := dto.PageResponse{Count: total, Results: results}
	if int64(page)*size < total {
		next := pageURL(c, page+1)
		resp.Next = &next
	}
	if page > 1 {
		prev := pageURL(c, page-1)
		resp.Previous = &prev
	}
	SuccessHandler(c, http.StatusOK, resp)
}

// pageURL is the absolute URL of the current request pointing at page.
func pageURL(c *gin.Context, page int) string {
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	q := c.Request.URL.Query()
	if page == 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	u := url.URL{Scheme: scheme, Host: c.Request.Host, Path: c.Request.URL.Path, RawQuery: q.Encode()}
	return u.String()
}
