package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/yamdb/internal/handler/http/dto"
	usecasecontract "github.com/mikiasgoitom/yamdb/internal/usecase/contract"
)

// AuthHandlerInterface is implemented by AuthHandler; tests route through it.
type AuthHandlerInterface interface {
	SignUp(*gin.Context)
	ObtainToken(*gin.Context)
}

var _ AuthHandlerInterface = (*AuthHandler)(nil)

type AuthHandler struct {
	authUsecase usecasecontract.IAuthUseCase
}

func NewAuthHandler(authUsecase usecasecontract.IAuthUseCase) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase}
}

// SignUp registers the pair (or reuses it) and mails a confirmation code.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	user, err := h.authUsecase.SignUp(c.Request.Context(), req.Email, req.Username)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.SignUpResponse{Email: user.Email, Username: user.Username})
}

// ObtainToken exchanges a confirmation code for an access token.
func (h *AuthHandler) ObtainToken(c *gin.Context) {
	var req dto.TokenRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	token, err := h.authUsecase.ObtainToken(c.Request.Context(), req.Username, req.ConfirmationCode)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.TokenResponse{Token: token})
}
