package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/yamdb/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/yamdb/internal/usecase/contract"
)

const userKey = "currentUser"

// AuthMiddleWare resolves a bearer token to the current user. Requests
// without an Authorization header continue anonymously; a header that does
// not resolve to an active user is rejected with 401.
func AuthMiddleWare(auth usecasecontract.IAuthUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			abort(c, http.StatusUnauthorized, "authorization header must be 'Bearer <token>'")
			return
		}
		user, err := auth.Authenticate(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			abort(c, http.StatusUnauthorized, "given token not valid for any active user")
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *entity.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := v.(*entity.User)
	return user
}

// SetCurrentUser stores user as the authenticated user of the request.
func SetCurrentUser(c *gin.Context, user *entity.User) {
	c.Set(userKey, user)
}

// RequireAuth rejects anonymous requests.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			abort(c, http.StatusUnauthorized, entity.ErrUnauthenticated.Error())
			return
		}
		c.Next()
	}
}

// RequireAdmin lets only admins through.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		switch {
		case user == nil:
			abort(c, http.StatusUnauthorized, entity.ErrUnauthenticated.Error())
		case !user.IsAdmin():
			abort(c, http.StatusForbidden, entity.ErrPermissionDenied.Error())
		default:
			c.Next()
		}
	}
}

// AdminOrReadOnly allows safe methods to anyone and writes to admins.
func AdminOrReadOnly() gin.HandlerFunc {
	admin := RequireAdmin()
	return func(c *gin.Context) {
		if isSafeMethod(c.Request.Method) {
			c.Next()
			return
		}
		admin(c)
	}
}

// AuthenticatedOrReadOnly allows safe methods to anyone and writes to any
// signed-in user. Ownership is checked once the object is loaded.
func AuthenticatedOrReadOnly() gin.HandlerFunc {
	auth := RequireAuth()
	return func(c *gin.Context) {
		if isSafeMethod(c.Request.Method) {
			c.Next()
			return
		}
		auth(c)
	}
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

func abort(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": detail})
}
