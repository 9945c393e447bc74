package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignUp(t *testing.T) {
	api := setupRouter()
	payload := map[string]string{"email": "new@example.com", "username": "new_user"}

	w := api.do("POST", "/api/v1/auth/signup/", "", payload)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"email":"new@example.com","username":"new_user"}`, w.Body.String())
	assert.Equal(t, 1, api.auth.SignUps)
}

func TestSignUp_Fail(t *testing.T) {
	tests := []struct {
		name     string
		payload  map[string]string
		conflict bool
		contains string
	}{
		{"reserved username", map[string]string{"email": "me@example.com", "username": "me"}, false, "username 'me' is reserved"},
		{"invalid email", map[string]string{"email": "not-an-email", "username": "someone"}, false, `"email"`},
		{"missing username", map[string]string{"email": "a@example.com"}, false, `"username":["this field is required"]`},
		{"too long username", map[string]string{"email": "a@example.com", "username": string(make([]byte, 151))}, false, `"username"`},
		{"cross-bound pair", map[string]string{"email": "taken@example.com", "username": "other"}, true, "email or username is already taken"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := setupRouter()
			api.auth.ShouldFailSignUp = tt.conflict

			w := api.do("POST", "/api/v1/auth/signup/", "", tt.payload)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.contains)
			assert.Equal(t, 0, api.auth.SignUps)
		})
	}
}

func TestSignUp_MalformedBody(t *testing.T) {
	api := setupRouter()
	w := api.do("POST", "/api/v1/auth/signup/", "", `{"email":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "malformed request body")
}

func TestObtainToken(t *testing.T) {
	api := setupRouter()
	payload := map[string]string{"username": "new_user", "confirmation_code": "abc-123"}

	w := api.do("POST", "/api/v1/auth/token/", "", payload)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"token":"mock_access_token"}`, w.Body.String())
}

func TestObtainToken_Fail(t *testing.T) {
	api := setupRouter()
	api.auth.ShouldFailObtainToken = true
	payload := map[string]string{"username": "new_user", "confirmation_code": "stale"}

	w := api.do("POST", "/api/v1/auth/token/", "", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"confirmation_code":"invalid"}`, w.Body.String())

	api.auth.UnknownUser = true
	w = api.do("POST", "/api/v1/auth/token/", "", payload)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do("POST", "/api/v1/auth/token/", "", map[string]string{"username": "new_user"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"confirmation_code"`)
}
