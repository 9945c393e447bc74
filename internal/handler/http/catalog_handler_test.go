package http_test

import (
	"net/http"
	"testing"

	"github.com/mikiasgoitom/yamdb/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategory_Permissions(t *testing.T) {
	payload := map[string]string{"name": "Film", "slug": "film"}
	tests := []struct {
		role entity.UserRole
		want int
	}{
		{"", http.StatusUnauthorized},
		{entity.UserRoleUser, http.StatusForbidden},
		{entity.UserRoleModerator, http.StatusForbidden},
		{entity.UserRoleAdmin, http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run("role="+string(tt.role), func(t *testing.T) {
			api := setupRouter()
			w := api.do("POST", "/api/v1/categories/", tt.role, payload)
			assert.Equal(t, tt.want, w.Code)
		})
	}

	api := setupRouter()
	w := api.do("POST", "/api/v1/categories/", entity.UserRoleAdmin, payload)
	assert.JSONEq(t, `{"name":"Film","slug":"film"}`, w.Body.String())
	assert.Equal(t, entity.TaxonomyCategory, api.taxonomy.LastKind)
}

func TestCreateGenre_Invalid(t *testing.T) {
	api := setupRouter()

	w := api.do("POST", "/api/v1/genres/", entity.UserRoleAdmin, map[string]string{"name": "Rock", "slug": "rock n roll"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"slug"`)

	api.taxonomy.ShouldFailCreate = true
	w = api.do("POST", "/api/v1/genres/", entity.UserRoleAdmin, map[string]string{"name": "Rock", "slug": "rock"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "genre with this slug already exists")
}

func TestListAndDeleteTaxonomy(t *testing.T) {
	api := setupRouter()

	w := api.do("GET", "/api/v1/genres/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":2`)
	assert.Equal(t, entity.TaxonomyGenre, api.taxonomy.LastKind)

	w = api.do("DELETE", "/api/v1/genres/rock/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = api.do("DELETE", "/api/v1/genres/rock/", entity.UserRoleAdmin, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"rock"}, api.taxonomy.Deleted)

	api.taxonomy.ShouldFailDelete = true
	w = api.do("DELETE", "/api/v1/categories/ghost/", entity.UserRoleAdmin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "category not found")
}

func TestListTitles_Filters(t *testing.T) {
	api := setupRouter()

	w := api.do("GET", "/api/v1/titles/?category=film&year=2020&genre=drama&name=Kid", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	f := api.titles.LastFilter
	require.NotNil(t, f.Category)
	require.NotNil(t, f.Year)
	require.NotNil(t, f.Genre)
	require.NotNil(t, f.Name)
	assert.Equal(t, "film", *f.Category)
	assert.Equal(t, 2020, *f.Year)
	assert.Equal(t, "drama", *f.Genre)
	assert.Equal(t, "Kid", *f.Name)
	assert.Equal(t, 1, f.Page)
}

func TestListTitles_NoFilters(t *testing.T) {
	api := setupRouter()

	w := api.do("GET", "/api/v1/titles/", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, api.titles.LastFilter.Year)
	assert.Nil(t, api.titles.LastFilter.Category)
	assert.Contains(t, w.Body.String(), `"results":[{`)
}

func TestListTitles_BadYear(t *testing.T) {
	api := setupRouter()
	w := api.do("GET", "/api/v1/titles/?year=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"year"`)
}

func TestListTitles_InternalError(t *testing.T) {
	api := setupRouter()
	api.titles.ShouldFailList = true
	w := api.do("GET", "/api/v1/titles/", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"detail":"internal server error"}`, w.Body.String())
}

func TestGetTitle(t *testing.T) {
	api := setupRouter()

	w := api.do("GET", "/api/v1/titles/title-id/", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"id": "title-id",
		"name": "The Kid",
		"year": 1921,
		"rating": 7.5,
		"description": null,
		"genre": [{"name": "Drama", "slug": "drama"}],
		"category": {"name": "Movie", "slug": "movie"}
	}`, w.Body.String())

	api.titles.ShouldFailGet = true
	w = api.do("GET", "/api/v1/titles/missing/", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateTitle(t *testing.T) {
	api := setupRouter()
	payload := map[string]interface{}{
		"name":     "Modern Times",
		"year":     1936,
		"genre":    []string{"drama"},
		"category": "movie",
	}

	w := api.do("POST", "/api/v1/titles/", entity.UserRoleAdmin, payload)

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Modern Times", body["name"])
	assert.Nil(t, body["rating"])
	assert.True(t, api.titles.LastInput.GenreSet)
	assert.Equal(t, []string{"drama"}, api.titles.LastInput.Genre)
}

func TestCreateTitle_Invalid(t *testing.T) {
	api := setupRouter()

	w := api.do("POST", "/api/v1/titles/", entity.UserRoleAdmin, map[string]interface{}{"name": "Later", "year": 3000})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "year cannot be greater than the current year")

	w = api.do("POST", "/api/v1/titles/", entity.UserRoleAdmin, map[string]interface{}{"name": "Typed", "year": "1990"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"year"`)

	api.titles.ShouldFailCreate = true
	w = api.do("POST", "/api/v1/titles/", entity.UserRoleAdmin, map[string]interface{}{"name": "X", "year": 1990, "genre": []string{"unknown"}, "category": "movie"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"genre"`)

	w = api.do("POST", "/api/v1/titles/", entity.UserRoleUser, map[string]interface{}{"name": "X"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateTitle(t *testing.T) {
	api := setupRouter()

	w := api.do("PATCH", "/api/v1/titles/title-id/", entity.UserRoleAdmin, map[string]string{"name": "Renamed"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Renamed"`)
	assert.False(t, api.titles.LastInput.GenreSet)

	w = api.do("PUT", "/api/v1/titles/title-id/", entity.UserRoleAdmin, map[string]string{"name": "Renamed"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, api.titles.LastReplace)
	assert.Contains(t, w.Body.String(), `"year"`)
	assert.Contains(t, w.Body.String(), `"category"`)
	assert.NotContains(t, w.Body.String(), `"name"`)

	w = api.do("PUT", "/api/v1/titles/title-id/", entity.UserRoleUser, map[string]string{"name": "Renamed"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	api.titles.ShouldFailGet = true
	w = api.do("PUT", "/api/v1/titles/missing/", entity.UserRoleAdmin, map[string]string{"name": "Renamed"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	api.titles.ShouldFailGet = false

	w = api.do("PATCH", "/api/v1/titles/title-id/", entity.UserRoleAdmin, map[string]interface{}{"genre": []string{}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, api.titles.LastInput.GenreSet)
	assert.Empty(t, api.titles.LastInput.Genre)
}

func TestDeleteTitle(t *testing.T) {
	api := setupRouter()
	assert.Equal(t, http.StatusUnauthorized, api.do("DELETE", "/api/v1/titles/title-id/", "", nil).Code)
	assert.Equal(t, http.StatusNoContent, api.do("DELETE", "/api/v1/titles/title-id/", entity.UserRoleAdmin, nil).Code)
}

func TestOperationalEndpoints(t *testing.T) {
	api := setupRouter()
	w := api.do("GET", "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = api.do("GET", "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "yamdb_http_requests_total")
}
