package store

import (
	"testing"

	"github.com/mikiasgoitom/yamdb/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitleDetailKey(t *testing.T) {
	assert.Equal(t, "yamdb:title:id:abc", titleDetailKey("abc"))
}

func TestEncodeDecodeView(t *testing.T) {
	rating := 7.5
	view := &entity.TitleView{
		ID:       "t1",
		Name:     "The Kid",
		Year:     1921,
		Rating:   &rating,
		Genres:   []entity.Genre{{Name: "Drama", Slug: "drama"}},
		Category: &entity.Category{Name: "Movie", Slug: "movie"},
	}

	b, err := encodeView(view)
	require.NoError(t, err)
	got, ok := decodeView(b)
	require.True(t, ok)
	assert.Equal(t, view, got)

	_, err = encodeView(&entity.TitleView{})
	assert.Error(t, err)
}

func TestDecodeView_CorruptIsMiss(t *testing.T) {
	_, ok := decodeView([]byte("{not json"))
	assert.False(t, ok)

	_, ok = decodeView([]byte(`{"name":"no id"}`))
	assert.False(t, ok)
}

func TestVersionToken(t *testing.T) {
	tests := []struct {
		name          string
		title, global interface{}
		want          string
	}{
		{"both missing", nil, nil, "0:0"},
		{"title bumped", "3", nil, "3:0"},
		{"both set", "3", "7", "3:7"},
		{"empty string", "", "2", "0:2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, versionToken(tt.title, tt.global))
		})
	}
	assert.Equal(t, "yamdb:title:ver:abc", titleVersionKey("abc"))
}
