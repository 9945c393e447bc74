package secret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey(t *testing.T) {
	master := "0123456789abcdef0123456789abcdef"

	a, err := DeriveKey(master, PurposeAccessToken)
	require.NoError(t, err)
	again, err := DeriveKey(master, PurposeAccessToken)
	require.NoError(t, err)
	b, err := DeriveKey(master, PurposeConfirmationCode)
	require.NoError(t, err)

	assert.Len(t, a, KeySize)
	assert.Equal(t, a, again)
	assert.NotEqual(t, a, b)

	_, err = DeriveKey("", PurposeAccessToken)
	assert.Error(t, err)
}
