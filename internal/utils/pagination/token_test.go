package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	createdAt := time.Date(2024, 5, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(createdAt, "req-123")
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedAt, decodedID, err := DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, createdAt, decodedAt)
	assert.Equal(t, "req-123", decodedID)

	// non-UTC input is normalised
	loc := time.FixedZone("IST", 5*3600+1800)
	local := time.Date(2024, 5, 15, 20, 0, 45, 0, loc)
	decodedAt, _, err = DecodeToken(EncodeToken(local, "x"))
	require.NoError(t, err)
	assert.True(t, local.Equal(decodedAt))
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	noSep := base64.URLEncoding.EncodeToString([]byte("2024-05-15T00:00:00Z"))
	_, _, err = DecodeToken(noSep)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	emptyID := base64.URLEncoding.EncodeToString([]byte("2024-05-15T00:00:00Z|"))
	_, _, err = DecodeToken(emptyID)
	assert.Error(t, err)

	badDate := base64.URLEncoding.EncodeToString([]byte("notadate|abc"))
	_, _, err = DecodeToken(badDate)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "created_at parse")
}

func TestNextToken(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Nil(t, NextToken(3, 10, at, "a"), "short page has no next token")
	assert.Nil(t, NextToken(0, 0, at, "a"))

	tok := NextToken(10, 10, at, "a")
	require.NotNil(t, tok)
	gotAt, gotID, err := DecodeToken(*tok)
	require.NoError(t, err)
	assert.Equal(t, at, gotAt)
	assert.Equal(t, "a", gotID)
}
