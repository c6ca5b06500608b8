package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func TestParseSort_DefaultsToCreatedAtDesc(t *testing.T) {
	sort, err := ParseSort("", nil, nil)

	require.NoError(t, err)
	assert.Equal(t, CreatedAtDesc{}, sort)
}

func TestParseSort_CreatedAtDescWithCursor(t *testing.T) {
	sort, err := ParseSort(SortCreatedAtDesc, int64Ptr(42), nil)

	require.NoError(t, err)
	created, ok := sort.(CreatedAtDesc)
	require.True(t, ok)
	require.NotNil(t, created.LastCommentID)
	assert.EqualValues(t, 42, *created.LastCommentID)
}

func TestParseSort_CreatedAtDescIgnoresLikeCount(t *testing.T) {
	// a stray like-count value has no meaning here and is dropped
	sort, err := ParseSort(SortCreatedAtDesc, int64Ptr(42), int64Ptr(7))

	require.NoError(t, err)
	created, ok := sort.(CreatedAtDesc)
	require.True(t, ok)
	assert.EqualValues(t, 42, *created.LastCommentID)
}

func TestParseSort_LikeCountDescFirstPage(t *testing.T) {
	sort, err := ParseSort(SortLikeCountDesc, nil, nil)

	require.NoError(t, err)
	liked, ok := sort.(LikeCountDesc)
	require.True(t, ok)
	assert.Nil(t, liked.Cursor)
}

func TestParseSort_LikeCountDescWithCursor(t *testing.T) {
	sort, err := ParseSort(SortLikeCountDesc, int64Ptr(42), int64Ptr(7))

	require.NoError(t, err)
	liked, ok := sort.(LikeCountDesc)
	require.True(t, ok)
	require.NotNil(t, liked.Cursor)
	assert.EqualValues(t, 42, liked.Cursor.LastCommentID)
	assert.EqualValues(t, 7, liked.Cursor.LastLikeCount)
}

func TestParseSort_LikeCountDescRejectsPartialCursor(t *testing.T) {
	_, err := ParseSort(SortLikeCountDesc, int64Ptr(42), nil)
	assert.ErrorIs(t, err, ErrInvalidCursor)

	_, err = ParseSort(SortLikeCountDesc, nil, int64Ptr(7))
	assert.ErrorIs(t, err, ErrInvalidCursor)
}

func TestParseSort_UnknownOrder(t *testing.T) {
	_, err := ParseSort("OLDEST_FIRST", nil, nil)

	assert.ErrorIs(t, err, ErrInvalidCursor)
}
