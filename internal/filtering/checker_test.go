package filtering

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordFilter_MatchesBannedWord(t *testing.T) {
	filter := NewWordFilter([]string{"시발", "fuck"}, nil, 0)

	curse, err := filter.IsCurse(context.Background(), "시발 쓰레기통이 왜 없어")

	require.NoError(t, err)
	assert.True(t, curse)
}

func TestWordFilter_MatchesObfuscatedSpelling(t *testing.T) {
	filter := NewWordFilter([]string{"시발"}, nil, 0)

	for _, text := range []string{"시1발", "시 발", "시12발", "앞말 시1발 뒷말"} {
		curse, err := filter.IsCurse(context.Background(), text)
		require.NoError(t, err)
		assert.Truef(t, curse, "expected %q to match", text)
	}
}

func TestWordFilter_CaseInsensitive(t *testing.T) {
	filter := NewWordFilter([]string{"fuck"}, nil, 0)

	curse, err := filter.IsCurse(context.Background(), "FuCk this bin")

	require.NoError(t, err)
	assert.True(t, curse)
}

func TestWordFilter_CleanTextPasses(t *testing.T) {
	filter := NewWordFilter([]string{"시발", "fuck"}, nil, 0)

	curse, err := filter.IsCurse(context.Background(), "여기 쓰레기통 위치가 정확해요")

	require.NoError(t, err)
	assert.False(t, curse)
}

func TestWordFilter_EmptyWordListNeverMatches(t *testing.T) {
	filter := NewWordFilter(nil, nil, 0)

	curse, err := filter.IsCurse(context.Background(), "anything at all")

	require.NoError(t, err)
	assert.False(t, curse)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "시발", normalize("시1발"))
	assert.Equal(t, "시발", normalize(" 시 2 발 "))
	assert.Equal(t, "abc", normalize("A b C"))
	assert.Equal(t, "", normalize("123  "))
}
