package filtering

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
	"unicode"

	"github.com/redis/go-redis/v9"
)

// CurseChecker decides whether text contains objectionable content.
// The comment service consumes this interface only.
type CurseChecker interface {
	IsCurse(ctx context.Context, text string) (bool, error)
}

// WordFilter matches a normalized form of the text against a banned word
// list. Normalization strips digits and whitespace and lowercases, so
// spellings like "시1발" still match "시발". Verdicts are cached in Redis
// keyed by a hash of the raw text.
type WordFilter struct {
	words    []string
	cache    *redis.Client
	cacheTTL time.Duration
}

// NewWordFilter creates a checker over the given banned words. cache may be
// nil, in which case every call matches directly.
func NewWordFilter(words []string, cache *redis.Client, cacheTTL time.Duration) *WordFilter {
	normalized := make([]string, 0, len(words))
	for _, w := range words {
		if n := normalize(w); n != "" {
			normalized = append(normalized, n)
		}
	}
	return &WordFilter{
		words:    normalized,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

func (f *WordFilter) IsCurse(ctx context.Context, text string) (bool, error) {
	key := cacheKey(text)

	if f.cache != nil {
		cached, err := f.cache.Get(ctx, key).Result()
		if err == nil {
			return cached == "1", nil
		}
		if err != redis.Nil {
			return false, err
		}
	}

	verdict := f.match(text)

	if f.cache != nil {
		value := "0"
		if verdict {
			value = "1"
		}
		if err := f.cache.Set(ctx, key, value, f.cacheTTL).Err(); err != nil {
			return false, err
		}
	}

	return verdict, nil
}

func (f *WordFilter) match(text string) bool {
	normalized := normalize(text)
	for _, w := range f.words {
		if strings.Contains(normalized, w) {
			return true
		}
	}
	return false
}

func normalize(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		if unicode.IsDigit(r) || unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return "filtering:curse:" + hex.EncodeToString(sum[:])
}
