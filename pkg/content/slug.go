package content

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const (
	wordsPerMinute = 200
	maxSlugSuffix  = 50
)

var (
	slugDisallowed = regexp.MustCompile(`[^a-z0-9_\s-]`)
	slugSpaces     = regexp.MustCompile(`[\s_]+`)
	slugDashes     = regexp.MustCompile(`-{2,}`)

	// reservedSlugs collide with fixed routes under /api/blogs.
	reservedSlugs = map[string]bool{"my": true}
)

// Slugify derives a URL slug from a title.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugDisallowed.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugDashes.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "post"
	}
	return s
}

// uniqueSlug appends -2, -3, ... to base until exists reports it free.
func uniqueSlug(ctx context.Context, base string, exists func(context.Context, string) (bool, error)) (string, error) {
	candidate := base
	for n := 2; n <= maxSlugSuffix; n++ {
		taken, err := slugTaken(ctx, candidate, exists)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
	return fmt.Sprintf("%s-%s", base, uuid.NewString()[:8]), nil
}

func slugTaken(ctx context.Context, slug string, exists func(context.Context, string) (bool, error)) (bool, error) {
	if reservedSlugs[slug] {
		return true, nil
	}
	return exists(ctx, slug)
}

// ReadTime estimates minutes to read content.
func ReadTime(content string) int {
	words := len(strings.Fields(content))
	if words == 0 {
		return 0
	}
	return int(math.Ceil(float64(words) / wordsPerMinute))
}
