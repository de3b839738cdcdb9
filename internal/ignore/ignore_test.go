package ignore_test

import (
	"testing"

	"cascloc/internal/config"
	"cascloc/internal/ignore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolverFor(t *testing.T, value map[string]any) *ignore.Resolver {
	t.Helper()

	ctx, err := config.FromSource(value, "test")
	require.NoError(t, err)
	return ignore.NewResolver(ctx)
}

func TestNegationOverridesEarlierRule(t *testing.T) {
	t.Parallel()

	resolver := resolverFor(t, map[string]any{"ignore": []any{"build/", "!build/keep.txt"}})

	assert.False(t, resolver.Ignored("build/keep.txt", false))
	assert.True(t, resolver.Ignored("build/drop.txt", false))
	assert.True(t, resolver.Ignored("build", true))
	assert.False(t, resolver.Ignored("src/main.c", false))
}

func TestLastMatchingRuleWins(t *testing.T) {
	t.Parallel()

	resolver := resolverFor(t, map[string]any{"ignore": []any{"!build/keep.txt", "build/"}})

	assert.Equal(t, ignore.ByRule, resolver.Decide("build/keep.txt", false))
}

func TestHiddenCannotBeNegated(t *testing.T) {
	t.Parallel()

	resolver := resolverFor(t, map[string]any{"ignore": []any{"!.github/"}})

	assert.Equal(t, ignore.Hidden, resolver.Decide(".github/workflows/ci.yml", false))
	assert.Equal(t, ignore.Hidden, resolver.Decide("src/.cache", true))

	visible := resolverFor(t, map[string]any{"ignoreHidden": false})
	assert.Equal(t, ignore.Included, visible.Decide(".github/workflows/ci.yml", false))
}

func TestReservedConfigFile(t *testing.T) {
	t.Parallel()

	resolver := resolverFor(t, map[string]any{"ignoreHidden": false, "ignore": []any{"!.cascloc.yml"}})

	assert.Equal(t, ignore.Reserved, resolver.Decide(config.FileName, false))
	assert.Equal(t, ignore.Reserved, resolver.Decide("pkg/"+config.FileName, false))
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a/b", ignore.Normalize("./a/b/"))
	assert.Equal(t, "", ignore.Normalize("."))
	assert.True(t, ignore.IsHidden("a/.b/c"))
	assert.False(t, ignore.IsHidden("./a/b"))
	assert.Equal(t, "hidden", ignore.Hidden.String())
}
