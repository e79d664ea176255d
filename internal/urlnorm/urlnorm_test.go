package urlnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanSplicesHostForJobsMalformation(t *testing.T) {
	got := Clean("https://jobs/acme/123", "https://boards.khosla.com/jobs")
	assert.Equal(t, "https://boards.khosla.com/jobs/acme/123", got)
}

func TestCleanCollapsesDoubledSlashes(t *testing.T) {
	got := Clean("https://example.com//careers///apply", "https://example.com")
	assert.Equal(t, "https://example.com/careers/apply", got)
}

func TestCleanIdempotent(t *testing.T) {
	once := Clean("https://jobs/acme/123", "https://boards.khosla.com/jobs")
	assert.Equal(t, once, Clean(once, "https://boards.khosla.com/jobs"))
}

func TestCleanLeavesQueryAndFragmentAlone(t *testing.T) {
	got := Clean("https://example.com//a?b=c//d#e//f", "https://example.com")
	assert.Equal(t, "https://example.com/a?b=c//d#e//f", got)
}

func TestCleanPassesThroughGarbage(t *testing.T) {
	assert.Equal(t, "", Clean("  ", "https://example.com"))
	assert.Equal(t, "://bad", Clean("://bad", "https://example.com"))
}
