package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractLinks(t *testing.T) {
	body := `
<p>New roles for you:</p>
<a href="https://boards.test/jobs/123"><b>Engineering Manager</b> &amp; more</a>
<a href="https://boards.test/jobs/123">EM</a>
<a href="https://boards.test/jobs/456"></a>
<a href="mailto:jobs@boards.test">mail us</a>
<a href='https://boards.test/jobs/789'>Head of Engineering</a>
`
	links := extractLinks(body)

	// longest anchor text wins for a repeated href; tags are stripped and
	// entities decoded
	assert.Equal(t, "Engineering Manager & more", links["https://boards.test/jobs/123"])
	assert.Equal(t, "Head of Engineering", links["https://boards.test/jobs/789"])
	assert.Equal(t, "", links["https://boards.test/jobs/456"])
	assert.NotContains(t, links, "mailto:jobs@boards.test")
}

func TestIsJunkLink(t *testing.T) {
	assert.True(t, isJunkLink("https://x.test/unsubscribe?u=1"))
	assert.True(t, isJunkLink("https://x.test/email-preferences"))
	assert.True(t, isJunkLink("https://tracking.x.test/open/abc"))
	assert.False(t, isJunkLink("https://boards.test/jobs/123"))
}
