package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText_StripsMarkup(t *testing.T) {
	in := `<p>Talks <b>resume</b> in Geneva &amp; Doha</p><script>track()</script>`
	assert.Equal(t, "Talks resume in Geneva & Doha", CleanText(in))
}

func TestCleanText_PlainTextCollapsesSpacing(t *testing.T) {
	assert.Equal(t, "Markets fall sharply", CleanText("  Markets\n fall\t sharply  "))
}

func TestCleanText_DropsBoilerplate(t *testing.T) {
	assert.Equal(t, "Ceasefire holds", CleanText("Ceasefire holds Continue reading..."))
	assert.Equal(t, "", CleanText("[Removed]"))
}

func TestCleanText_Empty(t *testing.T) {
	assert.Equal(t, "", CleanText(""))
	assert.Equal(t, "", CleanText("   "))
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "title", FirstNonEmpty("", "  ", "title", "other"))
	assert.Equal(t, "", FirstNonEmpty("", "<p></p>"))
}

func TestCleanText_KeepsLiteralAngleAndAmpersand(t *testing.T) {
	assert.Equal(t, "Stocks fall as x<y and AT&T drops", CleanText("Stocks fall as x<y and AT&T drops"))
	assert.Equal(t, "Yields < 4% as AT&T rallies", CleanText("Yields &lt; 4% as AT&amp;T rallies"))
	assert.Equal(t, "Rates 3 < 5", CleanText("Rates 3 < 5"))
}

func TestCleanText_BoilerplateOnlyAtEnd(t *testing.T) {
	assert.Equal(t, "Read more about Iran talks", CleanText("Read more about Iran talks"))
	assert.Equal(t, "Iran talks resume", CleanText("Iran talks resume Read more"))
	assert.Equal(t, "Iran talks resume", CleanText("Iran talks resume Continue reading... [Removed]"))
}
