package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/dtroode/archia-server/internal/model"
)

// RenderMarkdown renders a story as a standalone markdown document. The like
// counter is left out so that an archive never goes stale.
func RenderMarkdown(story model.Story) []byte {
	var b strings.Builder

	b.WriteString("# ")
	b.WriteString(story.Title)
	b.WriteString("\n\n")

	field := func(name, value string) {
		b.WriteString("- ")
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString("\n")
	}
	field("Author", story.Author)
	field("Category", string(story.Category))
	field("Posted by", story.PostedBy)
	field("Story ID", strconv.FormatInt(story.ID, 10))
	if !story.CreatedAt.IsZero() {
		field("Created", story.CreatedAt.UTC().Format(time.RFC3339))
	}

	b.WriteString("\n")
	b.WriteString(strings.ReplaceAll(story.Content, "\r\n", "\n"))
	if !strings.HasSuffix(story.Content, "\n") {
		b.WriteString("\n")
	}

	return []byte(b.String())
}
