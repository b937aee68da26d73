package github

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	// reImageMD matches markdown images: ![alt](url)
	reImageMD = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	// reComment matches HTML comments: <!-- ... -->
	reComment = regexp.MustCompile(`(?s)<!--.*?-->`)
	// reExcessiveNewlines matches 3 or more newlines to compress them
	reExcessiveNewlines = regexp.MustCompile(`\n{3,}`)
	// reCode matches fenced blocks and inline code spans, kept verbatim
	reCode = regexp.MustCompile("(?s)```.*?```|~~~.*?~~~|`[^`\n]+`")
)

// blockTags end a line when stripped so paragraphs do not run together.
var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "li": true, "tr": true, "table": true, "section": true,
}

// CleanReadme removes content that is not useful for summarization:
// images, comments, inline HTML markup and excessive blank lines.
func CleanReadme(text string) string {
	text = reImageMD.ReplaceAllString(text, "")
	text = reComment.ReplaceAllString(text, "")
	text = stripHTML(text)
	text = reExcessiveNewlines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// stripHTML drops tags (and script/style bodies) outside code spans and
// fenced blocks. Code is copied as written so `Vec<String>` stays intact.
func stripHTML(text string) string {
	if !strings.Contains(text, "<") {
		return text
	}
	var b strings.Builder
	prev := 0
	for _, loc := range reCode.FindAllStringIndex(text, -1) {
		b.WriteString(stripTags(text[prev:loc[0]]))
		b.WriteString(text[loc[0]:loc[1]])
		prev = loc[1]
	}
	b.WriteString(stripTags(text[prev:]))
	return b.String()
}

// stripTags drops tags but keeps text, so the markdown around embedded
// HTML survives untouched.
func stripTags(text string) string {
	if !strings.Contains(text, "<") {
		return text
	}
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(text))
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if tag == "script" || tag == "style" {
				skip++
			}
			if blockTags[tag] {
				b.WriteByte('\n')
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if (tag == "script" || tag == "style") && skip > 0 {
				skip--
			}
			if blockTags[tag] {
				b.WriteByte('\n')
			}
		}
	}
}
