package ui

import (
	"html/template"
	"regexp"
	"strings"
)

var (
	boldPattern    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicPattern  = regexp.MustCompile(`\*(.+?)\*`)
	escapeReplace  = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	newlineReplace = strings.NewReplacer("\r\n", "<br>", "\n", "<br>")
)

// FormatMarkdown turns the bold, italic and line-break subset of markdown
// into inline HTML. Markup metacharacters are escaped; quotes are kept.
func FormatMarkdown(text string) string {
	out := escapeReplace.Replace(text)
	out = boldPattern.ReplaceAllString(out, "<strong>$1</strong>")
	out = italicPattern.ReplaceAllString(out, "<em>$1</em>")
	return newlineReplace.Replace(out)
}

// FormatMarkdownHTML is FormatMarkdown typed for html/template.
func FormatMarkdownHTML(text string) template.HTML {
	return template.HTML(FormatMarkdown(text))
}
