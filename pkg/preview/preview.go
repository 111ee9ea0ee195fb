// Package preview renders classified reports as Markdown and sanitized HTML
// for on-screen review before a report is published.
package preview

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/JaimeStill/spotlight/pkg/outline"
	"github.com/JaimeStill/spotlight/pkg/report"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

var escaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"#", `\#`,
	"|", `\|`,
)

// Markdown returns the report as Markdown: a level-two heading per section
// followed by its lists and paragraphs.
func Markdown(r report.Report) string {
	var b strings.Builder

	for _, section := range r.Sections {
		fmt.Fprintf(&b, "## %s\n\n", escape(section.Label))

		for _, run := range outline.Runs(section.Blocks) {
			for i, block := range run.Blocks {
				switch run.Kind {
				case outline.KindNumbered:
					fmt.Fprintf(&b, "%d. %s\n", i+1, escape(block.Text))
				case outline.KindBullet:
					fmt.Fprintf(&b, "- %s\n", escape(block.Text))
				default:
					b.WriteString(escapeParagraph(block.Text))
					b.WriteString("\n")
				}
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

// HTML converts the report Markdown to HTML and sanitizes the result.
func HTML(r report.Report) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(Markdown(r)), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return sanitizer().Sanitize(buf.String()), nil
}

func sanitizer() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.UGCPolicy()
	})
	return policy
}

func escape(s string) string {
	return escaper.Replace(s)
}

// escapeParagraph escapes inline markup and any leading characters that
// Markdown would read as a block marker, such as "+ " or "1) ".
func escapeParagraph(s string) string {
	s = escape(s)
	if s == "" {
		return s
	}

	switch s[0] {
	case '-', '+', '=', '~':
		return `\` + s
	}

	if i := strings.IndexAny(s, ".)"); i > 0 && strings.Trim(s[:i], "0123456789") == "" {
		return s[:i] + `\` + s[i:]
	}

	return s
}
