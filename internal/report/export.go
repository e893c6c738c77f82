package report

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
)

// htmlShell wraps rendered findings in a minimal standalone page.
const htmlShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; max-width: 60em; margin: 2em auto; padding: 0 1em; }
pre { background: #f5f5f5; padding: 0.8em; overflow-x: auto; }
h2 { border-bottom: 1px solid #ddd; padding-bottom: 0.2em; }
</style>
</head>
<body>
%s</body>
</html>
`

// reportToMarkdown lifts a findings report into Markdown: "=== X ===" lines
// become headings, separator rules become horizontal rules, and everything
// else is preserved verbatim inside fenced code blocks.
func reportToMarkdown(reportText string) string {
	var md strings.Builder
	var block []string

	flush := func() {
		if len(block) == 0 {
			return
		}
		md.WriteString("```\n")
		for _, line := range block {
			md.WriteString(line)
			md.WriteString("\n")
		}
		md.WriteString("```\n\n")
		block = block[:0]
	}

	md.WriteString("# Sweep findings\n\n")

	for _, line := range strings.Split(reportText, "\n") {
		trimmed := strings.TrimRight(line, "\r")

		switch {
		case trimmed == "":
			flush()
		case trimmed == separator:
			flush()
			md.WriteString("---\n\n")
		case strings.HasPrefix(trimmed, "=== ") && strings.HasSuffix(trimmed, " ==="):
			flush()
			name := strings.TrimSuffix(strings.TrimPrefix(trimmed, "=== "), " ===")
			md.WriteString("## " + name + "\n\n")
		default:
			block = append(block, trimmed)
		}
	}
	flush()

	return md.String()
}

// ExportHTML reads a findings report and writes it as a standalone HTML
// page at outPath.
func ExportHTML(reportPath, outPath string) error {
	data, err := os.ReadFile(reportPath)
	if err != nil {
		return fmt.Errorf("failed to read report: %w", err)
	}

	markdown := reportToMarkdown(string(data))

	var body bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &body); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	page := fmt.Sprintf(htmlShell, "Sweep findings", body.String())
	if err := os.WriteFile(outPath, []byte(page), 0644); err != nil {
		return fmt.Errorf("failed to write HTML export: %w", err)
	}

	return nil
}
