package builder

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/AmatanHead/sphinx-a4doc/ast"
	"github.com/AmatanHead/sphinx-a4doc/reporter"
)

// DocInfo is the outcome of processing the comment run above a rule:
// accumulated documentation text plus whatever presentation directives
// were present.
type DocInfo struct {
	Documentation string
	DisplayName   string
	CSSClass      string
	Importance    int
	ImportanceSet bool
	NoDoc         bool
	Inline        bool
}

var directivePattern = regexp.MustCompile(`^//@[ \t]*([A-Za-z0-9_-]+)[ \t]*(.*)$`)

// ExtractDocs processes the comments attached to a rule declaration.
// Directive lines start with `//@`; all other comments contribute their
// text, fences stripped, to the documentation. Malformed directives
// degrade to warnings and are otherwise ignored.
func ExtractDocs(comments []ast.Comment, handler *reporter.Handler) DocInfo {
	var info DocInfo
	var chunks []string
	for _, c := range comments {
		if strings.HasPrefix(c.Text, "//@") {
			m := directivePattern.FindStringSubmatch(c.Text)
			if m == nil {
				handler.HandleWarningf(c.Pos, "malformed documentation directive %q", c.Text)
				continue
			}
			info.apply(m[1], strings.TrimSpace(m[2]), c.Pos, handler)
			continue
		}
		if chunk := commentText(c.Text); chunk != "" {
			chunks = append(chunks, chunk)
		}
	}
	info.Documentation = strings.Join(chunks, "\n")
	return info
}

func (info *DocInfo) apply(cmd, arg string, pos ast.SourcePos, handler *reporter.Handler) {
	ignoreArg := func() {
		if arg != "" {
			handler.HandleWarningf(pos, "command %q takes no arguments, %q ignored", cmd, arg)
		}
	}
	switch cmd {
	case "nodoc":
		ignoreArg()
		info.NoDoc = true
	case "inline":
		ignoreArg()
		info.Inline = true
	case "unimportant":
		ignoreArg()
		info.Importance = 0
		info.ImportanceSet = true
	case "importance":
		n, err := strconv.Atoi(arg)
		if err != nil {
			handler.HandleWarningf(pos, "command %q requires an integer argument, got %q", cmd, arg)
			return
		}
		if n < 0 {
			handler.HandleWarningf(pos, "importance is negative (%d)", n)
		}
		info.Importance = n
		info.ImportanceSet = true
	case "class":
		info.CSSClass = arg
	case "name":
		if arg == "" {
			handler.HandleWarningf(pos, "command %q requires an argument", cmd)
			return
		}
		info.DisplayName = arg
	default:
		handler.HandleWarningf(pos, "unknown documentation command %q", cmd)
	}
}

// commentText strips the comment fences and normalizes indentation of a
// single comment token.
func commentText(raw string) string {
	if strings.HasPrefix(raw, "//") {
		text := strings.TrimPrefix(raw, "//")
		text = strings.TrimPrefix(text, " ")
		return strings.TrimRight(text, " \t")
	}

	body := strings.TrimPrefix(raw, "/*")
	body = strings.TrimSuffix(body, "*/")
	lines := strings.Split(body, "\n")
	if starPrefixed(lines) {
		for i, line := range lines {
			line = strings.TrimLeft(line, " \t")
			line = strings.TrimPrefix(line, "*")
			lines[i] = strings.TrimPrefix(line, " ")
		}
	} else {
		lines = dedent(lines)
		if len(lines) > 0 {
			lines[0] = strings.TrimLeft(lines[0], " \t")
		}
	}
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// starPrefixed reports whether every non-blank line of a block comment
// body starts with the conventional '*' margin.
func starPrefixed(lines []string) bool {
	seen := false
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		if !strings.HasPrefix(trimmed, "*") {
			return false
		}
		seen = true
	}
	return seen
}

// dedent removes the indentation common to all non-blank lines. The first
// line starts right after the opening fence and never contributes to the
// margin.
func dedent(lines []string) []string {
	margin := -1
	for i, line := range lines {
		if i == 0 {
			continue
		}
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		indent := len(line) - len(trimmed)
		if margin < 0 || indent < margin {
			margin = indent
		}
	}
	if margin <= 0 {
		return lines
	}
	for i, line := range lines {
		if i == 0 {
			continue
		}
		if len(line) >= margin {
			lines[i] = line[margin:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return lines
}
