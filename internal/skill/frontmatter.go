package skill

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontmatterDelim = "---"

// ParseFrontmatter splits SKILL.md into its YAML header and body.
// Content without a leading "---" line has no header; ok is false and body
// is the whole document.
func ParseFrontmatter(content string) (fm Frontmatter, body string, ok bool, err error) {
	text := strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(text, frontmatterDelim+"\n") {
		return Frontmatter{}, content, false, nil
	}

	rest := text[len(frontmatterDelim)+1:]
	end := strings.Index(rest, "\n"+frontmatterDelim)
	if end < 0 {
		return Frontmatter{}, content, false, fmt.Errorf("frontmatter is not closed with %q", frontmatterDelim)
	}

	if err := yaml.Unmarshal([]byte(rest[:end]), &fm); err != nil {
		return Frontmatter{}, content, false, fmt.Errorf("decode frontmatter: %w", err)
	}

	body = rest[end+len(frontmatterDelim)+1:]
	body = strings.TrimPrefix(body, "\n")
	return fm, body, true, nil
}
