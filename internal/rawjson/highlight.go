package rawjson

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlight colors pretty-printed JSON for a 256-color terminal using the
// named chroma style. Unknown style names fall back to chroma's default.
func Highlight(src, styleName string) (string, error) {
	lexer := lexers.Get("json")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	// Coalesce runs of tokens to reduce output
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, src)
	if err != nil {
		return "", fmt.Errorf("failed to tokenise: %w", err)
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return "", fmt.Errorf("failed to highlight: %w", err)
	}

	// Remove trailing newline added by chroma
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
