// highlight renders a Go source file into the terminal, one child rect
// per Chroma token so each token carries its own foreground colour —
// effects live on a whole rect in this compositor, never per character,
// so per-token colour means per-token rects.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/chroma"
	"github.com/alecthomas/chroma/lexers"

	wrecked "github.com/quintinfsmith/wrecked-sub000"
	"github.com/quintinfsmith/wrecked-sub000/terminal"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: highlight <file.go>")
		os.Exit(1)
	}

	src, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "highlight:", err)
		os.Exit(1)
	}

	lexer := lexers.Get("go")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, string(src))
	if err != nil {
		fmt.Fprintln(os.Stderr, "highlight: tokenise:", err)
		os.Exit(1)
	}

	c, err := wrecked.New(terminal.New())
	if err != nil {
		fmt.Fprintln(os.Stderr, "highlight:", err)
		os.Exit(1)
	}
	defer c.Kill()

	width, height, _ := c.RootSize()
	x, y := 0, 0

	for _, token := range iterator.Tokens() {
		lines := strings.Split(token.Value, "\n")
		for li, line := range lines {
			if li > 0 {
				y++
				x = 0
			}
			if line == "" {
				continue
			}
			if y >= height {
				break
			}

			h, err := c.NewRect(wrecked.Root)
			if err != nil {
				continue
			}
			c.Resize(h, len(line), 1)
			c.SetPosition(h, x, y)
			c.SetFgColor(h, tokenColor(token.Type))
			c.SetString(h, 0, 0, line)

			x += len(line)
			if x >= width {
				x = width
			}
		}
	}

	c.RenderRoot()

	fmt.Fprintln(os.Stderr, "press enter to exit")
	fmt.Scanln()
}

// tokenColor maps a Chroma token category onto one of the 16 ANSI
// colours the compositor understands, mirroring the teacher's
// category-to-ANSI switch in highlight_chroma.go.
func tokenColor(t chroma.TokenType) wrecked.Color {
	switch t.Category() {
	case chroma.Keyword:
		return wrecked.Magenta
	case chroma.LiteralString:
		return wrecked.Green
	case chroma.LiteralNumber:
		return wrecked.Cyan
	case chroma.Comment:
		return wrecked.BrightBlack
	case chroma.Name:
		return wrecked.White
	case chroma.Operator, chroma.Punctuation:
		return wrecked.White
	default:
		return wrecked.ColorNone
	}
}
