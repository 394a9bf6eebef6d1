// Package lexer turns Hyperion source text into the Token stream the
// parser consumes. Raw tokenisation (names, numbers, strings, operator and
// punctuation units) is delegated to participle's stateful regexp lexer,
// exactly the way the teacher's own parser builds its lexer from
// lexer.Rules; what participle's struct-tag grammar cannot express is the
// indentation-sensitive block structure (4.1.1), so this package adds a
// hand-written filter — the Go equivalent of lark's postlex Indenter that
// the original implementation relied on — which turns runs of raw tokens
// into synthetic NEWLINE/INDENT/DEDENT markers before anything reaches the
// parser.
package lexer

import (
	"strings"

	plexer "github.com/alecthomas/participle/v2/lexer"

	"github.com/hyperion-lang/hyperion/pkg/herrors"
	"github.com/hyperion-lang/hyperion/pkg/token"
)

// rawLexer recognises the lexical classes of 4.1.1. Order matters within
// the Op alternation: multi-character operators are listed before the
// single-character class so the stateful lexer's leftmost-first semantics
// pick the longer match.
var rawLexer = plexer.MustStateful(plexer.Rules{
	"Root": {
		{"Comment", `#[^\n]*`, nil},
		{"Newline", `\r?\n`, nil},
		{"Whitespace", `[ \t]+`, nil},
		{"Float", `(?:\d+\.\d*|\.\d+)(?:[eE][+-]?\d+)?|\d+[eE][+-]?\d+`, nil},
		{"Int", `\d+`, nil},
		{"String", `"(?:\\.|[^"\\])*"|'(?:\\.|[^'\\])*'`, nil},
		{"Ident", `[A-Za-z_][A-Za-z_0-9]*`, nil},
		{"Op", `\*\*|//|<<|>>|==|!=|<=|>=`, nil},
		{"Punct", `[+\-*/%&^|~<>(){}\[\],:=.@]`, nil},
	},
})

var symbols = rawLexer.Symbols()

var (
	tComment    = symbols["Comment"]
	tNewline    = symbols["Newline"]
	tWhitespace = symbols["Whitespace"]
	tFloat      = symbols["Float"]
	tInt        = symbols["Int"]
	tString     = symbols["String"]
	tIdent      = symbols["Ident"]
	tOp         = symbols["Op"]
	tPunct      = symbols["Punct"]
)

// Tokenize lexes src (from filename, used only for error positions) into
// the final Token stream including synthetic block markers.
func Tokenize(filename, src string) ([]token.Token, error) {
	if !strings.HasSuffix(src, "\n") {
		src += "\n"
	}

	lx, err := rawLexer.Lex(filename, strings.NewReader(src))
	if err != nil {
		return nil, &herrors.ParseError{Message: err.Error()}
	}

	var raw []plexer.Token
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, &herrors.ParseError{Message: err.Error()}
		}
		if tok.Type == plexer.EOF {
			break
		}
		raw = append(raw, tok)
	}

	lines, err := splitLines(raw)
	if err != nil {
		return nil, err
	}
	return emit(lines), nil
}

type rawLine struct {
	indent int
	tokens []plexer.Token
}

// splitLines groups raw tokens into logical lines: comments and blank lines
// are dropped, newlines nested inside brackets are insignificant, and the
// indent column is the width of the leading whitespace run of the first
// real token on the line.
func splitLines(raw []plexer.Token) ([]rawLine, error) {
	var lines []rawLine
	var cur []plexer.Token
	depth := 0
	col := 0
	startOfLine := true
	hasContent := false

	flush := func() {
		if hasContent {
			lines = append(lines, rawLine{indent: col, tokens: cur})
		}
		cur = nil
		hasContent = false
		startOfLine = true
		col = 0
	}

	for _, tok := range raw {
		switch tok.Type {
		case tComment:
			continue
		case tWhitespace:
			if startOfLine && depth == 0 {
				col = len(tok.Value)
			}
			continue
		case tNewline:
			if depth > 0 {
				continue
			}
			flush()
			continue
		default:
			startOfLine = false
			if tok.Type == tOp || tok.Type == tPunct {
				switch tok.Value {
				case "(", "[", "{":
					depth++
				case ")", "]", "}":
					if depth > 0 {
						depth--
					}
				}
			}
			cur = append(cur, tok)
			hasContent = true
		}
	}
	flush()

	if depth > 0 {
		end := raw[len(raw)-1].Pos
		return nil, &herrors.ParseError{
			Pos:     herrors.Position{Filename: end.Filename, Offset: end.Offset, Line: end.Line, Column: end.Column},
			Message: "unclosed bracket at end of input",
		}
	}
	return lines, nil
}

// emit walks the logical lines and produces the final token stream,
// synthesising NEWLINE between lines and INDENT/DEDENT whenever a line's
// indent column departs from the enclosing stack, mirroring the classic
// Python-tokenizer indent algorithm (four-space unit is the convention; any
// consistent width parses, matching lark's Indenter).
func emit(lines []rawLine) []token.Token {
	var out []token.Token
	stack := []int{0}

	// Synthetic markers take the position of the last real token before
	// them, so a parse error reported at one still points into the source.
	var last token.Token
	marker := func(k token.Kind) token.Token {
		return token.Token{Kind: k, Offset: last.Offset, Line: last.Line, Column: last.Column}
	}

	for i, line := range lines {
		if i > 0 {
			out = append(out, marker(token.NEWLINE))
		}

		top := stack[len(stack)-1]
		switch {
		case line.indent > top:
			stack = append(stack, line.indent)
			out = append(out, marker(token.INDENT))
		case line.indent < top:
			for len(stack) > 1 && line.indent < stack[len(stack)-1] {
				stack = stack[:len(stack)-1]
				out = append(out, marker(token.DEDENT))
			}
		}

		for _, t := range line.tokens {
			last = convert(t)
			out = append(out, last)
		}
	}

	if len(lines) > 0 {
		out = append(out, marker(token.NEWLINE))
	}
	for len(stack) > 1 {
		stack = stack[:len(stack)-1]
		out = append(out, marker(token.DEDENT))
	}
	out = append(out, marker(token.EOF))
	return out
}

func convert(t plexer.Token) token.Token {
	pos := token.Token{Offset: t.Pos.Offset, Line: t.Pos.Line, Column: t.Pos.Column}
	switch t.Type {
	case tInt:
		pos.Kind, pos.Text = token.INT, t.Value
	case tFloat:
		pos.Kind, pos.Text = token.FLOAT, t.Value
	case tString:
		pos.Kind, pos.Text = token.STRING, unescape(t.Value)
	case tIdent:
		pos.Kind, pos.Text = token.IDENT, t.Value
	default: // tOp, tPunct
		pos.Kind, pos.Text = token.PUNCT, t.Value
	}
	return pos
}

// unescape strips the surrounding quote and interprets standard backslash
// escapes, leaving the contents of a String literal (3).
func unescape(quoted string) string {
	if len(quoted) < 2 {
		return ""
	}
	body := quoted[1 : len(quoted)-1]

	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i == len(body)-1 {
			b.WriteByte(c)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '0':
			b.WriteByte(0)
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '\\', '\'', '"':
			b.WriteByte(body[i])
		default:
			b.WriteByte('\\')
			b.WriteByte(body[i])
		}
	}
	return b.String()
}
