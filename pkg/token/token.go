// Package token defines the token stream the lexer produces and the parser
// consumes: names, literals, operator/punctuation units and the synthetic
// NEWLINE/INDENT/DEDENT markers that carry block structure (4.1.1).
package token

import "fmt"

// Kind discriminates a Token's lexical class.
type Kind int

const (
	EOF Kind = iota
	NEWLINE
	INDENT
	DEDENT
	IDENT
	INT
	FLOAT
	STRING
	// PUNCT covers every symbolic operator from the table in 3 and the
	// bracket/punctuation set in 4.1.1; Text carries the exact characters
	// (e.g. "**", "(", "/"). The word operators not, in, and, or are IDENT
	// tokens.
	PUNCT
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case NEWLINE:
		return "NEWLINE"
	case INDENT:
		return "INDENT"
	case DEDENT:
		return "DEDENT"
	case IDENT:
		return "IDENT"
	case INT:
		return "INT"
	case FLOAT:
		return "FLOAT"
	case STRING:
		return "STRING"
	case PUNCT:
		return "PUNCT"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Token is one lexical unit with its source position.
type Token struct {
	Kind   Kind
	Text   string
	Offset int
	Line   int
	Column int
}

func (t Token) String() string {
	if t.Text == "" {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
}

// Keywords is the closed set of reserved words recognised in keyword
// position; elsewhere an IDENT with the same text is a plain name.
var Keywords = map[string]bool{
	"import":  true,
	"include": true,
	"with":    true,
	"product": true,
	"union":   true,
	"table":   true,
	"None":    true,
	"True":    true,
	"False":   true,
	"not":     true,
	"in":      true,
	"and":     true,
	"or":      true,
}

// IsKeyword reports whether an IDENT token with this text is one of the
// reserved words.
func IsKeyword(text string) bool {
	return Keywords[text]
}
