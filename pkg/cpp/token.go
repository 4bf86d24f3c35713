// Package cpp implements the lcc C preprocessor's macro engine: macro
// storage, function-like and object-like expansion, stringification,
// token pasting, recursion avoidance, and the standard predefined macros.
package cpp

import (
	"fmt"

	"github.com/lcc-lang/lcc/pkg/strintern"
)

// Kind identifies the lexical category of a Token.
type Kind int

const (
	KindEOF Kind = iota
	KindIdentifier
	KindNumber
	KindCharConst
	KindString
	KindPunctuator
	KindHash     // # outside a macro invocation (stringify operator)
	KindHashHash // ##
	KindLParen
	KindRParen
	KindComma
	KindParam   // parameter placeholder produced when a macro body is stored
	KindNewline // logical-line boundary
)

func (k Kind) String() string {
	switch k {
	case KindEOF:
		return "EOF"
	case KindIdentifier:
		return "IDENTIFIER"
	case KindNumber:
		return "NUMBER"
	case KindCharConst:
		return "CHAR_CONST"
	case KindString:
		return "STRING"
	case KindPunctuator:
		return "PUNCTUATOR"
	case KindHash:
		return "HASH"
	case KindHashHash:
		return "HASHHASH"
	case KindLParen:
		return "LPAREN"
	case KindRParen:
		return "RPAREN"
	case KindComma:
		return "COMMA"
	case KindParam:
		return "PARAM"
	case KindNewline:
		return "NEWLINE"
	default:
		return "UNKNOWN"
	}
}

// SourceLoc is a position in a source file.
type SourceLoc struct {
	File   string
	Line   int
	Column int
}

func (l SourceLoc) String() string {
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// NumValue is the parsed value of a KindNumber token: a C integer constant
// tagged with its signedness and width, per the data model's requirement
// that numeric payloads compare "by type and value" rather than by
// spelling. Preprocessing numbers that do not parse as a plain C integer
// constant (floating constants, stray pp-numbers like "1.2.3") keep Num
// nil on their Token and fall back to spelling comparison.
type NumValue struct {
	Value  uint64
	Signed bool
	Width  int // bit width: 8, 16, 32, or 64
}

// Token is an atomic lexeme. Kind selects which payload fields are
// meaningful: Text for identifiers, strings, char constants and
// punctuators; Num for numbers that parsed as a plain integer constant;
// ParamIndex for KindParam. Leading is the count of whitespace characters
// (including folded comments) preceding this token on its source line,
// used by the stringifier and by expansion's cosmetic whitespace
// inheritance — it carries no semantic weight of its own. Str is the
// interned handle for a KindString token produced by the stringify
// operator (see Stringify); Text still carries the buffer's spelling for
// re-lexing and output, but Str is the canonical payload a compiler
// front-end would actually compare and store. Tokens that never went
// through Stringify leave Str at its zero value.
type Token struct {
	Kind       Kind
	Text       string
	Num        *NumValue
	ParamIndex int
	Leading    int
	Str        strintern.Handle
	Loc        SourceLoc
}

// TokEqual implements tok_cmp: tokens compare equal when kind and payload
// coincide. Numbers compare by type and value when both sides parsed to a
// NumValue, falling back to spelling; placeholders compare by index.
func TokEqual(a, b Token) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindParam:
		return a.ParamIndex == b.ParamIndex
	case KindNumber:
		if a.Num != nil && b.Num != nil {
			return a.Num.Signed == b.Num.Signed && a.Num.Width == b.Num.Width && a.Num.Value == b.Num.Value
		}
		return a.Text == b.Text
	default:
		return a.Text == b.Text
	}
}

// TokensEqual compares two token lists element-wise with TokEqual.
func TokensEqual(a, b []Token) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !TokEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Spelling returns the canonical textual form of a token, used by the
// stringifier, the paster, and TokensToString.
func (t Token) Spelling() string {
	switch t.Kind {
	case KindHash:
		return "#"
	case KindHashHash:
		return "##"
	case KindLParen:
		return "("
	case KindRParen:
		return ")"
	case KindComma:
		return ","
	case KindNewline:
		return "\n"
	case KindEOF:
		return ""
	default:
		return t.Text
	}
}

// TokensToString concatenates token spellings, inserting a single space
// before every token after the first whose recorded leading whitespace is
// positive, so the result reads naturally.
func TokensToString(tokens []Token) string {
	var out []byte
	for i, tok := range tokens {
		if i > 0 && tok.Leading > 0 {
			out = append(out, ' ')
		}
		out = append(out, tok.Spelling()...)
	}
	return string(out)
}

// IsIdentifier reports whether s is a valid C identifier spelling.
func IsIdentifier(s string) bool {
	if len(s) == 0 {
		return false
	}
	if !isIdentStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentContinue(s[i]) {
			return false
		}
	}
	return true
}
