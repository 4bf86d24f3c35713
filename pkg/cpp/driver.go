package cpp

import (
	"fmt"
	"os"
	"strings"
)

// Options configures a Preprocessor run. Unlike a general-purpose C
// preprocessor this engine recognizes only #define and #undef on its own
// input; everything else that might appear as a directive is reported as
// an error rather than silently passed through, since this engine never
// resolves #include or evaluates #if and has no conditional state to
// reconcile with an unrecognized line.
type Options struct {
	// Defines are applied, in order, before the first line of input is
	// read. Each entry is NAME=VALUE, applied as "#define NAME VALUE", or a
	// bare NAME, applied as "#define NAME 1", at the top of the file.
	Defines []string
	// Undefines are applied after Defines, in order.
	Undefines []string
}

// Preprocessor drives macro expansion across an entire file: it
// recognizes #define/#undef directive lines, hands every other line to
// an Expander, and reassembles the result.
type Preprocessor struct {
	ctx      *Context
	expander *Expander
}

// NewPreprocessor returns a Preprocessor with the standard built-in
// macros registered, plus opts.Defines and opts.Undefines applied.
func NewPreprocessor(opts Options) (*Preprocessor, error) {
	ctx := NewContext()
	p := &Preprocessor{ctx: ctx, expander: NewExpander(ctx)}
	for _, d := range opts.Defines {
		if err := p.applyCmdlineDefine(d); err != nil {
			return nil, err
		}
	}
	for _, name := range opts.Undefines {
		if err := ctx.Macros.Undef(name, SourceLoc{File: "<command-line>"}); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// applyCmdlineDefine implements -DNAME or -DNAME=VALUE.
func (p *Preprocessor) applyCmdlineDefine(spec string) error {
	name := spec
	value := "1"
	if idx := strings.IndexByte(spec, '='); idx >= 0 {
		name = spec[:idx]
		value = spec[idx+1:]
	}
	if !IsIdentifier(name) {
		return fmt.Errorf("invalid macro name in -D option: %q", spec)
	}
	return p.ctx.Macros.DefineSimple(name, value, SourceLoc{File: "<command-line>"})
}

// Macros returns the preprocessor's live macro table, letting callers
// inspect or further mutate definitions between runs.
func (p *Preprocessor) Macros() *MacroTable {
	return p.ctx.Macros
}

// PreprocessFile reads path and returns its fully macro-expanded text.
func (p *Preprocessor) PreprocessFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return p.PreprocessString(string(data), path)
}

// PreprocessString expands src, a complete file's contents attributed to
// file for diagnostics, line by line.
func (p *Preprocessor) PreprocessString(src, file string) (string, error) {
	lines := splitLogicalLines(src, file)
	var out strings.Builder
	for _, line := range lines {
		if len(line) > 0 && IsDirectiveHash(line[0]) {
			dir, err := ParseDirective(line[1:])
			if err != nil {
				return "", err
			}
			if err := dir.Apply(p.ctx.Macros); err != nil {
				return "", err
			}
			out.WriteByte('\n')
			continue
		}
		expanded, err := p.expander.Expand(line)
		if err != nil {
			return "", err
		}
		out.WriteString(TokensToString(expanded))
		out.WriteByte('\n')
	}
	return out.String(), nil
}

// splitLogicalLines tokenizes src and groups the result into one slice
// per logical line (line continuations already folded away by the
// lexer), dropping the newline tokens themselves.
func splitLogicalLines(src, file string) [][]Token {
	l := NewLexer(src, file)
	var lines [][]Token
	var cur []Token
	for {
		tok := l.NextToken()
		switch tok.Kind {
		case KindNewline:
			lines = append(lines, cur)
			cur = nil
		case KindEOF:
			if len(cur) > 0 {
				lines = append(lines, cur)
			}
			return lines
		default:
			cur = append(cur, tok)
		}
	}
}
