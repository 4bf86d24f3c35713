package cpp

import "fmt"

// DirectiveKind identifies which of the two directives this engine
// understands a line is. Every other directive a C source file might
// contain (#include, #if and its family, #pragma, #line, #error) is
// outside this engine's scope and is left for the line's caller to
// either ignore or reject.
type DirectiveKind int

const (
	DirDefine DirectiveKind = iota
	DirUndef
)

// Directive is a parsed #define or #undef line.
type Directive struct {
	Kind           DirectiveKind
	Name           string
	Params         []string
	IsFunctionLike bool
	Body           []Token
	Loc            SourceLoc
}

// UnknownDirectiveError reports a '#'-introduced line whose keyword is
// not one this engine implements.
type UnknownDirectiveError struct {
	Keyword string
	Loc     SourceLoc
}

func (e *UnknownDirectiveError) Error() string {
	return fmt.Sprintf("%s: unsupported preprocessor directive %q", e.Loc, e.Keyword)
}

// MalformedDefineError reports a #define line that isn't even
// syntactically well formed (missing name, unterminated parameter list).
type MalformedDefineError struct {
	Reason string
	Loc    SourceLoc
}

func (e *MalformedDefineError) Error() string {
	return fmt.Sprintf("%s: malformed #define: %s", e.Loc, e.Reason)
}

// ParseDirective parses the tokens of a directive line, not including
// the leading '#' itself. keyword is line[0]; it must be "define" or
// "undef" or ParseDirective returns an UnknownDirectiveError.
func ParseDirective(line []Token) (*Directive, error) {
	if len(line) == 0 {
		return nil, &MalformedDefineError{Reason: "empty directive", Loc: SourceLoc{}}
	}
	keyword := line[0]
	loc := keyword.Loc
	switch keyword.Text {
	case "define":
		return parseDefine(line[1:], loc)
	case "undef":
		return parseUndef(line[1:], loc)
	default:
		return nil, &UnknownDirectiveError{Keyword: keyword.Text, Loc: loc}
	}
}

func parseDefine(rest []Token, loc SourceLoc) (*Directive, error) {
	if len(rest) == 0 || rest[0].Kind != KindIdentifier {
		return nil, &MalformedDefineError{Reason: "missing macro name", Loc: loc}
	}
	name := rest[0].Text
	rest = rest[1:]

	if len(rest) > 0 && rest[0].Kind == KindLParen && rest[0].Leading == 0 {
		return parseFunctionDefine(name, rest[1:], loc)
	}

	body := TokCopy(rest)
	body = stripLeadingWhitespace(body)
	return &Directive{Kind: DirDefine, Name: name, Body: body, Loc: loc}, nil
}

func parseFunctionDefine(name string, rest []Token, loc SourceLoc) (*Directive, error) {
	var params []string
	paramIndex := make(map[string]int)

	i := 0
	if i < len(rest) && rest[i].Kind == KindRParen {
		i++
	} else {
		for {
			if i >= len(rest) || rest[i].Kind != KindIdentifier {
				return nil, &MalformedDefineError{Reason: "expected parameter name", Loc: loc}
			}
			pname := rest[i].Text
			paramIndex[pname] = len(params)
			params = append(params, pname)
			i++
			if i >= len(rest) {
				return nil, &MalformedDefineError{Reason: "unterminated parameter list", Loc: loc}
			}
			if rest[i].Kind == KindRParen {
				i++
				break
			}
			if rest[i].Kind != KindComma {
				return nil, &MalformedDefineError{Reason: "expected ',' or ')' in parameter list", Loc: loc}
			}
			i++
		}
	}

	body := lowerParams(rest[i:], paramIndex)
	body = stripLeadingWhitespace(body)
	return &Directive{Kind: DirDefine, Name: name, Params: params, IsFunctionLike: true, Body: body, Loc: loc}, nil
}

// lowerParams rewrites every identifier in body that names a parameter
// into a KindParam placeholder carrying that parameter's index, so the
// stored replacement list no longer depends on the spelling of the
// parameter names chosen at the definition site.
func lowerParams(body []Token, paramIndex map[string]int) []Token {
	out := make([]Token, len(body))
	for i, tok := range body {
		if tok.Kind == KindIdentifier {
			if idx, ok := paramIndex[tok.Text]; ok {
				out[i] = Token{Kind: KindParam, ParamIndex: idx, Leading: tok.Leading, Loc: tok.Loc}
				continue
			}
		}
		out[i] = tok
	}
	return out
}

func parseUndef(rest []Token, loc SourceLoc) (*Directive, error) {
	if len(rest) == 0 || rest[0].Kind != KindIdentifier {
		return nil, &MalformedDefineError{Reason: "missing macro name in #undef", Loc: loc}
	}
	return &Directive{Kind: DirUndef, Name: rest[0].Text, Loc: loc}, nil
}

// Apply installs or removes the directive's macro in mt.
func (d *Directive) Apply(mt *MacroTable) error {
	switch d.Kind {
	case DirDefine:
		if d.IsFunctionLike {
			return mt.DefineFunction(d.Name, d.Params, d.Body, d.Loc)
		}
		return mt.DefineObject(d.Name, d.Body, d.Loc)
	case DirUndef:
		return mt.Undef(d.Name, d.Loc)
	}
	return nil
}
