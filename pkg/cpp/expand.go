package cpp

// Expander performs macro replacement over a flat token list. It holds no
// state of its own beyond a Context, so the same Expander can be reused
// across many calls to Expand.
type Expander struct {
	ctx *Context
}

// NewExpander returns an Expander bound to ctx.
func NewExpander(ctx *Context) *Expander {
	return &Expander{ctx: ctx}
}

// Expand performs full macro replacement of toks: left-to-right
// scanning, function-like and object-like substitution, stringification,
// and token pasting. Each invocation's replacement is itself recursively
// expanded (with that macro's name pushed on ctx.Stack for the duration)
// before being appended to the output, so by the time it lands in out it
// is already in its final form — out is never rescanned. This bounds a
// macro that (directly or indirectly) mentions its own name to exactly
// one level of substitution, which is what ctx.Stack exists to guarantee;
// the one case it does not chase is a macro invocation whose opening
// parenthesis or closing argument is assembled from tokens on both sides
// of a replacement boundary, which this engine does not attempt to
// detect.
func (e *Expander) Expand(toks []Token) ([]Token, error) {
	// Fast path: a list that names no expandable macro is returned as is.
	expandable := false
	for _, tok := range toks {
		if tok.Kind == KindIdentifier && e.ctx.Macros.Lookup(tok.Text) != nil && !e.ctx.Stack.Contains(tok.Text) {
			expandable = true
			break
		}
	}
	if !expandable {
		return toks, nil
	}

	var out []Token
	i := 0
	for i < len(toks) {
		tok := toks[i]
		if tok.Kind != KindIdentifier {
			out = append(out, tok)
			i++
			continue
		}
		m := e.ctx.Macros.Lookup(tok.Text)
		if m == nil || e.ctx.Stack.Contains(tok.Text) {
			out = append(out, tok)
			i++
			continue
		}
		switch m.Kind {
		case MacroObject, MacroBuiltin:
			replacement, err := e.expandObjectLike(m, tok)
			if err != nil {
				return nil, err
			}
			out = append(out, replacement...)
			i++
		case MacroFunction:
			end, invoked, err := e.tryFunctionInvocation(toks, i)
			if err != nil {
				return nil, err
			}
			if !invoked {
				out = append(out, tok)
				i++
				continue
			}
			replacement, err := e.expandFunctionLike(m, toks[i:end], tok.Loc)
			if err != nil {
				return nil, err
			}
			out = append(out, replacement...)
			i = end
		}
	}
	return out, nil
}

func (e *Expander) expandObjectLike(m *Macro, invocation Token) ([]Token, error) {
	if m.Kind == MacroBuiltin {
		return inheritLeading(m.Builtin(invocation.Loc), invocation.Leading), nil
	}
	e.ctx.Stack.Push(m.Name)
	defer e.ctx.Stack.Pop()

	body := relocate(TokCopy(m.Replacement), invocation.Loc)
	pasted, err := ExpandPasteOperators(m.Name, body)
	if err != nil {
		return nil, err
	}
	pasted = inheritLeading(pasted, invocation.Leading)
	return e.Expand(pasted)
}

// inheritLeading gives the first token of toks the invocation's own
// leading-whitespace count, so replacing a macro call with its expansion
// does not change the cosmetic spacing around the call site; tokens
// have already been copied by the time this runs, so it is safe to
// mutate toks[0] directly.
func inheritLeading(toks []Token, leading int) []Token {
	if len(toks) > 0 {
		toks[0].Leading = leading
	}
	return toks
}

// tryFunctionInvocation looks for a parenthesized argument list
// immediately following toks[i] (the macro name). It reports the index
// just past the matching close paren and whether an invocation was
// found at all — a function-like macro name with no following '(' is
// left untouched, exactly like any other identifier.
func (e *Expander) tryFunctionInvocation(toks []Token, i int) (end int, invoked bool, err error) {
	j := i + 1
	if j >= len(toks) || toks[j].Kind != KindLParen {
		return 0, false, nil
	}
	depth := 0
	for k := j; k < len(toks); k++ {
		switch toks[k].Kind {
		case KindLParen:
			depth++
		case KindRParen:
			depth--
			if depth == 0 {
				return k + 1, true, nil
			}
		}
	}
	return 0, false, &TruncatedInvocationError{Name: toks[i].Text, Loc: toks[i].Loc}
}

// expandFunctionLike expands a single function-like macro invocation.
// invocation is the full token run from the macro name through its
// closing ')'.
func (e *Expander) expandFunctionLike(m *Macro, invocation []Token, loc SourceLoc) ([]Token, error) {
	leading := invocation[0].Leading
	// invocation is [name, '(', ...inside..., ')']; parseArguments only
	// wants the tokens strictly between the parentheses.
	args, err := parseArguments(invocation[2 : len(invocation)-1])
	if err != nil {
		return nil, err
	}
	if err := validateArgCount(m, args, loc); err != nil {
		return nil, err
	}

	e.ctx.Stack.Push(m.Name)
	defer e.ctx.Stack.Pop()

	substituted, err := e.substituteParams(m, args, loc)
	if err != nil {
		return nil, err
	}
	pasted, err := ExpandPasteOperators(m.Name, substituted)
	if err != nil {
		return nil, err
	}
	pasted = inheritLeading(pasted, leading)
	return e.Expand(pasted)
}

// substituteParams walks a macro body replacing each KindParam with its
// corresponding argument. An argument adjacent to '#' is stringified
// verbatim (not macro-expanded first); an argument adjacent to '##' is
// substituted verbatim so the paste sees its raw tokens; every other
// occurrence of a parameter is replaced by the argument's own fully
// macro-expanded form.
func (e *Expander) substituteParams(m *Macro, args [][]Token, loc SourceLoc) ([]Token, error) {
	expandedArgs := make([][]Token, len(args))
	for i, a := range args {
		expanded, err := e.Expand(TokCopy(a))
		if err != nil {
			return nil, err
		}
		expandedArgs[i] = expanded
	}

	var out []Token
	body := m.Replacement
	for i := 0; i < len(body); i++ {
		tok := body[i]
		switch tok.Kind {
		case KindHash:
			if i+1 >= len(body) || body[i+1].Kind != KindParam {
				return nil, &StringifyOperandError{Name: m.Name, Loc: loc}
			}
			arg := args[body[i+1].ParamIndex]
			str := Stringify(e.ctx.Strings, arg, loc)
			str.Leading = tok.Leading
			out = append(out, str)
			i++
		case KindParam:
			pasteAdjacent := (i > 0 && body[i-1].Kind == KindHashHash) ||
				(i+1 < len(body) && body[i+1].Kind == KindHashHash)
			var arg []Token
			if pasteAdjacent {
				arg = TokCopy(args[tok.ParamIndex])
			} else {
				arg = TokCopy(expandedArgs[tok.ParamIndex])
			}
			arg = relocate(arg, loc)
			if len(arg) == 0 {
				out = append(out, Token{Kind: KindPunctuator, Text: "", Loc: loc, Leading: tok.Leading})
				continue
			}
			// The first substituted token keeps the call-site argument's
			// own Leading, not the body placeholder's: the placeholder's
			// Leading describes the macro definition's own layout, not
			// what the caller actually wrote before this argument.
			out = append(out, arg...)
		default:
			cp := tok
			cp.Loc = loc
			out = append(out, cp)
		}
	}
	return out, nil
}

// parseArguments splits a function-like invocation's parenthesized
// contents (without the surrounding parens) into one token list per
// comma-separated argument, respecting nested parentheses so commas
// inside a nested call are not mistaken for argument separators. An
// invocation with zero arguments between empty parens yields a single
// empty argument, matching how the macro table's Params are counted.
func parseArguments(inside []Token) ([][]Token, error) {
	if len(inside) == 0 {
		return [][]Token{{}}, nil
	}
	var args [][]Token
	var cur []Token
	depth := 0
	for _, tok := range inside {
		switch tok.Kind {
		case KindLParen:
			depth++
		case KindRParen:
			depth--
		}
		if tok.Kind == KindComma && depth == 0 {
			args = append(args, cur)
			cur = nil
			continue
		}
		cur = append(cur, tok)
	}
	args = append(args, cur)
	return args, nil
}

func validateArgCount(m *Macro, args [][]Token, loc SourceLoc) error {
	want := len(m.Params)
	got := len(args)
	if want == 0 && got == 1 && len(args[0]) == 0 {
		return nil
	}
	if got != want {
		return &MalformedInvocationError{Name: m.Name, Want: want, Got: got, Loc: loc}
	}
	return nil
}

// ExpandString is a convenience wrapper that lexes input as a single
// logical line, expands it, and renders the result back to text.
func (e *Expander) ExpandString(input string) (string, error) {
	var toks []Token
	l := NewLexer(input, "<string>")
	for {
		tok := l.NextToken()
		if tok.Kind == KindEOF || tok.Kind == KindNewline {
			break
		}
		toks = append(toks, tok)
	}
	out, err := e.Expand(toks)
	if err != nil {
		return "", err
	}
	return TokensToString(out), nil
}
