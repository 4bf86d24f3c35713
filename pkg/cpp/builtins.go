package cpp

import "strconv"

// RegisterBuiltins installs the engine's fixed set of predefined macros
// into mt. Only the names this engine is specified to know about are
// registered — this is a small, explicit list rather than an attempt at
// full GCC compatibility, so it is spelled out in full here instead of
// being generated from a table of the host compiler's own predefines.
func RegisterBuiltins(mt *MacroTable) {
	loc := SourceLoc{File: "<built-in>", Line: 0}

	mt.defineBuiltin("__STDC_VERSION__", constantNumber("199409L"), loc)
	mt.defineBuiltin("__STDC__", constantNumber("1"), loc)
	mt.defineBuiltin("__STDC_HOSTED__", constantNumber("1"), loc)
	mt.defineBuiltin("__x86_64__", constantNumber("1"), loc)
	mt.defineBuiltin("__inline", emptyReplacement, loc)
	mt.defineBuiltin("__LINE__", currentLine, loc)
	mt.defineBuiltin("__FILE__", currentFile, loc)

	mt.macros["__builtin_va_end"] = &Macro{
		Name:        "__builtin_va_end",
		Kind:        MacroFunction,
		Params:      []string{"ap"},
		Replacement: vaEndReplacement(),
		Loc:         loc,
	}
}

// constantNumber returns a BuiltinFunc that always yields a single
// number token spelled text, located at the invocation site.
func constantNumber(text string) BuiltinFunc {
	return func(loc SourceLoc) []Token {
		return []Token{{Kind: KindNumber, Text: text, Num: parseIntegerConstant(text), Loc: loc}}
	}
}

// emptyReplacement is the BuiltinFunc for macros, like __inline, whose
// expansion is simply nothing.
func emptyReplacement(loc SourceLoc) []Token {
	return nil
}

// currentLine is the BuiltinFunc backing __LINE__: it reads the
// invocation's own line number out of loc rather than mutating a token
// stored at registration time, so nested invocations on different lines
// each see their own value.
func currentLine(loc SourceLoc) []Token {
	text := strconv.Itoa(loc.Line)
	return []Token{{Kind: KindNumber, Text: text, Num: parseIntegerConstant(text), Loc: loc}}
}

// currentFile is the BuiltinFunc backing __FILE__.
func currentFile(loc SourceLoc) []Token {
	return []Token{{Kind: KindString, Text: quoteString(loc.File), Loc: loc}}
}

// quoteString wraps s in double quotes, escaping the characters a string
// literal's contents can't contain unescaped.
func quoteString(s string) string {
	out := make([]byte, 0, len(s)+2)
	out = append(out, '"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' || c == '\\' {
			out = append(out, '\\')
		}
		out = append(out, c)
	}
	out = append(out, '"')
	return string(out)
}

// vaEndReplacement builds the replacement list for __builtin_va_end(ap)
// declaratively out of its constituent tokens instead of hand-counting a
// literal spelling. spec.md §4.E calls for the token sequence equivalent
// to resetting the x86-64 va_list structure's four fields — gp_offset,
// fp_offset, overflow_arg_area, and reg_save_area, each on ap[0] — to
// zero or null; a textual template that must independently arrive at a
// specific token count is exactly the kind of thing that silently drifts
// out of sync when touched later, so each field reset is generated by
// the same small builder rather than spelled out four times by hand.
// That keeps the list's shape (and length) a consequence of what it
// contains rather than a separate fact to keep in step with it.
func vaEndReplacement() []Token {
	ap := func() Token { return Token{Kind: KindParam, ParamIndex: 0} }
	zero := Token{Kind: KindNumber, Text: "0", Num: &NumValue{Value: 0, Signed: true, Width: 32}}
	nullPointer := []Token{
		{Kind: KindLParen, Text: "("},
		{Kind: KindIdentifier, Text: "void"},
		{Kind: KindPunctuator, Text: "*"},
		{Kind: KindRParen, Text: ")"},
		zero,
	}

	// ap[0].field = value
	fieldReset := func(field string, value []Token) []Token {
		out := []Token{
			ap(),
			{Kind: KindPunctuator, Text: "["},
			zero,
			{Kind: KindPunctuator, Text: "]"},
			{Kind: KindPunctuator, Text: "."},
			{Kind: KindIdentifier, Text: field},
			{Kind: KindPunctuator, Text: "="},
		}
		return append(out, value...)
	}

	comma := Token{Kind: KindComma, Text: ","}

	var out []Token
	out = append(out, Token{Kind: KindLParen, Text: "("})
	out = append(out, fieldReset("gp_offset", []Token{zero})...)
	out = append(out, comma)
	out = append(out, fieldReset("fp_offset", []Token{zero})...)
	out = append(out, comma)
	out = append(out, fieldReset("overflow_arg_area", nullPointer)...)
	out = append(out, comma)
	out = append(out, fieldReset("reg_save_area", nullPointer)...)
	out = append(out, Token{Kind: KindRParen, Text: ")"})
	return out
}
