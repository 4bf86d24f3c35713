package cpp

import "github.com/lcc-lang/lcc/pkg/strintern"

// Stringify implements the '#' operator: it turns an argument's token
// sequence into a single string-literal token. Whitespace between the
// argument's own tokens is folded down to exactly one space wherever a
// token records positive leading whitespace and is not the first token;
// surrounding quotes and backslashes inside string and character-constant
// tokens are escaped so the result re-lexes as the equivalent literal.
// The resulting buffer is registered in table so that two stringify
// operations producing the same text share a handle; the registered
// handle, not just the buffer's spelling, is the token's payload.
func Stringify(table *strintern.Table, args []Token, loc SourceLoc) Token {
	var buf []byte
	buf = append(buf, '"')
	for i, tok := range args {
		if i > 0 && tok.Leading > 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, escapeForStringify(tok)...)
	}
	buf = append(buf, '"')
	h := table.Register(buf)
	return Token{Kind: KindString, Text: string(buf), Str: h, Loc: loc}
}

// escapeForStringify returns a token's spelling with backslashes and
// double quotes escaped when the token is itself a string or character
// constant, per the stringize operator's rule that such tokens keep
// their own quoting, with each '"' and '\' preceded by a backslash.
func escapeForStringify(t Token) string {
	spelling := t.Spelling()
	if t.Kind != KindString && t.Kind != KindCharConst {
		return spelling
	}
	out := make([]byte, 0, len(spelling)+2)
	for i := 0; i < len(spelling); i++ {
		c := spelling[i]
		if c == '"' || c == '\\' {
			out = append(out, '\\')
		}
		out = append(out, c)
	}
	return string(out)
}

// Paste implements one application of the '##' operator: it concatenates
// the spellings of left and right and re-lexes the result. A successful
// paste must retokenize as exactly one preprocessing token that consumes
// the entire concatenated text; anything else — the two halves forming
// two tokens, or trailing garbage the lexer cannot consume — is an
// InvalidPasteError, since a partial or multi-token result does not
// correspond to any single token the rest of the engine could use in
// place of the pasted pair.
func Paste(left, right Token, loc SourceLoc) (Token, error) {
	combined := left.Spelling() + right.Spelling()
	if combined == "" {
		return Token{Kind: KindPunctuator, Text: "", Loc: loc}, nil
	}
	l := NewLexer(combined, loc.File)
	first := l.NextToken()
	rest := l.NextToken()
	if rest.Kind != KindEOF || first.Kind == KindEOF {
		return Token{}, &InvalidPasteError{Left: left.Spelling(), Right: right.Spelling(), Loc: loc}
	}
	first.Loc = loc
	first.Leading = left.Leading
	return first, nil
}

// ExpandPasteOperators folds every KindHashHash operator in toks into the
// tokens on either side of it, working left to right so a chain like
// a ## b ## c pastes incrementally. A '##' at the very start or end of
// the list is a DanglingPasteError: the operator always needs a real
// token on both sides.
func ExpandPasteOperators(name string, toks []Token) ([]Token, error) {
	out := make([]Token, 0, len(toks))
	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		if tok.Kind != KindHashHash {
			out = append(out, tok)
			continue
		}
		if len(out) == 0 || i+1 >= len(toks) {
			return nil, &DanglingPasteError{Name: name, Loc: tok.Loc}
		}
		left := out[len(out)-1]
		right := toks[i+1]
		pasted, err := Paste(left, right, tok.Loc)
		if err != nil {
			return nil, err
		}
		out[len(out)-1] = pasted
		i++
	}
	return out, nil
}
