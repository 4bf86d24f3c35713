package cpp

// This file collects the token-list algebra the rest of the package
// builds on: the Go slice replacements for the source's buffer-management
// primitives, reshaped around the garbage collector instead of explicit
// ownership transfer.

// TokLen returns the number of tokens in a list.
func TokLen(toks []Token) int {
	return len(toks)
}

// TokCopy returns an independent copy of toks. Expansion routines copy a
// macro's stored replacement list before relocating or rewriting it so
// the table's own copy is never mutated in place.
func TokCopy(toks []Token) []Token {
	out := make([]Token, len(toks))
	copy(out, toks)
	return out
}

// TokAppend appends tok to toks, growing as needed.
func TokAppend(toks []Token, tok Token) []Token {
	return append(toks, tok)
}

// TokConcat returns the concatenation of a and b as a freshly allocated
// list; neither argument is mutated.
func TokConcat(a, b []Token) []Token {
	out := make([]Token, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}

// relocate returns a copy of toks with every token's Loc replaced by loc,
// used when a macro's replacement list is substituted at an invocation
// site: diagnostics about the expanded tokens should point at the call,
// not at the macro's own definition.
func relocate(toks []Token, loc SourceLoc) []Token {
	out := TokCopy(toks)
	for i := range out {
		out[i].Loc = loc
	}
	return out
}

// stripLeadingWhitespace zeroes the Leading count of the first token in a
// list, since the whitespace separating a #define's name or parameter
// list from its body is not part of the replacement list.
func stripLeadingWhitespace(toks []Token) []Token {
	if len(toks) == 0 {
		return toks
	}
	out := TokCopy(toks)
	out[0].Leading = 0
	return out
}
