package cpp

import "testing"

func directiveLine(s string) []Token {
	toks := tokenize(s)
	// Strip the leading '#' the way the driver does before handing the
	// rest of the line to ParseDirective.
	if len(toks) > 0 && toks[0].Kind == KindHash {
		return toks[1:]
	}
	return toks
}

func TestParseDirectiveDefineObjectLike(t *testing.T) {
	d, err := ParseDirective(directiveLine("#define WIDTH 80"))
	if err != nil {
		t.Fatalf("ParseDirective: %v", err)
	}
	if d.Kind != DirDefine || d.Name != "WIDTH" || d.IsFunctionLike {
		t.Fatalf("got %+v, want an object-like #define of WIDTH", d)
	}
	if len(d.Body) != 1 || d.Body[0].Text != "80" {
		t.Errorf("Body = %v, want a single token \"80\"", d.Body)
	}
}

func TestParseDirectiveDefineFunctionLike(t *testing.T) {
	d, err := ParseDirective(directiveLine("#define ADD(a, b) ((a) + (b))"))
	if err != nil {
		t.Fatalf("ParseDirective: %v", err)
	}
	if !d.IsFunctionLike || len(d.Params) != 2 || d.Params[0] != "a" || d.Params[1] != "b" {
		t.Fatalf("got %+v, want function-like macro with params a, b", d)
	}
	paramCount := 0
	for _, tok := range d.Body {
		if tok.Kind == KindParam {
			paramCount++
		}
	}
	if paramCount != 2 {
		t.Errorf("Body has %d KindParam tokens, want 2", paramCount)
	}
}

func TestParseDirectiveDefineFunctionLikeNoParams(t *testing.T) {
	d, err := ParseDirective(directiveLine("#define FORTY_TWO() 42"))
	if err != nil {
		t.Fatalf("ParseDirective: %v", err)
	}
	if !d.IsFunctionLike || len(d.Params) != 0 {
		t.Fatalf("got %+v, want a zero-parameter function-like macro", d)
	}
}

func TestParseDirectiveUndef(t *testing.T) {
	d, err := ParseDirective(directiveLine("#undef WIDTH"))
	if err != nil {
		t.Fatalf("ParseDirective: %v", err)
	}
	if d.Kind != DirUndef || d.Name != "WIDTH" {
		t.Fatalf("got %+v, want #undef WIDTH", d)
	}
}

func TestParseDirectiveUnknownKeyword(t *testing.T) {
	_, err := ParseDirective(directiveLine("#include <stdio.h>"))
	if _, ok := err.(*UnknownDirectiveError); !ok {
		t.Errorf("got %v (%T), want *UnknownDirectiveError", err, err)
	}
}

func TestParseDirectiveMissingName(t *testing.T) {
	_, err := ParseDirective(directiveLine("#define"))
	if _, ok := err.(*MalformedDefineError); !ok {
		t.Errorf("got %v (%T), want *MalformedDefineError", err, err)
	}
}

func TestDirectiveApplyInstallsMacro(t *testing.T) {
	mt := NewMacroTable()
	d, err := ParseDirective(directiveLine("#define WIDTH 80"))
	if err != nil {
		t.Fatalf("ParseDirective: %v", err)
	}
	if err := d.Apply(mt); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !mt.IsDefined("WIDTH") {
		t.Errorf("WIDTH should be defined after Apply")
	}
}

func TestLParenMustBeAdjacentForFunctionLike(t *testing.T) {
	// A space before '(' makes this an object-like macro whose
	// replacement happens to start with a parenthesized expression.
	d, err := ParseDirective(directiveLine("#define FOO (1)"))
	if err != nil {
		t.Fatalf("ParseDirective: %v", err)
	}
	if d.IsFunctionLike {
		t.Errorf("a space before '(' should yield an object-like macro")
	}
}
