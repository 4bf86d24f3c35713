package cpp

import "fmt"

// RedefinitionError reports that a macro was redefined with a body that
// differs from its existing definition, token for token.
type RedefinitionError struct {
	Name string
	Loc  SourceLoc
}

func (e *RedefinitionError) Error() string {
	return fmt.Sprintf("%s: %q redefined incompatibly with its previous definition", e.Loc, e.Name)
}

// DanglingPasteError reports a ## operator with no token on one of its
// sides within a macro replacement list.
type DanglingPasteError struct {
	Name string
	Loc  SourceLoc
}

func (e *DanglingPasteError) Error() string {
	return fmt.Sprintf("%s: '##' cannot appear at the start or end of a macro replacement list (in %q)", e.Loc, e.Name)
}

// InvalidPasteError reports that pasting two tokens produced text that
// does not itself retokenize to a single valid preprocessing token.
type InvalidPasteError struct {
	Left, Right string
	Loc         SourceLoc
}

func (e *InvalidPasteError) Error() string {
	return fmt.Sprintf("%s: pasting %q and %q does not form a valid token", e.Loc, e.Left, e.Right)
}

// MalformedInvocationError reports a function-like macro invocation whose
// argument count does not match its parameter list.
type MalformedInvocationError struct {
	Name string
	Want int
	Got  int
	Loc  SourceLoc
}

func (e *MalformedInvocationError) Error() string {
	return fmt.Sprintf("%s: macro %q requires %d argument(s), got %d", e.Loc, e.Name, e.Want, e.Got)
}

// TruncatedInvocationError reports a function-like macro invocation whose
// closing parenthesis was never found before end of input.
type TruncatedInvocationError struct {
	Name string
	Loc  SourceLoc
}

func (e *TruncatedInvocationError) Error() string {
	return fmt.Sprintf("%s: unterminated invocation of function-like macro %q", e.Loc, e.Name)
}

// StringifyOperandError reports a '#' operator in a function-like macro
// body that is not immediately followed by one of its parameters.
type StringifyOperandError struct {
	Name string
	Loc  SourceLoc
}

func (e *StringifyOperandError) Error() string {
	return fmt.Sprintf("%s: '#' is not followed by a macro parameter in %q", e.Loc, e.Name)
}

// UndefBuiltinError reports an attempt to #undef a name the engine
// reserves as a dynamically computed built-in.
type UndefBuiltinError struct {
	Name string
	Loc  SourceLoc
}

func (e *UndefBuiltinError) Error() string {
	return fmt.Sprintf("%s: %q is a built-in macro and cannot be undefined", e.Loc, e.Name)
}
