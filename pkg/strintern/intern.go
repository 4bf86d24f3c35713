// Package strintern interns byte strings so that equal contents share a
// single handle, making string comparison during macro expansion an
// integer comparison rather than a byte-by-byte one.
//
// There is no third-party interning library in the reference corpus this
// module was built from, and the table itself is a handful of map
// operations behind a mutex; the standard library is the right tool here.
package strintern

import "sync"

// Handle identifies an interned string. Two handles are equal if and only
// if the strings they were registered with are equal.
type Handle int

// Table interns strings, handing out a stable Handle per distinct value.
// A Table is safe for concurrent use.
type Table struct {
	mu      sync.Mutex
	byText  map[string]Handle
	byToken []string
}

// New returns an empty interning table.
func New() *Table {
	return &Table{byText: make(map[string]Handle)}
}

// Init interns the given string, equivalent to str_init(c_string) in the
// original table: the whole string, already NUL-terminated conceptually,
// becomes one handle.
func (t *Table) Init(s string) Handle {
	return t.Register([]byte(s))
}

// Register interns buf and returns its handle. Equal byte contents always
// yield the same handle, matching str_register(buf, len) -> string.
func (t *Table) Register(buf []byte) Handle {
	s := string(buf)

	t.mu.Lock()
	defer t.mu.Unlock()

	if h, ok := t.byText[s]; ok {
		return h
	}
	h := Handle(len(t.byToken))
	t.byToken = append(t.byToken, s)
	t.byText[s] = h
	return h
}

// Text returns the string a handle was registered with.
func (t *Table) Text(h Handle) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.byToken[h]
}

// Cmp compares the strings behind two handles the way str_cmp(a, b) does:
// 0 if equal, a negative number if a < b, a positive number if a > b.
// Equal handles always compare equal without touching the underlying text.
func (t *Table) Cmp(a, b Handle) int {
	if a == b {
		return 0
	}
	ta, tb := t.Text(a), t.Text(b)
	switch {
	case ta < tb:
		return -1
	case ta > tb:
		return 1
	default:
		return 0
	}
}

// Len reports how many distinct strings have been interned.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.byToken)
}
