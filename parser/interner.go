package parser

// Interner keeps one canonical copy of repeated strings. Transaction files
// repeat the same client names and command codes on many lines.
type Interner struct {
	pool map[string]string
}

// NewInterner creates an interner with the given initial capacity.
func NewInterner(capacity int) *Interner {
	return &Interner{
		pool: make(map[string]string, capacity),
	}
}

// Intern returns the canonical instance of s.
func (i *Interner) Intern(s string) string {
	if interned, ok := i.pool[s]; ok {
		return interned
	}
	i.pool[s] = s
	return s
}

// InternBytes interns the string form of b.
func (i *Interner) InternBytes(b []byte) string {
	if interned, ok := i.pool[string(b)]; ok {
		return interned
	}
	s := string(b)
	i.pool[s] = s
	return s
}

// Size returns the number of distinct strings held.
func (i *Interner) Size() int {
	return len(i.pool)
}
