package teamname

import "slices"

// Entry is one canonical name with the spellings that should resolve to it.
type Entry struct {
	Canonical string   `yaml:"canonical"`
	Variants  []string `yaml:"variants"`
}

// AliasTable maps normalized keys to canonical display names.
// It is read-only once built and safe for concurrent lookups.
type AliasTable struct {
	byKey map[string]string
}

// Builder accumulates registrations for an AliasTable.
type Builder struct {
	byKey map[string]string
}

func NewBuilder() *Builder {
	return &Builder{byKey: make(map[string]string)}
}

// Register maps the canonical name and every variant to canonical.
// A key registered earlier is overwritten without notice.
func (b *Builder) Register(canonical string, variants ...string) *Builder {
	if k := NormalizeKey(canonical); k != "" {
		b.byKey[k] = canonical
	}
	for _, v := range variants {
		if k := NormalizeKey(v); k != "" {
			b.byKey[k] = canonical
		}
	}
	return b
}

// Build snapshots the registrations. The builder may keep registering
// without affecting tables already built.
func (b *Builder) Build() *AliasTable {
	m := make(map[string]string, len(b.byKey))
	for k, v := range b.byKey {
		m[k] = v
	}
	return &AliasTable{byKey: m}
}

// NewAliasTable registers entries in order.
func NewAliasTable(entries ...Entry) *AliasTable {
	b := NewBuilder()
	for _, e := range entries {
		b.Register(e.Canonical, e.Variants...)
	}
	return b.Build()
}

// Lookup returns the canonical name stored under an already-normalized key.
func (t *AliasTable) Lookup(key string) (string, bool) {
	if t == nil {
		return "", false
	}
	c, ok := t.byKey[key]
	return c, ok
}

func (t *AliasTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.byKey)
}

// Canonicals returns the distinct canonical names in the table.
func (t *AliasTable) Canonicals() []string {
	if t == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(t.byKey))
	out := make([]string, 0, len(t.byKey))
	for _, c := range t.byKey {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// Collision describes a key claimed by more than one canonical name.
// The last registration is the one the table keeps.
type Collision struct {
	Key       string
	Previous  string
	Canonical string
	Spelling  string
}

// FindCollisions replays entries in registration order and reports every
// key that was re-pointed to a different canonical name.
func FindCollisions(entries []Entry) []Collision {
	seen := make(map[string]string)
	var out []Collision
	claim := func(canonical, spelling string) {
		k := NormalizeKey(spelling)
		if k == "" {
			return
		}
		if prev, ok := seen[k]; ok && prev != canonical {
			out = append(out, Collision{Key: k, Previous: prev, Canonical: canonical, Spelling: spelling})
		}
		seen[k] = canonical
	}
	for _, e := range entries {
		claim(e.Canonical, e.Canonical)
		for _, v := range e.Variants {
			claim(e.Canonical, v)
		}
	}
	return out
}
