package teamname

// Fixture is one home/away pairing as read from a provider.
// Row is an optional caller index back to the source record.
type Fixture struct {
	Row     int
	MatchID string
	Home    string
	Away    string
}

// NormalizedFixture carries canonical names alongside the provider's originals.
type NormalizedFixture struct {
	Row      int
	MatchID  string
	Home     string
	Away     string
	HomeOrig string
	AwayOrig string
}

// NormalizeFixtures canonicalizes both names of every fixture, preserving order.
func (c *Canonicalizer) NormalizeFixtures(in []Fixture) []NormalizedFixture {
	out := make([]NormalizedFixture, len(in))
	for i, f := range in {
		out[i] = NormalizedFixture{
			Row:      f.Row,
			MatchID:  f.MatchID,
			Home:     c.Canonicalize(f.Home),
			Away:     c.Canonicalize(f.Away),
			HomeOrig: f.Home,
			AwayOrig: f.Away,
		}
	}
	return out
}

// DedupeFixtures drops exact (MatchID, Home, Away) repeats, keeping the first.
func DedupeFixtures(in []NormalizedFixture) []NormalizedFixture {
	type triple struct{ id, home, away string }
	seen := make(map[triple]struct{}, len(in))
	out := make([]NormalizedFixture, 0, len(in))
	for _, f := range in {
		k := triple{f.MatchID, f.Home, f.Away}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, f)
	}
	return out
}
