package resolver

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/charleschow/loteca-pipeline/internal/core/audit"
	"github.com/charleschow/loteca-pipeline/internal/core/teamname"
	"github.com/charleschow/loteca-pipeline/internal/telemetry"
)

// remoteTimeout bounds one provider lookup, independent of any caller.
const remoteTimeout = 30 * time.Second

// RemoteLookup finds an official team name for a free-text query.
// An empty name with a nil error means no match.
type RemoteLookup interface {
	ResolveTeam(ctx context.Context, name string) (string, error)
}

// Recorder persists fallback resolutions and learned aliases.
type Recorder interface {
	RecordUnresolved(ctx context.Context, key, raw, display, source string) error
	Learn(ctx context.Context, key, raw, canonical, source string) error
}

// Result is the outcome of resolving one name.
type Result struct {
	Input     string `json:"input"`
	Key       string `json:"key"`
	Canonical string `json:"canonical"`
	Source    string `json:"source"`
}

// Service resolves names through the static alias table, then aliases
// learned at runtime, then the remote provider, then the fallback formatter.
// Remote and recorder are optional. Safe for concurrent use.
type Service struct {
	canon  *teamname.Canonicalizer
	remote RemoteLookup
	store  Recorder
	origin string

	mu      sync.RWMutex
	learned map[string]string

	flight singleflight.Group
}

// NewService builds a resolver. origin tags audit rows ("resolver",
// "normalize", ...).
func NewService(canon *teamname.Canonicalizer, remote RemoteLookup, store Recorder, origin string) *Service {
	if canon == nil {
		canon = teamname.New(nil)
	}
	if origin == "" {
		origin = "resolver"
	}
	return &Service{
		canon:   canon,
		remote:  remote,
		store:   store,
		origin:  origin,
		learned: make(map[string]string),
	}
}

// Seed loads previously learned aliases into the overlay.
func (s *Service) Seed(learned []audit.LearnedAlias) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, la := range learned {
		s.addLearnedLocked(la.Key, la.Canonical)
	}
}

func (s *Service) addLearnedLocked(key, canonical string) {
	if key != "" {
		s.learned[key] = canonical
	}
	if ck := teamname.NormalizeKey(canonical); ck != "" {
		s.learned[ck] = canonical
	}
}

func (s *Service) lookupLearned(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	name, ok := s.learned[key]
	return name, ok
}

// Aliases is the number of distinct canonical teams the service knows
// without the provider, static and learned.
func (s *Service) Aliases() int {
	names := make(map[string]struct{})
	for _, c := range s.canon.Table().Canonicals() {
		names[c] = struct{}{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.learned {
		names[c] = struct{}{}
	}
	return len(names)
}

// Resolve returns the canonical name for name.
func (s *Service) Resolve(ctx context.Context, name string) Result {
	res := s.resolve(ctx, name)
	telemetry.Metrics.NamesResolved.WithLabelValues(res.Source).Inc()
	return res
}

// ResolveMany resolves names in order.
func (s *Service) ResolveMany(ctx context.Context, names []string) []Result {
	out := make([]Result, len(names))
	for i, n := range names {
		out[i] = s.Resolve(ctx, n)
	}
	return out
}

func (s *Service) resolve(ctx context.Context, name string) Result {
	r := s.canon.Resolve(name)
	res := Result{Input: name, Key: r.Key, Canonical: r.Name}
	if r.Matched {
		res.Source = telemetry.SourceAlias
		return res
	}
	if canonical, ok := s.lookupLearned(r.Key); ok {
		res.Canonical = canonical
		res.Source = telemetry.SourceLearned
		return res
	}
	if canonical := s.lookupRemote(ctx, name, r.Key); canonical != "" {
		res.Canonical = canonical
		res.Source = telemetry.SourceRemote
		return res
	}

	res.Source = telemetry.SourceFallback
	if s.store != nil && r.Key != "" {
		if err := s.store.RecordUnresolved(ctx, r.Key, name, r.Name, s.origin); err != nil {
			telemetry.Warnf("resolver: audit record failed: %v", err)
		}
	}
	return res
}

// lookupRemote queries the provider once per key even under concurrent
// requests, and learns the answer.
func (s *Service) lookupRemote(ctx context.Context, name, key string) string {
	if s.remote == nil || key == "" {
		return ""
	}
	v, err, _ := s.flight.Do(key, func() (any, error) {
		// Shared by every waiter on key, so it must outlive the first caller.
		lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), remoteTimeout)
		defer cancel()
		canonical, err := s.remote.ResolveTeam(lookupCtx, strings.TrimSpace(name))
		if err != nil || canonical == "" {
			return "", err
		}
		s.learn(lookupCtx, key, name, canonical)
		return canonical, nil
	})
	if err != nil {
		telemetry.Warnf("resolver: remote lookup %q failed: %v", name, err)
		return ""
	}
	return v.(string)
}

func (s *Service) learn(ctx context.Context, key, raw, canonical string) {
	s.mu.Lock()
	s.addLearnedLocked(key, canonical)
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.Learn(ctx, key, raw, canonical, telemetry.SourceRemote); err != nil {
			telemetry.Warnf("resolver: persist learned alias failed: %v", err)
		}
	}
	telemetry.Infof("resolver: learned %q -> %q", raw, canonical)
}
