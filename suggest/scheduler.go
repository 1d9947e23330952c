package suggest

import (
	"context"
	"errors"
	"time"
)

// ErrNoProvider is returned by Run when the scheduler was built without a
// completion backend.
var ErrNoProvider = errors.New("suggest: no provider configured")

// Status is the scheduler's observable lifecycle state.
type Status int

const (
	StatusIdle Status = iota
	StatusDebouncing
	StatusLoading
	StatusDisplaying
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusDebouncing:
		return "debouncing"
	case StatusLoading:
		return "loading"
	case StatusDisplaying:
		return "displaying"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// External maps internal states onto the coarse vocabulary surfaced to
// applications: idle, loading, success, or error.
func (s Status) External() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusDisplaying:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// Provider is the asynchronous completion backend: raw model output for a
// context, or an error. Implementations must honor ctx cancellation.
type Provider interface {
	Complete(ctx context.Context, c Context) (string, error)
}

// ProviderFunc adapts a plain function to the Provider interface.
type ProviderFunc func(ctx context.Context, c Context) (string, error)

func (f ProviderFunc) Complete(ctx context.Context, c Context) (string, error) {
	return f(ctx, c)
}

// DefaultDebounce is the quiet period required before a request is issued.
const DefaultDebounce = 500 * time.Millisecond

// Config tunes the scheduler. The zero value picks every default.
type Config struct {
	Debounce      time.Duration
	MinKeyLen     int
	MaxLines      int
	StopSequences []string

	// OnStatus observes lifecycle transitions. Errors arrive with
	// StatusError; everything else passes a nil error.
	OnStatus func(Status, error)
}

func normalizeConfig(cfg Config) Config {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.MinKeyLen <= 0 {
		cfg.MinKeyLen = DefaultMinKeyLen
	}
	if cfg.MaxLines <= 0 {
		cfg.MaxLines = DefaultMaxLines
	}
	return cfg
}

// pendingRequest is the single in-flight completion. Superseding work always
// cancels it before anything new starts.
type pendingRequest struct {
	key     string
	anchor  int
	version uint64
	gen     int
	cancel  context.CancelFunc
}

// Fetch describes the completion call the host must run asynchronously
// after a debounce generation survives to its timer fire. Ctx is cancelled
// when the request is superseded.
type Fetch struct {
	Ctx     context.Context
	Context Context
	Anchor  int
	Version uint64
	Gen     int
}

// Scheduler decides whether and when to ask the backend for a suggestion.
//
// It is a synchronous state machine: the host delivers document changes,
// debounce timer fires, and completion results as calls on a single logical
// thread, and the generation counter fences anything that arrives late.
// At most one request is ever outstanding.
type Scheduler struct {
	cfg      Config
	provider Provider

	status  Status
	err     error
	lastKey string
	pending *pendingRequest
	gen     int
}

func NewScheduler(provider Provider, cfg Config) *Scheduler {
	return &Scheduler{
		cfg:      normalizeConfig(cfg),
		provider: provider,
	}
}

func (s *Scheduler) Status() Status { return s.status }

// Err returns the error behind StatusError, nil otherwise.
func (s *Scheduler) Err() error { return s.err }

func (s *Scheduler) Config() Config { return s.cfg }

// UpdateConfig replaces the scheduler's tuning knobs. In-flight state is
// untouched; the new values apply from the next cycle.
func (s *Scheduler) UpdateConfig(cfg Config) {
	s.cfg = normalizeConfig(cfg)
}

// DocumentChanged restarts the debounce cycle after an edit: any displayed
// or in-flight suggestion is already invalid because the user's intent
// changed. It returns the new debounce generation; the host arms a timer
// for Config().Debounce and calls DebounceElapsed with this generation.
func (s *Scheduler) DocumentChanged() int {
	s.gen++
	s.cancelPending()
	s.setStatus(StatusDebouncing, nil)
	return s.gen
}

// CursorMoved invalidates in-flight work without starting a new cycle.
// Only edits re-arm the debounce.
func (s *Scheduler) CursorMoved() {
	s.gen++
	s.cancelPending()
	s.setStatus(StatusIdle, nil)
}

// DebounceElapsed is called when a debounce timer fires, with the document
// context, cursor offset, and version current at fire time. It returns the
// fetch the host must run, or nil when the timer generation was superseded,
// the key fails the minimum-length policy, or the key matches the previous
// request (both policy rejections are silent).
func (s *Scheduler) DebounceElapsed(gen int, c Context, offset int, version uint64) *Fetch {
	if gen != s.gen {
		return nil
	}

	key := DedupeKey(c.Prefix)
	if !keyMeetsPolicy(key, s.cfg.MinKeyLen) || key == s.lastKey {
		s.setStatus(StatusIdle, nil)
		return nil
	}

	s.lastKey = key
	ctx, cancel := context.WithCancel(context.Background())
	s.pending = &pendingRequest{
		key:     key,
		anchor:  offset,
		version: version,
		gen:     gen,
		cancel:  cancel,
	}
	s.setStatus(StatusLoading, nil)
	return &Fetch{
		Ctx:     ctx,
		Context: c,
		Anchor:  offset,
		Version: version,
		Gen:     gen,
	}
}

// Run executes the fetch against the configured provider. The host calls
// this off the event thread and feeds the outcome back through Resolve.
func (s *Scheduler) Run(f *Fetch) (string, error) {
	if s.provider == nil {
		return "", ErrNoProvider
	}
	return s.provider.Complete(f.Ctx, f.Context)
}

// Resolve validates a completed fetch against the current cursor offset and
// document version. Stale generations, cancelled requests, and results
// whose anchor no longer matches are discarded silently; backend failures
// surface through the status observer; a usable result comes back cleaned
// and anchored, ready for the overlay.
func (s *Scheduler) Resolve(gen int, curOffset int, curVersion uint64, raw string, err error) (Suggestion, bool) {
	p := s.pending
	if p == nil || p.gen != gen {
		return Suggestion{}, false
	}
	p.cancel()
	s.pending = nil

	if err != nil {
		if errors.Is(err, context.Canceled) {
			s.setStatus(StatusIdle, nil)
			return Suggestion{}, false
		}
		// Clear the dedupe key so the next quiet period may retry the
		// same line; there is no automatic retry.
		s.lastKey = ""
		s.setStatus(StatusError, err)
		return Suggestion{}, false
	}

	if p.anchor != curOffset || p.version != curVersion {
		// The user moved on while the backend was thinking.
		s.setStatus(StatusIdle, nil)
		return Suggestion{}, false
	}

	text := CleanMax(raw, s.cfg.StopSequences, s.cfg.MaxLines)
	if text == "" {
		s.setStatus(StatusIdle, nil)
		return Suggestion{}, false
	}

	s.setStatus(StatusDisplaying, nil)
	return Suggestion{Text: text, AnchorOffset: curOffset}, true
}

// Dismissed tells the scheduler the overlay left its showing state without
// a document edit (Escape, or cursor-move invalidation of the display).
func (s *Scheduler) Dismissed() {
	if s.status == StatusDisplaying {
		s.setStatus(StatusIdle, nil)
	}
}

// Request runs one completion immediately, bypassing debounce and dedupe
// coalescing. Failures never propagate: the result is the cleaned
// suggestion text or an empty string, with errors reported through the
// status observer.
func (s *Scheduler) Request(ctx context.Context, c Context) string {
	if s.provider == nil {
		return ""
	}
	if !keyMeetsPolicy(DedupeKey(c.Prefix), s.cfg.MinKeyLen) {
		return ""
	}

	s.setStatus(StatusLoading, nil)
	raw, err := s.provider.Complete(ctx, c)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			s.setStatus(StatusIdle, nil)
			return ""
		}
		s.setStatus(StatusError, err)
		return ""
	}

	text := CleanMax(raw, s.cfg.StopSequences, s.cfg.MaxLines)
	s.setStatus(StatusIdle, nil)
	return text
}

func (s *Scheduler) cancelPending() {
	if s.pending == nil {
		return
	}
	s.pending.cancel()
	s.pending = nil
}

func (s *Scheduler) setStatus(st Status, err error) {
	changed := st != s.status
	s.status = st
	s.err = err
	if s.cfg.OnStatus != nil && (changed || err != nil) {
		s.cfg.OnStatus(st, err)
	}
}
