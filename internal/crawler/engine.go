package crawler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/nao1215/facultyscan/internal/dom"
	"github.com/nao1215/facultyscan/internal/model"
)

// State is the lifecycle state of an Engine run.
type State int

const (
	// StateIdle means Run has not been called.
	StateIdle State = iota

	// StateRunning means the frontier is being processed.
	StateRunning

	// StateFound means the target page was found and the frontier dropped.
	StateFound

	// StateExhausted means the frontier emptied without finding the target.
	StateExhausted

	// StateCancelled means the context ended the run.
	StateCancelled
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateFound:
		return "found"
	case StateExhausted:
		return "exhausted"
	case StateCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	// ErrInvalidSeedURL is returned when the seed is not an absolute http(s) URL.
	ErrInvalidSeedURL = errors.New("invalid seed URL: must be an absolute http or https URL")

	// ErrAlreadyRun is returned when Run is called twice on one Engine.
	ErrAlreadyRun = errors.New("crawl engine already ran")
)

// PageStore persists every successfully fetched page.
type PageStore interface {
	StorePage(ctx context.Context, page *model.Page) error
}

// Result summarizes a finished run.
type Result struct {
	// State is the terminal state.
	State State

	// Target is the matched page when State is StateFound.
	Target *model.Page

	// Document is the parsed Target.
	Document *dom.Document

	// Visited lists the URLs that completed a visit, in visit order.
	// The target page is not included.
	Visited []string

	// Failed lists the URLs that were unavailable.
	Failed []string

	// PagesFetched counts successful fetches, target included.
	PagesFetched int

	// Discarded counts frontier entries dropped when the target was found.
	Discarded int
}

// Engine crawls breadth-first from a seed until the target page is found.
// The frontier and visited set belong to a single Run call; an Engine
// runs once.
//
// Fetching is strictly sequential. FIFO order and the stop point are only
// deterministic because one URL is processed at a time.
type Engine struct {
	seed     string
	fetcher  Fetcher
	detector *TargetDetector
	links    *LinkExtractor
	store    PageStore
	logger   *slog.Logger

	frontier frontier
	visited  *URLSet
	failed   *URLSet
	state    State
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithPageStore sets where fetched pages are persisted.
// Without one, pages are not stored.
func WithPageStore(store PageStore) EngineOption {
	return func(e *Engine) {
		e.store = store
	}
}

// WithEngineLogger sets a custom logger.
func WithEngineLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates an Engine that starts at seedURL.
func NewEngine(seedURL string, fetcher Fetcher, detector *TargetDetector, opts ...EngineOption) (*Engine, error) {
	seed, err := url.Parse(seedURL)
	if err != nil || !seed.IsAbs() || (seed.Scheme != "http" && seed.Scheme != "https") || seed.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSeedURL, seedURL)
	}

	e := &Engine{
		seed:     seed.String(),
		fetcher:  fetcher,
		detector: detector,
		links:    NewLinkExtractor(),
		logger:   slog.Default(),
		state:    StateIdle,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// State returns the current state.
func (e *Engine) State() State {
	return e.state
}

// Run processes the frontier until the target is found or the frontier is
// empty. Unavailable pages, storage failures and malformed markup are
// logged and skipped; the only error returned besides ErrAlreadyRun is the
// context's.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	if e.state != StateIdle {
		return nil, ErrAlreadyRun
	}
	e.state = StateRunning
	e.frontier = frontier{}
	e.visited = NewURLSet()
	e.failed = NewURLSet()
	e.frontier.push(e.seed)

	result := &Result{}
	for e.frontier.len() > 0 {
		if err := ctx.Err(); err != nil {
			return e.finish(result, StateCancelled), err
		}

		pageURL := e.frontier.pop()
		if e.visited.Contains(pageURL) || e.failed.Contains(pageURL) {
			continue
		}

		e.logger.Info("visiting", "url", pageURL)
		page, err := e.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return e.finish(result, StateCancelled), ctxErr
			}
			e.logger.Warn("failed to retrieve page", "url", pageURL, "error", err)
			e.failed.Add(pageURL)
			continue
		}
		result.PagesFetched++

		if e.store != nil {
			if err := e.store.StorePage(ctx, page); err != nil {
				e.logger.Error("failed to store page", "url", pageURL, "error", err)
			}
		}

		doc, err := dom.ParseBytes(page.Content)
		if err != nil {
			e.logger.Warn("failed to parse page", "url", pageURL, "error", err)
			e.visited.Add(pageURL)
			continue
		}

		if e.detector.IsTarget(doc) {
			result.Discarded = e.frontier.clear()
			result.Target = page
			result.Document = doc
			e.logger.Info("target page found", "url", pageURL, "discarded", result.Discarded)
			return e.finish(result, StateFound), nil
		}

		e.visited.Add(pageURL)
		links := e.links.Extract(doc, page.Origin(), e.visited)
		for _, link := range links {
			e.frontier.push(link)
		}
		e.logger.Debug("links queued", "url", pageURL, "count", len(links), "frontier", e.frontier.len())
	}

	e.logger.Info("frontier exhausted without finding target", "visited", e.visited.Len())
	return e.finish(result, StateExhausted), nil
}

// finish moves the engine into its terminal state.
func (e *Engine) finish(result *Result, state State) *Result {
	e.state = state
	result.State = state
	result.Visited = e.visited.Slice()
	result.Failed = e.failed.Slice()
	return result
}
