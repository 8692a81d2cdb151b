package inference

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// TokenSource produces the bearer token when the first client is built.
// Bind TokenFromFile or TokenFromEnv to make one.
type TokenSource func() (string, error)

// Pool builds and caches one Client per model so that token loading and
// handle construction happen at most once per model, however many sessions
// share the pool. Safe for concurrent use. Failed constructions are not
// cached; the next call retries.
type Pool struct {
	source TokenSource
	opts   []Option

	mu      sync.RWMutex
	clients map[string]*Client
	sf      singleflight.Group
}

// NewPool creates a Pool. source supplies the token lazily; opts apply to
// every constructed Client. Panics if source is nil.
func NewPool(source TokenSource, opts ...Option) *Pool {
	if source == nil {
		panic("inference: TokenSource must not be nil")
	}
	return &Pool{
		source:  source,
		opts:    opts,
		clients: make(map[string]*Client),
	}
}

// Client returns the cached Client for model, constructing it on first
// use. An empty model selects DefaultModel. Concurrent callers for the
// same model share a single construction.
func (p *Pool) Client(model string) (*Client, error) {
	if model == "" {
		model = DefaultModel
	}
	p.mu.RLock()
	cl, ok := p.clients[model]
	p.mu.RUnlock()
	if ok {
		return cl, nil
	}
	v, err, _ := p.sf.Do(model, func() (any, error) {
		p.mu.RLock()
		cl, ok := p.clients[model]
		p.mu.RUnlock()
		if ok {
			return cl, nil
		}
		token, err := p.source()
		if err != nil {
			return nil, err
		}
		opts := append([]Option{WithModel(model)}, p.opts...)
		built, err := NewClient(token, opts...)
		if err != nil {
			return nil, err
		}
		p.mu.Lock()
		p.clients[model] = built
		p.mu.Unlock()
		return built, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Client), nil
}
