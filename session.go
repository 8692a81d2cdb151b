package tailwrite

import (
	"context"
	"fmt"
	"io"
	"maps"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/tailwrite/tailwrite/paragraph"
)

// Transport sends one completion request to the remote service and returns
// the decoded JSON reply for the session to classify. Implementations must
// respect context cancellation and deadlines.
type Transport interface {
	Infer(ctx context.Context, inputs string, params map[string]any) (any, error)
}

// TransportFunc adapts a plain function to the Transport interface.
type TransportFunc func(ctx context.Context, inputs string, params map[string]any) (any, error)

// Infer implements Transport.
func (f TransportFunc) Infer(ctx context.Context, inputs string, params map[string]any) (any, error) {
	return f(ctx, inputs, params)
}

// Session holds a text buffer and the sampling parameters used to extend
// it. The buffer starts as the normalized prompt and is replaced wholesale
// by each successful completion; it is never edited piecemeal. A Session is
// not safe for concurrent use: run at most one Complete at a time.
type Session struct {
	tr     Transport
	text   string
	params map[string]Param
}

// New creates a Session for the given prompt. The prompt is normalized to
// one line per paragraph before storage. Options override or extend the
// default parameters: do_sample=true, max_new_tokens=250, a fresh random
// seed per request, and temperature=0.75. Parameter names starting with
// "_" are reserved and rejected.
func New(tr Transport, prompt string, opts ...Option) (*Session, error) {
	if tr == nil {
		return nil, ErrNilTransport
	}
	text := paragraph.Normalize(prompt)
	if text == "" {
		return nil, ErrEmptyPrompt
	}
	s := &Session{
		tr:   tr,
		text: text,
		params: map[string]Param{
			"do_sample":      Literal{Value: true},
			"max_new_tokens": Literal{Value: 250},
			"seed":           Deferred{Func: func() any { return rand.Uint64() }},
			"temperature":    Literal{Value: 0.75},
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	for name := range s.params {
		if strings.HasPrefix(name, "_") {
			return nil, fmt.Errorf("%w: %q", ErrReservedParam, name)
		}
	}
	return s, nil
}

// Text returns the raw buffer: the prompt plus all accepted completions,
// one line per paragraph.
func (s *Session) Text() string {
	return s.text
}

// String returns the prettified buffer: hard-wrapped paragraphs separated
// by blank lines.
func (s *Session) String() string {
	return paragraph.Prettify(s.text)
}

// Params returns a copy of the parameter set for inspection.
func (s *Session) Params() map[string]Param {
	return maps.Clone(s.params)
}

// BuildParams produces the parameter values for one request. Parameters
// resolve in lexicographic name order so request construction is
// reproducible; each Deferred func is invoked exactly once per call and
// literals pass through unchanged.
func (s *Session) BuildParams() map[string]any {
	names := slices.Sorted(maps.Keys(s.params))
	built := make(map[string]any, len(names))
	for _, name := range names {
		built[name] = resolve(s.params[name])
	}
	return built
}

// Complete sends the buffer with freshly built parameters to the transport
// and applies the reply. On success the buffer becomes the returned text
// verbatim, with no re-normalization. Service-reported failures surface as
// *CompletionError, unrecognized reply shapes as *UnexpectedResponseError,
// and transport errors propagate unmodified. The buffer is untouched
// unless the call succeeds.
func (s *Session) Complete(ctx context.Context) error {
	raw, err := s.tr.Infer(ctx, s.text, s.BuildParams())
	if err != nil {
		return err
	}
	switch out := classify(raw).(type) {
	case generated:
		s.text = out.text
		return nil
	case serviceFailure:
		return &CompletionError{Messages: out.messages}
	case malformed:
		return &UnexpectedResponseError{Response: out.raw}
	default:
		panic(fmt.Sprintf("tailwrite: unknown outcome type %T", out))
	}
}

// Run completes once and writes the prettified buffer to w.
func (s *Session) Run(ctx context.Context, w io.Writer) error {
	if err := s.Complete(ctx); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, s)
	return err
}

// Compile-time check that Session prettifies via fmt.Stringer.
var _ fmt.Stringer = (*Session)(nil)
