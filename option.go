package tailwrite

// Option configures a Session (functional options pattern).
type Option func(*Session)

// WithParam sets a plain-valued sampling parameter, overriding any default
// of the same name.
func WithParam(name string, value any) Option {
	return func(s *Session) {
		s.params[name] = Literal{Value: value}
	}
}

// WithDeferredParam sets a parameter whose value fn computes fresh on every
// request build.
func WithDeferredParam(name string, fn func() any) Option {
	return func(s *Session) {
		s.params[name] = Deferred{Func: fn}
	}
}

// WithParams sets several plain-valued parameters at once (e.g. loaded from
// a generation profile).
func WithParams(params map[string]any) Option {
	return func(s *Session) {
		for name, value := range params {
			s.params[name] = Literal{Value: value}
		}
	}
}
