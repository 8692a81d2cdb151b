package tailwrite

import (
	"fmt"
	"reflect"
	"runtime"
)

// Param is a sealed interface for sampling parameter values. Only package
// types implement it via isParam(): Literal for plain values and Deferred
// for values computed fresh at request-build time.
type Param interface {
	isParam()
}

// Literal holds a plain parameter value used as-is in every request.
type Literal struct {
	Value any
}

func (Literal) isParam() {}

// Deferred wraps a zero-argument func invoked anew on every request build,
// e.g. to draw a fresh random seed per call. Never memoized.
type Deferred struct {
	Func func() any
}

func (Deferred) isParam() {}

// String reveals the wrapped func for diagnostics.
func (d Deferred) String() string {
	if d.Func == nil {
		return "Deferred(nil)"
	}
	var name string
	if fn := runtime.FuncForPC(reflect.ValueOf(d.Func).Pointer()); fn != nil {
		name = fn.Name()
	}
	if name == "" {
		name = fmt.Sprintf("%p", d.Func)
	}
	return fmt.Sprintf("Deferred(%s)", name)
}

// resolve produces the request value for p. The two cases are exhaustive;
// Param is sealed.
func resolve(p Param) any {
	switch v := p.(type) {
	case Literal:
		return v.Value
	case Deferred:
		return v.Func()
	default:
		panic(fmt.Sprintf("tailwrite: unknown Param type %T", p))
	}
}
