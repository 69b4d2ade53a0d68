// Package register collects init-time callbacks keyed by an owner type, so
// packages can contribute wiring (store constructors, mostly) without import
// cycles against the provider that consumes them.
package register

import "sync"

type registry struct {
	handlers map[any][]any
	locker   sync.Mutex
}

var reg = &registry{
	handlers: make(map[any][]any),
}

// Handler receives the fully constructed target, typically a store provider.
type Handler[T any] func(T)

// RegisterFunc queues handler under key. Safe to call from init.
func RegisterFunc[T any](key any, handler Handler[T]) {
	reg.locker.Lock()
	reg.handlers[key] = append(reg.handlers[key], handler)
	reg.locker.Unlock()
}

// ResolveFuncHandlers returns every handler queued under key whose target
// type matches T. Mismatched registrations are skipped silently.
func ResolveFuncHandlers[T any](key any) []Handler[T] {
	reg.locker.Lock()
	defer reg.locker.Unlock()

	var result []Handler[T]
	for _, v := range reg.handlers[key] {
		if h, ok := v.(Handler[T]); ok {
			result = append(result, h)
		}
	}
	return result
}
