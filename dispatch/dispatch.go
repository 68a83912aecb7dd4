/*
Package dispatch maps event kinds to handlers. It provides a flat hook
table with an UNHANDLED fallback and a one-shot AUTO hook, and reports the
outcome of every dispatch as an explicit result instead of unwinding.
*/
package dispatch

import (
	"sync"

	"github.com/lurklib/lurk/irc"
)

// Handler is the interface hooks must satisfy.
type Handler interface {
	Handle(w irc.Writer, ev *irc.Event)
}

// HandlerFunc implements the Handler interface.
type HandlerFunc func(w irc.Writer, ev *irc.Event)

// Handle implements the Handler interface.
func (h HandlerFunc) Handle(w irc.Writer, ev *irc.Event) {
	h(w, ev)
}

// AutoFunc is the idle hook. It receives no event, only a writer.
type AutoFunc func(w irc.Writer)

// Outcome reports how an event was dispatched.
type Outcome int

const (
	// Dispatched means a hook registered for the event kind ran.
	Dispatched Outcome = iota
	// DispatchedFallback means no kind hook existed and the UNHANDLED
	// hook ran instead.
	DispatchedFallback
	// Unhandled means no hook at all accepted the event.
	Unhandled
)

// Table is the hook registry. Hooks run synchronously on the dispatching
// goroutine: a slow hook blocks all further event processing, which is the
// engine's cooperative contract.
type Table struct {
	mut   sync.RWMutex
	hooks map[string]Handler
	auto  AutoFunc
}

// NewTable initializes an empty hook table.
func NewTable() *Table {
	return &Table{hooks: make(map[string]Handler)}
}

// Set registers a hook for an event kind, replacing any previous hook.
// Registering under irc.UNHANDLED installs the fallback.
func (t *Table) Set(kind string, handler Handler) {
	t.mut.Lock()
	t.hooks[kind] = handler
	t.mut.Unlock()
}

// Remove unregisters the hook for an event kind, reporting whether one was
// registered.
func (t *Table) Remove(kind string) bool {
	t.mut.Lock()
	_, ok := t.hooks[kind]
	delete(t.hooks, kind)
	t.mut.Unlock()
	return ok
}

// SetAuto registers the one-shot idle hook. It fires at most once: the
// engine takes it before invoking it.
func (t *Table) SetAuto(fn AutoFunc) {
	t.mut.Lock()
	t.auto = fn
	t.mut.Unlock()
}

// TakeAuto removes and returns the idle hook, nil when none is registered.
func (t *Table) TakeAuto() AutoFunc {
	t.mut.Lock()
	fn := t.auto
	t.auto = nil
	t.mut.Unlock()
	return fn
}

// HasAuto reports whether an idle hook is registered.
func (t *Table) HasAuto() bool {
	t.mut.RLock()
	defer t.mut.RUnlock()
	return t.auto != nil
}

// Dispatch looks up a hook by the event's kind, falling back to the
// UNHANDLED hook, and invokes it synchronously.
func (t *Table) Dispatch(w irc.Writer, ev *irc.Event) Outcome {
	t.mut.RLock()
	handler, ok := t.hooks[ev.Name]
	fallback, haveFallback := t.hooks[irc.UNHANDLED]
	t.mut.RUnlock()

	if ok {
		handler.Handle(w, ev)
		return Dispatched
	}
	if haveFallback {
		fallback.Handle(w, ev)
		return DispatchedFallback
	}
	return Unhandled
}
