package orchestrator

import "partsearch/internal/model"

// HookEvent identifies a point in the pipeline where listeners are
// notified (spec §4.10, §9: an observer list rather than nullable
// per-stage callback properties).
type HookEvent string

const (
	HookBeforeSearch       HookEvent = "beforeSearch"
	HookAfterUnderstanding HookEvent = "afterUnderstanding"
	HookAfterRetrieval     HookEvent = "afterRetrieval"
	HookAfterFiltering     HookEvent = "afterFiltering"
	HookAfterRanking       HookEvent = "afterRanking"
	HookAfterSearch        HookEvent = "afterSearch"
)

// HookPayload carries whatever is available at the hook's firing
// point. Fields not yet populated at that stage are zero-valued.
type HookPayload struct {
	RequestID string
	Query     model.Query
	Intent    model.Intent
	Response  *model.Response
}

// Listener observes pipeline hook events.
type Listener interface {
	OnHook(event HookEvent, payload HookPayload)
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc func(event HookEvent, payload HookPayload)

func (f ListenerFunc) OnHook(event HookEvent, payload HookPayload) { f(event, payload) }

// listenerList fans a hook event out to every registered Listener.
type listenerList struct {
	listeners []Listener
}

func (l *listenerList) Register(listener Listener) {
	l.listeners = append(l.listeners, listener)
}

func (l *listenerList) Dispatch(event HookEvent, payload HookPayload) {
	for _, listener := range l.listeners {
		listener.OnHook(event, payload)
	}
}
