package ui

import "fmt"

// Handler performs the mutation an intent asks for and may return follow-up
// intents for the ancestors.
type Handler func(Intent) ([]Intent, error)

// Router is the table of intents a container consumes.
type Router struct {
	handlers map[Tag]Handler
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{handlers: make(map[Tag]Handler)}
}

// Handle registers fn for tag, replacing any earlier handler.
func (r *Router) Handle(tag Tag, fn Handler) {
	r.handlers[tag] = fn
}

// On registers fn for intents of type T. T must be a value type whose Tag
// method does not depend on its fields.
func On[T Intent](r *Router, fn func(T) ([]Intent, error)) {
	var zero T
	tag := zero.Tag()
	r.Handle(tag, func(it Intent) ([]Intent, error) {
		v, ok := it.(T)
		if !ok {
			return nil, fmt.Errorf("intent %q has type %T, want %T", tag, it, zero)
		}
		return fn(v)
	})
}

// Owns reports whether the router consumes tag.
func (r *Router) Owns(tag Tag) bool {
	if r == nil {
		return false
	}
	_, ok := r.handlers[tag]
	return ok
}

// Route consumes the intents the router owns and returns the rest in their
// original order. Follow-up intents returned by a handler are appended after
// the intents passed through so far and are not routed again at this level.
// Routing stops at the first handler error; the intents passed through up to
// that point are returned with it.
func (r *Router) Route(intents []Intent) ([]Intent, error) {
	if len(intents) == 0 {
		return nil, nil
	}
	if r == nil {
		return intents, nil
	}

	out := make([]Intent, 0, len(intents))
	for _, it := range intents {
		fn, ok := r.handlers[it.Tag()]
		if !ok {
			out = append(out, it)
			continue
		}

		follow, err := fn(it)
		if err != nil {
			return out, err
		}
		out = append(out, follow...)
	}
	return out, nil
}

// Dispatch hands ev to child and routes what it returns. A nil child yields
// no intents.
func Dispatch(child Node, ev Event, r *Router) ([]Intent, error) {
	if child == nil {
		return nil, nil
	}
	intents, err := child.Handle(ev)
	if err != nil {
		return nil, err
	}
	return r.Route(intents)
}
