package experiment

type namedBehavior[V any] struct {
	name string
	fn   Behavior[V]
}

// behaviorRegistry keeps behaviors in registration order. Names are unique.
type behaviorRegistry[V any] struct {
	ordered []namedBehavior[V]
	byName  map[string]int
}

// insertIfAbsent adds the behavior and returns true, or returns false if the name is taken.
func (r *behaviorRegistry[V]) insertIfAbsent(name string, fn Behavior[V]) bool {
	if _, exists := r.byName[name]; exists {
		return false
	}
	if r.byName == nil {
		r.byName = make(map[string]int)
	}
	r.byName[name] = len(r.ordered)
	r.ordered = append(r.ordered, namedBehavior[V]{name: name, fn: fn})
	return true
}

func (r *behaviorRegistry[V]) get(name string) (Behavior[V], bool) {
	i, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return r.ordered[i].fn, true
}

func (r *behaviorRegistry[V]) len() int {
	return len(r.ordered)
}

func (r *behaviorRegistry[V]) names() []string {
	ret := make([]string, 0, len(r.ordered))
	for _, b := range r.ordered {
		ret = append(ret, b.name)
	}
	return ret
}

func (r *behaviorRegistry[V]) snapshot() []namedBehavior[V] {
	return append([]namedBehavior[V](nil), r.ordered...)
}
