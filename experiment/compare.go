package experiment

import "github.com/google/go-cmp/cmp"

// strictEqual is == on the dynamic values. Values whose dynamic type is not comparable are
// never equal.
func strictEqual(a, b interface{}) (equal bool) {
	defer func() {
		if recover() != nil {
			equal = false
		}
	}()
	return a == b
}

// DeepComparator returns a Comparator that compares values structurally with cmp.Equal and
// the given options. Observations that both raised are equivalent if their error messages
// match, as in Observation.EquivalentTo.
//
// cmp.Equal panics on unexported struct fields unless an option such as
// cmpopts.IgnoreUnexported or cmp.AllowUnexported covers them.
func DeepComparator[V any](opts ...cmp.Option) Comparator[V] {
	return func(control, candidate *Observation[V]) bool {
		return control.EquivalentTo(candidate, func(a, b V) bool {
			return cmp.Equal(a, b, opts...)
		})
	}
}
