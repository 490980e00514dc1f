package query

import (
	"sort"
)

// List is the container of parsed instances fed to the dispatcher.
type List struct {
	instances []*Instance
}

// Append adds an instance.
func (l *List) Append(instance *Instance) {
	l.instances = append(l.instances, instance)
}

// Len returns the number of instances.
func (l *List) Len() int {
	return len(l.instances)
}

// Sort orders the instances by (type code, source line). Line numbers are
// unique, so the order is total.
func (l *List) Sort() {
	sort.Slice(l.instances, func(i, j int) bool {
		a, b := l.instances[i], l.instances[j]
		if a.def.Code != b.def.Code {
			return a.def.Code < b.def.Code
		}
		return a.Line < b.Line
	})
}

// All iterates over the instances in their current order.
func (l *List) All() func(func(*Instance) bool) {
	return func(yield func(*Instance) bool) {
		for _, instance := range l.instances {
			if !yield(instance) {
				return
			}
		}
	}
}

// Runs iterates over the maximal contiguous groups of equal type code.
// The list must be sorted.
func (l *List) Runs() func(func([]*Instance) bool) {
	return func(yield func([]*Instance) bool) {
		start := 0
		for start < len(l.instances) {
			end := start + 1
			for end < len(l.instances) && l.instances[end].def.Code == l.instances[start].def.Code {
				end++
			}
			if !yield(l.instances[start:end]) {
				return
			}
			start = end
		}
	}
}
