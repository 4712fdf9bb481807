package journal

import (
	"cmp"
	"fmt"
	"slices"

	jsoniter "github.com/json-iterator/go"
)

type FilterEventTypeString = string
type FilterKeyString = string

/***** Filter *****/

// Filter selects journal entries. An empty Filter matches every entry.
//
// Supported shapes:
//
//   - empty filter
//   - (eventType OR eventType...)
//   - (predicate OR predicate...)
//   - (predicate AND predicate...)
//   - ((eventType OR eventType...) AND (predicate OR predicate...))
//   - ((eventType OR eventType...) AND (predicate AND predicate...))
type Filter struct {
	eventTypes             []FilterEventTypeString
	predicates             []FilterPredicate
	allPredicatesMustMatch bool
}

func (f Filter) EventTypes() []FilterEventTypeString {
	return f.eventTypes
}

func (f Filter) Predicates() []FilterPredicate {
	return f.predicates
}

func (f Filter) AllPredicatesMustMatch() bool {
	return f.allPredicatesMustMatch
}

// IsEmpty reports whether the Filter matches every entry.
func (f Filter) IsEmpty() bool {
	return len(f.eventTypes) == 0 && len(f.predicates) == 0
}

// Matches evaluates the Filter against an Entry in memory.
// Predicates compare top-level payload fields by their printed value.
func (f Filter) Matches(entry Entry) bool {
	if len(f.eventTypes) > 0 && !slices.Contains(f.eventTypes, entry.EventType) {
		return false
	}

	if len(f.predicates) == 0 {
		return true
	}

	payload := make(map[string]any)
	if err := jsoniter.ConfigFastest.Unmarshal(entry.PayloadJSON, &payload); err != nil {
		return false
	}

	for _, predicate := range f.predicates {
		val, ok := payload[predicate.key]
		matched := ok && fmt.Sprint(val) == fmt.Sprint(predicate.val)

		if matched && !f.allPredicatesMustMatch {
			return true
		}

		if !matched && f.allPredicatesMustMatch {
			return false
		}
	}

	return f.allPredicatesMustMatch
}

/***** FilterPredicate *****/

// FilterPredicate matches a top-level payload field against a scalar value.
type FilterPredicate struct {
	key FilterKeyString
	val any
}

// P creates a FilterPredicate.
func P(key FilterKeyString, val any) FilterPredicate {
	return FilterPredicate{key: key, val: val}
}

func (fp FilterPredicate) Key() FilterKeyString {
	return fp.key
}

func (fp FilterPredicate) Val() any {
	return fp.val
}

/***** FilterBuilder *****/

// FilterBuilder builds a Filter step by step. Its zero value starts an empty Filter.
type FilterBuilder struct {
	filter Filter
}

// BuildFilter creates a FilterBuilder which must eventually be finalized with Finalize.
func BuildFilter() FilterBuilder {
	return FilterBuilder{}
}

// AnyEventTypeOf adds event types of which ANY must match.
//
// It sanitizes the input:
//   - removing empty event types ("")
//   - sorting the event types
//   - removing duplicate event types
func (fb FilterBuilder) AnyEventTypeOf(eventTypes ...FilterEventTypeString) FilterBuilder {
	all := append(slices.Clone(fb.filter.eventTypes), eventTypes...)
	all = slices.DeleteFunc(all, func(e FilterEventTypeString) bool { return e == "" })
	slices.Sort(all)
	fb.filter.eventTypes = slices.Clip(slices.Compact(all))

	return fb
}

// AnyPredicateOf adds predicates of which ANY must match.
func (fb FilterBuilder) AnyPredicateOf(predicates ...FilterPredicate) FilterBuilder {
	fb.filter.allPredicatesMustMatch = false
	fb.filter.predicates = fb.sanitizePredicates(predicates...)

	return fb
}

// AllPredicatesOf adds predicates of which ALL must match.
func (fb FilterBuilder) AllPredicatesOf(predicates ...FilterPredicate) FilterBuilder {
	fb.filter.allPredicatesMustMatch = true
	fb.filter.predicates = fb.sanitizePredicates(predicates...)

	return fb
}

// Finalize returns the built Filter.
func (fb FilterBuilder) Finalize() Filter {
	return fb.filter
}

// sanitizePredicates removes predicates with an empty key or a nil value, sorts by key, and drops duplicates.
func (fb FilterBuilder) sanitizePredicates(predicates ...FilterPredicate) []FilterPredicate {
	all := append(slices.Clone(fb.filter.predicates), predicates...)
	all = slices.DeleteFunc(all, func(p FilterPredicate) bool { return p.key == "" || p.val == nil })

	slices.SortStableFunc(all, func(a, b FilterPredicate) int {
		if c := cmp.Compare(a.key, b.key); c != 0 {
			return c
		}

		return cmp.Compare(fmt.Sprint(a.val), fmt.Sprint(b.val))
	})

	all = slices.CompactFunc(all, func(a, b FilterPredicate) bool {
		return a.key == b.key && fmt.Sprint(a.val) == fmt.Sprint(b.val)
	})

	return slices.Clip(all)
}
