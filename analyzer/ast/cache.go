package ast

import (
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru"

	"github.com/abiiranathan/go-format-lint/analyzer/validator"
)

// outcomeCache memoizes validation outcomes. Validation is a pure function of
// the template and the argument descriptors, so identical call shapes (the
// same "{0}: {1}" with the same labels across a code base) are validated once.
//
// A nil *outcomeCache validates without caching.
//
// Thread-safety: the underlying LRU is internally locked.
type outcomeCache struct {
	cache *lru.Cache
}

// cachedOutcome wraps the outcome so a valid (nil) result can be stored.
type cachedOutcome struct {
	failure *validator.Failure
}

// newOutcomeCache creates a cache holding at most size outcomes. A size of
// zero or less disables caching.
func newOutcomeCache(size int) *outcomeCache {
	if size <= 0 {
		return nil
	}
	c, err := lru.New(size)
	if err != nil {
		return nil
	}
	return &outcomeCache{cache: c}
}

// validate returns the memoized outcome for template and args, computing it
// on a miss.
func (oc *outcomeCache) validate(template string, args []validator.FormatArgument) *validator.Failure {
	if oc == nil {
		return validator.ValidateFormatCall(&template, args)
	}

	key := cacheKey(template, args)
	if v, ok := oc.cache.Get(key); ok {
		return v.(cachedOutcome).failure
	}

	failure := validator.ValidateFormatCall(&template, args)
	oc.cache.Add(key, cachedOutcome{failure: failure})
	return failure
}

// Len reports the number of cached outcomes.
func (oc *outcomeCache) Len() int {
	if oc == nil {
		return 0
	}
	return oc.cache.Len()
}

// cacheKey encodes template and argument shape. Lengths prefix every
// variable part so distinct inputs never share a key.
func cacheKey(template string, args []validator.FormatArgument) string {
	var b strings.Builder
	b.Grow(len(template) + 16*len(args))

	writePart := func(s string) {
		b.WriteString(strconv.Itoa(len(s)))
		b.WriteByte(':')
		b.WriteString(s)
	}

	writePart(template)
	for _, a := range args {
		writePart(a.Label)
		if a.IsArray {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(a.ArraySize))
			b.WriteByte(']')
		}
		b.WriteByte(';')
	}
	return b.String()
}
