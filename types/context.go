package types

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultStepLimit bounds the number of node executions per evaluation,
// protecting the runner against runaway recursion.
const DefaultStepLimit = 5_000_000

// nameCacheSize bounds the number of name-lookup tables kept alive
const nameCacheSize = 128

// nameCacheMin is the vector length below which a linear scan beats
// building a lookup table
const nameCacheMin = 16

// EvalContext carries per-evaluation state: the step budget and a
// bounded cache of name-to-position lookup tables for character
// indexing over large named vectors. The cache is a pure memoization;
// it never changes observable behavior.
type EvalContext struct {
	steps     int
	limit     int
	nameCache *lru.Cache[*StrVector, map[string]int]
}

// NewEvalContext creates a context with the default step limit
func NewEvalContext() *EvalContext {
	return NewEvalContextWithLimit(DefaultStepLimit)
}

// NewEvalContextWithLimit creates a context with an explicit step limit
func NewEvalContextWithLimit(limit int) *EvalContext {
	cache, _ := lru.New[*StrVector, map[string]int](nameCacheSize)
	return &EvalContext{limit: limit, nameCache: cache}
}

// ConsumeStep counts one node execution, returning false when the
// budget is exhausted
func (c *EvalContext) ConsumeStep() bool {
	c.steps++
	return c.steps <= c.limit
}

// StepsUsed returns the number of steps consumed so far
func (c *EvalContext) StepsUsed() int {
	return c.steps
}

// LookupName resolves a name against a names vector, returning the
// 1-based position of its first occurrence or 0 when unmatched.
// Large vectors go through the cached lookup table.
func (c *EvalContext) LookupName(names *StrVector, name string) int {
	if names == nil {
		return 0
	}
	if names.Length() < nameCacheMin {
		return names.Find(name)
	}
	index, ok := c.nameCache.Get(names)
	if !ok {
		index = make(map[string]int, names.Length())
		for i := 1; i <= names.Length(); i++ {
			if names.NAAt(i) {
				continue
			}
			if _, seen := index[names.At(i)]; !seen {
				index[names.At(i)] = i
			}
		}
		c.nameCache.Add(names, index)
	}
	return index[name]
}
