package document

import (
	"slices"
	"strings"
	"sync"
)

// ClassList is an ordered set of class tokens on an element.
type ClassList struct {
	mu     sync.RWMutex
	tokens []string
}

// NewClassList creates a class list from the given tokens, dropping invalid
// tokens and duplicates.
func NewClassList(tokens ...string) *ClassList {
	c := &ClassList{}
	for _, t := range tokens {
		c.Add(t)
	}
	return c
}

// ValidToken reports whether a token may be stored. Tokens cannot be empty or
// contain whitespace.
func ValidToken(token string) bool {
	return token != "" && !strings.ContainsAny(token, " \t\n\r\f")
}

// Add adds a token if it is not already present.
func (c *ClassList) Add(token string) {
	if !ValidToken(token) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !slices.Contains(c.tokens, token) {
		c.tokens = append(c.tokens, token)
	}
}

// Remove removes a token if present.
func (c *ClassList) Remove(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens = slices.DeleteFunc(c.tokens, func(t string) bool { return t == token })
}

// Toggle forces the token present (force=true) or absent (force=false).
func (c *ClassList) Toggle(token string, force bool) {
	if force {
		c.Add(token)
		return
	}
	c.Remove(token)
}

// Contains reports whether the token is present.
func (c *ClassList) Contains(token string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Contains(c.tokens, token)
}

// Tokens returns a copy of the tokens in insertion order.
func (c *ClassList) Tokens() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.tokens)
}

// Len returns the number of tokens.
func (c *ClassList) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tokens)
}

// String returns the tokens joined by spaces, as in a class attribute.
func (c *ClassList) String() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return strings.Join(c.tokens, " ")
}
