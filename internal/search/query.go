package search

import (
	"net/url"
	"strings"

	"github.com/tessro/trackseek/internal/buttons"
)

// Query is an ordered list of query parameters that allows repeated keys.
// url.Values sorts keys on Encode, so it cannot keep insertion order.
type Query struct {
	pairs []buttons.Param
}

// NewQuery creates a query seeded with a copy of params.
func NewQuery(params []buttons.Param) *Query {
	q := &Query{pairs: make([]buttons.Param, 0, len(params)+4)}
	for _, p := range params {
		q.Set(p.Key, p.Value)
	}
	return q
}

// Set replaces the first pair with key, in place, and drops any later
// pairs with the same key. If key is absent the pair is appended.
func (q *Query) Set(key, value string) {
	found := false
	out := q.pairs[:0]
	for _, p := range q.pairs {
		if p.Key != key {
			out = append(out, p)
			continue
		}
		if !found {
			out = append(out, buttons.Param{Key: key, Value: value})
			found = true
		}
	}
	q.pairs = out
	if !found {
		q.pairs = append(q.pairs, buttons.Param{Key: key, Value: value})
	}
}

// Add appends a pair, keeping existing pairs with the same key.
func (q *Query) Add(key, value string) {
	q.pairs = append(q.pairs, buttons.Param{Key: key, Value: value})
}

// Get returns the first value for key.
func (q *Query) Get(key string) (string, bool) {
	for _, p := range q.pairs {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Values returns all values for key in order.
func (q *Query) Values(key string) []string {
	var out []string
	for _, p := range q.pairs {
		if p.Key == key {
			out = append(out, p.Value)
		}
	}
	return out
}

// Pairs returns a copy of the pairs in order.
func (q *Query) Pairs() []buttons.Param {
	return append([]buttons.Param(nil), q.pairs...)
}

// Len returns the number of pairs.
func (q *Query) Len() int {
	return len(q.pairs)
}

// Encode returns the form-encoded query string in insertion order.
func (q *Query) Encode() string {
	var sb strings.Builder
	for i, p := range q.pairs {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.Value))
	}
	return sb.String()
}
