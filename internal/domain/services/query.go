package services

import (
	"net/url"
	"strconv"
	"strings"
)

// query builds a query string whose parameters keep insertion order.
// url.Values sorts keys on Encode, and filters must appear in the order
// their fields are declared.
type query struct {
	parts []string
}

// add appends key=value when value is non-empty
func (q *query) add(key, value string) {
	if value == "" {
		return
	}
	q.parts = append(q.parts, url.QueryEscape(key)+"="+url.QueryEscape(value))
}

// addBool appends a tri-state flag when it is set, including false
func (q *query) addBool(key string, value *bool) {
	if value == nil {
		return
	}
	q.add(key, strconv.FormatBool(*value))
}

// addFlag appends key=true only when value is true
func (q *query) addFlag(key string, value bool) {
	if value {
		q.add(key, "true")
	}
}

// addID appends a positive identifier
func (q *query) addID(key string, id int) {
	if id > 0 {
		q.add(key, strconv.Itoa(id))
	}
}

// encode returns the query string without the leading '?'
func (q *query) encode() string {
	return strings.Join(q.parts, "&")
}

// path appends the query string to base, or returns base unchanged when empty
func (q *query) path(base string) string {
	if len(q.parts) == 0 {
		return base
	}
	return base + "?" + q.encode()
}
