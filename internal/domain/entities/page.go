package entities

import (
	"bytes"
	"encoding/json"
)

// Page is a list response. The backend returns either a bare array or, with
// pagination enabled, {count, next, previous, results}.
type Page[T any] struct {
	Count    int    `json:"count"`
	Next     string `json:"next,omitempty"`
	Previous string `json:"previous,omitempty"`
	Results  []T    `json:"results"`
}

func (p *Page[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*p = Page[T]{Count: len(items), Results: items}
		return nil
	}

	var aux struct {
		Count    *int    `json:"count"`
		Next     *string `json:"next"`
		Previous *string `json:"previous"`
		Results  []T     `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &aux); err != nil {
		return err
	}

	*p = Page[T]{Results: aux.Results, Count: len(aux.Results)}
	if aux.Count != nil {
		p.Count = *aux.Count
	}
	if aux.Next != nil {
		p.Next = *aux.Next
	}
	if aux.Previous != nil {
		p.Previous = *aux.Previous
	}
	return nil
}

// HasMore reports whether the backend has another page
func (p *Page[T]) HasMore() bool {
	return p.Next != ""
}
