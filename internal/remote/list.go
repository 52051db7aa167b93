package remote

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// List decodes either a DRF paginated envelope {count, next, previous, results}
// or a bare JSON array. For a bare array Count is len(Results) and Paginated is false.
type List[T any] struct {
	Results   []T
	Count     int
	Next      string
	Previous  string
	Paginated bool
}

type envelope[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

func (l *List[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*l = List[T]{}
		return nil
	}

	switch trimmed[0] {
	case '[':
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*l = List[T]{Results: items, Count: len(items)}
		return nil
	case '{':
		var env envelope[T]
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return err
		}
		out := List[T]{Results: env.Results, Count: env.Count, Paginated: true}
		if env.Next != nil {
			out.Next = *env.Next
		}
		if env.Previous != nil {
			out.Previous = *env.Previous
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("remote: unexpected list payload starting with %q", trimmed[0])
	}
}
