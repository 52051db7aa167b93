package remote

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// APIError is a non-2xx answer from the remote API. DRF error bodies look like
// {"detail": "..."} or {"phone": ["..."], "name": ["..."]}.
type APIError struct {
	Status int
	Detail string
	Fields map[string][]string
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("remote API returned %d: %s", e.Status, e.Message())
}

// Message prefers a field-specific message over the generic detail.
func (e *APIError) Message() string {
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		// name and phone first, they are what the operator typed
		for _, preferred := range []string{"name", "phone"} {
			if msgs := e.Fields[preferred]; len(msgs) > 0 {
				return msgs[0]
			}
		}
		for _, k := range keys {
			if msgs := e.Fields[k]; len(msgs) > 0 {
				return msgs[0]
			}
		}
	}
	if e.Detail != "" {
		return e.Detail
	}
	if e.Body != "" {
		return e.Body
	}
	return http.StatusText(e.Status)
}

// IsDuplicatePhone reports whether the failure is the phone uniqueness
// constraint: a single message (read together with its field name) mentions the
// phone and "exist" or "unique". The raw body is only consulted when it did not
// parse into fields or a detail.
func (e *APIError) IsDuplicatePhone() bool {
	var msgs []string
	for k, list := range e.Fields {
		for _, m := range list {
			msgs = append(msgs, k+" "+m)
		}
	}
	if e.Detail != "" {
		msgs = append(msgs, e.Detail)
	}
	if len(msgs) == 0 && e.Body != "" {
		msgs = append(msgs, e.Body)
	}
	for _, m := range msgs {
		m = strings.ToLower(m)
		if strings.Contains(m, "phone") && (strings.Contains(m, "exist") || strings.Contains(m, "unique")) {
			return true
		}
	}
	return false
}

func IsStatus(err error, status int) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == status
}

func newAPIError(status int, raw []byte) *APIError {
	e := &APIError{Status: status, Body: strings.TrimSpace(string(raw))}

	var generic map[string]json.RawMessage
	if err := json.Unmarshal(raw, &generic); err != nil {
		return e
	}
	for k, v := range generic {
		switch k {
		case "detail", "error", "message":
			var s string
			if json.Unmarshal(v, &s) == nil && e.Detail == "" {
				e.Detail = s
			}
			continue
		}
		var list []string
		if json.Unmarshal(v, &list) == nil {
			if e.Fields == nil {
				e.Fields = map[string][]string{}
			}
			e.Fields[k] = list
			continue
		}
		var single string
		if json.Unmarshal(v, &single) == nil {
			if e.Fields == nil {
				e.Fields = map[string][]string{}
			}
			e.Fields[k] = []string{single}
		}
	}
	return e
}
