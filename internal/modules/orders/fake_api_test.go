package orders

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"sync"
)

type recordedCall struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// fakeAPI serves canned JSON per method+path and records calls.
type fakeAPI struct {
	mu        sync.Mutex
	responses map[string]string
	errs      map[string]error
	calls     []recordedCall
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{responses: map[string]string{}, errs: map[string]error{}}
}

func (f *fakeAPI) on(method, path, body string) *fakeAPI {
	f.responses[method+" "+path] = body
	return f
}

func (f *fakeAPI) fail(method, path string, err error) *fakeAPI {
	f.errs[method+" "+path] = err
	return f
}

func (f *fakeAPI) do(c recordedCall, out any) error {
	f.mu.Lock()
	f.calls = append(f.calls, c)
	key := c.Method + " " + c.Path
	err, hasErr := f.errs[key]
	body, ok := f.responses[key]
	f.mu.Unlock()

	if hasErr {
		return err
	}
	if !ok {
		return errors.New("no canned response for " + key)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal([]byte(body), out)
}

func (f *fakeAPI) Get(_ context.Context, path string, q url.Values, out any) error {
	return f.do(recordedCall{Method: "GET", Path: path, Query: q}, out)
}

func (f *fakeAPI) Post(_ context.Context, path string, body, out any) error {
	return f.do(recordedCall{Method: "POST", Path: path, Body: body}, out)
}

func (f *fakeAPI) Patch(_ context.Context, path string, body, out any) error {
	return f.do(recordedCall{Method: "PATCH", Path: path, Body: body}, out)
}

func (f *fakeAPI) last() recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}
