package customers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laundrydesk.com/app/internal/remote"
)

type call struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

type reply struct {
	body string
	err  error
}

// fakeAPI answers scripted replies in order and records every call.
type fakeAPI struct {
	replies []reply
	calls   []call
}

func (f *fakeAPI) next(c call, out any) error {
	f.calls = append(f.calls, c)
	if len(f.replies) == 0 {
		return errors.New("unexpected call " + c.Method + " " + c.Path)
	}
	r := f.replies[0]
	f.replies = f.replies[1:]
	if r.err != nil {
		return r.err
	}
	if out != nil && r.body != "" {
		return json.Unmarshal([]byte(r.body), out)
	}
	return nil
}

func (f *fakeAPI) Get(_ context.Context, path string, q url.Values, out any) error {
	return f.next(call{Method: http.MethodGet, Path: path, Query: q}, out)
}

func (f *fakeAPI) Post(_ context.Context, path string, body, out any) error {
	return f.next(call{Method: http.MethodPost, Path: path, Body: body}, out)
}

func apiErr(status int, body string) error {
	e := &remote.APIError{Status: status, Body: body}
	var generic map[string]any
	if json.Unmarshal([]byte(body), &generic) == nil {
		e.Fields = map[string][]string{}
		for k, v := range generic {
			switch tv := v.(type) {
			case string:
				if k == "detail" {
					e.Detail = tv
				} else {
					e.Fields[k] = []string{tv}
				}
			case []any:
				for _, s := range tv {
					e.Fields[k] = append(e.Fields[k], s.(string))
				}
			}
		}
	}
	return e
}

const byPhone = remote.CustomersPath + "by_phone/"

func TestResolveFound(t *testing.T) {
	api := &fakeAPI{replies: []reply{{body: `{"id": 42, "name": "Jane", "phone": "+254712345678"}`}}}

	c, outcome, err := NewResolver(api, nil).Resolve(context.Background(), "0712345678", "")
	require.NoError(t, err)

	assert.Equal(t, OutcomeFound, outcome)
	assert.Equal(t, Customer{ID: 42, Name: "Jane", Phone: "+254712345678"}, c)
	require.Len(t, api.calls, 1)
	assert.Equal(t, byPhone, api.calls[0].Path)
	assert.Equal(t, "+254712345678", api.calls[0].Query.Get("phone"))
}

func TestResolveCreatesWhenNotFound(t *testing.T) {
	api := &fakeAPI{replies: []reply{
		{err: apiErr(http.StatusNotFound, `{"detail": "Not found."}`)},
		{body: `{"id": 43, "name": "John", "phone": "+254712345678"}`},
	}}

	c, outcome, err := NewResolver(api, nil).Resolve(context.Background(), "712345678", "  John ")
	require.NoError(t, err)

	assert.Equal(t, OutcomeCreated, outcome)
	assert.Equal(t, int64(43), c.ID)
	require.Len(t, api.calls, 2)
	assert.Equal(t, http.MethodPost, api.calls[1].Method)
	assert.Equal(t, remote.CustomersPath, api.calls[1].Path)
	assert.Equal(t, createRequest{Name: "John", Phone: "+254712345678"}, api.calls[1].Body)
}

func TestResolveRequiresNameToCreate(t *testing.T) {
	api := &fakeAPI{replies: []reply{{err: apiErr(http.StatusNotFound, `{}`)}}}

	_, _, err := NewResolver(api, nil).Resolve(context.Background(), "0712345678", " ")
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "name", ve.Field)
	assert.Equal(t, "name required to create customer", ve.Msg)
	assert.Len(t, api.calls, 1)
}

func TestResolveInvalidPhoneMakesNoCalls(t *testing.T) {
	api := &fakeAPI{}
	_, _, err := NewResolver(api, nil).Resolve(context.Background(), "12", "Jane")

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Empty(t, api.calls)
}

func TestResolveRaceRecovered(t *testing.T) {
	api := &fakeAPI{replies: []reply{
		{err: apiErr(http.StatusNotFound, `{}`)},
		{err: apiErr(http.StatusBadRequest, `{"phone": ["customer with this phone already exists."]}`)},
		{body: `{"id": 44, "name": "Jane", "phone": "+254712345678"}`},
	}}

	c, outcome, err := NewResolver(api, nil).Resolve(context.Background(), "0712345678", "Jane")
	require.NoError(t, err)
	assert.Equal(t, OutcomeRaceRecovered, outcome)
	assert.Equal(t, int64(44), c.ID)
	require.Len(t, api.calls, 3)
	assert.Equal(t, byPhone, api.calls[2].Path)
}

func TestResolveRaceRetryExhausted(t *testing.T) {
	api := &fakeAPI{replies: []reply{
		{err: apiErr(http.StatusNotFound, `{}`)},
		{err: apiErr(http.StatusBadRequest, `{"phone": ["customer with this phone already exists."]}`)},
		{err: apiErr(http.StatusNotFound, `{}`)},
	}}

	_, _, err := NewResolver(api, nil).Resolve(context.Background(), "0712345678", "Jane")
	var ce *CreationError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "customer with this phone already exists.", ce.Msg)
	assert.ErrorIs(t, err, ErrRaceRetryExhausted)
	assert.Len(t, api.calls, 3)
}

func TestResolveCreationErrorPrefersFieldMessage(t *testing.T) {
	api := &fakeAPI{replies: []reply{
		{err: apiErr(http.StatusNotFound, `{}`)},
		{err: apiErr(http.StatusBadRequest, `{"detail": "Invalid input.", "name": ["Ensure this field has no more than 100 characters."]}`)},
	}}

	_, _, err := NewResolver(api, nil).Resolve(context.Background(), "0712345678", "Jane")
	var ce *CreationError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "Ensure this field has no more than 100 characters.", ce.Msg)
	assert.NotErrorIs(t, err, ErrRaceRetryExhausted)
	assert.Len(t, api.calls, 2, "no retry for non-duplicate failures")
}

func TestResolveLookupFailure(t *testing.T) {
	api := &fakeAPI{replies: []reply{{err: apiErr(http.StatusInternalServerError, `oops`)}}}

	_, _, err := NewResolver(api, nil).Resolve(context.Background(), "0712345678", "Jane")
	var le *LookupError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, http.StatusInternalServerError, le.Status)
	assert.Equal(t, "+254712345678", le.Phone)
	assert.Len(t, api.calls, 1)
}

func TestResolveLookupTransportFailure(t *testing.T) {
	api := &fakeAPI{replies: []reply{{err: context.DeadlineExceeded}}}

	_, _, err := NewResolver(api, nil).Resolve(context.Background(), "0712345678", "Jane")
	var le *LookupError
	require.True(t, errors.As(err, &le))
	assert.Zero(t, le.Status)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSearch(t *testing.T) {
	api := &fakeAPI{replies: []reply{{body: `{"count": 1, "results": [{"id": 1, "name": "Jane", "phone": "+254712345678"}]}`}}}

	list, err := NewResolver(api, nil).Search(context.Background(), " jan ")
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, "jan", api.calls[0].Query.Get("search"))
}

// customerDB behaves like the remote customer endpoints: lookup by phone and
// create with a unique phone constraint.
type customerDB struct {
	byPhone map[string]Customer
	nextID  int64
	posts   []createRequest
}

func newCustomerDB() *customerDB {
	return &customerDB{byPhone: map[string]Customer{}, nextID: 100}
}

func (d *customerDB) Get(_ context.Context, path string, q url.Values, out any) error {
	if path != byPhone {
		return errors.New("unexpected GET " + path)
	}
	c, ok := d.byPhone[q.Get("phone")]
	if !ok {
		return apiErr(http.StatusNotFound, `{"detail": "Not found."}`)
	}
	*out.(*Customer) = c
	return nil
}

func (d *customerDB) Post(_ context.Context, path string, body, out any) error {
	req := body.(createRequest)
	d.posts = append(d.posts, req)
	if _, taken := d.byPhone[req.Phone]; taken {
		return apiErr(http.StatusBadRequest, `{"phone": ["customer with this phone already exists."]}`)
	}
	d.nextID++
	c := Customer{ID: d.nextID, Name: req.Name, Phone: req.Phone}
	d.byPhone[req.Phone] = c
	*out.(*Customer) = c
	return nil
}

func TestResolveIsIdempotentPerPhone(t *testing.T) {
	db := newCustomerDB()
	r := NewResolver(db, nil)
	ctx := context.Background()

	first, outcome, err := r.Resolve(ctx, "0712345678", "Jane Doe")
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, outcome)

	second, outcome, err := r.Resolve(ctx, "+254 712 345 678", "Someone Else")
	require.NoError(t, err)
	assert.Equal(t, OutcomeFound, outcome)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, db.posts, 1, "at most one create across both calls")
}

func TestResolveNewCustomerPostsNormalizedPhone(t *testing.T) {
	api := &fakeAPI{replies: []reply{
		{err: apiErr(http.StatusNotFound, `{"detail": "Not found."}`)},
		{body: `{"id": 7, "name": "Jane Doe", "phone": "+254712345678"}`},
	}}

	c, outcome, err := NewResolver(api, nil).Resolve(context.Background(), "0712345678", "Jane Doe")
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, outcome)
	assert.Equal(t, Customer{ID: 7, Name: "Jane Doe", Phone: "+254712345678"}, c)

	var posts []call
	for _, cl := range api.calls {
		if cl.Method == http.MethodPost {
			posts = append(posts, cl)
		}
	}
	require.Len(t, posts, 1)
	assert.Equal(t, createRequest{Name: "Jane Doe", Phone: "+254712345678"}, posts[0].Body)
}
