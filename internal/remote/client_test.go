package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laundrydesk.com/app/internal/auth"
)

func newTestClient(t *testing.T, h http.HandlerFunc, tokens auth.TokenStore) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL+"/api", tokens)
	require.NoError(t, err)
	return c
}

func TestDoSendsTokenQueryAndBody(t *testing.T) {
	store := auth.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), auth.Tokens{Access: "abc"}))

	var gotPath, gotQuery, gotAuth, gotCT string
	var gotBody map[string]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		gotCT = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 7, "name": "Jane"}`))
	}, store)

	var out struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	err := c.Do(context.Background(), http.MethodPost, CustomersPath, url.Values{"x": {"1"}}, map[string]string{"name": "Jane"}, &out)
	require.NoError(t, err)

	assert.Equal(t, "/api/Laundry/customers/", gotPath)
	assert.Equal(t, "x=1", gotQuery)
	assert.Equal(t, "Bearer abc", gotAuth)
	assert.Equal(t, "application/json", gotCT)
	assert.Equal(t, map[string]string{"name": "Jane"}, gotBody)
	assert.Equal(t, int64(7), out.ID)
}

func TestDoWithoutTokenSendsNoAuthorization(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}, auth.NewMemoryStore())

	require.NoError(t, c.Get(context.Background(), OrdersPath, nil, nil))
	assert.Empty(t, gotAuth)
}

func TestDoReturnsAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail": "bad", "phone": ["customer with this phone already exists."]}`))
	}, nil)

	err := c.Post(context.Background(), CustomersPath, map[string]string{}, nil)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "bad", apiErr.Detail)
	assert.Equal(t, "customer with this phone already exists.", apiErr.Message())
	assert.True(t, apiErr.IsDuplicatePhone())
	assert.True(t, IsStatus(err, http.StatusBadRequest))
	assert.False(t, IsStatus(err, http.StatusNotFound))
}

func TestDoTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	c, err := New(srv.URL, nil)
	require.NoError(t, err)
	err = c.Get(context.Background(), OrdersPath, nil, nil)
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New("  ", nil)
	assert.Error(t, err)
}

func TestAPIErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"name before phone", `{"phone": ["phone bad"], "name": ["name bad"]}`, "name bad"},
		{"other fields sorted", `{"zeta": ["z"], "alpha": ["a"]}`, "a"},
		{"single string field", `{"shop": "unknown shop"}`, "unknown shop"},
		{"detail", `{"detail": "Not found."}`, "Not found."},
		{"error key", `{"error": "to_number and message are required"}`, "to_number and message are required"},
		{"raw body", `upstream exploded`, "upstream exploded"},
		{"empty", ``, "Bad Request"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newAPIError(http.StatusBadRequest, []byte(tt.body))
			assert.Equal(t, tt.want, e.Message())
		})
	}
}

func TestIsDuplicatePhone(t *testing.T) {
	assert.True(t, newAPIError(400, []byte(`{"phone": ["Customer with this Phone already exists."]}`)).IsDuplicatePhone())
	assert.True(t, newAPIError(400, []byte(`{"detail": "UNIQUE constraint failed: customer.phone"}`)).IsDuplicatePhone())
	assert.False(t, newAPIError(400, []byte(`{"name": ["This field may not be blank."]}`)).IsDuplicatePhone())
	assert.False(t, newAPIError(400, []byte(`{"phone": ["Enter a valid phone number."]}`)).IsDuplicatePhone())
	assert.True(t, newAPIError(400, []byte(`customer phone must be unique`)).IsDuplicatePhone())
}

func TestIsDuplicatePhoneMatchesOneMessage(t *testing.T) {
	e := newAPIError(400, []byte(`{"phone": ["Enter a valid phone number."], "email": ["already exists"]}`))
	assert.False(t, e.IsDuplicatePhone())

	e = newAPIError(400, []byte(`{"phone": ["This value already exists."]}`))
	assert.True(t, e.IsDuplicatePhone())
}
