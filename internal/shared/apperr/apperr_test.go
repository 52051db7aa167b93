package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{InvalidErr("bad", nil), http.StatusBadRequest},
		{NotFoundErr("gone"), http.StatusNotFound},
		{UnauthorizedErr("who"), http.StatusUnauthorized},
		{ForbiddenErr("no"), http.StatusForbidden},
		{ConflictErr("again"), http.StatusConflict},
		{UpstreamErr("api down", errors.New("502")), http.StatusBadGateway},
		{Wrap(errors.New("boom")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", NotFoundErr("gone")), http.StatusNotFound},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), tt.err.Error())
	}
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "api down", PublicMessage(UpstreamErr("api down", errors.New("x"))))
	assert.Equal(t, defaultPublicMsg, PublicMessage(Wrap(errors.New("secret details"))))
	assert.Equal(t, defaultPublicMsg, PublicMessage(errors.New("plain")))
	assert.Nil(t, Wrap(nil))
}
