package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/techBikashRepo/jobbee-api/internal/apperr"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err  *apperr.Error
		want int
	}{
		{apperr.NotFound("missing"), http.StatusNotFound},
		{apperr.Validation("bad"), http.StatusBadRequest},
		{apperr.Unauthorized("who"), http.StatusUnauthorized},
		{apperr.Forbidden("no"), http.StatusForbidden},
		{apperr.Conflict("dup"), http.StatusConflict},
		{apperr.Payload("file"), http.StatusBadRequest},
		{apperr.Upstream(errors.New("boom"), "store"), http.StatusBadGateway},
	}
	for _, c := range cases {
		if got := c.err.Status(); got != c.want {
			t.Errorf("Status() for kind %v = %d, want %d", c.err.Kind, got, c.want)
		}
	}
}

func TestAs_UnwrapsThroughChain(t *testing.T) {
	inner := apperr.Conflict("already applied")
	wrapped := fmt.Errorf("handling request: %w", inner)

	got, ok := apperr.As(wrapped)
	if !ok {
		t.Fatal("As failed to find wrapped *Error")
	}
	if got.Kind != apperr.KindConflict {
		t.Errorf("kind = %v, want KindConflict", got.Kind)
	}
}

func TestAs_PlainError(t *testing.T) {
	if _, ok := apperr.As(errors.New("plain")); ok {
		t.Error("As matched a plain error")
	}
}

func TestUpstreamWrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperr.Upstream(cause, "geocoder failed")

	if !errors.Is(err, cause) {
		t.Error("Upstream error does not unwrap to its cause")
	}
}
