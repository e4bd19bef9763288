package apperr

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("bad payload"), http.StatusBadRequest},
		{"not found", NotFound("Listing not found!"), http.StatusNotFound},
		{"authorization", Authorization("not yours"), http.StatusUnauthorized},
		{"authentication", Authentication("Wrong credentials!"), http.StatusUnauthorized},
		{"conflict", Conflict("email taken"), http.StatusConflict},
		{"upstream", Upstream(errors.New("connection reset")), http.StatusInternalServerError},
		{"untyped", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(tt.err))
		})
	}
}

func TestKindOf_SeesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("update failed: %w", NotFound("Listing not found!"))

	assert.Equal(t, KindNotFound, KindOf(err))
	assert.True(t, Is(err, KindNotFound))
	assert.False(t, Is(err, KindAuthorization))
	assert.False(t, Is(nil, KindNotFound))
}

func TestUpstream_PassesMessageThrough(t *testing.T) {
	cause := errors.New("server selection timeout")
	err := Upstream(cause)

	assert.Equal(t, "server selection timeout", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, Upstream(nil))
}
