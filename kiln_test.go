package kiln_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilnhq/kiln"
)

func TestErrorConstructors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  *kiln.SafeError
		code int
	}{
		{kiln.ErrBadRequest("bad input"), http.StatusBadRequest},
		{kiln.ErrUnauthorized("sign in first"), http.StatusUnauthorized},
		{kiln.ErrForbidden("not yours"), http.StatusForbidden},
		{kiln.ErrNotFound("no such page"), http.StatusNotFound},
		{kiln.ErrMethodNotAllowed("use POST"), http.StatusMethodNotAllowed},
		{kiln.ErrUnsupportedMediaType("send json"), http.StatusUnsupportedMediaType},
		{kiln.ErrInternal("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		require.NotNil(t, tc.err)
		assert.Equal(t, tc.code, tc.err.Code)
		assert.NotNil(t, kiln.AsSafeError(tc.err))
	}
}
