package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:   http.StatusBadRequest,
		KindUnauthorized: http.StatusUnauthorized,
		KindNotFound:     http.StatusNotFound,
		KindConflict:     http.StatusConflict,
		KindUnavailable:  http.StatusServiceUnavailable,
		KindUnknown:      http.StatusInternalServerError,
	}
	for kind, want := range cases {
		require.Equal(t, want, kind.HTTPStatus())
	}
}

func TestBackendKeepsDriverMessage(t *testing.T) {
	driverErr := errors.New(`pq: relation "order_items" does not exist`)
	err := Backend(driverErr)

	require.Equal(t, KindUnavailable, err.Kind)
	require.Equal(t, driverErr.Error(), err.Msg)
	require.ErrorIs(t, err, driverErr)
}

func TestKindOfUnwrapsThroughFmt(t *testing.T) {
	inner := Validation("missing required fields")
	wrapped := fmt.Errorf("checkout: %w", inner)

	require.Equal(t, KindValidation, KindOf(wrapped))
	require.Equal(t, KindUnknown, KindOf(errors.New("plain")))
}
