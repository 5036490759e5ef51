package bridgeerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAccessDenied_ErrorIncludesReason(t *testing.T) {
	err := &AccessDenied{Operation: "SelectFromColumns", Reason: "cannot select from columns [id, total]"}
	require.Contains(t, err.Error(), "SelectFromColumns")
	require.Contains(t, err.Error(), "cannot select from columns")
}

func TestQueryFailed_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &QueryFailed{PolicyURI: "http://pdp.local/v1/data", Cause: cause}

	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "pdp.local")
}

func TestPdpServerError_CarriesStatusAndBody(t *testing.T) {
	err := &PdpServerError{PolicyURI: "http://pdp.local", StatusCode: 500, Body: "internal error"}

	var target *PdpServerError
	require.True(t, errors.As(err, &target))
	require.Equal(t, 500, target.StatusCode)
	require.Equal(t, "internal error", target.Body)
}

func TestSerializeFailed_Unwrap(t *testing.T) {
	cause := errors.New("unsupported type")
	err := &SerializeFailed{Cause: cause}
	require.ErrorIs(t, err, cause)
}

func TestDeserializeFailed_Unwrap(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := &DeserializeFailed{Cause: cause}
	require.ErrorIs(t, err, cause)
}

func TestInternalInvariant_Message(t *testing.T) {
	err := &InternalInvariant{Message: "action built with both resource and filterResources"}
	require.Contains(t, err.Error(), "both resource and filterResources")
}
