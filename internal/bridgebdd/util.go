package bridgebdd

import (
	"errors"
	"strings"

	"github.com/chirino/opa-trino-bridge/internal/bridge/bridgeerr"
)

func asAccessDenied(err error, target **bridgeerr.AccessDenied) bool {
	return errors.As(err, target)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
