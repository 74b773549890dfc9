package provider

import "errors"

// ErrNotConfigured is returned by adapters that need credentials which were
// not supplied.
var ErrNotConfigured = errors.New("provider not configured")
