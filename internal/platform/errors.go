package platform

import "errors"

// ErrNotFound is returned when the platform reports 404 for an entity id.
var ErrNotFound = errors.New("platform: not found")
