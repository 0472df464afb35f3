// backend-go/internal/realtime/errors.go
package realtime

import "errors"

// ErrUnknownCollection is returned when a client subscribes to a
// collection no loader was registered for.
var ErrUnknownCollection = errors.New("unknown collection")
