// backend-go/internal/service/notifier.go
package service

import "context"

// ChangeNotifier is how services announce that a collection changed.
// The realtime hub implements it; tests plug in a fake.
type ChangeNotifier interface {
	Notify(ctx context.Context, collection string)
}

type noopNotifier struct{}

func (noopNotifier) Notify(ctx context.Context, collection string) {}

// NewNoopNotifier returns a notifier that drops every event.
func NewNoopNotifier() ChangeNotifier {
	return noopNotifier{}
}
