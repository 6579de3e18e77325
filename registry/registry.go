package registry

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ayah-app/notification-service/schema"
)

// ErrPersistence reports that the subscription store is unreachable or
// rejected a write. Callers treat it as fatal to the operation in flight.
var ErrPersistence = errors.New("subscription store unavailable")

// Registry is the durable store of push subscriptions. Inserts come from the
// subscription endpoint, scans and deletes from the broadcast job. There is
// no read-modify-write: the three operations are independent.
type Registry interface {
	// Insert persists a new subscription and returns its record id.
	Insert(ctx context.Context, data schema.SubscriptionData) (uuid.UUID, error)

	// ScanAll returns every stored subscription in no particular order.
	ScanAll(ctx context.Context) ([]schema.PushSubscription, error)

	// DeleteByID removes one row. Deleting an id that is already gone is
	// not an error.
	DeleteByID(ctx context.Context, id uuid.UUID) error
}
