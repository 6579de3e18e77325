package registry

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/ayah-app/notification-service/schema"
)

// MemoryRegistry is an in-process Registry used in tests and local
// development without a database.
type MemoryRegistry struct {
	mu   sync.Mutex
	rows map[uuid.UUID]schema.SubscriptionData
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		rows: make(map[uuid.UUID]schema.SubscriptionData),
	}
}

func (m *MemoryRegistry) Insert(_ context.Context, data schema.SubscriptionData) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New()
	m.rows[id] = data
	return id, nil
}

func (m *MemoryRegistry) ScanAll(_ context.Context) ([]schema.PushSubscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	subscriptions := make([]schema.PushSubscription, 0, len(m.rows))
	for id, data := range m.rows {
		subscriptions = append(subscriptions, schema.PushSubscription{
			SubscriptionID:   id,
			SubscriptionData: data,
		})
	}
	return subscriptions, nil
}

func (m *MemoryRegistry) DeleteByID(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.rows, id)
	return nil
}

// Len reports the current row count.
func (m *MemoryRegistry) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.rows)
}
