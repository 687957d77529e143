package customer

import (
	"context"

	"storemail/internal/domain/notification"
)

// Customer is the subset of the store's customer entity the welcome email needs.
type Customer struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// Store looks customers up by id.
// Implementations live in infra/store/.
type Store interface {
	// FindByID returns nil, nil when no customer has the id.
	FindByID(ctx context.Context, id string) (*Customer, error)
}

// Sender delivers notification requests. *notification.Service implements it.
type Sender interface {
	Send(ctx context.Context, reqs ...*notification.Request) ([]*notification.Result, error)
}

// Publisher emits customer domain events.
// Implementations live in infra/queue/.
type Publisher interface {
	PublishCustomerRegistered(ctx context.Context, id string) error
}
