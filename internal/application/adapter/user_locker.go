// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
)

// UserLocker serializes per-user work such as link resolution across processes.
type UserLocker interface {
	// Lock acquires the user's lock and returns its release func. It returns
	// domainerror.ErrResolverBusy when the lock is already held.
	Lock(ctx context.Context, userID uuid.UUID) (unlock func(), err error)
}
