// Package store persists members. Implementations are interface-driven so
// the registration workflow stays testable and the backend can be swapped
// without rewiring business code.
package store

import (
	"context"
	"time"

	"memberlist/internal/member/models"
)

// Store is the persistence contract consumed by the member service.
//
// Save assigns the ID and CreatedAt on first insert and refreshes UpdatedAt
// on every call. Email uniqueness among active members is enforced atomically
// inside Save; a violation surfaces as sentinel.ErrAlreadyUsed regardless of
// any pre-check the caller performed. Logically deleted members are excluded
// from FindByEmail, FindAllActive and ExistsActiveByEmail but stay reachable
// through FindByID.
type Store interface {
	Save(ctx context.Context, member *models.Member) error
	FindByID(ctx context.Context, id int64) (*models.Member, error)
	FindByEmail(ctx context.Context, email string) (*models.Member, error)
	FindAllActive(ctx context.Context) ([]*models.Member, error)
	ExistsActiveByEmail(ctx context.Context, email string) (bool, error)
	MarkDeleted(ctx context.Context, member *models.Member) error
}

// Clock abstracts time.Now for deterministic timestamp tests.
type Clock func() time.Time
