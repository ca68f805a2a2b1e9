package memberrepo

import (
	"context"

	"github.com/edta-team/portfolio/internal/domain"
)

// Repository holds the team roster. It is the only place member records are mutated.
//
// Implementations must return detached copies: mutating a returned Member (or the patch
// handed to Merge) must never be visible through later reads.
//
// Result ordering expectations:
// - List returns members in roster (seeding) order.
type Repository interface {
	// Create adds a record while the roster is seeded. IDs are unique for the lifetime of
	// the repository; records are never deleted.
	Create(ctx context.Context, m domain.Member) error

	GetByID(ctx context.Context, id domain.MemberID) (domain.Member, error)
	List(ctx context.Context) ([]domain.Member, error)

	// Merge applies patch onto the stored record (see domain.MemberPatch.Apply) and returns
	// the updated record.
	Merge(ctx context.Context, id domain.MemberID, patch domain.MemberPatch) (domain.Member, error)
}
