package memberrepo

import (
	"context"
	"sync"

	"github.com/edta-team/portfolio/internal/domain"
	"github.com/edta-team/portfolio/internal/ports/out/memberrepo"
)

// Repo is an in-memory implementation of memberrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu sync.RWMutex

	byID  map[domain.MemberID]domain.Member
	order []domain.MemberID
}

func NewRepo() *Repo {
	return &Repo{
		byID: make(map[domain.MemberID]domain.Member),
	}
}

// NewSeededRepo returns a repo holding roster in the given order.
func NewSeededRepo(ctx context.Context, roster []domain.Member) (*Repo, error) {
	r := NewRepo()
	for _, m := range roster {
		if err := r.Create(ctx, m); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Repo) Create(ctx context.Context, m domain.Member) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[m.ID]; ok {
		return memberrepo.ErrAlreadyExists
	}
	r.byID[m.ID] = m
	r.order = append(r.order, m.ID)
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.MemberID) (domain.Member, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.byID[id]
	if !ok {
		return domain.Member{}, memberrepo.ErrNotFound
	}
	return m, nil
}

func (r *Repo) List(ctx context.Context) ([]domain.Member, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Member, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *Repo) Merge(ctx context.Context, id domain.MemberID, patch domain.MemberPatch) (domain.Member, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[id]
	if !ok {
		return domain.Member{}, memberrepo.ErrNotFound
	}
	updated := patch.Apply(existing)
	r.byID[id] = updated
	return updated, nil
}
