package memberrepo

import (
	"context"
	"testing"

	"github.com/edta-team/portfolio/internal/domain"
	"github.com/edta-team/portfolio/internal/ports/out/memberrepo"
)

func TestRepo_CreateAndGet(t *testing.T) {
	t.Parallel()

	r := NewRepo()
	m := domain.Member{ID: 1, Name: "Eshaan", Role: "Team Lead", DOB: "2003-01-01", Password: "1234"}

	if err := r.Create(context.Background(), m); err != nil {
		t.Fatalf("Create() err=%v", err)
	}

	got, err := r.GetByID(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("GetByID() err=%v", err)
	}
	if got != m {
		t.Fatalf("GetByID()=%+v, want %+v", got, m)
	}
}

func TestRepo_CreateRejectsDuplicateID(t *testing.T) {
	t.Parallel()

	r := NewRepo()
	if err := r.Create(context.Background(), domain.Member{ID: 1, Name: "A"}); err != nil {
		t.Fatalf("Create(first) err=%v", err)
	}
	if err := r.Create(context.Background(), domain.Member{ID: 1, Name: "B"}); err != memberrepo.ErrAlreadyExists {
		t.Fatalf("Create(dup) err=%v, want %v", err, memberrepo.ErrAlreadyExists)
	}
	got, _ := r.GetByID(context.Background(), 1)
	if got.Name != "A" {
		t.Fatalf("duplicate create overwrote record: %+v", got)
	}
}

func TestRepo_ListKeepsRosterOrder(t *testing.T) {
	t.Parallel()

	r, err := NewSeededRepo(context.Background(), []domain.Member{
		{ID: 4, Name: "Akshay"},
		{ID: 1, Name: "Eshaan"},
		{ID: 6, Name: "Abhiram"},
	})
	if err != nil {
		t.Fatalf("NewSeededRepo() err=%v", err)
	}

	got, err := r.List(context.Background())
	if err != nil {
		t.Fatalf("List() err=%v", err)
	}
	if len(got) != 3 || got[0].ID != 4 || got[1].ID != 1 || got[2].ID != 6 {
		t.Fatalf("List() order=%v", got)
	}
}

func TestRepo_MergeIsShallowAndDetached(t *testing.T) {
	t.Parallel()

	r, _ := NewSeededRepo(context.Background(), []domain.Member{{ID: 3, Name: "Thamju", Role: "Lead Designer", Password: "1234"}})

	var p domain.MemberPatch
	p.Set(domain.FieldName, "Thamjuu")
	got, err := r.Merge(context.Background(), 3, p)
	if err != nil {
		t.Fatalf("Merge() err=%v", err)
	}
	if got.Name != "Thamjuu" || got.Role != "Lead Designer" || got.Password != "1234" {
		t.Fatalf("Merge()=%+v", got)
	}

	// Mutating the patch after the merge must not leak into the store.
	p.Set(domain.FieldName, "Later")
	stored, _ := r.GetByID(context.Background(), 3)
	if stored.Name != "Thamjuu" {
		t.Fatalf("stored name=%q, want Thamjuu", stored.Name)
	}

	// Same for a returned record.
	got.Name = "Mutated"
	stored, _ = r.GetByID(context.Background(), 3)
	if stored.Name != "Thamjuu" {
		t.Fatalf("stored name=%q after mutating returned copy", stored.Name)
	}
}

func TestRepo_MergeUnknownID(t *testing.T) {
	t.Parallel()

	r := NewRepo()
	if _, err := r.Merge(context.Background(), 99, domain.MemberPatch{}); err != memberrepo.ErrNotFound {
		t.Fatalf("Merge(unknown) err=%v, want %v", err, memberrepo.ErrNotFound)
	}
	if _, err := r.GetByID(context.Background(), 99); err != memberrepo.ErrNotFound {
		t.Fatalf("GetByID(unknown) err=%v, want %v", err, memberrepo.ErrNotFound)
	}
}
