package contracttest

import (
	"context"
	"errors"
	"testing"

	"github.com/edta-team/portfolio/internal/domain"
	memberrepoport "github.com/edta-team/portfolio/internal/ports/out/memberrepo"
)

type CleanupFunc = func()

type MemberRepoFactory func(t *testing.T) (memberrepoport.Repository, CleanupFunc)

// RunMemberRepo checks the behaviors every roster store must share.
func RunMemberRepo(t *testing.T, newRepo MemberRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	roster := []domain.Member{
		{ID: 2, Name: "Dishnu", Role: "Creative Director", DOB: "2004-05-15", Password: "1234"},
		{ID: 1, Name: "Eshaan", Role: "Team Lead", DOB: "2003-01-01", Password: "1234"},
		{ID: 3, Name: "Thamju", Role: "Lead Designer", DOB: "2003-08-20", Password: "secret"},
	}
	for _, m := range roster {
		if err := repo.Create(ctx, m); err != nil {
			t.Fatalf("Create %d: %v", m.ID, err)
		}
	}

	// ID uniqueness.
	if err := repo.Create(ctx, domain.Member{ID: 1, Name: "Imposter"}); !errors.Is(err, memberrepoport.ErrAlreadyExists) {
		t.Fatalf("Create duplicate: err=%v, want ErrAlreadyExists", err)
	}

	// Roster ordering is seeding order.
	ms, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ms) != len(roster) {
		t.Fatalf("List len=%d, want %d", len(ms), len(roster))
	}
	for i := range roster {
		if ms[i] != roster[i] {
			t.Fatalf("List[%d]=%+v, want %+v", i, ms[i], roster[i])
		}
	}

	// Returned slices are detached.
	ms[0].Name = "Changed"
	if got, _ := repo.GetByID(ctx, 2); got.Name != "Dishnu" {
		t.Fatalf("List result aliases store: name=%q", got.Name)
	}

	// Shallow merge.
	var p domain.MemberPatch
	p.Set(domain.FieldAbout, "Designs things")
	p.Set(domain.FieldDOB, "2003-08-21")
	merged, err := repo.Merge(ctx, 3, p)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	want := roster[2]
	want.About = "Designs things"
	want.DOB = "2003-08-21"
	if merged != want {
		t.Fatalf("Merge=%+v, want %+v", merged, want)
	}
	got, err := repo.GetByID(ctx, 3)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != want {
		t.Fatalf("GetByID after merge=%+v, want %+v", got, want)
	}

	// Merging the same patch again is a no-op.
	again, err := repo.Merge(ctx, 3, p)
	if err != nil || again != want {
		t.Fatalf("second Merge=%+v err=%v, want %+v", again, err, want)
	}

	if _, err := repo.GetByID(ctx, 42); !errors.Is(err, memberrepoport.ErrNotFound) {
		t.Fatalf("GetByID unknown: err=%v, want ErrNotFound", err)
	}
	if _, err := repo.Merge(ctx, 42, p); !errors.Is(err, memberrepoport.ErrNotFound) {
		t.Fatalf("Merge unknown: err=%v, want ErrNotFound", err)
	}
}
