package portfolio

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/edta-team/portfolio/internal/domain"
)

func TestProjector_ProfileDerivesAgeFromClock(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	proj := env.ctrl.Projector()

	// Abhiram, born 2003-07-04.
	v, err := proj.Profile(ctx, 6)
	if err != nil {
		t.Fatalf("Profile err=%v", err)
	}
	if v.Age == nil || *v.Age != 20 || v.AgeDisplay != "20" {
		t.Fatalf("age=%v display=%q, want 20", v.Age, v.AgeDisplay)
	}
	if v.InstagramHandle != "a6hiramm" {
		t.Fatalf("handle=%q", v.InstagramHandle)
	}

	// Recomputed on every call: no cached age.
	env.clk.Set(time.Date(2024, time.July, 4, 0, 0, 0, 0, time.UTC))
	v, _ = proj.Profile(ctx, 6)
	if v.Age == nil || *v.Age != 21 {
		t.Fatalf("age after birthday=%v, want 21", v.Age)
	}
}

func TestProjector_ProfileDegradesBadFields(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	var p domain.MemberPatch
	p.Set(domain.FieldDOB, "someday")
	p.Set(domain.FieldInstagram, "https://example.com/me")
	p.Set(domain.FieldAbout, "Loves **type**\n<script>alert(1)</script>")
	if _, err := env.repo.Merge(ctx, 2, p); err != nil {
		t.Fatalf("Merge: %v", err)
	}

	v, err := env.ctrl.Projector().Profile(ctx, 2)
	if err != nil {
		t.Fatalf("Profile err=%v", err)
	}
	if v.Age != nil || v.AgeDisplay != domain.AgeNotAvailable {
		t.Fatalf("age=%v display=%q", v.Age, v.AgeDisplay)
	}
	if v.InstagramHandle != "" {
		t.Fatalf("handle=%q, want empty", v.InstagramHandle)
	}
	if !strings.Contains(v.AboutHTML, "<strong>type</strong>") || strings.Contains(v.AboutHTML, "<script>") {
		t.Fatalf("aboutHTML=%q", v.AboutHTML)
	}
}

func TestProjector_TeamInRosterOrder(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	team, err := env.ctrl.Projector().Team(context.Background())
	if err != nil {
		t.Fatalf("Team err=%v", err)
	}
	if len(team) != 6 || team[0].Name != "Eshaan" || team[5].Name != "Abhiram" {
		t.Fatalf("team=%+v", team)
	}
}

func TestController_SnapshotProfileOnlyOnProfileView(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	snap, err := env.ctrl.Snapshot(ctx)
	if err != nil || snap.Profile != nil || len(snap.Team) != 6 {
		t.Fatalf("landing snapshot=%+v err=%v", snap, err)
	}

	mustState(t)(env.ctrl.Explore())
	mustState(t)(env.ctrl.SelectMember(ctx, 1))
	snap, err = env.ctrl.Snapshot(ctx)
	if err != nil || snap.Profile == nil || snap.Profile.ID != 1 {
		t.Fatalf("profile snapshot=%+v err=%v", snap, err)
	}
	if snap.Profile.Age == nil || *snap.Profile.Age != 21 {
		t.Fatalf("age=%v", snap.Profile.Age)
	}
}
