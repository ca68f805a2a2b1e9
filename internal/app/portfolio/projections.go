package portfolio

import (
	"bytes"
	"context"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/edta-team/portfolio/internal/domain"
	clockport "github.com/edta-team/portfolio/internal/ports/out/clock"
	"github.com/edta-team/portfolio/internal/ports/out/memberrepo"
)

// MemberCard is a team grid entry.
type MemberCard struct {
	ID    domain.MemberID
	Name  string
	Role  string
	Image string
}

// ProfileView is the read-only profile page of a member. Secrets are never projected.
type ProfileView struct {
	ID        domain.MemberID
	Name      string
	Role      string
	About     string
	AboutHTML string
	Instagram string
	// InstagramHandle is "" when Instagram is not an instagram.com profile URL.
	InstagramHandle string
	Image           string
	// DisplayImage is the image to show: the unsaved buffer image while editing, else Image.
	DisplayImage string
	DOB          string
	// Age is nil when DOB cannot be used; AgeDisplay then reads domain.AgeNotAvailable.
	Age        *int
	AgeDisplay string
}

// Snapshot is everything a shell needs to render a session.
type Snapshot struct {
	State   State
	Team    []MemberCard
	Profile *ProfileView
}

// Projector derives the read models from the store. Derived values (age, handle, rendered
// about text) are recomputed on every call and never stored.
type Projector struct {
	repo memberrepo.Repository
	clk  clockport.Clock
	md   goldmark.Markdown
}

func NewProjector(repo memberrepo.Repository, clk clockport.Clock) *Projector {
	return &Projector{
		repo: repo,
		clk:  clk,
		md:   goldmark.New(goldmark.WithRendererOptions(html.WithHardWraps())),
	}
}

func (p *Projector) Team(ctx context.Context) ([]MemberCard, error) {
	ms, err := p.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]MemberCard, 0, len(ms))
	for _, m := range ms {
		out = append(out, MemberCard{ID: m.ID, Name: m.Name, Role: m.Role, Image: m.Image})
	}
	return out, nil
}

func (p *Projector) Profile(ctx context.Context, id domain.MemberID) (ProfileView, error) {
	m, err := p.repo.GetByID(ctx, id)
	if err != nil {
		return ProfileView{}, err
	}
	return p.profileOf(m), nil
}

func (p *Projector) profileOf(m domain.Member) ProfileView {
	now := p.clk.Now()
	v := ProfileView{
		ID:              m.ID,
		Name:            m.Name,
		Role:            m.Role,
		About:           m.About,
		AboutHTML:       p.renderAbout(m.About),
		Instagram:       m.Instagram,
		InstagramHandle: domain.InstagramHandle(m.Instagram),
		Image:           m.Image,
		DisplayImage:    m.Image,
		DOB:             m.DOB,
		AgeDisplay:      domain.AgeDisplay(m.DOB, now),
	}
	if age, ok := domain.DeriveAge(m.DOB, now); ok {
		v.Age = &age
	}
	return v
}

// renderAbout renders the about text as markdown. Raw HTML in the source is omitted by the
// renderer; a rendering failure degrades to no HTML.
func (p *Projector) renderAbout(src string) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := p.md.Convert([]byte(src), &buf); err != nil {
		return ""
	}
	return buf.String()
}

// Snapshot returns the session state together with the projections its view needs.
func (c *Controller) Snapshot(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	st := c.st.snapshot()
	c.mu.Unlock()

	team, err := c.proj.Team(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	out := Snapshot{State: st, Team: team}

	if st.View == ViewProfile && st.SelectedMemberID != nil {
		prof, err := c.proj.Profile(ctx, *st.SelectedMemberID)
		if err != nil {
			return Snapshot{}, err
		}
		if st.IsEditing && st.EditBuffer != nil {
			if img, ok := st.EditBuffer.Value(domain.FieldImage); ok && img != "" {
				prof.DisplayImage = img
			}
		}
		out.Profile = &prof
	}
	return out, nil
}

// Projector exposes the controller's read models.
func (c *Controller) Projector() *Projector { return c.proj }
