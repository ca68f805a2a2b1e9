package portfolio

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/edta-team/portfolio/internal/domain"
	clockport "github.com/edta-team/portfolio/internal/ports/out/clock"
	"github.com/edta-team/portfolio/internal/ports/out/imagecodec"
	"github.com/edta-team/portfolio/internal/ports/out/memberrepo"
)

// PasswordScheme checks login passwords against stored secrets and turns a newly chosen
// password into the secret to store. When Hashed reports true, stored secrets are never
// copied into an edit buffer.
type PasswordScheme interface {
	Matches(stored, submitted string) bool
	Hash(plain string) (string, error)
	Hashed() bool
}

// Deps are the collaborators shared by every session controller.
type Deps struct {
	Repo      memberrepo.Repository
	Clock     clockport.Clock
	Passwords PasswordScheme
	Decoder   imagecodec.Decoder
	Logger    logrus.FieldLogger
}

// Controller is the view/session/edit state machine of one visitor session.
//
// Intents are applied one at a time; each runs to completion before the next starts.
// Every intent returns the resulting snapshot. A violated precondition returns an *Error
// and leaves the session untouched.
type Controller struct {
	mu sync.Mutex
	st sessionState

	repo      memberrepo.Repository
	passwords PasswordScheme
	decoder   imagecodec.Decoder
	log       logrus.FieldLogger
	proj      *Projector

	uploads sync.WaitGroup

	newEditSessionID func() EditSessionID
}

func NewController(d Deps) *Controller {
	log := d.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Controller{
		st:        newSessionState(),
		repo:      d.Repo,
		passwords: d.Passwords,
		decoder:   d.Decoder,
		log:       log,
		proj:      NewProjector(d.Repo, d.Clock),
		newEditSessionID: func() EditSessionID {
			return EditSessionID(uuid.NewString())
		},
	}
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.snapshot()
}

// Explore moves from the landing page to the team grid.
func (c *Controller) Explore() (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.st.view != ViewLanding {
		return c.st.snapshot(), invalidTransition("explore", "only available on the landing page")
	}
	c.st.view = ViewTeam
	return c.st.snapshot(), nil
}

// SelectMember opens a member's public profile. Any admin session is dropped.
func (c *Controller) SelectMember(ctx context.Context, id domain.MemberID) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.st.view != ViewTeam {
		return c.st.snapshot(), invalidTransition("selectMember", "only available on the team page")
	}
	if _, err := c.lookup(ctx, id); err != nil {
		return c.st.snapshot(), err
	}
	c.st.selected = &id
	c.st.view = ViewProfile
	c.st.dropAdmin()
	return c.st.snapshot(), nil
}

// BackToTeam leaves a profile for the team grid and ends any admin session.
func (c *Controller) BackToTeam() (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.st.view != ViewProfile {
		return c.st.snapshot(), invalidTransition("backToTeam", "only available on a profile page")
	}
	c.st.view = ViewTeam
	c.st.dropAdmin()
	return c.st.snapshot(), nil
}

// BackToLanding returns from the team grid to the landing page.
func (c *Controller) BackToLanding() (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.st.view != ViewTeam {
		return c.st.snapshot(), invalidTransition("backToLanding", "only available on the team page")
	}
	c.st.view = ViewLanding
	return c.st.snapshot(), nil
}

// OpenLogin shows the login modal with a cleared error; the first roster member is
// preselected.
func (c *Controller) OpenLogin(ctx context.Context) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ms, err := c.repo.List(ctx)
	if err != nil {
		return c.st.snapshot(), err
	}
	c.st.login = LoginState{Open: true}
	if len(ms) > 0 {
		c.st.login.TargetID = ms[0].ID
	}
	return c.st.snapshot(), nil
}

// CloseLogin hides the login modal without touching anything else.
func (c *Controller) CloseLogin() (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.st.login.Open = false
	return c.st.snapshot(), nil
}

// SubmitLogin authenticates the session as member id.
//
// It succeeds iff the member exists and password matches the stored secret exactly. On
// success the session becomes admin of that member only, its profile opens and an edit
// buffer cloned from the stored record is active. On failure the modal stays open with
// LoginFailedMessage and nothing else changes; a failed login is not an error.
func (c *Controller) SubmitLogin(ctx context.Context, id domain.MemberID, password string) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.st.login.Open {
		return c.st.snapshot(), invalidTransition("submitLogin", "login form is not open")
	}

	m, err := c.repo.GetByID(ctx, id)
	switch {
	case errors.Is(err, memberrepo.ErrNotFound):
		c.st.login.TargetID = id
		c.st.login.Error = LoginFailedMessage
		return c.st.snapshot(), nil
	case err != nil:
		return c.st.snapshot(), err
	}
	if !c.passwords.Matches(m.Password, password) {
		c.st.login.TargetID = id
		c.st.login.Error = LoginFailedMessage
		c.log.WithField("member_id", int(id)).Info("login rejected")
		return c.st.snapshot(), nil
	}

	c.st.login = LoginState{TargetID: id}
	authID, selID := m.ID, m.ID
	c.st.authenticated = &authID
	c.st.selected = &selID
	c.st.view = ViewProfile
	c.startEditing(m)
	c.log.WithField("member_id", int(id)).Info("admin session started")
	return c.st.snapshot(), nil
}

// ToggleEdit flips edit mode on the authenticated member's profile. Entering edit mode
// reloads the buffer from the stored record.
func (c *Controller) ToggleEdit(ctx context.Context) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireOwnProfile("toggleEdit"); err != nil {
		return c.st.snapshot(), err
	}
	if c.st.editing {
		c.st.editing = false
		c.st.editID = ""
		return c.st.snapshot(), nil
	}
	m, err := c.lookup(ctx, *c.st.selected)
	if err != nil {
		return c.st.snapshot(), err
	}
	c.startEditing(m)
	return c.st.snapshot(), nil
}

// EditField sets one buffer field. The store is not touched.
func (c *Controller) EditField(field string, value string) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.st.editing {
		return c.st.snapshot(), invalidTransition("editField", "not editing")
	}
	f, ok := domain.ParseField(field)
	if !ok {
		return c.st.snapshot(), invalidField(field, "not an editable field")
	}
	c.st.buffer.Set(f, value)
	return c.st.snapshot(), nil
}

// ApplyEdits layers the specified fields of patch over the buffer.
func (c *Controller) ApplyEdits(patch domain.MemberPatch) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.st.editing {
		return c.st.snapshot(), invalidTransition("applyEdits", "not editing")
	}
	c.st.buffer = c.st.buffer.Merge(patch)
	return c.st.snapshot(), nil
}

// SaveChanges merges the buffer onto the stored record and leaves edit mode. The buffer
// keeps its values but is no longer authoritative.
func (c *Controller) SaveChanges(ctx context.Context) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.st.editing {
		return c.st.snapshot(), invalidTransition("saveChanges", "not editing")
	}
	if c.st.selected == nil {
		return c.st.snapshot(), invalidTransition("saveChanges", "no member selected")
	}
	id := *c.st.selected
	patch, err := c.storablePatch(c.st.buffer)
	if err != nil {
		return c.st.snapshot(), err
	}
	if _, err := c.repo.Merge(ctx, id, patch); err != nil {
		if errors.Is(err, memberrepo.ErrNotFound) {
			return c.st.snapshot(), memberNotFound(int(id))
		}
		return c.st.snapshot(), err
	}
	if c.passwords.Hashed() {
		c.st.buffer.Unset(domain.FieldPassword)
	}
	c.st.editing = false
	c.st.editID = ""
	c.log.WithField("member_id", int(id)).Info("profile saved")
	return c.st.snapshot(), nil
}

// CancelEdit discards unsaved edits by resetting the buffer to the stored record, and
// leaves edit mode.
func (c *Controller) CancelEdit(ctx context.Context) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.st.editing {
		return c.st.snapshot(), invalidTransition("cancelEdit", "not editing")
	}
	m, err := c.lookup(ctx, *c.st.selected)
	if err != nil {
		return c.st.snapshot(), err
	}
	c.st.buffer = c.bufferFor(m)
	c.st.editing = false
	c.st.editID = ""
	return c.st.snapshot(), nil
}

// startEditing must be called with mu held.
func (c *Controller) startEditing(m domain.Member) {
	c.st.buffer = c.bufferFor(m)
	c.st.editing = true
	c.st.editID = c.newEditSessionID()
}

// bufferFor clones m into a fresh edit buffer. Hashed secrets stay out of it: the password
// field is only specified once the member types a new one.
func (c *Controller) bufferFor(m domain.Member) domain.MemberPatch {
	buf := domain.PatchFromMember(m)
	if c.passwords.Hashed() {
		buf.Unset(domain.FieldPassword)
	}
	return buf
}

// storablePatch converts the buffer into what is written to the store: a new password is
// run through the password scheme. An empty password is stored as is.
func (c *Controller) storablePatch(buf domain.MemberPatch) (domain.MemberPatch, error) {
	patch := buf.Clone()
	pw, ok := patch.Value(domain.FieldPassword)
	if !ok || pw == "" {
		return patch, nil
	}
	secret, err := c.passwords.Hash(pw)
	if err != nil {
		return domain.MemberPatch{}, err
	}
	patch.Set(domain.FieldPassword, secret)
	return patch, nil
}

// requireOwnProfile must be called with mu held.
func (c *Controller) requireOwnProfile(intent string) error {
	if c.st.authenticated == nil {
		return invalidTransition(intent, "not authenticated")
	}
	if c.st.view != ViewProfile || c.st.selected == nil {
		return invalidTransition(intent, "only available on a profile page")
	}
	if *c.st.selected != *c.st.authenticated {
		return invalidTransition(intent, "profile belongs to another member")
	}
	return nil
}

func (c *Controller) lookup(ctx context.Context, id domain.MemberID) (domain.Member, error) {
	m, err := c.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, memberrepo.ErrNotFound) {
			return domain.Member{}, memberNotFound(int(id))
		}
		return domain.Member{}, err
	}
	return m, nil
}
