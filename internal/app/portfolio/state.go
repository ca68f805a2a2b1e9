package portfolio

import "github.com/edta-team/portfolio/internal/domain"

// View is the page a session is looking at.
type View string

const (
	ViewLanding View = "landing"
	ViewTeam    View = "team"
	ViewProfile View = "profile"
)

// EditSessionID tags one stretch of edit mode. A new id is issued every time editing starts,
// so late results of work issued under an older id can be recognized and dropped.
type EditSessionID string

// LoginFailedMessage is shown in the login form after a rejected password.
const LoginFailedMessage = "Invalid password"

// LoginState is the login modal, orthogonal to View.
type LoginState struct {
	Open  bool
	Error string
	// TargetID is the member preselected in the form.
	TargetID domain.MemberID
}

// State is a read-only snapshot of a session.
//
// Invariants:
//   - View == ViewProfile implies SelectedMemberID != nil.
//   - IsEditing implies IsAdminAuthenticated and that the selected member is the one the
//     session authenticated as.
//   - EditBuffer != nil iff IsEditing.
type State struct {
	View                 View
	SelectedMemberID     *domain.MemberID
	IsAdminAuthenticated bool
	IsEditing            bool
	EditSessionID        EditSessionID
	EditBuffer           *domain.MemberPatch
	Login                LoginState
}

type sessionState struct {
	view          View
	selected      *domain.MemberID
	authenticated *domain.MemberID
	editing       bool
	editID        EditSessionID
	// buffer outlives edit mode (it keeps the last values after a save) but is only
	// authoritative while editing is true.
	buffer domain.MemberPatch
	login  LoginState
}

func newSessionState() sessionState {
	return sessionState{view: ViewLanding}
}

func (s sessionState) snapshot() State {
	out := State{
		View:                 s.view,
		SelectedMemberID:     cloneID(s.selected),
		IsAdminAuthenticated: s.authenticated != nil,
		IsEditing:            s.editing,
		Login:                s.login,
	}
	if s.editing {
		buf := s.buffer.Clone()
		out.EditBuffer = &buf
		out.EditSessionID = s.editID
	}
	return out
}

// dropAdmin leaves both edit mode and the authenticated session.
func (s *sessionState) dropAdmin() {
	s.authenticated = nil
	s.editing = false
	s.editID = ""
}

func cloneID(p *domain.MemberID) *domain.MemberID {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
