package itest

import (
	"net/http"
	"testing"
)

func TestPortfolio_ITest(t *testing.T) {
	for _, mode := range passwordModesFromEnv(t) {
		t.Run(mode, func(t *testing.T) {
			srv := newTestServer(t, mode)

			// First request starts a session on the landing page and sets the cookie.
			{
				status, body, hdr := srv.doJSON(t, http.MethodGet, "/state", nil)
				requireHeaderPresent(t, hdr, "Set-Cookie")
				snap := requireOK(t, status, body)
				if snap.State.View != "landing" {
					t.Fatalf("view=%q want=landing", snap.State.View)
				}
				if len(snap.Team) != 6 {
					t.Fatalf("team=%d want=6", len(snap.Team))
				}
			}

			// Browse to a profile.
			{
				status, body, _ := srv.doJSON(t, http.MethodPost, "/intents/explore", nil)
				requireOK(t, status, body)
				status, body, _ = srv.doJSON(t, http.MethodPost, "/intents/select-member", map[string]any{"memberId": 4})
				snap := requireOK(t, status, body)
				if snap.State.View != "profile" || snap.Profile == nil || snap.Profile.ID != 4 {
					t.Fatalf("unexpected snapshot: %s", string(body))
				}
				if snap.Profile.InstagramHandle == "" {
					t.Fatalf("expected instagram handle; body=%s", string(body))
				}
			}

			// Editing without authentication is rejected.
			{
				status, body, _ := srv.doJSON(t, http.MethodPost, "/intents/toggle-edit", nil)
				requireErrorCode(t, status, body, http.StatusConflict, "INVALID_TRANSITION")
			}

			// Wrong password stays on the modal.
			{
				status, body, _ := srv.doJSON(t, http.MethodPost, "/intents/open-login", nil)
				requireOK(t, status, body)
				status, body, _ = srv.doJSON(t, http.MethodPost, "/intents/login", map[string]any{"memberId": 4, "password": "4321"})
				snap := requireOK(t, status, body)
				if !snap.State.Login.Open || snap.State.Login.Error != "Invalid password" || snap.State.IsAdminAuthenticated {
					t.Fatalf("unexpected snapshot after failed login: %s", string(body))
				}
			}

			// Correct password opens the editor on the member's own profile.
			{
				status, body, _ := srv.doJSON(t, http.MethodPost, "/intents/login", map[string]any{"memberId": 4, "password": "1234"})
				snap := requireOK(t, status, body)
				if !snap.State.IsAdminAuthenticated || !snap.State.IsEditing || snap.State.EditBuffer == nil {
					t.Fatalf("unexpected snapshot after login: %s", string(body))
				}
			}

			// Edit, save, and read back.
			{
				status, body, _ := srv.doJSON(t, http.MethodPost, "/intents/edit-field", map[string]any{"field": "role", "value": "Producer"})
				requireOK(t, status, body)
				status, body, _ = srv.doJSON(t, http.MethodPost, "/intents/save", nil)
				snap := requireOK(t, status, body)
				if snap.State.IsEditing || snap.Profile == nil || snap.Profile.Role != "Producer" {
					t.Fatalf("unexpected snapshot after save: %s", string(body))
				}

				status, body, _ = srv.doJSON(t, http.MethodGet, "/members/4", nil)
				got := mustUnmarshal[struct {
					Member struct {
						Role string `json:"role"`
					} `json:"member"`
				}](t, body)
				if status != http.StatusOK || got.Member.Role != "Producer" {
					t.Fatalf("status=%d body=%s", status, string(body))
				}
			}
		})
	}
}
