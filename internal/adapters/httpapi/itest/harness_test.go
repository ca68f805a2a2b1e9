package itest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/edta-team/portfolio/internal/adapters/httpapi"
	memclock "github.com/edta-team/portfolio/internal/adapters/memory/clock"
	memmemberrepo "github.com/edta-team/portfolio/internal/adapters/memory/memberrepo"
	"github.com/edta-team/portfolio/internal/adapters/roster"
	"github.com/edta-team/portfolio/internal/app/portfolio"
	"github.com/edta-team/portfolio/internal/platform/auth/password"
	"github.com/edta-team/portfolio/internal/platform/config"
	"github.com/edta-team/portfolio/internal/platform/imagecodec"
	"github.com/edta-team/portfolio/internal/platform/logging"
)

func passwordModesFromEnv(t *testing.T) []string {
	t.Helper()
	switch strings.ToLower(strings.TrimSpace(os.Getenv("ITEST_PASSWORD_MODE"))) {
	case "", config.PasswordModePlaintext:
		return []string{config.PasswordModePlaintext}
	case config.PasswordModeBcrypt:
		return []string{config.PasswordModeBcrypt}
	case "all":
		return []string{config.PasswordModePlaintext, config.PasswordModeBcrypt}
	default:
		t.Fatalf("unknown ITEST_PASSWORD_MODE value (expected plaintext|bcrypt|all)")
		return nil
	}
}

type testServer struct {
	baseURL string
	client  *http.Client
}

// newTestServer boots the full router over the built-in roster. In bcrypt mode the roster
// passwords are hashed first, the way cmd/rosterhash prepares a roster file.
func newTestServer(t *testing.T, mode string) *testServer {
	t.Helper()

	ms, err := roster.Default()
	if err != nil {
		t.Fatalf("roster.Default: %v", err)
	}
	if mode == config.PasswordModeBcrypt {
		for i := range ms {
			h, err := password.Hash(ms[i].Password)
			if err != nil {
				t.Fatalf("hash: %v", err)
			}
			ms[i].Password = h
		}
	}
	repo, err := memmemberrepo.NewSeededRepo(context.Background(), ms)
	if err != nil {
		t.Fatalf("NewSeededRepo: %v", err)
	}
	matcher, err := password.ForMode(mode)
	if err != nil {
		t.Fatalf("ForMode: %v", err)
	}

	log := logging.Discard()
	clk := memclock.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	reg := portfolio.NewRegistry(portfolio.Deps{
		Repo:      repo,
		Clock:     clk,
		Passwords: matcher,
		Decoder:   imagecodec.NewDataURLDecoder(1 << 20),
		Logger:    log,
	}, time.Hour)
	handler := httpapi.NewRouterWithOptions(httpapi.NewServer(portfolio.NewProjector(repo, clk), log), reg, httpapi.RouterOptions{Logger: log})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	client := srv.Client()
	client.Jar = jar

	return &testServer{
		baseURL: srv.URL,
		client:  client,
	}
}

func (s *testServer) url(path string) string {
	if strings.HasPrefix(path, "/") {
		return s.baseURL + path
	}
	return s.baseURL + "/" + path
}

func (s *testServer) doJSON(t *testing.T, method string, path string, body any) (int, []byte, http.Header) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, s.url(path), r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()
	out, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, out, resp.Header
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type snapshot struct {
	State struct {
		View                 string             `json:"view"`
		SelectedMemberID     *int               `json:"selectedMemberId"`
		IsAdminAuthenticated bool               `json:"isAdminAuthenticated"`
		IsEditing            bool               `json:"isEditing"`
		EditBuffer           map[string]*string `json:"editBuffer"`
		Login                struct {
			Open     bool   `json:"open"`
			Error    string `json:"error"`
			TargetID int    `json:"targetId"`
		} `json:"login"`
	} `json:"state"`
	Team []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"team"`
	Profile *struct {
		ID              int    `json:"id"`
		Name            string `json:"name"`
		Role            string `json:"role"`
		InstagramHandle string `json:"instagramHandle"`
		AgeDisplay      string `json:"ageDisplay"`
	} `json:"profile"`
}

func mustUnmarshal[T any](t *testing.T, b []byte) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v\nbody=%s", err, string(b))
	}
	return out
}

func requireOK(t *testing.T, status int, body []byte) snapshot {
	t.Helper()
	if status != http.StatusOK {
		t.Fatalf("status=%d want=%d body=%s", status, http.StatusOK, string(body))
	}
	return mustUnmarshal[snapshot](t, body)
}

func requireErrorCode(t *testing.T, status int, body []byte, wantStatus int, wantCode string) {
	t.Helper()
	if status != wantStatus {
		t.Fatalf("status=%d want=%d body=%s", status, wantStatus, string(body))
	}
	got := mustUnmarshal[errorResponse](t, body)
	if got.Error.Code != wantCode {
		t.Fatalf("error.code=%q want=%q body=%s", got.Error.Code, wantCode, string(body))
	}
}

func requireHeaderPresent(t *testing.T, h http.Header, key string) {
	t.Helper()
	if strings.TrimSpace(h.Get(key)) == "" {
		t.Fatalf("expected header %q to be present", key)
	}
}
