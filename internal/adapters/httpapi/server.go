package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/sirupsen/logrus"

	"github.com/edta-team/portfolio/internal/app/portfolio"
	"github.com/edta-team/portfolio/internal/domain"
)

// DefaultMaxUploadBytes bounds the multipart body of an image upload.
const DefaultMaxUploadBytes = 8 << 20

// Server translates HTTP requests into controller intents. Every intent answers with the
// session snapshot; it renders nothing itself.
type Server struct {
	// roster serves the read-only member routes, which need no session.
	roster *portfolio.Projector
	log    logrus.FieldLogger

	// MaxUploadBytes bounds the request body of POST /intents/upload-image.
	MaxUploadBytes int64
}

func NewServer(roster *portfolio.Projector, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{roster: roster, log: log, MaxUploadBytes: DefaultMaxUploadBytes}
}

func (s *Server) controller(w http.ResponseWriter, r *http.Request) (*portfolio.Controller, bool) {
	_, ctrl, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusInternalServerError, "INTERNAL", "missing session", nil)
		return nil, false
	}
	return ctrl, true
}

// respond writes the full snapshot after an intent, or the intent's error.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, ctrl *portfolio.Controller, intentErr error, upload *uploadJSON) {
	if intentErr != nil {
		s.writeAppError(w, r, intentErr)
		return
	}
	snap, err := ctrl.Snapshot(r.Context())
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	out := toSnapshotJSON(snap)
	out.Upload = upload
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) GetState(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.controller(w, r)
	if !ok {
		return
	}
	s.respond(w, r, ctrl, nil, nil)
}

func (s *Server) ListMembers(w http.ResponseWriter, r *http.Request) {
	cards, err := s.roster.Team(r.Context())
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"members": toMemberCardsJSON(cards)})
}

func (s *Server) GetMember(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseMemberID(chi.URLParam(r, "memberId"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", "memberId must be an integer", map[string]any{"memberId": chi.URLParam(r, "memberId")})
		return
	}
	v, err := s.roster.Profile(r.Context(), id)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"member": toProfileJSON(v)})
}

func (s *Server) Explore(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.controller(w, r)
	if !ok {
		return
	}
	_, err := ctrl.Explore()
	s.respond(w, r, ctrl, err, nil)
}

func (s *Server) SelectMember(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.controller(w, r)
	if !ok {
		return
	}
	var req selectMemberRequest
	if !decodeBody(w, r, &req) {
		return
	}
	_, err := ctrl.SelectMember(r.Context(), domain.MemberID(req.MemberID))
	s.respond(w, r, ctrl, err, nil)
}

func (s *Server) BackToTeam(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.controller(w, r)
	if !ok {
		return
	}
	_, err := ctrl.BackToTeam()
	s.respond(w, r, ctrl, err, nil)
}

func (s *Server) BackToLanding(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.controller(w, r)
	if !ok {
		return
	}
	_, err := ctrl.BackToLanding()
	s.respond(w, r, ctrl, err, nil)
}

func (s *Server) OpenLogin(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.controller(w, r)
	if !ok {
		return
	}
	_, err := ctrl.OpenLogin(r.Context())
	s.respond(w, r, ctrl, err, nil)
}

func (s *Server) CloseLogin(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.controller(w, r)
	if !ok {
		return
	}
	_, err := ctrl.CloseLogin()
	s.respond(w, r, ctrl, err, nil)
}

func (s *Server) SubmitLogin(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.controller(w, r)
	if !ok {
		return
	}
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	_, err := ctrl.SubmitLogin(r.Context(), domain.MemberID(req.MemberID), req.Password)
	s.respond(w, r, ctrl, err, nil)
}

func (s *Server) ToggleEdit(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.controller(w, r)
	if !ok {
		return
	}
	_, err := ctrl.ToggleEdit(r.Context())
	s.respond(w, r, ctrl, err, nil)
}

func (s *Server) EditField(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.controller(w, r)
	if !ok {
		return
	}
	var req editFieldRequest
	if !decodeBody(w, r, &req) {
		return
	}
	_, err := ctrl.EditField(req.Field, req.Value)
	s.respond(w, r, ctrl, err, nil)
}

func (s *Server) PatchEditBuffer(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.controller(w, r)
	if !ok {
		return
	}
	var req editBufferJSON
	if !decodeBody(w, r, &req) {
		return
	}
	_, err := ctrl.ApplyEdits(req.toPatch())
	s.respond(w, r, ctrl, err, nil)
}

// UploadImage accepts a multipart form with an "image" part and waits for the decode so
// the response already reflects it. A request without the part is a no-op.
func (s *Server) UploadImage(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.controller(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.MaxUploadBytes)
	var file openapi_types.File
	fh, err := formFile(r, "image")
	switch {
	case err == nil:
		file.InitFromMultipart(fh)
	case errors.Is(err, http.ErrMissingFile):
		// Nothing chosen; the decoder reports the empty file as skipped.
	default:
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, r, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "upload exceeds "+strconv.FormatInt(s.MaxUploadBytes, 10)+" bytes", nil)
			return
		}
		writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid multipart body", nil)
		return
	}

	pending, err := ctrl.UploadImage(r.Context(), file)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	outcome, err := pending.Wait(r.Context())
	if err != nil && outcome == "" {
		s.writeAppError(w, r, err)
		return
	}
	if err != nil {
		requestLogger(r.Context(), s.log).WithError(err).Warn("image upload not applied")
	}
	s.respond(w, r, ctrl, nil, &uploadJSON{
		Outcome:       string(outcome),
		EditSessionID: string(pending.EditSessionID),
	})
}

func (s *Server) SaveChanges(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.controller(w, r)
	if !ok {
		return
	}
	_, err := ctrl.SaveChanges(r.Context())
	s.respond(w, r, ctrl, err, nil)
}

func (s *Server) CancelEdit(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.controller(w, r)
	if !ok {
		return
	}
	_, err := ctrl.CancelEdit(r.Context())
	s.respond(w, r, ctrl, err, nil)
}

// decodeBody strictly decodes a JSON body into v. An empty body leaves v zero.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body", map[string]any{"reason": err.Error()})
		return false
	}
	return true
}

func formFile(r *http.Request, name string) (*multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, http.ErrMissingFile
		}
		return nil, err
	}
	fhs := r.MultipartForm.File[name]
	if len(fhs) == 0 {
		return nil, http.ErrMissingFile
	}
	return fhs[0], nil
}
