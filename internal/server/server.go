// Package server exposes the recognizer and tracing sessions over HTTP for a
// browser drawing surface.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/f3rmion/abc/internal/config"
	"github.com/f3rmion/abc/internal/gesture"
	"github.com/f3rmion/abc/internal/lesson"
	"github.com/f3rmion/abc/internal/samples"
)

const maxBodyBytes = 1 << 20

// SampleStore is the part of samples.Store the API needs.
type SampleStore interface {
	Save(ctx context.Context, s *samples.Sample) error
	List(ctx context.Context, letter rune) ([]samples.Sample, error)
	Counts(ctx context.Context) (map[rune]int, error)
}

// Server holds the HTTP handlers.
type Server struct {
	cfg      *config.Config
	rec      *gesture.Recognizer
	sessions *SessionStore
	samples  SampleStore
}

// Option configures a Server.
type Option func(*Server)

// WithSamples enables the /api/samples endpoints.
func WithSamples(store SampleStore) Option {
	return func(s *Server) { s.samples = store }
}

// WithRecognizer replaces the recognizer built from the settings.
func WithRecognizer(rec *gesture.Recognizer) Option {
	return func(s *Server) { s.rec = rec }
}

// New builds a server from the settings. Sessions have no speech backend;
// the browser speaks the returned text itself.
func New(cfg *config.Config, opts ...Option) *Server {
	s := &Server{cfg: cfg, rec: cfg.Recognizer()}
	for _, opt := range opts {
		opt(s)
	}
	s.sessions = NewSessionStore(func() *lesson.Controller {
		lo := cfg.LessonOptions()
		lo.Recognizer = s.rec
		ctl := lesson.NewController(lo)
		if !cfg.Gesture.Enabled {
			ctl.SetTracing(false)
		}
		return ctl
	})
	return s
}

// Sessions returns the session store.
func (s *Server) Sessions() *SessionStore { return s.sessions }

// Handler returns the router with the standard middleware stack.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(15 * time.Second))
	s.RegisterRoutes(r)
	return r
}

// RegisterRoutes mounts the API on r.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", s.healthz)
	r.Route("/api", func(r chi.Router) {
		r.Get("/letters", s.letters)
		r.Post("/recognize", s.recognize)
		r.Post("/sessions", s.createSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", s.getSession)
			r.Post("/strokes", s.submitStroke)
			r.Post("/next", s.sessionAction(func(c *lesson.Controller) { c.Next() }))
			r.Post("/prev", s.sessionAction(func(c *lesson.Controller) { c.Prev() }))
			r.Post("/tracing", s.sessionAction(func(c *lesson.Controller) { c.ToggleTracing() }))
			r.Post("/clear", s.sessionAction(func(c *lesson.Controller) { c.Clear() }))
			r.Post("/announce", s.sessionAction(func(c *lesson.Controller) { c.Announce() }))
			r.Post("/select", s.selectLetter)
		})
		if s.samples != nil {
			r.Get("/samples", s.listSamples)
			r.Post("/samples", s.saveSample)
			r.Get("/samples/counts", s.sampleCounts)
		}
	})
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.Len(),
	})
}

type letterView struct {
	Letter        string `json:"letter"`
	Pronunciation string `json:"pronunciation"`
	Example       string `json:"example,omitempty"`
	Dedicated     bool   `json:"dedicated"`
}

func (s *Server) letters(w http.ResponseWriter, _ *http.Request) {
	lang := s.cfg.Language()
	out := make([]letterView, 0, len(lesson.Alphabet))
	for _, l := range lesson.Letters() {
		info := lang.Info(l)
		_, dedicated := gesture.ClassifierFor(l)
		out = append(out, letterView{
			Letter:        string(l),
			Pronunciation: info.Pronunciation,
			Example:       info.Example,
			Dedicated:     dedicated,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type recognizeRequest struct {
	Letter string          `json:"letter"`
	Points []gesture.Point `json:"points"`
}

type recognizeResponse struct {
	Match  bool   `json:"match"`
	Letter string `json:"letter,omitempty"`
	Points int    `json:"points"`
}

func (s *Server) recognize(w http.ResponseWriter, r *http.Request) {
	var req recognizeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	letter, err := samples.ParseLetter(req.Letter)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	res := s.rec.OnStrokeComplete(req.Points, letter)
	resp := recognizeResponse{Match: res.Matched(), Points: len(req.Points)}
	if res.Matched() {
		resp.Letter = string(res.Letter())
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) createSession(w http.ResponseWriter, _ *http.Request) {
	sess := s.sessions.Create()
	writeJSON(w, http.StatusCreated, s.sessions.Do(sess, nil))
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	sess, ok := s.sessions.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
	}
	return sess, ok
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.sessions.Do(sess, nil))
}

func (s *Server) sessionAction(fn func(*lesson.Controller)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := s.session(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, s.sessions.Do(sess, fn))
	}
}

func (s *Server) selectLetter(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req struct {
		Letter string `json:"letter"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	letter := []rune(req.Letter)
	var selected bool
	view := s.sessions.Do(sess, func(c *lesson.Controller) {
		if len(letter) == 1 {
			selected = c.Select(letter[0])
		}
	})
	if !selected {
		writeError(w, http.StatusBadRequest, "letter must be A to Z")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type outcomeView struct {
	Kind     string `json:"kind"`
	Expected string `json:"expected,omitempty"`
	Match    bool   `json:"match"`
	Points   int    `json:"points"`
	Message  string `json:"message,omitempty"`
	Spoken   string `json:"spoken,omitempty"`
}

type strokeResponse struct {
	Outcome outcomeView `json:"outcome"`
	Session SessionView `json:"session"`
}

func (s *Server) submitStroke(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req struct {
		Points []gesture.Point `json:"points"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	var out lesson.Outcome
	view := s.sessions.Do(sess, func(c *lesson.Controller) {
		if len(req.Points) > 0 {
			c.Press(req.Points[0])
			for _, p := range req.Points[1:] {
				c.Drag(p)
			}
		}
		out = c.Release()
	})

	resp := strokeResponse{
		Outcome: outcomeView{
			Kind:    out.Kind.String(),
			Match:   out.Result.Matched(),
			Points:  out.Points,
			Message: out.Message,
			Spoken:  out.Spoken,
		},
		Session: view,
	}
	if out.Expected != 0 {
		resp.Outcome.Expected = string(out.Expected)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) listSamples(w http.ResponseWriter, r *http.Request) {
	var letter rune
	if q := r.URL.Query().Get("letter"); q != "" {
		l, err := samples.ParseLetter(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		letter = l
	}
	list, err := s.samples.List(r.Context(), letter)
	if err != nil {
		log.Printf("listing samples: %v", err)
		writeError(w, http.StatusInternalServerError, "listing samples failed")
		return
	}
	if list == nil {
		list = []samples.Sample{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) saveSample(w http.ResponseWriter, r *http.Request) {
	var smp samples.Sample
	if !decodeJSON(w, r, &smp) {
		return
	}
	if len(smp.Stroke) == 0 {
		writeError(w, http.StatusBadRequest, "stroke must not be empty")
		return
	}
	smp.ID = ""
	smp.Source = "http"
	smp.Matched = s.rec.Recognize(smp.Stroke, smp.Letter).Matched()
	if err := s.samples.Save(r.Context(), &smp); err != nil {
		log.Printf("saving sample: %v", err)
		writeError(w, http.StatusInternalServerError, "saving sample failed")
		return
	}
	writeJSON(w, http.StatusCreated, smp)
}

func (s *Server) sampleCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := s.samples.Counts(r.Context())
	if err != nil {
		log.Printf("counting samples: %v", err)
		writeError(w, http.StatusInternalServerError, "counting samples failed")
		return
	}
	out := make(map[string]int, len(counts))
	for l, n := range counts {
		out[string(l)] = n
	}
	writeJSON(w, http.StatusOK, out)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("writing response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
