// File: handler.go
package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"shapeWordAuth/internal/captcha"
)

const sessionCookie = "captcha_session"

const (
	msgSuccess     = "CAPTCHA validation successful!"
	msgFailed      = "CAPTCHA validation failed. You didn't click on the correct word."
	msgNoClick     = "Error: Click coordinates not received."
	msgNoSession   = "Error: Target object not found in session."
	msgBadMethod   = "Invalid request method."
	msgServerError = "Error: could not check the answer, try again."
)

type server struct {
	gen       *captcha.Generator
	store     captcha.Store
	singleUse bool   // drop the challenge after its first verification
	returnTo  string // page /validate redirects to, "/" when empty
}

func (s *server) routes(staticDir string) http.Handler {
	mux := http.NewServeMux()
	if staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	}
	mux.HandleFunc("/api/challenge/start", s.handleStart)
	mux.HandleFunc("/api/challenge/verify", s.handleVerify)
	mux.HandleFunc("/captcha.png", s.handleImage)
	mux.HandleFunc("/validate", s.handleValidate)
	return mux
}

func (s *server) handleStart(w http.ResponseWriter, r *http.Request) {
	id := uuid.New().String()
	res, err := s.gen.Issue(r.Context(), s.store, id, captcha.NewRand())
	if err != nil {
		log.Printf("Challenge %s generation failed: %v", id, err)
		http.Error(w, "failed to generate challenge", http.StatusInternalServerError)
		return
	}
	log.Printf("Challenge %s: %s", id, res.Challenge.Instruction)

	rsp := StartResponse{
		UUID:        id,
		Image:       res.DataURI(),
		Instruction: res.Challenge.Instruction,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rsp)
}

func (s *server) handleVerify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	var click *captcha.Point
	if req.X != nil && req.Y != nil {
		click = &captcha.Point{X: *req.X, Y: *req.Y}
	}

	ok, err := s.verify(r, req.UUID, click)
	switch {
	case errors.Is(err, captcha.ErrMissingClick):
		http.Error(w, "missing click coordinates", http.StatusBadRequest)
		return
	case errors.Is(err, captcha.ErrSessionMissing):
		http.Error(w, "uuid not found", http.StatusNotFound)
		return
	case err != nil:
		http.Error(w, "verification failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if ok {
		json.NewEncoder(w).Encode(VerifyResponse{true, msgSuccess})
	} else {
		json.NewEncoder(w).Encode(VerifyResponse{false, msgFailed})
	}
}

// handleImage issues a challenge bound to the session cookie and serves
// the PNG directly, for pages that embed the captcha as an image input.
func (s *server) handleImage(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	if id == "" {
		id = uuid.New().String()
	}
	res, err := s.gen.Issue(r.Context(), s.store, id, captcha.NewRand())
	if err != nil {
		log.Printf("Challenge %s generation failed: %v", id, err)
		http.Error(w, "failed to generate challenge", http.StatusInternalServerError)
		return
	}
	log.Printf("Challenge %s: %s", id, res.Challenge.Instruction)

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(res.PNG)
}

// handleValidate reads the click of an <input type="image" name="captcha_click">
// form submission and redirects back with the outcome.
func (s *server) handleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.redirectWith(w, r, "error", msgBadMethod)
		return
	}
	click, err := formClick(r)
	if err != nil {
		s.redirectWith(w, r, "error", msgNoClick)
		return
	}

	ok, err := s.verify(r, sessionID(r), click)
	switch {
	case errors.Is(err, captcha.ErrMissingClick):
		s.redirectWith(w, r, "error", msgNoClick)
	case errors.Is(err, captcha.ErrSessionMissing):
		s.redirectWith(w, r, "error", msgNoSession)
	case err != nil:
		log.Printf("Validate failed: %v", err)
		s.redirectWith(w, r, "error", msgServerError)
	case ok:
		s.redirectWith(w, r, "success", msgSuccess)
	default:
		s.redirectWith(w, r, "error", msgFailed)
	}
}

func (s *server) verify(r *http.Request, id string, click *captcha.Point) (bool, error) {
	ok, err := captcha.Verify(r.Context(), s.store, id, click)
	if err != nil {
		return false, err
	}
	log.Printf("Challenge %s verified: %v", id, ok)
	if s.singleUse {
		if err := s.store.Delete(r.Context(), id); err != nil {
			log.Printf("Challenge %s delete failed: %v", id, err)
		}
	}
	return ok, nil
}

func sessionID(r *http.Request) string {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

// formClick returns nil when either coordinate is absent.
func formClick(r *http.Request) (*captcha.Point, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	xs, ys := r.PostForm.Get("captcha_click.x"), r.PostForm.Get("captcha_click.y")
	if xs == "" || ys == "" {
		return nil, nil
	}
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return nil, err
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return nil, err
	}
	return &captcha.Point{X: x, Y: y}, nil
}

// redirectWith sends the outcome back as a query parameter on s.returnTo.
func (s *server) redirectWith(w http.ResponseWriter, r *http.Request, key, msg string) {
	target, err := url.Parse(s.returnTo)
	if err != nil || s.returnTo == "" {
		target = &url.URL{Path: "/"}
	}
	q := target.Query()
	q.Set(key, msg)
	target.RawQuery = q.Encode()
	http.Redirect(w, r, target.String(), http.StatusSeeOther)
}
