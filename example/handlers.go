package main

import (
	"encoding/json"
	"net/http"
	"net/url"
	"sync"

	"github.com/gorilla/mux"
	"github.com/komuw/idenc"
	"github.com/sirupsen/logrus"
)

// app represents the service as a struct, shared dependencies as fields, no global state.
type app struct {
	enc *idenc.Encoder
	l   *logrus.Logger

	mu     sync.Mutex // guards nextID and links
	nextID int64
	links  map[int64]string
}

func newApp(enc *idenc.Encoder, l *logrus.Logger) *app {
	return &app{
		enc:   enc,
		l:     l,
		links: map[int64]string{},
	}
}

func (a *app) routes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/links", a.create()).Methods("POST")
	r.HandleFunc("/{code}", a.redirect()).Methods("GET")
	return r
}

// create stores the submitted URL and answers with its short code.
func (a *app) create() http.HandlerFunc {
	type request struct {
		URL string `json:"url"`
	}
	type response struct {
		Code string `json:"code"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		req := request{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			a.error(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if req.URL == "" {
			a.error(w, http.StatusBadRequest, "url is required")
			return
		}
		u, err := url.ParseRequestURI(req.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			a.error(w, http.StatusBadRequest, "url must be absolute http or https")
			return
		}

		a.mu.Lock()
		id := a.nextID
		a.nextID++
		a.links[id] = req.URL
		a.mu.Unlock()

		code, err := a.enc.EncodePadded(id, idenc.DefaultMinLength)
		if err != nil {
			a.l.WithError(err).Error("encode failed")
			a.error(w, http.StatusInternalServerError, "internal error")
			return
		}

		a.l.WithFields(logrus.Fields{"id": id, "code": code}).Info("link created")
		a.respond(w, http.StatusCreated, response{Code: code})
	}
}

// redirect resolves a short code back to its stored URL.
func (a *app) redirect() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := mux.Vars(r)["code"]

		id, err := a.enc.Decode(code)
		if err != nil {
			a.error(w, http.StatusNotFound, "no such link")
			return
		}

		a.mu.Lock()
		target, ok := a.links[id]
		a.mu.Unlock()
		if !ok {
			a.error(w, http.StatusNotFound, "no such link")
			return
		}

		// 302 so that clients come back here instead of caching the target.
		http.Redirect(w, r, target, http.StatusFound)
	}
}

func (a *app) respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (a *app) error(w http.ResponseWriter, status int, msg string) {
	a.respond(w, status, map[string]string{"error": msg})
}
