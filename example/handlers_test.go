package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/komuw/idenc"
	"github.com/sirupsen/logrus"
	"go.akshayshah.org/attest"
)

func testApp(t *testing.T) http.Handler {
	t.Helper()

	enc, err := idenc.New(idenc.DefaultAlphabet, idenc.DefaultBlockSize)
	attest.Ok(t, err)

	l := logrus.New()
	l.SetOutput(io.Discard)

	return newApp(enc, l).routes()
}

func createLink(t *testing.T, h http.Handler, url string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/links", strings.NewReader(`{"url": "`+url+`"}`))
	h.ServeHTTP(rec, req)
	return rec
}

func TestCreate(t *testing.T) {
	t.Parallel()

	t.Run("sequential ids encode", func(t *testing.T) {
		t.Parallel()

		h := testApp(t)

		rec := createLink(t, h, "https://example.com/a")
		attest.Equal(t, rec.Code, http.StatusCreated)
		res := struct {
			Code string `json:"code"`
		}{}
		attest.Ok(t, json.Unmarshal(rec.Body.Bytes(), &res))
		attest.Equal(t, res.Code, "yyyyy") // id 0, padded.

		rec = createLink(t, h, "https://example.com/b")
		attest.Equal(t, rec.Code, http.StatusCreated)
		attest.Ok(t, json.Unmarshal(rec.Body.Bytes(), &res))
		attest.Equal(t, res.Code, "twvge") // id 1.
	})

	t.Run("rejects bad input", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			body string
		}{
			{name: "not json", body: `hello`},
			{name: "missing url", body: `{}`},
			{name: "relative url", body: `{"url": "foo/bar"}`},
			{name: "bad scheme", body: `{"url": "ftp://example.com"}`},
		}

		h := testApp(t)
		for _, tt := range tests {
			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				rec := httptest.NewRecorder()
				req := httptest.NewRequest(http.MethodPost, "/links", strings.NewReader(tt.body))
				h.ServeHTTP(rec, req)

				attest.Equal(t, rec.Code, http.StatusBadRequest, attest.Sprintf("body %s", tt.body))
				attest.Subsequence(t, rec.Body.String(), "error")
			})
		}
	})
}

func TestRedirect(t *testing.T) {
	t.Parallel()

	t.Run("follows created link", func(t *testing.T) {
		t.Parallel()

		h := testApp(t)
		createLink(t, h, "https://example.com/a")

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/yyyyy", nil)
		h.ServeHTTP(rec, req)

		attest.Equal(t, rec.Code, http.StatusFound)
		attest.Equal(t, rec.Header().Get("Location"), "https://example.com/a")
	})

	t.Run("unknown id", func(t *testing.T) {
		t.Parallel()

		h := testApp(t)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/9kvk9", nil) // id 12, never stored.
		h.ServeHTTP(rec, req)

		attest.Equal(t, rec.Code, http.StatusNotFound)
	})

	t.Run("undecodable code", func(t *testing.T) {
		t.Parallel()

		h := testApp(t)
		createLink(t, h, "https://example.com/a")

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/n0pe", nil)
		h.ServeHTTP(rec, req)

		attest.Equal(t, rec.Code, http.StatusNotFound)
	})
}
