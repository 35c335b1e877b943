// Command shortlink is a demo HTTP service that hands out short codes
// for URLs using the idenc package. It is not part of the library surface.
package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/komuw/idenc"
	"github.com/sirupsen/logrus"
)

func main() {
	// A missing .env file is fine, the defaults below cover local use.
	_ = godotenv.Load()

	l := logrus.New()
	if lvl := os.Getenv("SHORTLINK_LOG_LEVEL"); lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			l.WithError(err).Fatal("bad SHORTLINK_LOG_LEVEL")
		}
		l.SetLevel(level)
	}

	alphabet := os.Getenv("SHORTLINK_ALPHABET")
	if alphabet == "" {
		alphabet = idenc.DefaultAlphabet
	}
	enc, err := idenc.New(alphabet, idenc.DefaultBlockSize)
	if err != nil {
		l.WithError(err).Fatal("bad SHORTLINK_ALPHABET")
	}

	addr := os.Getenv("SHORTLINK_ADDR")
	if addr == "" {
		addr = "localhost:8080"
	}

	a := newApp(enc, l)

	l.WithField("addr", addr).Info("starting shortlink server")
	if err := http.ListenAndServe(addr, a.routes()); err != nil {
		l.WithError(err).Fatal("server exited")
	}
}
