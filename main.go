// File: main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shapeWordAuth/internal/canvas"
	"shapeWordAuth/internal/captcha"
	"shapeWordAuth/internal/session"
)

func main() {
	var (
		addr      string
		staticDir string
		cfgPath   string
		wordsPath string
		fontPath  string
		storeKind string
		dbPath    string
		ttl       time.Duration
		singleUse bool
		returnTo  string
	)
	flag.StringVar(&addr, "addr", ":28416", "listen address")
	flag.StringVar(&staticDir, "static", "./static", "directory served at / (empty to disable)")
	flag.StringVar(&cfgPath, "config", "", "JSON file overriding the default captcha config")
	flag.StringVar(&wordsPath, "words", "", "word list file, one word per line")
	flag.StringVar(&fontPath, "font", "", "TTF font file (default: embedded Go Regular)")
	flag.StringVar(&storeKind, "store", "memory", "session store: memory or sqlite")
	flag.StringVar(&dbPath, "db", "captcha.db", "sqlite database path")
	flag.DurationVar(&ttl, "ttl", 10*time.Minute, "sqlite challenge lifetime (0 keeps them forever)")
	flag.BoolVar(&singleUse, "single-use", false, "delete a challenge after its first verification")
	flag.StringVar(&returnTo, "return-to", "/", "page /validate redirects to with ?success= or ?error=")
	flag.Parse()

	cfg := captcha.DefaultConfig()
	if cfgPath != "" {
		var err error
		if cfg, err = captcha.LoadConfig(cfgPath); err != nil {
			log.Fatalf("load config: %v", err)
		}
	}
	if wordsPath != "" {
		words, err := captcha.LoadWordList(wordsPath)
		if err != nil {
			log.Fatalf("load words: %v", err)
		}
		cfg.Words = words
	}

	tf, err := loadTypeface(fontPath)
	if err != nil {
		log.Fatalf("load font: %v", err)
	}
	gen, err := captcha.NewGenerator(cfg, tf)
	if err != nil {
		log.Fatalf("captcha config: %v", err)
	}

	var store captcha.Store
	var closer io.Closer
	switch storeKind {
	case "memory":
		store = session.NewMemoryStore()
	case "sqlite":
		db, err := session.OpenSQLite(dbPath)
		if err != nil {
			log.Fatalf("session store: %v", err)
		}
		closer = db
		if ttl > 0 {
			go pruneLoop(db, ttl)
		}
		store = db
	default:
		log.Fatalf("unknown store %q (supported: memory, sqlite)", storeKind)
	}

	srv := &server{gen: gen, store: store, singleUse: singleUse, returnTo: returnTo}
	httpSrv := &http.Server{Addr: addr, Handler: srv.routes(staticDir)}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatalf("listen: %v", err)
	}
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	log.Printf("Server listening on %s (store=%s)", addr, storeKind)
	if err := serve(httpSrv, ln, stop, closer); err != nil {
		log.Fatal(err)
	}
	log.Printf("Server stopped")
}

// serve runs srv on ln until stop fires, drains in-flight requests, then
// closes the session store.
func serve(srv *http.Server, ln net.Listener, stop <-chan os.Signal, closer io.Closer) error {
	idle := make(chan struct{})
	go func() {
		defer close(idle)
		<-stop
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-idle
	if closer != nil {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("close session store: %w", err)
		}
	}
	return nil
}

func loadTypeface(path string) (*canvas.Typeface, error) {
	if path == "" {
		return canvas.DefaultTypeface()
	}
	return canvas.LoadTypeface(path)
}

func pruneLoop(db *session.SQLiteStore, ttl time.Duration) {
	ticker := time.NewTicker(ttl / 2)
	defer ticker.Stop()
	for range ticker.C {
		n, err := db.Prune(context.Background(), time.Now().Add(-ttl))
		if err != nil {
			log.Printf("prune sessions: %v", err)
			continue
		}
		if n > 0 {
			log.Printf("pruned %d expired challenges", n)
		}
	}
}
