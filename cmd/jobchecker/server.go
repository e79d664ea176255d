package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/wiltodelta/find-my-next-job/internal/config"
	"github.com/wiltodelta/find-my-next-job/internal/recon"
	"github.com/wiltodelta/find-my-next-job/internal/store"
)

// serveStatus exposes a small localhost API: health, the archived listings,
// and the last run's summary. Read-only; runs stay CLI-driven.
func serveStatus(ctx context.Context, cfg config.Config, archive *store.DB, lastRun *atomic.Value) {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"ok": true, "time": time.Now().Format(time.RFC3339)})
	})

	mux.HandleFunc("/listings", func(w http.ResponseWriter, r *http.Request) {
		if archive == nil {
			http.Error(w, "archive disabled", http.StatusServiceUnavailable)
			return
		}
		listings, err := archive.Recent(r.Context(), 200)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, listings)
	})

	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		v := lastRun.Load()
		if v == nil {
			writeJSON(w, map[string]any{"ran": false})
			return
		}
		sum := v.(recon.Summary)
		writeJSON(w, sum)
	})

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Printf("[serve] listen failed: %v", err)
		return
	}
	log.Printf("[serve] status API on http://%s", addr)

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutCtx)
	}()

	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		log.Printf("[serve] %v", err)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
