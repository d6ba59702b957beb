// Package debugsrv serves metrics and live PNG snapshots of the globe
// over HTTP.
package debugsrv

import (
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// ErrNotReady is returned by a Source that has nothing to show yet.
var ErrNotReady = errors.New("debugsrv: not ready")

// Source supplies the images and stats served by the router. The
// methods are called from HTTP goroutines and must be safe for that.
type Source interface {
	Snapshot() (image.Image, error)
	Texture() (image.Image, error)
	Stats() any
}

// NewRouter wires the debug endpoints. metrics may be nil.
func NewRouter(src Source, metrics http.Handler, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("ok")); err != nil {
			log.Warn().Err(err).Msg("write health response")
		}
	})
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}
	r.Get("/snapshot.png", pngHandler(src.Snapshot, log))
	r.Get("/texture.png", pngHandler(src.Texture, log))
	r.Get("/stats", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(src.Stats()); err != nil {
			log.Warn().Err(err).Msg("encode stats")
		}
	})
	return r
}

func pngHandler(get func() (image.Image, error), log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		img, err := get()
		if errors.Is(err, ErrNotReady) {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-store")
		if err := png.Encode(w, img); err != nil {
			log.Warn().Err(err).Msg("encode png")
		}
	}
}

// Serve runs h on addr until ctx is canceled.
func Serve(ctx context.Context, addr string, h http.Handler, log zerolog.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{Handler: h, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}()
	log.Info().Str("addr", ln.Addr().String()).Msg("debug server listening")
	if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
