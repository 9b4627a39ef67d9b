// Package httpserve serves a directory over HTTP.
//
// Two routes are mounted: /tower/ is a browsable http.FileServer over the
// directory, and every other GET path returns the raw contents of the file
// at that path relative to the directory.
package httpserve

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mrz1836/rcli/internal/constants"
	"github.com/mrz1836/rcli/internal/errors"
)

// Options configures Serve.
type Options struct {
	// Dir is the directory to serve.
	Dir string
	// Port is the TCP port to listen on. Ignored when Listener is set.
	Port int
	// ReadHeaderTimeout bounds header reads. Zero uses the default.
	ReadHeaderTimeout time.Duration
	// ShutdownTimeout bounds graceful shutdown. Zero uses the default.
	ShutdownTimeout time.Duration
	// Listener, when non-nil, is used instead of listening on Port.
	Listener net.Listener
}

func (o Options) withDefaults() Options {
	if o.Port == 0 {
		o.Port = constants.DefaultHTTPPort
	}
	if o.ReadHeaderTimeout == 0 {
		o.ReadHeaderTimeout = constants.DefaultReadHeaderTimeout
	}
	if o.ShutdownTimeout == 0 {
		o.ShutdownTimeout = constants.DefaultShutdownTimeout
	}
	return o
}

// NewHandler returns the router for dir.
func NewHandler(dir string, logger zerolog.Logger) http.Handler {
	root := http.Dir(dir)
	mux := http.NewServeMux()
	mux.Handle("GET /tower/", http.StripPrefix("/tower", http.FileServer(root)))
	mux.Handle("GET /{path...}", fileHandler(root, logger))
	return logRequests(mux, logger)
}

func fileHandler(root http.FileSystem, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := "/" + r.PathValue("path")

		f, err := root.Open(name)
		if err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				http.Error(w, fmt.Sprintf("File %s not found", name), http.StatusNotFound)
				return
			}
			logger.Warn().Err(err).Str("path", name).Msg("opening file")
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		defer func() { _ = f.Close() }()

		info, err := f.Stat()
		if err != nil || info.IsDir() {
			http.Error(w, fmt.Sprintf("File %s not found", name), http.StatusNotFound)
			return
		}

		data, err := io.ReadAll(f)
		if err != nil {
			logger.Warn().Err(err).Str("path", name).Msg("reading file")
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		_, _ = w.Write(data)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// Serve runs the server until ctx is canceled, then shuts it down
// gracefully. It returns nil after a clean shutdown.
func Serve(ctx context.Context, opts Options) error {
	opts = opts.withDefaults()
	logger := zerolog.Ctx(ctx).With().Str("component", "httpserve").Logger()

	ln := opts.Listener
	if ln == nil {
		var lc net.ListenConfig
		var err error
		ln, err = lc.Listen(ctx, "tcp", net.JoinHostPort("", strconv.Itoa(opts.Port)))
		if err != nil {
			return errors.Tag(errors.ErrIO, err, "listening")
		}
	}

	srv := &http.Server{
		Handler:           NewHandler(opts.Dir, logger),
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
	}

	logger.Info().
		Str("dir", opts.Dir).
		Str("addr", ln.Addr().String()).
		Msg("serving directory")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), opts.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		logger.Info().Msg("server stopped")
		return nil
	})
	return g.Wait()
}
