package cli

import (
	"context"
	"fmt"
	"io"
	"net"

	"github.com/spf13/cobra"

	"github.com/mrz1836/rcli/internal/errors"
	"github.com/mrz1836/rcli/internal/httpserve"
	"github.com/mrz1836/rcli/internal/signal"
	"github.com/mrz1836/rcli/internal/tui"
)

// HTTPServeFlags holds flags for http serve.
type HTTPServeFlags struct {
	Dir  string
	Port int

	// listener overrides Port; set by tests.
	listener net.Listener
}

// AddHTTPCommand adds the http command group to the root command.
func AddHTTPCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "http",
		Short: "HTTP utilities",
	}

	flags := &HTTPServeFlags{}
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve a directory over HTTP",
		Long: `Serve files from a directory until interrupted.

GET /<path> returns the file's contents; GET /tower/ browses the directory.
SIGINT or SIGTERM shuts the server down gracefully.

Examples:
  rcli http serve
  rcli http serve -d ./public -p 9000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHTTPServe(cmd.Context(), cmd.OutOrStdout(), outputFormat(cmd), flags)
		},
	}
	serve.Flags().StringVarP(&flags.Dir, "dir", "d", "", "directory to serve (default from http.dir)")
	serve.Flags().IntVarP(&flags.Port, "port", "p", 0, "port to listen on (default from http.port)")

	cmd.AddCommand(serve)
	root.AddCommand(cmd)
}

func runHTTPServe(ctx context.Context, w io.Writer, outFmt string, flags *HTTPServeFlags) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	opts := httpserve.Options{
		Dir:               firstNonEmpty(flags.Dir, cfg.HTTP.Dir),
		Port:              cfg.HTTP.Port,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		ShutdownTimeout:   cfg.HTTP.ShutdownTimeout,
		Listener:          flags.listener,
	}
	if flags.Port != 0 {
		opts.Port = flags.Port
	}
	if opts.Port < 1 || opts.Port > 65535 {
		return fmt.Errorf("%w: port %d", errors.ErrValueOutOfRange, opts.Port)
	}
	if err = checkDir(opts.Dir); err != nil {
		return err
	}

	h := signal.NewHandler(ctx)
	defer h.Stop()

	out := tui.NewOutput(w, outFmt)
	if opts.Listener != nil {
		out.Info(fmt.Sprintf("Serving %s on %s", opts.Dir, opts.Listener.Addr()))
	} else {
		out.Info(fmt.Sprintf("Serving %s on http://localhost:%d", opts.Dir, opts.Port))
	}

	if err = httpserve.Serve(h.Context(), opts); err != nil {
		return err
	}
	if sig := h.Signal(); sig != nil {
		out.Success(fmt.Sprintf("Server stopped (%s)", sig))
		return nil
	}
	out.Success("Server stopped")
	return nil
}
