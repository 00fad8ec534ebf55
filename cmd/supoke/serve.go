package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/matryer/way"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httpadapter "svw.info/supoke/internal/adapters/http"
	"svw.info/supoke/internal/generator"
	"svw.info/supoke/internal/hint"
	"svw.info/supoke/internal/solver"
	"svw.info/supoke/internal/usecase"
	"svw.info/supoke/internal/validator"
	"svw.info/supoke/web"
)

// statusWriter captures HTTP status and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// requestLogger logs method, path, status, bytes, and duration.
func requestLogger(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		logger.Info("http",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", sw.status),
			zap.Int("bytes", sw.bytes),
			zap.Duration("dur", time.Since(start).Round(time.Millisecond)),
		)
	})
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the puzzle API and web page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := rootOpts.cfg
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			handler, closeFn, err := newServer(rootOpts)
			if err != nil {
				return err
			}
			defer closeFn()
			return listen(ctx, rootOpts.logger, cfg.Addr, handler)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

// newServer wires providers, use cases and the HTTP adapter.
func newServer(opts *RootOptions) (http.Handler, func() error, error) {
	cfg, logger := opts.cfg, opts.logger
	table, err := cfg.Table()
	if err != nil {
		return nil, nil, err
	}
	st, closeFn, err := openStorage(cfg)
	if err != nil {
		return nil, nil, err
	}

	uc := usecase.NewService(
		solver.NewBacktrackingSolver(table),
		generator.NewAssembler(table),
		validator.New(),
		hint.NewSingles(table),
		st,
		logger,
	)
	h := httpadapter.New(uc, cfg.ElementSet(), cfg.Kind())

	router := way.NewRouter()
	router.Handle(http.MethodGet, "/static/...", web.Static("/static/"))
	router.Handle(http.MethodGet, "/", web.Index(web.PageData{Elements: cfg.Elements, Kind: cfg.Kind().String()}))
	h.Register(router)

	logger.Info("configured",
		zap.String("persist", cfg.PersistPath),
		zap.String("storage", cfg.Storage),
		zap.Strings("elements", cfg.Elements),
		zap.Stringer("lookup", table.Mode()),
	)
	return requestLogger(logger, router), closeFn, nil
}

func listen(ctx context.Context, logger *zap.Logger, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
