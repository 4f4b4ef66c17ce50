/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"dirpx.dev/apierrors/apis"
	"dirpx.dev/apierrors/config"
	"dirpx.dev/apierrors/flash"
	"dirpx.dev/apierrors/httpx"
	"dirpx.dev/apierrors/report"
	"dirpx.dev/apierrors/view"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the demo HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.New()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.HTTPAddr = addr
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Override APIERRORS_HTTP_ADDR")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	log := report.NewZerolog(os.Stdout, cfg.Service).Level(cfg.Level())

	h, fl, err := newHandler(cfg, log)
	if err != nil {
		return err
	}
	router := newRouter(h, fl)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := ossignal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newHandler assembles the error pipeline from cfg. The returned flasher
// is nil when flashing is disabled.
func newHandler(cfg *config.Config, log zerolog.Logger) (*httpx.Handler, *flash.Sessions, error) {
	reg, err := cfg.Registry()
	if err != nil {
		return nil, nil, err
	}

	opts := []httpx.Option{
		httpx.WithRegistry(reg),
		httpx.WithReporter(report.NewLogger(log)),
		httpx.WithLogger(log),
		httpx.WithCorrelationHeader(cfg.CorrelationHeader),
		httpx.WithNamespace(cfg.ViewNamespace),
	}
	if cfg.Pages {
		var views apis.ViewResolver
		if cfg.ViewsDir != "" {
			views = view.New(os.DirFS(cfg.ViewsDir), view.WithNamespace(cfg.ViewNamespace, view.Defaults()))
		} else {
			views = view.New(nil, view.WithNamespace(cfg.ViewNamespace, view.Defaults()))
		}
		opts = append(opts, httpx.WithViews(views))
	}

	var fl *flash.Sessions
	if cfg.SessionKey != "" {
		fl = flash.NewCookie(cfg.SessionName, []byte(cfg.SessionKey))
		opts = append(opts, httpx.WithFlasher(fl))
	}
	return httpx.New(opts...), fl, nil
}

// newRouter registers the demo routes and hands unmatched requests to h.
func newRouter(h *httpx.Handler, fl *flash.Sessions) *mux.Router {
	d := &demo{flash: fl}
	r := mux.NewRouter()
	r.Handle("/orders/{id}", h.Wrap(d.getOrder)).Methods(http.MethodGet)
	r.Handle("/orders/{id}", h.Wrap(d.shipOrder)).Methods(http.MethodPost)
	r.Handle("/signup", h.Wrap(d.signupForm)).Methods(http.MethodGet)
	r.Handle("/signup", h.Wrap(d.signup)).Methods(http.MethodPost)
	r.Handle("/admin", h.Wrap(d.admin)).Methods(http.MethodGet)
	r.Handle("/me", h.Wrap(d.me)).Methods(http.MethodGet)
	r.Handle("/boom", h.Recover(http.HandlerFunc(d.boom))).Methods(http.MethodGet)
	httpx.Install(r, h)
	return r
}
