package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/bigcalc/server"
)

func serveCmd(ef *evalFlags) *cobra.Command {
	var (
		addr    string
		db      string
		origins []string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator to web browsers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			store, closer, err := openStore(ctx, db)
			if err != nil {
				return err
			}
			defer closer.Close()
			logger := log.New(os.Stderr, "[server] ", log.LstdFlags)
			srv := &http.Server{
				Addr: addr,
				Handler: server.New(server.Config{
					AllowedOrigins: origins,
					Store:          store,
					Evaluator:      ef.evaluator(),
					Logger:         logger,
				}),
				ReadHeaderTimeout: 10 * time.Second,
				BaseContext:       func(net.Listener) context.Context { return ctx },
			}
			go func() {
				<-ctx.Done()
				shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				srv.Shutdown(shutdown)
			}()
			logger.Printf("listening on %s", addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "localhost:8080", "address to listen on")
	cmd.Flags().StringVar(&db, "db", "", "SQLite database for preferences (default none)")
	cmd.Flags().StringSliceVar(&origins, "origin", nil, "origins allowed to open sessions (default same host)")
	return cmd
}
