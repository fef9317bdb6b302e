package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	_ "github.com/AlexZinkM/bitmark-wallet/docs"
	"github.com/AlexZinkM/bitmark-wallet/internal/api"
	"github.com/AlexZinkM/bitmark-wallet/internal/config"
	"github.com/AlexZinkM/bitmark-wallet/internal/handler"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local signer API",
	Long: `Start the local signer API on 127.0.0.1:$PORT.

Swagger UI is served under /swagger/.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	w, err := openWallet(false)
	if err != nil {
		return err
	}
	defer w.Close()

	router := api.SetupRouter(
		handler.NewAccountHandler(w.store, config.GetNetwork(), config.GetLanguage()),
		handler.NewSignHandler(w.store, config.GetNetwork()),
	)
	srv := &http.Server{
		Addr:              "127.0.0.1:" + config.GetPort(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("local signer listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
