package cli

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"

	"weatheros/server"
)

func newServeCommand(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Args:  cobra.NoArgs,
		Short: "Serve the session over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.config.Server.Addr
			}

			httpApp := fiber.New(fiber.Config{
				DisableStartupMessage: true,
				ReadTimeout:           a.config.Timeout * 3,
			})
			httpApp.Use(recover.New())
			if a.config.Debug {
				httpApp.Use(logger.New(logger.Config{Output: a.logger.Writer()}))
			}
			server.RegisterRoutes(httpApp, a.session, a.registry)

			errCh := make(chan error, 1)
			go func() {
				a.logger.Printf("listening on %s", addr)
				errCh <- httpApp.Listen(addr)
			}()

			select {
			case err := <-errCh:
				return err
			case <-cmd.Context().Done():
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := httpApp.ShutdownWithContext(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}
