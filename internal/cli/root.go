package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/mobli/internal/app"
	"github.com/aussiebroadwan/mobli/internal/dialog"
	"github.com/aussiebroadwan/mobli/pkg/mobli"
)

var rootCmd = &cobra.Command{
	Use:   "mobli",
	Short: "Command line client for the Mobli API",
	Long: `mobli talks to the Mobli REST API using the application credentials in
MOBLI_CLIENT_ID and MOBLI_CLIENT_SECRET. Requests are authenticated with
MOBLI_ACCESS_TOKEN when set, or with a public token obtained on demand.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// openBrowser launches the login page, replaced in tests
var openBrowser = dialog.OpenBrowser

// newApplication builds the application from the environment for cmd.
func newApplication(cmd *cobra.Command, launchBrowser bool) (*app.Application, error) {
	terminal := &dialog.Terminal{In: cmd.InOrStdin(), Out: cmd.ErrOrStderr()}
	if launchBrowser {
		terminal.Open = openBrowser
	}

	return app.New(app.LoadConfig(), app.Options{
		Dialog:    terminal,
		LogOutput: cmd.ErrOrStderr(),
	})
}

// await blocks until start delivers a result or ctx ends.
func await(ctx context.Context, start func(mobli.Listener)) (mobli.Result, error) {
	done := make(chan mobli.Result, 1)
	start(func(res mobli.Result) { done <- res })

	select {
	case res := <-done:
		return res, nil
	case <-ctx.Done():
		return mobli.Result{}, ctx.Err()
	}
}

// resultError labels a failed result with its kind.
func resultError(res mobli.Result) error {
	if res.Err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", res.Kind(), res.Err)
}
