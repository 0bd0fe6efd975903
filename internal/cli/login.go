package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/mobli/pkg/mobli"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to Mobli through the browser",
	Long: `Open the Mobli login page and wait for the address the browser is redirected
to after granting access. On success the access token is printed as a shell
export so later commands can reuse it.`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the current session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var (
	loginScopes    []string
	loginNoBrowser bool
)

func init() {
	loginCmd.Flags().StringSliceVar(&loginScopes, "scope", mobli.BasicPermissions, "permissions to request")
	loginCmd.Flags().BoolVar(&loginNoBrowser, "no-browser", false, "only print the login URL")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	application, err := newApplication(cmd, !loginNoBrowser)
	if err != nil {
		return err
	}
	defer application.Close()

	ctx := cmd.Context()
	client := application.Client()

	done := make(chan mobli.DialogResult, 1)
	client.Authorize(ctx, loginScopes, func(res mobli.DialogResult) { done <- res })

	var res mobli.DialogResult
	select {
	case res = <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	switch res.Kind() {
	case mobli.DialogComplete:
	case mobli.DialogCanceled:
		return errors.New("login canceled")
	default:
		return fmt.Errorf("login failed: %w", res.Err)
	}

	session := client.Session()
	token, err := session.Token()
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if userID := session.UserID(); userID != "" {
		cmd.PrintErrf("Logged in as user %s\n", userID)
	}
	if !token.Expiry.IsZero() {
		cmd.PrintErrf("Token expires at %s\n", token.Expiry.Format("2006-01-02 15:04:05 MST"))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "export MOBLI_ACCESS_TOKEN=%s\n", token.AccessToken)
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	application, err := newApplication(cmd, false)
	if err != nil {
		return err
	}
	defer application.Close()

	application.Client().Logout(cmd.Context())

	cmd.PrintErrln("Session cleared")
	fmt.Fprintln(cmd.OutOrStdout(), "unset MOBLI_ACCESS_TOKEN")
	return nil
}
