package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/mobli/pkg/mobli"
)

var publicTokenCmd = &cobra.Command{
	Use:   "public-token",
	Short: "Obtain a public access token with the client credentials",
	Args:  cobra.NoArgs,
	RunE:  runPublicToken,
}

func init() {
	rootCmd.AddCommand(publicTokenCmd)
}

func runPublicToken(cmd *cobra.Command, _ []string) error {
	application, err := newApplication(cmd, false)
	if err != nil {
		return err
	}
	defer application.Close()

	client := application.Client()
	res, err := await(cmd.Context(), func(listener mobli.Listener) {
		client.ObtainPublicToken(cmd.Context(), nil, listener)
	})
	if err != nil {
		return err
	}
	if err := resultError(res); err != nil {
		return err
	}

	token := client.Session().AccessToken()
	if token == "" {
		// The exchange succeeded but carried no token, show what came back
		cmd.PrintErrln("response did not contain an access token")
		fmt.Fprintln(cmd.OutOrStdout(), res.Body)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
