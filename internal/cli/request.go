package cli

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/mobli/pkg/mobli"
)

var getCmd = &cobra.Command{
	Use:   "get <path> [key=value...]",
	Short: "Send a GET request to the Mobli API",
	Long: `Send a GET request to the Mobli API and print the raw response body.

The path is appended to the API base URL as given, for example "v3/me".`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRequest(cmd, http.MethodGet, args)
	},
}

var postCmd = &cobra.Command{
	Use:   "post <path> [key=value...]",
	Short: "Send a POST request to the Mobli API",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRequest(cmd, http.MethodPost, args)
	},
}

var requestPublic bool

func init() {
	for _, c := range []*cobra.Command{getCmd, postCmd} {
		c.Flags().BoolVar(&requestPublic, "public", false, "obtain a public token before sending the request")
		rootCmd.AddCommand(c)
	}
}

func runRequest(cmd *cobra.Command, method string, args []string) error {
	params, err := parseParams(args[1:])
	if err != nil {
		return err
	}

	application, err := newApplication(cmd, false)
	if err != nil {
		return err
	}
	defer application.Close()

	ctx := cmd.Context()
	client := application.Client()

	if requestPublic {
		res, err := await(ctx, func(listener mobli.Listener) {
			client.ObtainPublicToken(ctx, nil, listener)
		})
		if err != nil {
			return err
		}
		if err := resultError(res); err != nil {
			return fmt.Errorf("public token: %w", err)
		}
	}

	req := mobli.Request{Path: args[0], Params: params, Method: method}
	res, err := await(ctx, func(listener mobli.Listener) {
		client.RequestAsync(ctx, req, args[0], listener)
	})
	if err != nil {
		return err
	}
	if err := resultError(res); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), res.Body)
	return nil
}

// parseParams turns key=value arguments into request parameters.
func parseParams(args []string) (mobli.Params, error) {
	params := make(mobli.Params, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected key=value", arg)
		}
		params[key] = value
	}
	return params, nil
}
