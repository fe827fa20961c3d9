package cli

import (
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-toomanyconfigs/api"
	"github.com/MKhiriev/go-toomanyconfigs/tomlconfig"
	"github.com/spf13/cobra"
)

func newAPICmd(a *app) *cobra.Command {
	var (
		appendPath string
		format     map[string]string
		headers    map[string]string
		query      map[string]string
		data       string
		bodyOnly   bool
	)

	cmd := &cobra.Command{
		Use:   "api METHOD ROUTE",
		Short: "Send a request to a route declared in the API config",
		Long: `Loads the API config (apiconfig.toml in the base directory unless --config
is given), substitutes its vars and sends METHOD to ROUTE. ROUTE is a route
name from [routes.routes] or an absolute URL. The response is printed as JSON.`,
		Example: `  tmc api get users --format id=42
  tmc api post users --data '{"name":"ann"}'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.reconciler()
			if err != nil {
				return err
			}
			cfg, err := api.Load(cmd.Context(), r, tomlconfig.Source(a.settings.ConfigPath))
			if err != nil {
				return err
			}

			opts := []api.RequestOption{
				api.Append(appendPath),
				api.Format(format),
				api.AppendHeaders(headers),
				api.Query(query),
			}
			if data != "" {
				var body any
				if err = json.Unmarshal([]byte(data), &body); err != nil {
					return fmt.Errorf("%w: %w", ErrInvalidBody, err)
				}
				opts = append(opts, api.Body(body))
			}

			client := api.NewClient(cfg,
				api.WithTimeout(a.settings.RequestTimeout),
				api.WithLogger(a.log.Logger),
			)
			resp, err := client.Request(cmd.Context(), args[0], args[1], opts...)
			if err != nil {
				return err
			}

			var printed any = resp
			if bodyOnly {
				printed = resp.Body
			}
			out, err := json.MarshalIndent(printed, "", "  ")
			if err != nil {
				return fmt.Errorf("encode response: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().StringVar(&appendPath, "append", "", "Suffix added to the resolved path")
	cmd.Flags().StringToStringVar(&format, "format", nil, "Values for {name} placeholders (name=value)")
	cmd.Flags().StringToStringVarP(&headers, "header", "H", nil, "Extra request headers (name=value)")
	cmd.Flags().StringToStringVarP(&query, "query", "q", nil, "Query parameters (name=value)")
	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON request body")
	cmd.Flags().BoolVar(&bodyOnly, "body-only", false, "Print only the response body")

	return cmd
}
