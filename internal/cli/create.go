package cli

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-toomanyconfigs/models"
	"github.com/MKhiriev/go-toomanyconfigs/tomlconfig"
	"github.com/spf13/cobra"
)

func newCreateCmd(a *app) *cobra.Command {
	var set map[string]string

	cmd := &cobra.Command{
		Use:   "create NAME [FIELD[=DEFAULT]...]",
		Short: "Create or complete a config file from ad-hoc string fields",
		Long: `Builds a schema named NAME with one string field per FIELD argument and
reconciles it with its file (NAME lower-cased, .toml, in the base directory
unless --config is given). Fields without a value are prompted for.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := adHocSchema(args[0], args[1:])
			if err != nil {
				return err
			}
			r, err := a.reconciler()
			if err != nil {
				return err
			}

			overrides := make(map[string]any, len(set))
			for k, v := range set {
				overrides[k] = v
			}
			inst, err := r.Create(cmd.Context(), schema,
				tomlconfig.Source(a.settings.ConfigPath),
				tomlconfig.Overrides(overrides),
			)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), inst.String())
			fmt.Fprintln(cmd.OutOrStdout(), inst.Path())
			return nil
		},
	}
	cmd.Flags().StringToStringVarP(&set, "set", "s", nil, "Override values (key=value)")

	return cmd
}

func adHocSchema(name string, defs []string) (*models.Schema, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: empty config name", ErrInvalidField)
	}
	seen := make(map[string]bool, len(defs))
	fields := make([]models.Field, 0, len(defs))
	for _, arg := range defs {
		field, def, hasDefault := strings.Cut(arg, "=")
		field = strings.TrimSpace(field)
		if field == "" || seen[field] {
			return nil, fmt.Errorf("%w: %q", ErrInvalidField, arg)
		}
		seen[field] = true

		f := models.StringField(field)
		if hasDefault {
			f = f.WithDefault(def)
		}
		fields = append(fields, f)
	}
	return models.NewSchema(name, fields...), nil
}
