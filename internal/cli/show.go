package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/MKhiriev/go-toomanyconfigs/internal/store"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

func newShowCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show [FILE]",
		Short: "Print the document stored in a config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.settings.ConfigPath
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return ErrNoConfigFile
			}
			if !filepath.IsAbs(path) {
				base, err := a.baseDir()
				if err != nil {
					return err
				}
				path = filepath.Join(base, path)
			}

			docs := store.NewTOMLStore(a.fs, a.log.Component("store"))
			doc, err := docs.Load(path)
			if store.IsNotExist(err) {
				return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
			}
			if err != nil {
				return err
			}

			var out []byte
			if asJSON {
				out, err = json.MarshalIndent(doc, "", "  ")
			} else {
				out, err = toml.Marshal(map[string]any(doc))
			}
			if err != nil {
				return fmt.Errorf("encode %s: %w", path, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")

	return cmd
}
