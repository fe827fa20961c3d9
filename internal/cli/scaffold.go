package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-toomanyconfigs/scaffold"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newScaffoldCmd(a *app) *cobra.Command {
	var (
		treeFile string
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "scaffold [PATH...]",
		Short: "Create a file layout under the base directory",
		Long: `Creates every PATH and the layout described by --tree under the base
directory. Existing files are left untouched. The tree file is TOML or JSON:
strings are files, arrays list siblings, tables are folders, and an empty
value makes the key itself a file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := a.baseDir()
			if err != nil {
				return err
			}

			entries := make([]scaffold.Entry, 0, len(args)+1)
			for _, p := range args {
				entries = append(entries, scaffold.Path(p))
			}
			if treeFile != "" {
				entry, err := a.readTree(treeFile)
				if err != nil {
					return err
				}
				entries = append(entries, entry)
			}

			s := scaffold.New(a.fs, base, entries...).WithLogger(a.log.Logger)
			if !dryRun {
				if err = s.Ensure(); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), s.Render())
			return nil
		},
	}
	cmd.Flags().StringVar(&treeFile, "tree", "", "TOML or JSON file describing the layout")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Only print the layout")

	return cmd
}

func (a *app) readTree(path string) (scaffold.Entry, error) {
	raw, err := afero.ReadFile(a.fs, path)
	if err != nil {
		return nil, fmt.Errorf("read tree: %w", err)
	}

	var decoded any
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(raw, &decoded)
	} else {
		table := map[string]any{}
		err = toml.Unmarshal(raw, &table)
		decoded = table
	}
	if err != nil {
		return nil, fmt.Errorf("decode tree %s: %w", path, err)
	}

	return scaffold.FromValue(decoded)
}
