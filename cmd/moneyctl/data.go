package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/HeyDYF/Money-Manager/internal/models"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

func encodeSnapshot(w io.Writer, s models.Snapshot, format string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (use json or yaml)", format)
	}
}

func decodeSnapshot(data []byte, format string) (models.Snapshot, error) {
	var s models.Snapshot
	var err error
	switch format {
	case formatJSON:
		err = json.Unmarshal(data, &s)
	case formatYAML:
		err = yaml.Unmarshal(data, &s)
	default:
		return s, fmt.Errorf("unknown format %q (use json or yaml)", format)
	}
	if err != nil {
		return s, fmt.Errorf("failed to parse %s snapshot: %w", format, err)
	}
	return s, nil
}

// formatFor picks a format from an explicit flag or the file extension.
func formatFor(flag, path string) string {
	if flag != "" {
		return strings.ToLower(flag)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML
	default:
		return formatJSON
	}
}

func newExportCmd(app *cli) *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the full ledger snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format = formatFor(format, output)
			snapshot := app.ledger.Export()

			if output == "" || output == "-" {
				return encodeSnapshot(cmd.OutOrStdout(), snapshot, format)
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			if err := encodeSnapshot(f, snapshot, format); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d transactions to %s\n", len(snapshot.Transactions), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "json or yaml (default from the file extension, else json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	return cmd
}

func newImportCmd(app *cli) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the ledger with a snapshot file",
		Long:  "Replace the whole ledger with an exported snapshot. Use - to read stdin.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			var (
				data []byte
				err  error
			)
			if path == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(path)
			}
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}

			snapshot, err := decodeSnapshot(data, formatFor(format, path))
			if err != nil {
				return err
			}
			view, err := app.ledger.ImportData(cmd.Context(), snapshot)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d transactions. Balance: %s\n",
				len(view.Transactions), view.FormattedBalance)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "json or yaml (default from the file extension, else json)")
	return cmd
}
