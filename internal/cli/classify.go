package cli

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/reqconv/pkg/errors"
	"github.com/matzehuels/reqconv/pkg/requirement"
)

// classification is one classify result, as written by --format yaml.
type classification struct {
	Value       string `yaml:"value"`
	Kind        string `yaml:"kind"`
	Requirement string `yaml:"requirement,omitempty"`
}

// classifyCommand creates the classify command.
func (c *CLI) classifyCommand() *cobra.Command {
	var name, format string

	cmd := &cobra.Command{
		Use:   "classify VALUE...",
		Short: "Report the kind of Pipfile entry values",
		Long: `Report whether each Pipfile entry value is a star, a version specifier,
a VCS reference, a local path or a URL, and show the requirement it converts to.

A value starting with "{" is read as a TOML inline table. Any other value is
taken as a plain string, so quoting is not needed. Local paths are checked
against the filesystem.`,
		Example: `  reqconv classify '*' '>=2.0,<3' ./libs/core
  reqconv classify '{ git = "https://github.com/psf/requests.git", ref = "v2.31.0" }'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidatePythonPackageName(name); err != nil {
				return err
			}
			if format != "table" && format != "yaml" {
				return errors.New(errors.ErrCodeInvalidInput, "unknown format %q (want table or yaml)", format)
			}

			results := make([]classification, 0, len(args))
			for _, arg := range args {
				raw, err := parseValue(arg)
				if err != nil {
					return err
				}
				res := classification{Value: arg, Kind: requirement.Classify(raw).String()}
				if e, err := requirement.FromValue(raw); err == nil {
					res.Requirement = requirement.Encode(name, e)
				} else {
					loggerFromContext(cmd.Context()).Debug("not convertible", "value", arg, "err", err)
				}
				results = append(results, res)
			}

			out := cmd.OutOrStdout()
			if format == "yaml" {
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(results); err != nil {
					return err
				}
				return enc.Close()
			}
			_, err := fmt.Fprintln(out, classifyTable(results))
			return err
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "package", "package name used in the Requirement column")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format (table or yaml)")

	return cmd
}

// classifyTable lays results out with one color per kind.
func classifyTable(results []classification) string {
	rows := make([][]string, len(results))
	for i, r := range results {
		req := r.Requirement
		if req == "" {
			req = "-"
		}
		rows[i] = []string{r.Value, r.Kind, req}
	}
	return renderTable([]string{"Value", "Kind", "Requirement"}, rows, func(row, col int) lipgloss.Style {
		if col == 1 && row >= 0 && row < len(results) {
			return styleKind[results[row].Kind]
		}
		return lipgloss.NewStyle()
	})
}

// parseValue turns a command-line argument into a raw Pipfile value.
func parseValue(arg string) (any, error) {
	s := strings.TrimSpace(arg)
	if !strings.HasPrefix(s, "{") {
		return arg, nil
	}
	var doc map[string]any
	if _, err := toml.Decode("value = "+s, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidEntry, err, "invalid inline table %s", s)
	}
	return doc["value"], nil
}
