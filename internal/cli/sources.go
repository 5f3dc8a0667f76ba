package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"mvdan.cc/sh/v3/syntax"

	"github.com/matzehuels/reqconv/pkg/pipfile"
	"github.com/matzehuels/reqconv/pkg/source"
)

// sourcesCommand creates the sources command.
func (c *CLI) sourcesCommand() *cobra.Command {
	path := pipfile.Filename

	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Show a Pipfile's package indexes and their pip arguments",
		Long: `Show the [[source]] tables of a Pipfile and the pip arguments that select
them: -i for the first index, --extra-index-url for the rest and
--trusted-host for every index with verify_ssl = false.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadPipfile(cmd.Context(), path)
			if err != nil {
				return err
			}
			if len(p.Sources) == 0 {
				printInfo("No sources declared in %s", path)
				return nil
			}

			rows := make([][]string, len(p.Sources))
			for i, idx := range p.Sources {
				rows[i] = []string{
					idx.Name,
					idx.URL,
					fmt.Sprintf("%t", idx.Verify()),
					strings.Join(indexArgs(p.Sources, i), " "),
				}
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"Name", "URL", "Verify SSL", "pip arguments"}, rows, styleSourceCell))
			_, err = fmt.Fprintln(out, shellJoin(source.BuildArgs(p.Sources)))
			return err
		},
	}

	cmd.Flags().StringVarP(&path, "pipfile", "p", path, "Pipfile to read")

	return cmd
}

func styleSourceCell(row, col int) lipgloss.Style {
	switch col {
	case 0:
		return StyleHighlight
	case 1:
		return StyleLink
	case 3:
		return StyleDim
	}
	return StyleValue
}

// indexArgs returns the arguments BuildArgs emits for indexes[i] when it is
// part of the full list.
func indexArgs(indexes []source.Index, i int) []string {
	first := source.BuildArgs(indexes[:1])
	if i == 0 {
		return first
	}
	return source.BuildArgs([]source.Index{indexes[0], indexes[i]})[len(first):]
}

// installArgsCommand creates the install-args command.
func (c *CLI) installArgsCommand() *cobra.Command {
	var (
		path  = pipfile.Filename
		dev   bool
		lines bool
	)

	cmd := &cobra.Command{
		Use:   "install-args",
		Short: "Print the pip install arguments for a Pipfile",
		Long: `Print the arguments for "pip install" that install the packages of a
Pipfile from its declared indexes. The output is quoted for a POSIX shell:

  eval "pip install $(reqconv install-args --dev)"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadPipfile(cmd.Context(), path)
			if err != nil {
				return err
			}
			argv := p.InstallArgs(dev)
			if lines {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(argv, "\n"))
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), shellJoin(argv))
			return err
		},
	}

	cmd.Flags().StringVarP(&path, "pipfile", "p", path, "Pipfile to read")
	cmd.Flags().BoolVarP(&dev, "dev", "d", false, "include [dev-packages]")
	cmd.Flags().BoolVar(&lines, "lines", false, "print one unquoted argument per line")

	return cmd
}

// shellJoin quotes args for a POSIX shell and joins them with spaces.
func shellJoin(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = shellQuote(a)
	}
	return strings.Join(quoted, " ")
}

// shellQuote quotes s for sh. Strings with non-printable characters have no
// POSIX form and fall back to bash's $'...' quoting.
func shellQuote(s string) string {
	q, err := syntax.Quote(s, syntax.LangPOSIX)
	if err != nil {
		q, _ = syntax.Quote(s, syntax.LangBash)
	}
	return q
}
