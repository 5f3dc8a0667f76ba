package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/reqconv/pkg/errors"
	"github.com/matzehuels/reqconv/pkg/pipfile"
	"github.com/matzehuels/reqconv/pkg/requirement"
)

// toPipOpts holds the command-line flags for the to-pip command.
type toPipOpts struct {
	pipfile     string // manifest to read when no entries are given
	dev         bool   // include [dev-packages]
	output      string // output file path (stdout if empty)
	interactive bool   // pick packages before converting
}

// toPipCommand creates the to-pip command.
func (c *CLI) toPipCommand() *cobra.Command {
	opts := toPipOpts{pipfile: pipfile.Filename}

	cmd := &cobra.Command{
		Use:   "to-pip [ENTRY...]",
		Short: "Convert Pipfile entries to pip requirement strings",
		Long: `Convert Pipfile entries to pip requirement strings, one per line.

Entries are given in Pipfile syntax. Without entries, the packages of the
Pipfile named by --pipfile are converted.`,
		Example: `  reqconv to-pip 'requests = "*"' 'django = ">1.10"'
  reqconv to-pip 'pinax = { git = "git://github.com/pinax/pinax.git", ref = "1.4", editable = true }'
  reqconv to-pip --pipfile ./Pipfile --dev -o requirements.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runToPip(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.pipfile, "pipfile", "p", opts.pipfile, "Pipfile to read when no entries are given")
	cmd.Flags().BoolVarP(&opts.dev, "dev", "d", false, "include [dev-packages]")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "choose packages interactively")

	return cmd
}

func (c *CLI) runToPip(cmd *cobra.Command, args []string, opts toPipOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	var reqs []requirement.Requirement
	if len(args) > 0 {
		parsed, err := pipfile.ParseEntries(strings.Join(args, "\n"))
		if err != nil {
			return err
		}
		reqs = parsed
	} else {
		p, err := loadPipfile(ctx, opts.pipfile)
		if err != nil {
			return err
		}
		reqs = p.Selected(opts.dev)
	}

	if opts.interactive {
		picked, err := pickRequirements(ctx, reqs)
		if err != nil {
			return err
		}
		reqs = picked
	}

	out, err := openOutput(cmd, opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	for _, r := range reqs {
		logger.Debug("converted", "name", r.Name, "kind", r.Entry.Kind())
		if _, err := fmt.Fprintln(out, r.String()); err != nil {
			return err
		}
	}

	prog.done(fmt.Sprintf("Converted %d entries", len(reqs)))
	if opts.output != "" {
		printSuccess("Wrote %d requirements", len(reqs))
		printFile(opts.output)
	}
	return nil
}

// loadPipfile reads the manifest at path and logs what it found.
func loadPipfile(ctx context.Context, path string) (*pipfile.Pipfile, error) {
	if err := errors.ValidateManifestFilename(filepath.Base(path)); err != nil {
		return nil, err
	}
	p, err := pipfile.Load(path)
	if err != nil {
		return nil, err
	}
	loggerFromContext(ctx).Debug("loaded manifest",
		"path", path,
		"sources", len(p.Sources),
		"packages", len(p.Packages),
		"dev-packages", len(p.DevPackages))
	return p, nil
}
