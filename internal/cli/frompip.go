package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/reqconv/pkg/errors"
	"github.com/matzehuels/reqconv/pkg/pipfile"
	"github.com/matzehuels/reqconv/pkg/requirement"
)

// fromPipOpts holds the command-line flags for the from-pip command.
type fromPipOpts struct {
	file    string // requirements file to convert
	name    string // package name for lines that do not carry one
	section string // Pipfile section to write
	output  string // output file path (stdout if empty)
}

// fromPipCommand creates the from-pip command.
func (c *CLI) fromPipCommand() *cobra.Command {
	opts := fromPipOpts{section: pipfile.SectionPackages}

	cmd := &cobra.Command{
		Use:   "from-pip [LINE...]",
		Short: "Convert pip requirement strings to Pipfile entries",
		Long: `Convert pip requirement strings to Pipfile entries, printed as TOML.

Local paths and VCS URLs without an #egg= fragment do not name their package.
For those, --name supplies the name; otherwise it is guessed from the path or
repository and a warning is printed.

With --file, a whole requirements file is converted, including its index
options, into a Pipfile.`,
		Example: `  reqconv from-pip 'requests[socks]>=2.0' 'Django>1.10'
  reqconv from-pip --name core -- '-e ./libs/core'
  reqconv from-pip --file requirements-dev.txt --section dev-packages`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFromPip(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "requirements file to convert")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "package name for lines that do not carry one")
	cmd.Flags().StringVarP(&opts.section, "section", "s", opts.section, "Pipfile section to write (packages or dev-packages)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

func (c *CLI) runFromPip(cmd *cobra.Command, args []string, opts fromPipOpts) error {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	if opts.section != pipfile.SectionPackages && opts.section != pipfile.SectionDevPackages {
		return errors.New(errors.ErrCodeInvalidInput, "unknown section %q (want %s or %s)",
			opts.section, pipfile.SectionPackages, pipfile.SectionDevPackages)
	}
	if opts.name != "" {
		if err := errors.ValidatePythonPackageName(opts.name); err != nil {
			return err
		}
	}
	if opts.file == "" && len(args) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "nothing to convert: pass requirement lines or --file")
	}

	p := &pipfile.Pipfile{}
	if opts.file != "" {
		if !pipfile.SupportsRequirements(filepath.Base(opts.file)) {
			logger.Warn("file name does not look like a requirements file", "file", opts.file)
		}
		loaded, err := pipfile.LoadRequirements(opts.file)
		if err != nil {
			return err
		}
		p = loaded
	}

	for _, line := range args {
		r, err := decodeLine(line, opts.name)
		if err != nil {
			return err
		}
		p.Packages = append(p.Packages, r)
	}

	if opts.section == pipfile.SectionDevPackages {
		p.Packages, p.DevPackages = nil, p.Packages
	}

	out, err := openOutput(cmd, opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	if opts.file != "" {
		err = pipfile.Write(out, p)
	} else {
		reqs, _ := p.Section(opts.section)
		err = pipfile.Render(out, opts.section, reqs)
	}
	if err != nil {
		return err
	}

	count := len(p.Packages) + len(p.DevPackages)
	prog.done(fmt.Sprintf("Converted %d requirements", count))
	if opts.output != "" {
		printSuccess("Wrote %d entries to [%s]", count, opts.section)
		printFile(opts.output)
	}
	return nil
}

// decodeLine decodes one requirement line. When the line does not carry a
// name, fallback is used, or a name guessed from the line if fallback is empty.
func decodeLine(line, fallback string) (requirement.Requirement, error) {
	r, err := requirement.DecodeAs(line, fallback)
	if !errors.Is(err, errors.ErrCodeUnknownName) {
		return r, err
	}
	guess := pipfile.GuessName(line)
	if guess == "" {
		return requirement.Requirement{}, err
	}
	printWarning("No package name in %q, using %q (set --name to override)", line, guess)
	return requirement.DecodeAs(line, guess)
}
