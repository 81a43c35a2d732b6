package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/opendp/cla-tool/internal/config"
	"github.com/opendp/cla-tool/internal/logging"
	"github.com/opendp/cla-tool/internal/signature"
)

// Exit codes
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// env is shared by every command of one invocation.
type env struct {
	// Global flags
	configPath string
	debug      bool
	noColor    bool
	quiet      bool

	stdout io.Writer
	stderr io.Writer

	log *logrus.Logger
	cfg *config.Config

	// prompt asks for a missing field in interactive mode.
	prompt fieldPrompter
}

// usageError marks errors caused by how the command was invoked.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// noArgs rejects positional arguments as a usage error.
func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return &usageError{err}
	}
	return nil
}

// NewRootCmd builds the cla-tool command tree writing to stdout and stderr.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	e := &env{
		stdout: stdout,
		stderr: stderr,
		prompt: surveyPrompt,
	}
	return newRootCmd(e)
}

func newRootCmd(e *env) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cla-tool",
		Short: "Record CLA signatures and generate the CLA bot config",
		Long: `cla-tool records contributor license agreement signatures as one JSON
file per contributor and builds the contributors list read by the CLA bot.

Signatures are written to signatures/{internal,individual,company}/<github-id>.json.
"cla-tool gen-conf" collects every signer into contributors.json.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return &usageError{errors.New("a command is required")}
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := e.setup(); err != nil {
				return err
			}
			if e.debug {
				logging.Command(e.log, "%s", commandLine(cmd, args))
			}
			return nil
		},
	}

	rootCmd.SetOut(e.stdout)
	rootCmd.SetErr(e.stderr)
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err}
	})

	// Global flags
	rootCmd.PersistentFlags().StringVar(&e.configPath, FlagConfig, "", DescConfig)
	rootCmd.PersistentFlags().BoolVar(&e.debug, FlagDebug, false, DescDebug)
	rootCmd.PersistentFlags().BoolVar(&e.noColor, FlagNoColor, false, DescNoColor)
	rootCmd.PersistentFlags().BoolVarP(&e.quiet, FlagQuiet, "q", false, DescQuiet)

	// Add subcommands
	for _, c := range signature.Categories() {
		rootCmd.AddCommand(newSignCmd(e, c))
	}
	rootCmd.AddCommand(newGenConfCmd(e))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// setup creates the logger and loads the configuration file.
func (e *env) setup() error {
	e.log = logging.New(logging.Options{
		Out:     e.stderr,
		Debug:   e.debug,
		Quiet:   e.quiet,
		NoColor: e.noColor,
	})

	loader := config.NewLoader()
	var err error
	if e.configPath != "" {
		e.cfg, err = loader.Load(e.configPath)
	} else {
		e.cfg, err = loader.LoadOrDefault(config.DefaultConfigFile)
	}
	if err != nil {
		return err
	}
	logging.DebugJSON(e.log, "config", e.cfg)
	return nil
}

// commandLine renders the invocation of cmd with every flag that was set,
// quoted for a POSIX shell.
func commandLine(cmd *cobra.Command, args []string) string {
	words := strings.Fields(cmd.CommandPath())
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if f.Value.Type() == "bool" && f.Value.String() == "true" {
			words = append(words, "--"+f.Name)
			return
		}
		words = append(words, "--"+f.Name+"="+f.Value.String())
	})
	words = append(words, args...)
	return shellquote.Join(words...)
}

// Execute runs the command line and exits with its status.
// This is called by main.main().
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}

// Run executes the command tree with args and returns the exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCmd(stdout, stderr)
	rootCmd.SetArgs(args)
	return handleResult(rootCmd.ExecuteC())
}

func handleResult(cmd *cobra.Command, err error) int {
	if err == nil {
		return ExitOK
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	if !isUsageError(err) {
		return ExitError
	}
	fmt.Fprintln(cmd.ErrOrStderr())
	fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
	return ExitUsage
}

func isUsageError(err error) bool {
	var uErr *usageError
	var vErr *signature.ValidationError
	return errors.As(err, &uErr) || errors.As(err, &vErr)
}
