package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/MKhiriev/go-toomanyconfigs/internal/config"
	"github.com/MKhiriev/go-toomanyconfigs/internal/logger"
	"github.com/MKhiriev/go-toomanyconfigs/models"
	"github.com/MKhiriev/go-toomanyconfigs/prompt"
	"github.com/MKhiriev/go-toomanyconfigs/tomlconfig"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// app is the state shared by every command once the settings are loaded.
type app struct {
	info     models.AppBuildInfo
	fs       afero.Fs
	in       io.Reader
	out      io.Writer
	errOut   io.Writer
	settings *config.StructuredConfig
	log      *logger.Logger
}

// Option configures the command tree.
type Option func(*app)

// WithFs replaces the filesystem used by every command.
func WithFs(fsys afero.Fs) Option {
	return func(a *app) {
		a.fs = fsys
	}
}

// WithIO replaces the standard streams.
func WithIO(in io.Reader, out, errOut io.Writer) Option {
	return func(a *app) {
		a.in, a.out, a.errOut = in, out, errOut
	}
}

// NewRootCmd builds the tmc command tree.
func NewRootCmd(info models.AppBuildInfo, opts ...Option) *cobra.Command {
	a := &app{
		info:   info,
		fs:     afero.NewOsFs(),
		in:     os.Stdin,
		out:    os.Stdout,
		errOut: os.Stderr,
	}
	for _, opt := range opts {
		opt(a)
	}

	cmd := &cobra.Command{
		Use:           "tmc",
		Short:         "Typed TOML configuration files with prompting, API routes and scaffolding",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}
	cmd.SetIn(a.in)
	cmd.SetOut(a.out)
	cmd.SetErr(a.errOut)
	config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(newCreateCmd(a))
	cmd.AddCommand(newShowCmd(a))
	cmd.AddCommand(newAPICmd(a))
	cmd.AddCommand(newScaffoldCmd(a))
	cmd.AddCommand(newVersionCmd(a))

	return cmd
}

func (a *app) load(cmd *cobra.Command) error {
	settings, err := config.GetStructuredConfig(cmd.Flags())
	if err != nil {
		return err
	}
	a.settings = settings

	if settings.Log.Format == config.LogFormatJSON {
		l := logger.NewLogger("tmc")
		l.Logger = l.Level(logger.ParseLevel(settings.Log.Level)).Output(a.errOut)
		a.log = l
	} else {
		a.log = logger.NewConsoleLogger("tmc", settings.Log.Level, a.errOut)
	}
	a.log.Debug().Str("command", cmd.CommandPath()).Msg("settings loaded")
	return nil
}

func (a *app) baseDir() (string, error) {
	if a.settings.BaseDir != "" {
		return a.settings.BaseDir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}
	return wd, nil
}

func (a *app) prompter() *prompt.Prompter {
	if f, ok := a.in.(*os.File); ok && f == os.Stdin {
		return prompt.NewTerminal(prompt.WithLogger(a.log.Logger))
	}
	return prompt.New(prompt.NewLineSource(a.in, a.errOut), prompt.WithLogger(a.log.Logger))
}

func (a *app) reconciler() (*tomlconfig.Reconciler, error) {
	dir, err := a.baseDir()
	if err != nil {
		return nil, err
	}
	return tomlconfig.New(
		tomlconfig.WithFs(a.fs),
		tomlconfig.WithDir(dir),
		tomlconfig.WithPrompter(a.prompter()),
		tomlconfig.WithPromptEmptyFields(!a.settings.NoPrompt),
		tomlconfig.WithLogger(a.log.Logger),
	)
}
