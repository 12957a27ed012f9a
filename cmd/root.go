package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mellowpictures/netcopy/netcopy"
	"github.com/mellowpictures/netcopy/panel"
)

// app carries what every subcommand shares once flags are parsed.
type app struct {
	configPath string
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
	isTerminal func() bool
	users      netcopy.UserResolver

	cfg      *netcopy.Config
	exchange *netcopy.Exchange
	handle   panel.Handle
}

// skipSetup marks commands that run without a loaded configuration.
const skipSetup = "netcopy/skip-setup"

// Execute runs the root command against the process streams.
func Execute() error {
	return newRootCmd(newApp(os.Stdin, os.Stdout, os.Stderr)).Execute()
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		isTerminal: func() bool {
			f, ok := stdout.(*os.File)
			return ok && term.IsTerminal(int(f.Fd()))
		},
		users: netcopy.DefaultUserResolver,
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "netcopy",
		Short:         "Share node-graph selections through a per-user shared folder",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[skipSetup] != "" {
				return nil
			}
			return a.setup(cmd)
		},
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", netcopy.DefaultSettingsPath(), "settings file")
	flags.String("base-dir", "", "shared folder root (overrides base_dir)")
	flags.String("payload-name", "", "payload file name (overrides payload_name)")
	flags.Bool("atomic-write", false, "write payloads through a temp file and rename")
	flags.String("log-dir", "", "directory for rotated log files")
	flags.String("log-level", "", "console log level: debug, info, warn, error")

	root.AddCommand(
		newSendCmd(a),
		newListCmd(a),
		newCopyCmd(a),
		newImportCmd(a),
		newWatchCmd(a),
		newGetCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := netcopy.LoadConfig(a.configPath, cmd.Flags())
	if err != nil {
		a.message(netcopy.UserMessage(err))
		return err
	}
	a.cfg = cfg

	// stdout carries payloads and tables, so console logs all go to stderr
	netcopy.InitLogger(netcopy.LogOptions{
		Dir:    cfg.LogDir,
		Level:  netcopy.ParseLevel(cfg.LogLevel),
		Stdout: a.stderr,
		Stderr: a.stderr,
	})

	user, err := a.users.Resolve()
	if err != nil {
		a.message(netcopy.UserMessage(err))
		return err
	}

	ex, err := netcopy.NewExchange(afero.NewOsFs(), cfg, user)
	if err != nil {
		a.message(netcopy.UserMessage(err))
		return err
	}
	a.exchange = ex
	return nil
}

// panel returns the process panel, built on first use. With populate set the
// share is listed (and drawn) as the panel opens.
func (a *app) panel(surface panel.Surface, populate bool, opts ...panel.Option) (*panel.Panel, error) {
	return a.handle.GetOrCreate(func() (*panel.Panel, error) {
		if populate {
			return panel.Open(a.exchange, surface, opts...)
		}
		return panel.New(a.exchange, surface, opts...), nil
	})
}

func (a *app) message(msg string) {
	fmt.Fprintln(a.stderr, msg) //nolint:errcheck
}
