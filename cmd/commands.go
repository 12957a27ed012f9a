package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/mellowpictures/netcopy/netcopy"
	"github.com/mellowpictures/netcopy/panel"
)

func newSendCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "send [file|-]",
		Short: "Export a selection to your folder in the share",
		Long:  "Reads the serialized selection from a file, or from stdin when the argument is omitted or -, and stores it as your latest NetCopy.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var in io.Reader = a.stdin
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					a.message(netcopy.UserMessage(fmt.Errorf("%w: %w", netcopy.ErrExportHost, err)))
					return err
				}
				defer f.Close()
				in = f
			}

			p, err := a.panel(a.surface(false), false, panel.WithSource(readerSource(in)))
			if err != nil {
				return err
			}
			return p.OnAction(panel.ActionSend, "")
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users in the share and when they last sent",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			_, err := a.panel(a.surface(true), true)
			return err
		},
	}
}

func newCopyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "copy <user>...",
		Short: "Write users' latest NetCopies to stdout",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			p, err := a.panel(a.surface(false), false, panel.WithClipboard(writerClipboard{w: a.stdout}))
			if err != nil {
				return err
			}
			return p.Copy(args...)
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <user> <dest>",
		Short: "Save a user's latest NetCopy into a script file",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			p, err := a.panel(a.surface(false), false, panel.WithImporter(fileImporter{path: args[1]}))
			if err != nil {
				return err
			}
			return p.OnAction(panel.ActionImport, args[0])
		},
	}
}

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Keep the list on screen and redraw it when the share changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := a.surface(true)
			s.showErrors = true
			p, err := a.panel(s, true)
			if err != nil {
				return err
			}

			w, err := netcopy.NewWatcher(a.exchange.BaseDir(), func() {
				p.OnAction(panel.ActionRefresh, "") //nolint:errcheck
			})
			if err != nil {
				a.message(netcopy.UserMessage(err))
				return err
			}
			defer w.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			if err := w.Start(ctx); err != nil && ctx.Err() == nil {
				a.message(netcopy.UserMessage(err))
				return err
			}
			return nil
		},
	}
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "get <key>",
		Short:       "Print one value from the settings file",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{skipSetup: "true"},
		RunE: func(_ *cobra.Command, args []string) error {
			v, err := netcopy.NewSettings(a.configPath).Require(args[0])
			if err != nil {
				a.message(fmt.Sprintf("%s is not set in %s", args[0], a.configPath))
				return err
			}
			fmt.Fprintln(a.stdout, v) //nolint:errcheck
			return nil
		},
	}
}
