package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/mellowpictures/netcopy/netcopy"
	"github.com/mellowpictures/netcopy/panel"
)

// terminalSurface draws the panel table on a terminal, or as tab-separated
// lines when stdout is piped.
type terminalSurface struct {
	out       io.Writer
	msg       io.Writer
	plain      bool
	showTable  bool
	showErrors bool
}

func (a *app) surface(showTable bool) *terminalSurface {
	return &terminalSurface{
		out:       a.stdout,
		msg:       a.stderr,
		plain:     !a.isTerminal(),
		showTable: showTable,
	}
}

func (s *terminalSurface) Render(rows []panel.Row) {
	if !s.showTable {
		return
	}
	if s.plain {
		for _, r := range rows {
			ts := ""
			if r.Present {
				ts = r.ModTime.UTC().Format("2006-01-02T15:04:05Z")
			}
			fmt.Fprintf(s.out, "%s\t%s\n", r.User, ts) //nolint:errcheck
		}
		return
	}

	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(panel.Headers, "\t")) //nolint:errcheck
	for _, r := range rows {
		latest := r.Latest
		if r.Age != "" {
			latest += " (" + r.Age + ")"
		}
		fmt.Fprintf(tw, "%s\t%s\n", r.User, latest) //nolint:errcheck
	}
	tw.Flush() //nolint:errcheck

	if s.showErrors {
		s.renderErrors()
	}
}

// renderErrors lists the last captured warnings and errors under the table.
func (s *terminalSurface) renderErrors() {
	recent := netcopy.RecentErrors()
	if len(recent) == 0 {
		return
	}
	fmt.Fprintln(s.out, "\nRecent problems:") //nolint:errcheck
	for _, e := range recent {
		line := fmt.Sprintf("  %s %-5s [%s] %s", e.Time.Local().Format(time.Kitchen), e.Level, e.Comp, e.Message)
		if e.Error != "" {
			line += ": " + e.Error
		}
		fmt.Fprintln(s.out, line) //nolint:errcheck
	}
}

func (s *terminalSurface) Message(msg string) {
	fmt.Fprintln(s.msg, msg) //nolint:errcheck
}

// writerClipboard is the terminal's clipboard: copied text goes to a stream.
type writerClipboard struct {
	w io.Writer
}

func (c writerClipboard) SetText(text string) error {
	if c.w == nil {
		return netcopy.ErrClipboardUnavailable
	}
	_, err := io.WriteString(c.w, text)
	return err
}

// fileImporter lands an imported payload in a script file.
type fileImporter struct {
	path string
}

func (i fileImporter) Import(payload []byte) error {
	return os.WriteFile(i.path, payload, 0644)
}

// readerSource serializes "the selection" by reading it from r.
func readerSource(r io.Reader) netcopy.PayloadSource {
	return netcopy.PayloadFunc(func(w io.Writer) error {
		_, err := io.Copy(w, r)
		return err
	})
}
