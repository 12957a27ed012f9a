// Package panel drives the NetCopy table: it turns artist actions into
// exchange calls and hands the results to whatever surface the host draws.
package panel

import (
	"errors"
	"fmt"

	"github.com/mellowpictures/netcopy/netcopy"
)

var (
	ErrNoRowSelected     = errors.New("no row selected")
	ErrImportUnavailable = errors.New("import unavailable")
)

// ActionKind identifies an artist action.
type ActionKind int

const (
	ActionRefresh ActionKind = iota
	ActionSend
	ActionCopy
	ActionImport
)

func (k ActionKind) String() string {
	switch k {
	case ActionRefresh:
		return "refresh"
	case ActionSend:
		return "send"
	case ActionCopy:
		return "copy"
	case ActionImport:
		return "import"
	}
	return fmt.Sprintf("action(%d)", int(k))
}

// Surface is anything that can show the table and one-line messages.
type Surface interface {
	Render(rows []Row)
	Message(msg string)
}

// Clipboard receives copied payload text.
type Clipboard interface {
	SetText(text string) error
}

// Importer pastes a payload back into the host's node graph.
type Importer interface {
	Import(payload []byte) error
}

// Panel binds an exchange to a surface and the host collaborators.
type Panel struct {
	exchange  *netcopy.Exchange
	surface   Surface
	source    netcopy.PayloadSource
	clipboard Clipboard
	importer  Importer
	rows      []Row
}

// Option configures optional host collaborators.
type Option func(*Panel)

// WithSource sets the serializer used by ActionSend.
func WithSource(src netcopy.PayloadSource) Option {
	return func(p *Panel) { p.source = src }
}

// WithClipboard sets the sink used by ActionCopy.
func WithClipboard(c Clipboard) Option {
	return func(p *Panel) { p.clipboard = c }
}

// WithImporter sets the sink used by ActionImport.
func WithImporter(i Importer) Option {
	return func(p *Panel) { p.importer = i }
}

// New creates an empty panel. Call Refresh, or use Open, to populate it.
func New(ex *netcopy.Exchange, surface Surface, opts ...Option) *Panel {
	p := &Panel{exchange: ex, surface: surface}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Open creates a panel and lists the share once, the way showing the panel
// does. The panel is returned even when the listing fails.
func Open(ex *netcopy.Exchange, surface Surface, opts ...Option) (*Panel, error) {
	p := New(ex, surface, opts...)
	return p, p.Refresh()
}

// Rows returns the rows from the last successful refresh.
func (p *Panel) Rows() []Row {
	return p.rows
}

// OnAction runs one artist action. Failures are logged and shown on the
// surface; the returned error is the same one, for hosts that need a status.
func (p *Panel) OnAction(kind ActionKind, payload string) error {
	switch kind {
	case ActionRefresh:
		return p.Refresh()
	case ActionSend:
		return p.Send()
	case ActionCopy:
		return p.Copy(payload)
	case ActionImport:
		return p.Import(payload)
	}
	return p.fail(kind, fmt.Errorf("unknown action %d", int(kind)))
}

// Refresh re-lists the shared folder and re-renders the table.
func (p *Panel) Refresh() error {
	entries, err := p.exchange.ListEntries()
	if err != nil {
		return p.fail(ActionRefresh, err)
	}
	p.rows = Rows(entries)
	p.surface.Render(p.rows)
	return nil
}

// Send exports the host selection for the current user.
func (p *Panel) Send() error {
	if p.source == nil {
		return p.fail(ActionSend, fmt.Errorf("%w: no serializer bound", netcopy.ErrExportHost))
	}
	path, err := p.exchange.Export(p.source)
	if err != nil {
		return p.fail(ActionSend, err)
	}
	p.surface.Message("Selected nodes have been Network copied to: " + path)
	return p.Refresh()
}

// Copy puts each selected user's payload on the clipboard in turn, so the
// last readable one is left there. A failing row is reported and skipped;
// the failures are returned joined.
func (p *Panel) Copy(users ...string) error {
	if len(users) == 0 {
		return p.fail(ActionCopy, ErrNoRowSelected)
	}
	if p.clipboard == nil {
		return p.fail(ActionCopy, netcopy.ErrClipboardUnavailable)
	}
	var errs []error
	for _, user := range users {
		if err := p.copyOne(user); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (p *Panel) copyOne(user string) error {
	if user == "" {
		return p.fail(ActionCopy, ErrNoRowSelected)
	}
	data, err := p.exchange.ReadPayload(user)
	if err != nil {
		return p.fail(ActionCopy, err)
	}
	if err := p.clipboard.SetText(string(data)); err != nil {
		return p.fail(ActionCopy, fmt.Errorf("%w: %w", netcopy.ErrClipboardUnavailable, err))
	}
	p.surface.Message(fmt.Sprintf("Contents of '%s' have been copied to the clipboard.", p.exchange.PayloadPath(user)))
	return nil
}

// Import pastes user's payload straight into the host.
func (p *Panel) Import(user string) error {
	if user == "" {
		return p.fail(ActionImport, ErrNoRowSelected)
	}
	if p.importer == nil {
		return p.fail(ActionImport, ErrImportUnavailable)
	}
	data, err := p.exchange.ReadPayload(user)
	if err != nil {
		return p.fail(ActionImport, err)
	}
	if err := p.importer.Import(data); err != nil {
		return p.fail(ActionImport, fmt.Errorf("import from %s: %w", user, err))
	}
	p.surface.Message(fmt.Sprintf("Imported NetCopy from %s.", user))
	return nil
}

func (p *Panel) fail(kind ActionKind, err error) error {
	netcopy.Logger("panel").Warn("action failed", "action", kind.String(), "err", err)
	p.surface.Message(message(err))
	return err
}

func message(err error) string {
	switch {
	case errors.Is(err, ErrNoRowSelected):
		return "No row selected!"
	case errors.Is(err, ErrImportUnavailable):
		return "Import is not available in this host."
	}
	return netcopy.UserMessage(err)
}
