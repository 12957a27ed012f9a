package panel

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mellowpictures/netcopy/netcopy"
)

type fakeSurface struct {
	renders  [][]Row
	messages []string
}

func (s *fakeSurface) Render(rows []Row)  { s.renders = append(s.renders, rows) }
func (s *fakeSurface) Message(msg string) { s.messages = append(s.messages, msg) }

func (s *fakeSurface) lastMessage() string {
	if len(s.messages) == 0 {
		return ""
	}
	return s.messages[len(s.messages)-1]
}

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) SetText(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

type importerFunc func([]byte) error

func (f importerFunc) Import(b []byte) error { return f(b) }

func newTestPanel(t *testing.T, user string, opts ...Option) (*Panel, *fakeSurface, afero.Fs) {
	t.Helper()
	afs := afero.NewMemMapFs()
	require.NoError(t, afs.MkdirAll("/share", 0755))
	ex, err := netcopy.NewExchange(afs, &netcopy.Config{BaseDir: "/share"}, user)
	require.NoError(t, err)
	s := &fakeSurface{}
	p, err := Open(ex, s, opts...)
	require.NoError(t, err)
	return p, s, afs
}

func TestNew_DoesNotList(t *testing.T) {
	afs := afero.NewMemMapFs()
	ex, err := netcopy.NewExchange(afs, &netcopy.Config{BaseDir: "/share"}, "alice")
	require.NoError(t, err)
	s := &fakeSurface{}

	p := New(ex, s)
	assert.Empty(t, p.Rows())
	assert.Empty(t, s.renders)
	assert.Empty(t, s.messages)
}

func TestOpen_ReportsListingFailure(t *testing.T) {
	afs := afero.NewMemMapFs()
	ex, err := netcopy.NewExchange(afs, &netcopy.Config{BaseDir: "/share"}, "alice")
	require.NoError(t, err)
	s := &fakeSurface{}

	p, err := Open(ex, s)
	assert.ErrorIs(t, err, netcopy.ErrBaseDirMissing)
	assert.NotNil(t, p)
	assert.Equal(t, []string{"Provided path is not a directory!"}, s.messages)
}

func TestOpen_PopulatesOnce(t *testing.T) {
	p, s, _ := newTestPanel(t, "alice")

	require.Len(t, s.renders, 1)
	require.Len(t, p.Rows(), 1)
	assert.Equal(t, "alice", p.Rows()[0].User)
	assert.Equal(t, NotFound, p.Rows()[0].Latest)
}

func TestSend_ExportsAndRefreshes(t *testing.T) {
	p, s, _ := newTestPanel(t, "alice", WithSource(netcopy.BytesPayload("Blur {}")))

	require.NoError(t, p.OnAction(ActionSend, ""))
	assert.Contains(t, s.messages[0], "Selected nodes have been Network copied to: ")
	require.Len(t, s.renders, 2)
	assert.True(t, p.Rows()[0].Present)
}

func TestSend_NoSelection(t *testing.T) {
	p, s, _ := newTestPanel(t, "alice", WithSource(netcopy.BytesPayload(nil)))

	err := p.OnAction(ActionSend, "")
	assert.ErrorIs(t, err, netcopy.ErrNoSelection)
	assert.Equal(t, "No nodes selected!", s.lastMessage())
}

func TestSend_NoSource(t *testing.T) {
	p, _, _ := newTestPanel(t, "alice")
	assert.ErrorIs(t, p.OnAction(ActionSend, ""), netcopy.ErrExportHost)
}

func TestCopy_ToClipboard(t *testing.T) {
	clip := &fakeClipboard{}
	p, s, afs := newTestPanel(t, "alice", WithClipboard(clip))
	require.NoError(t, afs.MkdirAll("/share/bob", 0755))
	require.NoError(t, afero.WriteFile(afs, "/share/bob/netcopy.nk", []byte("Grade {}"), 0644))

	require.NoError(t, p.OnAction(ActionCopy, "bob"))
	assert.Equal(t, "Grade {}", clip.text)
	assert.Contains(t, s.lastMessage(), "have been copied to the clipboard")
}

func TestCopy_EverySelectedRow(t *testing.T) {
	clip := &fakeClipboard{}
	p, s, afs := newTestPanel(t, "alice", WithClipboard(clip))
	require.NoError(t, afs.MkdirAll("/share/bob", 0755))
	require.NoError(t, afs.MkdirAll("/share/carol", 0755))
	require.NoError(t, afero.WriteFile(afs, "/share/bob/netcopy.nk", []byte("Grade {}"), 0644))
	require.NoError(t, afero.WriteFile(afs, "/share/carol/netcopy.nk", []byte("Blur {}"), 0644))

	err := p.Copy("bob", "nobody", "carol")
	assert.ErrorIs(t, err, netcopy.ErrNotFound)
	assert.Equal(t, "Blur {}", clip.text)
	require.Len(t, s.messages, 3)
	assert.Contains(t, s.messages[0], "bob")
	assert.Contains(t, s.messages[1], "File not found")
	assert.Contains(t, s.messages[2], "carol")
}

func TestCopy_NoUsers(t *testing.T) {
	p, s, _ := newTestPanel(t, "alice", WithClipboard(&fakeClipboard{}))
	assert.ErrorIs(t, p.Copy(), ErrNoRowSelected)
	assert.Equal(t, "No row selected!", s.lastMessage())
}

func TestCopy_Errors(t *testing.T) {
	t.Run("no row", func(t *testing.T) {
		p, s, _ := newTestPanel(t, "alice", WithClipboard(&fakeClipboard{}))
		assert.ErrorIs(t, p.OnAction(ActionCopy, ""), ErrNoRowSelected)
		assert.Equal(t, "No row selected!", s.lastMessage())
	})
	t.Run("no clipboard", func(t *testing.T) {
		p, _, _ := newTestPanel(t, "alice")
		assert.ErrorIs(t, p.OnAction(ActionCopy, "bob"), netcopy.ErrClipboardUnavailable)
	})
	t.Run("clipboard fails", func(t *testing.T) {
		p, _, afs := newTestPanel(t, "alice", WithClipboard(&fakeClipboard{err: errors.New("no display")}))
		require.NoError(t, afero.WriteFile(afs, "/share/alice/netcopy.nk", []byte("x"), 0644))
		assert.ErrorIs(t, p.OnAction(ActionCopy, "alice"), netcopy.ErrClipboardUnavailable)
	})
	t.Run("not found", func(t *testing.T) {
		p, s, _ := newTestPanel(t, "alice", WithClipboard(&fakeClipboard{}))
		assert.ErrorIs(t, p.OnAction(ActionCopy, "bob"), netcopy.ErrNotFound)
		assert.Contains(t, s.lastMessage(), "File not found")
	})
}

func TestImport(t *testing.T) {
	var got []byte
	imp := importerFunc(func(b []byte) error { got = b; return nil })
	p, _, afs := newTestPanel(t, "alice", WithImporter(imp))
	require.NoError(t, afs.MkdirAll("/share/bob", 0755))
	require.NoError(t, afero.WriteFile(afs, "/share/bob/netcopy.nk", []byte("Merge2 {}"), 0644))

	require.NoError(t, p.OnAction(ActionImport, "bob"))
	assert.Equal(t, "Merge2 {}", string(got))
}

func TestImport_Unavailable(t *testing.T) {
	p, s, _ := newTestPanel(t, "alice")
	assert.ErrorIs(t, p.OnAction(ActionImport, "bob"), ErrImportUnavailable)
	assert.Equal(t, "Import is not available in this host.", s.lastMessage())
}

func TestRefresh_BaseDirGone(t *testing.T) {
	p, s, afs := newTestPanel(t, "alice")
	require.NoError(t, afs.RemoveAll("/share"))

	err := p.OnAction(ActionRefresh, "")
	assert.ErrorIs(t, err, netcopy.ErrBaseDirMissing)
	assert.Equal(t, "Provided path is not a directory!", s.lastMessage())
	assert.Len(t, s.renders, 1)
}

func TestOnAction_Unknown(t *testing.T) {
	p, s, _ := newTestPanel(t, "alice")
	assert.Error(t, p.OnAction(ActionKind(42), ""))
	assert.NotEmpty(t, s.lastMessage())
	assert.Equal(t, "action(42)", ActionKind(42).String())
}
