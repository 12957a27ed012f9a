package netcopy

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err    error
		prefix string
	}{
		{ErrNoSelection, "No nodes selected!"},
		{fmt.Errorf("%w: /x", ErrBaseDirMissing), "Provided path is not a directory!"},
		{fmt.Errorf("%w: /x/bob/netcopy.nk", ErrNotFound), "File not found"},
		{fmt.Errorf("%w: boom", ErrExportHost), "Export failed in host"},
		{fmt.Errorf("%w: open", ErrExportDenied), "Permission denied"},
		{fmt.Errorf("%w: mkdir", ErrFolderDenied), "Permission denied"},
		{fmt.Errorf("%w: /x/alice", ErrFolderBlocked), "Cannot create user folder"},
		{fmt.Errorf("%w: disk full", ErrExportIO), "Error writing NetCopy"},
		{fmt.Errorf("%w: eio", ErrReadIO), "Error copying file contents"},
		{ErrClipboardUnavailable, "Clipboard is not available."},
		{ErrConfigMissing, "NetCopy is not configured"},
		{fmt.Errorf("other"), "NetCopy error: other"},
	}

	for _, tt := range tests {
		msg := UserMessage(tt.err)
		assert.True(t, strings.HasPrefix(msg, tt.prefix), "%q should start with %q", msg, tt.prefix)
		assert.NotContains(t, msg, "\n")
	}
	assert.Empty(t, UserMessage(nil))
}
