package netcopy

import (
	"errors"
	"strings"
)

var (
	// configuration errors
	ErrConfigMissing   = errors.New("configuration missing")
	ErrConfigMalformed = errors.New("configuration malformed")

	// user folder errors
	ErrFolderDenied   = errors.New("user folder creation denied")
	ErrFolderBlocked  = errors.New("user folder blocked by a file")
	ErrBaseDirMissing = errors.New("base directory is not a directory")
	ErrInvalidUser    = errors.New("invalid user name")
	ErrUserUnknown    = errors.New("current user unknown")

	// export errors
	ErrNoSelection  = errors.New("no nodes selected")
	ErrExportIO     = errors.New("export i/o error")
	ErrExportDenied = errors.New("export permission denied")
	ErrExportHost   = errors.New("host export failed")

	// read errors
	ErrNotFound = errors.New("not found")
	ErrReadIO   = errors.New("read i/o error")

	ErrClipboardUnavailable = errors.New("clipboard unavailable")
)

// UserMessage turns an error into the one-line text shown to the artist.
func UserMessage(err error) string {
	return strings.Join(strings.Fields(userMessage(err)), " ")
}

func userMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoSelection):
		return "No nodes selected!"
	case errors.Is(err, ErrBaseDirMissing):
		return "Provided path is not a directory!"
	case errors.Is(err, ErrConfigMissing):
		return "NetCopy is not configured: base_dir is missing."
	case errors.Is(err, ErrConfigMalformed):
		return "NetCopy configuration could not be read: " + err.Error()
	case errors.Is(err, ErrExportHost):
		return "Export failed in host: " + err.Error()
	case errors.Is(err, ErrNotFound):
		return "File not found: " + err.Error()
	case errors.Is(err, ErrClipboardUnavailable):
		return "Clipboard is not available."
	case errors.Is(err, ErrExportDenied), errors.Is(err, ErrFolderDenied):
		return "Permission denied: " + err.Error()
	case errors.Is(err, ErrFolderBlocked):
		return "Cannot create user folder: " + err.Error()
	case errors.Is(err, ErrExportIO):
		return "Error writing NetCopy: " + err.Error()
	case errors.Is(err, ErrReadIO):
		return "Error copying file contents: " + err.Error()
	}
	return "NetCopy error: " + err.Error()
}
