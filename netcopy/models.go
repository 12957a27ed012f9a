package netcopy

import "time"

// DefaultPayloadName is the file each user folder holds its latest export in.
const DefaultPayloadName = "netcopy.nk"

// Entry is one row of the shared-folder listing: a user folder and the
// modification time of its payload. HasPayload is false when the folder has
// no payload file; ModTime is zero then.
type Entry struct {
	User       string
	ModTime    time.Time
	HasPayload bool
}
