package panel

import (
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/maruel/natural"
	"github.com/samber/lo"

	"github.com/mellowpictures/netcopy/netcopy"
)

// NotFound is shown in place of a timestamp when a folder has no payload.
const NotFound = "Not found"

// nowFunc is the time source, replaceable in tests.
var nowFunc = time.Now

// Headers are the table column titles.
var Headers = []string{"User", "Latest NetCopy"}

// Row is one rendered table line.
type Row struct {
	User    string
	Latest  string
	Age     string
	ModTime time.Time
	Present bool
}

// Rows turns listing entries into table rows, newest export first. Folders
// without a payload sink to the bottom; ties are broken by natural name order.
func Rows(entries []netcopy.Entry) []Row {
	now := nowFunc()
	rows := lo.Map(entries, func(e netcopy.Entry, _ int) Row {
		if !e.HasPayload {
			return Row{User: e.User, Latest: NotFound}
		}
		return Row{
			User:    e.User,
			Latest:  e.ModTime.Local().Format(time.ANSIC),
			Age:     humanize.RelTime(e.ModTime, now, "ago", "from now"),
			ModTime: e.ModTime,
			Present: true,
		}
	})

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Present != b.Present {
			return a.Present
		}
		if !a.ModTime.Equal(b.ModTime) {
			return a.ModTime.After(b.ModTime)
		}
		return natural.Less(a.User, b.User)
	})
	return rows
}
