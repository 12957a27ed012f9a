package panel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mellowpictures/netcopy/netcopy"
)

func TestRows_NewestFirstAbsentLast(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	prev := nowFunc
	nowFunc = func() time.Time { return now }
	t.Cleanup(func() { nowFunc = prev })

	entries := []netcopy.Entry{
		{User: "user10"},
		{User: "old", ModTime: now.Add(-48 * time.Hour), HasPayload: true},
		{User: "user2"},
		{User: "fresh", ModTime: now.Add(-3 * time.Minute), HasPayload: true},
	}

	rows := Rows(entries)

	users := make([]string, len(rows))
	for i, r := range rows {
		users[i] = r.User
	}
	assert.Equal(t, []string{"fresh", "old", "user2", "user10"}, users)

	assert.Equal(t, "3 minutes ago", rows[0].Age)
	assert.Equal(t, now.Add(-3*time.Minute).Local().Format(time.ANSIC), rows[0].Latest)
	assert.Equal(t, NotFound, rows[2].Latest)
	assert.Empty(t, rows[2].Age)
}

func TestRows_Empty(t *testing.T) {
	assert.Empty(t, Rows(nil))
}
