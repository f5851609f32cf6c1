package snapshot_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bikeshare-tools/stationsnap/internal/snapshot"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		path string

		wantTime       time.Time
		wantCompressed bool
		wantErr        error
	}{
		"Uncompressed snapshot": {
			path:     "2017-06-10_12:34:00.xml",
			wantTime: time.Date(2017, 6, 10, 12, 34, 0, 0, time.Local),
		},
		"Compressed snapshot": {
			path:           "2017-06-10_12:34:00.xml.bz2",
			wantTime:       time.Date(2017, 6, 10, 12, 34, 0, 0, time.Local),
			wantCompressed: true,
		},
		"Snapshot with directory": {
			path:     "/var/cache/stationsnap/2017-06-10_12:34:00.xml",
			wantTime: time.Date(2017, 6, 10, 12, 34, 0, 0, time.Local),
		},

		"Temporary file":            {path: "tmp-123456.tmp", wantErr: snapshot.ErrInvalidExt},
		"Wrong extension":           {path: "2017-06-10_12:34:00.json", wantErr: snapshot.ErrInvalidExt},
		"Compressed only":           {path: "2017-06-10_12:34:00.bz2", wantErr: snapshot.ErrInvalidExt},
		"Unparsable timestamp":      {path: "not-a-timestamp.xml", wantErr: snapshot.ErrInvalidName},
		"Second resolution in name": {path: "2017-06-10_12:34:56.xml", wantErr: snapshot.ErrInvalidName},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s, err := snapshot.New(tc.path)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tc.path, s.Path)
			assert.True(t, tc.wantTime.Equal(s.Timestamp), "unexpected timestamp %s", s.Timestamp)
			assert.Equal(t, tc.wantCompressed, s.Compressed)
		})
	}
}

func TestTimestampName(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		time time.Time

		want string
	}{
		"On the minute":        {time: time.Date(2017, 6, 10, 12, 34, 0, 0, time.Local), want: "2017-06-10_12:34:00.xml"},
		"Seconds truncated":    {time: time.Date(2017, 6, 10, 12, 34, 56, 0, time.Local), want: "2017-06-10_12:34:00.xml"},
		"Just before rollover": {time: time.Date(2017, 6, 10, 12, 34, 59, int(time.Second - 1), time.Local), want: "2017-06-10_12:34:00.xml"},
		"Single digit fields":  {time: time.Date(2017, 6, 1, 1, 2, 3, 0, time.Local), want: "2017-06-01_01:02:00.xml"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, snapshot.TimestampName(tc.time))
		})
	}
}

func TestTimestampNameRoundTrip(t *testing.T) {
	t.Parallel()

	capture := time.Date(2017, 6, 10, 12, 34, 56, 0, time.Local)

	s, err := snapshot.New(snapshot.TimestampName(capture))
	require.NoError(t, err)

	assert.True(t, capture.Truncate(time.Minute).Equal(s.Timestamp), "name should encode the capture minute")
	assert.False(t, s.Compressed)
}
