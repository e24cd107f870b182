package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want record
	}{
		{
			name: "motion",
			line: "M,5,-3",
			want: record{kind: EventMotion, dx: 5, dy: -3},
		},
		{
			name: "motion with spaces",
			line: "M, 12 , 0",
			want: record{kind: EventMotion, dx: 12, dy: 0},
		},
		{
			name: "left button down",
			line: "L,1",
			want: record{kind: EventButton, button: ButtonLeft, pressed: true},
		},
		{
			name: "right button up",
			line: "R,0",
			want: record{kind: EventButton, button: ButtonRight},
		},
		{
			name: "middle button down",
			line: "N,1",
			want: record{kind: EventButton, button: ButtonMiddle, pressed: true},
		},
		{
			name: "info keeps embedded commas",
			line: "I,USB Host Shield,v2",
			want: record{kind: EventInfo, text: "USB Host Shield,v2"},
		},
		{
			name: "device error",
			line: "E,mouse init failed",
			want: record{kind: EventDeviceError, text: "mouse init failed"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseRecord(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRecordRejectsMalformedInput(t *testing.T) {
	t.Parallel()

	lines := []string{
		"M,abc,3",
		"M,1",
		"L,2",
		"R",
		"Z,1,2",
		"garbage",
	}
	for _, line := range lines {
		_, err := parseRecord(line)
		assert.Error(t, err, "line %q", line)
	}
}

func TestButtonString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "left", ButtonLeft.String())
	assert.Equal(t, "right", ButtonRight.String())
	assert.Equal(t, "middle", ButtonMiddle.String())
}
