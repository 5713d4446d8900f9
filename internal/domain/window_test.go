package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWindow(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeWindow
		wantErr bool
	}{
		{
			name:  "standard window",
			input: "16:00 - 16:30",
			want:  TimeWindow{Start: 16 * 60, End: 16*60 + 30},
		},
		{
			name:  "no spaces around dash",
			input: "08:00-08:15",
			want:  TimeWindow{Start: 8 * 60, End: 8*60 + 15},
		},
		{
			name:  "surrounding whitespace",
			input: "  17:30 - 18:00  ",
			want:  TimeWindow{Start: 17*60 + 30, End: 18 * 60},
		},
		{
			name:    "end before start",
			input:   "16:30 - 16:00",
			wantErr: true,
		},
		{
			name:    "zero duration",
			input:   "16:00 - 16:00",
			wantErr: true,
		},
		{
			name:    "single digit hour",
			input:   "8:00 - 8:30",
			wantErr: true,
		},
		{
			name:    "not a window",
			input:   "nachmittags",
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWindow(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeWindow_String(t *testing.T) {
	w := TimeWindow{Start: 9*60 + 5, End: 9*60 + 35}
	assert.Equal(t, "09:05 - 09:35", w.String())
}

func TestTimeWindow_Subdivide(t *testing.T) {
	tests := []struct {
		name   string
		window TimeWindow
		dur    int
		want   []string
	}{
		{
			name:   "half hour into two quarters",
			window: TimeWindow{Start: 16 * 60, End: 16*60 + 30},
			dur:    15,
			want:   []string{"16:00 - 16:15", "16:15 - 16:30"},
		},
		{
			name:   "exact fit yields itself",
			window: TimeWindow{Start: 16 * 60, End: 16*60 + 15},
			dur:    15,
			want:   []string{"16:00 - 16:15"},
		},
		{
			name:   "trailing remainder dropped",
			window: TimeWindow{Start: 16 * 60, End: 16*60 + 25},
			dur:    10,
			want:   []string{"16:00 - 16:10", "16:10 - 16:20"},
		},
		{
			name:   "window narrower than duration",
			window: TimeWindow{Start: 16 * 60, End: 16*60 + 10},
			dur:    15,
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subs := tt.window.Subdivide(tt.dur)
			got := make([]string, 0, len(subs))
			for _, s := range subs {
				got = append(got, s.String())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAssignableTimesForWindow(t *testing.T) {
	tests := []struct {
		name        string
		window      string
		slotMinutes int
		want        []string
	}{
		{
			name:        "half hour at default granularity",
			window:      "16:00 - 16:30",
			slotMinutes: 15,
			want:        []string{"16:00 - 16:15", "16:15 - 16:30"},
		},
		{
			name:        "half hour at half hour granularity",
			window:      "16:00 - 16:30",
			slotMinutes: 30,
			want:        []string{"16:00 - 16:30"},
		},
		{
			name:        "unsupported granularity falls back to window size",
			window:      "16:00 - 16:30",
			slotMinutes: 7,
			want:        []string{"16:00 - 16:30"},
		},
		{
			name:        "window narrower than granularity stays assignable",
			window:      "16:00 - 16:10",
			slotMinutes: 15,
			want:        []string{"16:00 - 16:10"},
		},
		{
			name:        "malformed window yields nothing",
			window:      "irgendwann",
			slotMinutes: 15,
			want:        []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AssignableTimesForWindow(tt.window, tt.slotMinutes))
		})
	}
}

func TestBookingRequest_CanBeAccepted(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		req  BookingRequest
		want bool
	}{
		{
			name: "pending and verified",
			req: BookingRequest{
				Status:       RequestRequested,
				Verification: Verification{VerifiedAt: &now},
			},
			want: true,
		},
		{
			name: "pending but unverified",
			req:  BookingRequest{Status: RequestRequested},
			want: false,
		},
		{
			name: "already accepted",
			req: BookingRequest{
				Status:       RequestAccepted,
				Verification: Verification{VerifiedAt: &now},
			},
			want: false,
		},
		{
			name: "declined",
			req: BookingRequest{
				Status:       RequestDeclined,
				Verification: Verification{VerifiedAt: &now},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.CanBeAccepted())
		})
	}
}
