package schedule

import (
	"sort"
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "00:00", want: "00:00"},
		{in: "10:30", want: "10:30"},
		{in: "23:59", want: "23:59"},
		{in: "9:30", wantErr: true}, // not zero-padded
		{in: "24:00", wantErr: true},
		{in: "10:60", wantErr: true},
		{in: "10h30", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			tod, err := ParseTimeOfDay(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseTimeOfDay(%q) = %v; want error", tt.in, tod)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTimeOfDay(%q): %v", tt.in, err)
			}
			if got := tod.String(); got != tt.want {
				t.Errorf("String() = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestTimeOfDayOrdering(t *testing.T) {
	// ordering must match lexicographic ordering of the HH:MM form
	raw := []string{"14:00", "09:15", "23:59", "00:00", "10:30", "09:05"}

	tods := make([]TimeOfDay, 0, len(raw))
	for _, s := range raw {
		tod, err := ParseTimeOfDay(s)
		if err != nil {
			t.Fatalf("ParseTimeOfDay(%q): %v", s, err)
		}
		tods = append(tods, tod)
	}

	sort.Slice(raw, func(i, j int) bool { return raw[i] < raw[j] })
	sort.Slice(tods, func(i, j int) bool { return tods[i].Before(tods[j]) })

	for i := range raw {
		if got := tods[i].String(); got != raw[i] {
			t.Errorf("position %d: got %q; want %q", i, got, raw[i])
		}
	}
}

func TestTimeOfDayFrom(t *testing.T) {
	now := time.Date(2024, 3, 11, 14, 5, 59, 0, time.UTC)
	tod := TimeOfDayFrom(now)
	if got := tod.String(); got != "14:05" {
		t.Errorf("TimeOfDayFrom() = %q; want %q", got, "14:05")
	}
	if tod.Hour() != 14 || tod.Minute() != 5 {
		t.Errorf("Hour()/Minute() = %d/%d; want 14/5", tod.Hour(), tod.Minute())
	}
}

func TestTimeOfDayJSON(t *testing.T) {
	tod, err := ParseTimeOfDay("08:45")
	if err != nil {
		t.Fatalf("ParseTimeOfDay(): %v", err)
	}
	data, err := tod.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON(): %v", err)
	}
	if string(data) != `"08:45"` {
		t.Errorf("MarshalJSON() = %s; want %q", data, `"08:45"`)
	}

	var back TimeOfDay
	if err := back.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON(): %v", err)
	}
	if back != tod {
		t.Errorf("round-trip = %v; want %v", back, tod)
	}

	if err := back.UnmarshalJSON([]byte(`"8:45"`)); err == nil {
		t.Error("UnmarshalJSON() accepted a non-padded time")
	}
}
