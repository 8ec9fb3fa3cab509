package schedule

import "testing"

func TestMinuteOfDay(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "00:00", want: 0},
		{in: "09:30", want: 570},
		{in: "23:59", want: 1439},
		{in: "13:00:00", want: 780},
		{in: "24:00", wantErr: true},
		{in: "09:60", wantErr: true},
		{in: "nine", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range cases {
		got, err := MinuteOfDay(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("MinuteOfDay(%q): expected error, got %d", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("MinuteOfDay(%q): unexpected error %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("MinuteOfDay(%q): expected %d, got %d", tc.in, tc.want, got)
		}
	}
}

func TestFormatMinute(t *testing.T) {
	if got := FormatMinute(570); got != "09:30" {
		t.Fatalf("expected 09:30, got %s", got)
	}
	if got := FormatMinute(0); got != "00:00" {
		t.Fatalf("expected 00:00, got %s", got)
	}
}

func TestForWeekday(t *testing.T) {
	s := WorkSchedule{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"},
		{DayOfWeek: 3, StartTime: "10:00", EndTime: "14:00"},
	}

	wd, ok := s.ForWeekday(3)
	if !ok {
		t.Fatalf("expected workday for Wednesday")
	}
	if wd.StartTime != "10:00" {
		t.Fatalf("expected 10:00, got %s", wd.StartTime)
	}

	if _, ok := s.ForWeekday(0); ok {
		t.Fatalf("expected no workday for Sunday")
	}
}
