package timecode_test

import (
	"errors"
	"math"
	"testing"

	"takeplan/internal/timecode"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"00:00:05", 5},
		{"01:02:03", 3723},
		{"00:00:01:00", 1},
		{"00:00:05:12", 5.48},
		{" 00:01:00:24 ", 60.96},
	}
	for _, tc := range cases {
		got, err := timecode.Parse(tc.in, 25)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", tc.in, err)
		}
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "00:05", "00:00:00:00:00", "aa:00:00", "00:-1:00", "00:00:0x", "00::00"} {
		_, err := timecode.Parse(in, 25)
		if err == nil {
			t.Fatalf("Parse(%q) expected error", in)
		}
		if !errors.Is(err, timecode.ErrTimeFormat) {
			t.Fatalf("Parse(%q) error %v should match ErrTimeFormat", in, err)
		}
		var fe *timecode.FormatError
		if !errors.As(err, &fe) || fe.Value != in {
			t.Fatalf("Parse(%q) expected FormatError carrying the value, got %v", in, err)
		}
	}
}

func TestParseLargeHoursStayPositive(t *testing.T) {
	got, err := timecode.Parse("3000000000000000:00:00", 25)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if want := 3000000000000000.0 * 3600; got != want {
		t.Fatalf("Parse = %v, want %v", got, want)
	}
	if _, err := timecode.Parse("99999999999999999999:00:00", 25); !errors.Is(err, timecode.ErrTimeFormat) {
		t.Fatalf("expected out-of-range hours to be rejected, got %v", err)
	}
}

func TestFormatRoundTrip(t *testing.T) {
	for _, in := range []string{"00:00:00:00", "00:00:05:12", "01:59:59:24", "10:00:00:01"} {
		seconds, err := timecode.Parse(in, 25)
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		if got := timecode.Format(seconds, 25); got != in {
			t.Fatalf("Format(Parse(%q)) = %q", in, got)
		}
	}
	if got := timecode.Format(-3, 25); got != "00:00:00:00" {
		t.Fatalf("negative seconds should clamp, got %q", got)
	}
}
