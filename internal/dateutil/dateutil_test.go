package dateutil

import (
	"errors"
	"testing"
	"time"
)

func TestParseDateFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  string
		want    string
		wantErr error
	}{
		{name: "year", format: "YYYY", want: "2006"},
		{name: "short year", format: "YY", want: "06"},
		{name: "full month", format: "MMMM", want: "January"},
		{name: "short month", format: "MMM", want: "Jan"},
		{name: "padded month", format: "MM", want: "01"},
		{name: "month", format: "M", want: "1"},
		{name: "padded day", format: "DD", want: "02"},
		{name: "day", format: "D", want: "2"},
		{name: "iso", format: "YYYY-MM-DD", want: "2006-01-02"},
		{name: "long", format: "MMMM D, YYYY", want: "January 2, 2006"},
		{name: "bracket literal", format: "[Year] YYYY", want: "Year 2006"},
		{name: "empty", format: "", wantErr: ErrInvalidDateFormat},
		{name: "unclosed bracket", format: "[Year YYYY", wantErr: ErrInvalidDateFormat},
		{name: "too long", format: string(make([]byte, MaxDateFormatLength+1)), wantErr: ErrInvalidDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseDateFormat(tt.format)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseDateFormat(%q) error = %v, want %v", tt.format, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDateFormat(%q) unexpected error: %v", tt.format, err)
			}
			if got != tt.want {
				t.Errorf("ParseDateFormat(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestExpand(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.March, 4, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		text    string
		want    string
		wantErr error
	}{
		{name: "no placeholder", text: "Peer-Led Learning", want: "Peer-Led Learning"},
		{name: "bare date is year", text: "© {date} TeachToEach", want: "© 2025 TeachToEach"},
		{name: "explicit format", text: "{date:DD/MM/YYYY}", want: "04/03/2025"},
		{name: "preset", text: "Updated {date:long}", want: "Updated March 4, 2025"},
		{name: "preset case-insensitive", text: "{date:ISO}", want: "2025-03-04"},
		{name: "two placeholders", text: "{date} / {date:MM}", want: "2025 / 03"},
		{name: "not a placeholder", text: "{dates} and {other}", want: "{dates} and {other}"},
		{name: "unterminated", text: "since {date", want: "since {date"},
		{name: "invalid format", text: "{date:[YYYY}", wantErr: ErrInvalidDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Expand(tt.text, now)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Expand(%q) error = %v, want %v", tt.text, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expand(%q) unexpected error: %v", tt.text, err)
			}
			if got != tt.want {
				t.Errorf("Expand(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
