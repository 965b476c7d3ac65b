package output

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

type fakeWriter struct {
	missing map[string]bool
	got     map[string]string
}

func (f *fakeWriter) Write(_ context.Context, path, text string) bool {
	if f.missing[path] {
		return false
	}

	if f.got == nil {
		f.got = make(map[string]string)
	}

	f.got[path] = text

	return true
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"text", FormatText, false},
		{"", FormatText, false},
		{"JSON", FormatJSON, false},
		{" yaml ", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"xml", DefaultFormat, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}

			if err != nil && !errors.Is(err, ErrUnknownFormat) {
				t.Errorf("ParseFormat(%q) error = %v, want ErrUnknownFormat", tt.in, err)
			}

			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSink_PrintText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		opts   []Option
		values []string
		want   string
	}{
		{
			name:   "quoted",
			values: []string{"hello", ""},
			want:   "\"hello\"\n\"\"\n",
		},
		{
			name:   "too_long",
			opts:   []Option{WithMaxLen(3)},
			values: []string{"abc", "abcd"},
			want:   "\"abc\"\nvalue 1 is longer than 3 characters, will not print\n",
		},
		{
			name:   "full",
			opts:   []Option{WithMaxLen(3), WithFull(true)},
			values: []string{"abcd"},
			want:   "\"abcd\"\n",
		},
		{
			name:   "unlimited",
			opts:   []Option{WithMaxLen(0)},
			values: []string{strings.Repeat("x", DefaultMaxLen+1)},
			want:   "\"" + strings.Repeat("x", DefaultMaxLen+1) + "\"\n",
		},
		{
			name:   "quiet",
			opts:   []Option{WithQuiet(true)},
			values: []string{"hidden"},
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			err := New(&buf, tt.opts...).Print(context.Background(), tt.values)
			if err != nil {
				t.Fatalf("Print() error = %v", err)
			}

			if got := buf.String(); got != tt.want {
				t.Errorf("Print() wrote %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSink_PrintJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	sink := New(&buf, WithFormat(FormatJSON), WithMaxLen(4))
	if err := sink.Print(context.Background(), []string{"héllo world", "ok"}); err != nil {
		t.Fatalf("Print() error = %v", err)
	}

	var items []Item
	if err := json.Unmarshal(buf.Bytes(), &items); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}

	want := []Item{
		{Index: 0, Value: "héll", Length: 11, Truncated: true},
		{Index: 1, Value: "ok", Length: 2},
	}

	if len(items) != len(want) {
		t.Fatalf("got %d items, want %d", len(items), len(want))
	}

	for i := range want {
		if items[i] != want[i] {
			t.Errorf("item %d = %+v, want %+v", i, items[i], want[i])
		}
	}
}

func TestSink_PrintYAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	sink := New(&buf, WithFormat(FormatYAML))
	if err := sink.Print(context.Background(), []string{"abc"}); err != nil {
		t.Fatalf("Print() error = %v", err)
	}

	for _, want := range []string{"value: abc", "index: 0", "length: 3", "truncated: false"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("YAML output missing %q:\n%s", want, buf.String())
		}
	}
}

func TestSink_Write(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		paths       []string
		values      []string
		missing     []string
		want        map[string]string
		wantWritten int
		wantErr     error
	}{
		{
			name:        "none",
			values:      []string{"a"},
			want:        map[string]string{},
			wantWritten: 0,
		},
		{
			name:        "one_to_one",
			paths:       []string{"p0", "p1"},
			values:      []string{"a", "b"},
			want:        map[string]string{"p0": "a", "p1": "b"},
			wantWritten: 2,
		},
		{
			name:        "first_to_all",
			paths:       []string{"p0", "p1"},
			values:      []string{"a", "b", "c"},
			want:        map[string]string{"p0": "a", "p1": "a"},
			wantWritten: 2,
		},
		{
			name:        "more_outputs",
			paths:       []string{"p0", "p1", "p2"},
			values:      []string{"a", "b"},
			want:        map[string]string{},
			wantWritten: 0,
			wantErr:     ErrTooFewValues,
		},
		{
			name:        "missing_file",
			paths:       []string{"p0", "p1"},
			values:      []string{"a", "b"},
			missing:     []string{"p1"},
			want:        map[string]string{"p0": "a"},
			wantWritten: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fw := &fakeWriter{missing: make(map[string]bool)}
			for _, p := range tt.missing {
				fw.missing[p] = true
			}

			var buf bytes.Buffer

			n, err := New(&buf).Write(context.Background(), fw, tt.paths, tt.values)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Write() error = %v, want %v", err, tt.wantErr)
			}

			if n != tt.wantWritten {
				t.Errorf("Write() = %d, want %d", n, tt.wantWritten)
			}

			if len(fw.got) != len(tt.want) {
				t.Errorf("wrote %v, want %v", fw.got, tt.want)
			}

			for path, text := range tt.want {
				if fw.got[path] != text {
					t.Errorf("%s = %q, want %q", path, fw.got[path], text)
				}
			}
		})
	}
}

func TestSink_TimingAndFailure(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	sink := New(&buf)
	sink.Timing("operator reverse", 1500*time.Microsecond)
	sink.Failure(ErrTooFewValues)

	want := "operator reverse took 1.5ms\n" + ErrTooFewValues.Error() + "\n"
	if got := buf.String(); got != want {
		t.Errorf("wrote %q, want %q", got, want)
	}
}
