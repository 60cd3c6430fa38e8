package output_test

import (
	"bytes"
	"testing"

	"todo/internal/output"
	"todo/internal/tasklist"
)

func TestFormatTask(t *testing.T) {
	tests := []struct {
		name string
		num  int
		task tasklist.Task
		want string
	}{
		{"open", 1, tasklist.Task{Description: "Buy milk"}, "   1  [ ] Buy milk\n"},
		{"completed", 2, tasklist.Task{Description: "Walk dog", Completed: true}, "   2  [x] Walk dog\n"},
		{"deadline", 12, tasklist.Task{Description: "Pay rent", Deadline: "2025-02-01"}, "  12  [ ] Pay rent  (due 2025-02-01)\n"},
		{"newlines", 3, tasklist.Task{Description: "a\nb\r\nc"}, "   3  [ ] a b  c\n"},
		{"blank", 4, tasklist.Task{Description: "  "}, "   4  [ ] (untitled)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			output.FormatTask(&buf, tt.num, tt.task)
			if buf.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, buf.String())
			}
		})
	}
}

func TestFormatList_Empty(t *testing.T) {
	var buf bytes.Buffer
	output.FormatList(&buf, nil, false)
	if buf.String() != output.EmptyPlaceholder+"\n" {
		t.Errorf("expected placeholder, got %q", buf.String())
	}

	buf.Reset()
	output.FormatList(&buf, nil, true)
	if buf.String() != "" {
		t.Errorf("expected no output in quiet mode, got %q", buf.String())
	}
}
