package main

import (
	"bytes"
	"testing"
)

func TestWriteReply(t *testing.T) {
	tests := []struct {
		name string
		res  any
		want string
	}{
		{"nil", nil, "(nil)\n"},
		{"int", int64(-1), "(integer) -1\n"},
		{"status", "OK", "OK\n"},
		{"empty", []any{}, "(empty array)\n"},
		{"array", []any{int64(4), int64(3)}, "1) (integer) 4\n2) (integer) 3\n"},
		{"nested", []any{[]any{"a", "b"}, "c"}, "1) 1) a\n   2) b\n2) c\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			writeReply(&buf, tt.res, "")
			if buf.String() != tt.want {
				t.Errorf("writeReply() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}
