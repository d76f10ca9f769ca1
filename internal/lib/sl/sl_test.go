package sl

import (
	"errors"
	"log/slog"
	"testing"
)

func TestErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "simple error",
			err:  errors.New("connection refused"),
			want: "connection refused",
		},
		{
			name: "wrapped error keeps full text",
			err:  errors.New("storage.CreateJob: no rows"),
			want: "storage.CreateJob: no rows",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attr := Err(tt.err)
			if attr.Key != "error" {
				t.Errorf("Err(%v).Key = %q, want %q", tt.err, attr.Key, "error")
			}
			if attr.Value.Kind() != slog.KindString {
				t.Errorf("Err(%v).Value.Kind() = %v, want string", tt.err, attr.Value.Kind())
			}
			if attr.Value.String() != tt.want {
				t.Errorf("Err(%v).Value = %q, want %q", tt.err, attr.Value.String(), tt.want)
			}
		})
	}
}
