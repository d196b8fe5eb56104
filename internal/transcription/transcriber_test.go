package transcription

import "testing"

func TestEstimateDuration(t *testing.T) {
	tests := []struct {
		name string
		size int64
		want int
	}{
		{"five MiB is five minutes", 5 << 20, 300},
		{"one MiB is one minute", 1 << 20, 60},
		{"half MiB rounds to thirty seconds", 512 << 10, 30},
		{"tiny file floors at one second", 100, 1},
		{"empty file floors at one second", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateDuration(tt.size); got != tt.want {
				t.Errorf("EstimateDuration(%d) = %d, want %d", tt.size, got, tt.want)
			}
		})
	}
}
