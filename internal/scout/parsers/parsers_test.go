package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePercent(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   float64
		absent bool
	}{
		{name: "plain number", output: "12.5", want: 12.5},
		{name: "trailing percent sign", output: "87.3%", want: 87.3},
		{name: "surrounding whitespace", output: "  42.0  \n", want: 42.0},
		{name: "integer", output: "100", want: 100},
		{name: "zero", output: "0.0", want: 0},
		{name: "empty", output: "", absent: true},
		{name: "whitespace only", output: "   \n", absent: true},
		{name: "non-numeric", output: "abc", absent: true},
		{name: "percent sign only", output: "%", absent: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePercent(tt.output)
			if tt.absent {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestParseLoadAverage(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   LoadAverage
		absent bool
	}{
		{
			name:   "comma separated",
			output: "0.10, 0.20, 0.30",
			want:   LoadAverage{One: 0.10, Five: 0.20, Fifteen: 0.30},
		},
		{
			name:   "space separated",
			output: "0.10 0.20 0.30",
			want:   LoadAverage{One: 0.10, Five: 0.20, Fifteen: 0.30},
		},
		{
			name:   "extra tokens ignored",
			output: "1.52 1.48 1.60 2/841 12345",
			want:   LoadAverage{One: 1.52, Five: 1.48, Fifteen: 1.60},
		},
		{name: "too few values", output: "0.10, 0.20", absent: true},
		{name: "non-numeric token", output: "0.10, abc, 0.30", absent: true},
		{name: "empty", output: "", absent: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLoadAverage(tt.output)
			if tt.absent {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestParseGPUUsage(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   []int
	}{
		{name: "single device", output: "45", want: []int{45}},
		{name: "multiple devices", output: "10\n95\n0", want: []int{10, 95, 0}},
		{name: "malformed line skipped", output: "10\nnot a number\n30", want: []int{10, 30}},
		{name: "nvidia-smi missing", output: "bash: nvidia-smi: command not found", want: nil},
		{name: "empty", output: "", want: nil},
		{name: "nothing parses", output: "???", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseGPUUsage(tt.output))
		})
	}
}

func TestParseGPUMemory(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   []GPUMemory
	}{
		{
			name:   "single device",
			output: "1000,4000",
			want:   []GPUMemory{{UsedMB: 1000, TotalMB: 4000, UsedPercent: 25.0}},
		},
		{
			name:   "rounds to one decimal",
			output: "1, 3",
			want:   []GPUMemory{{UsedMB: 1, TotalMB: 3, UsedPercent: 33.3}},
		},
		{
			name:   "zero total yields zero percent",
			output: "0, 0",
			want:   []GPUMemory{{UsedMB: 0, TotalMB: 0, UsedPercent: 0}},
		},
		{
			name:   "multiple devices with malformed line",
			output: "2048, 8192\ngarbage\n512, 1024",
			want: []GPUMemory{
				{UsedMB: 2048, TotalMB: 8192, UsedPercent: 25.0},
				{UsedMB: 512, TotalMB: 1024, UsedPercent: 50.0},
			},
		},
		{name: "nvidia-smi missing", output: "nvidia-smi: not found", want: nil},
		{name: "empty", output: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseGPUMemory(tt.output))
		})
	}
}

func TestParseGPUProcesses(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   []GPUProcess
	}{
		{
			name:   "single process",
			output: "1234, python3, 2048",
			want:   []GPUProcess{{PID: "1234", Name: "python3", MemoryMB: "2048"}},
		},
		{
			name:   "multiple processes with blank line",
			output: "1234, python3, 2048\n\n5678, pytorch, 8192",
			want: []GPUProcess{
				{PID: "1234", Name: "python3", MemoryMB: "2048"},
				{PID: "5678", Name: "pytorch", MemoryMB: "8192"},
			},
		},
		{
			name:   "placeholder fields kept as strings",
			output: "1234, [Not Found], [N/A]",
			want:   []GPUProcess{{PID: "1234", Name: "[Not Found]", MemoryMB: "[N/A]"}},
		},
		{name: "too few fields skipped", output: "1234, python3", want: nil},
		{name: "nvidia-smi missing", output: "zsh: command not found: nvidia-smi", want: nil},
		{name: "nvidia-smi missing sh marker", output: "sh: 1: nvidia-smi: not found", want: nil},
		{name: "empty", output: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseGPUProcesses(tt.output))
		})
	}
}
