package scout

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotScore(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
		want float64
	}{
		{
			name: "cpu and memory",
			snap: snap("a", 10, 20, nil),
			want: 30,
		},
		{
			name: "gpu mean added",
			snap: snap("a", 10, 20, []int{30, 50}),
			want: 70,
		},
		{
			name: "absent metrics count as fully loaded",
			snap: Snapshot{Online: true},
			want: 200,
		},
		{
			name: "absent cpu only",
			snap: Snapshot{Online: true, MemoryUsage: fptr(10)},
			want: 110,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.snap.Score())
		})
	}
}

func TestSnapshotMeanGPUUsage(t *testing.T) {
	assert.Equal(t, 0.0, (&Snapshot{}).MeanGPUUsage())
	assert.Equal(t, 45.0, (&Snapshot{GPUUsage: []int{45}}).MeanGPUUsage())
	assert.Equal(t, 50.0, (&Snapshot{GPUUsage: []int{25, 75}}).MeanGPUUsage())
}

func TestSnapshotJSONOmitsAbsentFields(t *testing.T) {
	s := Snapshot{Name: "orca01", Host: "orca01.local", Online: true, CPUUsage: fptr(12.5)}

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "orca01", decoded["server"])
	assert.Equal(t, 12.5, decoded["cpu_usage"])
	assert.NotContains(t, decoded, "memory_usage")
	assert.NotContains(t, decoded, "gpu_usage")
	assert.NotContains(t, decoded, "error")
}
