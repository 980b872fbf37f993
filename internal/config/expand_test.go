package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandServerDef_Individual(t *testing.T) {
	servers := expandServerDef(ServerDef{Name: "ermine", Host: "ermine.lab", HasGPU: true})

	require.Len(t, servers, 1)
	assert.Equal(t, "ermine", servers[0].Name)
	assert.Equal(t, "ermine.lab", servers[0].Host)
	assert.True(t, servers[0].HasGPU)
}

func TestExpandServerDef_HostDefaultsToName(t *testing.T) {
	servers := expandServerDef(ServerDef{Name: "ermine"})

	require.Len(t, servers, 1)
	assert.Equal(t, "ermine", servers[0].Host)
}

func TestExpandServerDef_Pattern(t *testing.T) {
	servers := expandServerDef(ServerDef{Pattern: "orca{01..03}"})

	require.Len(t, servers, 3)
	assert.Equal(t, "orca01", servers[0].Name)
	assert.Equal(t, "orca02", servers[1].Name)
	assert.Equal(t, "orca03", servers[2].Name)
	// pattern hosts default to their name
	assert.Equal(t, "orca02", servers[1].Host)
}

func TestExpandServerDef_PatternZeroPadding(t *testing.T) {
	tests := []struct {
		pattern string
		count   int
		first   string
		last    string
	}{
		{"orca{01..99}", 99, "orca01", "orca99"},
		{"node{1..3}", 3, "node1", "node3"},
		{"gpu{001..010}", 10, "gpu001", "gpu010"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			servers := expandServerDef(ServerDef{Pattern: tt.pattern})
			require.Len(t, servers, tt.count)
			assert.Equal(t, tt.first, servers[0].Name)
			assert.Equal(t, tt.last, servers[len(servers)-1].Name)
		})
	}
}

func TestExpandServerDef_PatternPropagatesGPU(t *testing.T) {
	servers := expandServerDef(ServerDef{Pattern: "gpu{1..2}", HasGPU: true})

	require.Len(t, servers, 2)
	for _, s := range servers {
		assert.True(t, s.HasGPU)
	}
}

func TestExpandServerDef_NonRangePatternIsLiteral(t *testing.T) {
	servers := expandServerDef(ServerDef{Pattern: "big-box"})

	require.Len(t, servers, 1)
	assert.Equal(t, "big-box", servers[0].Name)
	assert.Equal(t, "big-box", servers[0].Host)
}

func TestExpandServerDef_ReversedRange(t *testing.T) {
	servers := expandServerDef(ServerDef{Pattern: "orca{09..01}"})
	assert.Empty(t, servers)
}

func TestExpandServerDef_Empty(t *testing.T) {
	servers := expandServerDef(ServerDef{})
	assert.Empty(t, servers)
}
