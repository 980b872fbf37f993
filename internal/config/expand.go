package config

import (
	"fmt"
	"regexp"
	"strconv"
)

// patternRe matches numeric range patterns like "orca{01..99}".
// Group 1 is the prefix, groups 2 and 3 the range bounds.
var patternRe = regexp.MustCompile(`^(.+)\{(\d+)\.\.(\d+)\}$`)

// expandServerDef turns one raw config entry into expanded descriptors.
// Individual entries map to a single server; pattern entries expand into
// one server per value in the numeric range, zero-padded to the width of
// the start token ("orca{01..03}" gives orca01, orca02, orca03).
func expandServerDef(def ServerDef) []Server {
	if def.Name != "" {
		host := def.Host
		if host == "" {
			host = def.Name
		}
		return []Server{{Name: def.Name, Host: host, HasGPU: def.HasGPU}}
	}

	if def.Pattern == "" {
		return nil
	}

	match := patternRe.FindStringSubmatch(def.Pattern)
	if match == nil {
		// Not a range pattern; treat the pattern text as a literal host
		return []Server{{Name: def.Pattern, Host: def.Pattern, HasGPU: def.HasGPU}}
	}

	prefix := match[1]
	start, _ := strconv.Atoi(match[2])
	end, _ := strconv.Atoi(match[3])
	width := len(match[2])

	if end < start {
		return nil
	}

	servers := make([]Server, 0, end-start+1)
	for i := start; i <= end; i++ {
		name := fmt.Sprintf("%s%0*d", prefix, width, i)
		servers = append(servers, Server{Name: name, Host: name, HasGPU: def.HasGPU})
	}
	return servers
}
