package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Faultbox/midgard-shadow/pkg/math"
)

// parseFloats splits a comma separated list. An empty string yields nil.
func parseFloats(s string) ([]float32, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float32, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", p, err)
		}
		out[i] = float32(f)
	}
	return out, nil
}

// parseVec3 parses "x,y,z".
func parseVec3(s string) (math.Vec3, error) {
	f, err := parseFloats(s)
	if err != nil {
		return math.Vec3{}, err
	}
	if len(f) != 3 {
		return math.Vec3{}, fmt.Errorf("expected x,y,z, got %q", s)
	}
	return math.Vec3{X: f[0], Y: f[1], Z: f[2]}, nil
}
