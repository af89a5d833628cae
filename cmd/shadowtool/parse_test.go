package main

import (
	"testing"

	"github.com/Faultbox/midgard-shadow/pkg/math"
)

func TestParseVec3(t *testing.T) {
	tests := []struct {
		in      string
		want    math.Vec3
		wantErr bool
	}{
		{"1,2,3", math.Vec3{X: 1, Y: 2, Z: 3}, false},
		{" 0, -1 , 0.5", math.Vec3{Y: -1, Z: 0.5}, false},
		{"1,2", math.Vec3{}, true},
		{"a,b,c", math.Vec3{}, true},
		{"", math.Vec3{}, true},
	}
	for _, tt := range tests {
		got, err := parseVec3(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseVec3(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseVec3(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseFloatsEmpty(t *testing.T) {
	f, err := parseFloats("  ")
	if err != nil || f != nil {
		t.Errorf("parseFloats(blank) = %v, %v", f, err)
	}
}
