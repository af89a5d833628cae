package shader

import (
	"strings"
	"testing"
)

func TestFlatSourcesEmbedded(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{"vertex", flatVertex, []string{"#version 410 core", "uProjection", "uView", "uClipPlane", "gl_ClipDistance"}},
		{"fragment", flatFragment, []string{"#version 410 core", "FragColor"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, w := range tt.want {
				if !strings.Contains(tt.source, w) {
					t.Errorf("%s source missing %q", tt.name, w)
				}
			}
		})
	}
}
