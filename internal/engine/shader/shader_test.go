package shader

import (
	"strings"
	"testing"
)

func TestWithDefines(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		defines []string
		want    string
	}{
		{
			name: "no defines",
			src:  "#version 410 core\nvoid main() {}\n",
			want: "#version 410 core\nvoid main() {}\n",
		},
		{
			name:    "after version",
			src:     "\n  #version 410 core\nvoid main() {}\n",
			defines: []string{"ENV_CUBE", "MAX 4"},
			want:    "#version 410 core\n#define ENV_CUBE\n#define MAX 4\nvoid main() {}\n",
		},
		{
			name:    "no version",
			src:     "void main() {}\n",
			defines: []string{"A"},
			want:    "#define A\nvoid main() {}\n",
		},
		{
			name:    "version only",
			src:     "#version 410 core",
			defines: []string{"A"},
			want:    "#version 410 core\n#define A\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WithDefines(tt.src, tt.defines...); got != tt.want {
				t.Errorf("WithDefines() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWithDefinesKeepsVersionFirst(t *testing.T) {
	got := WithDefines("#version 410 core\nx\n", "A", "B")
	if !strings.HasPrefix(got, "#version") {
		t.Errorf("version directive moved: %q", got)
	}
}
