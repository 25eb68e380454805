package assets

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/envlight/internal/engine/envmap"
	"github.com/Faultbox/envlight/internal/logger"
)

func writePNG(t *testing.T, path string, w, h int, c color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func faceNames() [envmap.FaceCount]string {
	var names [envmap.FaceCount]string
	for f := envmap.Face(0); f < envmap.FaceCount; f++ {
		names[f] = "cube/" + f.String() + ".png"
	}
	return names
}

func TestManagerLoadPriority(t *testing.T) {
	low := fstest.MapFS{
		"a.txt": {Data: []byte("low")},
		"b.txt": {Data: []byte("only-low")},
	}
	high := fstest.MapFS{
		"a.txt": {Data: []byte("high")},
	}

	m := NewManager()
	m.AddFS(low)
	m.AddFS(high)

	tests := []struct {
		name string
		want string
	}{
		{"a.txt", "high"},
		{"b.txt", "only-low"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := m.Load(tt.name)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("Load(%s) = %q, want %q", tt.name, data, tt.want)
			}
		})
	}
}

func TestManagerNotFound(t *testing.T) {
	m := NewManager()
	if err := m.AddDir(t.TempDir()); err != nil {
		t.Fatalf("AddDir: %v", err)
	}
	if _, err := m.Load("missing.png"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(missing) error = %v, want ErrNotFound", err)
	}
	if _, err := m.Load(filepath.Join(t.TempDir(), "missing.png")); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(absolute missing) error = %v, want ErrNotFound", err)
	}
}

func TestManagerAddDirRejectsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := NewManager().AddDir(path); err == nil {
		t.Error("AddDir(file) should fail")
	}
}

func TestManagerCache(t *testing.T) {
	m := NewManager()
	m.AddFS(fstest.MapFS{"a.txt": {Data: []byte("x")}})

	for i := 0; i < 3; i++ {
		if _, err := m.Load("a.txt"); err != nil {
			t.Fatalf("Load: %v", err)
		}
	}
	hits, misses := m.cache.Stats()
	if hits != 2 || misses != 1 {
		t.Errorf("Stats() = %d hits, %d misses, want 2, 1", hits, misses)
	}

	m.Close()
	if _, err := m.Load("a.txt"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load after Close error = %v, want ErrNotFound", err)
	}
}

func TestAwaitAllOrdersResults(t *testing.T) {
	a := image.NewRGBA(image.Rect(0, 0, 1, 1))
	b := image.NewRGBA(image.Rect(0, 0, 2, 2))
	ch := make(chan LoadResult, 2)
	ch <- Loaded(1, "b", b)
	ch <- Loaded(0, "a", a)

	imgs, err := AwaitAll(context.Background(), ch, 2)
	if err != nil {
		t.Fatalf("AwaitAll: %v", err)
	}
	if imgs[0] != a || imgs[1] != b {
		t.Error("results not placed by index")
	}
}

func TestAwaitAllFailsFast(t *testing.T) {
	boom := errors.New("boom")
	ch := make(chan LoadResult, 3)
	ch <- Failed(2, "c", boom)

	// Only one result is ever sent; a fail-fast await must not block on the rest.
	_, err := AwaitAll(context.Background(), ch, 3)
	if !errors.Is(err, boom) {
		t.Errorf("AwaitAll error = %v, want boom", err)
	}
}

func TestAwaitAllTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := AwaitAll(ctx, make(chan LoadResult), 1)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("AwaitAll error = %v, want DeadlineExceeded", err)
	}
}

func TestLoadCube(t *testing.T) {
	dir := t.TempDir()
	names := faceNames()
	for f, name := range names {
		writePNG(t, filepath.Join(dir, name), 4, 4, color.RGBA{uint8(f * 40), 0, 0, 255})
	}

	m := NewManager()
	if err := m.AddDir(dir); err != nil {
		t.Fatalf("AddDir: %v", err)
	}
	l := NewLoader(m, 3)
	defer l.Close()

	cube, err := l.LoadCube(context.Background(), names, 0)
	if err != nil {
		t.Fatalf("LoadCube: %v", err)
	}
	if cube.Size() != 4 {
		t.Errorf("Size() = %d, want 4", cube.Size())
	}
	if !cube.Remapped() {
		t.Error("static cube should be remapped")
	}
	for f := envmap.Face(0); f < envmap.FaceCount; f++ {
		if got := cube.Face(f).RGBAAt(1, 1).R; got != uint8(f*40) {
			t.Errorf("face %s red = %d, want %d", f, got, f*40)
		}
	}
}

func TestLoadCubeFailures(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(t *testing.T, dir string, names [envmap.FaceCount]string)
		want    error
	}{
		{
			name: "missing face",
			prepare: func(t *testing.T, dir string, names [envmap.FaceCount]string) {
				for _, n := range names[:5] {
					writePNG(t, filepath.Join(dir, n), 4, 4, color.RGBA{A: 255})
				}
			},
			want: ErrNotFound,
		},
		{
			name: "not an image",
			prepare: func(t *testing.T, dir string, names [envmap.FaceCount]string) {
				for _, n := range names[1:] {
					writePNG(t, filepath.Join(dir, n), 4, 4, color.RGBA{A: 255})
				}
				if err := os.WriteFile(filepath.Join(dir, names[0]), []byte("not a png"), 0o644); err != nil {
					t.Fatal(err)
				}
			},
			want: ErrUnsupportedFormat,
		},
		{
			name: "mismatched sizes",
			prepare: func(t *testing.T, dir string, names [envmap.FaceCount]string) {
				for i, n := range names {
					size := 4
					if i == 3 {
						size = 8
					}
					writePNG(t, filepath.Join(dir, n), size, size, color.RGBA{A: 255})
				}
			},
			want: envmap.ErrFaceSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			names := faceNames()
			tt.prepare(t, dir, names)

			m := NewManager()
			if err := m.AddDir(dir); err != nil {
				t.Fatalf("AddDir: %v", err)
			}
			l := NewLoader(m, 2)
			defer l.Close()

			if _, err := l.LoadCube(context.Background(), names, time.Second); !errors.Is(err, tt.want) {
				t.Errorf("LoadCube error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadEquirect(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "latlong.png"), 8, 4, color.RGBA{0, 200, 0, 255})

	m := NewManager()
	if err := m.AddDir(dir); err != nil {
		t.Fatalf("AddDir: %v", err)
	}
	l := NewLoader(m, 1)
	defer l.Close()

	eq, err := l.LoadEquirect(context.Background(), "latlong.png", 0)
	if err != nil {
		t.Fatalf("LoadEquirect: %v", err)
	}
	if b := eq.Image().Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Errorf("bounds = %v, want 8x4", b)
	}
}

func TestLoadAllCancelled(t *testing.T) {
	m := NewManager()
	m.AddFS(fstest.MapFS{})
	l := NewLoader(m, 1)
	defer l.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := l.LoadAll(ctx, []string{"a.png"}, 0); err == nil {
		t.Error("LoadAll with cancelled context should fail")
	}
}

func TestLoaderLogsUnderAssetsName(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	defer logger.Set(zap.New(core))()

	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 2, 2, color.RGBA{255, 0, 0, 255})
	m := NewManager()
	if err := m.AddDir(dir); err != nil {
		t.Fatalf("AddDir: %v", err)
	}
	l := NewLoader(m, 1)
	defer l.Close()

	if _, err := l.LoadAll(context.Background(), []string{"a.png"}, 0); err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	for _, e := range entries {
		if e.LoggerName != "assets" {
			t.Errorf("entry %q logged under %q, want assets", e.Message, e.LoggerName)
		}
	}
	if got := logs.FilterMessage("decoded").FilterField(zap.String("name", "a.png")).Len(); got != 1 {
		t.Errorf("decoded entries for a.png = %d, want 1", got)
	}
}
