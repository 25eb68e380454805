package assets

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/envlight/internal/engine/envmap"
	"github.com/Faultbox/envlight/internal/engine/texture"
	"github.com/Faultbox/envlight/internal/logger"
)

// LoadResult is the outcome of decoding one image.
type LoadResult struct {
	Index int
	Name  string
	Image *image.RGBA
	Err   error
}

// Loaded returns a successful result.
func Loaded(index int, name string, img *image.RGBA) LoadResult {
	return LoadResult{Index: index, Name: name, Image: img}
}

// Failed returns a failed result.
func Failed(index int, name string, err error) LoadResult {
	return LoadResult{Index: index, Name: name, Err: err}
}

// OK reports whether the image decoded.
func (r LoadResult) OK() bool { return r.Err == nil && r.Image != nil }

// AwaitAll collects n results from ch into index order. It returns on the
// first failure or when ctx is done, whichever comes first.
func AwaitAll(ctx context.Context, ch <-chan LoadResult, n int) ([]*image.RGBA, error) {
	out := make([]*image.RGBA, n)
	for got := 0; got < n; got++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for assets (%d/%d loaded): %w", got, n, ctx.Err())
		case r, ok := <-ch:
			if !ok {
				return nil, fmt.Errorf("asset results closed after %d/%d", got, n)
			}
			if !r.OK() {
				err := r.Err
				if err == nil {
					err = fmt.Errorf("no image")
				}
				return nil, fmt.Errorf("loading %s: %w", r.Name, err)
			}
			if r.Index < 0 || r.Index >= n {
				return nil, fmt.Errorf("loading %s: result index %d out of range", r.Name, r.Index)
			}
			out[r.Index] = r.Image
		}
	}
	return out, nil
}

// Loader decodes images on a bounded worker pool.
type Loader struct {
	manager *Manager
	pool    pond.Pool
	log     *zap.Logger
}

// NewLoader creates a loader with the given number of workers.
func NewLoader(m *Manager, workers int) *Loader {
	if workers < 1 {
		workers = 1
	}
	return &Loader{manager: m, pool: pond.NewPool(workers), log: logger.Named("assets")}
}

// Start queues every name for decoding. Each name yields exactly one result
// on the returned channel, which is buffered so workers never block.
func (l *Loader) Start(ctx context.Context, names []string) <-chan LoadResult {
	ch := make(chan LoadResult, len(names))
	for i, name := range names {
		l.pool.Submit(func() {
			ch <- l.decode(ctx, i, name)
		})
	}
	return ch
}

func (l *Loader) decode(ctx context.Context, index int, name string) LoadResult {
	if err := ctx.Err(); err != nil {
		return Failed(index, name, err)
	}
	data, err := l.manager.Load(name)
	if err != nil {
		return Failed(index, name, err)
	}
	img, err := texture.Decode(name, data)
	if err != nil {
		return Failed(index, name, err)
	}
	l.log.Debug("decoded",
		zap.String("name", name),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()))
	return Loaded(index, name, img)
}

// LoadAll decodes names concurrently and waits for all of them. A zero
// timeout waits forever.
func (l *Loader) LoadAll(ctx context.Context, names []string, timeout time.Duration) ([]*image.RGBA, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	start := time.Now()
	imgs, err := AwaitAll(ctx, l.Start(ctx, names), len(names))
	if err != nil {
		return nil, err
	}
	l.log.Info("loaded",
		zap.Int("count", len(names)),
		zap.Duration("elapsed", time.Since(start)))
	return imgs, nil
}

// Close waits for queued work and stops the workers.
func (l *Loader) Close() {
	l.pool.StopAndWait()
}

// LoadCube loads six faces, indexed by envmap.Face, into a static cube map.
func (l *Loader) LoadCube(ctx context.Context, faces [envmap.FaceCount]string, timeout time.Duration) (*envmap.CubeMap, error) {
	imgs, err := l.LoadAll(ctx, faces[:], timeout)
	if err != nil {
		return nil, err
	}
	var set [envmap.FaceCount]*image.RGBA
	copy(set[:], imgs)
	cube, err := envmap.NewStaticCube(set)
	if err != nil {
		return nil, fmt.Errorf("building cube map: %w", err)
	}
	return cube, nil
}

// LoadEquirect loads a single latitude-longitude image.
func (l *Loader) LoadEquirect(ctx context.Context, name string, timeout time.Duration) (*envmap.Equirect, error) {
	imgs, err := l.LoadAll(ctx, []string{name}, timeout)
	if err != nil {
		return nil, err
	}
	eq, err := envmap.NewEquirect(imgs[0])
	if err != nil {
		return nil, fmt.Errorf("building equirect map: %w", err)
	}
	return eq, nil
}
