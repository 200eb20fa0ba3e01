package experiment

import (
	"context"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/bakermap/internal/baker"
	"github.com/san-kum/bakermap/internal/config"
	"github.com/san-kum/bakermap/internal/sim"
	"github.com/san-kum/bakermap/internal/storage"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Dim = 8
	cfg.Steps = 4
	cfg.Output = filepath.Join(dir, "out.gif")
	cfg.DataDir = filepath.Join(dir, "runs")
	cfg.Workers = 2
	return cfg
}

func runExperiment(t *testing.T, cfg *config.Config) (*Outcome, error) {
	t.Helper()
	exp := New(cfg, nil)
	require.NoError(t, exp.Setup(NewRegistry().DefaultMetrics()))
	return exp.Run(context.Background())
}

func TestRun_WritesGIF(t *testing.T) {
	cfg := testConfig(t)

	out, err := runExperiment(t, cfg)
	require.NoError(t, err)
	assert.Len(t, out.Result.Frames, 4)
	assert.Empty(t, out.RunID)

	f, err := os.Open(cfg.Output)
	require.NoError(t, err)
	defer f.Close()

	anim, err := gif.DecodeAll(f)
	require.NoError(t, err)
	assert.Len(t, anim.Image, 4)
	for _, d := range anim.Delay {
		assert.Equal(t, 10, d)
	}
	assert.Equal(t, image.Rect(0, 0, 8, 8), anim.Image[0].Bounds())

	for _, name := range []string{"entropy", "distinct", "segregation"} {
		assert.Len(t, out.Result.Series[name], 4, name)
	}
}

func TestRun_FoldedFlagSelectsVariant(t *testing.T) {
	cfg := testConfig(t)
	cfg.Folded = true
	cfg.Verbose = true

	exp := New(cfg, nil)
	assert.Equal(t, baker.Folded, exp.Variant())

	require.NoError(t, exp.Setup(nil))
	out, err := exp.Run(context.Background())
	require.NoError(t, err)

	expected := baker.Transform(out.Result.Frames[0], baker.Folded)
	assert.True(t, expected.Equal(out.Result.Frames[1]))
}

func TestRun_RandomIsSeeded(t *testing.T) {
	a := testConfig(t)
	a.Random = true
	a.Seed = 42
	b := testConfig(t)
	b.Random = true
	b.Seed = 42

	outA, err := runExperiment(t, a)
	require.NoError(t, err)
	outB, err := runExperiment(t, b)
	require.NoError(t, err)

	assert.True(t, outA.Result.Frames[0].Equal(outB.Result.Frames[0]))
}

func TestRun_InputImage(t *testing.T) {
	cfg := testConfig(t)
	path := filepath.Join(t.TempDir(), "seed.png")

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{G: 200, A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	cfg.Input = path
	out, err := runExperiment(t, cfg)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{G: 200, A: 255}, out.Result.Frames[0].Pixel(3, 3))
}

func TestRun_MissingInputWritesNothing(t *testing.T) {
	cfg := testConfig(t)
	cfg.Input = filepath.Join(t.TempDir(), "missing.png")

	_, err := runExperiment(t, cfg)
	require.Error(t, err)

	_, statErr := os.Stat(cfg.Output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_CanceledWritesNothing(t *testing.T) {
	cfg := testConfig(t)
	exp := New(cfg, nil)
	require.NoError(t, exp.Setup(nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := exp.Run(ctx)
	assert.ErrorIs(t, err, sim.ErrCanceled)

	_, statErr := os.Stat(cfg.Output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_ZeroSteps(t *testing.T) {
	cfg := testConfig(t)
	cfg.Steps = 0

	out, err := runExperiment(t, cfg)
	require.NoError(t, err)
	assert.Empty(t, out.Result.Frames)

	_, statErr := os.Stat(cfg.Output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_Record(t *testing.T) {
	cfg := testConfig(t)
	cfg.Record = true

	out, err := runExperiment(t, cfg)
	require.NoError(t, err)
	require.NotEmpty(t, out.RunID)

	st := storage.New(cfg.DataDir)
	meta, err := st.Load(out.RunID)
	require.NoError(t, err)
	assert.Equal(t, "unfolded", meta.Variant)
	assert.Equal(t, "split", meta.Mode)
	assert.Equal(t, 8, meta.Dim)

	series, err := st.LoadSeries(out.RunID)
	require.NoError(t, err)
	assert.Len(t, series["distinct"], 4)
}

func TestRun_NotSetup(t *testing.T) {
	_, err := New(testConfig(t), nil).Run(context.Background())
	assert.ErrorIs(t, err, ErrNotSetup)
}

func TestSetup_InvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Dim = 0
	assert.ErrorIs(t, New(cfg, nil).Setup(nil), config.ErrInvalidDimension)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t, []string{"folded", "unfolded"}, r.ListVariants())
	assert.Equal(t, []string{"random", "split"}, r.ListModes())
	assert.Equal(t, []string{"distinct", "entropy", "segregation"}, r.ListMetrics())
	assert.Len(t, r.ListPalettes(), 5)

	v, err := r.GetVariant("folded")
	require.NoError(t, err)
	assert.Equal(t, baker.Folded, v)

	_, err = r.GetVariant("twisted")
	assert.Error(t, err)
	_, err = r.GetMode("gradient")
	assert.Error(t, err)
	_, err = r.GetPalette("sepia")
	assert.Error(t, err)

	m, err := r.GetMetric("entropy")
	require.NoError(t, err)
	assert.Equal(t, "entropy", m.Name())

	assert.Len(t, r.DefaultMetrics(), 3)
}
