package sim_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/bakermap/internal/baker"
	"github.com/san-kum/bakermap/internal/compute"
	"github.com/san-kum/bakermap/internal/frame"
	"github.com/san-kum/bakermap/internal/initial"
	"github.com/san-kum/bakermap/internal/sim"
)

type countingMetric struct {
	observed []int
}

func (c *countingMetric) Name() string { return "count" }
func (c *countingMetric) Observe(step int, f frame.Frame) {
	c.observed = append(c.observed, step)
}
func (c *countingMetric) Value() float64 { return float64(len(c.observed)) }
func (c *countingMetric) Reset()         { c.observed = nil }

func seedFrame(t *testing.T, dim int) frame.Frame {
	t.Helper()
	f, err := initial.Create(dim, initial.Random, initial.NewRand(11))
	require.NoError(t, err)
	return f
}

func TestGenerate_Length(t *testing.T) {
	f0 := seedFrame(t, 16)

	tests := []struct {
		name  string
		steps int
		want  int
	}{
		{"zero", 0, 0},
		{"negative", -2, 0},
		{"one", 1, 1},
		{"several", 6, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, v := range baker.Variants() {
				assert.Len(t, sim.Generate(f0, tt.steps, v), tt.want)
			}
		})
	}
}

func TestGenerate_FirstFrameUnchanged(t *testing.T) {
	f0 := seedFrame(t, 16)
	seq := sim.Generate(f0, 1, baker.Folded)
	require.Len(t, seq, 1)
	assert.True(t, seq[0].Equal(f0))
	assert.Equal(t, f0.Bytes(), seq[0].Bytes())
}

func TestGenerate_Chained(t *testing.T) {
	f0 := seedFrame(t, 16)
	for _, v := range baker.Variants() {
		seq := sim.Generate(f0, 5, v)
		for i := 1; i < len(seq); i++ {
			assert.True(t, seq[i].Equal(baker.Transform(seq[i-1], v)), "%s frame %d", v, i)
			assert.Equal(t, f0.Dim(), seq[i].Dim())
		}
	}
}

func TestGeneratorRun(t *testing.T) {
	f0 := seedFrame(t, 20)
	gen := sim.New(compute.NewSerialBackend())

	metric := &countingMetric{}
	var steps []int
	gen.AddMetric(metric)
	gen.AddObserver(sim.ObserverFunc(func(step int, f frame.Frame) {
		steps = append(steps, step)
	}))

	result, err := gen.Run(context.Background(), f0, sim.Config{Steps: 4, Variant: baker.Folded})
	require.NoError(t, err)
	assert.Equal(t, 4, result.StepsTaken)

	want := sim.Generate(f0, 4, baker.Folded)
	require.Len(t, result.Frames, len(want))
	for i := range want {
		assert.True(t, result.Frames[i].Equal(want[i]), "frame %d", i)
	}

	assert.Equal(t, []int{0, 1, 2, 3}, steps)
	assert.Equal(t, []int{0, 1, 2, 3}, metric.observed)
	assert.Equal(t, 4.0, result.Metrics["count"])
	assert.Equal(t, []float64{1, 2, 3, 4}, result.Series["count"])
}

func TestGeneratorRun_ResetsMetrics(t *testing.T) {
	f0 := seedFrame(t, 20)
	gen := sim.New(compute.NewSerialBackend())
	gen.AddMetric(&countingMetric{})

	cfg := sim.Config{Steps: 3, Variant: baker.Unfolded}
	_, err := gen.Run(context.Background(), f0, cfg)
	require.NoError(t, err)
	result, err := gen.Run(context.Background(), f0, cfg)
	require.NoError(t, err)
	assert.Equal(t, 3.0, result.Metrics["count"])
}

func TestGeneratorRun_ZeroSteps(t *testing.T) {
	gen := sim.New(compute.NewSerialBackend())
	result, err := gen.Run(context.Background(), frame.Frame{}, sim.Config{Steps: 0})
	require.NoError(t, err)
	assert.Empty(t, result.Frames)
}

func TestGeneratorRun_Invalid(t *testing.T) {
	f0 := seedFrame(t, 8)

	tests := []struct {
		name   string
		start  frame.Frame
		cfg    sim.Config
		target error
	}{
		{"negative steps", f0, sim.Config{Steps: -1}, sim.ErrInvalidSteps},
		{"unknown variant", f0, sim.Config{Steps: 2, Variant: baker.Variant(3)}, baker.ErrUnknownVariant},
		{"empty frame", frame.Frame{}, sim.Config{Steps: 2}, sim.ErrEmptyFrame},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := sim.New(compute.NewSerialBackend())
			_, err := gen.Run(context.Background(), tt.start, tt.cfg)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestGeneratorRun_Canceled(t *testing.T) {
	f0 := seedFrame(t, 20)
	gen := sim.New(compute.NewSerialBackend())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := gen.Run(ctx, f0, sim.Config{Steps: 5, Variant: baker.Unfolded})
	require.Error(t, err)
	assert.ErrorIs(t, err, sim.ErrCanceled)
	assert.ErrorIs(t, err, context.Canceled)

	var stepErr *sim.StepError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, 1, stepErr.Step)
	assert.Len(t, result.Frames, 1)
}

func TestLogObserver(t *testing.T) {
	f0 := seedFrame(t, 20)
	gen := sim.New(compute.NewSerialBackend())

	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	gen.AddObserver(&sim.LogObserver{Log: logger, Total: 3})

	_, err := gen.Run(context.Background(), f0, sim.Config{Steps: 3, Variant: baker.Folded})
	require.NoError(t, err)
	assert.Len(t, hook.AllEntries(), 3)
	assert.Equal(t, 2, hook.LastEntry().Data["step"])
}

func TestEnsemble(t *testing.T) {
	f0 := seedFrame(t, 12)
	ens := sim.NewEnsemble(func() *sim.Generator {
		g := sim.New(nil)
		g.AddMetric(&countingMetric{})
		return g
	})

	cfgs := []sim.Config{
		{Steps: 3, Variant: baker.Unfolded},
		{Steps: 5, Variant: baker.Folded},
	}
	results, err := ens.Run(context.Background(), f0, cfgs)
	require.NoError(t, err)
	require.Len(t, results, 2)

	for i, cfg := range cfgs {
		want := sim.Generate(f0, cfg.Steps, cfg.Variant)
		require.Len(t, results[i].Frames, cfg.Steps)
		assert.True(t, results[i].Frames[cfg.Steps-1].Equal(want[cfg.Steps-1]))
		assert.Equal(t, float64(cfg.Steps), results[i].Metrics["count"])
	}
}

func TestEnsemble_PropagatesFailure(t *testing.T) {
	ens := sim.NewEnsemble(func() *sim.Generator { return sim.New(nil) })
	_, err := ens.Run(context.Background(), seedFrame(t, 4), []sim.Config{{Steps: 2}, {Steps: -1}})
	assert.ErrorIs(t, err, sim.ErrInvalidSteps)
}
