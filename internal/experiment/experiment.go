package experiment

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/bakermap/internal/baker"
	"github.com/san-kum/bakermap/internal/compute"
	"github.com/san-kum/bakermap/internal/config"
	"github.com/san-kum/bakermap/internal/export"
	"github.com/san-kum/bakermap/internal/frame"
	"github.com/san-kum/bakermap/internal/initial"
	"github.com/san-kum/bakermap/internal/input"
	"github.com/san-kum/bakermap/internal/sim"
	"github.com/san-kum/bakermap/internal/storage"
)

var ErrNotSetup = errors.New("experiment: not set up")

// Outcome is what a finished render produced.
type Outcome struct {
	Result *sim.Result
	Output string
	// RunID is empty unless the run was recorded.
	RunID string
}

type Experiment struct {
	cfg       *config.Config
	log       logrus.FieldLogger
	generator *sim.Generator
	store     *storage.Store
}

// New builds an experiment for cfg. A nil logger discards everything.
func New(cfg *config.Config, log logrus.FieldLogger) *Experiment {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Experiment{cfg: cfg, log: log}
}

// Setup creates the generator with the given metrics. Recording is enabled
// when the config asks for it.
func (e *Experiment) Setup(ms []sim.Metric) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	e.generator = sim.New(compute.ForWorkers(e.cfg.Workers))
	for _, m := range ms {
		e.generator.AddMetric(m)
	}
	e.generator.AddObserver(&sim.LogObserver{Log: e.log, Total: e.cfg.Steps})

	if e.cfg.Record {
		e.store = storage.New(e.cfg.DataDir)
		if err := e.store.Init(); err != nil {
			return fmt.Errorf("experiment: init store: %w", err)
		}
	}
	return nil
}

// Generator returns the underlying generator so callers can attach observers.
func (e *Experiment) Generator() *sim.Generator {
	return e.generator
}

func (e *Experiment) Variant() baker.Variant {
	return baker.VariantFromFolded(e.cfg.Folded)
}

func (e *Experiment) Mode() initial.Mode {
	return initial.ModeFromRandom(e.cfg.Random)
}

// Initial builds frame 0 from the input image when one is configured,
// otherwise from the synthetic initializer.
func (e *Experiment) Initial() (frame.Frame, error) {
	if e.cfg.Input != "" {
		e.log.WithField("path", e.cfg.Input).Debug("loading input image")
		return input.Load(e.cfg.Input, e.cfg.Dim)
	}
	return initial.Create(e.cfg.Dim, e.Mode(), initial.NewRand(e.cfg.Seed))
}

// Run renders the configured sequence and writes the GIF. Nothing is written
// when any earlier stage fails.
func (e *Experiment) Run(ctx context.Context) (*Outcome, error) {
	if e.generator == nil {
		return nil, ErrNotSetup
	}

	palette, err := export.ParsePaletteMethod(e.cfg.GIF.Palette)
	if err != nil {
		return nil, err
	}

	start, err := e.Initial()
	if err != nil {
		return nil, err
	}

	e.log.WithFields(logrus.Fields{
		"dim":     e.cfg.Dim,
		"steps":   e.cfg.Steps,
		"variant": e.Variant(),
		"mode":    e.Mode(),
		"palette": palette,
	}).Debug("starting render")

	result, err := e.generator.Run(ctx, start, sim.Config{Steps: e.cfg.Steps, Variant: e.Variant()})
	if err != nil {
		return nil, err
	}

	out := &Outcome{Result: result, Output: e.cfg.Output}
	if len(result.Frames) == 0 {
		e.log.Warn("no frames requested, nothing written")
		return out, nil
	}

	opts := export.DefaultGIFOptions()
	opts.Delay = e.cfg.GIF.Delay
	opts.Palette = palette
	opts.Dither = e.cfg.GIF.Dither
	if err := export.WriteGIF(e.cfg.Output, result.Frames, opts); err != nil {
		return nil, err
	}
	e.log.WithField("path", e.cfg.Output).Debug("gif written")

	if e.store != nil {
		mode := e.Mode().String()
		if e.cfg.Input != "" {
			mode = "image"
		}
		id, err := e.store.Save(storage.RunMetadata{
			Variant: e.Variant().String(),
			Mode:    mode,
			Input:   e.cfg.Input,
			Dim:     e.cfg.Dim,
			Steps:   e.cfg.Steps,
			Seed:    e.cfg.Seed,
			Output:  e.cfg.Output,
			Palette: palette.String(),
		}, result)
		if err != nil {
			return out, fmt.Errorf("experiment: record run: %w", err)
		}
		out.RunID = id
		e.log.WithField("run", id).Debug("run recorded")
	}

	return out, nil
}
