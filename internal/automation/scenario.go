package automation

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/bakermap/internal/config"
	"github.com/san-kum/bakermap/internal/experiment"
)

// Scenario is a batch of renders described in one YAML file.
type Scenario struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Renders     []Render `yaml:"renders"`
}

// Render is one entry of a scenario. Keys left out keep their defaults.
type Render struct {
	Config *config.Config
}

func (r *Render) UnmarshalYAML(node *yaml.Node) error {
	cfg := config.DefaultConfig()
	if err := node.Decode(cfg); err != nil {
		return err
	}
	r.Config = cfg
	return nil
}

func (r Render) MarshalYAML() (interface{}, error) {
	return r.Config, nil
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("automation: parse %s: %w", path, err)
	}
	for i, r := range scenario.Renders {
		if err := r.Config.Validate(); err != nil {
			return nil, fmt.Errorf("render %d: %w", i+1, err)
		}
	}
	return &scenario, nil
}

// RunScenario renders every entry in order and stops at the first failure,
// returning the outcomes produced so far.
func RunScenario(ctx context.Context, scenario *Scenario, log logrus.FieldLogger) ([]*experiment.Outcome, error) {
	registry := experiment.NewRegistry()
	outcomes := make([]*experiment.Outcome, 0, len(scenario.Renders))

	for i, r := range scenario.Renders {
		if log != nil {
			log.WithFields(logrus.Fields{
				"render": i + 1,
				"total":  len(scenario.Renders),
				"output": r.Config.Output,
			}).Info("rendering")
		}

		exp := experiment.New(r.Config, log)
		if err := exp.Setup(registry.DefaultMetrics()); err != nil {
			return outcomes, fmt.Errorf("render %d setup: %w", i+1, err)
		}
		out, err := exp.Run(ctx)
		if err != nil {
			return outcomes, fmt.Errorf("render %d: %w", i+1, err)
		}
		outcomes = append(outcomes, out)
	}

	return outcomes, nil
}
