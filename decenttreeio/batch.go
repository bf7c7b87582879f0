package decenttreeio

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/caseysm/decenttree/internal/dmerrors"
)

// Job describes one build step of a batch run: read a distance file,
// run one algorithm over it, write the resulting Newick tree out.
// Grounded on SPEC_FULL.md §4's placement of gopkg.in/yaml.v3 as the
// outer run-configuration format for a batch of
// (distance-file, algorithm, options) jobs — taxon names come from the
// distance file itself — a
// configuration-loading collaborator, not a core-scope concern, so it
// lives here rather than in registry.
type Job struct {
	Name         string `yaml:"name"`
	DistanceFile string `yaml:"distance_file"`
	OutputFile   string `yaml:"output_file"`
	Algorithm    string `yaml:"algorithm"`
	Precision    int    `yaml:"precision"`
	Threads      int    `yaml:"threads"`
	Verbosity    int    `yaml:"verbosity"`
	ZippedOutput bool   `yaml:"zipped_output"`
	Rooted       bool   `yaml:"rooted"`
	SubtreeOnly  bool   `yaml:"subtree_only"`
}

// BatchConfig is the top-level shape of a batch run-configuration file.
type BatchConfig struct {
	Jobs []Job `yaml:"jobs"`
}

// LoadBatchConfig reads and validates a YAML batch configuration file.
func LoadBatchConfig(path string) (*BatchConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg BatchConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, dmerrors.Newf(dmerrors.InputShape, "batch config %s: %v", path, err)
	}
	if len(cfg.Jobs) == 0 {
		return nil, dmerrors.Newf(dmerrors.InputShape, "batch config %s declares no jobs", path)
	}
	for i, job := range cfg.Jobs {
		if job.DistanceFile == "" {
			return nil, dmerrors.Newf(dmerrors.InputShape, "job %d: distance_file is required", i)
		}
		if job.Algorithm == "" {
			return nil, dmerrors.Newf(dmerrors.InputShape, "job %d: algorithm is required", i)
		}
		if job.Precision == 0 {
			cfg.Jobs[i].Precision = 6
		}
	}

	return &cfg, nil
}
