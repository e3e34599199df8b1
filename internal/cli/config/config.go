// Package config provides layered configuration for the fieldmap CLI:
// defaults, fieldmap.yaml, FIELDMAP_* environment variables, then flags.
package config

// Default values applied before any config source is read.
const (
	DefaultMappingsDir = "field_mappings"
	DefaultOutputDir   = "output"
	DefaultStateFile   = ".fieldmap/state.db"
	DefaultTopN        = 10
	DefaultOutput      = "auto"
)

// Config holds all CLI configuration options.
type Config struct {
	MappingsDir  string `koanf:"mappings_dir"`
	OutputDir    string `koanf:"output_dir"`
	StatePath    string `koanf:"state_path"`
	TopN         int    `koanf:"topn"`
	Verbose      bool   `koanf:"verbose"`
	OutputFormat string `koanf:"output"`

	// ProjectRoot is derived, not read from any source; relative paths
	// resolve against it.
	ProjectRoot string `koanf:"-"`
}
