package core

import "fmt"

// InvalidFieldNameError reports a source field name that is not usable text
// (empty or whitespace-only). It is fatal to that single field's resolution
// only; callers skip the column or substitute a placeholder and continue
// with the rest of the batch.
type InvalidFieldNameError struct {
	Name string
}

func (e *InvalidFieldNameError) Error() string {
	if e.Name == "" {
		return "invalid field name: empty"
	}
	return fmt.Sprintf("invalid field name %q", e.Name)
}

// ConfigLoadError reports a mapping-table source that is not valid
// structured data or is missing a required top-level key. It is fatal to
// the whole load: proceeding with a partially-loaded table would silently
// degrade classification.
type ConfigLoadError struct {
	Path string
	Err  error
}

func (e *ConfigLoadError) Error() string {
	return fmt.Sprintf("load mapping config %s: %v", e.Path, e.Err)
}

func (e *ConfigLoadError) Unwrap() error { return e.Err }
