// Package report renders analysis results as JSON artifacts, HTML and
// Markdown reports, and console tables.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/leapstack-labs/fieldmap/pkg/core"
)

// WriteMappingArtifact emits the JSON field-mapping artifact: an array of
// mapping records in resolution order. The field set is a stable contract
// consumed by downstream ETL tooling.
func WriteMappingArtifact(w io.Writer, ms []core.FieldMapping) error {
	records := make([]core.MappingRecord, len(ms))
	for i, m := range ms {
		records[i] = m.Record()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// WriteMappingFile writes the mapping artifact to a file.
func WriteMappingFile(path string, ms []core.FieldMapping) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create mapping artifact: %w", err)
	}
	if err := WriteMappingArtifact(f, ms); err != nil {
		f.Close()
		return fmt.Errorf("write mapping artifact: %w", err)
	}
	return f.Close()
}

// ReadMappingArtifact loads a previously emitted mapping artifact, e.g.
// for re-validation.
func ReadMappingArtifact(path string) ([]core.MappingRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mapping artifact: %w", err)
	}
	var records []core.MappingRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse mapping artifact %s: %w", path, err)
	}
	return records, nil
}
