package table

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/fieldmap/pkg/core"
)

func writeTable(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const baseTable = `{
  "domain": "auto_insurance",
  "description": "base table",
  "mappings": {
    "保单号": {"en_name": "policy_number", "group": "policy", "dtype": "string"},
    "保费":  {"en_name": "premium", "group": "finance", "dtype": "number"}
  }
}`

const overrideTable = `{
  "domain": "regional",
  "mappings": {
    "保费": {"en_name": "premium_cny", "group": "finance", "dtype": "number"}
  }
}`

func TestStore_LoadMergeOrder(t *testing.T) {
	dir := t.TempDir()
	base := writeTable(t, dir, "10_base.json", baseTable)
	override := writeTable(t, dir, "20_region.json", overrideTable)

	s := NewStore(nil)
	require.NoError(t, s.Load(base, override))

	e, ok := s.Get("保单号")
	require.True(t, ok)
	assert.Equal(t, "policy_number", e.EnName)

	// Later source wins the collision.
	e, ok = s.Get("保费")
	require.True(t, ok)
	assert.Equal(t, "premium_cny", e.EnName)

	p, ok := s.Provenance("保费")
	require.True(t, ok)
	assert.Equal(t, override, p)
}

func TestStore_BuiltinLowestPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := writeTable(t, dir, "custom_premium.json", overrideTable)

	builtin := map[string]core.MappingEntry{
		"保费": {EnName: "premium", Group: core.GroupFinance, DType: core.DTypeNumber},
		"赔款": {EnName: "claim_amount", Group: core.GroupFinance, DType: core.DTypeNumber},
	}
	s := NewStore(builtin)
	require.NoError(t, s.Load(path))

	e, _ := s.Get("保费")
	assert.Equal(t, "premium_cny", e.EnName, "file overrides builtin")

	e, _ = s.Get("赔款")
	assert.Equal(t, "claim_amount", e.EnName, "builtin survives where no file collides")

	p, _ := s.Provenance("赔款")
	assert.Equal(t, BuiltinSource, p)
}

func TestStore_LoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"malformed json", `{"domain": "x", "mappings": `},
		{"missing mappings", `{"domain": "x"}`},
		{"missing domain", `{"mappings": {}}`},
		{"unknown dtype", `{"domain": "x", "mappings": {
			"保单号": {"en_name": "policy_number", "group": "policy", "dtype": "integer"}}}`},
		{"unknown group", `{"domain": "x", "mappings": {
			"保单号": {"en_name": "policy_number", "group": "weird_group", "dtype": "string"}}}`},
		{"empty en_name", `{"domain": "x", "mappings": {
			"保单号": {"en_name": "  ", "group": "policy", "dtype": "string"}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTable(t, dir, tt.name+".json", tt.content)

			s := NewStore(nil)
			err := s.Load(path)
			var cfgErr *core.ConfigLoadError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, path, cfgErr.Path)
			assert.Zero(t, s.Len(), "failed load must not leave partial state")
		})
	}
}

func TestStore_LoadAllOrNothing(t *testing.T) {
	dir := t.TempDir()
	good := writeTable(t, dir, "good.json", baseTable)
	bad := writeTable(t, dir, "bad.json", `not json`)

	s := NewStore(nil)
	require.Error(t, s.Load(good, bad))
	assert.Zero(t, s.Len())
}

func TestStore_LoadDir(t *testing.T) {
	dir := t.TempDir()
	writeTable(t, dir, "10_base.json", baseTable)
	writeTable(t, dir, "notes.txt", "ignored")
	writeTable(t, dir, CustomFileName, `{
  "domain": "custom",
  "mappings": {"保费": {"en_name": "premium_custom", "group": "finance", "dtype": "number"}}
}`)

	s := NewStore(nil)
	require.NoError(t, s.LoadDir(dir))

	// custom.json merges last regardless of lexical position.
	e, _ := s.Get("保费")
	assert.Equal(t, "premium_custom", e.EnName)

	srcs := s.Sources()
	require.Len(t, srcs, 2)
	assert.True(t, srcs[len(srcs)-1].Writable)
}

func TestStore_LoadDirMissing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "absent")

	s := NewStore(nil)
	require.NoError(t, s.LoadDir(dir))
	assert.Zero(t, s.Len())

	// Learn still works: the custom source is registered even without a
	// file on disk.
	err := s.Learn("新字段", core.MappingEntry{
		EnName: "new_field_name", Group: core.GroupGeneral, DType: core.DTypeString,
	})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, CustomFileName))
}

func TestStore_LearnRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(nil)
	require.NoError(t, s.LoadDir(dir))

	fixed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	entry := core.MappingEntry{
		EnName:      "dealer_group",
		Group:       core.GroupPartner,
		DType:       core.DTypeString,
		Description: "4S集团 (learned)",
	}
	require.NoError(t, s.Learn("4S集团", entry))

	got, ok := s.Get("4S集团")
	require.True(t, ok)
	assert.Equal(t, entry, got)

	// A fresh store reading the same directory sees the learned entry and
	// its history.
	reloaded := NewStore(nil)
	require.NoError(t, reloaded.LoadDir(dir))

	got, ok = reloaded.Get("4S集团")
	require.True(t, ok)
	assert.Equal(t, entry, got)

	custom := reloaded.Sources()[len(reloaded.Sources())-1]
	require.Len(t, custom.LearnHistory, 1)
	rec := custom.LearnHistory[0]
	assert.Equal(t, "4S集团", rec.SourceName)
	assert.Equal(t, "dealer_group", rec.CanonicalName)
	assert.Equal(t, "partner", rec.Group)
	assert.True(t, rec.LearnedAt.Equal(fixed))
}

func TestStore_LearnAppendsHistory(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(nil)
	require.NoError(t, s.LoadDir(dir))

	require.NoError(t, s.Learn("字段一", core.MappingEntry{EnName: "one", Group: core.GroupGeneral, DType: core.DTypeString}))
	require.NoError(t, s.Learn("字段二", core.MappingEntry{EnName: "two", Group: core.GroupGeneral, DType: core.DTypeString}))
	require.NoError(t, s.Learn("字段一", core.MappingEntry{EnName: "one_fixed", Group: core.GroupGeneral, DType: core.DTypeString}))

	custom := s.Sources()[len(s.Sources())-1]
	assert.Len(t, custom.LearnHistory, 3, "history is append-only")
	assert.Len(t, custom.Entries, 2, "mappings keep only the latest entry per name")

	got, _ := s.Get("字段一")
	assert.Equal(t, "one_fixed", got.EnName)
}

func TestStore_LearnWithoutWritableSource(t *testing.T) {
	s := NewStore(nil)
	err := s.Learn("x", core.MappingEntry{EnName: "x"})
	assert.Error(t, err)
}
