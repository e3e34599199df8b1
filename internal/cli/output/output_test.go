package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRenderer_AutoResolvesToMarkdownWhenPiped(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &buf, ModeAuto)
	assert.Equal(t, ModeMarkdown, r.Mode(), "a plain buffer is not a terminal")
}

func TestRenderer_Heading(t *testing.T) {
	var buf bytes.Buffer

	NewRenderer(&buf, &buf, ModeMarkdown).Heading("Results")
	assert.Equal(t, "## Results\n\n", buf.String())

	buf.Reset()
	NewRenderer(&buf, &buf, ModeText).Heading("Results")
	assert.Equal(t, "Results\n", buf.String())

	buf.Reset()
	NewRenderer(&buf, &buf, ModeJSON).Heading("Results")
	assert.Empty(t, buf.String())
}

func TestRenderer_Messages(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRenderer(&out, &errOut, ModeText)

	r.Successf("done %d", 3)
	r.Warnf("check %s", "x")
	r.Errorf("boom")

	assert.Contains(t, out.String(), "✓ done 3")
	assert.Contains(t, out.String(), "! check x")
	assert.Contains(t, errOut.String(), "boom")
}

func TestRenderer_JSONModeSuppressesProse(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &buf, ModeJSON)

	r.Infof("progress")
	r.Successf("done")
	require.NoError(t, r.JSON(map[string]int{"n": 1}))

	assert.JSONEq(t, `{"n": 1}`, buf.String())
}
