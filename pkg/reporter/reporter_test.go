package reporter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anonproto/circuitsim/pkg/catalog"
	"github.com/anonproto/circuitsim/pkg/evaluator"
)

func buildReporterCatalog(t *testing.T) (*catalog.Catalog, catalog.DownloadHandle, catalog.CircuitHandle) {
	t.Helper()
	cat := catalog.New()
	g := cat.AddRelay("g", 1000)
	m := cat.AddRelay("m", 1000)
	x := cat.AddRelay("x-exit", 100)
	circ := cat.AddCircuit(g, m, x)
	dl, err := cat.AddDownload("alice", 0, 10000)
	require.NoError(t, err)
	_, err = cat.Build()
	require.NoError(t, err)
	return cat, dl, circ
}

func TestReporter_New_CreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	cat, _, _ := buildReporterCatalog(t)

	_, err := New(dir, cat, nil)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestReporter_WriteRound_FormatsLine(t *testing.T) {
	dir := t.TempDir()
	cat, dl, circ := buildReporterCatalog(t)
	r, err := New(dir, cat, nil)
	require.NoError(t, err)

	assignment := evaluator.Assignment{dl: circ}
	require.NoError(t, r.WriteRound(3, assignment, 1000, 1000))

	content, err := os.ReadFile(filepath.Join(dir, "round3.txt"))
	require.NoError(t, err)
	assert.Equal(t, "alice 0 10000 g m x-exit\n", string(content))
}

func TestReporter_WriteFinal_PartitionsByClientAndFormatsLine(t *testing.T) {
	dir := t.TempDir()
	cat := catalog.New()
	g := cat.AddRelay("g", 1000)
	m := cat.AddRelay("m", 1000)
	x := cat.AddRelay("x-exit", 100)
	circ := cat.AddCircuit(g, m, x)
	alice, err := cat.AddDownload("alice", 0, 10000)
	require.NoError(t, err)
	bob, err := cat.AddDownload("bob", 0, 10000)
	require.NoError(t, err)
	_, err = cat.Build()
	require.NoError(t, err)

	r, err := New(dir, cat, nil)
	require.NoError(t, err)

	assignment := evaluator.Assignment{alice: circ, bob: circ}
	require.NoError(t, r.WriteFinal(assignment))

	aliceContent, err := os.ReadFile(filepath.Join(dir, "alice.txt"))
	require.NoError(t, err)
	assert.Equal(t, "0 g,m,x-exit\n", string(aliceContent))

	bobContent, err := os.ReadFile(filepath.Join(dir, "bob.txt"))
	require.NoError(t, err)
	assert.Equal(t, "0 g,m,x-exit\n", string(bobContent))
}
