// CLI integration tests for mirror.
package integration

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/mirror/pkg/types"
)

// TestMain builds the mirror binary once before running tests.
func TestMain(m *testing.M) {
	root, err := FindProjectRoot()
	if err != nil {
		buildErr = err
		os.Exit(m.Run())
	}

	tmpDir, err := os.MkdirTemp("", "mirror-test-*")
	if err != nil {
		buildErr = err
		os.Exit(m.Run())
	}
	mirrorBin = filepath.Join(tmpDir, "mirror")

	cmd := exec.Command("go", "build", "-o", mirrorBin, "./cmd/mirror")
	cmd.Dir = root
	if output, err := cmd.CombinedOutput(); err != nil {
		buildErr = &BuildError{Err: err, Output: string(output)}
	}

	code := m.Run()
	os.RemoveAll(tmpDir)
	os.Exit(code)
}

func TestInitCreatesCatalog(t *testing.T) {
	env := NewTestEnv(t)

	r := env.MustRun("init")
	assert.Contains(t, r.Stdout, "catalog initialized in "+env.DataDir)
	assert.FileExists(t, filepath.Join(env.DataDir, "catalog.db"))
	assert.NotContains(t, r.Stdout, "wrote", "existing config.yaml must be kept")
}

func TestSnapshotsSurviveRestart(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRun("init")

	first := strings.TrimSpace(env.MustRun("export", "--label", "one").Stdout)
	second := strings.TrimSpace(env.MustRun("export", "--label", "two").Stdout)
	require.NotEqual(t, first, second)

	// Each invocation is a new process; the catalog is rebuilt from JSONL.
	assert.FileExists(t, filepath.Join(env.DataDir, "snapshots.jsonl"))
	snaps := ParseJSON[[]types.Snapshot](t, env.MustRun("--json", "snapshots").Stdout)
	require.Len(t, snaps, 2)
	assert.ElementsMatch(t, []string{first, second}, []string{snaps[0].SnapshotID, snaps[1].SnapshotID})

	records := ParseJSON[[]types.TypeRecord](t, env.MustRun("--json", "snapshots", first).Stdout)
	var names []string
	for _, r := range records {
		names = append(names, r.Name)
	}
	assert.Subset(t, names, []string{"Point", "Point3D", "Polar", "Rect", "Celsius", "Fahrenheit", "Shape"})
}

func TestExitCodes(t *testing.T) {
	env := NewTestEnv(t)

	tests := []struct {
		name string
		args []string
		want int
	}{
		{name: "success", args: []string{"version"}, want: 0},
		{name: "unknown command", args: []string{"frobnicate"}, want: 1},
		{name: "unknown type", args: []string{"show", "Nope"}, want: 1},
		{name: "missing snapshot", args: []string{"snapshots", "0190f5c2-0000-7000-8000-000000000000"}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := env.Run(tt.args...)
			assert.Equal(t, tt.want, r.ExitCode, r.Stderr)
		})
	}
}
