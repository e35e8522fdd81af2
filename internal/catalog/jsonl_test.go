// Tests for JSONL persistence of snapshots.
package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/mirror/pkg/types"
)

func TestReadJSONL(t *testing.T) {
	tests := []struct {
		name    string
		content *string
		want    int
	}{
		{name: "missing file", content: nil, want: 0},
		{name: "empty file", content: ptr(""), want: 0},
		{name: "two records", content: ptr("{\"a\":1}\n{\"b\":2}\n"), want: 2},
		{name: "blank and malformed lines", content: ptr("{\"a\":1}\n\nnot json\n{\"b\":\n{\"c\":3}\n"), want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "data.jsonl")
			if tt.content != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tt.content), 0o644))
			}
			got, err := readJSONL(path)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestWriteJSONLAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{\"old\":true}\n"), 0o644))

	records := []json.RawMessage{json.RawMessage(`{"a":1}`), json.RawMessage(`{"b":2}`)}
	require.NoError(t, writeJSONL(path, records))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":1}\n{\"b\":2}\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), "temp file %s left behind", e.Name())
	}
}

func TestAppendSnapshotJSONL(t *testing.T) {
	dir := t.TempDir()

	for i, label := range []string{"one", "two"} {
		snap := snapshotJSON{
			SnapshotID: generateUUID(),
			Label:      label,
			CreatedAt:  "2026-03-01T12:00:00Z",
			Types:      sampleRecords()[:i+1],
		}
		require.NoError(t, appendSnapshotJSONL(dir, snap))
	}

	records, err := readJSONL(filepath.Join(dir, snapshotsFile))
	require.NoError(t, err)
	require.Len(t, records, 2)

	var second snapshotJSON
	require.NoError(t, json.Unmarshal(records[1], &second))
	assert.Equal(t, "two", second.Label)
	assert.Equal(t, sampleRecords(), second.Types)
}

func TestAttachSkipsBadSnapshots(t *testing.T) {
	dir := t.TempDir()
	good := generateUUID()

	lines := []string{
		`{"snapshot_id":"` + good + `","label":"good","created_at":"2026-03-01T12:00:00Z","types":[{"name":"Point","go_type":"sample.Point","factory":true}]}`,
		`not json`,
		`{"label":"no id"}`,
		// Same ID again violates the primary key and is dropped as a whole.
		`{"snapshot_id":"` + good + `","label":"dup","created_at":"2026-03-01T12:00:00Z","types":[{"name":"Other","go_type":"x.Other","factory":false}]}`,
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, snapshotsFile), []byte(strings.Join(lines, "\n")+"\n"), 0o644))

	b := attached(t, dir)

	snaps, err := b.Snapshots()
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Equal(t, "good", snaps[0].Label)

	got, err := b.Load(good)
	require.NoError(t, err)
	assert.Equal(t, []types.TypeRecord{{Name: "Point", GoType: "sample.Point", Factory: true}}, got)
}

func ptr(s string) *string { return &s }
