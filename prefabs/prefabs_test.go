package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadStationSpecEmbedded(t *testing.T) {
	withDir(t, t.TempDir())

	spec, err := LoadStationSpec()
	require.NoError(t, err)

	assert.Equal(t, 64.0, spec.TileSize)
	assert.Equal(t, 10, spec.Pathfinding.SnapRadius)
	assert.Equal(t, 200.0, spec.Player.Speed)
	assert.Equal(t, DurationRange{Min: 200 * time.Millisecond, Max: 400 * time.Millisecond}, spec.Agents.MoveInterval)
	assert.Equal(t, DurationRange{Min: 5 * time.Second, Max: 13 * time.Second}, spec.Dwell["researching"])
	assert.Equal(t, 5*time.Minute, spec.Chat.Expiry)
	assert.Equal(t, "arrival.tengo", spec.ArrivalScript)
}

func TestLoadStationSpecDiskOverride(t *testing.T) {
	dir := t.TempDir()
	withDir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, StationFile), []byte("name: Test Deck\ntile_size: 32\n"), 0o644))

	spec, err := LoadStationSpec()
	require.NoError(t, err)

	assert.Equal(t, "Test Deck", spec.Name)
	assert.Equal(t, 32.0, spec.TileSize)
	// unset fields fall back to defaults
	assert.Equal(t, 10, spec.Pathfinding.SnapRadius)
	assert.Equal(t, 8, spec.Agents.MaxAgents)
	assert.Equal(t, DefaultStationSpec().Dwell["resting"], spec.Dwell["resting"])
}

func TestLoadSpecErrors(t *testing.T) {
	dir := t.TempDir()
	withDir(t, dir)

	_, err := LoadSpec[StationSpec]("missing.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prefabs: load missing.yaml")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("agents: [1, 2"), 0o644))
	_, err = LoadSpec[StationSpec]("bad.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prefabs: unmarshal bad.yaml")
}

func TestDurationRange(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want DurationRange
		err  bool
	}{
		{name: "pair", in: "[3s, 8s]", want: DurationRange{Min: 3 * time.Second, Max: 8 * time.Second}},
		{name: "reversed", in: "[8s, 3s]", want: DurationRange{Min: 3 * time.Second, Max: 8 * time.Second}},
		{name: "scalar", in: "250ms", want: DurationRange{Min: 250 * time.Millisecond, Max: 250 * time.Millisecond}},
		{name: "three values", in: "[1s, 2s, 3s]", err: true},
		{name: "map", in: "{a: 1}", err: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got DurationRange
			err := yaml.Unmarshal([]byte(tc.in), &got)
			if tc.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	r := DurationRange{Min: 2 * time.Second, Max: 6 * time.Second}
	assert.Equal(t, 2*time.Second, r.Pick(0))
	assert.Equal(t, 4*time.Second, r.Pick(0.5))
	assert.Equal(t, time.Second, DurationRange{Min: time.Second}.Pick(0.9))
}

func TestLoadAgentsSpec(t *testing.T) {
	withDir(t, t.TempDir())

	spec, err := LoadAgentsSpec()
	require.NoError(t, err)

	assert.Len(t, spec.Names, 16)
	assert.Len(t, spec.Colors, 10)

	sci, ok := spec.Archetype("scientist")
	require.True(t, ok)
	assert.Equal(t, "research_lab", sci.Work)
	assert.Equal(t, 5, sci.Weights["research_lab"])

	eng, ok := spec.Archetype("engineer")
	require.True(t, ok)
	assert.Equal(t, 5, eng.Weights["engineering_bay"])
	assert.Equal(t, 2, eng.Weights["research_lab"])

	_, ok = spec.Archetype("stowaway")
	assert.False(t, ok)
}

func TestLoadScript(t *testing.T) {
	dir := t.TempDir()
	withDir(t, dir)

	for _, name := range []string{"arrival.tengo", "scripts/arrival.tengo", "prefabs/scripts/arrival.tengo"} {
		src, err := LoadScript(name)
		require.NoError(t, err, name)
		assert.Contains(t, string(src), "arrive :=")
	}

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "scripts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scripts", "arrival.tengo"), []byte("arrive := func(a, t) { return undefined }"), 0o644))
	src, err := LoadScript("arrival.tengo")
	require.NoError(t, err)
	assert.Equal(t, "arrive := func(a, t) { return undefined }", string(src))
}

func TestWatchedFiles(t *testing.T) {
	tests := map[string]bool{
		"prefabs/station.yaml":          true,
		"prefabs/agents.YML":            true,
		"prefabs/scripts/arrival.tengo": true,
		"levels/deck.json":              true,
		"prefabs/readme.md":             false,
		"prefabs/station.yaml~":         false,
	}
	for path, want := range tests {
		assert.Equal(t, want, Watched(path), path)
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	target := filepath.Join(dir, StationFile)
	require.NoError(t, os.WriteFile(target, []byte("name: x\n"), 0o644))

	select {
	case got := <-w.Events:
		assert.Equal(t, target, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no watcher event")
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())

	_, ok := <-w.Events
	assert.False(t, ok)
}

func withDir(t *testing.T, dir string) {
	t.Helper()
	prev := Dir
	Dir = dir
	t.Cleanup(func() { Dir = prev })
}
