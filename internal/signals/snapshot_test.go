package signals

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadSnapshotFile tests parsing an offline snapshot file
func TestLoadSnapshotFile(t *testing.T) {
	const doc = `{
  "E0": {
    "Arsenal": [
      {"provider": "ratings", "rating": {"rating": 1905, "source": "elo"}},
      {"provider": "xg", "xg": {"season_xg_for": 2.1, "recent5_xg_for": 2.4}}
    ],
    "Chelsea": [
      {"provider": "injuries", "squad": {"score": 78, "key_absences": ["striker"]}}
    ]
  }
}`
	path := filepath.Join(t.TempDir(), "snapshots.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	src, err := LoadSnapshotFile(path)
	require.NoError(t, err)

	arsenal := src.TeamPayloads("E0", "Arsenal")
	require.Len(t, arsenal, 2)
	assert.Equal(t, ProviderRatings, arsenal[0].Provider)
	require.NotNil(t, arsenal[0].Rating)
	assert.Equal(t, 1905.0, arsenal[0].Rating.Rating)
	assert.Equal(t, "elo", arsenal[0].Rating.Source)
	require.NotNil(t, arsenal[1].XG)
	assert.Equal(t, 2.4, arsenal[1].XG.Recent5For)

	chelsea := src.TeamPayloads("E0", "Chelsea")
	require.Len(t, chelsea, 1)
	require.NotNil(t, chelsea[0].Squad)
	assert.Equal(t, []string{"striker"}, chelsea[0].Squad.KeyAbsences)

	assert.Nil(t, src.TeamPayloads("SP1", "Arsenal"))
}

// TestLoadSnapshotFileMissing tests the missing-file error
func TestLoadSnapshotFileMissing(t *testing.T) {
	_, err := LoadSnapshotFile(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

// TestLoadSnapshotFileMalformed tests the parse error
func TestLoadSnapshotFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := LoadSnapshotFile(path)
	assert.Error(t, err)
}
