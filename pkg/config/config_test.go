package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "experiment.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validConfig = `
vertices: 100
timesteps: 8
labels: [movie, story]
class_dirs:
  movie: ./graphs/movie
  story: ./graphs/story
seed: 42
`

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, DetectorGreedyModularity, cfg.Detector)
	assert.Equal(t, 4, cfg.ScoreTimesteps, "K defaults to T/2")
	assert.Equal(t, "movie", cfg.TieLabel, "tie label defaults to the first label")
	assert.Equal(t, 0.8, cfg.TrainFraction)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_ExplicitValues(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
vertices: 10
timesteps: 4
score_timesteps: 3
labels: [movie, story]
tie_label: story
detector: label-propagation
train_fraction: 0.7
workers: 8
class_dirs:
  movie: ./m
  story: ./s
`))
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.ScoreTimesteps)
	assert.Equal(t, "story", cfg.TieLabel)
	assert.Equal(t, DetectorLabelPropagation, cfg.Detector)
	assert.Equal(t, 0.7, cfg.TrainFraction)

	det, err := cfg.BuildDetector()
	require.NoError(t, err)
	assert.Equal(t, "label-propagation", det.Name())
}

func TestLoad_RejectsScoreTimestepsAboveT(t *testing.T) {
	_, err := Load(writeConfig(t, `
vertices: 10
timesteps: 4
score_timesteps: 5
labels: [movie, story]
class_dirs:
  movie: ./m
  story: ./s
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "score_timesteps")
}

func TestLoad_RejectsDuplicateLabels(t *testing.T) {
	_, err := Load(writeConfig(t, `
vertices: 10
timesteps: 4
labels: [movie, movie]
class_dirs:
  movie: ./m
`))
	require.Error(t, err)
}

func TestLoad_RejectsTieLabelOutsidePair(t *testing.T) {
	_, err := Load(writeConfig(t, `
vertices: 10
timesteps: 4
labels: [movie, story]
tie_label: rest
class_dirs:
  movie: ./m
  story: ./s
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tie_label")
}

func TestLoad_RejectsMissingClassDir(t *testing.T) {
	_, err := Load(writeConfig(t, `
vertices: 10
timesteps: 4
labels: [movie, story]
class_dirs:
  movie: ./m
`))
	require.Error(t, err)
}

func TestLoad_RejectsUnknownDetector(t *testing.T) {
	_, err := Load(writeConfig(t, `
vertices: 10
timesteps: 4
labels: [movie, story]
detector: louvain
class_dirs:
  movie: ./m
  story: ./s
`))
	require.Error(t, err)
}

func TestLabelPairAndDirs(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	pair := cfg.LabelPair()
	assert.Equal(t, "movie", string(pair[0]))
	assert.Equal(t, "story", string(pair[1]))

	dirs := cfg.ClassDirectories()
	assert.Len(t, dirs, 2)
	assert.Equal(t, "./graphs/movie", dirs[pair[0]])
}
