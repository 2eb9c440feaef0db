package main

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-haloscope/model"
)

func TestRunWritesFigures(t *testing.T) {
	out := t.TempDir()

	cfg := config{
		Center:   1.05e9,
		Ref:      1,
		Span:     4e5,
		Points:   201,
		Noise:    1e-6,
		Seed:     5,
		Shape:    model.ShapeGaussian,
		X0Bins:   20,
		InjectMu: 2e-5,
		MuInit:   1e-5,
		MuVary:   true,
		MaxIter:  100,
		OutDir:   out,
		Format:   "png",
		LogLevel: "info",
	}

	var buf bytes.Buffer
	require.NoError(t, run(cfg, zerolog.New(&buf)))

	runs, err := os.ReadDir(out)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.True(t, runs[0].IsDir())

	files, err := filepath.Glob(filepath.Join(out, runs[0].Name(), "*.png"))
	require.NoError(t, err)

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = filepath.Base(f)

		info, err := os.Stat(f)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}

	sort.Strings(names)
	assert.Equal(t, []string{
		"bkg_band.png",
		"bkg_overview.png",
		"signal_gauss_band.png",
		"signal_gauss_overview.png",
	}, names)

	logs := buf.String()
	assert.Contains(t, logs, `"durbin_watson":`)
	assert.Contains(t, logs, `"acf_lag1":`)
	assert.Contains(t, logs, `"message":"figures written"`)
}
