package iometrics_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toc2me/polcat/internal/iometrics"
	"github.com/toc2me/polcat/pkg/polarity"
)

func TestObserveCatalog(t *testing.T) {
	m := iometrics.New()
	cat := &polarity.Catalog{
		Format: polarity.HASH1,
		Events: make([]polarity.CatalogEvent, 2),
		Picks:  make([]polarity.PolarityPick, 5),
	}
	cat.Report.Drop(polarity.DropZeroWeight)
	cat.Report.Drop(polarity.DropZeroWeight)
	cat.Report.Drop(polarity.DropOrphan)

	m.ObserveCatalog(cat)
	m.ObserveCatalog(cat)
	m.ObserveFailure("hash2")

	assert.Equal(t, 2.0,
		testutil.ToFloat64(m.Files.WithLabelValues("hash1", iometrics.StatusOK)))
	assert.Equal(t, 1.0,
		testutil.ToFloat64(m.Files.WithLabelValues("hash3", iometrics.StatusFailed)))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.Events.WithLabelValues("hash1")))
	assert.Equal(t, 10.0, testutil.ToFloat64(m.Picks.WithLabelValues("hash1")))
	assert.Equal(t, 4.0,
		testutil.ToFloat64(m.Dropped.WithLabelValues("hash1", "zero_weight")))
	assert.Equal(t, 2.0,
		testutil.ToFloat64(m.Dropped.WithLabelValues("hash1", "orphan")))
}

func TestWriteTextfile(t *testing.T) {
	m := iometrics.New()
	m.ObserveFailure("quakeml")
	m.ObserveDuration(2 * time.Second)

	path := filepath.Join(t.TempDir(), "polcat.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data),
		`polcat_files_total{format="quakeml",status="failed"} 1`)
	assert.Contains(t, string(data), "polcat_batch_duration_seconds_count 1")
}

func TestWriteTextfileError(t *testing.T) {
	m := iometrics.New()
	path := filepath.Join(t.TempDir(), "missing", "polcat.prom")
	err := m.WriteTextfile(path)
	require.Error(t, err)
}
