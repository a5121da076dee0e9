package demodata

import (
	"math/rand/v2"
	"path/filepath"
	"testing"
	"time"

	"github.com/cvsuagritech/agrisight-go/internal/conf"
	"github.com/cvsuagritech/agrisight-go/internal/datastore"
	"github.com/cvsuagritech/agrisight-go/internal/logging"
	"github.com/cvsuagritech/agrisight-go/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) datastore.Interface {
	t.Helper()
	datastore.SetLogger(logging.ForService("datastore"))

	settings := &conf.Settings{}
	settings.Database.SQLite.Enabled = true
	settings.Database.SQLite.Path = filepath.Join(t.TempDir(), "agrisight.db")

	store := datastore.New(settings)
	require.NoError(t, store.Open())
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSeedPopulatesStore(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	seeded, err := SeedWithRand(store, "AgriSight System", rand.New(rand.NewPCG(7, 0)))
	require.NoError(t, err)
	assert.True(t, seeded)

	count, err := store.CountCropHealthRecords()
	require.NoError(t, err)
	assert.Equal(t, int64(sampleRecordCount), count)

	records, err := store.GetAllCropHealthRecords()
	require.NoError(t, err)
	for _, rec := range records {
		assert.True(t, rec.HealthStatus.Valid())
		assert.Equal(t, sampleNotes[rec.HealthStatus], rec.Notes)

		// Every record gets the recommendations its diagnosis calls for.
		recs, err := store.GetTreatmentRecommendationsByRecordID(rec.ID)
		require.NoError(t, err)
		assert.NotEmpty(t, recs, "record %d (%s)", rec.ID, rec.HealthStatus)
		for _, r := range recs {
			assert.Equal(t, rec.ID, r.CropHealthRecordID)
			assert.WithinDuration(t, rec.Timestamp, r.Timestamp, time.Second)
		}
	}

	reports, err := store.GetAllLGUReports()
	require.NoError(t, err)
	require.Len(t, reports, sampleReportCount)
	for _, rep := range reports {
		assert.Equal(t, model.ReportTypeWeekly, rep.ReportType)
		assert.Equal(t, "AgriSight System", rep.GeneratedBy)
		assert.Equal(t, rep.TotalRecords, rep.HealthyCrops+rep.IssueCount())
		assert.True(t, rep.RiskLevel.Valid())
		assert.False(t, rep.Synced)
		assert.NotEmpty(t, rep.Recommendations)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	seeded, err := SeedWithRand(store, "AgriSight System", rand.New(rand.NewPCG(7, 0)))
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = SeedWithRand(store, "AgriSight System", rand.New(rand.NewPCG(8, 0)))
	require.NoError(t, err)
	assert.False(t, seeded)

	count, err := store.CountCropHealthRecords()
	require.NoError(t, err)
	assert.Equal(t, int64(sampleRecordCount), count)

	reports, err := store.GetAllLGUReports()
	require.NoError(t, err)
	assert.Len(t, reports, sampleReportCount)
}
