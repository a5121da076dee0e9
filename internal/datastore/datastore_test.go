package datastore

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/cvsuagritech/agrisight-go/internal/conf"
	"github.com/cvsuagritech/agrisight-go/internal/errors"
	"github.com/cvsuagritech/agrisight-go/internal/logging"
	"github.com/cvsuagritech/agrisight-go/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore opens a SQLite store on a temporary file. The package logger is
// pinned to the service logger first so tests never touch the log directory or
// the global configuration.
func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	loggerOnce.Do(func() {
		logger = logging.ForService(serviceName)
		closeLogger = func() error { return nil }
	})

	settings := &conf.Settings{}
	settings.Database.SQLite.Enabled = true
	settings.Database.SQLite.Path = filepath.Join(t.TempDir(), "agrisight.db")

	store := &SQLiteStore{Settings: settings}
	require.NoError(t, store.Open())
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleRecord() *model.CropHealthRecord {
	return &model.CropHealthRecord{
		CropType:            "Rice",
		HealthStatus:        model.HealthStatusPestDamage,
		Confidence:          0.82,
		GrowthStage:         model.GrowthStageVegetative,
		Location:            "Poblacion",
		Notes:               "Brown planthopper spotted near the irrigation canal",
		SustainabilityScore: 0.4,
		Timestamp:           time.Date(2025, 5, 10, 9, 30, 0, 0, time.UTC),
	}
}

func TestSaveAndGetCropHealthRecord(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	rec := sampleRecord()
	id, err := store.SaveCropHealthRecord(rec)
	require.NoError(t, err)
	require.NotZero(t, id)

	got, err := store.GetCropHealthRecord(id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec.CropType, got.CropType)
	assert.Equal(t, model.HealthStatusPestDamage, got.HealthStatus)
	assert.InDelta(t, 0.82, got.Confidence, 1e-9)
	assert.Equal(t, model.GrowthStageVegetative, got.GrowthStage)
	assert.Equal(t, "Poblacion", got.Location)
	assert.Equal(t, rec.Notes, got.Notes)
	assert.InDelta(t, 0.4, got.SustainabilityScore, 1e-9)
	assert.WithinDuration(t, rec.Timestamp, got.Timestamp, time.Second)
}

func TestSaveClampsScoresAndDefaults(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	id, err := store.SaveCropHealthRecord(&model.CropHealthRecord{
		HealthStatus:        model.HealthStatusHealthy,
		GrowthStage:         model.GrowthStageSeedling,
		Confidence:          1.7,
		SustainabilityScore: -0.3,
	})
	require.NoError(t, err)

	got, err := store.GetCropHealthRecord(id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Rice", got.CropType)
	assert.Equal(t, 1.0, got.Confidence)
	assert.Equal(t, 0.0, got.SustainabilityScore)
	assert.False(t, got.Timestamp.IsZero())
}

func TestGetCropHealthRecordAbsent(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	got, err := store.GetCropHealthRecord(12345)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetAllCropHealthRecordsOrdering(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	base := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	older := sampleRecord()
	older.Timestamp = base.Add(-48 * time.Hour)
	newer := sampleRecord()
	newer.Timestamp = base

	// Two records sharing the newest timestamp; the later insert wins the tie.
	tiedFirst := sampleRecord()
	tiedFirst.Timestamp = base
	tiedSecond := sampleRecord()
	tiedSecond.Timestamp = base

	olderID, err := store.SaveCropHealthRecord(older)
	require.NoError(t, err)
	_, err = store.SaveCropHealthRecord(newer)
	require.NoError(t, err)
	tiedFirstID, err := store.SaveCropHealthRecord(tiedFirst)
	require.NoError(t, err)
	tiedSecondID, err := store.SaveCropHealthRecord(tiedSecond)
	require.NoError(t, err)

	records, err := store.GetAllCropHealthRecords()
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, tiedSecondID, records[0].ID)
	assert.Equal(t, tiedFirstID, records[1].ID)
	assert.Equal(t, olderID, records[3].ID)
}

func TestUpdateCropHealthRecord(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	rec := sampleRecord()
	id, err := store.SaveCropHealthRecord(rec)
	require.NoError(t, err)

	rec.Notes = "Treated with neem oil"
	rec.Confidence = 2.5 // clamped on update
	updated, err := store.UpdateCropHealthRecord(rec)
	require.NoError(t, err)
	assert.True(t, updated)

	got, err := store.GetCropHealthRecord(id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Treated with neem oil", got.Notes)
	assert.Equal(t, 1.0, got.Confidence)
}

func TestUpdateCropHealthRecordNonexistent(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	updated, err := store.UpdateCropHealthRecord(&model.CropHealthRecord{
		ID:           9999,
		HealthStatus: model.HealthStatusHealthy,
		GrowthStage:  model.GrowthStageSeedling,
	})
	require.NoError(t, err)
	assert.False(t, updated)

	// A zero identifier is a caller bug, not a miss.
	_, err = store.UpdateCropHealthRecord(&model.CropHealthRecord{})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestDeleteCropHealthRecord(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	id, err := store.SaveCropHealthRecord(sampleRecord())
	require.NoError(t, err)

	deleted, err := store.DeleteCropHealthRecord(id)
	require.NoError(t, err)
	assert.True(t, deleted)

	got, err := store.GetCropHealthRecord(id)
	require.NoError(t, err)
	assert.Nil(t, got)

	deleted, err = store.DeleteCropHealthRecord(id)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestDeleteAllCropHealthRecords(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	for i := 0; i < 5; i++ {
		_, err := store.SaveCropHealthRecord(sampleRecord())
		require.NoError(t, err)
	}

	count, err := store.DeleteAllCropHealthRecords()
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)

	remaining, err := store.CountCropHealthRecords()
	require.NoError(t, err)
	assert.Zero(t, remaining)

	// Deleting an empty table is not an error.
	count, err = store.DeleteAllCropHealthRecords()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGetCropHealthRecordsByLocation(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	base := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, loc := range []string{"Poblacion", "Poblacion", "San Jose"} {
		rec := sampleRecord()
		rec.Location = loc
		rec.Timestamp = base.Add(time.Duration(i) * time.Hour)
		_, err := store.SaveCropHealthRecord(rec)
		require.NoError(t, err)
	}

	records, err := store.GetCropHealthRecordsByLocation("Poblacion", time.Time{})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[0].Timestamp.After(records[1].Timestamp))

	// The since filter is inclusive.
	records, err = store.GetCropHealthRecordsByLocation("Poblacion", base.Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, records, 1)

	records, err = store.GetCropHealthRecordsByLocation("Santa Maria", time.Time{})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLegacyEnumNormalizationOnRead(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	rec := sampleRecord()
	rec.HealthStatus = "PEST_INFESTATION" // v1 spelling
	id, err := store.SaveCropHealthRecord(rec)
	require.NoError(t, err)

	got, err := store.GetCropHealthRecord(id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, model.HealthStatusPestDamage, got.HealthStatus)

	// Unknown spellings come back as the default member, never as an error.
	require.NoError(t, store.DB.Model(&model.CropHealthRecord{}).
		Where("id = ?", id).Update("health_status", "SOMETHING_ELSE").Error)
	got, err = store.GetCropHealthRecord(id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, model.DefaultHealthStatus, got.HealthStatus)
}

func TestSaveTreatmentRecommendations(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	recordID, err := store.SaveCropHealthRecord(sampleRecord())
	require.NoError(t, err)

	at := time.Date(2025, 5, 10, 10, 0, 0, 0, time.UTC)
	recs := []model.TreatmentRecommendation{
		{
			CropHealthRecordID:  recordID,
			TreatmentType:       model.TreatmentTypeBiological,
			Title:               "Beneficial Insects",
			Description:         "Release natural predators",
			Instructions:        "Release during early morning",
			SustainabilityLevel: model.SustainabilityHigh,
			Effectiveness:       0.70,
			Cost:                80,
			TimeToApply:         "1-2 weeks",
			Timestamp:           at,
		},
		{
			CropHealthRecordID:  recordID,
			TreatmentType:       model.TreatmentTypeCultural,
			Title:               "Crop Rotation & Sanitation",
			Description:         "Remove affected plants",
			Instructions:        "Remove and destroy affected material",
			SustainabilityLevel: model.SustainabilityHigh,
			Effectiveness:       0.65,
			Cost:                20,
			TimeToApply:         "Immediate",
			Timestamp:           at.Add(time.Minute),
		},
	}
	require.NoError(t, store.SaveTreatmentRecommendations(recs))

	got, err := store.GetTreatmentRecommendationsByRecordID(recordID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Newest first.
	assert.Equal(t, "Crop Rotation & Sanitation", got[0].Title)
	assert.Equal(t, "Beneficial Insects", got[1].Title)
	assert.False(t, got[0].Applied)

	other, err := store.GetTreatmentRecommendationsByRecordID(recordID + 1)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestMarkTreatmentAppliedOneWay(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	id, err := store.SaveTreatmentRecommendation(&model.TreatmentRecommendation{
		CropHealthRecordID:  1,
		TreatmentType:       model.TreatmentTypeCultural,
		Title:               "Soil Amendment",
		Description:         "Apply organic compost",
		Instructions:        "Incorporate into topsoil",
		SustainabilityLevel: model.SustainabilityHigh,
		Effectiveness:       0.75,
		Cost:                50,
		TimeToApply:         "2-4 weeks",
	})
	require.NoError(t, err)

	appliedAt := time.Date(2025, 5, 12, 7, 0, 0, 0, time.UTC)
	applied, err := store.MarkTreatmentApplied(id, appliedAt, "Visible improvement after two weeks")
	require.NoError(t, err)
	assert.True(t, applied)

	got, err := store.GetTreatmentRecommendationsByRecordID(1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Applied)
	require.NotNil(t, got[0].AppliedAt)
	assert.WithinDuration(t, appliedAt, *got[0].AppliedAt, time.Second)
	assert.Equal(t, "Visible improvement after two weeks", got[0].Results)

	// Second application attempt is a no-op.
	applied, err = store.MarkTreatmentApplied(id, appliedAt.Add(time.Hour), "different results")
	require.NoError(t, err)
	assert.False(t, applied)

	got, err = store.GetTreatmentRecommendationsByRecordID(1)
	require.NoError(t, err)
	assert.Equal(t, "Visible improvement after two weeks", got[0].Results)
}

func sampleReport(barangay string, generatedAt time.Time) *model.LGUReport {
	return &model.LGUReport{
		ReportType:      model.ReportTypeWeekly,
		BarangayName:    barangay,
		TotalRecords:    20,
		HealthyCrops:    16,
		PestDamage:      4,
		RiskLevel:       model.RiskLevelLow,
		Recommendations: "• Continue current agricultural practices",
		GeneratedBy:     "AgriSight System",
		GeneratedAt:     generatedAt,
	}
}

func TestLGUReportLifecycle(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	base := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	oldID, err := store.SaveLGUReport(sampleReport("Barangay 1", base))
	require.NoError(t, err)
	newID, err := store.SaveLGUReport(sampleReport("Barangay 2", base.Add(7*24*time.Hour)))
	require.NoError(t, err)

	// Listing is newest-generated first.
	all, err := store.GetAllLGUReports()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newID, all[0].ID)

	// Unsynced publishing order is oldest first.
	unsynced, err := store.GetUnsyncedLGUReports()
	require.NoError(t, err)
	require.Len(t, unsynced, 2)
	assert.Equal(t, oldID, unsynced[0].ID)

	syncedAt := base.Add(8 * 24 * time.Hour)
	marked, err := store.MarkLGUReportSynced(oldID, syncedAt)
	require.NoError(t, err)
	assert.True(t, marked)

	unsynced, err = store.GetUnsyncedLGUReports()
	require.NoError(t, err)
	require.Len(t, unsynced, 1)
	assert.Equal(t, newID, unsynced[0].ID)

	// Marking again is a no-op.
	marked, err = store.MarkLGUReportSynced(oldID, syncedAt.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, marked)
}

func TestEnsureSeededRunsOnce(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	calls := 0
	seed := func(tx *DataStore) error {
		calls++
		_, err := tx.SaveCropHealthRecord(sampleRecord())
		return err
	}

	seeded, err := store.EnsureSeeded("demo-data-v1", seed)
	require.NoError(t, err)
	assert.True(t, seeded)
	assert.Equal(t, 1, calls)

	seeded, err = store.EnsureSeeded("demo-data-v1", seed)
	require.NoError(t, err)
	assert.False(t, seeded)
	assert.Equal(t, 1, calls)

	count, err := store.CountCropHealthRecords()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestEnsureSeededFailureLeavesNoMarker(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	boom := fmt.Errorf("seed failed")
	_, err := store.EnsureSeeded("flaky-seed", func(tx *DataStore) error {
		if _, err := tx.SaveCropHealthRecord(sampleRecord()); err != nil {
			return err
		}
		return boom
	})
	require.Error(t, err)

	// The failed transaction rolled back both the rows and the marker, so a
	// retry runs the seed again.
	count, err := store.CountCropHealthRecords()
	require.NoError(t, err)
	assert.Zero(t, count)

	seeded, err := store.EnsureSeeded("flaky-seed", func(tx *DataStore) error {
		_, err := tx.SaveCropHealthRecord(sampleRecord())
		return err
	})
	require.NoError(t, err)
	assert.True(t, seeded)
}

func TestEnsureSeededEmptyName(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	_, err := store.EnsureSeeded("", func(tx *DataStore) error { return nil })
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestReopenKeepsData(t *testing.T) {
	t.Parallel()

	loggerOnce.Do(func() {
		logger = logging.ForService(serviceName)
		closeLogger = func() error { return nil }
	})

	settings := &conf.Settings{}
	settings.Database.SQLite.Enabled = true
	settings.Database.SQLite.Path = filepath.Join(t.TempDir(), "agrisight.db")

	store := &SQLiteStore{Settings: settings}
	require.NoError(t, store.Open())
	_, err := store.SaveCropHealthRecord(sampleRecord())
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened := &SQLiteStore{Settings: settings}
	require.NoError(t, reopened.Open())
	t.Cleanup(func() { _ = reopened.Close() })

	count, err := reopened.CountCropHealthRecords()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestNewerSchemaRejected(t *testing.T) {
	t.Parallel()

	loggerOnce.Do(func() {
		logger = logging.ForService(serviceName)
		closeLogger = func() error { return nil }
	})

	settings := &conf.Settings{}
	settings.Database.SQLite.Enabled = true
	settings.Database.SQLite.Path = filepath.Join(t.TempDir(), "agrisight.db")

	store := &SQLiteStore{Settings: settings}
	require.NoError(t, store.Open())
	require.NoError(t, store.DB.Model(&schemaInfo{}).
		Where("1 = 1").Update("version", schemaVersion+1).Error)
	require.NoError(t, store.Close())

	reopened := &SQLiteStore{Settings: settings}
	err := reopened.Open()
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryState))
}

func TestDestructiveUpgradeDiscardsRows(t *testing.T) {
	t.Parallel()

	loggerOnce.Do(func() {
		logger = logging.ForService(serviceName)
		closeLogger = func() error { return nil }
	})

	settings := &conf.Settings{}
	settings.Database.SQLite.Enabled = true
	settings.Database.SQLite.Path = filepath.Join(t.TempDir(), "agrisight.db")

	store := &SQLiteStore{Settings: settings}
	require.NoError(t, store.Open())
	_, err := store.SaveCropHealthRecord(sampleRecord())
	require.NoError(t, err)
	_, err = store.EnsureSeeded("demo-data-v1", func(tx *DataStore) error { return nil })
	require.NoError(t, err)
	// Rewind the recorded version to force the upgrade path on reopen.
	require.NoError(t, store.DB.Model(&schemaInfo{}).
		Where("1 = 1").Update("version", schemaVersion-1).Error)
	require.NoError(t, store.Close())

	reopened := &SQLiteStore{Settings: settings}
	require.NoError(t, reopened.Open())
	t.Cleanup(func() { _ = reopened.Close() })

	count, err := reopened.CountCropHealthRecords()
	require.NoError(t, err)
	assert.Zero(t, count)

	// Seed markers were reset with the data, so seeds run again.
	seeded, err := reopened.EnsureSeeded("demo-data-v1", func(tx *DataStore) error { return nil })
	require.NoError(t, err)
	assert.True(t, seeded)
}
