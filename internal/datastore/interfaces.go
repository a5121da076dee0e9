// interfaces.go: this code defines the interface for the record store operations
package datastore

import (
	"errors"
	"time"

	"github.com/cvsuagritech/agrisight-go/internal/conf"
	"github.com/cvsuagritech/agrisight-go/internal/model"
	"github.com/cvsuagritech/agrisight-go/internal/observability"
	"gorm.io/gorm"
)

// Interface abstracts the underlying database implementation and defines the
// record store operations.
type Interface interface {
	Open() error
	Close() error

	SaveCropHealthRecord(rec *model.CropHealthRecord) (uint, error)
	GetAllCropHealthRecords() ([]model.CropHealthRecord, error)
	GetCropHealthRecord(id uint) (*model.CropHealthRecord, error)
	UpdateCropHealthRecord(rec *model.CropHealthRecord) (bool, error)
	DeleteCropHealthRecord(id uint) (bool, error)
	DeleteAllCropHealthRecords() (int64, error)
	CountCropHealthRecords() (int64, error)
	GetCropHealthRecordsByLocation(location string, since time.Time) ([]model.CropHealthRecord, error)

	SaveTreatmentRecommendation(rec *model.TreatmentRecommendation) (uint, error)
	SaveTreatmentRecommendations(recs []model.TreatmentRecommendation) error
	GetTreatmentRecommendationsByRecordID(recordID uint) ([]model.TreatmentRecommendation, error)
	MarkTreatmentApplied(id uint, appliedAt time.Time, results string) (bool, error)

	SaveLGUReport(report *model.LGUReport) (uint, error)
	GetAllLGUReports() ([]model.LGUReport, error)
	GetUnsyncedLGUReports() ([]model.LGUReport, error)
	MarkLGUReportSynced(id uint, syncedAt time.Time) (bool, error)

	EnsureSeeded(name string, seed func(tx *DataStore) error) (bool, error)
}

// DataStore implements Interface using a GORM database.
type DataStore struct {
	DB      *gorm.DB
	metrics *observability.DatastoreMetrics
}

// New creates a new store instance based on the provided configuration.
func New(settings *conf.Settings) Interface {
	switch {
	case settings.Database.SQLite.Enabled:
		return &SQLiteStore{Settings: settings}
	case settings.Database.MySQL.Enabled:
		return &MySQLStore{Settings: settings}
	default:
		return nil
	}
}

// SetMetrics attaches datastore metrics; safe to leave unset.
func (ds *DataStore) SetMetrics(m *observability.DatastoreMetrics) {
	ds.metrics = m
}

// observe records operation metrics when metrics are attached.
func (ds *DataStore) observe(operation string, start time.Time, err error) {
	if ds.metrics == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
		ds.metrics.ErrorsTotal.WithLabelValues(operation).Inc()
	}
	ds.metrics.OperationsTotal.WithLabelValues(operation, status).Inc()
	ds.metrics.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// SaveCropHealthRecord persists a new observation and returns its assigned
// identifier. Scores are clamped to [0,1]; an empty crop type defaults to
// "Rice" and a zero timestamp to now.
func (ds *DataStore) SaveCropHealthRecord(rec *model.CropHealthRecord) (id uint, err error) {
	defer func(start time.Time) { ds.observe("save_record", start, err) }(time.Now())

	if rec.CropType == "" {
		rec.CropType = "Rice"
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	rec.Confidence = model.Clamp01(rec.Confidence)
	rec.SustainabilityScore = model.Clamp01(rec.SustainabilityScore)

	if err = ds.DB.Create(rec).Error; err != nil {
		return 0, dbError(err, "save_record", priorityForWrite(err))
	}
	if ds.metrics != nil {
		ds.metrics.RecordCountGauge.Inc()
	}
	return rec.ID, nil
}

// GetAllCropHealthRecords returns a snapshot of all observations, newest
// first; equal timestamps are broken by descending identifier.
func (ds *DataStore) GetAllCropHealthRecords() (records []model.CropHealthRecord, err error) {
	defer func(start time.Time) { ds.observe("get_all_records", start, err) }(time.Now())

	if err = ds.DB.Order("timestamp DESC, id DESC").Find(&records).Error; err != nil {
		return nil, dbError(err, "get_all_records", "")
	}
	for i := range records {
		ds.normalizeRecord(&records[i])
	}
	return records, nil
}

// GetCropHealthRecord retrieves one observation by identifier. A missing
// record is a normal outcome and returns (nil, nil).
func (ds *DataStore) GetCropHealthRecord(id uint) (rec *model.CropHealthRecord, err error) {
	defer func(start time.Time) { ds.observe("get_record", start, err) }(time.Now())

	var record model.CropHealthRecord
	if err = ds.DB.First(&record, id).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, dbError(err, "get_record", "", "record_id", id)
	}
	ds.normalizeRecord(&record)
	return &record, nil
}

// UpdateCropHealthRecord overwrites a record in full, keyed by identifier.
// It returns false without error when the identifier does not exist.
func (ds *DataStore) UpdateCropHealthRecord(rec *model.CropHealthRecord) (updated bool, err error) {
	defer func(start time.Time) { ds.observe("update_record", start, err) }(time.Now())

	if rec.ID == 0 {
		return false, validationError("record identifier must be set for update", "id", rec.ID)
	}

	var count int64
	if err = ds.DB.Model(&model.CropHealthRecord{}).Where("id = ?", rec.ID).Count(&count).Error; err != nil {
		return false, dbError(err, "update_record", "", "record_id", rec.ID)
	}
	if count == 0 {
		return false, nil
	}

	rec.Confidence = model.Clamp01(rec.Confidence)
	rec.SustainabilityScore = model.Clamp01(rec.SustainabilityScore)

	if err = ds.DB.Save(rec).Error; err != nil {
		return false, dbError(err, "update_record", priorityForWrite(err), "record_id", rec.ID)
	}
	return true, nil
}

// DeleteCropHealthRecord removes one observation; false means the identifier
// was not present.
func (ds *DataStore) DeleteCropHealthRecord(id uint) (deleted bool, err error) {
	defer func(start time.Time) { ds.observe("delete_record", start, err) }(time.Now())

	res := ds.DB.Delete(&model.CropHealthRecord{}, id)
	if res.Error != nil {
		return false, dbError(res.Error, "delete_record", "", "record_id", id)
	}
	if res.RowsAffected > 0 && ds.metrics != nil {
		ds.metrics.RecordCountGauge.Dec()
	}
	return res.RowsAffected > 0, nil
}

// DeleteAllCropHealthRecords removes every observation and returns the number
// of rows deleted.
func (ds *DataStore) DeleteAllCropHealthRecords() (count int64, err error) {
	defer func(start time.Time) { ds.observe("delete_all_records", start, err) }(time.Now())

	res := ds.DB.Where("1 = 1").Delete(&model.CropHealthRecord{})
	if res.Error != nil {
		return 0, dbError(res.Error, "delete_all_records", "")
	}
	if ds.metrics != nil {
		ds.metrics.RecordCountGauge.Set(0)
	}
	return res.RowsAffected, nil
}

// CountCropHealthRecords returns the number of stored observations.
func (ds *DataStore) CountCropHealthRecords() (count int64, err error) {
	defer func(start time.Time) { ds.observe("count_records", start, err) }(time.Now())

	if err = ds.DB.Model(&model.CropHealthRecord{}).Count(&count).Error; err != nil {
		return 0, dbError(err, "count_records", "")
	}
	return count, nil
}

// GetCropHealthRecordsByLocation returns observations for one locality taken
// at or after the given time, newest first.
func (ds *DataStore) GetCropHealthRecordsByLocation(location string, since time.Time) (records []model.CropHealthRecord, err error) {
	defer func(start time.Time) { ds.observe("get_records_by_location", start, err) }(time.Now())

	q := ds.DB.Where("location = ?", location)
	if !since.IsZero() {
		q = q.Where("timestamp >= ?", since)
	}
	if err = q.Order("timestamp DESC, id DESC").Find(&records).Error; err != nil {
		return nil, dbError(err, "get_records_by_location", "", "location", location)
	}
	for i := range records {
		ds.normalizeRecord(&records[i])
	}
	return records, nil
}

// SaveTreatmentRecommendation persists one recommendation and returns its
// assigned identifier.
func (ds *DataStore) SaveTreatmentRecommendation(rec *model.TreatmentRecommendation) (id uint, err error) {
	defer func(start time.Time) { ds.observe("save_recommendation", start, err) }(time.Now())

	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	rec.Effectiveness = model.Clamp01(rec.Effectiveness)

	if err = ds.DB.Create(rec).Error; err != nil {
		return 0, dbError(err, "save_recommendation", priorityForWrite(err))
	}
	return rec.ID, nil
}

// SaveTreatmentRecommendations persists a batch of recommendations in one
// transaction.
func (ds *DataStore) SaveTreatmentRecommendations(recs []model.TreatmentRecommendation) (err error) {
	defer func(start time.Time) { ds.observe("save_recommendations", start, err) }(time.Now())

	if len(recs) == 0 {
		return nil
	}
	err = ds.DB.Transaction(func(tx *gorm.DB) error {
		for i := range recs {
			if recs[i].Timestamp.IsZero() {
				recs[i].Timestamp = time.Now()
			}
			recs[i].Effectiveness = model.Clamp01(recs[i].Effectiveness)
			if err := tx.Create(&recs[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return dbError(err, "save_recommendations", priorityForWrite(err))
	}
	return nil
}

// GetTreatmentRecommendationsByRecordID returns the recommendations derived
// for one observation, newest first.
func (ds *DataStore) GetTreatmentRecommendationsByRecordID(recordID uint) (recs []model.TreatmentRecommendation, err error) {
	defer func(start time.Time) { ds.observe("get_recommendations", start, err) }(time.Now())

	if err = ds.DB.Where("crop_health_record_id = ?", recordID).
		Order("timestamp DESC, id DESC").Find(&recs).Error; err != nil {
		return nil, dbError(err, "get_recommendations", "", "record_id", recordID)
	}
	for i := range recs {
		ds.normalizeRecommendation(&recs[i])
	}
	return recs, nil
}

// MarkTreatmentApplied flips a recommendation to applied. The transition is
// one-way; applying an already-applied recommendation returns false.
func (ds *DataStore) MarkTreatmentApplied(id uint, appliedAt time.Time, results string) (applied bool, err error) {
	defer func(start time.Time) { ds.observe("mark_treatment_applied", start, err) }(time.Now())

	res := ds.DB.Model(&model.TreatmentRecommendation{}).
		Where("id = ? AND applied = ?", id, false).
		Updates(map[string]any{"applied": true, "applied_at": appliedAt, "results": results})
	if res.Error != nil {
		return false, dbError(res.Error, "mark_treatment_applied", "", "recommendation_id", id)
	}
	return res.RowsAffected > 0, nil
}

// SaveLGUReport persists one aggregate report and returns its assigned
// identifier. The healthy-plus-issues accounting is the builder's job; a
// mismatch is logged but stored as given.
func (ds *DataStore) SaveLGUReport(report *model.LGUReport) (id uint, err error) {
	defer func(start time.Time) { ds.observe("save_report", start, err) }(time.Now())

	if report.GeneratedAt.IsZero() {
		report.GeneratedAt = time.Now()
	}
	if report.HealthyCrops+report.IssueCount() != report.TotalRecords {
		getLogger().Warn("report counts do not add up to total records",
			"barangay", report.BarangayName,
			"total", report.TotalRecords,
			"healthy", report.HealthyCrops,
			"issues", report.IssueCount())
	}

	if err = ds.DB.Create(report).Error; err != nil {
		return 0, dbError(err, "save_report", priorityForWrite(err))
	}
	return report.ID, nil
}

// GetAllLGUReports returns all reports, newest-generated first.
func (ds *DataStore) GetAllLGUReports() (reports []model.LGUReport, err error) {
	defer func(start time.Time) { ds.observe("get_all_reports", start, err) }(time.Now())

	if err = ds.DB.Order("generated_at DESC, id DESC").Find(&reports).Error; err != nil {
		return nil, dbError(err, "get_all_reports", "")
	}
	for i := range reports {
		ds.normalizeReport(&reports[i])
	}
	return reports, nil
}

// GetUnsyncedLGUReports returns reports not yet pushed to the LGU sync
// service, oldest-generated first so they are published in order.
func (ds *DataStore) GetUnsyncedLGUReports() (reports []model.LGUReport, err error) {
	defer func(start time.Time) { ds.observe("get_unsynced_reports", start, err) }(time.Now())

	if err = ds.DB.Where("synced = ?", false).
		Order("generated_at ASC, id ASC").Find(&reports).Error; err != nil {
		return nil, dbError(err, "get_unsynced_reports", "")
	}
	for i := range reports {
		ds.normalizeReport(&reports[i])
	}
	return reports, nil
}

// MarkLGUReportSynced records a successful sync performed by the external
// sync service. The store only keeps the flag.
func (ds *DataStore) MarkLGUReportSynced(id uint, syncedAt time.Time) (marked bool, err error) {
	defer func(start time.Time) { ds.observe("mark_report_synced", start, err) }(time.Now())

	res := ds.DB.Model(&model.LGUReport{}).
		Where("id = ? AND synced = ?", id, false).
		Updates(map[string]any{"synced": true, "synced_at": syncedAt})
	if res.Error != nil {
		return false, dbError(res.Error, "mark_report_synced", "", "report_id", id)
	}
	return res.RowsAffected > 0, nil
}

// normalizeRecord repairs enum fields decoded from storage. Unrecognized
// values are replaced by the designated default member and logged; they are
// never surfaced as faults.
func (ds *DataStore) normalizeRecord(rec *model.CropHealthRecord) {
	if status, ok := model.ParseHealthStatus(string(rec.HealthStatus)); !ok {
		getLogger().Warn("unrecognized health status in stored record, using default",
			"record_id", rec.ID, "raw", string(rec.HealthStatus), "fallback", string(status))
		rec.HealthStatus = status
	} else {
		rec.HealthStatus = status
	}
	if stage, ok := model.ParseGrowthStage(string(rec.GrowthStage)); !ok {
		getLogger().Warn("unrecognized growth stage in stored record, using default",
			"record_id", rec.ID, "raw", string(rec.GrowthStage), "fallback", string(stage))
		rec.GrowthStage = stage
	} else {
		rec.GrowthStage = stage
	}
	rec.Confidence = model.Clamp01(rec.Confidence)
	rec.SustainabilityScore = model.Clamp01(rec.SustainabilityScore)
}

func (ds *DataStore) normalizeRecommendation(rec *model.TreatmentRecommendation) {
	if t, ok := model.ParseTreatmentType(string(rec.TreatmentType)); !ok {
		getLogger().Warn("unrecognized treatment type in stored recommendation, using default",
			"recommendation_id", rec.ID, "raw", string(rec.TreatmentType))
		rec.TreatmentType = t
	} else {
		rec.TreatmentType = t
	}
	if l, ok := model.ParseSustainabilityLevel(string(rec.SustainabilityLevel)); !ok {
		getLogger().Warn("unrecognized sustainability level in stored recommendation, using default",
			"recommendation_id", rec.ID, "raw", string(rec.SustainabilityLevel))
		rec.SustainabilityLevel = l
	} else {
		rec.SustainabilityLevel = l
	}
}

func (ds *DataStore) normalizeReport(report *model.LGUReport) {
	if t, ok := model.ParseReportType(string(report.ReportType)); !ok {
		getLogger().Warn("unrecognized report type in stored report, using default",
			"report_id", report.ID, "raw", string(report.ReportType))
		report.ReportType = t
	} else {
		report.ReportType = t
	}
	if l, ok := model.ParseRiskLevel(string(report.RiskLevel)); !ok {
		getLogger().Warn("unrecognized risk level in stored report, using default",
			"report_id", report.ID, "raw", string(report.RiskLevel))
		report.RiskLevel = l
	} else {
		report.RiskLevel = l
	}
}

// isNotFound reports whether err is gorm's record-not-found sentinel.
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
