// Package gamification keeps the farmer engagement state (profile, daily
// quests, rewards) in its own SQLite database, separate from the crop health
// store.
package gamification

import (
	stderrors "errors"
	"path/filepath"
	"time"

	"github.com/cvsuagritech/agrisight-go/internal/conf"
	"github.com/cvsuagritech/agrisight-go/internal/errors"
	"github.com/cvsuagritech/agrisight-go/internal/logging"
	"github.com/cvsuagritech/agrisight-go/internal/model"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// schemaVersion is the current gamification schema. Version 2 renamed several
// quest types; the upgrade drops and re-seeds quests and rewards but keeps
// the user profile.
const schemaVersion = 2

// experiencePerLevel controls leveling: level = experience/100 + 1.
const experiencePerLevel = 100

type schemaInfo struct {
	ID        uint `gorm:"primaryKey"`
	Version   int  `gorm:"not null"`
	UpdatedAt time.Time
}

func (schemaInfo) TableName() string {
	return "gamification_schema_info"
}

// Store is the gamification database. Methods are self-contained blocking
// calls, mirroring the crop health store.
type Store struct {
	DB  *gorm.DB
	now func() time.Time
}

// Open opens (and if needed creates) the gamification database configured in
// settings and brings its schema up to date.
func Open(settings *conf.Settings) (*Store, error) {
	path := settings.Gamification.Path
	if path == "" {
		path = "gamification.db"
	}
	dir, fileName := filepath.Split(path)
	dbPath := filepath.Join(conf.GetBasePath(dir), fileName)

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Newf("failed to open gamification database: %w", err).
			Component("gamification").
			Category(errors.CategoryDatabase).
			Priority(errors.PriorityHigh).
			Context("db_path", dbPath).
			Build()
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}

	s := &Store{DB: db, now: time.Now}
	if err := s.migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.DB == nil {
		return nil
	}
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// WithClock replaces the time source, for deterministic tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) migrate() error {
	log := logging.ForService("gamification")

	if err := s.DB.AutoMigrate(&schemaInfo{}); err != nil {
		return s.dbErr(err, "migrate_schema_info")
	}

	var info schemaInfo
	err := s.DB.Order("id ASC").First(&info).Error
	switch {
	case stderrors.Is(err, gorm.ErrRecordNotFound):
		if err := s.DB.AutoMigrate(&model.UserProfile{}, &model.Quest{}, &model.Reward{}); err != nil {
			return s.dbErr(err, "create_tables")
		}
		if err := s.seedRewards(); err != nil {
			return err
		}
		if err := s.DB.Create(&schemaInfo{Version: schemaVersion, UpdatedAt: s.now()}).Error; err != nil {
			return s.dbErr(err, "write_schema_version")
		}
		log.Info("initialized gamification schema", "version", schemaVersion)
		return nil
	case err != nil:
		return s.dbErr(err, "read_schema_version")
	}

	if info.Version >= schemaVersion {
		return s.DB.AutoMigrate(&model.UserProfile{}, &model.Quest{}, &model.Reward{})
	}

	// Quest type spellings changed in v2; old quest and reward rows are
	// dropped and the catalogs re-seeded. The user profile survives.
	log.Warn("upgrading gamification schema, quest and reward rows will be re-seeded",
		"from_version", info.Version, "to_version", schemaVersion)
	migrator := s.DB.Migrator()
	for _, m := range []any{&model.Quest{}, &model.Reward{}} {
		if migrator.HasTable(m) {
			if err := migrator.DropTable(m); err != nil {
				return s.dbErr(err, "drop_table")
			}
		}
	}
	if err := s.DB.AutoMigrate(&model.UserProfile{}, &model.Quest{}, &model.Reward{}); err != nil {
		return s.dbErr(err, "create_tables")
	}
	if err := s.seedRewards(); err != nil {
		return err
	}
	// A surviving profile means quests were seeded before; restore them now,
	// since InitializeUser only seeds on profile creation.
	profile, err := s.GetUserProfile()
	if err != nil {
		return err
	}
	if profile != nil {
		if err := s.seedQuests(); err != nil {
			return err
		}
	}
	if err := s.DB.Model(&schemaInfo{}).Where("id = ?", info.ID).
		Updates(map[string]any{"version": schemaVersion, "updated_at": s.now()}).Error; err != nil {
		return s.dbErr(err, "write_schema_version")
	}
	return nil
}

func (s *Store) seedRewards() error {
	for _, r := range defaultRewards() {
		if err := s.DB.Create(&r).Error; err != nil {
			return s.dbErr(err, "seed_rewards")
		}
	}
	return nil
}

func (s *Store) seedQuests() error {
	for _, q := range defaultQuests() {
		if err := s.DB.Create(&q).Error; err != nil {
			return s.dbErr(err, "seed_quests")
		}
	}
	return nil
}

// InitializeUser creates the profile and seeds the daily quests on first
// launch; on later launches it just records the login.
func (s *Store) InitializeUser(userID, username string) (*model.UserProfile, error) {
	profile, err := s.GetUserProfile()
	if err != nil {
		return nil, err
	}
	if profile != nil {
		if err := s.RecordLogin(); err != nil {
			return nil, err
		}
		return s.GetUserProfile()
	}

	profile = &model.UserProfile{
		ID:       uuid.New().String(),
		UserID:   userID,
		Username: username,
		Level:    1,
	}
	if err := s.DB.Create(profile).Error; err != nil {
		return nil, s.dbErr(err, "create_profile")
	}
	if err := s.seedQuests(); err != nil {
		return nil, err
	}
	return profile, nil
}

// GetUserProfile returns the single profile, or (nil, nil) before first
// initialization.
func (s *Store) GetUserProfile() (*model.UserProfile, error) {
	var profile model.UserProfile
	err := s.DB.First(&profile).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, s.dbErr(err, "get_profile")
	}
	return &profile, nil
}

// RecordLogin stamps the login time and advances the streak at most once per
// calendar day.
func (s *Store) RecordLogin() error {
	profile, err := s.GetUserProfile()
	if err != nil {
		return err
	}
	if profile == nil {
		return s.notInitialized("record_login")
	}

	now := s.now()
	streak := profile.StreakDays
	if profile.LastLogin == nil || !sameDay(*profile.LastLogin, now) {
		streak++
	}

	err = s.DB.Model(&model.UserProfile{}).Where("user_id = ?", profile.UserID).
		Updates(map[string]any{"last_login": now, "streak_days": streak}).Error
	if err != nil {
		return s.dbErr(err, "record_login")
	}
	return nil
}

// AddPoints credits points and experience and recomputes the level.
func (s *Store) AddPoints(points int) error {
	if points < 0 {
		return errors.Newf("points to add must not be negative: %d", points).
			Component("gamification").
			Category(errors.CategoryValidation).
			Build()
	}
	profile, err := s.GetUserProfile()
	if err != nil {
		return err
	}
	if profile == nil {
		return s.notInitialized("add_points")
	}

	newExperience := profile.Experience + points
	err = s.DB.Model(&model.UserProfile{}).Where("user_id = ?", profile.UserID).
		Updates(map[string]any{
			"total_points": profile.TotalPoints + points,
			"experience":   newExperience,
			"level":        newExperience/experiencePerLevel + 1,
		}).Error
	if err != nil {
		return s.dbErr(err, "add_points")
	}
	return nil
}

// GetDailyQuests returns all daily quests with stored quest types normalized
// through the legacy alias map.
func (s *Store) GetDailyQuests() ([]model.Quest, error) {
	var quests []model.Quest
	if err := s.DB.Where("daily = ?", true).Order("id ASC").Find(&quests).Error; err != nil {
		return nil, s.dbErr(err, "get_daily_quests")
	}
	for i := range quests {
		t, ok := model.ParseQuestType(string(quests[i].Type))
		if !ok {
			logging.ForService("gamification").Warn("unrecognized quest type, using default",
				"quest_id", quests[i].ID, "raw", string(quests[i].Type))
		}
		quests[i].Type = t
	}
	return quests, nil
}

// CompleteQuest marks a quest completed and credits its points. Completing an
// already-completed quest returns false without awarding again.
func (s *Store) CompleteQuest(questID string) (bool, error) {
	var quest model.Quest
	err := s.DB.First(&quest, "id = ?", questID).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, s.dbErr(err, "complete_quest")
	}
	if quest.Completed {
		return false, nil
	}

	now := s.now()
	res := s.DB.Model(&model.Quest{}).
		Where("id = ? AND completed = ?", questID, false).
		Updates(map[string]any{"completed": true, "completed_at": now, "current_count": quest.TargetCount})
	if res.Error != nil {
		return false, s.dbErr(res.Error, "complete_quest")
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	if err := s.AddPoints(quest.Points); err != nil {
		return true, err
	}
	return true, nil
}

// UpdateQuestProgress advances a counted quest and completes it when the
// target is reached. Returns the updated quest, or (nil, nil) when absent.
func (s *Store) UpdateQuestProgress(questID string, delta int) (*model.Quest, error) {
	var quest model.Quest
	err := s.DB.First(&quest, "id = ?", questID).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, s.dbErr(err, "update_quest_progress")
	}
	if quest.Completed {
		return &quest, nil
	}

	quest.CurrentCount += delta
	if quest.CurrentCount >= quest.TargetCount {
		if _, err := s.CompleteQuest(questID); err != nil {
			return nil, err
		}
		return s.getQuest(questID)
	}
	if err := s.DB.Model(&model.Quest{}).Where("id = ?", questID).
		Update("current_count", quest.CurrentCount).Error; err != nil {
		return nil, s.dbErr(err, "update_quest_progress")
	}
	return s.getQuest(questID)
}

func (s *Store) getQuest(questID string) (*model.Quest, error) {
	var quest model.Quest
	err := s.DB.First(&quest, "id = ?", questID).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, s.dbErr(err, "get_quest")
	}
	return &quest, nil
}

// GetRewards returns the full reward catalog.
func (s *Store) GetRewards() ([]model.Reward, error) {
	var rewards []model.Reward
	if err := s.DB.Order("id ASC").Find(&rewards).Error; err != nil {
		return nil, s.dbErr(err, "get_rewards")
	}
	return rewards, nil
}

// UnlockReward spends points on a reward. The unlock and the deduction run in
// one transaction and are rejected whenever the balance is short, so the
// point total can never go negative.
func (s *Store) UnlockReward(rewardID string) (bool, error) {
	unlocked := false
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var reward model.Reward
		if err := tx.First(&reward, "id = ?", rewardID).Error; err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if reward.Unlocked {
			return nil
		}

		var profile model.UserProfile
		if err := tx.First(&profile).Error; err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if profile.TotalPoints < reward.PointsCost {
			return nil
		}

		if err := tx.Model(&model.Reward{}).Where("id = ?", rewardID).
			Update("unlocked", true).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.UserProfile{}).Where("user_id = ?", profile.UserID).
			Update("total_points", profile.TotalPoints-reward.PointsCost).Error; err != nil {
			return err
		}
		unlocked = true
		return nil
	})
	if err != nil {
		return false, s.dbErr(err, "unlock_reward")
	}
	return unlocked, nil
}

func (s *Store) dbErr(err error, operation string) error {
	return errors.New(err).
		Component("gamification").
		Category(errors.CategoryDatabase).
		Context("operation", operation).
		Build()
}

func (s *Store) notInitialized(operation string) error {
	return errors.Newf("no user profile exists yet").
		Component("gamification").
		Category(errors.CategoryState).
		Context("operation", operation).
		Build()
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
