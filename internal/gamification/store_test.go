package gamification

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/cvsuagritech/agrisight-go/internal/conf"
	"github.com/cvsuagritech/agrisight-go/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	settings := &conf.Settings{}
	settings.Gamification.Enabled = true
	settings.Gamification.Path = filepath.Join(t.TempDir(), "gamification.db")

	store, err := Open(settings)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func initializedStore(t *testing.T) *Store {
	t.Helper()
	store := newTestStore(t)
	_, err := store.InitializeUser("local-farmer", "Juan")
	require.NoError(t, err)
	return store
}

func TestOpenSeedsRewardCatalog(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	rewards, err := store.GetRewards()
	require.NoError(t, err)
	require.Len(t, rewards, 14)
	assert.Equal(t, "Organic Insecticide", rewards[0].Name)
	assert.Equal(t, 80, rewards[0].PointsCost)
	for _, r := range rewards {
		assert.False(t, r.Unlocked, "reward %s", r.ID)
		assert.True(t, r.Type.Valid(), "reward %s", r.ID)
	}
}

func TestInitializeUserFirstLaunch(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	// No profile before initialization.
	profile, err := store.GetUserProfile()
	require.NoError(t, err)
	assert.Nil(t, profile)

	profile, err = store.InitializeUser("local-farmer", "Juan")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "local-farmer", profile.UserID)
	assert.Equal(t, "Juan", profile.Username)
	assert.Equal(t, 1, profile.Level)
	assert.Zero(t, profile.TotalPoints)

	quests, err := store.GetDailyQuests()
	require.NoError(t, err)
	require.Len(t, quests, 20)
	for _, q := range quests {
		assert.True(t, q.Type.Valid(), "quest %s", q.ID)
		assert.False(t, q.Completed, "quest %s", q.ID)
	}
}

func TestInitializeUserSecondLaunchRecordsLogin(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	day1 := time.Date(2025, 5, 1, 7, 0, 0, 0, time.UTC)
	store.WithClock(func() time.Time { return day1 })

	_, err := store.InitializeUser("local-farmer", "Juan")
	require.NoError(t, err)

	day2 := day1.Add(24 * time.Hour)
	store.WithClock(func() time.Time { return day2 })

	profile, err := store.InitializeUser("local-farmer", "Juan")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, 1, profile.StreakDays)
	require.NotNil(t, profile.LastLogin)

	// Quests are not re-seeded on later launches.
	quests, err := store.GetDailyQuests()
	require.NoError(t, err)
	assert.Len(t, quests, 20)
}

func TestRecordLoginStreakOncePerDay(t *testing.T) {
	t.Parallel()
	store := initializedStore(t)

	morning := time.Date(2025, 5, 1, 6, 0, 0, 0, time.UTC)
	store.WithClock(func() time.Time { return morning })
	require.NoError(t, store.RecordLogin())

	profile, err := store.GetUserProfile()
	require.NoError(t, err)
	assert.Equal(t, 1, profile.StreakDays)

	// Same calendar day: the streak does not advance again.
	store.WithClock(func() time.Time { return morning.Add(10 * time.Hour) })
	require.NoError(t, store.RecordLogin())
	profile, err = store.GetUserProfile()
	require.NoError(t, err)
	assert.Equal(t, 1, profile.StreakDays)

	// Next day it does.
	store.WithClock(func() time.Time { return morning.Add(24 * time.Hour) })
	require.NoError(t, store.RecordLogin())
	profile, err = store.GetUserProfile()
	require.NoError(t, err)
	assert.Equal(t, 2, profile.StreakDays)
}

func TestAddPointsLeveling(t *testing.T) {
	t.Parallel()
	store := initializedStore(t)

	require.NoError(t, store.AddPoints(90))
	profile, err := store.GetUserProfile()
	require.NoError(t, err)
	assert.Equal(t, 90, profile.TotalPoints)
	assert.Equal(t, 90, profile.Experience)
	assert.Equal(t, 1, profile.Level)

	// Crossing 100 experience reaches level 2.
	require.NoError(t, store.AddPoints(20))
	profile, err = store.GetUserProfile()
	require.NoError(t, err)
	assert.Equal(t, 110, profile.Experience)
	assert.Equal(t, 2, profile.Level)

	require.NoError(t, store.AddPoints(190))
	profile, err = store.GetUserProfile()
	require.NoError(t, err)
	assert.Equal(t, 300, profile.Experience)
	assert.Equal(t, 4, profile.Level)

	err = store.AddPoints(-5)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestAddPointsRequiresProfile(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	err := store.AddPoints(10)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryState))
}

func TestCompleteQuestAwardsOnce(t *testing.T) {
	t.Parallel()
	store := initializedStore(t)

	completed, err := store.CompleteQuest("daily_login")
	require.NoError(t, err)
	assert.True(t, completed)

	profile, err := store.GetUserProfile()
	require.NoError(t, err)
	assert.Equal(t, 10, profile.TotalPoints)

	// Completion is one-way; points are never double-awarded.
	completed, err = store.CompleteQuest("daily_login")
	require.NoError(t, err)
	assert.False(t, completed)
	profile, err = store.GetUserProfile()
	require.NoError(t, err)
	assert.Equal(t, 10, profile.TotalPoints)

	quests, err := store.GetDailyQuests()
	require.NoError(t, err)
	for _, q := range quests {
		if q.ID == "daily_login" {
			assert.True(t, q.Completed)
			assert.Equal(t, q.TargetCount, q.CurrentCount)
			require.NotNil(t, q.CompletedAt)
		}
	}

	// Unknown quests are a miss, not an error.
	completed, err = store.CompleteQuest("no_such_quest")
	require.NoError(t, err)
	assert.False(t, completed)
}

func TestUpdateQuestProgressCompletesAtTarget(t *testing.T) {
	t.Parallel()
	store := initializedStore(t)

	// analyze_rice_crop requires 3 analyses.
	quest, err := store.UpdateQuestProgress("analyze_rice_crop", 1)
	require.NoError(t, err)
	require.NotNil(t, quest)
	assert.Equal(t, 1, quest.CurrentCount)
	assert.False(t, quest.Completed)

	quest, err = store.UpdateQuestProgress("analyze_rice_crop", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, quest.CurrentCount)
	assert.False(t, quest.Completed)

	quest, err = store.UpdateQuestProgress("analyze_rice_crop", 1)
	require.NoError(t, err)
	assert.True(t, quest.Completed)
	assert.Equal(t, quest.TargetCount, quest.CurrentCount)

	profile, err := store.GetUserProfile()
	require.NoError(t, err)
	assert.Equal(t, 30, profile.TotalPoints)

	// Further progress on a completed quest is a no-op.
	quest, err = store.UpdateQuestProgress("analyze_rice_crop", 1)
	require.NoError(t, err)
	assert.Equal(t, quest.TargetCount, quest.CurrentCount)

	quest, err = store.UpdateQuestProgress("no_such_quest", 1)
	require.NoError(t, err)
	assert.Nil(t, quest)
}

func TestUnlockReward(t *testing.T) {
	t.Parallel()
	store := initializedStore(t)

	// r13 Farmer Network Access costs 50.
	require.NoError(t, store.AddPoints(50))

	unlocked, err := store.UnlockReward("r13")
	require.NoError(t, err)
	assert.True(t, unlocked)

	profile, err := store.GetUserProfile()
	require.NoError(t, err)
	assert.Zero(t, profile.TotalPoints)

	rewards, err := store.GetRewards()
	require.NoError(t, err)
	for _, r := range rewards {
		if r.ID == "r13" {
			assert.True(t, r.Unlocked)
		}
	}

	// Unlocking twice neither errors nor charges again.
	unlocked, err = store.UnlockReward("r13")
	require.NoError(t, err)
	assert.False(t, unlocked)
	profile, err = store.GetUserProfile()
	require.NoError(t, err)
	assert.Zero(t, profile.TotalPoints)
}

func TestUnlockRewardInsufficientPoints(t *testing.T) {
	t.Parallel()
	store := initializedStore(t)

	// One point short of r6 Rice Planting Guide (60).
	require.NoError(t, store.AddPoints(59))

	unlocked, err := store.UnlockReward("r6")
	require.NoError(t, err)
	assert.False(t, unlocked)

	// The balance is untouched; it can never go negative.
	profile, err := store.GetUserProfile()
	require.NoError(t, err)
	assert.Equal(t, 59, profile.TotalPoints)

	rewards, err := store.GetRewards()
	require.NoError(t, err)
	for _, r := range rewards {
		if r.ID == "r6" {
			assert.False(t, r.Unlocked)
		}
	}

	unlocked, err = store.UnlockReward("no_such_reward")
	require.NoError(t, err)
	assert.False(t, unlocked)
}

func TestUpgradeKeepsProfileReseedsCatalogs(t *testing.T) {
	t.Parallel()

	settings := &conf.Settings{}
	settings.Gamification.Path = filepath.Join(t.TempDir(), "gamification.db")

	store, err := Open(settings)
	require.NoError(t, err)
	_, err = store.InitializeUser("local-farmer", "Juan")
	require.NoError(t, err)
	require.NoError(t, store.AddPoints(75))
	_, err = store.CompleteQuest("daily_login")
	require.NoError(t, err)
	// Rewind the recorded version to force the upgrade path on reopen.
	require.NoError(t, store.DB.Model(&schemaInfo{}).
		Where("1 = 1").Update("version", schemaVersion-1).Error)
	require.NoError(t, store.Close())

	reopened, err := Open(settings)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	// The profile and its points survive the upgrade.
	profile, err := reopened.GetUserProfile()
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, 85, profile.TotalPoints)

	// Catalogs are re-seeded fresh: rewards locked again, quest completion
	// state reset.
	rewards, err := reopened.GetRewards()
	require.NoError(t, err)
	require.Len(t, rewards, 14)
	for _, r := range rewards {
		assert.False(t, r.Unlocked)
	}
	quests, err := reopened.GetDailyQuests()
	require.NoError(t, err)
	require.Len(t, quests, 20)
	for _, q := range quests {
		assert.False(t, q.Completed, "quest %s", q.ID)
	}
}
