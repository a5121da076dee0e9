// gamification.go: quest, reward and user profile data model.
package model

import (
	"time"
)

// QuestType classifies farming activities that earn points.
type QuestType string

const (
	QuestLoginDaily QuestType = "LOGIN_DAILY"

	QuestAnalyzeRiceCrop     QuestType = "ANALYZE_RICE_CROP"
	QuestCheckSoilConditions QuestType = "CHECK_SOIL_CONDITIONS"
	QuestMonitorWaterLevel   QuestType = "MONITOR_WATER_LEVEL"
	QuestApplyFertilizer     QuestType = "APPLY_FERTILIZER"
	QuestControlPests        QuestType = "CONTROL_PESTS"
	QuestHarvestRice         QuestType = "HARVEST_RICE"

	QuestViewFarmMap           QuestType = "VIEW_FARM_MAP"
	QuestCompleteTreatmentRec  QuestType = "COMPLETE_TREATMENT_RECOMMENDATION"
	QuestGenerateLGUReport     QuestType = "GENERATE_LGU_REPORT"
	QuestUpdateFarmLog         QuestType = "UPDATE_FARM_LOG"
	QuestReadFarmingTips       QuestType = "READ_FARMING_TIPS"
	QuestWatchTutorial         QuestType = "WATCH_TUTORIAL"
	QuestShareExperience       QuestType = "SHARE_EXPERIENCE"
)

// DefaultQuestType is the fallback member for unrecognized stored values,
// matching the mobile app's decode behavior.
const DefaultQuestType = QuestLoginDaily

// questTypeAliases maps quest type spellings from the v1 schema to current members.
var questTypeAliases = map[string]QuestType{
	"ANALYZE_CROP":            QuestAnalyzeRiceCrop,
	"VIEW_MAP":                QuestViewFarmMap,
	"COMPLETE_RECOMMENDATION": QuestCompleteTreatmentRec,
	"GENERATE_REPORT":         QuestGenerateLGUReport,
}

// ParseQuestType decodes a stored quest type string, applying the legacy alias
// map and falling back to DefaultQuestType for unrecognized values.
func ParseQuestType(raw string) (QuestType, bool) {
	if alias, ok := questTypeAliases[raw]; ok {
		return alias, true
	}
	t := QuestType(raw)
	if t.Valid() {
		return t, true
	}
	return DefaultQuestType, false
}

// Valid reports whether the type is one of the current enumerated members.
func (t QuestType) Valid() bool {
	switch t {
	case QuestLoginDaily, QuestAnalyzeRiceCrop, QuestCheckSoilConditions,
		QuestMonitorWaterLevel, QuestApplyFertilizer, QuestControlPests,
		QuestHarvestRice, QuestViewFarmMap, QuestCompleteTreatmentRec,
		QuestGenerateLGUReport, QuestUpdateFarmLog, QuestReadFarmingTips,
		QuestWatchTutorial, QuestShareExperience:
		return true
	}
	return false
}

// RewardType classifies unlockable rewards.
type RewardType string

const (
	RewardAvatarFrame RewardType = "AVATAR_FRAME"
	RewardThemeColor  RewardType = "THEME_COLOR"
	RewardBadge       RewardType = "BADGE"

	RewardAdvancedAnalytics   RewardType = "ADVANCED_ANALYTICS"
	RewardPremiumSeedsCatalog RewardType = "PREMIUM_SEEDS_CATALOG"
	RewardWeatherForecast     RewardType = "WEATHER_FORECAST"
	RewardSoilTestingTool     RewardType = "SOIL_TESTING_TOOL"
	RewardPestIDPro           RewardType = "PEST_IDENTIFICATION_PRO"
	RewardHarvestCalculator   RewardType = "HARVEST_CALCULATOR"

	RewardFarmingGuide       RewardType = "FARMING_GUIDE"
	RewardVideoTutorials     RewardType = "VIDEO_TUTORIALS"
	RewardExpertConsultation RewardType = "EXPERT_CONSULTATION"

	RewardFarmerNetworkAccess RewardType = "FARMER_NETWORK_ACCESS"
	RewardKnowledgeSharing    RewardType = "KNOWLEDGE_SHARING_PLATFORM"
)

// DefaultRewardType is the fallback member for unrecognized stored values.
const DefaultRewardType = RewardBadge

// ParseRewardType decodes a stored reward type string.
func ParseRewardType(raw string) (RewardType, bool) {
	t := RewardType(raw)
	if t.Valid() {
		return t, true
	}
	return DefaultRewardType, false
}

// Valid reports whether the type is one of the current enumerated members.
func (t RewardType) Valid() bool {
	switch t {
	case RewardAvatarFrame, RewardThemeColor, RewardBadge, RewardAdvancedAnalytics,
		RewardPremiumSeedsCatalog, RewardWeatherForecast, RewardSoilTestingTool,
		RewardPestIDPro, RewardHarvestCalculator, RewardFarmingGuide,
		RewardVideoTutorials, RewardExpertConsultation, RewardFarmerNetworkAccess,
		RewardKnowledgeSharing:
		return true
	}
	return false
}

// UserProfile holds the single user's gamification state.
type UserProfile struct {
	ID          string     `gorm:"primaryKey" json:"-"`
	UserID      string     `gorm:"uniqueIndex;not null" json:"user_id"`
	Username    string     `json:"username"`
	TotalPoints int        `gorm:"default:0" json:"total_points"`
	Level       int        `gorm:"default:1" json:"level"`
	Experience  int        `gorm:"default:0" json:"experience"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
	StreakDays  int        `gorm:"default:0" json:"streak_days"`
}

// TableName keeps the table name used by the mobile gamification schema.
func (UserProfile) TableName() string {
	return "user_profiles"
}

// Quest is a repeatable farming activity awarding points on completion.
type Quest struct {
	ID           string     `gorm:"primaryKey" json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Type         QuestType  `gorm:"type:varchar(64)" json:"type"`
	Points       int        `json:"points"`
	Completed    bool       `gorm:"default:false" json:"completed"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	Daily        bool       `gorm:"default:true" json:"daily"`
	TargetCount  int        `gorm:"default:1" json:"target_count"`
	CurrentCount int        `gorm:"default:0" json:"current_count"`
}

// TableName keeps the table name used by the mobile gamification schema.
func (Quest) TableName() string {
	return "quests"
}

// Reward is an unlockable item purchased with points.
type Reward struct {
	ID          string     `gorm:"primaryKey" json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	PointsCost  int        `json:"points_cost"`
	Type        RewardType `gorm:"type:varchar(64)" json:"type"`
	Unlocked    bool       `gorm:"default:false" json:"unlocked"`
}

// TableName keeps the table name used by the mobile gamification schema.
func (Reward) TableName() string {
	return "rewards"
}
