// defaults.go: fixed reward and daily quest catalogs
package gamification

import "github.com/cvsuagritech/agrisight-go/internal/model"

// defaultRewards is the fixed reward catalog seeded on creation and re-seeded
// after a destructive schema upgrade.
func defaultRewards() []model.Reward {
	return []model.Reward{
		// Rice farming supplies
		{ID: "r1", Name: "Organic Insecticide", Description: "Natural pest control for rice fields", PointsCost: 80, Type: model.RewardPestIDPro},
		{ID: "r2", Name: "NPK Fertilizer", Description: "Balanced nutrients for rice growth", PointsCost: 120, Type: model.RewardAdvancedAnalytics},
		{ID: "r3", Name: "Rice Seeds Premium", Description: "High-yield rice seed variety", PointsCost: 150, Type: model.RewardPremiumSeedsCatalog},
		{ID: "r4", Name: "Soil pH Tester", Description: "Test soil acidity for optimal rice growth", PointsCost: 100, Type: model.RewardSoilTestingTool},
		{ID: "r5", Name: "Water Level Gauge", Description: "Monitor irrigation water levels", PointsCost: 90, Type: model.RewardWeatherForecast},

		// Farming tools
		{ID: "r6", Name: "Rice Planting Guide", Description: "Complete rice cultivation manual", PointsCost: 60, Type: model.RewardFarmingGuide},
		{ID: "r7", Name: "Pest Control Spray", Description: "Effective pest management solution", PointsCost: 110, Type: model.RewardPestIDPro},
		{ID: "r8", Name: "Fertilizer Spreader", Description: "Even fertilizer distribution tool", PointsCost: 130, Type: model.RewardAdvancedAnalytics},
		{ID: "r9", Name: "Harvest Timer", Description: "Optimal harvest timing calculator", PointsCost: 140, Type: model.RewardHarvestCalculator},
		{ID: "r10", Name: "Rice Disease Guide", Description: "Identify and treat rice diseases", PointsCost: 70, Type: model.RewardFarmingGuide},

		// Premium features
		{ID: "r11", Name: "Expert Consultation", Description: "One-on-one farming expert advice", PointsCost: 200, Type: model.RewardExpertConsultation},
		{ID: "r12", Name: "Weather Forecast Pro", Description: "Extended weather predictions", PointsCost: 160, Type: model.RewardWeatherForecast},
		{ID: "r13", Name: "Farmer Network Access", Description: "Connect with local rice farmers", PointsCost: 50, Type: model.RewardFarmerNetworkAccess},
		{ID: "r14", Name: "Golden Rice Badge", Description: "Exclusive rice farming achievement", PointsCost: 100, Type: model.RewardBadge},
	}
}

// defaultQuests is the daily quest catalog seeded when a user profile is
// first created.
func defaultQuests() []model.Quest {
	return []model.Quest{
		{ID: "daily_login", Title: "Morning Check-in", Description: "Start your rice farming day with AgriSight", Type: model.QuestLoginDaily, Points: 10, Daily: true, TargetCount: 1},
		{ID: "analyze_rice_crop", Title: "Rice Crop Analysis", Description: "Analyze 3 rice crop images for health assessment", Type: model.QuestAnalyzeRiceCrop, Points: 30, Daily: true, TargetCount: 3},
		{ID: "check_soil_conditions", Title: "Soil Health Check", Description: "Monitor soil conditions for optimal rice growth", Type: model.QuestCheckSoilConditions, Points: 25, Daily: true, TargetCount: 1},
		{ID: "monitor_water_level", Title: "Water Management", Description: "Check and adjust water levels in rice fields", Type: model.QuestMonitorWaterLevel, Points: 20, Daily: true, TargetCount: 1},
		{ID: "apply_fertilizer", Title: "Fertilizer Application", Description: "Apply appropriate fertilizer to rice plants", Type: model.QuestApplyFertilizer, Points: 35, Daily: true, TargetCount: 1},
		{ID: "control_pests", Title: "Pest Control", Description: "Identify and control rice pests", Type: model.QuestControlPests, Points: 40, Daily: true, TargetCount: 1},
		{ID: "view_farm_map", Title: "Farm Map Review", Description: "Review your rice farm layout and conditions", Type: model.QuestViewFarmMap, Points: 15, Daily: true, TargetCount: 1},
		{ID: "complete_treatment", Title: "Treatment Application", Description: "Complete 2 rice treatment recommendations", Type: model.QuestCompleteTreatmentRec, Points: 45, Daily: true, TargetCount: 2},
		{ID: "update_farm_log", Title: "Farm Log Update", Description: "Update your rice farming activities log", Type: model.QuestUpdateFarmLog, Points: 20, Daily: true, TargetCount: 1},
		{ID: "read_farming_tips", Title: "Learn Rice Farming", Description: "Read rice farming tips and best practices", Type: model.QuestReadFarmingTips, Points: 15, Daily: true, TargetCount: 1},
		{ID: "share_experience", Title: "Share Knowledge", Description: "Share your rice farming experience with community", Type: model.QuestShareExperience, Points: 25, Daily: true, TargetCount: 1},
		{ID: "harvest_preparation", Title: "Harvest Preparation", Description: "Prepare tools and equipment for rice harvest", Type: model.QuestHarvestRice, Points: 50, Daily: true, TargetCount: 1},
		{ID: "weather_check", Title: "Weather Monitoring", Description: "Check weather forecast for rice farming decisions", Type: model.QuestReadFarmingTips, Points: 15, Daily: true, TargetCount: 1},
		{ID: "seed_selection", Title: "Seed Selection", Description: "Choose the best rice seed variety for planting", Type: model.QuestCheckSoilConditions, Points: 30, Daily: true, TargetCount: 1},
		{ID: "irrigation_setup", Title: "Irrigation Setup", Description: "Set up irrigation system for rice fields", Type: model.QuestMonitorWaterLevel, Points: 40, Daily: true, TargetCount: 1},
		{ID: "pest_monitoring", Title: "Pest Monitoring", Description: "Monitor rice fields for pest activity", Type: model.QuestControlPests, Points: 25, Daily: true, TargetCount: 1},
		{ID: "soil_testing", Title: "Soil Testing", Description: "Test soil pH and nutrient levels", Type: model.QuestCheckSoilConditions, Points: 35, Daily: true, TargetCount: 1},
		{ID: "crop_rotation", Title: "Crop Rotation", Description: "Plan crop rotation for sustainable farming", Type: model.QuestReadFarmingTips, Points: 20, Daily: true, TargetCount: 1},
		{ID: "equipment_maintenance", Title: "Equipment Maintenance", Description: "Maintain farming equipment and tools", Type: model.QuestApplyFertilizer, Points: 30, Daily: true, TargetCount: 1},
		{ID: "market_research", Title: "Market Research", Description: "Research rice market prices and trends", Type: model.QuestShareExperience, Points: 25, Daily: true, TargetCount: 1},
	}
}
