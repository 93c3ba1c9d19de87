package entity

// StudyPlan is the structured study guidance generated for one course.
type StudyPlan struct {
	Overview                string   `json:"overview"`
	WeeklySchedule          []string `json:"weekly_schedule"`
	StudyTips               []string `json:"study_tips"`
	ResourceRecommendations string   `json:"resource_recommendations"`
}
