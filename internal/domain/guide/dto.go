// internal/domain/guide/dto.go
package guide

type AssignRequest struct {
	ApplicationID int64 `json:"application_id" binding:"required"`
	GuideID       int64 `json:"guide_id" binding:"required"`
}

type FeedbackRequest struct {
	Comment string `json:"comment" binding:"required,max=2000"`
}

type WeeklyLogRequest struct {
	Week         int    `json:"week" binding:"required,min=1,max=52"`
	WorkSummary  string `json:"work_summary" binding:"required,max=4000"`
	Achievements string `json:"achievements" binding:"max=4000"`
	Challenges   string `json:"challenges" binding:"max=4000"`
	NextWeekPlan string `json:"next_week_plan" binding:"max=4000"`
	// Submit for review instead of saving a draft.
	Submit bool `json:"submit"`
}

type LogReviewRequest struct {
	Approve bool   `json:"approve"`
	Comment string `json:"comment" binding:"max=2000"`
}
