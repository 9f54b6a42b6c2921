// internal/domain/closure/dto.go
package closure

type SubmitRequest struct {
	AssignmentID int64  `json:"assignment_id" binding:"required"`
	ReportLink   string `json:"report_link" binding:"required,max=512"`
}

type EvaluateRequest struct {
	Score   int    `json:"score" binding:"min=0,max=100"`
	Remarks string `json:"remarks" binding:"max=2000"`
}

type AwardCreditsRequest struct {
	Credits int `json:"credits" binding:"required,min=1,max=20"`
}
