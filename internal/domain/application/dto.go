// internal/domain/application/dto.go
package application

type ApplyRequest struct {
	InternshipID int64  `json:"internship_id" binding:"required"`
	ResumeLink   string `json:"resume_link" binding:"required,max=512"`
	CoverNote    string `json:"cover_note" binding:"max=2000"`
}

type StatusUpdateRequest struct {
	// Accepts canonical statuses and legacy aliases (APPLIED, OFFER_RECEIVED).
	Status string `json:"status" binding:"required"`
}

type OfferLetterRequest struct {
	OfferLetter string `json:"offer_letter" binding:"required,max=512"`
}

type ListFilters struct {
	InternshipID int64  `form:"internship_id"`
	StudentID    int64  `form:"student_id"`
	Status       string `form:"status"`
	Page         int    `form:"page"`
	PageSize     int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

type ListResponse struct {
	Applications []Application `json:"applications"`
	Total        int64         `json:"total"`
	Page         int           `json:"page"`
	PageSize     int           `json:"page_size"`
	TotalPages   int           `json:"total_pages"`
}
