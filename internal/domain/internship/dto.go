// internal/domain/internship/dto.go
package internship

type CreateRequest struct {
	Title         string   `json:"title" binding:"required,max=255"`
	Description   string   `json:"description" binding:"required"`
	Department    string   `json:"department" binding:"required,max=100"`
	Location      string   `json:"location" binding:"max=255"`
	LocationType  string   `json:"location_type" binding:"omitempty,oneof=ONSITE REMOTE HYBRID"`
	Stipend       int64    `json:"stipend" binding:"min=0"`
	DurationWeeks int      `json:"duration_weeks" binding:"required,min=1,max=52"`
	Skills        []string `json:"skills"`
	// Submit immediately instead of keeping a draft.
	Submit bool `json:"submit"`
}

type UpdateRequest struct {
	Title         *string  `json:"title" binding:"omitempty,max=255"`
	Description   *string  `json:"description"`
	Department    *string  `json:"department" binding:"omitempty,max=100"`
	Location      *string  `json:"location" binding:"omitempty,max=255"`
	LocationType  *string  `json:"location_type" binding:"omitempty,oneof=ONSITE REMOTE HYBRID"`
	Stipend       *int64   `json:"stipend" binding:"omitempty,min=0"`
	DurationWeeks *int     `json:"duration_weeks" binding:"omitempty,min=1,max=52"`
	Skills        []string `json:"skills"`
}

type DecisionRequest struct {
	Remarks string `json:"remarks" binding:"max=1000"`
}

type ListFilters struct {
	Status      string `form:"status"`
	Department  string `form:"department"`
	CorporateID int64  `form:"corporate_id"`
	Search      string `form:"search"`
	Page        int    `form:"page"`
	PageSize    int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

type ListResponse struct {
	Internships []Internship `json:"internships"`
	Total       int64        `json:"total"`
	Page        int          `json:"page"`
	PageSize    int          `json:"page_size"`
	TotalPages  int          `json:"total_pages"`
}
