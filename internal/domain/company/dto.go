// internal/domain/company/dto.go
package company

type CreateRequest struct {
	Name        string   `json:"name" binding:"required,max=255"`
	Industry    string   `json:"industry" binding:"max=100"`
	Website     string   `json:"website" binding:"max=255"`
	Description string   `json:"description" binding:"max=4000"`
	HRName      string   `json:"hr_name" binding:"max=255"`
	HREmail     string   `json:"hr_email" binding:"omitempty,email,max=255"`
	HRPhone     string   `json:"hr_phone" binding:"max=20"`
	Locations   []string `json:"locations"`
}

type UpdateRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=255"`
	Industry    *string  `json:"industry" binding:"omitempty,max=100"`
	Website     *string  `json:"website" binding:"omitempty,max=255"`
	Description *string  `json:"description" binding:"omitempty,max=4000"`
	HRName      *string  `json:"hr_name" binding:"omitempty,max=255"`
	HREmail     *string  `json:"hr_email" binding:"omitempty,email,max=255"`
	HRPhone     *string  `json:"hr_phone" binding:"omitempty,max=20"`
	Locations   []string `json:"locations"`
}

type DecisionRequest struct {
	Reason string `json:"reason" binding:"max=1000"`
}

type ListFilters struct {
	Status   string `form:"status"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

type ListResponse struct {
	Companies  []Company `json:"companies"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalPages int       `json:"total_pages"`
}
