// internal/domain/guide/repository.go
package guide

import "context"

type Repository interface {
	CreateAssignment(ctx context.Context, a *Assignment) error
	FindAssignmentByID(ctx context.Context, id int64) (*Assignment, error)
	FindAssignmentByApplication(ctx context.Context, applicationID int64) (*Assignment, error)
	ListByStudent(ctx context.Context, studentID int64) ([]Assignment, error)
	ListByGuide(ctx context.Context, guideID int64) ([]Assignment, error)
	UpdateAssignmentStatus(ctx context.Context, id int64, status AssignmentStatus) error
	AddFeedback(ctx context.Context, f *FeedbackEntry) error
	ListFeedback(ctx context.Context, assignmentID int64) ([]FeedbackEntry, error)

	CreateWeeklyLog(ctx context.Context, l *WeeklyLog) error
	FindWeeklyLog(ctx context.Context, assignmentID int64, week int) (*WeeklyLog, error)
	FindWeeklyLogByID(ctx context.Context, id int64) (*WeeklyLog, error)
	ListWeeklyLogs(ctx context.Context, assignmentID int64) ([]WeeklyLog, error)
	UpdateWeeklyLog(ctx context.Context, l *WeeklyLog) error
}
