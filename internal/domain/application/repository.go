// internal/domain/application/repository.go
package application

import "context"

type Repository interface {
	Create(ctx context.Context, a *Application) error
	FindByID(ctx context.Context, id int64) (*Application, error)
	FindByStudentAndInternship(ctx context.Context, studentID, internshipID int64) (*Application, error)
	ListByStudent(ctx context.Context, studentID int64) ([]Application, error)
	List(ctx context.Context, filters *ListFilters) ([]Application, int64, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
	SetOfferLetter(ctx context.Context, id int64, offerLetter string) error
}
