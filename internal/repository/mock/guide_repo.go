// internal/repository/mock/guide_repo.go
package mock

import (
	"context"
	"sort"
	"time"

	"ims-service/internal/domain/guide"
	xerrors "ims-service/internal/pkg/errors"
	"ims-service/internal/storage"
)

const (
	assignmentsKey = "mock_assignments"
	feedbackKey    = "mock_guide_feedback"
	weeklyLogsKey  = "mock_weekly_logs"
)

type GuideRepository struct {
	assignments *collection[guide.Assignment]
	feedback    *collection[guide.FeedbackEntry]
	logs        *collection[guide.WeeklyLog]
}

func NewGuideRepository(store storage.Store, latency time.Duration) *GuideRepository {
	return &GuideRepository{
		assignments: newCollection[guide.Assignment](store, assignmentsKey, latency),
		feedback:    newCollection[guide.FeedbackEntry](store, feedbackKey, latency),
		logs:        newCollection[guide.WeeklyLog](store, weeklyLogsKey, latency),
	}
}

func (r *GuideRepository) CreateAssignment(ctx context.Context, a *guide.Assignment) error {
	items, err := r.assignments.load(ctx)
	if err != nil {
		return err
	}

	for _, existing := range items {
		if existing.ApplicationID == a.ApplicationID {
			return xerrors.ErrDuplicateEntry
		}
	}

	now := time.Now().UTC()
	a.ID = nextID(items, func(a guide.Assignment) int64 { return a.ID })
	a.CreatedAt = now
	a.UpdatedAt = now

	return r.assignments.save(ctx, append(items, *a))
}

func (r *GuideRepository) FindAssignmentByID(ctx context.Context, id int64) (*guide.Assignment, error) {
	return r.findAssignment(ctx, func(a *guide.Assignment) bool { return a.ID == id })
}

func (r *GuideRepository) FindAssignmentByApplication(ctx context.Context, applicationID int64) (*guide.Assignment, error) {
	return r.findAssignment(ctx, func(a *guide.Assignment) bool { return a.ApplicationID == applicationID })
}

func (r *GuideRepository) findAssignment(ctx context.Context, match func(*guide.Assignment) bool) (*guide.Assignment, error) {
	items, err := r.assignments.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if match(&items[i]) {
			a := items[i]
			return &a, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (r *GuideRepository) ListByStudent(ctx context.Context, studentID int64) ([]guide.Assignment, error) {
	return r.listAssignments(ctx, func(a *guide.Assignment) bool { return a.StudentID == studentID })
}

func (r *GuideRepository) ListByGuide(ctx context.Context, guideID int64) ([]guide.Assignment, error) {
	return r.listAssignments(ctx, func(a *guide.Assignment) bool { return a.GuideID == guideID })
}

func (r *GuideRepository) listAssignments(ctx context.Context, match func(*guide.Assignment) bool) ([]guide.Assignment, error) {
	items, err := r.assignments.load(ctx)
	if err != nil {
		return nil, err
	}

	out := []guide.Assignment{}
	for i := range items {
		if match(&items[i]) {
			out = append(out, items[i])
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *GuideRepository) UpdateAssignmentStatus(ctx context.Context, id int64, status guide.AssignmentStatus) error {
	items, err := r.assignments.load(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID == id {
			items[i].Status = status
			items[i].UpdatedAt = time.Now().UTC()
			return r.assignments.save(ctx, items)
		}
	}
	return xerrors.ErrNotFound
}

func (r *GuideRepository) AddFeedback(ctx context.Context, f *guide.FeedbackEntry) error {
	items, err := r.feedback.load(ctx)
	if err != nil {
		return err
	}

	f.ID = nextID(items, func(f guide.FeedbackEntry) int64 { return f.ID })
	f.CreatedAt = time.Now().UTC()

	return r.feedback.save(ctx, append(items, *f))
}

func (r *GuideRepository) ListFeedback(ctx context.Context, assignmentID int64) ([]guide.FeedbackEntry, error) {
	items, err := r.feedback.load(ctx)
	if err != nil {
		return nil, err
	}

	out := []guide.FeedbackEntry{}
	for _, f := range items {
		if f.AssignmentID == assignmentID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *GuideRepository) CreateWeeklyLog(ctx context.Context, l *guide.WeeklyLog) error {
	items, err := r.logs.load(ctx)
	if err != nil {
		return err
	}

	for _, existing := range items {
		if existing.AssignmentID == l.AssignmentID && existing.Week == l.Week {
			return xerrors.ErrDuplicateEntry
		}
	}

	now := time.Now().UTC()
	l.ID = nextID(items, func(l guide.WeeklyLog) int64 { return l.ID })
	l.CreatedAt = now
	l.UpdatedAt = now

	return r.logs.save(ctx, append(items, *l))
}

func (r *GuideRepository) FindWeeklyLog(ctx context.Context, assignmentID int64, week int) (*guide.WeeklyLog, error) {
	return r.findLog(ctx, func(l *guide.WeeklyLog) bool {
		return l.AssignmentID == assignmentID && l.Week == week
	})
}

func (r *GuideRepository) FindWeeklyLogByID(ctx context.Context, id int64) (*guide.WeeklyLog, error) {
	return r.findLog(ctx, func(l *guide.WeeklyLog) bool { return l.ID == id })
}

func (r *GuideRepository) findLog(ctx context.Context, match func(*guide.WeeklyLog) bool) (*guide.WeeklyLog, error) {
	items, err := r.logs.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if match(&items[i]) {
			l := items[i]
			return &l, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (r *GuideRepository) ListWeeklyLogs(ctx context.Context, assignmentID int64) ([]guide.WeeklyLog, error) {
	items, err := r.logs.load(ctx)
	if err != nil {
		return nil, err
	}

	out := []guide.WeeklyLog{}
	for _, l := range items {
		if l.AssignmentID == assignmentID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Week < out[j].Week })
	return out, nil
}

func (r *GuideRepository) UpdateWeeklyLog(ctx context.Context, l *guide.WeeklyLog) error {
	items, err := r.logs.load(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID == l.ID {
			l.CreatedAt = items[i].CreatedAt
			l.UpdatedAt = time.Now().UTC()
			items[i] = *l
			return r.logs.save(ctx, items)
		}
	}
	return xerrors.ErrNotFound
}
