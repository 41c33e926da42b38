package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"dropout-srv/internal/alert"
	"dropout-srv/internal/alert/repository"
	"dropout-srv/internal/alert/repository/memory"
	"dropout-srv/internal/model"
	"dropout-srv/internal/notification"
	"dropout-srv/internal/student"
	"dropout-srv/internal/user"
	"dropout-srv/pkg/log"
	"dropout-srv/pkg/paginator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

var (
	admin   = model.Scope{UserID: "admin-1", Role: model.RoleAdmin}
	mentor1 = model.Scope{UserID: "m-1", Role: model.RoleMentor}
	mentor2 = model.Scope{UserID: "m-2", Role: model.RoleMentor}
	pupil   = model.Scope{UserID: "s-1", Role: model.RoleStudent}
)

type fakeStudents struct {
	student.UseCase
	students map[string]model.Student
}

func (f *fakeStudents) Detail(ctx context.Context, id string) (model.Student, error) {
	s, ok := f.students[id]
	if !ok {
		return model.Student{}, student.ErrStudentNotFound
	}
	return s, nil
}

type fakeUsers struct {
	users     map[string]model.User
	adminsErr error
}

func (f *fakeUsers) Detail(ctx context.Context, id string) (model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return model.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUsers) List(ctx context.Context, ip user.ListInput) ([]model.User, error) {
	var out []model.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUsers) ListActiveAdmins(ctx context.Context) ([]model.User, error) {
	if f.adminsErr != nil {
		return nil, f.adminsErr
	}
	var out []model.User
	for _, u := range f.users {
		if u.Role == model.RoleAdmin && u.IsActive {
			out = append(out, u)
		}
	}
	return out, nil
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notification.Notification
	err  error
}

func (r *recordingNotifier) Send(ctx context.Context, n notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return r.err
}

func (r *recordingNotifier) kinds() []notification.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notification.Kind, 0, len(r.sent))
	for _, n := range r.sent {
		out = append(out, n.Kind)
	}
	return out
}

// flakyRepo fails transitions for selected ids.
type flakyRepo struct {
	repository.Repository
	failIDs     map[string]bool
	overdueErr  error
	transitions int
}

func (f *flakyRepo) Transition(ctx context.Context, id string, fn repository.TransitionFunc) (model.Alert, error) {
	f.transitions++
	if f.failIDs[id] {
		return model.Alert{}, errors.New("connection reset")
	}
	return f.Repository.Transition(ctx, id, fn)
}

func (f *flakyRepo) ListOverdue(ctx context.Context, opts repository.ListOverdueOptions) ([]model.Alert, error) {
	if f.overdueErr != nil {
		return nil, f.overdueErr
	}
	return f.Repository.ListOverdue(ctx, opts)
}

type testEnv struct {
	uc       *implUseCase
	repo     repository.Repository
	notifier *recordingNotifier
	users    *fakeUsers
	now      time.Time
}

func (e *testEnv) at(t time.Time) {
	e.now = t
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	students := &fakeStudents{students: map[string]model.Student{
		"s-1": {ID: "s-1", Name: "Asha Rao", ScholarID: "SCH001", MentorID: "m-1", IsActive: true},
		"s-2": {ID: "s-2", Name: "Ben Ito", ScholarID: "SCH002", MentorID: "m-2", IsActive: true},
		"s-3": {ID: "s-3", Name: "Cara Diaz", ScholarID: "SCH003", IsActive: true},
	}}
	users := &fakeUsers{users: map[string]model.User{
		"m-1":     {ID: "m-1", Name: "Meera", Email: "meera@example.com", Role: model.RoleMentor, IsActive: true},
		"m-2":     {ID: "m-2", Name: "Omar", Email: "omar@example.com", Role: model.RoleMentor, IsActive: true},
		"admin-1": {ID: "admin-1", Name: "Root", Email: "root@example.com", Role: model.RoleAdmin, IsActive: true},
		"s-user":  {ID: "s-user", Name: "Stu", Role: model.RoleStudent, IsActive: true},
	}}
	notifier := &recordingNotifier{}
	repo := memory.New(log.NewNop())

	env := &testEnv{repo: repo, notifier: notifier, users: users, now: t0}
	env.uc = New(log.NewNop(), repo, students, users, notifier, nil, alert.Options{}).(*implUseCase)
	env.uc.clock = func() time.Time { return env.now }
	return env
}

func (e *testEnv) create(t *testing.T, studentID string, bucket model.RiskBucket) model.Alert {
	t.Helper()
	a, err := e.uc.CreateRiskAlert(context.Background(), alert.CreateRiskAlertInput{
		StudentID:  studentID,
		Score:      8,
		Bucket:     bucket,
		TopFactors: []string{"attendance_percentage", "engagement_score", "avg_semester_marks", "library_hours_per_week"},
	})
	require.NoError(t, err)
	return a
}

func TestSeverityFor(t *testing.T) {
	tests := []struct {
		bucket model.RiskBucket
		want   model.Severity
	}{
		{model.RiskBucketHigh, model.SeverityHigh},
		{model.RiskBucketModerate, model.SeverityModerate},
		{model.RiskBucketLow, model.SeverityLow},
		{"unknown", model.SeverityLow},
		{"", model.SeverityLow},
	}
	for _, tt := range tests {
		t.Run(string(tt.bucket), func(t *testing.T) {
			assert.Equal(t, tt.want, severityFor(tt.bucket))
		})
	}
}

func TestCreateRiskAlert(t *testing.T) {
	t.Run("high risk with owner", func(t *testing.T) {
		env := newTestEnv(t)
		a := env.create(t, "s-1", model.RiskBucketHigh)

		assert.NotEmpty(t, a.ID)
		assert.Equal(t, "s-1", a.StudentID)
		assert.Equal(t, "m-1", a.OwnerID)
		assert.Equal(t, model.SeverityHigh, a.Severity)
		assert.Equal(t, model.AlertStatusActive, a.Status)
		assert.Equal(t, "Student Asha Rao has been flagged with high dropout risk (Score: 8.0/10)", a.Message)
		assert.Equal(t, t0.Add(24*time.Hour), a.SLADeadline)
		assert.Equal(t, 0, a.EscalationCount)
		assert.Equal(t, []model.AlertFactor{
			{Feature: "attendance_percentage", Importance: "high"},
			{Feature: "engagement_score", Importance: "high"},
			{Feature: "avg_semester_marks", Importance: "high"},
		}, a.Factors)

		stored, err := env.repo.Detail(context.Background(), a.ID)
		require.NoError(t, err)
		assert.Equal(t, a, stored)

		require.Len(t, env.notifier.sent, 1)
		n := env.notifier.sent[0]
		assert.Equal(t, notification.KindHighRisk, n.Kind)
		assert.Equal(t, notification.AudienceOwner, n.Audience)
		assert.Equal(t, []notification.Recipient{{Name: "Meera", Email: "meera@example.com"}}, n.Recipients)
		assert.Equal(t, "SCH001", n.Fields.ScholarID)
		assert.Equal(t, []string{"attendance_percentage", "engagement_score", "avg_semester_marks"}, n.Fields.Factors)
		assert.Equal(t, 24, n.Fields.ResponseHours)
	})

	t.Run("moderate risk notifies with moderate template", func(t *testing.T) {
		env := newTestEnv(t)
		a := env.create(t, "s-1", model.RiskBucketModerate)

		assert.Equal(t, model.SeverityModerate, a.Severity)
		assert.Equal(t, []notification.Kind{notification.KindModerateRisk}, env.notifier.kinds())
	})

	t.Run("low bucket is accepted without notification", func(t *testing.T) {
		env := newTestEnv(t)
		a := env.create(t, "s-1", model.RiskBucketLow)

		assert.Equal(t, model.SeverityLow, a.Severity)
		assert.Empty(t, env.notifier.sent)
	})

	t.Run("no owner skips notification", func(t *testing.T) {
		env := newTestEnv(t)
		a := env.create(t, "s-3", model.RiskBucketHigh)

		assert.Empty(t, a.OwnerID)
		assert.Empty(t, env.notifier.sent)
	})

	t.Run("notification failure is swallowed", func(t *testing.T) {
		env := newTestEnv(t)
		env.notifier.err = errors.New("smtp down")

		a := env.create(t, "s-1", model.RiskBucketHigh)
		_, err := env.repo.Detail(context.Background(), a.ID)
		assert.NoError(t, err)
	})

	t.Run("unknown student", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.uc.CreateRiskAlert(context.Background(), alert.CreateRiskAlertInput{
			StudentID: "nope",
			Score:     8,
			Bucket:    model.RiskBucketHigh,
		})
		assert.ErrorIs(t, err, alert.ErrStudentNotFound)
	})

	t.Run("invalid input", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.uc.CreateRiskAlert(context.Background(), alert.CreateRiskAlertInput{StudentID: "s-1", Score: 11})
		assert.ErrorIs(t, err, alert.ErrInvalidInput)

		_, err = env.uc.CreateRiskAlert(context.Background(), alert.CreateRiskAlertInput{Score: 5})
		assert.ErrorIs(t, err, alert.ErrInvalidInput)
	})
}

func TestCreateRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	ip := alert.CreateRiskAlertInput{StudentID: "s-1", Score: 7, Bucket: model.RiskBucketHigh}

	_, err := env.uc.Create(context.Background(), mentor1, ip)
	assert.ErrorIs(t, err, alert.ErrForbidden)

	a, err := env.uc.Create(context.Background(), admin, ip)
	require.NoError(t, err)
	assert.Equal(t, model.SeverityHigh, a.Severity)
}

func TestStateMachine(t *testing.T) {
	now := t0.Add(time.Hour)
	statuses := []model.AlertStatus{
		model.AlertStatusActive,
		model.AlertStatusAcknowledged,
		model.AlertStatusEscalated,
		model.AlertStatusResolved,
	}

	ackAllowed := map[model.AlertStatus]bool{
		model.AlertStatusActive:    true,
		model.AlertStatusEscalated: true,
	}
	resolveAllowed := map[model.AlertStatus]bool{
		model.AlertStatusActive:       true,
		model.AlertStatusAcknowledged: true,
		model.AlertStatusEscalated:    true,
	}

	for _, from := range statuses {
		t.Run(string(from), func(t *testing.T) {
			a := model.Alert{ID: "a", Status: from, ResponseNotes: "old"}

			got, err := applyAcknowledge(a, "called", now)
			if ackAllowed[from] {
				require.NoError(t, err)
				assert.Equal(t, model.AlertStatusAcknowledged, got.Status)
				require.NotNil(t, got.AcknowledgedAt)
				assert.Equal(t, now, *got.AcknowledgedAt)
				assert.Equal(t, "called", got.ResponseNotes)
			} else {
				assert.ErrorIs(t, err, alert.ErrInvalidTransition)
			}

			got, err = applyResolve(a, "", now)
			if resolveAllowed[from] {
				require.NoError(t, err)
				assert.Equal(t, model.AlertStatusResolved, got.Status)
				require.NotNil(t, got.ResolvedAt)
				assert.Equal(t, "old", got.ResponseNotes)
			} else {
				assert.ErrorIs(t, err, alert.ErrInvalidTransition)
			}
		})
	}
}

func TestDueForEscalation(t *testing.T) {
	deadline := t0.Add(24 * time.Hour)
	recent := deadline.Add(30 * time.Minute)
	old := deadline.Add(-2 * time.Hour)

	tests := []struct {
		name string
		a    model.Alert
		now  time.Time
		want bool
	}{
		{"active before deadline", model.Alert{Status: model.AlertStatusActive, SLADeadline: deadline}, deadline.Add(-time.Second), false},
		{"active at deadline", model.Alert{Status: model.AlertStatusActive, SLADeadline: deadline}, deadline, true},
		{"acknowledged overdue", model.Alert{Status: model.AlertStatusAcknowledged, SLADeadline: deadline}, deadline.Add(time.Hour), false},
		{"resolved overdue", model.Alert{Status: model.AlertStatusResolved, SLADeadline: deadline}, deadline.Add(time.Hour), false},
		{"escalated recently", model.Alert{Status: model.AlertStatusEscalated, SLADeadline: deadline, LastEscalatedAt: &recent}, deadline.Add(time.Hour), false},
		{"escalated an interval ago", model.Alert{Status: model.AlertStatusEscalated, SLADeadline: deadline, LastEscalatedAt: &recent}, recent.Add(time.Hour), true},
		{"escalated long ago", model.Alert{Status: model.AlertStatusEscalated, SLADeadline: deadline, LastEscalatedAt: &old}, deadline, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dueForEscalation(tt.a, tt.now, time.Hour))
		})
	}
}

func TestHoursOverdue(t *testing.T) {
	a := model.Alert{SLADeadline: t0}
	assert.Equal(t, 0, hoursOverdue(a, t0.Add(-time.Hour)))
	assert.Equal(t, 0, hoursOverdue(a, t0.Add(59*time.Minute)))
	assert.Equal(t, 1, hoursOverdue(a, t0.Add(time.Hour)))
	assert.Equal(t, 26, hoursOverdue(a, t0.Add(26*time.Hour+10*time.Minute)))
}

func TestSweepEscalationSchedule(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	a := env.create(t, "s-1", model.RiskBucketHigh)
	env.notifier.sent = nil

	env.at(t0.Add(23 * time.Hour))
	out, err := env.uc.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Escalated)

	env.at(t0.Add(25 * time.Hour))
	out, err = env.uc.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Candidates)
	assert.Equal(t, 1, out.Escalated)

	got, err := env.repo.Detail(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AlertStatusEscalated, got.Status)
	assert.Equal(t, 1, got.EscalationCount)
	require.NotNil(t, got.LastEscalatedAt)
	assert.Equal(t, t0.Add(25*time.Hour), *got.LastEscalatedAt)

	require.Len(t, env.notifier.sent, 1)
	n := env.notifier.sent[0]
	assert.Equal(t, notification.KindEscalation, n.Kind)
	assert.Equal(t, notification.AudienceAdministrator, n.Audience)
	assert.Equal(t, 1, n.Fields.HoursOverdue)
	assert.Equal(t, "Meera", n.Fields.OwnerName)
	assert.Equal(t, "Asha Rao", n.Fields.StudentName)
	assert.Equal(t, []notification.Recipient{{Name: "Root", Email: "root@example.com"}}, n.Recipients)

	out, err = env.uc.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Escalated)
	got, err = env.repo.Detail(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.EscalationCount)

	env.at(t0.Add(26 * time.Hour))
	out, err = env.uc.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Escalated)
	got, err = env.repo.Detail(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.EscalationCount)
	assert.Equal(t, 2, env.notifier.sent[len(env.notifier.sent)-1].Fields.HoursOverdue)

	_, err = env.uc.Resolve(ctx, mentor1, a.ID, "done")
	require.NoError(t, err)

	env.at(t0.Add(30 * time.Hour))
	out, err = env.uc.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Candidates)
}

func TestSweepUnknownOwner(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.create(t, "s-3", model.RiskBucketHigh)

	env.at(t0.Add(30 * time.Hour))
	_, err := env.uc.Sweep(ctx)
	require.NoError(t, err)

	require.Len(t, env.notifier.sent, 1)
	assert.Equal(t, notification.UnknownOwnerName, env.notifier.sent[0].Fields.OwnerName)
	assert.Equal(t, 6, env.notifier.sent[0].Fields.HoursOverdue)
}

func TestSweepContinuesPastFailures(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	bad := env.create(t, "s-1", model.RiskBucketHigh)
	env.create(t, "s-2", model.RiskBucketHigh)
	env.users.adminsErr = errors.New("directory down")

	flaky := &flakyRepo{Repository: env.repo, failIDs: map[string]bool{bad.ID: true}}
	env.uc.repo = flaky

	env.at(t0.Add(25 * time.Hour))
	out, err := env.uc.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Candidates)
	assert.Equal(t, 1, out.Escalated)
	assert.Equal(t, 1, out.Failed)

	flaky.overdueErr = errors.New("db unreachable")
	_, err = env.uc.Sweep(ctx)
	assert.Error(t, err)
}

func TestSweepHonoursCancellation(t *testing.T) {
	env := newTestEnv(t)
	env.create(t, "s-1", model.RiskBucketHigh)
	env.at(t0.Add(25 * time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := env.uc.Sweep(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, out.Escalated)

	out, err = env.uc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, out.Escalated)
}

func TestConcurrentSweepsEscalateOnce(t *testing.T) {
	env := newTestEnv(t)
	ids := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		ids = append(ids, env.create(t, "s-1", model.RiskBucketHigh).ID)
	}
	env.at(t0.Add(25 * time.Hour))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = env.uc.Sweep(context.Background())
		}()
	}
	wg.Wait()

	for _, id := range ids {
		got, err := env.repo.Detail(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, 1, got.EscalationCount)
	}
}

func TestResolveRacingEscalation(t *testing.T) {
	for i := 0; i < 20; i++ {
		env := newTestEnv(t)
		a := env.create(t, "s-1", model.RiskBucketHigh)
		env.at(t0.Add(25 * time.Hour))

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = env.uc.Sweep(context.Background())
		}()
		go func() {
			defer wg.Done()
			_, _ = env.uc.Resolve(context.Background(), mentor1, a.ID, "handled")
		}()
		wg.Wait()

		got, err := env.repo.Detail(context.Background(), a.ID)
		require.NoError(t, err)
		assert.Equal(t, model.AlertStatusResolved, got.Status)
		require.NotNil(t, got.ResolvedAt)
		assert.Equal(t, "handled", got.ResponseNotes)
		if got.EscalationCount == 1 {
			require.NotNil(t, got.LastEscalatedAt)
		} else {
			assert.Equal(t, 0, got.EscalationCount)
			assert.Nil(t, got.LastEscalatedAt)
		}
	}
}

func TestAcknowledgeAndResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("owner acknowledges then resolves", func(t *testing.T) {
		env := newTestEnv(t)
		a := env.create(t, "s-1", model.RiskBucketHigh)

		env.at(t0.Add(2 * time.Hour))
		acked, err := env.uc.Acknowledge(ctx, mentor1, a.ID, "calling family")
		require.NoError(t, err)
		assert.Equal(t, model.AlertStatusAcknowledged, acked.Status)

		env.at(t0.Add(4 * time.Hour))
		resolved, err := env.uc.Resolve(ctx, mentor1, a.ID, "")
		require.NoError(t, err)
		assert.Equal(t, model.AlertStatusResolved, resolved.Status)
		assert.Equal(t, "calling family", resolved.ResponseNotes)

		got, err := env.repo.Detail(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, resolved, got)
		assert.Equal(t, t0.Add(2*time.Hour), *got.AcknowledgedAt)
		assert.Equal(t, t0.Add(4*time.Hour), *got.ResolvedAt)

		_, err = env.uc.Acknowledge(ctx, mentor1, a.ID, "")
		assert.ErrorIs(t, err, alert.ErrInvalidTransition)
		_, err = env.uc.Resolve(ctx, admin, a.ID, "")
		assert.ErrorIs(t, err, alert.ErrInvalidTransition)
	})

	t.Run("other mentor is rejected and nothing changes", func(t *testing.T) {
		env := newTestEnv(t)
		a := env.create(t, "s-1", model.RiskBucketHigh)

		_, err := env.uc.Acknowledge(ctx, mentor2, a.ID, "not mine")
		assert.ErrorIs(t, err, alert.ErrForbidden)

		got, err := env.repo.Detail(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, a, got)
	})

	t.Run("admin may act on any alert", func(t *testing.T) {
		env := newTestEnv(t)
		a := env.create(t, "s-1", model.RiskBucketHigh)

		_, err := env.uc.Resolve(ctx, admin, a.ID, "closed by admin")
		assert.NoError(t, err)
	})

	t.Run("missing alert", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.uc.Acknowledge(ctx, admin, "missing", "")
		assert.ErrorIs(t, err, alert.ErrAlertNotFound)
		_, err = env.uc.Resolve(ctx, admin, "missing", "")
		assert.ErrorIs(t, err, alert.ErrAlertNotFound)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	str := func(s string) *string { return &s }
	status := func(s model.AlertStatus) *model.AlertStatus { return &s }

	t.Run("notes only keeps status", func(t *testing.T) {
		env := newTestEnv(t)
		a := env.create(t, "s-1", model.RiskBucketHigh)

		got, err := env.uc.Update(ctx, mentor1, a.ID, alert.UpdateInput{Notes: str("left a voicemail")})
		require.NoError(t, err)
		assert.Equal(t, model.AlertStatusActive, got.Status)
		assert.Equal(t, "left a voicemail", got.ResponseNotes)
	})

	t.Run("status goes through the state machine", func(t *testing.T) {
		env := newTestEnv(t)
		a := env.create(t, "s-1", model.RiskBucketHigh)

		got, err := env.uc.Update(ctx, mentor1, a.ID, alert.UpdateInput{Status: status(model.AlertStatusAcknowledged), Notes: str("on it")})
		require.NoError(t, err)
		assert.Equal(t, model.AlertStatusAcknowledged, got.Status)
		assert.NotNil(t, got.AcknowledgedAt)

		_, err = env.uc.Update(ctx, mentor1, a.ID, alert.UpdateInput{Status: status(model.AlertStatusEscalated)})
		assert.ErrorIs(t, err, alert.ErrInvalidTransition)
		_, err = env.uc.Update(ctx, mentor1, a.ID, alert.UpdateInput{Status: status(model.AlertStatusActive)})
		assert.ErrorIs(t, err, alert.ErrInvalidTransition)
		_, err = env.uc.Update(ctx, mentor1, a.ID, alert.UpdateInput{Status: status("bogus")})
		assert.ErrorIs(t, err, alert.ErrInvalidInput)

		got, err = env.uc.Update(ctx, mentor1, a.ID, alert.UpdateInput{Status: status(model.AlertStatusResolved)})
		require.NoError(t, err)
		assert.Equal(t, model.AlertStatusResolved, got.Status)

		_, err = env.uc.Update(ctx, mentor1, a.ID, alert.UpdateInput{Notes: str("late edit")})
		assert.ErrorIs(t, err, alert.ErrInvalidTransition)
	})

	t.Run("owner reassignment", func(t *testing.T) {
		env := newTestEnv(t)
		a := env.create(t, "s-1", model.RiskBucketHigh)

		_, err := env.uc.Update(ctx, mentor1, a.ID, alert.UpdateInput{OwnerID: str("m-2")})
		assert.ErrorIs(t, err, alert.ErrForbidden)

		_, err = env.uc.Update(ctx, admin, a.ID, alert.UpdateInput{OwnerID: str("s-user")})
		assert.ErrorIs(t, err, alert.ErrInvalidInput)
		_, err = env.uc.Update(ctx, admin, a.ID, alert.UpdateInput{OwnerID: str("ghost")})
		assert.ErrorIs(t, err, alert.ErrInvalidInput)

		got, err := env.uc.Update(ctx, admin, a.ID, alert.UpdateInput{OwnerID: str("m-2")})
		require.NoError(t, err)
		assert.Equal(t, "m-2", got.OwnerID)
		assert.Equal(t, model.AlertStatusActive, got.Status)

		_, err = env.uc.Acknowledge(ctx, mentor1, a.ID, "")
		assert.ErrorIs(t, err, alert.ErrForbidden)
		_, err = env.uc.Acknowledge(ctx, mentor2, a.ID, "")
		assert.NoError(t, err)
	})

	t.Run("empty update returns current", func(t *testing.T) {
		env := newTestEnv(t)
		a := env.create(t, "s-1", model.RiskBucketHigh)

		got, err := env.uc.Update(ctx, mentor1, a.ID, alert.UpdateInput{})
		require.NoError(t, err)
		assert.Equal(t, a, got)
	})
}

func TestDetailAndList(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	a1 := env.create(t, "s-1", model.RiskBucketHigh)
	env.at(t0.Add(time.Minute))
	a2 := env.create(t, "s-2", model.RiskBucketModerate)
	env.at(t0.Add(2 * time.Minute))
	a3 := env.create(t, "s-1", model.RiskBucketModerate)

	t.Run("detail scoping", func(t *testing.T) {
		_, err := env.uc.Detail(ctx, mentor1, a1.ID)
		assert.NoError(t, err)
		_, err = env.uc.Detail(ctx, mentor2, a1.ID)
		assert.ErrorIs(t, err, alert.ErrForbidden)
		_, err = env.uc.Detail(ctx, admin, a2.ID)
		assert.NoError(t, err)
		_, err = env.uc.Detail(ctx, admin, "missing")
		assert.ErrorIs(t, err, alert.ErrAlertNotFound)
	})

	ids := func(out alert.ListOutput) []string {
		r := make([]string, 0, len(out.Alerts))
		for _, a := range out.Alerts {
			r = append(r, a.ID)
		}
		return r
	}

	tests := []struct {
		name    string
		sc      model.Scope
		ip      alert.ListInput
		wantIDs []string
		wantErr error
	}{
		{
			name:    "admin sees all newest first",
			sc:      admin,
			wantIDs: []string{a3.ID, a2.ID, a1.ID},
		},
		{
			name:    "mentor forced to own alerts",
			sc:      mentor1,
			ip:      alert.ListInput{Filter: alert.Filter{OwnerID: "m-2"}},
			wantIDs: []string{a3.ID, a1.ID},
		},
		{
			name:    "severity filter",
			sc:      admin,
			ip:      alert.ListInput{Filter: alert.Filter{Severity: model.SeverityModerate}},
			wantIDs: []string{a3.ID, a2.ID},
		},
		{
			name:    "page",
			sc:      admin,
			ip:      alert.ListInput{Query: paginator.OffsetQuery{Skip: 1, Limit: 1}},
			wantIDs: []string{a2.ID},
		},
		{
			name:    "student role",
			sc:      pupil,
			wantErr: alert.ErrForbidden,
		},
		{
			name:    "bad status",
			sc:      admin,
			ip:      alert.ListInput{Filter: alert.Filter{Status: "closed"}},
			wantErr: alert.ErrInvalidInput,
		},
		{
			name:    "limit too large",
			sc:      admin,
			ip:      alert.ListInput{Query: paginator.OffsetQuery{Limit: 5000}},
			wantErr: alert.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := env.uc.List(ctx, tt.sc, tt.ip)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantIDs, ids(out))
			assert.Equal(t, len(tt.wantIDs), out.Pagin.Count)
		})
	}

	out, err := env.uc.List(ctx, admin, alert.ListInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.Pagin.Total)
	assert.Equal(t, paginator.DefaultLimit, out.Pagin.Limit)
}

func TestStats(t *testing.T) {
	ctx := context.Background()

	t.Run("empty", func(t *testing.T) {
		env := newTestEnv(t)
		stats, err := env.uc.Stats(ctx, admin, alert.StatsInput{})
		require.NoError(t, err)
		assert.Equal(t, alert.Stats{}, stats)
	})

	t.Run("average response time", func(t *testing.T) {
		env := newTestEnv(t)
		a1 := env.create(t, "s-1", model.RiskBucketHigh)
		a2 := env.create(t, "s-1", model.RiskBucketHigh)
		env.create(t, "s-2", model.RiskBucketHigh)

		env.at(t0.Add(2 * time.Hour))
		_, err := env.uc.Resolve(ctx, mentor1, a1.ID, "")
		require.NoError(t, err)
		env.at(t0.Add(4 * time.Hour))
		_, err = env.uc.Resolve(ctx, mentor1, a2.ID, "")
		require.NoError(t, err)

		stats, err := env.uc.Stats(ctx, admin, alert.StatsInput{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), stats.TotalAlerts)
		assert.Equal(t, int64(1), stats.ActiveAlerts)
		assert.Equal(t, int64(2), stats.ResolvedAlerts)
		assert.InDelta(t, 3.0, stats.AvgResponseTimeHours, 1e-9)

		mine, err := env.uc.Stats(ctx, mentor2, alert.StatsInput{OwnerID: "m-1"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), mine.TotalAlerts)
		assert.Equal(t, 0.0, mine.AvgResponseTimeHours)

		_, err = env.uc.Stats(ctx, pupil, alert.StatsInput{})
		assert.ErrorIs(t, err, alert.ErrForbidden)
	})
}

func TestTimestampsKeepMicrosecondPrecision(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.at(time.Date(2026, 3, 1, 8, 0, 0, 123456789, time.FixedZone("IST", 5*3600+1800)))

	a := env.create(t, "s-1", model.RiskBucketHigh)
	want := time.Date(2026, 3, 1, 2, 30, 0, 123456000, time.UTC)
	assert.Equal(t, want, a.CreatedAt)
	assert.Equal(t, want, a.UpdatedAt)
	assert.Equal(t, want.Add(24*time.Hour), a.SLADeadline)

	env.at(env.now.Add(time.Hour + 11*time.Nanosecond))
	acked, err := env.uc.Acknowledge(ctx, mentor1, a.ID, "")
	require.NoError(t, err)
	require.NotNil(t, acked.AcknowledgedAt)
	assert.Equal(t, want.Add(time.Hour), *acked.AcknowledgedAt)
	assert.Zero(t, acked.UpdatedAt.Nanosecond()%int(time.Microsecond))

	got, err := env.repo.Detail(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, acked, got)
}

func TestBuildMessage(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{8, "Student Asha has been flagged with high dropout risk (Score: 8.0/10)"},
		{7.25, "Student Asha has been flagged with high dropout risk (Score: 7.25/10)"},
		{0.5, "Student Asha has been flagged with high dropout risk (Score: 0.5/10)"},
		{10, "Student Asha has been flagged with high dropout risk (Score: 10.0/10)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, buildMessage("Asha", model.RiskBucketHigh, tt.score))
		})
	}
}
