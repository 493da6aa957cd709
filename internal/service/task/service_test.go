package task

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/domain/task"
	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAssigneeID = "0190a000-0000-7000-8000-000000000001"
	testAdminID    = "0190a000-0000-7000-8000-000000000002"
	testTaskID     = "0190a000-0000-7000-8000-00000000000a"
)

type fakeTaskRepo struct {
	tasks map[string]task.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[string]task.Task)}
}

func (f *fakeTaskRepo) Create(ctx context.Context, t task.Task) (task.Task, error) {
	t.ID = testTaskID
	f.tasks[t.ID] = t
	return t, nil
}

func (f *fakeTaskRepo) GetByID(ctx context.Context, id string) (task.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return task.Task{}, task.ErrTaskNotFound
	}
	return t, nil
}

func (f *fakeTaskRepo) UpdateStatus(ctx context.Context, id string, from, to task.Status) (task.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return task.Task{}, task.ErrTaskNotFound
	}
	if t.Status != from {
		return task.Task{}, task.ErrInvalidTransition
	}
	t.Status = to
	f.tasks[id] = t
	return t, nil
}

func (f *fakeTaskRepo) Update(ctx context.Context, t task.Task) (task.Task, error) {
	if _, ok := f.tasks[t.ID]; !ok {
		return task.Task{}, task.ErrTaskNotFound
	}
	f.tasks[t.ID] = t
	return t, nil
}

func (f *fakeTaskRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.tasks[id]; !ok {
		return task.ErrTaskNotFound
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeTaskRepo) List(ctx context.Context, filter task.TaskFilter) ([]task.Task, int64, error) {
	out := []task.Task{}
	for _, t := range f.tasks {
		out = append(out, t)
	}
	return out, int64(len(out)), nil
}

func (f *fakeTaskRepo) GetByAssignee(ctx context.Context, userID string, filter task.TaskFilter) ([]task.Task, int64, error) {
	out := []task.Task{}
	for _, t := range f.tasks {
		if t.AssignedTo != nil && *t.AssignedTo == userID {
			out = append(out, t)
		}
	}
	return out, int64(len(out)), nil
}

type fakeUserRepo struct {
	users map[string]user.User
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, newUser user.User) (user.User, error) {
	return newUser, nil
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func (f *fakeUserRepo) LinkGoogleAccount(ctx context.Context, googleID string, email string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) List(ctx context.Context, filter user.ListFilter) ([]user.User, int64, error) {
	return nil, 0, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, req user.UpdateUserRequest) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	return nil
}

func authedContext(t *testing.T, userID string, role user.Role) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret-key-for-jwt"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id": userID,
		"role":    string(role),
		"type":    "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func newTestService(repo *fakeTaskRepo) task.TaskService {
	users := &fakeUserRepo{users: map[string]user.User{
		testAssigneeID: {ID: testAssigneeID, Role: user.RoleEmployee, Status: user.StatusActive},
		testAdminID:    {ID: testAdminID, Role: user.RoleAdmin, Status: user.StatusActive},
	}}
	return NewTaskService(repo, users)
}

func seedTask(repo *fakeTaskRepo, status task.Status, assignee string) {
	var assignedTo *string
	if assignee != "" {
		assignedTo = &assignee
	}
	repo.tasks[testTaskID] = task.Task{
		ID:         testTaskID,
		Title:      "Prepare sprint report",
		AssignedTo: assignedTo,
		Status:     status,
		CreatedBy:  testAdminID,
	}
}

func TestTransition_StartPendingTask(t *testing.T) {
	repo := newFakeTaskRepo()
	seedTask(repo, task.StatusPending, testAssigneeID)
	svc := newTestService(repo)
	ctx := authedContext(t, testAssigneeID, user.RoleEmployee)

	resp, err := svc.Transition(ctx, task.TransitionRequest{ID: testTaskID, NewStatus: "running"})
	require.NoError(t, err)
	assert.Equal(t, "running", resp.Status)
}

func TestTransition_PauseAndResume(t *testing.T) {
	repo := newFakeTaskRepo()
	seedTask(repo, task.StatusRunning, testAssigneeID)
	svc := newTestService(repo)
	ctx := authedContext(t, testAssigneeID, user.RoleEmployee)

	resp, err := svc.Transition(ctx, task.TransitionRequest{ID: testTaskID, NewStatus: "paused"})
	require.NoError(t, err)
	assert.Equal(t, "paused", resp.Status)

	resp, err = svc.Transition(ctx, task.TransitionRequest{ID: testTaskID, NewStatus: "running"})
	require.NoError(t, err)
	assert.Equal(t, "running", resp.Status)
}

func TestTransition_RejectsSkippingStates(t *testing.T) {
	repo := newFakeTaskRepo()
	seedTask(repo, task.StatusPending, testAssigneeID)
	svc := newTestService(repo)
	ctx := authedContext(t, testAssigneeID, user.RoleEmployee)

	_, err := svc.Transition(ctx, task.TransitionRequest{ID: testTaskID, NewStatus: "completed"})
	assert.ErrorIs(t, err, task.ErrInvalidTransition)

	// Nothing was written
	stored, _ := repo.GetByID(context.Background(), testTaskID)
	assert.Equal(t, task.StatusPending, stored.Status)
}

func TestTransition_TerminalTaskRefusesEverything(t *testing.T) {
	repo := newFakeTaskRepo()
	seedTask(repo, task.StatusCompleted, testAssigneeID)
	svc := newTestService(repo)
	ctx := authedContext(t, testAssigneeID, user.RoleEmployee)

	for _, next := range []string{"pending", "running", "paused", "cancelled"} {
		_, err := svc.Transition(ctx, task.TransitionRequest{ID: testTaskID, NewStatus: next})
		assert.ErrorIs(t, err, task.ErrTaskTerminal, "completed -> %s", next)
	}
}

func TestTransition_NonAssigneeDenied(t *testing.T) {
	repo := newFakeTaskRepo()
	seedTask(repo, task.StatusPending, testAssigneeID)
	svc := newTestService(repo)
	ctx := authedContext(t, testAdminID, user.RoleAdmin)

	_, err := svc.Transition(ctx, task.TransitionRequest{ID: testTaskID, NewStatus: "running"})
	assert.ErrorIs(t, err, task.ErrNotAssignee)
}

func TestTransition_UnassignedTaskDenied(t *testing.T) {
	repo := newFakeTaskRepo()
	seedTask(repo, task.StatusPending, "")
	svc := newTestService(repo)
	ctx := authedContext(t, testAssigneeID, user.RoleEmployee)

	_, err := svc.Transition(ctx, task.TransitionRequest{ID: testTaskID, NewStatus: "running"})
	assert.ErrorIs(t, err, task.ErrNotAssignee)
}

func TestCancelTask_NonTerminal(t *testing.T) {
	repo := newFakeTaskRepo()
	seedTask(repo, task.StatusPaused, testAssigneeID)
	svc := newTestService(repo)

	resp, err := svc.CancelTask(context.Background(), testTaskID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
}

func TestCancelTask_TerminalRejected(t *testing.T) {
	repo := newFakeTaskRepo()
	seedTask(repo, task.StatusCancelled, testAssigneeID)
	svc := newTestService(repo)

	_, err := svc.CancelTask(context.Background(), testTaskID)
	assert.ErrorIs(t, err, task.ErrTaskTerminal)
}

func TestCreateTask_UnknownAssignee(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := newTestService(repo)
	ctx := authedContext(t, testAdminID, user.RoleAdmin)

	ghost := "0190a000-0000-7000-8000-0000000000ff"
	_, err := svc.CreateTask(ctx, task.CreateTaskRequest{
		Title:      "Orphan task",
		AssignedTo: &ghost,
	})
	assert.ErrorIs(t, err, task.ErrAssigneeNotFound)
}

func TestCreateTask_StartsPending(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := newTestService(repo)
	ctx := authedContext(t, testAdminID, user.RoleAdmin)

	assignee := testAssigneeID
	resp, err := svc.CreateTask(ctx, task.CreateTaskRequest{
		Title:      "Prepare sprint report",
		AssignedTo: &assignee,
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, testAdminID, resp.CreatedBy)
}
