package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Revasall/TO-DO-List-project/internal/access"
	"github.com/Revasall/TO-DO-List-project/internal/models"
	"github.com/Revasall/TO-DO-List-project/internal/repo"
	"github.com/Revasall/TO-DO-List-project/internal/transport"
)

func newTestTaskService(t *testing.T) (*TaskService, *models.User, *models.User) {
	t.Helper()

	rp := &repo.GormRepo{DB: InitTestDB(t)}
	svc := &TaskService{Repo: rp}

	owner := &models.User{Username: "john", Email: "john@x.com", PasswordHash: "x"}
	other := &models.User{Username: "jane", Email: "jane@x.com", PasswordHash: "x"}
	require.NoError(t, rp.DB.Create(owner).Error)
	require.NoError(t, rp.DB.Create(other).Error)

	return svc, owner, other
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
func boolPtr(b bool) *bool    { return &b }

func TestTaskService_Create(t *testing.T) {
	svc, owner, _ := newTestTaskService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, owner.ID, transport.CreateTaskRequest{Title: "buy milk"})
	require.NoError(t, err)
	assert.Equal(t, "buy milk", task.Title)
	assert.Equal(t, 0, task.Priority)
	assert.False(t, task.Done)
	assert.Nil(t, task.CompletedAt)
	assert.False(t, task.CreatedAt.IsZero())
	assert.Equal(t, owner.ID, task.OwnerID)
}

func TestTaskService_Create_Validation(t *testing.T) {
	svc, owner, _ := newTestTaskService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, owner.ID, transport.CreateTaskRequest{Title: ""})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, owner.ID, transport.CreateTaskRequest{Title: "ok", Priority: intPtr(9)})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, owner.ID, transport.CreateTaskRequest{Title: "ok", Priority: intPtr(-1)})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTaskService_Get_OwnershipGuard(t *testing.T) {
	svc, owner, other := newTestTaskService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, owner.ID, transport.CreateTaskRequest{Title: "buy milk"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, task.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, got.ID)

	_, err = svc.Get(ctx, task.ID, other.ID)
	assert.ErrorIs(t, err, access.ErrAccessDenied)

	_, err = svc.Get(ctx, 9999, owner.ID)
	assert.ErrorIs(t, err, repo.ErrTaskNotFound)
}

func TestTaskService_Update_DoneDrivesCompletedAt(t *testing.T) {
	svc, owner, _ := newTestTaskService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, owner.ID, transport.CreateTaskRequest{Title: "buy milk"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, task.ID, owner.ID, transport.PatchTaskRequest{Done: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, updated.Done)
	require.NotNil(t, updated.CompletedAt)
	assert.WithinDuration(t, time.Now().UTC(), *updated.CompletedAt, 5*time.Second)
	completedAt := *updated.CompletedAt

	// a patch not touching done leaves the timestamp alone
	updated, err = svc.Update(ctx, task.ID, owner.ID, transport.PatchTaskRequest{Title: strPtr("buy oat milk")})
	require.NoError(t, err)
	assert.True(t, updated.Done)
	require.NotNil(t, updated.CompletedAt)
	assert.Equal(t, completedAt.Unix(), updated.CompletedAt.Unix())

	// explicit done=false is honored and clears the timestamp
	updated, err = svc.Update(ctx, task.ID, owner.ID, transport.PatchTaskRequest{Done: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, updated.Done)
	assert.Nil(t, updated.CompletedAt)
}

func TestTaskService_Update_ExplicitZeroValues(t *testing.T) {
	svc, owner, _ := newTestTaskService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, owner.ID, transport.CreateTaskRequest{Title: "buy milk", Priority: intPtr(3)})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, task.ID, owner.ID, transport.PatchTaskRequest{Priority: intPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Priority)
}

func TestTaskService_Update_Validation(t *testing.T) {
	svc, owner, other := newTestTaskService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, owner.ID, transport.CreateTaskRequest{Title: "buy milk"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, task.ID, owner.ID, transport.PatchTaskRequest{})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Update(ctx, task.ID, owner.ID, transport.PatchTaskRequest{Title: strPtr("")})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Update(ctx, task.ID, other.ID, transport.PatchTaskRequest{Done: boolPtr(true)})
	assert.ErrorIs(t, err, access.ErrAccessDenied)
}

func TestTaskService_Delete(t *testing.T) {
	svc, owner, other := newTestTaskService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, owner.ID, transport.CreateTaskRequest{Title: "buy milk"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, task.ID, other.ID), access.ErrAccessDenied)

	require.NoError(t, svc.Delete(ctx, task.ID, owner.ID))
	assert.ErrorIs(t, svc.Delete(ctx, task.ID, owner.ID), repo.ErrTaskNotFound)
}

func TestTaskService_List(t *testing.T) {
	svc, owner, other := newTestTaskService(t)
	ctx := context.Background()

	for i, title := range []string{"one", "two", "three", "four"} {
		req := transport.CreateTaskRequest{Title: title, Priority: intPtr(i % 3)}
		task, err := svc.Create(ctx, owner.ID, req)
		require.NoError(t, err)
		if i%2 == 0 {
			_, err = svc.Update(ctx, task.ID, owner.ID, transport.PatchTaskRequest{Done: boolPtr(true)})
			require.NoError(t, err)
		}
	}
	_, err := svc.Create(ctx, other.ID, transport.CreateTaskRequest{Title: "foreign"})
	require.NoError(t, err)

	total, items, err := svc.List(ctx, owner.ID, repo.TaskFilter{Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Len(t, items, 4)
	for _, it := range items {
		assert.NotEqual(t, "foreign", it.Title)
	}

	done := true
	total, items, err = svc.List(ctx, owner.ID, repo.TaskFilter{Done: &done, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	for _, it := range items {
		assert.True(t, it.Done)
	}

	prio := 1
	total, _, err = svc.List(ctx, owner.ID, repo.TaskFilter{Priority: &prio, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	_, items, err = svc.List(ctx, owner.ID, repo.TaskFilter{SortBy: "priority", SortOrder: "desc", Limit: 10})
	require.NoError(t, err)
	require.Len(t, items, 4)

	total, items, err = svc.List(ctx, owner.ID, repo.TaskFilter{Offset: 2, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Len(t, items, 2)

	_, _, err = svc.List(ctx, owner.ID, repo.TaskFilter{SortBy: "password_hash", Limit: 10})
	assert.ErrorIs(t, err, ErrValidation)
}
