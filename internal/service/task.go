package service

import (
	"context"

	"github.com/Revasall/TO-DO-List-project/internal/access"
	"github.com/Revasall/TO-DO-List-project/internal/models"
	"github.com/Revasall/TO-DO-List-project/internal/repo"
	"github.com/Revasall/TO-DO-List-project/internal/transport"
)

const (
	MinPriority = 0
	MaxPriority = 5
)

type TaskService struct {
	Repo *repo.GormRepo
}

func (s *TaskService) Create(ctx context.Context, ownerID uint, req transport.CreateTaskRequest) (*models.Task, error) {
	if req.Title == "" || len(req.Title) > 100 {
		return nil, ErrValidation
	}

	task := models.Task{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
		OwnerID:     ownerID,
	}
	if req.Priority != nil {
		if *req.Priority < MinPriority || *req.Priority > MaxPriority {
			return nil, ErrValidation
		}
		task.Priority = *req.Priority
	}

	return s.Repo.CreateTask(ctx, &task)
}

func (s *TaskService) Get(ctx context.Context, taskID, userID uint) (*models.Task, error) {
	task, err := s.Repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return access.VerifyTaskAccess(task, userID)
}

func (s *TaskService) List(ctx context.Context, ownerID uint, f repo.TaskFilter) (int64, []transport.TaskSummary, error) {
	if f.SortBy != "" && !repo.ValidSortField(f.SortBy) {
		return 0, nil, ErrValidation
	}
	return s.Repo.ListTasks(ctx, ownerID, f)
}

func (s *TaskService) Update(ctx context.Context, taskID, userID uint, req transport.PatchTaskRequest) (*models.Task, error) {
	if req.Empty() {
		return nil, ErrValidation
	}
	if req.Title != nil && (*req.Title == "" || len(*req.Title) > 100) {
		return nil, ErrValidation
	}
	if req.Priority != nil && (*req.Priority < MinPriority || *req.Priority > MaxPriority) {
		return nil, ErrValidation
	}

	task, err := s.Repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if _, err := access.VerifyTaskAccess(task, userID); err != nil {
		return nil, err
	}

	return s.Repo.PatchTask(ctx, taskID, req)
}

func (s *TaskService) Delete(ctx context.Context, taskID, userID uint) error {
	task, err := s.Repo.GetTask(ctx, taskID)
	if err != nil {
		return err
	}
	if _, err := access.VerifyTaskAccess(task, userID); err != nil {
		return err
	}

	return s.Repo.DeleteTask(ctx, taskID)
}
