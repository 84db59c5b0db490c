package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Revasall/TO-DO-List-project/internal/models"
	"github.com/Revasall/TO-DO-List-project/internal/transport"
)

var sortFields = map[string]bool{
	"id":         true,
	"title":      true,
	"deadline":   true,
	"priority":   true,
	"created_at": true,
}

func ValidSortField(field string) bool { return sortFields[field] }

type TaskFilter struct {
	Done      *bool
	Priority  *int
	SortBy    string
	SortOrder string
	Offset    int
	Limit     int
}

func (r *GormRepo) CreateTask(ctx context.Context, t *models.Task) (*models.Task, error) {
	if err := r.DB.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

func (r *GormRepo) GetTask(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	if err := r.DB.WithContext(ctx).First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *GormRepo) ListTasks(ctx context.Context, ownerID uint, f TaskFilter) (int64, []transport.TaskSummary, error) {
	filtered := func() *gorm.DB {
		q := r.DB.WithContext(ctx).Model(&models.Task{}).Where("owner_id = ?", ownerID)
		if f.Done != nil {
			q = q.Where("done = ?", *f.Done)
		}
		if f.Priority != nil {
			q = q.Where("priority = ?", *f.Priority)
		}
		return q
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return 0, nil, err
	}

	sortBy := f.SortBy
	if sortBy == "" {
		sortBy = "id"
	}
	order := "ASC"
	if f.SortOrder == "desc" {
		order = "DESC"
	}

	items := make([]transport.TaskSummary, 0, f.Limit)
	if err := filtered().Select("id", "title", "deadline", "done").
		Order(fmt.Sprintf("%s %s", sortBy, order)).
		Offset(f.Offset).Limit(f.Limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func (r *GormRepo) PatchTask(ctx context.Context, id uint, req transport.PatchTaskRequest) (*models.Task, error) {
	var task models.Task
	if err := r.DB.WithContext(ctx).First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.Deadline != nil {
		task.Deadline = req.Deadline
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.Done != nil {
		// completed_at follows the done flag: set on the false->true
		// transition, cleared on true->false, untouched otherwise.
		if *req.Done && !task.Done {
			now := time.Now().UTC()
			task.CompletedAt = &now
		}
		if !*req.Done {
			task.CompletedAt = nil
		}
		task.Done = *req.Done
	}

	if err := r.DB.WithContext(ctx).Save(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *GormRepo) DeleteTask(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Task{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
