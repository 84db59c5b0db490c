package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Revasall/TO-DO-List-project/internal/access"
	"github.com/Revasall/TO-DO-List-project/internal/logging"
	authmw "github.com/Revasall/TO-DO-List-project/internal/middleware/auth"
	"github.com/Revasall/TO-DO-List-project/internal/mykafka"
	"github.com/Revasall/TO-DO-List-project/internal/repo"
	"github.com/Revasall/TO-DO-List-project/internal/service"
	"github.com/Revasall/TO-DO-List-project/internal/transport"
	"github.com/Revasall/TO-DO-List-project/internal/util"
)

type TaskHTTP struct {
	Svc      *service.TaskService
	Producer *mykafka.Producer
}

func taskID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "task id is not a number")
	}
	return uint(id), nil
}

func taskError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repo.ErrTaskNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, access.ErrAccessDenied):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrValidation):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	default:
		logging.FromContext(c.Request().Context()).Error("task_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}

func (h *TaskHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "task_create")

	var req transport.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("task_create_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user := authmw.CurrentUser(c)
	task, err := h.Svc.Create(ctx, user.ID, req)
	if err != nil {
		return taskError(c, err)
	}

	h.publish(c, task.ID, map[string]interface{}{
		"type":    "task_created",
		"task_id": task.ID,
		"user_id": user.ID,
	})

	l.Info("task_created", "task_id", task.ID)
	return c.JSON(http.StatusCreated, task)
}

func (h *TaskHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "task_list")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("limit"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	filter := repo.TaskFilter{
		SortBy:    c.QueryParam("sort"),
		SortOrder: c.QueryParam("sort_order"),
		Offset:    offset,
		Limit:     limit,
	}
	if v := c.QueryParam("status"); v != "" {
		done, err := strconv.ParseBool(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "status must be a boolean")
		}
		filter.Done = &done
	}
	if v := c.QueryParam("priority"); v != "" {
		prio, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "priority must be a number")
		}
		filter.Priority = &prio
	}

	user := authmw.CurrentUser(c)
	total, items, err := h.Svc.List(ctx, user.ID, filter)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity,
				fmt.Sprintf("invalid sort field: %s", filter.SortBy))
		}
		return taskError(c, err)
	}

	l.Info("task_list_success", "total", total)
	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

func (h *TaskHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := taskID(c)
	if err != nil {
		return err
	}

	user := authmw.CurrentUser(c)
	task, err := h.Svc.Get(ctx, id, user.ID)
	if err != nil {
		return taskError(c, err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *TaskHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "task_update")

	id, err := taskID(c)
	if err != nil {
		return err
	}

	var req transport.PatchTaskRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("task_update_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user := authmw.CurrentUser(c)
	task, err := h.Svc.Update(ctx, id, user.ID, req)
	if err != nil {
		return taskError(c, err)
	}

	if req.Done != nil && *req.Done {
		h.publish(c, task.ID, map[string]interface{}{
			"type":    "task_completed",
			"task_id": task.ID,
			"user_id": user.ID,
		})
	}

	return c.JSON(http.StatusOK, task)
}

func (h *TaskHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "task_delete")

	id, err := taskID(c)
	if err != nil {
		return err
	}

	user := authmw.CurrentUser(c)
	if err := h.Svc.Delete(ctx, id, user.ID); err != nil {
		return taskError(c, err)
	}

	h.publish(c, id, map[string]interface{}{
		"type":    "task_deleted",
		"task_id": id,
		"user_id": user.ID,
	})

	l.Info("task_deleted", "task_id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *TaskHTTP) publish(c echo.Context, taskID uint, event map[string]interface{}) {
	ctx := c.Request().Context()
	if err := h.Producer.PublishEvent(ctx, "task_events", fmt.Sprint(taskID), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "topic", "task_events", "error", err)
	}
}
