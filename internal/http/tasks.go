package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/bookshelf/internal/tasks"
)

const taskRequestTimeout = 5 * time.Second

// TaskRunner enqueues background maintenance and reports on its progress.
type TaskRunner interface {
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
	EnqueueAuditCleanup(ctx context.Context, retentionDays int) (string, error)
}

// TaskStatusResponse is the body of a task status lookup.
type TaskStatusResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// TaskEnqueuedResponse confirms a task was queued.
type TaskEnqueuedResponse struct {
	TaskID  string `json:"task_id"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

type TasksController struct {
	runner        TaskRunner
	retentionDays int
}

func NewTasksController(runner TaskRunner, retentionDays int) *TasksController {
	return &TasksController{runner: runner, retentionDays: retentionDays}
}

// GetTaskStatus returns the status of a queued task.
// GET /tasks/:id
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	taskID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), taskRequestTimeout)
	defer cancel()

	status, err := tc.runner.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "get task status")
		return
	}
	if status == backlite.TaskStatusNotFound {
		respondDetail(c, http.StatusNotFound, "task with this ID not found!")
		return
	}

	c.JSON(http.StatusOK, TaskStatusResponse{ID: taskID, Status: taskStatusToString(status)})
}

// RunTask enqueues a task of the given type.
// POST /tasks/:type/run
func (tc *TasksController) RunTask(c *gin.Context) {
	taskType := c.Param("type")

	ctx, cancel := context.WithTimeout(c.Request.Context(), taskRequestTimeout)
	defer cancel()

	var (
		taskID string
		err    error
	)
	switch taskType {
	case tasks.CleanupAuditEventsQueue:
		taskID, err = tc.runner.EnqueueAuditCleanup(ctx, tc.retentionDays)
	default:
		respondDetail(c, http.StatusBadRequest, fmt.Sprintf("unknown task type: %s", taskType))
		return
	}

	if err != nil {
		respondInternalError(c, err, "enqueue task")
		return
	}

	c.JSON(http.StatusAccepted, TaskEnqueuedResponse{
		TaskID:  taskID,
		Type:    taskType,
		Message: "task enqueued",
	})
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
