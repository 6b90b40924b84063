package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	storagemodels "github.com/mayhew-amaya/taskflow-api/internal/models"
	"github.com/mayhew-amaya/taskflow-api/internal/rest/forms/tasks"
	"github.com/mayhew-amaya/taskflow-api/internal/rest/models"
	"github.com/mayhew-amaya/taskflow-api/internal/storage"
	"github.com/mayhew-amaya/taskflow-api/internal/storage/sqlite"
	"github.com/mayhew-amaya/taskflow-api/pkg/rest/response"
)

type Task struct {
	log     *logrus.Entry
	storage *sqlite.Storage
}

func NewTaskHandler(storage *sqlite.Storage, log *logrus.Logger) *Task {
	return &Task{
		log:     logrus.NewEntry(log),
		storage: storage,
	}
}

func (h *Task) EnrichRoutes(router *gin.Engine) {
	taskRoutes := router.Group("/tasks")
	taskRoutes.POST("", h.createTaskAction)
	taskRoutes.GET("", h.listTasksAction)
	taskRoutes.GET("/:taskID", h.getTaskAction)
	taskRoutes.PUT("/:taskID", h.updateTaskAction)
	taskRoutes.PATCH("/:taskID", h.updateTaskAction)
	taskRoutes.DELETE("/:taskID", h.deleteTaskAction)
}

// createTaskAction godoc
//
//	@Summary		Create a task
//	@Description	Creates a new task. The id and timestamps are assigned by the store.
//	@Tags			tasks
//	@Accept			json
//	@Produce		json
//	@Param			request	body		tasks.CreateTaskRequest	true	"task to create"
//	@Success		201		{object}	models.Task
//	@Failure		422		{object}	map[string]interface{}
//	@Router			/tasks [post]
func (h *Task) createTaskAction(c *gin.Context) {
	const op = "handlers.Task.createTaskAction"
	log := h.log.WithField("operation", op)
	log.Info("create task")

	form, verr := tasks.NewCreateTaskForm().ParseAndValidate(c)
	if verr != nil {
		response.HandleError(verr, c)
		return
	}

	task := storagemodels.Task{
		Title:       form.(*tasks.CreateTaskForm).Title,
		Description: form.(*tasks.CreateTaskForm).Description,
	}
	if err := h.storage.SaveTask(c.Request.Context(), &task); err != nil {
		log.WithError(err).Errorf("%s: failed to create task", op)
		response.HandleError(response.ResolveError(err), c)
		return
	}

	c.JSON(http.StatusCreated, models.TaskFromStorage(task))
}

// listTasksAction godoc
//
//	@Summary		List tasks
//	@Description	Returns all tasks ordered by id ascending. An empty store yields an empty array.
//	@Tags			tasks
//	@Produce		json
//	@Param			completed	query		bool	false	"filter by completion status"
//	@Success		200			{array}		models.Task
//	@Router			/tasks [get]
func (h *Task) listTasksAction(c *gin.Context) {
	const op = "handlers.Task.listTasksAction"
	log := h.log.WithField("operation", op)
	log.Info("list tasks")

	var filter storage.TaskFilter
	if raw, ok := c.GetQuery("completed"); ok {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			ve := response.NewValidationError()
			ve.SetError("completed", response.InvalidValue, "must be a boolean")
			response.HandleError(ve, c)
			return
		}
		filter.Completed = &completed
	}

	taskList, err := h.storage.Tasks(c.Request.Context(), filter)
	if err != nil {
		log.WithError(err).Errorf("%s: failed to list tasks", op)
		response.HandleError(response.ResolveError(err), c)
		return
	}

	c.JSON(http.StatusOK, models.TaskListFromStorage(taskList))
}

// getTaskAction godoc
//
//	@Summary		Get a task
//	@Tags			tasks
//	@Produce		json
//	@Param			taskID	path		int	true	"task id"
//	@Success		200		{object}	models.Task
//	@Failure		404		{object}	map[string]interface{}
//	@Router			/tasks/{taskID} [get]
func (h *Task) getTaskAction(c *gin.Context) {
	const op = "handlers.Task.getTaskAction"
	log := h.log.WithField("operation", op)
	log.Info("get task")

	taskID, err := strconv.ParseInt(c.Param("taskID"), 10, 64)
	if err != nil {
		response.HandleError(response.NewNotFoundError("task not found"), c)
		return
	}

	task, err := h.storage.Task(c.Request.Context(), taskID)
	if err != nil {
		log.WithError(err).Errorf("%s: failed to get task", op)
		response.HandleError(response.ResolveError(err), c)
		return
	}

	c.JSON(http.StatusOK, models.TaskFromStorage(task))
}

// updateTaskAction godoc
//
//	@Summary		Update a task
//	@Description	Applies a partial update: fields omitted from the body stay unchanged. PUT and PATCH behave identically.
//	@Tags			tasks
//	@Accept			json
//	@Produce		json
//	@Param			taskID	path		int						true	"task id"
//	@Param			request	body		tasks.UpdateTaskRequest	true	"fields to change"
//	@Success		200		{object}	models.Task
//	@Failure		404		{object}	map[string]interface{}
//	@Failure		422		{object}	map[string]interface{}
//	@Router			/tasks/{taskID} [put]
func (h *Task) updateTaskAction(c *gin.Context) {
	const op = "handlers.Task.updateTaskAction"
	log := h.log.WithField("operation", op)
	log.Info("update task")

	taskID, err := strconv.ParseInt(c.Param("taskID"), 10, 64)
	if err != nil {
		response.HandleError(response.NewNotFoundError("task not found"), c)
		return
	}

	form, verr := tasks.NewUpdateTaskForm().ParseAndValidate(c)
	if verr != nil {
		response.HandleError(verr, c)
		return
	}

	task, err := h.storage.UpdateTask(c.Request.Context(), taskID, form.ConvertToMap())
	if err != nil {
		log.WithError(err).Errorf("%s: failed to update task", op)
		response.HandleError(response.ResolveError(err), c)
		return
	}

	c.JSON(http.StatusOK, models.TaskFromStorage(task))
}

// deleteTaskAction godoc
//
//	@Summary		Delete a task
//	@Description	Removes the task permanently. Deleting an already deleted id yields 404.
//	@Tags			tasks
//	@Param			taskID	path	int	true	"task id"
//	@Success		204
//	@Failure		404	{object}	map[string]interface{}
//	@Router			/tasks/{taskID} [delete]
func (h *Task) deleteTaskAction(c *gin.Context) {
	const op = "handlers.Task.deleteTaskAction"
	log := h.log.WithField("operation", op)
	log.Info("delete task")

	taskID, err := strconv.ParseInt(c.Param("taskID"), 10, 64)
	if err != nil {
		response.HandleError(response.NewNotFoundError("task not found"), c)
		return
	}

	if err := h.storage.DeleteTask(c.Request.Context(), taskID); err != nil {
		log.WithError(err).Errorf("%s: failed to delete task", op)
		response.HandleError(response.ResolveError(err), c)
		return
	}

	c.Status(http.StatusNoContent)
}
