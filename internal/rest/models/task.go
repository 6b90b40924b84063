package models

import (
	"time"

	storagemodels "github.com/mayhew-amaya/taskflow-api/internal/models"
)

// Task is the API representation of a task, decoupled from the storage row.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func TaskFromStorage(task storagemodels.Task) Task {
	return Task{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func TaskListFromStorage(tasks []storagemodels.Task) []Task {
	list := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		list = append(list, TaskFromStorage(task))
	}
	return list
}
