package sqlite

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mayhew-amaya/taskflow-api/internal/models"
	"github.com/mayhew-amaya/taskflow-api/internal/storage"
)

// Storage is the sqlite-backed data access layer. Concurrent access is left
// to sqlite's own file locking.
type Storage struct {
	db *gorm.DB
}

// New opens the database file at path and ensures the tasks table exists.
func New(path string) (*Storage, error) {
	const op = "storage.sqlite.New"

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := db.AutoMigrate(&models.Task{}); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

// SaveTask inserts a new task. ID and timestamps are assigned by the store
// and written back into task.
func (s *Storage) SaveTask(ctx context.Context, task *models.Task) error {
	const op = "storage.sqlite.SaveTask"

	if err := s.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Task returns the task with the given id or storage.ErrTaskNotFound.
func (s *Storage) Task(ctx context.Context, id int64) (models.Task, error) {
	const op = "storage.sqlite.Task"

	var task models.Task
	err := s.db.WithContext(ctx).First(&task, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Task{}, fmt.Errorf("%s: %w", op, storage.ErrTaskNotFound)
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("%s: %w", op, err)
	}

	return task, nil
}

// Tasks lists tasks matching filter, ordered by id ascending. An empty
// result is a valid non-error outcome.
func (s *Storage) Tasks(ctx context.Context, filter storage.TaskFilter) ([]models.Task, error) {
	const op = "storage.sqlite.Tasks"

	query := s.db.WithContext(ctx).Order("id ASC")
	if filter.Completed != nil {
		query = query.Where("completed = ?", *filter.Completed)
	}

	tasks := make([]models.Task, 0)
	if err := query.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return tasks, nil
}

// UpdateTask applies only the supplied columns to the task with the given id
// and bumps updated_at. Returns the task as stored after the update.
func (s *Storage) UpdateTask(ctx context.Context, id int64, changes map[string]interface{}) (models.Task, error) {
	const op = "storage.sqlite.UpdateTask"

	var task models.Task
	err := s.db.WithContext(ctx).First(&task, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Task{}, fmt.Errorf("%s: %w", op, storage.ErrTaskNotFound)
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.db.WithContext(ctx).Model(&task).Updates(changes).Error; err != nil {
		return models.Task{}, fmt.Errorf("%s: %w", op, err)
	}

	return task, nil
}

// DeleteTask removes the task permanently. Deleting an absent id returns
// storage.ErrTaskNotFound.
func (s *Storage) DeleteTask(ctx context.Context, id int64) error {
	const op = "storage.sqlite.DeleteTask"

	tx := s.db.WithContext(ctx).Delete(&models.Task{}, id)
	if tx.Error != nil {
		return fmt.Errorf("%s: %w", op, tx.Error)
	}
	if tx.RowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrTaskNotFound)
	}

	return nil
}
