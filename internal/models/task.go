package models

import (
	"fmt"
	"strings"
	"time"

	"crudbase/internal/entity"
)

// Task statuses.
const (
	TaskStatusOpen  = "open"
	TaskStatusDoing = "doing"
	TaskStatusDone  = "done"
)

const maxTaskPriority = 5

type Task struct {
	Id        int64      `json:"id"`
	Title     string     `json:"title"`
	Status    string     `json:"status"`
	Priority  int        `json:"priority"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (t *Task) TableName() string {
	return "tasks"
}

func (t *Task) ID() int64 {
	return t.Id
}

func (t *Task) SetID(id int64) {
	t.Id = id
}

func (t *Task) Fields() []entity.Field {
	return []entity.Field{
		{Name: "title", Value: t.Title},
		{Name: "status", Value: t.Status},
		{Name: "priority", Value: t.Priority},
		{Name: "due_date", Value: t.DueDate},
		{Name: "created_at", Value: t.CreatedAt},
	}
}

func (t *Task) Pointers() []any {
	return []any{&t.Id, &t.Title, &t.Status, &t.Priority, &t.DueDate, &t.CreatedAt}
}

func (t *Task) Prepare() {
	if t.Status == "" {
		t.Status = TaskStatusOpen
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
}

func (t *Task) Validate() []entity.Error {
	var errs []entity.Error
	if strings.TrimSpace(t.Title) == "" {
		errs = append(errs, entity.Error{Field: "title", Message: "title is required"})
	}
	switch t.Status {
	case "", TaskStatusOpen, TaskStatusDoing, TaskStatusDone:
	default:
		errs = append(errs, entity.Error{Field: "status", Message: "status must be open, doing or done"})
	}
	if t.Priority < 0 || t.Priority > maxTaskPriority {
		errs = append(errs, entity.Error{Field: "priority", Message: fmt.Sprintf("priority must be between 0 and %d", maxTaskPriority)})
	}
	return errs
}
