package domain

import (
	"strings"
	"time"
)

type TodoPriority string

const (
	PriorityLow    TodoPriority = "low"
	PriorityMedium TodoPriority = "medium"
	PriorityHigh   TodoPriority = "high"
)

func (p TodoPriority) valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Todo is a one-off task.
type Todo struct {
	ID          string       `bson:"_id" json:"id"`
	UserID      string       `bson:"userId" json:"userId"`
	Title       string       `bson:"title" json:"title"`
	Description string       `bson:"description,omitempty" json:"description,omitempty"`
	DueDate     *string      `bson:"dueDate,omitempty" json:"dueDate"`
	Priority    TodoPriority `bson:"priority" json:"priority"`
	Completed   bool         `bson:"completed" json:"completed"`
	CompletedAt *time.Time   `bson:"completedAt,omitempty" json:"completedAt"`
	CreatedAt   time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time    `bson:"updatedAt" json:"updatedAt"`
}

func (t *Todo) Validate() error {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return invalid("todo title is required")
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if !t.Priority.valid() {
		return invalid("unknown priority %q", t.Priority)
	}
	if t.DueDate != nil {
		return validateDay("dueDate", *t.DueDate)
	}
	return nil
}

type TodoPatch struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	DueDate     Nullable[string] `json:"dueDate"`
	Priority    *TodoPriority    `json:"priority"`
	Completed   *bool            `json:"completed"`
}

func (p TodoPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return invalid("todo title cannot be empty")
	}
	if p.Priority != nil && !p.Priority.valid() {
		return invalid("unknown priority %q", *p.Priority)
	}
	if p.DueDate.Value != nil {
		return validateDay("dueDate", *p.DueDate.Value)
	}
	return nil
}

// Apply merges the patch. Flipping Completed to true stamps CompletedAt with
// now; flipping it back clears it.
func (p TodoPatch) Apply(t *Todo, now time.Time) {
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	p.DueDate.applyTo(&t.DueDate)
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Completed != nil && *p.Completed != t.Completed {
		t.Completed = *p.Completed
		if t.Completed {
			at := now
			t.CompletedAt = &at
		} else {
			t.CompletedAt = nil
		}
	}
}
