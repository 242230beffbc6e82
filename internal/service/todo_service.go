package service

import (
	"alcyxob/lifelog-app/internal/domain"
	"alcyxob/lifelog-app/internal/repository"
	"context"
)

type TodoService interface {
	CreateTodo(ctx context.Context, userID string, todo domain.Todo) (*domain.Todo, error)
	GetTodo(ctx context.Context, userID, todoID string) (*domain.Todo, error)
	ListTodos(ctx context.Context, userID string, filter repository.TodoFilter) ([]domain.Todo, error)
	// UpdateTodo stamps CompletedAt when the todo becomes completed.
	UpdateTodo(ctx context.Context, userID, todoID string, patch domain.TodoPatch) (*domain.Todo, error)
	DeleteTodo(ctx context.Context, userID, todoID string) error
}

type todoService struct {
	todoRepo repository.TodoRepository
	calendar Calendar
}

func NewTodoService(todoRepo repository.TodoRepository, calendar Calendar) TodoService {
	return &todoService{todoRepo: todoRepo, calendar: calendar}
}

func (s *todoService) CreateTodo(ctx context.Context, userID string, todo domain.Todo) (*domain.Todo, error) {
	todo.UserID = userID
	if err := todo.Validate(); err != nil {
		return nil, err
	}
	todo.CompletedAt = nil
	if todo.Completed {
		now := s.calendar.Now().UTC()
		todo.CompletedAt = &now
	}
	if _, err := s.todoRepo.Create(ctx, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (s *todoService) GetTodo(ctx context.Context, userID, todoID string) (*domain.Todo, error) {
	todo, err := s.todoRepo.GetByID(ctx, userID, todoID)
	if err != nil {
		return nil, mapNotFound(err, ErrTodoNotFound)
	}
	return todo, nil
}

func (s *todoService) ListTodos(ctx context.Context, userID string, filter repository.TodoFilter) ([]domain.Todo, error) {
	return s.todoRepo.List(ctx, userID, filter)
}

func (s *todoService) UpdateTodo(ctx context.Context, userID, todoID string, patch domain.TodoPatch) (*domain.Todo, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	todo, err := s.GetTodo(ctx, userID, todoID)
	if err != nil {
		return nil, err
	}
	patch.Apply(todo, s.calendar.Now().UTC())
	if err := s.todoRepo.Update(ctx, todo); err != nil {
		return nil, mapNotFound(err, ErrTodoNotFound)
	}
	return todo, nil
}

func (s *todoService) DeleteTodo(ctx context.Context, userID, todoID string) error {
	return mapNotFound(s.todoRepo.Delete(ctx, userID, todoID), ErrTodoNotFound)
}
