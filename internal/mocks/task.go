package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/quillworks/quill-api/internal/task"
)

// MockTaskRunner implements task.Runner for testing
type MockTaskRunner struct {
	// SubmitFn allows test cases to mock the Submit behavior
	SubmitFn func(ctx context.Context, t task.Task) error

	// SubmitErr is returned by the default implementation
	SubmitErr error

	// Submitted records every task passed to Submit
	mu        sync.Mutex
	Submitted []task.Task
}

// Submit implements the task.Runner interface
func (m *MockTaskRunner) Submit(ctx context.Context, t task.Task) error {
	m.mu.Lock()
	m.Submitted = append(m.Submitted, t)
	m.mu.Unlock()

	if m.SubmitFn != nil {
		return m.SubmitFn(ctx, t)
	}

	return m.SubmitErr
}

// SubmittedCount returns how many tasks were submitted.
func (m *MockTaskRunner) SubmittedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Submitted)
}

// MockTask implements task.Task for testing
type MockTask struct {
	TaskID     uuid.UUID
	TaskType   string
	TaskStatus task.Status

	// ExecuteFn allows test cases to mock the Execute behavior
	ExecuteFn func(ctx context.Context) error
}

// ID implements the task.Task interface
func (m *MockTask) ID() uuid.UUID { return m.TaskID }

// Type implements the task.Task interface
func (m *MockTask) Type() string {
	if m.TaskType == "" {
		return task.TypePostGeneration
	}
	return m.TaskType
}

// Status implements the task.Task interface
func (m *MockTask) Status() task.Status { return m.TaskStatus }

// Execute implements the task.Task interface
func (m *MockTask) Execute(ctx context.Context) error {
	if m.ExecuteFn != nil {
		return m.ExecuteFn(ctx)
	}
	return nil
}

// MockTaskFactory implements service.TaskFactory for testing
type MockTaskFactory struct {
	// CreateTaskFn allows test cases to mock the CreateTask behavior
	CreateTaskFn func(postID uuid.UUID) (task.Task, error)

	// Err is returned by the default implementation when set
	Err error
}

// CreateTask creates a MockTask for the given post unless overridden.
func (m *MockTaskFactory) CreateTask(postID uuid.UUID) (task.Task, error) {
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(postID)
	}

	if m.Err != nil {
		return nil, m.Err
	}

	return &MockTask{TaskID: uuid.New(), TaskStatus: task.StatusPending}, nil
}
