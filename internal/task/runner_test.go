package task

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockTask is a minimal Task implementation for runner tests.
type mockTask struct {
	id        uuid.UUID
	executeFn func(ctx context.Context) error

	mu       sync.Mutex
	executed bool
}

func newMockTask(executeFn func(ctx context.Context) error) *mockTask {
	return &mockTask{id: uuid.New(), executeFn: executeFn}
}

func (m *mockTask) ID() uuid.UUID  { return m.id }
func (m *mockTask) Type() string   { return "mock" }
func (m *mockTask) Status() Status { return StatusPending }

func (m *mockTask) Execute(ctx context.Context) error {
	m.mu.Lock()
	m.executed = true
	m.mu.Unlock()
	if m.executeFn != nil {
		return m.executeFn(ctx)
	}
	return nil
}

func (m *mockTask) wasExecuted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.executed
}

func TestTaskRunner_SubmitAndProcess(t *testing.T) {
	t.Parallel()

	runner := NewTaskRunner(RunnerConfig{WorkerCount: 2, QueueSize: 10}, testLogger())
	runner.Start()
	defer runner.Stop()

	done := make(chan struct{})
	task := newMockTask(func(ctx context.Context) error {
		close(done)
		return nil
	})

	require.NoError(t, runner.Submit(context.Background(), task))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task was not processed in time")
	}
	assert.True(t, task.wasExecuted())
}

func TestTaskRunner_QueueFull(t *testing.T) {
	t.Parallel()

	// Runner is never started, so nothing drains the queue.
	runner := NewTaskRunner(RunnerConfig{WorkerCount: 1, QueueSize: 1}, testLogger())

	require.NoError(t, runner.Submit(context.Background(), newMockTask(nil)))

	err := runner.Submit(context.Background(), newMockTask(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "queue is full")
}

func TestTaskRunner_ErrorHandler(t *testing.T) {
	t.Parallel()

	runner := NewTaskRunner(RunnerConfig{WorkerCount: 1, QueueSize: 10}, testLogger())

	handled := make(chan error, 1)
	runner.SetErrorHandler(func(tsk Task, err error) {
		handled <- err
	})
	runner.Start()
	defer runner.Stop()

	task := newMockTask(func(ctx context.Context) error {
		return errors.New("execution blew up")
	})
	require.NoError(t, runner.Submit(context.Background(), task))

	select {
	case err := <-handled:
		assert.Contains(t, err.Error(), "execution blew up")
	case <-time.After(2 * time.Second):
		t.Fatal("error handler was not invoked")
	}
}

func TestTaskRunner_StopRejectsNewWork(t *testing.T) {
	t.Parallel()

	runner := NewTaskRunner(RunnerConfig{WorkerCount: 1, QueueSize: 10}, testLogger())
	runner.Start()
	runner.Stop()

	err := runner.Submit(context.Background(), newMockTask(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stopped")

	// Stop is idempotent.
	runner.Stop()
}

func TestTaskRunner_ConcurrentWorkers(t *testing.T) {
	t.Parallel()

	runner := NewTaskRunner(RunnerConfig{WorkerCount: 4, QueueSize: 32}, testLogger())
	runner.Start()
	defer runner.Stop()

	var wg sync.WaitGroup
	const n = 16
	wg.Add(n)

	for i := 0; i < n; i++ {
		task := newMockTask(func(ctx context.Context) error {
			defer wg.Done()
			return nil
		})
		require.NoError(t, runner.Submit(context.Background(), task))
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("not all tasks were processed")
	}
}
