package search_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/estate-backoffice/internal/domain"
	"github.com/estate-backoffice/internal/worker/search"
)

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) Publish(ctx context.Context, stream string, data []byte) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

// MockEventHandler is a mock of EventHandler
type MockEventHandler struct {
	mock.Mock
}

func (m *MockEventHandler) HandleEvent(ctx context.Context, event domain.ListingIndexEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func eventPayload(t *testing.T, event domain.ListingIndexEvent) string {
	data, err := json.Marshal(event)
	assert.NoError(t, err)
	return string(data)
}

func runWorkerUntil(t *testing.T, w *search.IndexWorker, done <-chan struct{}) {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, w.Start(context.Background()))
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not process the batch in time")
	}
	assert.NoError(t, w.Stop())
	wg.Wait()
}

func TestIndexWorker_Name(t *testing.T) {
	w := search.NewIndexWorker(&MockStreamRepository{}, &MockEventHandler{}, "test-group", 3, zap.NewNop())
	assert.Equal(t, "search-index", w.Name())
}

func TestIndexWorker_ProcessesAndAcksEvents(t *testing.T) {
	mockStream := &MockStreamRepository{}
	mockHandler := &MockEventHandler{}
	w := search.NewIndexWorker(mockStream, mockHandler, "test-group", 3, zap.NewNop())

	event := domain.ListingIndexEvent{Kind: domain.KindProperty, ID: 42, Action: domain.IndexUpsert}

	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamListingIndex, "test-group").
		Return(nil)
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamListingIndex, "test-group", mock.Anything, mock.Anything).
		Return([]domain.StreamMessage{{ID: "1-0", Data: eventPayload(t, event)}}, nil).Once()
	mockStream.On("ConsumeBatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.StreamMessage{}, nil)
	mockHandler.On("HandleEvent", mock.Anything, event).Return(nil)

	acked := make(chan struct{})
	mockStream.On("AckMessage", mock.Anything, domain.StreamListingIndex, "test-group", "1-0").
		Run(func(mock.Arguments) { close(acked) }).
		Return(nil)

	runWorkerUntil(t, w, acked)
	mockHandler.AssertNumberOfCalls(t, "HandleEvent", 1)
}

func TestIndexWorker_RequeuesFailedEventWithAttemptBump(t *testing.T) {
	mockStream := &MockStreamRepository{}
	mockHandler := &MockEventHandler{}
	w := search.NewIndexWorker(mockStream, mockHandler, "test-group", 3, zap.NewNop())

	event := domain.ListingIndexEvent{Kind: domain.KindProperty, ID: 42, Action: domain.IndexUpsert}

	mockStream.On("CreateConsumerGroup", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	mockStream.On("ConsumeBatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.StreamMessage{{ID: "1-0", Data: eventPayload(t, event)}}, nil).Once()
	mockStream.On("ConsumeBatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.StreamMessage{}, nil)
	mockHandler.On("HandleEvent", mock.Anything, event).
		Return(assert.AnError)

	var requeued domain.ListingIndexEvent
	mockStream.On("Publish", mock.Anything, domain.StreamListingIndex, mock.Anything).
		Run(func(args mock.Arguments) {
			assert.NoError(t, json.Unmarshal(args.Get(2).([]byte), &requeued))
		}).
		Return(nil)

	acked := make(chan struct{})
	mockStream.On("AckMessage", mock.Anything, mock.Anything, mock.Anything, "1-0").
		Run(func(mock.Arguments) { close(acked) }).
		Return(nil)

	runWorkerUntil(t, w, acked)
	assert.Equal(t, 1, requeued.Attempt)
	assert.Equal(t, int64(42), requeued.ID)
}

func TestIndexWorker_DropsEventAfterMaxRetries(t *testing.T) {
	mockStream := &MockStreamRepository{}
	mockHandler := &MockEventHandler{}
	w := search.NewIndexWorker(mockStream, mockHandler, "test-group", 3, zap.NewNop())

	// Attempt 2 of max 3: the next failure is final.
	event := domain.ListingIndexEvent{Kind: domain.KindOffice, ID: 7, Action: domain.IndexDelete, Attempt: 2}

	mockStream.On("CreateConsumerGroup", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	mockStream.On("ConsumeBatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.StreamMessage{{ID: "1-0", Data: eventPayload(t, event)}}, nil).Once()
	mockStream.On("ConsumeBatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.StreamMessage{}, nil)
	mockHandler.On("HandleEvent", mock.Anything, event).Return(assert.AnError)

	acked := make(chan struct{})
	mockStream.On("AckMessage", mock.Anything, mock.Anything, mock.Anything, "1-0").
		Run(func(mock.Arguments) { close(acked) }).
		Return(nil)

	runWorkerUntil(t, w, acked)
	mockStream.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestIndexWorker_AcksMalformedMessages(t *testing.T) {
	mockStream := &MockStreamRepository{}
	mockHandler := &MockEventHandler{}
	w := search.NewIndexWorker(mockStream, mockHandler, "test-group", 3, zap.NewNop())

	mockStream.On("CreateConsumerGroup", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	mockStream.On("ConsumeBatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.StreamMessage{{ID: "1-0", Data: "{not json"}}, nil).Once()
	mockStream.On("ConsumeBatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.StreamMessage{}, nil)

	acked := make(chan struct{})
	mockStream.On("AckMessage", mock.Anything, mock.Anything, mock.Anything, "1-0").
		Run(func(mock.Arguments) { close(acked) }).
		Return(nil)

	runWorkerUntil(t, w, acked)
	mockHandler.AssertNotCalled(t, "HandleEvent", mock.Anything, mock.Anything)
}
