package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ecommerce_dataset/internal/application/generator"
	"ecommerce_dataset/internal/domain/dataset"
	"ecommerce_dataset/internal/domain/repository"
	"ecommerce_dataset/pkg/logger"
)

// MockWriter is a mock for repository.DatasetWriter
type MockWriter struct {
	mock.Mock
}

func (m *MockWriter) Replace(ctx context.Context, ds *dataset.Dataset) error {
	args := m.Called(ctx, ds)
	return args.Error(0)
}

func TestService_Run_Success(t *testing.T) {
	writer := new(MockWriter)
	svc := NewService(writer, logger.NewNop())
	cfg := generator.DefaultConfig()
	cfg.Customers = 5
	cfg.OrdersPerCustomer = dataset.Range{Low: 1, High: 1}
	cfg.ItemsPerOrder = dataset.Range{Low: 2, High: 2}

	writer.On("Replace", mock.Anything, mock.MatchedBy(func(ds *dataset.Dataset) bool {
		return len(ds.Customers) == 5 && len(ds.Orders) == 5 && len(ds.OrderItems) == 10
	})).Return(nil).Once()

	summary, err := svc.Run(context.Background(), cfg, dataset.DefaultCatalog(), 123)

	require.NoError(t, err)
	assert.Equal(t, uint64(123), summary.Seed)
	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, dataset.Counts{Customers: 5, Products: 10, Orders: 5, OrderItems: 10}, summary.Counts)
	writer.AssertExpectations(t)
}

func TestService_Run_InvalidConfigSkipsStorage(t *testing.T) {
	writer := new(MockWriter)
	svc := NewService(writer, logger.NewNop())
	cfg := generator.DefaultConfig()
	cfg.Quantity = dataset.Range{Low: 3, High: 1}

	_, err := svc.Run(context.Background(), cfg, dataset.DefaultCatalog(), 1)

	assert.ErrorIs(t, err, dataset.ErrInvalidConfig)
	writer.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
}

func TestService_Run_EmptyCatalogSkipsStorage(t *testing.T) {
	writer := new(MockWriter)
	svc := NewService(writer, logger.NewNop())

	_, err := svc.Run(context.Background(), generator.DefaultConfig(), nil, 1)

	assert.ErrorIs(t, err, dataset.ErrInvalidCatalog)
	writer.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
}

func TestService_Run_WriteError(t *testing.T) {
	writer := new(MockWriter)
	svc := NewService(writer, logger.NewNop())

	writer.On("Replace", mock.Anything, mock.Anything).Return(dataset.ErrStorageUnavailable)

	_, err := svc.Run(context.Background(), generator.DefaultConfig(), dataset.DefaultCatalog(), 1)

	assert.ErrorIs(t, err, dataset.ErrStorageUnavailable)
	assert.Contains(t, err.Error(), "write dataset")
}

func TestService_Run_SameSeedSameDataset(t *testing.T) {
	var captured []*dataset.Dataset
	writer := new(MockWriter)
	writer.On("Replace", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		captured = append(captured, args.Get(1).(*dataset.Dataset))
	}).Return(nil)
	svc := NewService(writer, nil)

	_, err := svc.Run(context.Background(), generator.DefaultConfig(), dataset.DefaultCatalog(), 555)
	require.NoError(t, err)
	_, err = svc.Run(context.Background(), generator.DefaultConfig(), dataset.DefaultCatalog(), 555)
	require.NoError(t, err)

	require.Len(t, captured, 2)
	assert.Equal(t, captured[0], captured[1])
}

// MockStager is a mock for repository.DatasetStager
type MockStager struct {
	mock.Mock
}

func (m *MockStager) Stage(ctx context.Context, ds *dataset.Dataset) (repository.PendingWrite, error) {
	args := m.Called(ctx, ds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.PendingWrite), args.Error(1)
}

// MockPending is a mock for repository.PendingWrite
type MockPending struct {
	mock.Mock
}

func (m *MockPending) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockPending) Abort(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func TestMultiWriter_CommitsOnlyAfterEveryStage(t *testing.T) {
	first, second := new(MockStager), new(MockStager)
	firstPending, secondPending := new(MockPending), new(MockPending)
	ctx := context.Background()
	ds := &dataset.Dataset{}

	var order []string
	first.On("Stage", ctx, ds).Return(firstPending, nil)
	second.On("Stage", ctx, ds).Return(secondPending, nil)
	firstPending.On("Commit", ctx).Run(func(mock.Arguments) { order = append(order, "first") }).Return(nil)
	secondPending.On("Commit", ctx).Run(func(mock.Arguments) { order = append(order, "second") }).Return(nil)

	err := repository.MultiWriter{first, second}.Replace(ctx, ds)

	require.NoError(t, err)
	assert.Equal(t, []string{"second", "first"}, order)
	firstPending.AssertNotCalled(t, "Abort", mock.Anything)
	secondPending.AssertNotCalled(t, "Abort", mock.Anything)
}

func TestMultiWriter_StageFailureAbortsEarlierStages(t *testing.T) {
	first, second, third := new(MockStager), new(MockStager), new(MockStager)
	firstPending := new(MockPending)
	ctx := context.Background()
	ds := &dataset.Dataset{}

	first.On("Stage", ctx, ds).Return(firstPending, nil)
	second.On("Stage", ctx, ds).Return(nil, errors.New("mirror down"))
	firstPending.On("Abort", ctx).Return(nil).Once()

	err := repository.MultiWriter{first, second, third}.Replace(ctx, ds)

	assert.EqualError(t, err, "mirror down")
	firstPending.AssertExpectations(t)
	firstPending.AssertNotCalled(t, "Commit", mock.Anything)
	third.AssertNotCalled(t, "Stage", mock.Anything, mock.Anything)
}

func TestMultiWriter_CommitFailureAbortsRemaining(t *testing.T) {
	first, second := new(MockStager), new(MockStager)
	firstPending, secondPending := new(MockPending), new(MockPending)
	ctx := context.Background()
	ds := &dataset.Dataset{}

	first.On("Stage", ctx, ds).Return(firstPending, nil)
	second.On("Stage", ctx, ds).Return(secondPending, nil)
	secondPending.On("Commit", ctx).Return(errors.New("commit: connection reset"))
	firstPending.On("Abort", ctx).Return(nil).Once()

	err := repository.MultiWriter{first, second}.Replace(ctx, ds)

	assert.ErrorContains(t, err, "connection reset")
	firstPending.AssertNotCalled(t, "Commit", mock.Anything)
	firstPending.AssertExpectations(t)
}

func TestMultiWriter_Empty(t *testing.T) {
	err := repository.MultiWriter{}.Replace(context.Background(), &dataset.Dataset{})

	assert.Error(t, err)
}
