package service

import (
	"context"
	"time"

	"github.com/ijalalfrz/seatmap-parser/internal/app/dto"
	"github.com/stretchr/testify/mock"
)

// MockSeatMapCacher is a testify mock of SeatMapCacher.
type MockSeatMapCacher struct {
	mock.Mock
}

func NewMockSeatMapCacher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSeatMapCacher {
	m := &MockSeatMapCacher{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockSeatMapCacher) GetLockKey(format, documentHash string) string {
	return m.Called(format, documentHash).String(0)
}

func (m *MockSeatMapCacher) GetCacheKey(format, documentHash string) string {
	return m.Called(format, documentHash).String(0)
}

func (m *MockSeatMapCacher) AcquireLock(ctx context.Context, key string, timeout time.Duration) (bool, error) {
	ret := m.Called(ctx, key, timeout)
	return ret.Bool(0), ret.Error(1)
}

func (m *MockSeatMapCacher) ReleaseLock(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockSeatMapCacher) GetSeatMap(ctx context.Context, key string) (dto.SeatMapDocument, error) {
	ret := m.Called(ctx, key)
	return ret.Get(0).(dto.SeatMapDocument), ret.Error(1)
}

func (m *MockSeatMapCacher) GetMetadata(ctx context.Context, key string) (dto.Metadata, error) {
	ret := m.Called(ctx, key)
	return ret.Get(0).(dto.Metadata), ret.Error(1)
}

func (m *MockSeatMapCacher) SetSeatMap(ctx context.Context,
	key string,
	doc dto.SeatMapDocument,
	metadata dto.Metadata,
	expiration time.Duration,
) error {
	return m.Called(ctx, key, doc, metadata, expiration).Error(0)
}

// MockConversionArchiver is a testify mock of ConversionArchiver.
type MockConversionArchiver struct {
	mock.Mock
}

func NewMockConversionArchiver(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockConversionArchiver {
	m := &MockConversionArchiver{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockConversionArchiver) SaveConversion(ctx context.Context, record dto.ConversionRecord) (int64, error) {
	ret := m.Called(ctx, record)
	return ret.Get(0).(int64), ret.Error(1)
}

func (m *MockConversionArchiver) ListConversions(ctx context.Context, limit int) ([]dto.ConversionRecord, error) {
	ret := m.Called(ctx, limit)

	records, _ := ret.Get(0).([]dto.ConversionRecord)

	return records, ret.Error(1)
}
