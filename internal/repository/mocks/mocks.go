package mocks

import (
	"context"
	"io"

	"github.com/rpggio/traffichours/internal/domain/activity"
	"github.com/rpggio/traffichours/internal/domain/record"
	"github.com/stretchr/testify/mock"
)

// RecordRepository is a mock for record.RecordRepository.
type RecordRepository struct {
	mock.Mock
}

func (m *RecordRepository) Add(ctx context.Context, in record.Input) (int64, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RecordRepository) AddAll(ctx context.Context, ins []record.Input) ([]int64, error) {
	args := m.Called(ctx, ins)
	if ids, ok := args.Get(0).([]int64); ok {
		return ids, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RecordRepository) GetAll(ctx context.Context) ([]record.Record, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]record.Record); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RecordRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// SearchRepository is a mock for record.SearchRepository.
type SearchRepository struct {
	mock.Mock
}

func (m *SearchRepository) Search(ctx context.Context, query string, opts record.SearchOptions) ([]record.SearchResult, error) {
	args := m.Called(ctx, query, opts)
	if list, ok := args.Get(0).([]record.SearchResult); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// Codec is a mock for record.Codec.
type Codec struct {
	mock.Mock
}

func (m *Codec) Encode(records []record.Record) string {
	args := m.Called(records)
	return args.String(0)
}

func (m *Codec) Decode(r io.Reader) ([]record.Input, error) {
	args := m.Called(r)
	if list, ok := args.Get(0).([]record.Input); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
