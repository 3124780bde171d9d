package record_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rpggio/traffichours/internal/domain/activity"
	"github.com/rpggio/traffichours/internal/domain/record"
	"github.com/rpggio/traffichours/internal/repository"
	"github.com/rpggio/traffichours/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var shift = record.Input{Date: "2024-01-05", StartTime: "08:00", EndTime: "16:30", Comments: "north gate"}

func TestRecordService_Add(t *testing.T) {
	ctx := context.Background()

	recordsRepo := &mocks.RecordRepository{}
	activitiesRepo := &mocks.ActivityRepository{}

	recordsRepo.On("Add", ctx, shift).Return(int64(3), nil)
	activitiesRepo.On("Log", ctx, mock.MatchedBy(func(e *activity.ActivityEntry) bool {
		return e.ActivityType == activity.TypeRecordAdded && e.RecordID != nil && *e.RecordID == 3
	})).Return(nil)

	svc := record.NewService(recordsRepo, activitiesRepo, nil, nil, record.ImportOptions{}, nil)
	rec, err := svc.Add(ctx, shift)
	require.NoError(t, err)
	require.Equal(t, int64(3), rec.ID)
	require.Equal(t, shift, rec.Input())

	recordsRepo.AssertExpectations(t)
	activitiesRepo.AssertExpectations(t)
}

func TestRecordService_Add_RequiresFields(t *testing.T) {
	ctx := context.Background()
	recordsRepo := &mocks.RecordRepository{}
	svc := record.NewService(recordsRepo, nil, nil, nil, record.ImportOptions{}, nil)

	for _, in := range []record.Input{
		{StartTime: "08:00", EndTime: "09:00"},
		{Date: "2024-01-05", EndTime: "09:00"},
		{Date: "2024-01-05", StartTime: "08:00", EndTime: "   "},
	} {
		_, err := svc.Add(ctx, in)
		require.ErrorIs(t, err, record.ErrInvalidInput)
	}
	recordsRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestRecordService_Add_ActivityFailureIgnored(t *testing.T) {
	ctx := context.Background()

	recordsRepo := &mocks.RecordRepository{}
	activitiesRepo := &mocks.ActivityRepository{}
	recordsRepo.On("Add", ctx, shift).Return(int64(1), nil)
	activitiesRepo.On("Log", ctx, mock.Anything).Return(errors.New("log table missing"))

	svc := record.NewService(recordsRepo, activitiesRepo, nil, nil, record.ImportOptions{}, nil)
	rec, err := svc.Add(ctx, shift)
	require.NoError(t, err)
	require.Equal(t, int64(1), rec.ID)
}

func TestRecordService_Add_StorageUnavailable(t *testing.T) {
	ctx := context.Background()

	recordsRepo := &mocks.RecordRepository{}
	recordsRepo.On("Add", ctx, shift).Return(int64(0), repository.ErrStorageUnavailable)

	svc := record.NewService(recordsRepo, nil, nil, nil, record.ImportOptions{}, nil)
	_, err := svc.Add(ctx, shift)
	require.ErrorIs(t, err, repository.ErrStorageUnavailable)
}

func TestRecordService_Delete(t *testing.T) {
	ctx := context.Background()

	recordsRepo := &mocks.RecordRepository{}
	activitiesRepo := &mocks.ActivityRepository{}
	recordsRepo.On("Delete", ctx, int64(42)).Return(true, nil)
	activitiesRepo.On("Log", ctx, mock.MatchedBy(func(e *activity.ActivityEntry) bool {
		return e.ActivityType == activity.TypeRecordDeleted && e.RecordID != nil && *e.RecordID == 42
	})).Return(nil)

	svc := record.NewService(recordsRepo, activitiesRepo, nil, nil, record.ImportOptions{}, nil)
	require.NoError(t, svc.Delete(ctx, 42))
	recordsRepo.AssertExpectations(t)
	activitiesRepo.AssertExpectations(t)
}

func TestRecordService_Delete_MissingIDNotLogged(t *testing.T) {
	ctx := context.Background()

	recordsRepo := &mocks.RecordRepository{}
	activitiesRepo := &mocks.ActivityRepository{}
	recordsRepo.On("Delete", ctx, int64(99)).Return(false, nil)

	svc := record.NewService(recordsRepo, activitiesRepo, nil, nil, record.ImportOptions{}, nil)
	require.NoError(t, svc.Delete(ctx, 99))
	recordsRepo.AssertExpectations(t)
	activitiesRepo.AssertNotCalled(t, "Log", mock.Anything, mock.Anything)
}

func TestRecordService_Export_Empty(t *testing.T) {
	ctx := context.Background()

	recordsRepo := &mocks.RecordRepository{}
	codec := &mocks.Codec{}
	recordsRepo.On("GetAll", ctx).Return([]record.Record{}, nil)

	svc := record.NewService(recordsRepo, nil, nil, codec, record.ImportOptions{}, nil)
	result, err := svc.Export(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, result.Count)
	require.Equal(t, record.MsgNoRecordsToExport, result.Message)
	require.Empty(t, result.CSV)
	codec.AssertNotCalled(t, "Encode", mock.Anything)
}

func TestRecordService_Export(t *testing.T) {
	ctx := context.Background()

	recs := []record.Record{{ID: 1, Date: "2024-01-05", StartTime: "08:00", EndTime: "09:00"}}
	recordsRepo := &mocks.RecordRepository{}
	codec := &mocks.Codec{}
	recordsRepo.On("GetAll", ctx).Return(recs, nil)
	codec.On("Encode", recs).Return("csv text")

	svc := record.NewService(recordsRepo, nil, nil, codec, record.ImportOptions{}, nil)
	result, err := svc.Export(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, result.Count)
	require.Equal(t, "csv text", result.CSV)
	require.Equal(t, record.ExportFileName, result.FileName)
}

func TestRecordService_Import_NoValidRecords(t *testing.T) {
	ctx := context.Background()

	recordsRepo := &mocks.RecordRepository{}
	codec := &mocks.Codec{}
	codec.On("Decode", mock.Anything).Return([]record.Input{}, nil)

	svc := record.NewService(recordsRepo, nil, nil, codec, record.ImportOptions{}, nil)
	result, err := svc.Import(ctx, strings.NewReader("Date\n"))
	require.NoError(t, err)
	require.Equal(t, 0, result.Imported)
	require.Equal(t, record.MsgNoValidRecords, result.Message)
	recordsRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestRecordService_Import(t *testing.T) {
	ctx := context.Background()

	second := record.Input{Date: "2024-01-06", StartTime: "08:00", EndTime: "09:00"}
	recordsRepo := &mocks.RecordRepository{}
	activitiesRepo := &mocks.ActivityRepository{}
	codec := &mocks.Codec{}
	codec.On("Decode", mock.Anything).Return([]record.Input{shift, second}, nil)
	recordsRepo.On("Add", ctx, shift).Return(int64(1), nil).Once()
	recordsRepo.On("Add", ctx, second).Return(int64(2), nil).Once()
	activitiesRepo.On("Log", ctx, mock.MatchedBy(func(e *activity.ActivityEntry) bool {
		return e.ActivityType == activity.TypeRecordsImported && e.BatchID != ""
	})).Return(nil)

	svc := record.NewService(recordsRepo, activitiesRepo, nil, codec, record.ImportOptions{}, nil)
	result, err := svc.Import(ctx, strings.NewReader("ignored"))
	require.NoError(t, err)
	require.Equal(t, 2, result.Parsed)
	require.Equal(t, 2, result.Imported)
	require.Equal(t, "Successfully imported 2 records.", result.Message)
	require.NotEmpty(t, result.BatchID)

	recordsRepo.AssertExpectations(t)
	activitiesRepo.AssertExpectations(t)
}

func TestRecordService_Import_PartialFailure(t *testing.T) {
	ctx := context.Background()

	second := record.Input{Date: "2024-01-06", StartTime: "08:00", EndTime: "09:00"}
	third := record.Input{Date: "2024-01-07", StartTime: "08:00", EndTime: "09:00"}
	recordsRepo := &mocks.RecordRepository{}
	codec := &mocks.Codec{}
	codec.On("Decode", mock.Anything).Return([]record.Input{shift, second, third}, nil)
	recordsRepo.On("Add", ctx, shift).Return(int64(1), nil).Once()
	recordsRepo.On("Add", ctx, second).Return(int64(0), repository.ErrStorageUnavailable).Once()

	svc := record.NewService(recordsRepo, nil, nil, codec, record.ImportOptions{}, nil)
	result, err := svc.Import(ctx, strings.NewReader("ignored"))
	require.ErrorIs(t, err, record.ErrImportIncomplete)
	require.ErrorIs(t, err, repository.ErrStorageUnavailable)
	require.Equal(t, 3, result.Parsed)
	require.Equal(t, 1, result.Imported)
	recordsRepo.AssertNotCalled(t, "Add", ctx, third)
}

func TestRecordService_Import_Atomic(t *testing.T) {
	ctx := context.Background()

	inputs := []record.Input{shift, shift}
	recordsRepo := &mocks.RecordRepository{}
	codec := &mocks.Codec{}
	codec.On("Decode", mock.Anything).Return(inputs, nil)
	recordsRepo.On("AddAll", ctx, inputs).Return([]int64{1, 2}, nil)

	svc := record.NewService(recordsRepo, nil, nil, codec, record.ImportOptions{Atomic: true}, nil)
	result, err := svc.Import(ctx, strings.NewReader("ignored"))
	require.NoError(t, err)
	require.Equal(t, 2, result.Imported)
	recordsRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestRecordService_Import_AtomicFailure(t *testing.T) {
	ctx := context.Background()

	inputs := []record.Input{shift}
	recordsRepo := &mocks.RecordRepository{}
	codec := &mocks.Codec{}
	codec.On("Decode", mock.Anything).Return(inputs, nil)
	recordsRepo.On("AddAll", ctx, inputs).Return(nil, repository.ErrStorageUnavailable)

	svc := record.NewService(recordsRepo, nil, nil, codec, record.ImportOptions{Atomic: true}, nil)
	result, err := svc.Import(ctx, strings.NewReader("ignored"))
	require.ErrorIs(t, err, repository.ErrStorageUnavailable)
	require.NotErrorIs(t, err, record.ErrImportIncomplete)
	require.Equal(t, 0, result.Imported)
}

func TestRecordService_Import_DecodeError(t *testing.T) {
	ctx := context.Background()

	readErr := errors.New("unreadable")
	codec := &mocks.Codec{}
	codec.On("Decode", mock.Anything).Return(nil, readErr)

	svc := record.NewService(&mocks.RecordRepository{}, nil, nil, codec, record.ImportOptions{}, nil)
	_, err := svc.Import(ctx, strings.NewReader("ignored"))
	require.ErrorIs(t, err, readErr)
}

func TestRecordService_Search(t *testing.T) {
	ctx := context.Background()

	searchRepo := &mocks.SearchRepository{}
	opts := record.SearchOptions{Limit: 5}
	searchRepo.On("Search", ctx, "gate", opts).Return([]record.SearchResult{{Record: record.Record{ID: 1}}}, nil)

	svc := record.NewService(&mocks.RecordRepository{}, nil, searchRepo, nil, record.ImportOptions{}, nil)
	results, err := svc.Search(ctx, "gate", opts)
	require.NoError(t, err)
	require.Len(t, results, 1)

	_, err = record.NewService(&mocks.RecordRepository{}, nil, nil, nil, record.ImportOptions{}, nil).Search(ctx, "gate", opts)
	require.Error(t, err)
}
