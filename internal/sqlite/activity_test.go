package sqlite

import (
	"context"
	"testing"

	"github.com/rpggio/traffichours/internal/domain/activity"
	"github.com/stretchr/testify/require"
)

func TestActivityRepository_LogList(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewActivityRepository(db)
	recordID := int64(1)
	entry1 := &activity.ActivityEntry{
		ActivityType: activity.TypeRecordAdded,
		RecordID:     &recordID,
		Summary:      "added record 1",
	}
	entry2 := &activity.ActivityEntry{
		ActivityType: activity.TypeRecordsImported,
		BatchID:      "batch-1",
		Summary:      "imported 3 records",
		Details:      `{"imported":3,"parsed":3}`,
	}

	require.NoError(t, repo.Log(ctx, entry1))
	require.NoError(t, repo.Log(ctx, entry2))
	require.NotZero(t, entry1.ID)
	require.Greater(t, entry2.ID, entry1.ID)

	entries, err := repo.List(ctx, activity.ListActivityOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, entry2.ActivityType, entries[0].ActivityType)
	require.Equal(t, "batch-1", entries[0].BatchID)
	require.Nil(t, entries[0].RecordID)
	require.Equal(t, entry1.ActivityType, entries[1].ActivityType)
	require.NotNil(t, entries[1].RecordID)
	require.Equal(t, recordID, *entries[1].RecordID)
}

func TestActivityRepository_Filters(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewActivityRepository(db)
	id1, id2 := int64(1), int64(2)
	require.NoError(t, repo.Log(ctx, &activity.ActivityEntry{ActivityType: activity.TypeRecordAdded, RecordID: &id1, Summary: "a"}))
	require.NoError(t, repo.Log(ctx, &activity.ActivityEntry{ActivityType: activity.TypeRecordAdded, RecordID: &id2, Summary: "b"}))
	require.NoError(t, repo.Log(ctx, &activity.ActivityEntry{ActivityType: activity.TypeRecordDeleted, RecordID: &id1, Summary: "c"}))

	deleted := activity.TypeRecordDeleted
	entries, err := repo.List(ctx, activity.ListActivityOptions{ActivityType: &deleted})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "c", entries[0].Summary)

	entries, err = repo.List(ctx, activity.ListActivityOptions{RecordID: &id1})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	entries, err = repo.List(ctx, activity.ListActivityOptions{Limit: 1})
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestActivityRepository_OffsetWithoutLimit(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewActivityRepository(db)
	for _, summary := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Log(ctx, &activity.ActivityEntry{ActivityType: activity.TypeRecordAdded, Summary: summary}))
	}

	entries, err := repo.List(ctx, activity.ListActivityOptions{Offset: 1})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "b", entries[0].Summary)
	require.Equal(t, "a", entries[1].Summary)

	entries, err = repo.List(ctx, activity.ListActivityOptions{Limit: 1, Offset: 2})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "a", entries[0].Summary)
}
