package portfolio

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"folio/internal/kv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactService_SubmitThenList(t *testing.T) {
	ctx := context.Background()
	svc := &ContactService{Store: kv.NewMemory()}

	before := time.Now().Add(-time.Second)
	sub, err := svc.Submit(ctx, SubmitContactInput{
		Name:    "A",
		Email:   "a@x.com",
		Subject: "Hi",
		Message: "Hello",
	})
	require.NoError(t, err)
	after := time.Now().Add(time.Second)

	assert.NotEmpty(t, sub.ID)
	assert.Equal(t, StatusNew, sub.Status)

	ts := parseISO(sub.Timestamp)
	assert.True(t, ts.After(before) && ts.Before(after), "timestamp %s outside request window", sub.Timestamp)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, sub.ID, list[0].ID)
	assert.Equal(t, "a@x.com", list[0].Email)
	assert.Equal(t, "Hi", list[0].Subject)
	assert.Equal(t, "Hello", list[0].Message)
	assert.Equal(t, StatusNew, list[0].Status)
}

func TestContactService_ListSortsNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	svc := &ContactService{Store: store}

	// Seed records with distinct timestamps directly; Submit stamps all
	// records within the same millisecond in a tight loop.
	times := []string{
		"2026-08-01T10:00:00.000Z",
		"2026-08-03T10:00:00.000Z",
		"2026-08-02T10:00:00.000Z",
	}
	ids := make([]string, len(times))
	for i, ts := range times {
		sub := ContactSubmission{ID: newID("contact"), Name: "n", Email: "e", Subject: "s", Message: "m", Timestamp: ts, Status: StatusNew}
		raw, err := json.Marshal(&sub)
		require.NoError(t, err)
		require.NoError(t, store.Set(ctx, sub.ID, raw))
		ids[i] = sub.ID
	}
	rawIDs, err := json.Marshal(ids)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "contact_submissions", rawIDs))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "2026-08-03T10:00:00.000Z", list[0].Timestamp)
	assert.Equal(t, "2026-08-02T10:00:00.000Z", list[1].Timestamp)
	assert.Equal(t, "2026-08-01T10:00:00.000Z", list[2].Timestamp)
}

func TestContactService_ListEmpty(t *testing.T) {
	svc := &ContactService{Store: kv.NewMemory()}
	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)
}

func TestContactService_ListSkipsDanglingIndexEntries(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	svc := &ContactService{Store: store}

	sub, err := svc.Submit(ctx, SubmitContactInput{Name: "A", Email: "a@x.com", Subject: "s", Message: "m"})
	require.NoError(t, err)

	// index mentions an id with no backing record
	rawIDs, _ := json.Marshal([]string{sub.ID, "contact_0_missing"})
	require.NoError(t, store.Set(ctx, "contact_submissions", rawIDs))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, sub.ID, list[0].ID)
}

func TestContactService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	svc := &ContactService{Store: kv.NewMemory()}

	sub, err := svc.Submit(ctx, SubmitContactInput{Name: "A", Email: "a@x.com", Subject: "s", Message: "m"})
	require.NoError(t, err)
	assert.Empty(t, sub.UpdatedAt)

	updated, err := svc.UpdateStatus(ctx, sub.ID, StatusRead)
	require.NoError(t, err)
	assert.Equal(t, StatusRead, updated.Status)
	assert.NotEmpty(t, updated.UpdatedAt)

	// re-read through the store to confirm the rewrite stuck
	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, StatusRead, list[0].Status)
}

func TestContactService_UpdateStatusUnknownID(t *testing.T) {
	svc := &ContactService{Store: kv.NewMemory()}
	_, err := svc.UpdateStatus(context.Background(), "contact_0_nope", StatusRead)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContactService_Count(t *testing.T) {
	ctx := context.Background()
	svc := &ContactService{Store: kv.NewMemory()}

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	for i := 0; i < 3; i++ {
		_, err := svc.Submit(ctx, SubmitContactInput{Name: "A", Email: "a@x.com", Subject: "s", Message: "m"})
		require.NoError(t, err)
	}

	n, err = svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
