package portfolio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"folio/internal/kv"
)

var ErrNotFound = errors.New("not found")

// ContactService stores contact-form submissions and the append-only
// index list that enumerates them.
type ContactService struct {
	Store kv.Store
}

type SubmitContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Submit persists a new submission with status "new" and appends its id to
// the index. The record write and the index rewrite are two independent
// store calls; a crash in between leaves an unindexed record, which List
// tolerates. No cleanup is attempted on failure.
func (s *ContactService) Submit(ctx context.Context, in SubmitContactInput) (*ContactSubmission, error) {
	sub := &ContactSubmission{
		ID:        newID("contact"),
		Name:      in.Name,
		Email:     in.Email,
		Subject:   in.Subject,
		Message:   in.Message,
		Timestamp: isoTime(time.Now()),
		Status:    StatusNew,
	}

	raw, err := json.Marshal(sub)
	if err != nil {
		return nil, err
	}
	if err := s.Store.Set(ctx, sub.ID, raw); err != nil {
		return nil, fmt.Errorf("store submission: %w", err)
	}

	ids, err := s.indexIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("read contact index: %w", err)
	}
	ids = append(ids, sub.ID)
	rawIDs, err := json.Marshal(ids)
	if err != nil {
		return nil, err
	}
	if err := s.Store.Set(ctx, contactIndexKey, rawIDs); err != nil {
		return nil, fmt.Errorf("update contact index: %w", err)
	}

	return sub, nil
}

// List resolves the whole index in one batch get and returns submissions
// newest first. Ids with no backing record are skipped rather than erroring;
// the index is not maintained transactionally.
func (s *ContactService) List(ctx context.Context) ([]*ContactSubmission, error) {
	ids, err := s.indexIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*ContactSubmission{}, nil
	}

	values, err := s.Store.MGet(ctx, ids...)
	if err != nil {
		return nil, err
	}

	subs := make([]*ContactSubmission, 0, len(values))
	for _, raw := range values {
		if raw == nil {
			continue
		}
		var sub ContactSubmission
		if err := json.Unmarshal(raw, &sub); err != nil {
			continue
		}
		subs = append(subs, &sub)
	}

	sort.Slice(subs, func(i, j int) bool {
		return parseISO(subs[i].Timestamp).After(parseISO(subs[j].Timestamp))
	})
	return subs, nil
}

// UpdateStatus merges status and a fresh updatedAt into an existing record
// and rewrites it whole. Last write wins; there is no version check.
func (s *ContactService) UpdateStatus(ctx context.Context, id, status string) (*ContactSubmission, error) {
	raw, err := s.Store.Get(ctx, id)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var sub ContactSubmission
	if err := json.Unmarshal(raw, &sub); err != nil {
		return nil, err
	}
	sub.Status = status
	sub.UpdatedAt = isoTime(time.Now())

	updated, err := json.Marshal(&sub)
	if err != nil {
		return nil, err
	}
	if err := s.Store.Set(ctx, id, updated); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Count returns the index length, for the analytics summary.
func (s *ContactService) Count(ctx context.Context) (int, error) {
	ids, err := s.indexIDs(ctx)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

func (s *ContactService) indexIDs(ctx context.Context) ([]string, error) {
	raw, err := s.Store.Get(ctx, contactIndexKey)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func parseISO(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
