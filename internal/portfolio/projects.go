package portfolio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"folio/internal/kv"
)

// ProjectService stores portfolio projects. The full project objects live
// in one ordered list under portfolio_projects; each project is also stored
// individually under project_<id>. The list holds zero or one entry per id.
type ProjectService struct {
	Store kv.Store
}

// List returns all projects, or an empty slice when none exist.
func (s *ProjectService) List(ctx context.Context) ([]Project, error) {
	return s.readList(ctx)
}

// Upsert saves a project. A caller-supplied id updates in place; otherwise
// a fresh id is generated. The individual record is written first, then the
// list is rewritten whole (read-modify-write, no isolation).
func (s *ProjectService) Upsert(ctx context.Context, data Project) (Project, error) {
	if data == nil {
		data = Project{}
	}
	id := data.ID()
	if id == "" {
		id = newID("project")
	}
	data["id"] = id
	data["updatedAt"] = isoTime(time.Now())

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	if err := s.Store.Set(ctx, projectKeyPrefix+id, raw); err != nil {
		return nil, fmt.Errorf("store project: %w", err)
	}

	list, err := s.readList(ctx)
	if err != nil {
		return nil, err
	}
	replaced := false
	for i, p := range list {
		if p.ID() == id {
			list[i] = data
			replaced = true
			break
		}
	}
	if !replaced {
		list = append(list, data)
	}
	if err := s.writeList(ctx, list); err != nil {
		return nil, err
	}
	return data, nil
}

// Delete removes the record and filters the id out of the list. Unknown ids
// are not distinguished from deleted ones; the call is idempotent.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if err := s.Store.Del(ctx, projectKeyPrefix+id); err != nil {
		return err
	}
	list, err := s.readList(ctx)
	if err != nil {
		return err
	}
	kept := list[:0]
	for _, p := range list {
		if p.ID() != id {
			kept = append(kept, p)
		}
	}
	return s.writeList(ctx, kept)
}

func (s *ProjectService) readList(ctx context.Context) ([]Project, error) {
	raw, err := s.Store.Get(ctx, projectListKey)
	if errors.Is(err, kv.ErrNotFound) {
		return []Project{}, nil
	}
	if err != nil {
		return nil, err
	}
	var list []Project
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []Project{}
	}
	return list, nil
}

func (s *ProjectService) writeList(ctx context.Context, list []Project) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return s.Store.Set(ctx, projectListKey, raw)
}
