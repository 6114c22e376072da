package store

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/bytedance/sonic"

	apperrors "task-board.com/task-board/internal/errors"
	"task-board.com/task-board/pkg/constants"
	model "task-board.com/task-board/pkg/models"
)

func TestSnapshot_RoundTripThroughJSON(t *testing.T) {
	s := newTestStore()
	due := time.Date(2024, 6, 1, 15, 30, 0, 0, time.UTC)
	seedMixed(t, s)
	mustAdd(t, s, model.TaskInput{Title: "with due", DueDate: &due, Priority: constants.PriorityHigh})
	_, _ = s.SetFilters(model.FilterPatch{Priority: model.Some(constants.PriorityHigh)})
	_ = s.SetSort(model.TaskSort{Field: constants.SortByDueDate, Direction: constants.SortAsc})

	before := s.VisibleTasks()

	data, err := sonic.Marshal(s.Snapshot())
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}
	var snap model.Snapshot
	if err := sonic.Unmarshal(data, &snap); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}

	fresh := New()
	if err := fresh.Restore(snap); err != nil {
		t.Fatalf("restore: %v", err)
	}

	after := fresh.VisibleTasks()
	if !reflect.DeepEqual(ids(after), ids(before)) {
		t.Fatalf("expected %v, got %v", ids(before), ids(after))
	}
	for i := range before {
		b, a := before[i], after[i]
		if a.Title != b.Title || a.Status != b.Status || a.Priority != b.Priority ||
			!a.CreatedAt.Equal(b.CreatedAt) || !a.UpdatedAt.Equal(b.UpdatedAt) {
			t.Errorf("task %s differs after restore: %+v vs %+v", b.ID, a, b)
		}
		if (a.DueDate == nil) != (b.DueDate == nil) || (a.DueDate != nil && !a.DueDate.Equal(*b.DueDate)) {
			t.Errorf("task %s due date differs after restore", b.ID)
		}
	}
	if fresh.Sort() != s.Sort() {
		t.Errorf("sort not restored: %+v", fresh.Sort())
	}
}

func TestRestore_ReplacesStateWholesale(t *testing.T) {
	s := newTestStore()
	mustAdd(t, s, model.TaskInput{Title: "old"})
	_, _ = s.SetFilters(model.FilterPatch{Search: model.Some("old")})

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	err := s.Restore(model.Snapshot{
		Version: model.SnapshotVersion,
		Tasks: []model.Task{{
			ID: "x", Title: "new", Status: constants.StatusDone, Priority: constants.PriorityLow,
			CreatedAt: now, UpdatedAt: now,
		}},
	})
	if err != nil {
		t.Fatalf("restore: %v", err)
	}

	if s.Len() != 1 {
		t.Fatalf("expected 1 task, got %d", s.Len())
	}
	if f := s.Filters(); f.Search != nil {
		t.Errorf("filters not replaced: %+v", f)
	}
	if s.Sort() != model.DefaultSort() {
		t.Errorf("expected default sort for empty snapshot sort, got %+v", s.Sort())
	}
}

func TestRestore_RejectsInvalidSnapshots(t *testing.T) {
	valid := model.Task{ID: "a", Title: "a", Status: constants.StatusToDo, Priority: constants.PriorityLow}

	cases := []struct {
		name string
		snap model.Snapshot
	}{
		{"duplicate ids", model.Snapshot{Tasks: []model.Task{valid, valid}}},
		{"missing id", model.Snapshot{Tasks: []model.Task{{Title: "x", Status: constants.StatusToDo, Priority: constants.PriorityLow}}}},
		{"bad status", model.Snapshot{Tasks: []model.Task{{ID: "b", Title: "x", Status: "Nope", Priority: constants.PriorityLow}}}},
		{"bad sort", model.Snapshot{Sort: model.TaskSort{Field: "title", Direction: constants.SortAsc}}},
		{"future version", model.Snapshot{Version: model.SnapshotVersion + 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestStore()
			kept := mustAdd(t, s, model.TaskInput{Title: "kept"})

			err := s.Restore(tc.snap)
			if !errors.Is(err, apperrors.ErrInvalidSnapshot) {
				t.Fatalf("expected invalid snapshot, got %v", err)
			}
			if _, ok := s.Get(kept.ID); !ok || s.Len() != 1 {
				t.Errorf("state changed after rejected restore")
			}
		})
	}
}
