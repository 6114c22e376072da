package store

import (
	"errors"
	"reflect"
	"testing"
	"time"

	apperrors "task-board.com/task-board/internal/errors"
	"task-board.com/task-board/pkg/constants"
	model "task-board.com/task-board/pkg/models"
)

func seedMixed(t *testing.T, s *Store) []model.Task {
	t.Helper()
	return []model.Task{
		mustAdd(t, s, model.TaskInput{Title: "Fix login bug", Status: constants.StatusToDo, Priority: constants.PriorityHigh, Assignee: "Jane Smith"}),
		mustAdd(t, s, model.TaskInput{Title: "Write release notes", Description: "Mention the LOGIN fix", Status: constants.StatusDone, Priority: constants.PriorityLow}),
		mustAdd(t, s, model.TaskInput{Title: "Plan sprint", Status: constants.StatusDone, Priority: constants.PriorityHigh, Assignee: "Bob"}),
		mustAdd(t, s, model.TaskInput{Title: "Review PR", Status: constants.StatusInProgress, Priority: constants.PriorityMedium, Assignee: "jane"}),
	}
}

func TestVisibleTasks_NoFiltersReturnsEverything(t *testing.T) {
	s := newTestStore()
	tasks := seedMixed(t, s)

	got := s.VisibleTasks()
	if len(got) != len(tasks) {
		t.Fatalf("expected %d tasks, got %d", len(tasks), len(got))
	}

	// default sort is createdAt desc
	want := []string{tasks[3].ID, tasks[2].ID, tasks[1].ID, tasks[0].ID}
	if !reflect.DeepEqual(ids(got), want) {
		t.Errorf("expected %v, got %v", want, ids(got))
	}

	if again := s.VisibleTasks(); !reflect.DeepEqual(ids(again), ids(got)) {
		t.Errorf("repeated call changed order: %v vs %v", ids(again), ids(got))
	}
	if all := s.Tasks(); all[0].ID != tasks[0].ID {
		t.Errorf("sorting mutated the stored order")
	}
}

func TestVisibleTasks_StatusFilter(t *testing.T) {
	s := newTestStore()
	seedMixed(t, s)

	if _, err := s.SetFilters(model.FilterPatch{Status: model.Some(constants.StatusDone)}); err != nil {
		t.Fatal(err)
	}

	got := s.VisibleTasks()
	if len(got) != 2 {
		t.Fatalf("expected 2 done tasks, got %d", len(got))
	}
	for _, task := range got {
		if task.Status != constants.StatusDone {
			t.Errorf("unexpected status %s", task.Status)
		}
	}
}

func TestVisibleTasks_SearchIsCaseInsensitiveAcrossFields(t *testing.T) {
	s := newTestStore()
	tasks := seedMixed(t, s)

	if _, err := s.SetFilters(model.FilterPatch{Search: model.Some("LoGiN")}); err != nil {
		t.Fatal(err)
	}
	got := ids(s.VisibleTasks())
	want := []string{tasks[1].ID, tasks[0].ID}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("title/description search: expected %v, got %v", want, got)
	}

	if _, err := s.SetFilters(model.FilterPatch{Search: model.Some("JANE")}); err != nil {
		t.Fatal(err)
	}
	got = ids(s.VisibleTasks())
	want = []string{tasks[3].ID, tasks[0].ID}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("assignee search: expected %v, got %v", want, got)
	}
}

func TestVisibleTasks_CombinedFiltersIntersect(t *testing.T) {
	s := newTestStore()
	seedMixed(t, s)

	only := func(patch model.FilterPatch) map[string]bool {
		s.filters = model.TaskFilters{}
		if _, err := s.SetFilters(patch); err != nil {
			t.Fatal(err)
		}
		set := map[string]bool{}
		for _, task := range s.VisibleTasks() {
			set[task.ID] = true
		}
		return set
	}

	byStatus := only(model.FilterPatch{Status: model.Some(constants.StatusDone)})
	byPriority := only(model.FilterPatch{Priority: model.Some(constants.PriorityHigh)})
	bySearch := only(model.FilterPatch{Search: model.Some("p")})

	combined := only(model.FilterPatch{
		Status:   model.Some(constants.StatusDone),
		Priority: model.Some(constants.PriorityHigh),
		Search:   model.Some("p"),
	})

	want := map[string]bool{}
	for id := range byStatus {
		if byPriority[id] && bySearch[id] {
			want[id] = true
		}
	}
	if len(want) == 0 {
		t.Fatal("fixture should leave at least one task in the intersection")
	}
	if !reflect.DeepEqual(combined, want) {
		t.Errorf("expected intersection %v, got %v", want, combined)
	}
}

func TestSetFilters_MergeAndClear(t *testing.T) {
	s := newTestStore()

	f, err := s.SetFilters(model.FilterPatch{
		Status: model.Some(constants.StatusDone),
		Search: model.Some("x"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if f.Status == nil || f.Search == nil || f.Priority != nil {
		t.Fatalf("unexpected filters %+v", f)
	}

	// keys not supplied are kept
	f, _ = s.SetFilters(model.FilterPatch{Priority: model.Some(constants.PriorityLow)})
	if f.Status == nil || *f.Status != constants.StatusDone || f.Priority == nil || f.Search == nil {
		t.Fatalf("merge dropped keys: %+v", f)
	}

	// explicit null clears
	f, _ = s.SetFilters(model.FilterPatch{Status: model.Null[constants.TaskStatus]()})
	if f.Status != nil || f.Priority == nil {
		t.Fatalf("expected status cleared only, got %+v", f)
	}

	// empty strings are treated as cleared, never stored
	f, _ = s.SetFilters(model.FilterPatch{Search: model.Some(""), Priority: model.Some(constants.TaskPriority(""))})
	if f.Search != nil || f.Priority != nil {
		t.Fatalf("expected empty values to clear, got %+v", f)
	}
}

func TestSetFilters_RejectsUnknownValues(t *testing.T) {
	s := newTestStore()
	if _, err := s.SetFilters(model.FilterPatch{Status: model.Some(constants.StatusDone)}); err != nil {
		t.Fatal(err)
	}

	_, err := s.SetFilters(model.FilterPatch{Priority: model.Some(constants.TaskPriority("Urgent"))})
	if !errors.Is(err, apperrors.ErrInvalidPriority) {
		t.Fatalf("expected invalid priority, got %v", err)
	}
	if f := s.Filters(); f.Status == nil || f.Priority != nil {
		t.Errorf("filters changed after rejected patch: %+v", f)
	}
}

func TestSort_PriorityDescending(t *testing.T) {
	s := newTestStore()
	low := mustAdd(t, s, model.TaskInput{Title: "low", Priority: constants.PriorityLow})
	high := mustAdd(t, s, model.TaskInput{Title: "high", Priority: constants.PriorityHigh})
	medium := mustAdd(t, s, model.TaskInput{Title: "medium", Priority: constants.PriorityMedium})

	if err := s.SetSort(model.TaskSort{Field: constants.SortByPriority, Direction: constants.SortDesc}); err != nil {
		t.Fatal(err)
	}
	want := []string{high.ID, medium.ID, low.ID}
	if got := ids(s.VisibleTasks()); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSort_CreatedAt(t *testing.T) {
	s := newTestStore()
	t1 := mustAdd(t, s, model.TaskInput{Title: "t1"})
	t2 := mustAdd(t, s, model.TaskInput{Title: "t2"})
	t3 := mustAdd(t, s, model.TaskInput{Title: "t3"})

	_ = s.SetSort(model.TaskSort{Field: constants.SortByCreatedAt, Direction: constants.SortAsc})
	if got := ids(s.VisibleTasks()); !reflect.DeepEqual(got, []string{t1.ID, t2.ID, t3.ID}) {
		t.Errorf("asc: got %v", got)
	}

	_ = s.SetSort(model.TaskSort{Field: constants.SortByCreatedAt, Direction: constants.SortDesc})
	if got := ids(s.VisibleTasks()); !reflect.DeepEqual(got, []string{t3.ID, t2.ID, t1.ID}) {
		t.Errorf("desc: got %v", got)
	}
}

func TestSort_TiesKeepInsertionOrder(t *testing.T) {
	s := newTestStore()
	a := mustAdd(t, s, model.TaskInput{Title: "a", Priority: constants.PriorityHigh})
	b := mustAdd(t, s, model.TaskInput{Title: "b", Priority: constants.PriorityHigh})
	c := mustAdd(t, s, model.TaskInput{Title: "c", Priority: constants.PriorityHigh})

	for _, dir := range []constants.SortDirection{constants.SortAsc, constants.SortDesc} {
		_ = s.SetSort(model.TaskSort{Field: constants.SortByPriority, Direction: dir})
		if got := ids(s.VisibleTasks()); !reflect.DeepEqual(got, []string{a.ID, b.ID, c.ID}) {
			t.Errorf("%s: expected stable order, got %v", dir, got)
		}
	}
}

func TestSort_DueDateMissingValuesGoLast(t *testing.T) {
	s := newTestStore()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	later := base.Add(48 * time.Hour)

	none1 := mustAdd(t, s, model.TaskInput{Title: "none1"})
	late := mustAdd(t, s, model.TaskInput{Title: "late", DueDate: &later})
	none2 := mustAdd(t, s, model.TaskInput{Title: "none2"})
	early := mustAdd(t, s, model.TaskInput{Title: "early", DueDate: &base})

	_ = s.SetSort(model.TaskSort{Field: constants.SortByDueDate, Direction: constants.SortAsc})
	if got := ids(s.VisibleTasks()); !reflect.DeepEqual(got, []string{early.ID, late.ID, none1.ID, none2.ID}) {
		t.Errorf("asc: got %v", got)
	}

	_ = s.SetSort(model.TaskSort{Field: constants.SortByDueDate, Direction: constants.SortDesc})
	if got := ids(s.VisibleTasks()); !reflect.DeepEqual(got, []string{late.ID, early.ID, none1.ID, none2.ID}) {
		t.Errorf("desc: got %v", got)
	}
}

func TestSetSort_RejectsInvalid(t *testing.T) {
	s := newTestStore()
	err := s.SetSort(model.TaskSort{Field: "title", Direction: constants.SortAsc})
	if !errors.Is(err, apperrors.ErrInvalidSort) {
		t.Fatalf("expected invalid sort, got %v", err)
	}
	if s.Sort() != model.DefaultSort() {
		t.Errorf("sort changed after rejected update: %+v", s.Sort())
	}
}

func TestBoard_ColumnsInFixedOrder(t *testing.T) {
	s := newTestStore()
	seedMixed(t, s)
	_, _ = s.SetFilters(model.FilterPatch{Priority: model.Some(constants.PriorityHigh)})

	board := s.Board()
	if len(board) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(board))
	}
	wantCounts := map[constants.TaskStatus]int{
		constants.StatusToDo:       1,
		constants.StatusInProgress: 0,
		constants.StatusDone:       1,
	}
	for i, col := range board {
		if col.Status != constants.Statuses[i] {
			t.Errorf("column %d: expected %s, got %s", i, constants.Statuses[i], col.Status)
		}
		if col.Count != wantCounts[col.Status] || len(col.Tasks) != col.Count {
			t.Errorf("column %s: expected %d tasks, got count=%d len=%d", col.Status, wantCounts[col.Status], col.Count, len(col.Tasks))
		}
	}

	if got := s.TasksByStatus(constants.StatusInProgress); len(got) != 0 {
		t.Errorf("expected filtered In Progress column to be empty, got %d", len(got))
	}
}
