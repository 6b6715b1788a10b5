package task

import (
	"fmt"
	"sync"
)

// Store owns the task list for one process lifetime.
// Tasks are kept in an arena keyed by ID; order holds the IDs in
// insertion order, which is also ascending ID order.
type Store struct {
	mu     sync.Mutex
	tasks  map[int]*Task
	order  []int
	lastID int // highest ID ever assigned
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{tasks: make(map[int]*Task)}
}

// Create validates title and description and appends a new incomplete task.
func (s *Store) Create(title, description string) (Task, error) {
	trimmedTitle, err := ValidateNonEmptyText(title, "title")
	if err != nil {
		return Task{}, err
	}
	trimmedDescription, err := ValidateNonEmptyText(description, "description")
	if err != nil {
		return Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.init()

	id := s.nextID()
	t := &Task{
		ID:          id,
		Title:       trimmedTitle,
		Description: trimmedDescription,
		Status:      StatusIncomplete,
	}
	s.tasks[id] = t
	s.order = append(s.order, id)
	s.lastID = id
	return *t, nil
}

// List returns copies of all tasks in insertion order.
// The result is never nil.
func (s *Store) List() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Task, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.tasks[id])
	}
	return out
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Get returns a copy of the task with the given ID.
func (s *Store) Get(id int) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.lookup(id)
	if err != nil {
		return Task{}, err
	}
	return *t, nil
}

// MarkComplete sets the task's status to complete. Marking a complete
// task again is a no-op.
func (s *Store) MarkComplete(id int) (Task, error) {
	return s.setStatus(id, StatusComplete)
}

// MarkIncomplete sets the task's status to incomplete. Marking an
// incomplete task again is a no-op.
func (s *Store) MarkIncomplete(id int) (Task, error) {
	return s.setStatus(id, StatusIncomplete)
}

func (s *Store) setStatus(id int, status Status) (Task, error) {
	if !status.Valid() {
		return Task{}, &InputError{Field: "status", Msg: fmt.Sprintf("Unknown task status %q.", status)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.lookup(id)
	if err != nil {
		return Task{}, err
	}
	t.Status = status
	return *t, nil
}

// Update overwrites the title and/or description of a task. Absent fields
// are left as they are. Every present field is validated before any is
// written, so a failed update changes nothing. ID and status never change.
func (s *Store) Update(id int, title, description Optional[string]) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.lookup(id)
	if err != nil {
		return Task{}, err
	}

	newTitle, newDescription := t.Title, t.Description
	if v, ok := title.Get(); ok {
		if newTitle, err = ValidateNonEmptyText(v, "title"); err != nil {
			return Task{}, err
		}
	}
	if v, ok := description.Get(); ok {
		if newDescription, err = ValidateNonEmptyText(v, "description"); err != nil {
			return Task{}, err
		}
	}

	t.Title = newTitle
	t.Description = newDescription
	return *t, nil
}

// Delete removes a task permanently. Other tasks keep their IDs and order.
func (s *Store) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.lookup(id); err != nil {
		return err
	}
	delete(s.tasks, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Snapshot returns a schema-versioned copy of the task list.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		SchemaVersion: SchemaVersion,
		Tasks:         s.List(),
	}
}

// lookup must be called with mu held.
func (s *Store) lookup(id int) (*Task, error) {
	if t, ok := s.tasks[id]; ok {
		return t, nil
	}
	return nil, &NotFoundError{ID: id}
}

// nextID is one past the highest ID this store has handed out. While
// the newest task still exists this equals max(existing IDs)+1; after
// it is deleted the high-water mark keeps its ID from coming back.
func (s *Store) nextID() int {
	maxID := s.lastID
	for _, id := range s.order {
		if id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}

// init lets a zero Store be used directly.
func (s *Store) init() {
	if s.tasks == nil {
		s.tasks = make(map[int]*Task)
	}
}
