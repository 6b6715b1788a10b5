// Package task owns the in-memory task list and the input rules that guard it.
//
// A Store is the only holder of Task values. Every accessor returns copies,
// so the only way to change a task is through the Store's operations:
//
//	s := task.NewStore()
//	t, err := s.Create("Buy groceries", "Get milk")
//	_, err = s.MarkComplete(t.ID)
//	_, err = s.Update(t.ID, task.Some("New Title"), task.None[string]())
//	err = s.Delete(t.ID)
//
// # Errors
//
// Two error kinds are returned, both recoverable:
//
//   - ErrInvalidInput: empty title/description or a non-numeric ID.
//     The concrete *InputError carries the user-facing message.
//   - ErrNotFound: no task matches the given ID.
//     The concrete *NotFoundError carries the ID.
//
// Use errors.Is to test the kind and errors.As to reach the details.
//
// # IDs
//
// IDs start at 1 and increase by one per created task. An ID is never
// handed out twice by the same Store, even after the task holding it
// is deleted.
//
// # Snapshots
//
// Snapshot returns a schema-versioned copy of the list suitable for JSON
// output:
//
//	{
//	  "schema_version": 1,
//	  "tasks": [
//	    {"id": 1, "title": "Buy groceries", "description": "Get milk", "status": "incomplete"}
//	  ]
//	}
//
// ValidateSnapshot checks a snapshot against the embedded JSON Schema.
package task
