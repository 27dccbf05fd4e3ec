package types

// Task is a single to-do item.
//
// IDs are unique within one snapshot only. The editor assigns time-based
// IDs and the store assigns sequence IDs, so an ID does not survive a
// store/retrieve cycle; Text, Completed and position do.
type Task struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// CloneTasks returns a copy of tasks. A nil input yields an empty, non-nil
// slice so that callers serialize it as [] rather than null.
func CloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}

// SameContent reports whether a and b hold the same (Text, Completed) pairs
// in the same order. IDs are ignored.
func SameContent(a, b []Task) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Text != b[i].Text || a[i].Completed != b[i].Completed {
			return false
		}
	}
	return true
}
