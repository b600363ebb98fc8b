package models

// Lifecycle is the visibility state of a soft-deletable record.
// Records move Active -> Deleted exactly once and are never physically removed.
type Lifecycle string

const (
	LifecycleActive  Lifecycle = "active"
	LifecycleDeleted Lifecycle = "deleted"
)

// LifecycleOf maps the stored isActive flag to a lifecycle state.
func LifecycleOf(isActive bool) Lifecycle {
	if isActive {
		return LifecycleActive
	}
	return LifecycleDeleted
}

// Visible reports whether records in this state may be returned by read paths.
func (l Lifecycle) Visible() bool {
	return l == LifecycleActive
}
