package task

import (
	"fmt"
	"sort"
	"strings"

	domain "github.com/example/task-tracker/domain/task"
)

// defaultSort is applied when the caller supplies no sort expression.
const defaultSort = "dueDate:asc"

// comparators is the whitelist of sortable fields. Sorting goes through this
// explicit field-to-comparator table rather than interpolating the field name
// into a query, so an unknown field can never reach the store. Nil due dates
// never reach the dueDate comparator; sortTasks pins them to the end first.
var comparators = map[string]func(a, b *domain.Task) int{
	"dueDate":   func(a, b *domain.Task) int { return a.DueDate.Compare(*b.DueDate) },
	"createdAt": func(a, b *domain.Task) int { return a.CreatedAt.Compare(b.CreatedAt) },
	"priority":  func(a, b *domain.Task) int { return a.Priority.Rank() - b.Priority.Rank() },
	"title":     func(a, b *domain.Task) int { return strings.Compare(a.Title, b.Title) },
}

// sortFieldNames lists the allowed fields in a fixed order for error messages.
var sortFieldNames = []string{"dueDate", "createdAt", "priority", "title"}

// sortSpec is a resolved sort expression.
type sortSpec struct {
	field   string
	compare func(a, b *domain.Task) int
	desc    bool
}

// parseSort resolves a "<field>[:<direction>]" expression against the
// comparator whitelist. An empty expression falls back to the default;
// any direction other than "desc" sorts ascending.
func parseSort(expr string) (sortSpec, *ServiceError) {
	if expr == "" {
		expr = defaultSort
	}

	parts := strings.SplitN(expr, ":", 2)
	field := parts[0]
	direction := "asc"
	if len(parts) > 1 {
		direction = parts[1]
	}

	compare, ok := comparators[field]
	if !ok {
		return sortSpec{}, invalidArgument(fmt.Sprintf(
			"Sort field must be one of: %s", strings.Join(sortFieldNames, ", ")))
	}

	return sortSpec{field: field, compare: compare, desc: direction == "desc"}, nil
}

// sortTasks orders tasks in place by the resolved spec. The sort is stable,
// so ties keep the store's insertion order. On the dueDate field, tasks
// without a due date order last regardless of direction.
func sortTasks(tasks []*domain.Task, spec sortSpec) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if spec.field == "dueDate" {
			if b.DueDate == nil {
				return a.DueDate != nil
			}
			if a.DueDate == nil {
				return false
			}
		}
		c := spec.compare(a, b)
		if spec.desc {
			return c > 0
		}
		return c < 0
	})
}
