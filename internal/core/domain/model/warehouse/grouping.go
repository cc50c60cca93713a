package warehouse

import (
	"fmt"
	"sort"
	"strings"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// Strategy selects how pending picking tasks are grouped for workers.
type Strategy int

const (
	// StrategyUnknown is the zero value and is rejected by GroupTasks.
	StrategyUnknown Strategy = iota
	// Wave groups by order priority, most urgent first.
	Wave
	// Batch groups identical SKUs across orders into one walk.
	Batch
	// Zone groups by the physical zone of the pick location.
	Zone
)

var strategyStrings = map[Strategy]string{
	Wave:  "Wave",
	Batch: "Batch",
	Zone:  "Zone",
}

// ParseStrategy accepts "Wave", "Batch" or "Zone" case-insensitively.
func ParseStrategy(s string) (Strategy, error) {
	for st, str := range strategyStrings {
		if strings.EqualFold(str, strings.TrimSpace(s)) {
			return st, nil
		}
	}
	return StrategyUnknown, errs.NewValueIsInvalidErrorWithCause("strategy", fmt.Errorf("%q is not Wave, Batch or Zone", s))
}

// String returns the wire name, or "Unknown" for an invalid value.
func (s Strategy) String() string {
	if str, ok := strategyStrings[s]; ok {
		return str
	}
	return "Unknown"
}

// TaskGroup is one worker list.
type TaskGroup struct {
	// Key is the priority, SKU or zone the group was built on.
	Key string
	// Title is the heading printed on the list.
	Title string
	// Tasks keeps the input order of its members.
	Tasks []PickingTask
}

// TotalQuantity sums the units to pick in the group.
func (g TaskGroup) TotalQuantity() int {
	total := 0
	for _, t := range g.Tasks {
		total += t.Quantity()
	}
	return total
}

// GroupTasks groups the Pending tasks by strategy. Group order is fixed by the
// strategy (priority tiers for Wave, key order otherwise) and tasks keep their
// input order inside a group, so the result is deterministic for a given input.
//
// Parameters:
//   - strategy: Wave, Batch or Zone
//   - tasks: any tasks; Picked ones are skipped
//
// Returns:
//   - the groups, empty when nothing is pending
//   - an invalid-value error for any other strategy
//
// Example:
//
//	groups, err := warehouse.GroupTasks(warehouse.Zone, tasks)
//	// groups[0].Title == "A Picking List"
func GroupTasks(strategy Strategy, tasks []PickingTask) ([]TaskGroup, error) {
	pending := make([]PickingTask, 0, len(tasks))
	for _, t := range tasks {
		if t.Status() == Pending {
			pending = append(pending, t)
		}
	}

	switch strategy {
	case Wave:
		return groupByWave(pending), nil
	case Batch:
		return groupByKey(pending, PickingTask.SKU, func(k string) string { return "SKU Batch: " + k }), nil
	case Zone:
		return groupByKey(pending, PickingTask.Zone, func(k string) string { return k + " Picking List" }), nil
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause("strategy", fmt.Errorf("%d is not a valid strategy", strategy))
	}
}

// groupByWave emits one group per priority present, Critical first.
func groupByWave(tasks []PickingTask) []TaskGroup {
	byPriority := make(map[order.Priority][]PickingTask)
	for _, t := range tasks {
		byPriority[t.Priority()] = append(byPriority[t.Priority()], t)
	}

	groups := make([]TaskGroup, 0, len(byPriority))
	for _, p := range order.Priorities() {
		if members, ok := byPriority[p]; ok {
			groups = append(groups, TaskGroup{Key: p.String(), Title: p.String() + " Priority Wave", Tasks: members})
		}
	}
	return groups
}

// groupByKey groups tasks by key and sorts the groups by key.
func groupByKey(tasks []PickingTask, key func(PickingTask) string, title func(string) string) []TaskGroup {
	index := make(map[string]int)
	var groups []TaskGroup
	for _, t := range tasks {
		k := key(t)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, TaskGroup{Key: k, Title: title(k)})
		}
		groups[i].Tasks = append(groups[i].Tasks, t)
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
	return groups
}
