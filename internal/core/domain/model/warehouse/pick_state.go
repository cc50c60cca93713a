package warehouse

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

const taskIDSeparator = "-item-"

// LineRef addresses one order line. It is also the identity of its picking task.
type LineRef struct {
	OrderID   kernel.UUID
	LineIndex int
}

// TaskID renders the picking task id, "<orderId>-item-<lineIndex>".
func (r LineRef) TaskID() string {
	return r.OrderID.String() + taskIDSeparator + strconv.Itoa(r.LineIndex)
}

// ParseTaskID is the inverse of LineRef.TaskID.
func ParseTaskID(taskID string) (LineRef, error) {
	i := strings.LastIndex(taskID, taskIDSeparator)
	if i <= 0 {
		return LineRef{}, errs.NewValueIsInvalidErrorWithCause("taskId", fmt.Errorf("%q is not a picking task id", taskID))
	}
	orderID, err := kernel.UUIDFromString(taskID[:i])
	if err != nil {
		return LineRef{}, errs.NewValueIsInvalidErrorWithCause("taskId", err)
	}
	idx, err := strconv.Atoi(taskID[i+len(taskIDSeparator):])
	if err != nil || idx < 0 {
		return LineRef{}, errs.NewValueIsInvalidErrorWithCause("taskId", fmt.Errorf("%q has no valid line index", taskID))
	}
	return LineRef{OrderID: orderID, LineIndex: idx}, nil
}

// PickState is the set of picked order lines. The zero value is empty and read-only.
type PickState struct {
	picked map[LineRef]struct{}
}

// NewPickState returns a state with refs picked. Duplicates collapse.
func NewPickState(refs ...LineRef) PickState {
	p := PickState{picked: make(map[LineRef]struct{}, len(refs))}
	for _, r := range refs {
		p.picked[r] = struct{}{}
	}
	return p
}

// IsPicked reports whether ref has been picked.
func (p PickState) IsPicked(ref LineRef) bool {
	_, ok := p.picked[ref]
	return ok
}

// Len is the number of picked lines.
func (p PickState) Len() int {
	return len(p.picked)
}

// UnpickedLines returns the indexes of o's lines not yet picked, ascending.
func (p PickState) UnpickedLines(o *order.Order) []int {
	var out []int
	for i := range o.Lines() {
		if !p.IsPicked(LineRef{OrderID: o.ID(), LineIndex: i}) {
			out = append(out, i)
		}
	}
	return out
}

// AllPicked reports whether every line of o has been picked.
func (p PickState) AllPicked(o *order.Order) bool {
	return len(p.UnpickedLines(o)) == 0
}

// Refs returns the picked lines sorted by order id then line index.
func (p PickState) Refs() []LineRef {
	out := make([]LineRef, 0, len(p.picked))
	for r := range p.picked {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].OrderID.String(), out[j].OrderID.String()
		if a != b {
			return a < b
		}
		return out[i].LineIndex < out[j].LineIndex
	})
	return out
}
