package warehouse_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/warehouse"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func groupKeys(groups []warehouse.TaskGroup) []string {
	keys := make([]string, 0, len(groups))
	for _, g := range groups {
		keys = append(keys, g.Key)
	}
	return keys
}

func taskIDs(tasks []warehouse.PickingTask) []string {
	ids := make([]string, 0, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.ID())
	}
	return ids
}

func fixtureTasks(t *testing.T) []warehouse.PickingTask {
	normal := newOrder(t, order.Normal, order.WarehousePick, "ELEC-001", "ACC-088")
	critical := newOrder(t, order.Critical, order.WarehousePick, "ACC-088")
	high := newOrder(t, order.High, order.WarehousePick, "FURN-010", "ELEC-001")

	return []warehouse.PickingTask{
		taskFor(t, normal, 0, "Zone A-12", warehouse.Pending),
		taskFor(t, normal, 1, "Zone B-03", warehouse.Pending),
		taskFor(t, critical, 0, "Zone B-03", warehouse.Pending),
		taskFor(t, high, 0, "Zone C-01", warehouse.Picked),
		taskFor(t, high, 1, "Zone A-12", warehouse.Pending),
	}
}

func TestGroupTasks_Wave(t *testing.T) {
	tasks := fixtureTasks(t)

	groups, err := warehouse.GroupTasks(warehouse.Wave, tasks)

	require.NoError(t, err)
	assert.Equal(t, []string{"Critical", "High", "Normal"}, groupKeys(groups))
	assert.Equal(t, "Critical Priority Wave", groups[0].Title)
	assert.Equal(t, []string{tasks[4].ID()}, taskIDs(groups[1].Tasks), "picked tasks are excluded")
	assert.Equal(t, []string{tasks[0].ID(), tasks[1].ID()}, taskIDs(groups[2].Tasks), "input order kept within a tier")
}

func TestGroupTasks_Batch(t *testing.T) {
	tasks := fixtureTasks(t)

	groups, err := warehouse.GroupTasks(warehouse.Batch, tasks)

	require.NoError(t, err)
	assert.Equal(t, []string{"ACC-088", "ELEC-001"}, groupKeys(groups))
	assert.Equal(t, "SKU Batch: ACC-088", groups[0].Title)
	assert.Equal(t, []string{tasks[1].ID(), tasks[2].ID()}, taskIDs(groups[0].Tasks))
	assert.Equal(t, 3, groups[0].TotalQuantity())
}

func TestGroupTasks_Zone(t *testing.T) {
	tasks := fixtureTasks(t)

	groups, err := warehouse.GroupTasks(warehouse.Zone, tasks)

	require.NoError(t, err)
	assert.Equal(t, []string{"Zone A", "Zone B"}, groupKeys(groups))
	assert.Equal(t, "Zone A Picking List", groups[0].Title)
	assert.Equal(t, []string{tasks[0].ID(), tasks[4].ID()}, taskIDs(groups[0].Tasks))
}

func TestGroupTasks_DeterministicAndIdentityPreserving(t *testing.T) {
	tasks := fixtureTasks(t)

	for _, s := range []warehouse.Strategy{warehouse.Wave, warehouse.Batch, warehouse.Zone} {
		first, err := warehouse.GroupTasks(s, tasks)
		require.NoError(t, err)
		second, err := warehouse.GroupTasks(s, tasks)
		require.NoError(t, err)

		assert.Equal(t, first, second, s.String())

		total := 0
		for _, g := range first {
			total += len(g.Tasks)
		}
		assert.Equal(t, 4, total, "%s keeps every pending task exactly once", s)
	}
}

func TestGroupTasks_UnknownStrategy(t *testing.T) {
	_, err := warehouse.GroupTasks(warehouse.StrategyUnknown, nil)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	s, err := warehouse.ParseStrategy("zone")
	require.NoError(t, err)
	assert.Equal(t, warehouse.Zone, s)

	_, err = warehouse.ParseStrategy("cluster")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestGroupTasks_Empty(t *testing.T) {
	groups, err := warehouse.GroupTasks(warehouse.Batch, nil)
	require.NoError(t, err)
	assert.Empty(t, groups)
}
