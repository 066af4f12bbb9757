package graphql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck/engine/core"
)

func TestEnumTables(t *testing.T) {
	t.Run("Should map every project status both ways", func(t *testing.T) {
		table := ProjectStatusEnumValues()
		require.Len(t, table, len(core.ProjectStatuses()))
		assert.Equal(t, core.ProjectOnHold, table["ON_HOLD"])
		seen := make(map[core.ProjectStatus]bool)
		for name, value := range table {
			assert.True(t, value.Valid(), "exposed name %s maps to invalid value %q", name, value)
			require.False(t, seen[value], "value %q exposed under two names", value)
			seen[value] = true
		}
	})
	t.Run("Should map every task status both ways", func(t *testing.T) {
		table := TaskStatusEnumValues()
		require.Len(t, table, len(core.TaskStatuses()))
		assert.Equal(t, core.TaskNotStarted, table["NOT_STARTED"])
		assert.Equal(t, core.TaskInProgress, table["IN_PROGRESS"])
		for name, value := range table {
			assert.True(t, value.Valid(), "exposed name %s maps to invalid value %q", name, value)
		}
	})
	t.Run("Should map every task priority both ways", func(t *testing.T) {
		table := TaskPriorityEnumValues()
		require.Len(t, table, len(core.TaskPriorities()))
		assert.Equal(t, core.PriorityCritical, table["CRITICAL"])
		for name, value := range table {
			assert.True(t, value.Valid(), "exposed name %s maps to invalid value %q", name, value)
		}
	})
}
