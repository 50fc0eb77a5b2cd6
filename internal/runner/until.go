package runner

import (
	"slices"

	"cellsociety/internal/core"
)

// Static returns an Until condition that holds once a step leaves every cell
// unchanged. Each call returns an independent condition.
func Static() func(core.Model) bool {
	var prev []core.State
	return func(m core.Model) bool {
		cur := m.Snapshot().States()
		same := prev != nil && slices.Equal(prev, cur)
		prev = cur
		return same
	}
}
