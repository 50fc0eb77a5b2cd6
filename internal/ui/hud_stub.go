//go:build !ebiten

package ui

import "cellsociety/internal/core"

// HUD is a no-op placeholder for headless builds.
type HUD struct{}

// NewHUD returns nil in the headless build.
func NewHUD(core.Model, int) *HUD { return nil }

// SetModel is a no-op in the headless build.
func (h *HUD) SetModel(core.Model) {}

// Flash is a no-op in the headless build.
func (h *HUD) Flash(string) {}

// Update is a no-op in the headless build.
func (h *HUD) Update(int) bool { return false }

// Draw is a no-op in the headless build.
func (h *HUD) Draw(any, int, int) {}

// MinHeight is zero in the headless build.
func (h *HUD) MinHeight() int { return 0 }
