package component

import "github.com/milk9111/fpsdemo/controller"

// Input stores per-frame input state for an entity.
type Input struct {
	controller.Input

	ToggleOverlay bool
	ClearOverlay  bool
}

var InputComponent = NewComponent[*Input]()
