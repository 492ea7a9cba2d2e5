package component

import (
	"github.com/milk9111/fpsdemo/controller"
	"github.com/milk9111/fpsdemo/weapon"
)

type Player struct {
	Controller *controller.FPSController
	Pusher     *controller.Pusher
	Weapon     *weapon.Manager
}

var PlayerComponent = NewComponent[*Player]()
