package component

import "github.com/milk9111/fpsdemo/render"

type Gun struct {
	View *render.GunView
}

var GunComponent = NewComponent[*Gun]()
