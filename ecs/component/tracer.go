package component

import "github.com/milk9111/fpsdemo/weapon"

// Tracer is the visible stand-in for a live shot.
type Tracer struct {
	Shot *weapon.Shot
}

var TracerComponent = NewComponent[*Tracer]()
