package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// StaticTag marks level geometry that never moves.
type StaticTag struct{}

var StaticTagComponent = NewComponent[StaticTag]()
