package controller

// Input is the player's intent for one frame. It is polled by the frame loop
// and handed to the controller, which never reads devices itself.
type Input struct {
	// Forward and Right are in [-1, 1].
	Forward float64
	Right   float64

	Jump        bool
	JumpPressed bool
	Sprint      bool
	Fire        bool

	// LookDX and LookDY are the cursor motion since the last frame.
	LookDX float64
	LookDY float64
}

// InputSource produces one Input per frame.
type InputSource interface {
	Poll() Input
}

// InputFunc adapts a function to InputSource.
type InputFunc func() Input

func (f InputFunc) Poll() Input { return f() }
