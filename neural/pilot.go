package neural

// Senses is what an agent perceives in one step.
type Senses struct {
	Inputs    Inputs
	HasTarget bool // an obstacle is in play
}

// Pilot decides, once per step, whether an agent jumps.
type Pilot interface {
	Jump(s Senses) bool
}

// Human is a keyboard-driven Pilot. A held key yields a single jump;
// the key must be released before it can trigger again.
type Human struct {
	pending bool
	held    bool
}

// Press records the jump key being down this frame.
func (h *Human) Press() {
	if !h.held {
		h.pending = true
	}
	h.held = true
}

// Release records the jump key being up.
func (h *Human) Release() {
	h.held = false
}

// Jump consumes a pending press. Senses are ignored.
func (h *Human) Jump(Senses) bool {
	if h.pending {
		h.pending = false
		return true
	}
	return false
}
