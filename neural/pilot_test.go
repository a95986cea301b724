package neural

import "testing"

func TestHumanSingleJumpPerPress(t *testing.T) {
	var h Human

	if h.Jump(Senses{}) {
		t.Fatal("jumped before any key press")
	}

	h.Press()
	if !h.Jump(Senses{}) {
		t.Fatal("expected a jump after press")
	}
	if h.Jump(Senses{}) {
		t.Error("a single press jumped twice")
	}

	// Key held down across frames must not re-trigger.
	h.Press()
	h.Press()
	if h.Jump(Senses{}) {
		t.Error("held key triggered another jump")
	}

	h.Release()
	h.Press()
	if !h.Jump(Senses{}) {
		t.Error("expected a jump after release and press")
	}
}

func TestHumanIgnoresTarget(t *testing.T) {
	var h Human
	h.Press()
	if !h.Jump(Senses{HasTarget: false}) {
		t.Error("human pilot should jump even with no obstacle in play")
	}
}
