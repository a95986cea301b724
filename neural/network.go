// Package neural provides the decision networks that pilot agents and the
// evolutionary loop that breeds them.
package neural

import (
	"math"
	"math/rand"
)

// Network dimensions. The topology never changes, so weight vectors of any
// two networks are always index-compatible.
const (
	NumInputs  = 5 // center height, speed, gap top, gap bottom, distance
	NumHidden  = 3
	NumOutputs = 1

	// NumWeights counts every incoming weight plus one bias per neuron.
	NumWeights = NumHidden*(NumInputs+1) + NumOutputs*(NumHidden+1)
)

// Inputs is the normalized sensor vector fed to a network.
type Inputs [NumInputs]float64

// Network is a fixed 5-3-1 feedforward network with tanh activations.
//
// Weights are laid out neuron by neuron: each neuron's incoming weights
// followed by its bias, the hidden layer before the output layer.
type Network struct {
	Weights [NumWeights]float64
}

// NewRandomNetwork creates a network with every weight drawn from U[-1, 1].
func NewRandomNetwork(rng *rand.Rand) *Network {
	nn := &Network{}
	for i := range nn.Weights {
		nn.Weights[i] = rng.Float64()*2 - 1
	}
	return nn
}

// Mutate returns a copy of nn where each weight, with probability chance,
// is perturbed by a value drawn from U[-factor, factor].
// The receiver is left untouched.
func (nn *Network) Mutate(rng *rand.Rand, chance, factor float64) *Network {
	child := &Network{Weights: nn.Weights}
	for i := range child.Weights {
		if rng.Float64() < chance {
			child.Weights[i] += (rng.Float64()*2 - 1) * factor
		}
	}
	return child
}

// Forward computes the raw output activation in (-1, 1).
func (nn *Network) Forward(in Inputs) float64 {
	var hidden [NumHidden]float64

	w := 0
	for i := 0; i < NumHidden; i++ {
		var sum float64
		for j := 0; j < NumInputs; j++ {
			sum += in[j] * nn.Weights[w]
			w++
		}
		sum += nn.Weights[w]
		w++
		hidden[i] = math.Tanh(sum)
	}

	var out [NumOutputs]float64
	for i := 0; i < NumOutputs; i++ {
		var sum float64
		for j := 0; j < NumHidden; j++ {
			sum += hidden[j] * nn.Weights[w]
			w++
		}
		sum += nn.Weights[w]
		w++
		out[i] = math.Tanh(sum)
	}

	return out[0]
}

// Decide reports whether the network wants to jump for the given inputs.
func (nn *Network) Decide(in Inputs) bool {
	return nn.Forward(in) > 0
}

// Jump implements Pilot. Without an obstacle in play there is nothing to
// react to, so the network never jumps.
func (nn *Network) Jump(s Senses) bool {
	if !s.HasTarget {
		return false
	}
	return nn.Decide(s.Inputs)
}

// Clone creates an independent copy of the network.
func (nn *Network) Clone() *Network {
	return &Network{Weights: nn.Weights}
}
