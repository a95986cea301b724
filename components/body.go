package components

// Body holds the physical extent of an agent. Agents are square.
type Body struct {
	Size float64
}
