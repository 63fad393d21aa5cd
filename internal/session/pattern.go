package session

import "encoding/json"

// Pattern timings are in seconds per phase.
type Pattern struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Inhale      float64 `json:"inhale"`
	Hold        float64 `json:"hold"`
	Exhale      float64 `json:"exhale"`
	HoldAfter   float64 `json:"hold_after"`
	Cycles      int     `json:"cycles"`
}

// CycleSeconds is the length of one full breath.
func (p Pattern) CycleSeconds() float64 {
	return p.Inhale + p.Hold + p.Exhale + p.HoldAfter
}

// TotalSeconds is the length of the guided exercise.
func (p Pattern) TotalSeconds() float64 {
	return p.CycleSeconds() * float64(p.Cycles)
}

// MarshalJSON adds the derived cycle and total lengths.
func (p Pattern) MarshalJSON() ([]byte, error) {
	type plain Pattern

	return json.Marshal(struct {
		plain
		CycleSeconds float64 `json:"cycle_seconds"`
		TotalSeconds float64 `json:"total_seconds"`
	}{
		plain:        plain(p),
		CycleSeconds: p.CycleSeconds(),
		TotalSeconds: p.TotalSeconds(),
	})
}

var Patterns = []Pattern{
	{
		ID:          "calm-before-event",
		Name:        "Box Breathing",
		Description: "Perfect for centering before important moments",
		Inhale:      4,
		Hold:        4,
		Exhale:      4,
		HoldAfter:   4,
		Cycles:      8,
	},
	{
		ID:          "sharpen-focus",
		Name:        "4-6 Breathing",
		Description: "Enhance mental clarity and concentration",
		Inhale:      4,
		Hold:        0,
		Exhale:      6,
		HoldAfter:   0,
		Cycles:      10,
	},
	{
		ID:          "soothe-mind",
		Name:        "4-7-8 Breathing",
		Description: "Deep relaxation for troubled minds",
		Inhale:      4,
		Hold:        7,
		Exhale:      8,
		HoldAfter:   0,
		Cycles:      6,
	},
	{
		ID:          "drift-to-sleep",
		Name:        "Extended Exhale",
		Description: "Prepare your body for restful sleep",
		Inhale:      4,
		Hold:        0,
		Exhale:      8,
		HoldAfter:   0,
		Cycles:      8,
	},
	{
		ID:          "just-breathe",
		Name:        "Coherence Breathing",
		Description: "Find your natural rhythm and balance",
		Inhale:      5.5,
		Hold:        0,
		Exhale:      5.5,
		HoldAfter:   0,
		Cycles:      10,
	},
}
