package pet

// Fixed action effects.
var (
	RestEffect  = Delta{Energy: 20, Health: 5}
	StudyEffect = Delta{Spirituality: 5, Happiness: 5, Energy: -5}
)

// DecayAmount is removed from every stat each time decay fires.
const DecayAmount = 1
