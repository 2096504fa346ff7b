package metrics

import "math"

// MechanicalEnergy returns kinetic plus potential energy of every body in s.
// Heights are measured upward from groundY since screen y grows downward.
func MechanicalEnergy(s Sample, gravity, groundY float64) float64 {
	var total float64
	for _, bs := range s.Bodies {
		b := bs.Body
		total += b.KineticEnergy() + b.Mass*gravity*(groundY-b.Position.Y())
	}
	return total
}

// Energy is the mean mechanical energy over all samples.
type Energy struct {
	name        string
	gravity     float64
	groundY     float64
	samples     int
	totalEnergy float64
	last        float64
}

func NewEnergy(gravity, groundY float64) *Energy {
	return &Energy{
		name:    "energy",
		gravity: gravity,
		groundY: groundY,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(s Sample) {
	e.last = MechanicalEnergy(s, e.gravity, e.groundY)
	e.totalEnergy += e.last
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

// Last is the energy of the most recent sample.
func (e *Energy) Last() float64 { return e.last }

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
	e.last = 0
}

// EnergyLoss is the largest fraction of the first sample's energy lost so
// far. Bounces and surface damping only ever remove energy.
type EnergyLoss struct {
	name    string
	gravity float64
	groundY float64
	initial float64
	maxLoss float64
	samples int
}

func NewEnergyLoss(gravity, groundY float64) *EnergyLoss {
	return &EnergyLoss{
		name:    "energy_loss",
		gravity: gravity,
		groundY: groundY,
	}
}

func (e *EnergyLoss) Name() string { return e.name }

func (e *EnergyLoss) Observe(s Sample) {
	energy := MechanicalEnergy(s, e.gravity, e.groundY)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		loss := (e.initial - energy) / math.Abs(e.initial)
		e.maxLoss = math.Max(e.maxLoss, loss)
	}
}

func (e *EnergyLoss) Value() float64 {
	return e.maxLoss
}

func (e *EnergyLoss) Reset() {
	e.initial = 0
	e.maxLoss = 0
	e.samples = 0
}
