package metrics

import (
	"math"

	"github.com/san-kum/deskstead/internal/geom"
	"github.com/san-kum/deskstead/internal/physics"
)

// Bounces counts resolved floor contacts.
type Bounces struct {
	name     string
	contacts int
	speeds   []float64
}

func NewBounces() *Bounces {
	return &Bounces{name: "bounces"}
}

func (b *Bounces) Name() string { return b.name }

func (b *Bounces) Observe(s Sample) {
	for _, c := range s.Stats.Contacts {
		b.contacts++
		b.speeds = append(b.speeds, c.Incoming.Y())
	}
}

func (b *Bounces) Value() float64 { return float64(b.contacts) }

// Speeds lists the downward impact speed of every contact in order.
func (b *Bounces) Speeds() []float64 { return b.speeds }

func (b *Bounces) Reset() {
	b.contacts = 0
	b.speeds = nil
}

// Peaks records the apex of one body after each upward flight, that is the
// smallest y reached before it starts falling again.
type Peaks struct {
	name   string
	id     physics.ID
	rising bool
	top    float64
	peaks  []float64
}

func NewPeaks(id physics.ID) *Peaks {
	return &Peaks{name: "peaks", id: id}
}

func (p *Peaks) Name() string { return p.name }

func (p *Peaks) Observe(s Sample) {
	b, ok := s.Body(p.id)
	if !ok {
		return
	}
	y, vy := b.Position.Y(), b.Velocity.Y()
	switch {
	case vy < 0:
		if !p.rising {
			p.rising = true
			p.top = y
		}
		p.top = math.Min(p.top, y)
	case p.rising:
		p.rising = false
		p.peaks = append(p.peaks, math.Min(p.top, y))
	}
}

// Value is the most recent apex, or NaN before the first one.
func (p *Peaks) Value() float64 {
	if len(p.peaks) == 0 {
		return math.NaN()
	}
	return p.peaks[len(p.peaks)-1]
}

func (p *Peaks) Peaks() []float64 { return p.peaks }

func (p *Peaks) Reset() {
	p.rising = false
	p.top = 0
	p.peaks = nil
}

// Containment is the fraction of samples in which every body stayed inside
// bounds.
type Containment struct {
	name       string
	bounds     geom.AABB
	violations int
	samples    int
}

func NewContainment(bounds geom.AABB) *Containment {
	return &Containment{name: "containment", bounds: bounds}
}

func (c *Containment) Name() string { return c.name }

func (c *Containment) Observe(s Sample) {
	c.samples++
	for _, bs := range s.Bodies {
		if !c.bounds.Contains(bs.Body.Position) {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}
