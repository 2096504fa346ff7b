package physics

import "github.com/go-gl/mathgl/mgl64"

// fataler is satisfied by both *testing.T and GinkgoT().
type fataler interface {
	Helper()
	Fatalf(format string, args ...any)
}

// box is a minimal Entity for exercising the world.
type box struct {
	body  *Body
	pos   mgl64.Vec2
	rot   float64
	syncs int
}

func newBox(t fataler, pos, size mgl64.Vec2, mass float64, fixed bool) *box {
	t.Helper()
	b, err := NewBody(pos, size, mass, fixed)
	if err != nil {
		t.Fatalf("new body: %v", err)
	}
	return &box{body: b, pos: pos}
}

func (b *box) PhysicsBody() *Body { return b.body }
func (b *box) SyncWithPhysics() {
	b.pos = b.body.Position
	b.syncs++
}
func (b *box) Position() mgl64.Vec2     { return b.pos }
func (b *box) SetPosition(p mgl64.Vec2) { b.pos = p }
func (b *box) Rotation() float64        { return b.rot }
func (b *box) SetRotation(r float64)    { b.rot = r }
func (b *box) Size() mgl64.Vec2         { return b.body.Size }
