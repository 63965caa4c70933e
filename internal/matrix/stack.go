// Package matrix implements the fixed-function matrix stacks: modelview,
// projection and texture, each with push/pop and the usual composition
// helpers. The draw path only reads from it.
package matrix

import (
	"github.com/go-gl/mathgl/mgl32"

	"pvrgl/internal/glerr"
	"pvrgl/internal/mathutil"
)

// Mode selects which stack the mutating calls operate on. Values match the
// legacy enumerants.
type Mode uint32

const (
	ModelView  Mode = 0x1700
	Projection Mode = 0x1701
	Texture    Mode = 0x1702
)

// Depth is the number of entries each stack can hold.
const Depth = 32

type stack struct {
	m   [Depth]mgl32.Mat4
	top int
}

func (s *stack) cur() *mgl32.Mat4 { return &s.m[s.top] }

// Stack holds the three matrix stacks and the current mode.
type Stack struct {
	mode   Mode
	stacks [3]stack
}

// New returns stacks holding identity with ModelView selected.
func New() *Stack {
	s := &Stack{}
	s.Reset()
	return s
}

// Reset restores identity on every stack and empties them.
func (s *Stack) Reset() {
	s.mode = ModelView
	for i := range s.stacks {
		s.stacks[i].top = 0
		s.stacks[i].m[0] = mgl32.Ident4()
	}
}

func (s *Stack) active() *stack { return &s.stacks[s.mode-ModelView] }

// SetMode selects the stack later calls operate on.
func (s *Stack) SetMode(m Mode) error {
	if m < ModelView || m > Texture {
		return glerr.New(glerr.InvalidEnum, "MatrixMode")
	}
	s.mode = m
	return nil
}

// Mode returns the selected stack.
func (s *Stack) Mode() Mode { return s.mode }

// Push duplicates the top of the active stack.
func (s *Stack) Push() error {
	st := s.active()
	if st.top+1 >= Depth {
		return glerr.New(glerr.InvalidOperation, "PushMatrix: stack overflow")
	}
	st.m[st.top+1] = st.m[st.top]
	st.top++
	return nil
}

// Pop discards the top of the active stack.
func (s *Stack) Pop() error {
	st := s.active()
	if st.top == 0 {
		return glerr.New(glerr.InvalidOperation, "PopMatrix: stack underflow")
	}
	st.top--
	return nil
}

// Load replaces the top of the active stack.
func (s *Stack) Load(m mgl32.Mat4) { *s.active().cur() = m }

// LoadIdentity replaces the top of the active stack with identity.
func (s *Stack) LoadIdentity() { s.Load(mgl32.Ident4()) }

// Mult post-multiplies the top of the active stack by m.
func (s *Stack) Mult(m mgl32.Mat4) {
	c := s.active().cur()
	*c = c.Mul4(m)
}

// Translate multiplies by a translation.
func (s *Stack) Translate(x, y, z float32) { s.Mult(mgl32.Translate3D(x, y, z)) }

// Scale multiplies by a scale.
func (s *Stack) Scale(x, y, z float32) { s.Mult(mgl32.Scale3D(x, y, z)) }

// Rotate multiplies by a rotation of angle degrees about (x, y, z).
func (s *Stack) Rotate(angle, x, y, z float32) {
	axis := mathutil.Normalize(mgl32.Vec3{x, y, z})
	s.Mult(mgl32.HomogRotate3D(mgl32.DegToRad(angle), axis))
}

// Ortho multiplies by an orthographic projection.
func (s *Stack) Ortho(left, right, bottom, top, near, far float32) {
	s.Mult(mgl32.Ortho(left, right, bottom, top, near, far))
}

// Frustum multiplies by a perspective frustum.
func (s *Stack) Frustum(left, right, bottom, top, near, far float32) {
	s.Mult(mgl32.Frustum(left, right, bottom, top, near, far))
}

// Perspective multiplies by a symmetric perspective projection; fovy is in
// degrees.
func (s *Stack) Perspective(fovy, aspect, near, far float32) {
	s.Mult(mgl32.Perspective(mgl32.DegToRad(fovy), aspect, near, far))
}

// Top returns the top of the stack for mode m.
func (s *Stack) Top(m Mode) mgl32.Mat4 { return *s.stacks[m-ModelView].cur() }

// ModelView returns the current modelview matrix.
func (s *Stack) ModelView() mgl32.Mat4 { return s.Top(ModelView) }

// Projection returns the current projection matrix.
func (s *Stack) Projection() mgl32.Mat4 { return s.Top(Projection) }

// ModelViewProjection returns projection × modelview.
func (s *Stack) ModelViewProjection() mgl32.Mat4 {
	return s.Projection().Mul4(s.ModelView())
}

// NormalMatrix returns the matrix that carries object-space normals into eye
// space.
func (s *Stack) NormalMatrix() mgl32.Mat3 {
	return mathutil.NormalMatrix(s.ModelView())
}
