package texture

import (
	"image"
	"math/bits"
	"slices"
)

// Object is a texture name with its uploaded image and sampling state.
type Object struct {
	Name   uint32
	Image  *image.NRGBA
	Linear bool
}

// Width returns the image width, or 0 before upload.
func (o *Object) Width() int {
	if o.Image == nil {
		return 0
	}
	return o.Image.Bounds().Dx()
}

// Height returns the image height, or 0 before upload.
func (o *Object) Height() int {
	if o.Image == nil {
		return 0
	}
	return o.Image.Bounds().Dy()
}

// HasAlpha reports whether any texel is not fully opaque.
func (o *Object) HasAlpha() bool {
	if o.Image == nil {
		return false
	}
	pix := o.Image.Pix
	for i := 3; i < len(pix); i += 4 {
		if pix[i] != 0xff {
			return true
		}
	}
	return false
}

// Registry owns the texture objects of one context. Name 0 is reserved and
// never refers to an object.
type Registry struct {
	objects map[uint32]*Object
	next    uint32
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{objects: make(map[uint32]*Object), next: 1}
}

// Gen allocates n fresh names.
func (r *Registry) Gen(n int) []uint32 {
	names := make([]uint32, n)
	for i := range names {
		for r.objects[r.next] != nil || r.next == 0 {
			r.next++
		}
		names[i] = r.next
		r.objects[r.next] = &Object{Name: r.next}
		r.next++
	}
	return names
}

// Object returns the object for name, creating it on first use as binding
// an unused name does.
func (r *Registry) Object(name uint32) *Object {
	if name == 0 {
		return nil
	}
	o := r.objects[name]
	if o == nil {
		o = &Object{Name: name}
		r.objects[name] = o
	}
	return o
}

// Lookup returns the image uploaded to name, or nil.
func (r *Registry) Lookup(name uint32) *image.NRGBA {
	if o := r.objects[name]; o != nil {
		return o.Image
	}
	return nil
}

// Delete releases names. Unknown names are ignored.
func (r *Registry) Delete(names ...uint32) {
	for _, n := range names {
		delete(r.objects, n)
	}
}

// Len returns the number of live objects.
func (r *Registry) Len() int { return len(r.objects) }

// Names returns the live names in ascending order.
func (r *Registry) Names() []uint32 {
	names := make([]uint32, 0, len(r.objects))
	for n := range r.objects {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// SizeCode returns the hardware size code of a power-of-two dimension
// between 8 and 1024, and false for anything else.
func SizeCode(n int) (uint32, bool) {
	if n < 8 || n > 1024 || n&(n-1) != 0 {
		return 0, false
	}
	return uint32(bits.TrailingZeros(uint(n)) - 3), true
}
