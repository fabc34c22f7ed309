package visual

import "github.com/go-gl/mathgl/mgl64"

// Perturbation hands. Active and Active2 hold a combination of these bits.
const (
	PertTranslate = 1
	PertRotate    = 2
)

// Perturb is the interactive selection and drag state. The zero value
// selects skin 0; start from DefaultPerturb for an empty selection.
type Perturb struct {
	Select     int // selected body, 0 for none
	SkinSelect int // selected skin, -1 for none
	Active     int // first hand
	Active2    int // second hand
	RefPos     mgl64.Vec3
	RefQuat    mgl64.Quat
	LocalPos   mgl64.Vec3 // selection point in body frame
}

// DefaultPerturb returns a perturbation with nothing selected.
func DefaultPerturb() Perturb {
	return Perturb{
		SkinSelect: -1,
		RefQuat:    mgl64.QuatIdent(),
	}
}

func (p *Perturb) hands(bit int) (first, second, either bool) {
	first = p.Active&bit != 0
	second = p.Active2&bit != 0
	return first, second, first || second
}
