package sim

import (
	"errors"
	"fmt"
)

// Validation errors.
var (
	ErrInvalidModel  = errors.New("invalid model")
	ErrStateMismatch = errors.New("state does not match model")
)

func checkID(what string, id, n int, allowNone bool) error {
	if allowNone && id == -1 {
		return nil
	}
	if id < 0 || id >= n {
		return fmt.Errorf("%w: %s id %d out of range [0,%d)", ErrInvalidModel, what, id, n)
	}
	return nil
}

// Validate checks that every cross reference in the model points at an
// existing entity.
func (m *Model) Validate() error {
	nbody := len(m.Bodies)
	if nbody == 0 {
		return fmt.Errorf("%w: missing world body", ErrInvalidModel)
	}
	for i := 1; i < nbody; i++ {
		b := &m.Bodies[i]
		if b.ParentID < 0 || b.ParentID >= i {
			return fmt.Errorf("%w: body %d parent %d must precede it", ErrInvalidModel, i, b.ParentID)
		}
		if err := checkID("root body", b.RootID, nbody, false); err != nil {
			return err
		}
		if err := checkID("weld body", b.WeldID, nbody, false); err != nil {
			return err
		}
		if b.JntAdr < 0 || b.JntAdr+b.JntNum > len(m.Joints) {
			return fmt.Errorf("%w: body %d joints [%d,+%d) out of range", ErrInvalidModel, i, b.JntAdr, b.JntNum)
		}
	}
	for i := range m.Joints {
		if err := checkID("joint body", m.Joints[i].BodyID, nbody, false); err != nil {
			return err
		}
	}
	for i := range m.Geoms {
		g := &m.Geoms[i]
		if err := checkID("geom body", g.BodyID, nbody, false); err != nil {
			return err
		}
		if err := checkID("geom material", g.MatID, len(m.Materials), true); err != nil {
			return err
		}
		if g.Type == GeomMesh {
			if err := checkID("geom mesh", g.DataID, len(m.Meshes), false); err != nil {
				return err
			}
		}
	}
	for i := range m.Sites {
		if err := checkID("site body", m.Sites[i].BodyID, nbody, false); err != nil {
			return err
		}
		if err := checkID("site material", m.Sites[i].MatID, len(m.Materials), true); err != nil {
			return err
		}
	}
	for i := range m.Tendons {
		if err := checkID("tendon material", m.Tendons[i].MatID, len(m.Materials), true); err != nil {
			return err
		}
	}
	for i := range m.Actuators {
		if err := m.validateActuator(&m.Actuators[i]); err != nil {
			return fmt.Errorf("actuator %d: %w", i, err)
		}
	}
	for i := range m.Equalities {
		e := &m.Equalities[i]
		if e.Type == EqConnect {
			if err := checkID("equality body", e.Obj1ID, nbody, false); err != nil {
				return err
			}
			if err := checkID("equality body", e.Obj2ID, nbody, false); err != nil {
				return err
			}
		}
	}
	for i := range m.Sensors {
		if m.Sensors[i].Type == SensorRangefinder {
			if err := checkID("rangefinder site", m.Sensors[i].ObjID, len(m.Sites), false); err != nil {
				return err
			}
		}
	}
	for i := range m.Skins {
		s := &m.Skins[i]
		if err := checkID("skin material", s.MatID, len(m.Materials), true); err != nil {
			return err
		}
		if len(s.Vert)%3 != 0 || len(s.Face)%3 != 0 {
			return fmt.Errorf("%w: skin %d vertex or face data not a multiple of 3", ErrInvalidModel, i)
		}
		nvert := s.NumVert()
		for _, f := range s.Face {
			if err := checkID("skin face vertex", int(f), nvert, false); err != nil {
				return err
			}
		}
		for j := range s.Bones {
			bone := &s.Bones[j]
			if err := checkID("skin bone body", bone.BodyID, nbody, false); err != nil {
				return err
			}
			if len(bone.VertIDs) != len(bone.VertWeights) {
				return fmt.Errorf("%w: skin %d bone %d has %d vertices but %d weights",
					ErrInvalidModel, i, j, len(bone.VertIDs), len(bone.VertWeights))
			}
			for _, v := range bone.VertIDs {
				if err := checkID("skin bone vertex", int(v), nvert, false); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (m *Model) validateActuator(a *Actuator) error {
	switch a.TrnType {
	case TrnJoint, TrnJointInParent:
		return checkID("transmission joint", a.TrnID[0], len(m.Joints), false)
	case TrnTendon:
		return checkID("transmission tendon", a.TrnID[0], len(m.Tendons), false)
	case TrnSite:
		return checkID("transmission site", a.TrnID[0], len(m.Sites), false)
	case TrnBody:
		return checkID("transmission body", a.TrnID[0], len(m.Bodies), false)
	case TrnSliderCrank:
		if err := checkID("crank site", a.TrnID[0], len(m.Sites), false); err != nil {
			return err
		}
		return checkID("slider site", a.TrnID[1], len(m.Sites), false)
	}
	return fmt.Errorf("%w: unknown transmission %v", ErrInvalidModel, a.TrnType)
}

func checkLen(what string, got, want int) error {
	if got != want {
		return fmt.Errorf("%w: %s has %d entries, want %d", ErrStateMismatch, what, got, want)
	}
	return nil
}

// Validate checks that the state arrays are sized for m and that its
// contact and wrap entries reference existing entities.
func (d *State) Validate(m *Model) error {
	nbody, njnt, ngeom := len(m.Bodies), len(m.Joints), len(m.Geoms)
	checks := []struct {
		what      string
		got, want int
	}{
		{"xpos", len(d.XPos), nbody},
		{"xmat", len(d.XMat), nbody},
		{"xquat", len(d.XQuat), nbody},
		{"xipos", len(d.XIPos), nbody},
		{"ximat", len(d.XIMat), nbody},
		{"subtree_com", len(d.SubtreeCOM), nbody},
		{"xfrc_applied", len(d.XfrcApplied), nbody},
		{"xanchor", len(d.XAnchor), njnt},
		{"xaxis", len(d.XAxis), njnt},
		{"geom_xpos", len(d.GeomXPos), ngeom},
		{"geom_xmat", len(d.GeomXMat), ngeom},
		{"site_xpos", len(d.SiteXPos), len(m.Sites)},
		{"site_xmat", len(d.SiteXMat), len(m.Sites)},
		{"cam_xpos", len(d.CamXPos), len(m.Cameras)},
		{"cam_xmat", len(d.CamXMat), len(m.Cameras)},
		{"light_xpos", len(d.LightXPos), len(m.Lights)},
		{"light_xdir", len(d.LightXDir), len(m.Lights)},
		{"ctrl", len(d.Ctrl), len(m.Actuators)},
		{"ten_wrapadr", len(d.TenWrapAdr), len(m.Tendons)},
		{"ten_wrapnum", len(d.TenWrapNum), len(m.Tendons)},
		{"wrap_xpos", len(d.WrapXPos), len(d.WrapObj)},
	}
	for _, c := range checks {
		if err := checkLen(c.what, c.got, c.want); err != nil {
			return err
		}
	}

	for i := range m.Actuators {
		if a := m.Actuators[i].ActAdr; a >= len(d.Act) {
			return fmt.Errorf("%w: actuator %d activation address %d beyond act[%d]", ErrStateMismatch, i, a, len(d.Act))
		}
	}
	for i := range m.Sensors {
		if a := m.Sensors[i].Adr; a < 0 || a >= len(d.SensorData) {
			return fmt.Errorf("%w: sensor %d address %d beyond sensordata[%d]", ErrStateMismatch, i, a, len(d.SensorData))
		}
	}
	for i := range m.Tendons {
		if d.TenWrapAdr[i] < 0 || d.TenWrapAdr[i]+d.TenWrapNum[i] > len(d.WrapObj) {
			return fmt.Errorf("%w: tendon %d wrap range out of bounds", ErrStateMismatch, i)
		}
	}
	for i := range d.Contacts {
		c := &d.Contacts[i]
		if c.Exclude == ContactExcludeConstraint {
			if eq := -c.EfcAddress - 2; eq < 0 || eq >= len(m.Equalities) {
				return fmt.Errorf("%w: constraint contact %d refers to equality %d", ErrStateMismatch, i, eq)
			}
			continue
		}
		if c.Geom1 < 0 || c.Geom1 >= ngeom || c.Geom2 < 0 || c.Geom2 >= ngeom {
			return fmt.Errorf("%w: contact %d geoms (%d,%d) out of range", ErrStateMismatch, i, c.Geom1, c.Geom2)
		}
	}
	return nil
}
