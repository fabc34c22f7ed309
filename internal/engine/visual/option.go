// Package visual turns a simulation snapshot into the abstract geoms of a
// scene. Each entity category is an independent step appending into the
// bounded scene buffer.
package visual

import "fmt"

// Flag selects an optional category of the visualization.
type Flag int

// Visualization flags.
const (
	FlagConvexHull Flag = iota
	FlagTexture
	FlagJoint
	FlagCamera
	FlagActuator
	FlagActivation
	FlagLight
	FlagTendon
	FlagRangefinder
	FlagConstraint
	FlagInertia
	FlagSclInertia
	FlagPertForce
	FlagPertObj
	FlagContactPoint
	FlagContactForce
	FlagContactSplit
	FlagTransparent
	FlagAutoConnect
	FlagCOM
	FlagSelect
	FlagStatic
	FlagSkin

	NumFlags
)

var flagNames = [NumFlags]string{
	"convexhull", "texture", "joint", "camera", "actuator", "activation",
	"light", "tendon", "rangefinder", "constraint", "inertia", "sclinertia",
	"pertforce", "pertobj", "contactpoint", "contactforce", "contactsplit",
	"transparent", "autoconnect", "com", "select", "static", "skin",
}

func (f Flag) String() string {
	if f < 0 || f >= NumFlags {
		return fmt.Sprintf("Flag(%d)", int(f))
	}
	return flagNames[f]
}

// ParseFlag returns the flag with the given name.
func ParseFlag(s string) (Flag, error) {
	for i, name := range flagNames {
		if name == s {
			return Flag(i), nil
		}
	}
	return 0, fmt.Errorf("unknown visual flag %q", s)
}

// Label selects which entities carry a text label.
type Label int

// Label targets.
const (
	LabelNone Label = iota
	LabelBody
	LabelJoint
	LabelGeom
	LabelSite
	LabelCamera
	LabelLight
	LabelTendon
	LabelActuator
	LabelConstraint
	LabelSkin
	LabelSelection
	LabelSelPnt
	LabelContactForce
)

var labelNames = [...]string{
	"none", "body", "joint", "geom", "site", "camera", "light", "tendon",
	"actuator", "constraint", "skin", "selection", "selpnt", "contactforce",
}

func (l Label) String() string {
	if l < 0 || int(l) >= len(labelNames) {
		return fmt.Sprintf("Label(%d)", int(l))
	}
	return labelNames[l]
}

// ParseLabel returns the label target with the given name.
func ParseLabel(s string) (Label, error) {
	for i, name := range labelNames {
		if name == s {
			return Label(i), nil
		}
	}
	return 0, fmt.Errorf("unknown label target %q", s)
}

// Frame selects which entities show their coordinate frame.
type Frame int

// Frame targets.
const (
	FrameNone Frame = iota
	FrameBody
	FrameGeom
	FrameSite
	FrameCamera
	FrameLight
	FrameContact
	FrameWorld
)

var frameNames = [...]string{"none", "body", "geom", "site", "camera", "light", "contact", "world"}

func (f Frame) String() string {
	if f < 0 || int(f) >= len(frameNames) {
		return fmt.Sprintf("Frame(%d)", int(f))
	}
	return frameNames[f]
}

// ParseFrame returns the frame target with the given name.
func ParseFrame(s string) (Frame, error) {
	for i, name := range frameNames {
		if name == s {
			return Frame(i), nil
		}
	}
	return 0, fmt.Errorf("unknown frame target %q", s)
}

// NumGroups is the number of visibility groups per entity kind.
const NumGroups = 6

// Groups is a per-group visibility mask.
type Groups [NumGroups]bool

// Enabled reports whether group g is visible. Out-of-range groups are
// clamped to the nearest valid group.
func (gs *Groups) Enabled(g int) bool {
	return gs[min(max(g, 0), NumGroups-1)]
}

// Option is the caller's choice of what to visualize. It is passed by
// value on every update.
type Option struct {
	Label Label
	Frame Frame
	Flags [NumFlags]bool

	GeomGroup     Groups
	SiteGroup     Groups
	JointGroup    Groups
	TendonGroup   Groups
	ActuatorGroup Groups
}

// DefaultOption returns the standard options: textures, tendons,
// rangefinders, perturbation object, selection, static bodies and skins
// on, and groups 0-2 visible.
func DefaultOption() Option {
	opt := Option{}
	for _, f := range []Flag{FlagTexture, FlagTendon, FlagRangefinder, FlagPertObj, FlagSelect, FlagStatic, FlagSkin} {
		opt.Flags[f] = true
	}
	defaultGroups := Groups{true, true, true}
	opt.GeomGroup = defaultGroups
	opt.SiteGroup = defaultGroups
	opt.JointGroup = defaultGroups
	opt.TendonGroup = defaultGroups
	opt.ActuatorGroup = defaultGroups
	return opt
}

// Set turns the named flags on or off.
func (o *Option) Set(on bool, names ...string) error {
	for _, name := range names {
		f, err := ParseFlag(name)
		if err != nil {
			return err
		}
		o.Flags[f] = on
	}
	return nil
}
