package math

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Length(t *testing.T) {
	v := Vec3{3, 4, 0}
	if got := v.Length(); got != 5 {
		t.Errorf("Vec3.Length() = %v, want 5", got)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 4, 12}
	l := v.Normalize().Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}

	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("zero Vec3.Normalize() = %v, want zero", got)
	}
}

func TestFromVec64(t *testing.T) {
	got := FromVec64(mgl64.Vec3{1.5, -2, 3})
	want := Vec3{1.5, -2, 3}
	if got != want {
		t.Errorf("FromVec64() = %v, want %v", got, want)
	}
	if got.ToVec64() != (mgl64.Vec3{1.5, -2, 3}) {
		t.Errorf("ToVec64() = %v", got.ToVec64())
	}
}

func TestFromMat64(t *testing.T) {
	m := FromMat64(mgl64.Ident3())
	if m != Identity3() {
		t.Errorf("FromMat64(Ident3()) = %v, want identity", m)
	}
}
