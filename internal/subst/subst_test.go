package subst

import (
	"testing"

	"github.com/gitrdm/linearkb/internal/term"
)

func TestApplyWalksBindings(t *testing.T) {
	s := Empty().Bind("X", term.NewVariable("Y")).Bind("Y", term.NewAtom("hello"))

	got := Apply(s, term.NewVariable("X"))
	if want := term.NewAtom("hello"); !got.Equal(want) {
		t.Errorf("Apply() = %v, want %v", got, want)
	}
}

func TestApplyLeavesCloneWrapperIntact(t *testing.T) {
	s := Empty().Bind("X", term.NewAtom("a"))
	got := Apply(s, term.NewClone(term.NewVariable("X")))

	cl, ok := got.(term.Clone)
	if !ok {
		t.Fatalf("Apply() = %v, want a Clone", got)
	}
	if !cl.Inner.Equal(term.NewAtom("a")) {
		t.Errorf("Clone.Inner = %v, want a", cl.Inner)
	}
}

func TestBindSelfReferenceIsNoOp(t *testing.T) {
	s := Empty()
	s2 := s.Bind("X", term.NewVariable("X"))
	if s2.Len() != 0 {
		t.Errorf("binding X to itself should not add a binding, got %d bindings", s2.Len())
	}
}

func TestComposeAppliesSecondToFirst(t *testing.T) {
	s1 := Empty().Bind("X", term.NewVariable("Y"))
	s2 := Empty().Bind("Y", term.NewAtom("z"))

	composed := Compose(s1, s2)

	got := Apply(composed, term.NewVariable("X"))
	if want := term.NewAtom("z"); !got.Equal(want) {
		t.Errorf("composed X = %v, want %v", got, want)
	}
	got = Apply(composed, term.NewVariable("Y"))
	if want := term.NewAtom("z"); !got.Equal(want) {
		t.Errorf("composed Y = %v, want %v", got, want)
	}
}

func TestRestrictAppliesAndFilters(t *testing.T) {
	s := Empty().Bind("X", term.NewAtom("a")).Bind("Unrelated", term.NewAtom("b"))
	r := Restrict(s, []string{"X"})

	if r.Len() != 1 {
		t.Fatalf("Restrict() kept %d bindings, want 1", r.Len())
	}
	got, _ := r.Lookup("X")
	if want := term.NewAtom("a"); !got.Equal(want) {
		t.Errorf("Restrict()[X] = %v, want %v", got, want)
	}
}
