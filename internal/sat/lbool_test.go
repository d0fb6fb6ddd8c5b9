package sat

import "testing"

func TestLBoolOpposite(t *testing.T) {
	cases := []struct {
		in, want LBool
	}{
		{True, False},
		{False, True},
		{Unknown, Unknown},
	}
	for _, c := range cases {
		if got := c.in.Opposite(); got != c.want {
			t.Errorf("%v.Opposite() = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestLift(t *testing.T) {
	if got := Lift(true); got != True {
		t.Errorf("Lift(true) = %v, want %v", got, True)
	}
	if got := Lift(false); got != False {
		t.Errorf("Lift(false) = %v, want %v", got, False)
	}
}

func TestLBoolString(t *testing.T) {
	cases := []struct {
		in   LBool
		want string
	}{
		{True, "true"},
		{False, "false"},
		{Unknown, "unknown"},
	}
	for _, c := range cases {
		if got := c.in.String(); got != c.want {
			t.Errorf("%v.String() = %q, want %q", c.in, got, c.want)
		}
	}
}
