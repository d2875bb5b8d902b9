package linode

import "fmt"

// Method identifies a stepping method. The enumeration is closed; resolution
// from a name happens once per solver call through ParseMethod.
type Method int

const (
	Euler Method = iota
	RK4
)

func (m Method) String() string {
	switch m {
	case Euler:
		return "Euler"
	case RK4:
		return "RK4"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod resolves a method name. The canonical names are "Euler" and
// "RK4"; lower-case spellings are accepted for CLI use. Anything else is
// ErrUnknownMethod, never a silent default.
func ParseMethod(name string) (Method, error) {
	switch name {
	case "Euler", "euler":
		return Euler, nil
	case "RK4", "rk4":
		return RK4, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
	}
}

// Methods lists the recognized canonical method names.
func Methods() []string {
	return []string{"Euler", "RK4"}
}

// StepFunc computes one timestep's increment for a single state element
// from its coupling coefficient, current value, scale input, and dt.
type StepFunc func(coeff, value, scale, dt float64) float64

// Step returns the stepping function for m. It panics on an invalid Method
// value; callers obtain Method through ParseMethod, which cannot produce one.
func (m Method) Step() StepFunc {
	switch m {
	case Euler:
		return eulerStep
	case RK4:
		return rk4Step
	default:
		panic("linode: invalid method value")
	}
}

// eulerStep is first-order. The right-hand side reads the scale input, not
// the evolving value; the increment is independent of value.
func eulerStep(coeff, value, scale, dt float64) float64 {
	return coeff * scale * dt
}

// rk4Step applies the four-stage Runge-Kutta weighting to the same
// right-hand-side convention as eulerStep. The intermediate corrections
// perturb the scale input between stages.
func rk4Step(coeff, value, scale, dt float64) float64 {
	f1 := coeff * scale * dt

	c2 := dt * f1 / 2
	f2 := coeff * (scale + c2) * (dt / 2)

	c3 := dt * f2 / 2
	f3 := coeff * (scale + c3) * (dt / 2)

	c4 := dt * f3
	f4 := coeff * (scale + c4) * dt

	return (f1 + 2*f2 + 2*f3 + f4) / 6
}
