package loss

import "math"

// HingeLoss is max(0, 1 - p·y).
type HingeLoss struct{}

// NewHingeLoss creates a hinge loss.
func NewHingeLoss() HingeLoss { return HingeLoss{} }

// Value returns max(0, 1 - p·y).
func (HingeLoss) Value(prediction, output float64) float64 {
	return math.Max(0, 1-prediction*output)
}

// Derivative returns -y when the margin is below 1, else 0.
func (HingeLoss) Derivative(prediction, output float64) float64 {
	if prediction*output < 1 {
		return -output
	}
	return 0
}

// Conjugate returns y·v for y·v ∈ [-1, 0].
func (HingeLoss) Conjugate(v, output float64) float64 {
	a := output * v
	if a < -1 || a > 0 {
		return math.Inf(1)
	}
	return a
}

// ConjugateProx returns y·clamp(y·z - θ, -1, 0).
func (HingeLoss) ConjugateProx(theta, z, output float64) float64 {
	return output * clamp(output*z-theta, -1, 0)
}

// Smoothness returns +Inf.
func (HingeLoss) Smoothness() float64 { return math.Inf(1) }

// VerifyOutput requires output ∈ {-1, +1}.
func (HingeLoss) VerifyOutput(output float64) error { return verifyBinary("HingeLoss", output) }

// DefaultSmoothedHingeGamma is the smoothing width used when
// SmoothedHingeLoss.Gamma is not positive.
const DefaultSmoothedHingeGamma = 1.0

// SmoothedHingeLoss replaces the kink of the hinge loss with a quadratic of
// width Gamma.
type SmoothedHingeLoss struct {
	Gamma float64
}

// NewSmoothedHingeLoss creates a smoothed hinge loss. A non-positive gamma
// selects DefaultSmoothedHingeGamma.
func NewSmoothedHingeLoss(gamma float64) SmoothedHingeLoss {
	if gamma <= 0 {
		gamma = DefaultSmoothedHingeGamma
	}
	return SmoothedHingeLoss{Gamma: gamma}
}

func (l SmoothedHingeLoss) gamma() float64 {
	if l.Gamma <= 0 {
		return DefaultSmoothedHingeGamma
	}
	return l.Gamma
}

// Value returns 0 for margins >= 1, (1 - m)²/(2γ) for margins in [1 - γ, 1)
// and 1 - m - γ/2 below.
func (l SmoothedHingeLoss) Value(prediction, output float64) float64 {
	gamma := l.gamma()
	margin := prediction * output
	switch {
	case margin >= 1:
		return 0
	case margin >= 1-gamma:
		r := 1 - margin
		return 0.5 * r * r / gamma
	default:
		return 1 - margin - 0.5*gamma
	}
}

// Derivative returns the derivative in the prediction.
func (l SmoothedHingeLoss) Derivative(prediction, output float64) float64 {
	gamma := l.gamma()
	margin := prediction * output
	switch {
	case margin >= 1:
		return 0
	case margin >= 1-gamma:
		return -output * (1 - margin) / gamma
	default:
		return -output
	}
}

// Conjugate returns a + ½γa² for a = y·v ∈ [-1, 0].
func (l SmoothedHingeLoss) Conjugate(v, output float64) float64 {
	a := output * v
	if a < -1 || a > 0 {
		return math.Inf(1)
	}
	return a + 0.5*l.gamma()*a*a
}

// ConjugateProx returns y·clamp((y·z - θ)/(1 + θγ), -1, 0).
func (l SmoothedHingeLoss) ConjugateProx(theta, z, output float64) float64 {
	return output * clamp((output*z-theta)/(1+theta*l.gamma()), -1, 0)
}

// Smoothness returns 1/γ.
func (l SmoothedHingeLoss) Smoothness() float64 { return 1 / l.gamma() }

// VerifyOutput requires output ∈ {-1, +1}.
func (l SmoothedHingeLoss) VerifyOutput(output float64) error {
	return verifyBinary("SmoothedHingeLoss", output)
}

// SquaredHingeLoss is ½max(0, 1 - p·y)².
type SquaredHingeLoss struct{}

// NewSquaredHingeLoss creates a squared hinge loss.
func NewSquaredHingeLoss() SquaredHingeLoss { return SquaredHingeLoss{} }

// Value returns ½max(0, 1 - p·y)².
func (SquaredHingeLoss) Value(prediction, output float64) float64 {
	r := math.Max(0, 1-prediction*output)
	return 0.5 * r * r
}

// Derivative returns -y·max(0, 1 - p·y).
func (SquaredHingeLoss) Derivative(prediction, output float64) float64 {
	return -output * math.Max(0, 1-prediction*output)
}

// Conjugate returns a + ½a² for a = y·v <= 0.
func (SquaredHingeLoss) Conjugate(v, output float64) float64 {
	a := output * v
	if a > 0 {
		return math.Inf(1)
	}
	return a + 0.5*a*a
}

// ConjugateProx returns y·min(0, (y·z - θ)/(1 + θ)).
func (SquaredHingeLoss) ConjugateProx(theta, z, output float64) float64 {
	return output * math.Min(0, (output*z-theta)/(1+theta))
}

// Smoothness returns 1.
func (SquaredHingeLoss) Smoothness() float64 { return 1 }

// VerifyOutput requires output ∈ {-1, +1}.
func (SquaredHingeLoss) VerifyOutput(output float64) error {
	return verifyBinary("SquaredHingeLoss", output)
}
