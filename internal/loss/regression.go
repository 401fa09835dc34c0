package loss

import "math"

// SquareLoss is ½(p - y)².
type SquareLoss struct{}

// NewSquareLoss creates a square loss.
func NewSquareLoss() SquareLoss { return SquareLoss{} }

// Value returns ½(p - y)².
func (SquareLoss) Value(prediction, output float64) float64 {
	r := prediction - output
	return 0.5 * r * r
}

// Derivative returns p - y.
func (SquareLoss) Derivative(prediction, output float64) float64 {
	return prediction - output
}

// Conjugate returns ½v² + y·v.
func (SquareLoss) Conjugate(v, output float64) float64 {
	return (0.5*v + output) * v
}

// ConjugateProx returns (z - θy) / (1 + θ).
func (SquareLoss) ConjugateProx(theta, z, output float64) float64 {
	return (z - theta*output) / (1 + theta)
}

// Smoothness returns 1.
func (SquareLoss) Smoothness() float64 { return 1 }

// VerifyOutput accepts every finite output.
func (SquareLoss) VerifyOutput(output float64) error { return verifyFinite("SquareLoss", output) }

// AbsoluteLoss is |p - y|.
type AbsoluteLoss struct{}

// NewAbsoluteLoss creates an absolute loss.
func NewAbsoluteLoss() AbsoluteLoss { return AbsoluteLoss{} }

// Value returns |p - y|.
func (AbsoluteLoss) Value(prediction, output float64) float64 {
	return math.Abs(prediction - output)
}

// Derivative returns sign(p - y), 0 at p = y.
func (AbsoluteLoss) Derivative(prediction, output float64) float64 {
	switch {
	case prediction > output:
		return 1
	case prediction < output:
		return -1
	default:
		return 0
	}
}

// Conjugate returns y·v on [-1, 1].
func (AbsoluteLoss) Conjugate(v, output float64) float64 {
	if v < -1 || v > 1 {
		return math.Inf(1)
	}
	return output * v
}

// ConjugateProx returns z - θy clamped to [-1, 1].
func (AbsoluteLoss) ConjugateProx(theta, z, output float64) float64 {
	return clamp(z-theta*output, -1, 1)
}

// Smoothness returns +Inf.
func (AbsoluteLoss) Smoothness() float64 { return math.Inf(1) }

// VerifyOutput accepts every finite output.
func (AbsoluteLoss) VerifyOutput(output float64) error { return verifyFinite("AbsoluteLoss", output) }

// DefaultHuberGamma is the transition width used when HuberLoss.Gamma is not positive.
const DefaultHuberGamma = 1.0

// HuberLoss is quadratic for |p - y| <= Gamma and linear beyond.
type HuberLoss struct {
	Gamma float64
}

// NewHuberLoss creates a Huber loss. A non-positive gamma selects DefaultHuberGamma.
func NewHuberLoss(gamma float64) HuberLoss {
	if gamma <= 0 {
		gamma = DefaultHuberGamma
	}
	return HuberLoss{Gamma: gamma}
}

func (l HuberLoss) gamma() float64 {
	if l.Gamma <= 0 {
		return DefaultHuberGamma
	}
	return l.Gamma
}

// Value returns r²/(2γ) for |r| <= γ and |r| - γ/2 otherwise, r = p - y.
func (l HuberLoss) Value(prediction, output float64) float64 {
	gamma := l.gamma()
	r := math.Abs(prediction - output)
	if r <= gamma {
		return 0.5 * r * r / gamma
	}
	return r - 0.5*gamma
}

// Derivative returns (p - y)/γ clamped to [-1, 1].
func (l HuberLoss) Derivative(prediction, output float64) float64 {
	return clamp((prediction-output)/l.gamma(), -1, 1)
}

// Conjugate returns y·v + ½γv² on [-1, 1].
func (l HuberLoss) Conjugate(v, output float64) float64 {
	if v < -1 || v > 1 {
		return math.Inf(1)
	}
	return output*v + 0.5*l.gamma()*v*v
}

// ConjugateProx returns (z - θy) / (1 + θγ) clamped to [-1, 1].
func (l HuberLoss) ConjugateProx(theta, z, output float64) float64 {
	return clamp((z-theta*output)/(1+theta*l.gamma()), -1, 1)
}

// Smoothness returns 1/γ.
func (l HuberLoss) Smoothness() float64 { return 1 / l.gamma() }

// VerifyOutput accepts every finite output.
func (l HuberLoss) VerifyOutput(output float64) error { return verifyFinite("HuberLoss", output) }
