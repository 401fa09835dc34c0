package loss

import "math"

// Logistic loss defaults.
const (
	DefaultLogisticMaxNewtonSteps = 20
	DefaultLogisticTolerance      = 1e-6
)

// logisticEpsilon keeps the conjugate away from log(0) at the ends of [-1, 0].
const logisticEpsilon = 1e-12

// LogisticLoss is log(1 + exp(-p·y)).
//
// Its conjugate prox has no closed form and is solved with a safeguarded Newton
// iteration of at most MaxNewtonSteps steps that stops once a step is smaller
// than Tolerance. Zero fields select the defaults.
type LogisticLoss struct {
	MaxNewtonSteps int
	Tolerance      float64
}

// NewLogisticLoss creates a logistic loss with the default Newton settings.
func NewLogisticLoss() LogisticLoss {
	return LogisticLoss{
		MaxNewtonSteps: DefaultLogisticMaxNewtonSteps,
		Tolerance:      DefaultLogisticTolerance,
	}
}

// Value returns log(1 + exp(-m)) for the margin m = p·y.
func (LogisticLoss) Value(prediction, output float64) float64 {
	margin := prediction * output
	if margin <= -18 {
		return -margin
	}
	return math.Log1p(math.Exp(-margin))
}

// Derivative returns -y / (1 + exp(p·y)).
func (LogisticLoss) Derivative(prediction, output float64) float64 {
	return -output / (1 + math.Exp(prediction*output))
}

// Conjugate returns (-a)·log(-a) + (1 + a)·log(1 + a) for a = y·v ∈ [-1, 0].
func (LogisticLoss) Conjugate(v, output float64) float64 {
	a := output * v
	if a < -1 || a > 0 {
		return math.Inf(1)
	}
	a = clamp(a, -1+logisticEpsilon, -logisticEpsilon)
	return -a*math.Log(-a) + (1+a)*math.Log(1+a)
}

// ConjugateProx returns y·c where c minimizes θ·ℓ*(c) + ½(c - y·z)² over (-1, 0).
//
// With c = -σ(u) the optimality condition becomes g(u) = -σ(u) - y·z - θu = 0,
// where g is strictly decreasing with |g'| >= θ. The root is bracketed by
// θu ∈ [-1 - y·z, -y·z] and found with Newton steps; steps that leave the
// current bracket are replaced by bisection.
func (l LogisticLoss) ConjugateProx(theta, z, output float64) float64 {
	steps, tolerance := l.MaxNewtonSteps, l.Tolerance
	if steps <= 0 {
		steps = DefaultLogisticMaxNewtonSteps
	}
	if tolerance <= 0 {
		tolerance = DefaultLogisticTolerance
	}

	target := output * z
	limit := logit(1 - logisticEpsilon)
	lo := math.Max(-(1+target)/theta, -limit)
	hi := math.Min(-target/theta, limit)
	if lo >= hi {
		return -output * sigmoid(clamp(lo, -limit, limit))
	}

	u := clamp(logit(clamp(-target, logisticEpsilon, 1-logisticEpsilon)), lo, hi)
	for i := 0; i < steps; i++ {
		s := sigmoid(u)
		g := -s - target - theta*u
		if g == 0 {
			break
		}
		if g > 0 {
			lo = u
		} else {
			hi = u
		}

		next := u + g/(s*(1-s)+theta)
		if next <= lo || next >= hi {
			next = 0.5 * (lo + hi)
		}
		done := math.Abs(next-u) <= tolerance
		u = next
		if done {
			break
		}
	}
	return -output * sigmoid(u)
}

func sigmoid(u float64) float64 {
	return 1 / (1 + math.Exp(-u))
}

func logit(s float64) float64 {
	return math.Log(s / (1 - s))
}

// Smoothness returns 1/4.
func (LogisticLoss) Smoothness() float64 { return 0.25 }

// VerifyOutput requires output ∈ {-1, +1}.
func (LogisticLoss) VerifyOutput(output float64) error { return verifyBinary("LogisticLoss", output) }
