// Package loss implements the convex loss functions of the optimizers.
//
// Each loss is a function ℓ(p, y) of a prediction p and an output y, together
// with its Fenchel conjugate in the first argument and the proximal operator of
// that conjugate, which SDCA uses for its dual coordinate updates.
//
// Binary losses (Hinge, SmoothedHinge, SquaredHinge, Logistic) assume y ∈ {-1, +1}.
// They do not check it on every call; the optimizers validate every example with
// VerifyOutput before they use a loss.
package loss

import (
	"math"

	"github.com/born-ml/erm/internal/opterr"
)

// Function is a convex loss of a scalar prediction.
type Function interface {
	// Value returns ℓ(prediction, output).
	Value(prediction, output float64) float64

	// Derivative returns ∂ℓ/∂prediction (a subgradient for non-smooth losses).
	Derivative(prediction, output float64) float64

	// Conjugate returns ℓ*(v) = sup_p {v·p - ℓ(p, output)}, +Inf outside its domain.
	Conjugate(v, output float64) float64

	// ConjugateProx returns argmin_b {theta·ℓ*(b) + ½(b - z)²}.
	ConjugateProx(theta, z, output float64) float64

	// Smoothness returns the Lipschitz constant of the derivative, +Inf for
	// non-smooth losses.
	Smoothness() float64

	// VerifyOutput reports whether output is valid for this loss.
	VerifyOutput(output float64) error
}

// verifyBinary returns an IncompatibleOutput error unless output is -1 or +1.
func verifyBinary(name string, output float64) error {
	if output != 1 && output != -1 {
		return opterr.New(opterr.IncompatibleOutput, name, "output %g is not -1 or +1", output)
	}
	return nil
}

func clamp(x, lo, hi float64) float64 {
	return math.Min(math.Max(x, lo), hi)
}

// verifyFinite returns an IncompatibleOutput error for NaN or infinite outputs.
func verifyFinite(name string, output float64) error {
	if math.IsNaN(output) || math.IsInf(output, 0) {
		return opterr.New(opterr.IncompatibleOutput, name, "output %g is not finite", output)
	}
	return nil
}
