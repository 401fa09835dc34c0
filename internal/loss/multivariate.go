package loss

// Multivariate applies a scalar loss independently to every output column.
// Values and conjugates are sums over the columns.
type Multivariate struct {
	Loss Function
}

// NewMultivariate wraps a scalar loss.
func NewMultivariate(loss Function) Multivariate {
	return Multivariate{Loss: loss}
}

// Value returns Σ_j ℓ(prediction[j], output[j]).
func (m Multivariate) Value(prediction, output []float64) float64 {
	sum := 0.0
	for j, p := range prediction {
		sum += m.Loss.Value(p, output[j])
	}
	return sum
}

// Derivative writes ∂ℓ/∂prediction[j] into dst[j].
func (m Multivariate) Derivative(prediction, output, dst []float64) {
	for j, p := range prediction {
		dst[j] = m.Loss.Derivative(p, output[j])
	}
}

// Conjugate returns Σ_j ℓ*(v[j], output[j]).
func (m Multivariate) Conjugate(v, output []float64) float64 {
	sum := 0.0
	for j, x := range v {
		sum += m.Loss.Conjugate(x, output[j])
	}
	return sum
}

// ConjugateProx writes the column-wise conjugate prox of z into dst.
func (m Multivariate) ConjugateProx(theta float64, z, output, dst []float64) {
	for j, x := range z {
		dst[j] = m.Loss.ConjugateProx(theta, x, output[j])
	}
}

// Smoothness returns the smoothness of the scalar loss.
func (m Multivariate) Smoothness() float64 { return m.Loss.Smoothness() }

// VerifyOutput checks every column of output.
func (m Multivariate) VerifyOutput(output []float64) error {
	for _, y := range output {
		if err := m.Loss.VerifyOutput(y); err != nil {
			return err
		}
	}
	return nil
}
