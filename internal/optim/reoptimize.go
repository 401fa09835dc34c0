package optim

import (
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/erm/internal/dataset"
	"github.com/born-ml/erm/internal/loss"
	"github.com/born-ml/erm/internal/opterr"
	"github.com/born-ml/erm/internal/regularizer"
	"github.com/born-ml/erm/internal/solution"
)

// ReoptimizeSparseSolution retrains the non-zero weights of a sparse matrix
// solution, typically the result of GetSparseSolution, with L2 regularization
// while its zero weights stay at zero. The elastic net shrinkage that produced
// the zero pattern no longer biases the surviving weights.
//
// Training starts from a zeroed MaskedMatrixSolution and runs SDCA for at most
// maxEpochs epochs, stopping early at the desired duality gap of params. The
// bias row is always free.
//
// Example:
//
//	sparse, err := optim.GetSparseSolution(examples, solution.NewBiasedMatrixSolution[float64](),
//	    lossFunction, sparseParams)
//	if err != nil {
//	    return err
//	}
//	dense, info, err := optim.ReoptimizeSparseSolution(examples, sparse.Solution,
//	    lossFunction, sparseParams.SDCAParameters, 100)
func ReoptimizeSparseSolution[T solution.Element](
	examples dataset.Set[T, []T], sparse *solution.MatrixSolution[T], lossFunction loss.Function,
	params SDCAParameters, maxEpochs int,
) (*solution.MatrixSolution[T], SolutionInfo, error) {
	const op = "ReoptimizeSparseSolution"
	weights := sparse.GetMatrix()
	if weights.IsEmpty() {
		return nil, SolutionInfo{}, opterr.New(opterr.InvalidParameter, op, "sparse solution is not sized")
	}

	rows, columns := weights.Dims()
	mask := mat.NewDense(rows, columns, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < columns; j++ {
			if weights.At(i, j) == 0 {
				mask.Set(i, j, 1)
			}
		}
	}

	masked := solution.NewMaskedMatrixSolution[T](sparse.IsBiased())
	if err := masked.SetMaskParameters(solution.MaskParameters{Mask: mask}); err != nil {
		return nil, SolutionInfo{}, err
	}
	optimizer, err := NewSDCA(examples, masked, lossFunction, regularizer.NewL2(), params)
	if err != nil {
		return nil, SolutionInfo{}, err
	}
	optimizer.PerformEpochs(maxEpochs)

	return masked.Unmasked(), optimizer.GetSolutionInfo(), nil
}
