// Package main provides the ERM command line demo.
package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/born-ml/erm/dataset"
	"github.com/born-ml/erm/internal/parallel"
	"github.com/born-ml/erm/loss"
	"github.com/born-ml/erm/optim"
	"github.com/born-ml/erm/regularizer"
	"github.com/born-ml/erm/solution"
)

const version = "v0.0.1-dev"

// demoSeed seeds the demo dataset and the optimizers.
const demoSeed = "abc123"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("ERM optimization core %s\n", version)
			return
		case "demo":
			demo()
			return
		}
	}

	fmt.Println("ERM - Empirical Risk Minimization for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  demo       Train every loss with SDCA and SGD on a synthetic problem")
}

type demoLoss struct {
	name     string
	function loss.Function
	binary   bool
}

// demoResult holds the two rows printed for one loss.
type demoResult struct {
	sdca, sgd string
}

func demo() {
	losses := []demoLoss{
		{"square", loss.NewSquareLoss(), false},
		{"absolute", loss.NewAbsoluteLoss(), false},
		{"huber", loss.NewHuberLoss(loss.DefaultHuberGamma), false},
		{"hinge", loss.NewHingeLoss(), true},
		{"smoothed-hinge", loss.NewSmoothedHingeLoss(loss.DefaultSmoothedHingeGamma), true},
		{"squared-hinge", loss.NewSquaredHingeLoss(), true},
		{"logistic", loss.NewLogisticLoss(), true},
	}

	regression, _, _ := dataset.LinearRegression(newRand(), 500, 20, 0.1)
	classification, _ := dataset.LinearClassification(newRand(), 500, 20, 0.5)

	// every loss trains its own solutions, the datasets are only read
	results := parallel.Map(len(losses), func(i int) demoResult {
		l := losses[i]
		var examples dataset.Set[float64, float64] = regression
		if l.binary {
			examples = classification
		}
		return train(l, examples)
	}, parallel.DefaultConfig())

	fmt.Printf("%-16s %-8s %12s %12s %10s %8s\n", "loss", "method", "primal", "gap", "epochs", "density")
	fmt.Println(strings.Repeat("-", 72))
	for _, r := range results {
		fmt.Println(r.sdca)
		if r.sgd != "" {
			fmt.Println(r.sgd)
		}
	}
}

func train(l demoLoss, examples dataset.Set[float64, float64]) demoResult {
	sdca, err := optim.NewSDCA(examples, solution.NewBiasedVectorSolution[float64](), l.function,
		regularizer.NewL2(), optim.SDCAParameters{
			Regularization:    0.01,
			DesiredDualityGap: 1e-5,
			PermuteData:       true,
			RandomSeed:        demoSeed,
		})
	if err != nil {
		return demoResult{sdca: fmt.Sprintf("%-16s error: %v", l.name, err)}
	}
	sdca.PerformEpochs(100)
	info := sdca.GetSolutionInfo()
	var r demoResult
	r.sdca = fmt.Sprintf("%-16s %-8s %12.6f %12.2e %10d %8.3f", l.name, "sdca",
		info.PrimalObjective, info.DualityGap(), info.NumEpochsPerformed, sdca.GetSolution().Density())

	sgd, err := optim.NewSGD(examples, solution.NewBiasedVectorSolution[float64](), l.function,
		optim.SGDParameters{Regularization: 0.01, RandomSeed: demoSeed})
	if err != nil {
		r.sgd = fmt.Sprintf("%-16s error: %v", l.name, err)
		return r
	}
	sgd.PerformEpochs(20)
	r.sgd = fmt.Sprintf("%-16s %-8s %12.6f %12s %10d %8.3f", l.name, "sgd",
		objective(examples, sgd.GetSolution(), l.function, 0.01), "-", 20, sgd.GetSolution().Density())
	return r
}

func newRand() *rand.Rand { return rand.New(rand.NewPCG(42, 42)) }

// objective returns the L2 regularized average loss of w.
func objective(examples dataset.Set[float64, float64], w *solution.VectorSolution[float64], l loss.Function, lambda float64) float64 {
	sum := 0.0
	for i := 0; i < examples.Size(); i++ {
		e := examples.Get(i)
		sum += l.Value(w.Multiply(e.Input), e.Output)
	}
	return sum/float64(examples.Size()) + 0.5*lambda*w.Norm2Squared()
}
