package factor

import (
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/pable/lck-metrics/internal/dataset"
	"github.com/pable/lck-metrics/internal/logger"
	"github.com/pable/lck-metrics/internal/model"
)

// MinCohort is the smallest position cohort that gets scored.
const MinCohort = 3

// Scorer computes playstyle scores from a set of cluster definitions.
type Scorer struct {
	defs *Definition
	log  *logrus.Entry
}

// NewScorer returns a scorer over defs. A nil or empty definition scores
// nothing.
func NewScorer(defs *Definition) *Scorer {
	return &Scorer{defs: defs, log: logger.WithComponent("factor")}
}

// Scores rates player against the rows of scope at position, one score per
// cluster id. The result is empty when there are no definitions, the player
// has no rows at that position, or the cohort is smaller than MinCohort.
func (s *Scorer) Scores(player, position string, scope *dataset.Table) map[int]model.FactorScore {
	out := make(map[int]model.FactorScore)
	if s.defs.Len() == 0 {
		return out
	}
	sc := scope.Schema()
	if sc.Position == "" || sc.PlayerName == "" {
		return out
	}

	cohort := scope.Where(sc.Position, position)
	playerRows := cohort.RowsWhere(sc.PlayerName, player)
	if len(playerRows) == 0 {
		return out
	}
	if cohort.Len() < MinCohort {
		s.log.WithFields(logrus.Fields{
			"position": position,
			"rows":     cohort.Len(),
		}).Debug("insufficient sample for factor scores")
		return out
	}

	for _, cl := range Clusters {
		out[cl.ID] = s.score(cl, cohort, playerRows)
	}
	return out
}

func (s *Scorer) score(cl Cluster, cohort *dataset.Table, playerRows []int) model.FactorScore {
	fs := model.FactorScore{ClusterID: cl.ID, Name: cl.Name, Method: model.MethodNone}
	for _, v := range s.defs.Variables(cl.ID) {
		if cohort.Has(v) {
			fs.Variables = append(fs.Variables, v)
		}
	}
	if len(fs.Variables) == 0 {
		return fs
	}

	x := matrix(cohort, fs.Variables)
	red := Reduce(standardize(x))
	for _, err := range red.Failures {
		s.log.WithFields(logrus.Fields{
			"cluster": cl.ID,
			"error":   err,
		}).Debug("reduction tier failed")
	}
	composite := Orient(red.Composite, rowSums(x))
	fs.Method = red.Method

	var pc float64
	for _, r := range playerRows {
		pc += composite[r]
	}
	pc /= float64(len(playerRows))

	fs.RawPercentile = Percentile(pc, composite)
	fs.Score = fs.RawPercentile
	if cl.Negative {
		fs.Score = 100 - fs.RawPercentile
		fs.Inverted = true
	}
	fs.Percent = (fs.Score - 20) / 60 * 100
	return fs
}

// matrix copies the named columns into a dense matrix. Null and non-numeric
// cells become 0.
func matrix(t *dataset.Table, cols []string) *mat.Dense {
	x := mat.NewDense(t.Len(), len(cols), nil)
	for j, name := range cols {
		c := t.Column(name)
		for i := 0; i < t.Len(); i++ {
			x.Set(i, j, c.FloatOr(i, 0))
		}
	}
	return x
}

// standardize centers each column and divides by its population standard
// deviation. Constant columns are divided by 1.
func standardize(x *mat.Dense) *mat.Dense {
	n, p := x.Dims()
	z := mat.NewDense(n, p, nil)
	for j := 0; j < p; j++ {
		col := mat.Col(nil, j, x)
		mean, variance := stat.PopMeanVariance(col, nil)
		scale := math.Sqrt(variance)
		if scale == 0 || math.IsNaN(scale) {
			scale = 1
		}
		for i, v := range col {
			z.Set(i, j, (v-mean)/scale)
		}
	}
	return z
}

func rowSums(x *mat.Dense) []float64 {
	n, _ := x.Dims()
	out := make([]float64, n)
	for i := range out {
		out[i] = mat.Sum(x.RowView(i))
	}
	return out
}

// Orient negates composite when it correlates negatively with reference, so
// larger raw values map to larger composites. An undefined correlation
// leaves the sign unchanged.
func Orient(composite, reference []float64) []float64 {
	r := stat.Correlation(composite, reference, nil)
	if !(r < 0) {
		return composite
	}
	out := make([]float64, len(composite))
	for i, v := range composite {
		out[i] = -v
	}
	return out
}

// Percentile rescales v as a z-score against cohort to mean 50 and standard
// deviation 10. A cohort with no spread puts everyone at 50.
func Percentile(v float64, cohort []float64) float64 {
	mean, variance := stat.PopMeanVariance(cohort, nil)
	std := math.Sqrt(variance)
	if !(std > zeroVarianceTol) {
		return 50
	}
	return 50 + (v-mean)/std*10
}
