// Package generator builds practice rows.
package generator

import (
	"math"
	"math/rand"
	"time"

	"github.com/verte-zerg/rootdrill/internal/model"
	"github.com/verte-zerg/rootdrill/internal/perf"
)

// Default row settings.
const (
	DefaultRowSize        = 15
	DefaultReinforceScale = 10
)

// Pool is the problem pool a row is drawn from.
type Pool interface {
	Len() int
}

// Generator produces randomized practice rows.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource returns a Generator drawing from src.
func NewWithSource(src rand.Source) *Generator {
	return &Generator{rnd: rand.New(src)}
}

// Generate assembles a shuffled row of rowSize ids. In study mode up to
// round(reinforceScale*U(0,1)) of them are weighted picks from st that favor
// slow problems; the rest are uniform picks from the pool.
func (g *Generator) Generate(pool Pool, st *perf.Store, rowSize int, reinforceScale float64, study bool) model.Row {
	n := pool.Len()
	if n == 0 || rowSize <= 0 {
		return model.NewRow(nil, nil)
	}
	st.RebuildDistribution()

	ids := make([]int, rowSize)
	reinforcing := make([]bool, rowSize)
	i := 0
	if study {
		count := int(math.Round(reinforceScale * g.rnd.Float64()))
		for _, id := range st.SampleWeighted(g.rnd, min(count, rowSize)) {
			ids[i] = id
			reinforcing[i] = true
			i++
		}
	}
	for ; i < rowSize; i++ {
		ids[i] = g.rnd.Intn(n)
	}
	for i = 1; i < rowSize; i++ {
		j := g.rnd.Intn(i + 1)
		ids[i], ids[j] = ids[j], ids[i]
		reinforcing[i], reinforcing[j] = reinforcing[j], reinforcing[i]
	}
	return model.NewRow(ids, reinforcing)
}
