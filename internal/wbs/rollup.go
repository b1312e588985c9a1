package wbs

import (
	"math"
	"time"

	"github.com/alexanderramin/wbs/internal/domain"
)

// Build assembles the forest and computes every rollup. It is the read path
// used by the services and is safe to call concurrently on shared input.
func Build(nodes []domain.Node) []*domain.TreeNode {
	forest := Assemble(nodes)
	ComputeRollups(forest)
	return forest
}

// ComputeRollups fills Rollup on every node of the forest, post-order.
// Sibling order and codes are left untouched.
func ComputeRollups(forest []*domain.TreeNode) {
	for _, tn := range forest {
		rollupNode(tn)
	}
}

// rollupNode merges a node's own values with its children's rollups. Percent
// complete is weighted by effort so a large unstarted package is not hidden
// behind many small finished tasks.
func rollupNode(tn *domain.TreeNode) domain.Rollup {
	r := domain.Rollup{
		EffortHours: tn.EffortHours,
		Cost:        tn.Cost,
		StartDate:   copyDate(tn.StartDate),
		FinishDate:  copyDate(tn.FinishDate),
	}
	earned := float64(tn.PercentComplete) / 100 * tn.EffortHours

	for _, child := range tn.Children {
		cr := rollupNode(child)
		r.EffortHours += cr.EffortHours
		r.Cost += cr.Cost
		r.StartDate = minDate(r.StartDate, cr.StartDate)
		r.FinishDate = maxDate(r.FinishDate, cr.FinishDate)
		earned += float64(cr.PercentComplete) / 100 * cr.EffortHours
	}

	r.PercentComplete = weightedPercent(earned, r.EffortHours)
	tn.Rollup = &r
	return r
}

// Totals rolls the whole forest up as if it hung under a virtual project
// root with no values of its own. ComputeRollups must have run first.
func Totals(forest []*domain.TreeNode) domain.Rollup {
	var r domain.Rollup
	var earned float64
	for _, tn := range forest {
		if tn.Rollup == nil {
			continue
		}
		cr := *tn.Rollup
		r.EffortHours += cr.EffortHours
		r.Cost += cr.Cost
		r.StartDate = minDate(r.StartDate, cr.StartDate)
		r.FinishDate = maxDate(r.FinishDate, cr.FinishDate)
		earned += float64(cr.PercentComplete) / 100 * cr.EffortHours
	}
	r.PercentComplete = weightedPercent(earned, r.EffortHours)
	return r
}

func weightedPercent(earned, effort float64) int {
	if effort <= 0 {
		return 0
	}
	return int(math.Round(earned / effort * 100))
}

func copyDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// minDate returns the earlier of two optional dates; a present date always
// beats an absent one.
func minDate(a, b *time.Time) *time.Time {
	switch {
	case a == nil:
		return copyDate(b)
	case b == nil:
		return a
	case b.Before(*a):
		return copyDate(b)
	default:
		return a
	}
}

func maxDate(a, b *time.Time) *time.Time {
	switch {
	case a == nil:
		return copyDate(b)
	case b == nil:
		return a
	case b.After(*a):
		return copyDate(b)
	default:
		return a
	}
}
