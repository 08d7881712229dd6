// Package cluster groups wall lengths that are almost equal so the
// optimizers can pull them onto one shared value.
//
// [Analyze] is a single greedy pass over the distinct lengths in ascending
// order. Each value joins the first cluster (in creation order) whose
// center lies within the tolerance; otherwise it opens a new cluster. After
// every merge the center is recomputed as the occurrence-weighted mean of
// the members and snapped back to the rounding unit, so a center can
// drift as members arrive. Clusters are returned most frequent first,
// with equal counts kept in creation order.
package cluster

import (
	"fmt"
	"slices"
	"sort"

	"github.com/gduarte0/program2mass/pkg/dimension"
)

// Cluster is a group of nearby wall lengths.
type Cluster struct {
	Center int `json:"center_cm"`
	// Members are the distinct lengths absorbed, in ascending order.
	Members []int `json:"members_cm"`
	// Count is the total number of walls across all members.
	Count int `json:"count"`
}

// String formats the cluster for log output.
func (c Cluster) String() string {
	return fmt.Sprintf("%dcm (%d walls) %v", c.Center, c.Count, c.Members)
}

// Analyze clusters lengths (cm) within tolerance (cm), snapping centers to
// unit. An empty input yields an empty, non-nil slice.
func Analyze(lengths []int, tolerance, unit int) []Cluster {
	counts := make(map[int]int, len(lengths))
	for _, l := range lengths {
		counts[l]++
	}
	distinct := make([]int, 0, len(counts))
	for l := range counts {
		distinct = append(distinct, l)
	}
	slices.Sort(distinct)

	clusters := make([]Cluster, 0, len(distinct))
	for _, v := range distinct {
		merged := false
		for i := range clusters {
			c := &clusters[i]
			if abs(c.Center-v) > tolerance {
				continue
			}
			c.Members = append(c.Members, v)
			c.Count += counts[v]
			total := 0
			for _, m := range c.Members {
				total += m * counts[m]
			}
			c.Center = dimension.Snap(float64(total)/float64(c.Count), unit)
			merged = true
			break
		}
		if !merged {
			clusters = append(clusters, Cluster{Center: v, Members: []int{v}, Count: counts[v]})
		}
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].Count > clusters[j].Count
	})
	return clusters
}

// Centers returns the centers of the first k clusters. A k of zero or
// less returns every center.
func Centers(clusters []Cluster, k int) []int {
	if k <= 0 || k > len(clusters) {
		k = len(clusters)
	}
	out := make([]int, k)
	for i := range out {
		out[i] = clusters[i].Center
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
