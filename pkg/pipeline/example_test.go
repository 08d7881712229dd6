package pipeline_test

import (
	"fmt"

	"github.com/gduarte0/program2mass/pkg/pipeline"
	"github.com/gduarte0/program2mass/pkg/room"
)

func ExampleSolve() {
	reqs := []room.Request{
		{Name: "Master Bedroom", Area: 16},
		{Name: "Kitchen", Area: 12},
		{Name: "Bathroom", Area: 5},
	}

	res, err := pipeline.Solve(reqs, pipeline.Options{})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, r := range res.Rooms {
		fmt.Println(r.Name, r.Dimensions)
	}
	fmt.Println("passes:", len(res.Passes), "converged:", res.Converged)
	// Output:
	// Master Bedroom 350x450
	// Kitchen 450x250
	// Bathroom 150x350
	// passes: 3 converged: true
}

func ExampleSolve_none() {
	reqs := []room.Request{
		{Name: "Master Bedroom", Area: 16},
		{Name: "Kitchen", Area: 12},
		{Name: "Bathroom", Area: 5},
	}

	// Without an optimizer every room keeps its best single-room fit.
	res, _ := pipeline.Solve(reqs, pipeline.Options{Strategy: pipeline.StrategyNone})
	for _, r := range res.Rooms {
		fmt.Printf("%s %s %.2f m²\n", r.Name, r.Dimensions, r.ActualArea())
	}
	// Output:
	// Master Bedroom 450x350 15.75 m²
	// Kitchen 450x250 11.25 m²
	// Bathroom 250x200 5.00 m²
}
