package room_test

import (
	"fmt"

	"github.com/gduarte0/program2mass/pkg/room"
)

func ExampleCatalog_Classify() {
	cat := room.DefaultCatalog()
	for _, name := range []string{"Master Bedroom", "Cozinha", "WC", "Home Office", "Entry Hall", "Garage"} {
		t := cat.Classify(name)
		fmt.Printf("%s: %s (%s)\n", name, t, cat.Category(t))
	}
	// Output:
	// Master Bedroom: bedroom (private)
	// Cozinha: kitchen (public)
	// WC: bathroom (private)
	// Home Office: office (private)
	// Entry Hall: circulation (service)
	// Garage: default (public)
}
