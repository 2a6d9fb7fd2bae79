package replay_test

import (
	"fmt"

	"github.com/matzehuels/pathgrid/pkg/grid"
	"github.com/matzehuels/pathgrid/pkg/replay"
)

func ExampleController() {
	g, _ := grid.New(3, 3)
	c := replay.New(g, nil)
	c.Setup()

	// Wall off the middle column except the bottom row.
	c.Apply(replay.Edit{Intent: replay.IntentToggleObstacle, X: 1, Y: 0})
	c.Apply(replay.Edit{Intent: replay.IntentToggleObstacle, X: 1, Y: 1})

	var f replay.Frame
	for !f.Phase.Done() {
		f = c.Tick()
	}
	fmt.Println(f.Phase, f.Path)
	// Output:
	// path [(0,0) (0,1) (0,2) (1,2) (2,2)]
}
