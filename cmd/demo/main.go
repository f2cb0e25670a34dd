package main

import (
	"flag"
	"fmt"

	"lab-pricing/internal/catalog"
	"lab-pricing/internal/engine"
	"lab-pricing/internal/model"
)

// Demo:
// - Load the sample catalog CSV
// - Simulate a repricing for one test
// - Print the scenario comparison and a short projection to show how the
//   pieces fit together
func main() {
	catalogPath := flag.String("catalog", "examples/catalog.csv", "Path to catalog CSV")
	testName := flag.String("test", "FULL BLOOD COUNT", "Test to simulate")
	flag.Parse()

	fc, err := catalog.OpenFileCatalog(*catalogPath, "")
	if err != nil {
		panic(err)
	}
	econ, err := fc.GetTest("", *testName)
	if err != nil {
		panic(err)
	}

	in := model.ScenarioInputs{
		MarkupMultiplier: 1.5,
		Volume:           100,
	}

	eng := engine.Default()
	res, err := eng.Simulate(econ, in)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Pricing simulation: %s\n", *testName)
	fmt.Printf("  proposed price: %.0f (%s)\n", res.ProposedPrice, res.Status)
	fmt.Printf("  current (per unit): revenue=%.0f ebitda=%.0f margin=%.1f%%\n",
		res.CurrentPerUnit.Revenue, res.CurrentPerUnit.EBITDA, res.CurrentPerUnit.MarginPct)
	fmt.Printf("  proposed (x%d):     revenue=%.0f ebitda=%.0f margin=%.1f%%\n",
		in.Volume, res.ProposedTotal.Revenue, res.ProposedTotal.EBITDA, res.ProposedTotal.MarginPct)

	series, err := eng.ProjectSeries(res.ProposedPrice, econ, in, 10)
	if err != nil {
		panic(err)
	}
	fmt.Println("\nVolume projection (first 10):")
	for _, p := range series {
		fmt.Printf("  v=%-3d revenue=%10.0f ebitda=%10.0f\n", p.Volume, p.TotalRevenue, p.TotalEBITDA)
	}
}
