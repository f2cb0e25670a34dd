package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"lab-pricing/internal/analysis"
	"lab-pricing/internal/catalog"
	"lab-pricing/internal/config"
	"lab-pricing/internal/engine"
	"lab-pricing/internal/model"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "simulate":
		cmdSimulate(os.Args[2:])
	case "rank":
		cmdRank(os.Args[2:])
	case "project":
		cmdProject(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli simulate --catalog examples/catalog.csv --test \"FULL BLOOD COUNT\" --markup 1.5 --volume 100")
	fmt.Println("  cli simulate --cost 2000 --price 8000 --markup 1.5 --volume 100 --series results/projection.csv")
	fmt.Println("  cli simulate --sheet-id <id> --lab OPIC_LAB --test \"FULL BLOOD COUNT\"")
	fmt.Println("  cli rank --catalog examples/catalog.csv --volume 100")
	fmt.Println("  cli project --proposed-price 3000 --cost 2000 --price 8000 --max-volume 200 --out results/projection.csv")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - simulate prints current (per-unit) vs proposed (volume-scaled) scenarios and deltas")
	fmt.Println("  - rank orders catalog tests by EBITDA uplift at the given markup and volume")
}

func cmdSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config (optional)")
	catalogPath := fs.String("catalog", "", "Path to catalog CSV")
	sheetID := fs.String("sheet-id", "", "Google Sheet ID (catalog lookups)")
	lab := fs.String("lab", "", "Lab name (catalog lookups)")
	test := fs.String("test", "", "Test name (catalog lookups)")
	price := fs.Float64("price", 0, "Current price (inline economics)")
	cost := fs.Float64("cost", 0, "Unit cost / COGS (inline economics)")
	opexRate := fs.Float64("opex-rate", 0, "Baseline OPEX rate in [0,1] (default 0.25)")
	markup := fs.Float64("markup", 0, "Markup multiplier")
	customPrice := fs.Float64("custom-price", 0, "Proposed price override (0 = derive from markup)")
	volume := fs.Int("volume", 0, "Projected volume")
	sensitivity := fs.Float64("sensitivity", 0, "OPEX volume sensitivity (%)")
	target := fs.Float64("target", 0, "Minimum margin (%), default 20")
	seriesOut := fs.String("series", "", "Optional path to write the volume projection CSV")
	maxVolume := fs.Int("max-volume", 0, "Projection length (default: volume)")
	_ = fs.Parse(args)

	policy := model.DefaultPolicy()
	in := model.ScenarioInputs{
		MarkupMultiplier: 1.5,
		Volume:           100,
		TargetMarginPct:  model.DefaultTargetMarginPct,
	}
	if *cfgPath != "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			panic(err)
		}
		policy = cfg.Policy.ToModelPolicy()
		in = cfg.Defaults.ToScenarioInputs()
		if *catalogPath == "" {
			*catalogPath = cfg.Catalog.File
		}
		if *sheetID == "" {
			*sheetID = cfg.Catalog.SheetID
		}
	}
	if *markup != 0 {
		in.MarkupMultiplier = *markup
	}
	if *customPrice != 0 {
		in.CustomPrice = *customPrice
	}
	if *volume != 0 {
		in.Volume = *volume
	}
	if *sensitivity != 0 {
		in.OpexSensitivityPct = *sensitivity
	}
	if *target != 0 {
		in.TargetMarginPct = *target
	}

	econ := model.TestEconomics{CurrentPrice: *price, UnitCost: *cost, OpexRate: *opexRate}
	if econ.OpexRate == 0 {
		econ.OpexRate = model.DefaultOpexRate
	}
	switch {
	case *catalogPath != "":
		if *test == "" {
			fmt.Println("--test is required with --catalog")
			os.Exit(2)
		}
		fc, err := catalog.OpenFileCatalog(*catalogPath, *lab)
		if err != nil {
			panic(err)
		}
		econ, err = fc.GetTest(*lab, *test)
		if err != nil {
			panic(err)
		}
	case *sheetID != "":
		if *lab == "" || *test == "" {
			fmt.Println("--lab and --test are required with --sheet-id")
			os.Exit(2)
		}
		client := catalog.NewSheetClient(*sheetID, "", []string{*lab})
		var err error
		econ, err = client.GetTest(*lab, *test)
		if err != nil {
			panic(err)
		}
	}

	eng, err := engine.New(policy)
	if err != nil {
		panic(err)
	}
	res, err := eng.Simulate(econ, in)
	if err != nil {
		panic(err)
	}

	printResult(res, in.Volume)

	if *seriesOut != "" {
		mv := *maxVolume
		if mv == 0 {
			mv = in.Volume
		}
		series, err := eng.ProjectSeries(res.ProposedPrice, econ, in, mv)
		if err != nil {
			panic(err)
		}
		if err := os.MkdirAll(filepath.Dir(*seriesOut), 0o755); err != nil {
			panic(err)
		}
		if err := engine.WriteSeriesCSV(*seriesOut, series); err != nil {
			panic(err)
		}
		fmt.Printf("Wrote %d projection rows to %s\n", len(series), *seriesOut)
	}
}

func printResult(res *model.ScenarioResult, volume int) {
	fmt.Printf("%-16s %14s %14s %14s\n", "metric", "current (unit)", "proposed", "change")
	rows := []struct {
		name             string
		cur, prop, delta float64
	}{
		{"revenue", res.CurrentPerUnit.Revenue, res.ProposedTotal.Revenue, res.Deltas.Revenue},
		{"cogs", res.CurrentPerUnit.COGS, res.ProposedTotal.COGS, res.Deltas.COGS},
		{"gross profit", res.CurrentPerUnit.GrossProfit, res.ProposedTotal.GrossProfit, res.Deltas.GrossProfit},
		{"opex", res.CurrentPerUnit.Opex, res.ProposedTotal.Opex, res.Deltas.Opex},
		{"ebitda", res.CurrentPerUnit.EBITDA, res.ProposedTotal.EBITDA, res.Deltas.EBITDA},
	}
	for _, r := range rows {
		fmt.Printf("%-16s %14.0f %14.0f %14.0f\n", r.name, r.cur, r.prop, r.delta)
	}
	fmt.Printf("%-16s %13.1f%% %13.1f%% %13.1f%%\n", "margin",
		res.CurrentPerUnit.MarginPct, res.ProposedTotal.MarginPct, res.Deltas.MarginPct)

	fmt.Printf("\nProposed price=%.0f at volume=%d\n", res.ProposedPrice, volume)
	if res.MarginFloorApplied {
		fmt.Printf("Price adjusted upward to %.0f to maintain the minimum margin\n", res.AdjustedPrice)
	} else {
		fmt.Println("Within target margin range")
	}
}

func cmdRank(args []string) {
	fs := flag.NewFlagSet("rank", flag.ExitOnError)
	catalogPath := fs.String("catalog", "", "Path to catalog CSV")
	lab := fs.String("lab", "", "Restrict to one lab")
	markup := fs.Float64("markup", 1.5, "Markup multiplier")
	volume := fs.Int("volume", 100, "Projected volume")
	_ = fs.Parse(args)

	if *catalogPath == "" {
		fmt.Println("--catalog is required")
		os.Exit(2)
	}

	fc, err := catalog.OpenFileCatalog(*catalogPath, *lab)
	if err != nil {
		panic(err)
	}
	tests, err := fc.ListTests(*lab)
	if err != nil {
		panic(err)
	}

	ranked := analysis.RankByUplift(tests, model.ScenarioInputs{
		MarkupMultiplier: *markup,
		Volume:           *volume,
	}, engine.Default())

	fmt.Printf("%-4s %-14s %-28s %-10s %-10s %-10s %-12s\n",
		"rank", "lab", "test", "cur%", "prop%", "price", "uplift")
	for i, r := range ranked {
		marker := " "
		if r.FloorApplied {
			marker = "*"
		}
		fmt.Printf("%-4d %-14s %-28s %-10.1f %-10.1f %-9.0f%s %-12.0f\n",
			i+1, r.Lab, r.Test, r.CurrentMarginPct, r.ProposedMarginPct, r.ProposedPrice, marker, r.EBITDAUplift)
	}
	if len(ranked) > 0 {
		fmt.Println("\n* price raised by the margin floor")
	}
}

func cmdProject(args []string) {
	fs := flag.NewFlagSet("project", flag.ExitOnError)
	proposedPrice := fs.Float64("proposed-price", 0, "Per-unit proposed price")
	price := fs.Float64("price", 0, "Current price (anchors baseline OPEX)")
	cost := fs.Float64("cost", 0, "Unit cost / COGS")
	opexRate := fs.Float64("opex-rate", model.DefaultOpexRate, "Baseline OPEX rate in [0,1]")
	sensitivity := fs.Float64("sensitivity", 0, "OPEX volume sensitivity (%)")
	maxVolume := fs.Int("max-volume", 100, "Projection length")
	outPath := fs.String("out", "results/projection.csv", "Output CSV path")
	_ = fs.Parse(args)

	if *proposedPrice <= 0 {
		fmt.Println("--proposed-price is required")
		os.Exit(2)
	}

	econ := model.TestEconomics{CurrentPrice: *price, UnitCost: *cost, OpexRate: *opexRate}
	in := model.ScenarioInputs{
		MarkupMultiplier:   1,
		Volume:             1,
		OpexSensitivityPct: *sensitivity,
	}

	series, err := engine.Default().ProjectSeries(*proposedPrice, econ, in, *maxVolume)
	if err != nil {
		panic(err)
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		panic(err)
	}
	if err := engine.WriteSeriesCSV(*outPath, series); err != nil {
		panic(err)
	}

	last := series[len(series)-1]
	fmt.Printf("Wrote %d rows to %s\n", len(series), *outPath)
	fmt.Printf("At volume=%d: revenue=%.0f ebitda=%.0f\n", last.Volume, last.TotalRevenue, last.TotalEBITDA)
}
