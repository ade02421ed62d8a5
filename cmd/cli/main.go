package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"wager-sim/internal/analysis"
	"wager-sim/internal/backtest"
	"wager-sim/internal/config"
	"wager-sim/internal/model"
	"wager-sim/internal/report"
	"wager-sim/internal/sequence"

	"github.com/mattn/go-isatty"
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
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli simulate --config examples/config.yaml --out results/ledger.csv")
	fmt.Println("  cli simulate --profile 3_trend --seed 7 --trades 50")
	fmt.Println("  cli simulate --balance 1000 --win-rate 50 --rr 2 --trades 4 --compounding=false --outcomes WLWL")
	fmt.Println("  cli rank --profiles examples/profiles")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - flags override the config file, which overrides the profile")
	fmt.Println("  - the same seed and params always produce the same ledger")
	fmt.Println("  - rank orders presets by projected return without running them")
}

func cmdSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	profile := fs.String("profile", "", "Profile ID in --profiles, or a path to a profile YAML")
	profileDir := fs.String("profiles", config.DefaultProfileDir, "Profile directory")
	seed := fs.Uint64("seed", 0, "Random seed (default: config seed, else random)")
	outcomes := fs.String("outcomes", "", "Fixed W/L sequence to replay instead of generating one")

	balance := fs.Int("balance", 0, "Initial balance")
	winRate := fs.Int("win-rate", 0, "Win rate percent [0, 100]")
	rr := fs.Float64("rr", 0, "Risk/reward ratio")
	trades := fs.Int("trades", 0, "Total trades")
	compounding := fs.Bool("compounding", true, "Size positions from the current balance")
	fee := fs.Float64("fee", 0, "Platform fee percent of position")

	outPath := fs.String("out", "", "Optional: write the ledger as CSV")
	asJSON := fs.Bool("json", false, "Print the result as JSON")
	tail := fs.Int("trades-tail", 10, "Print the last N trades (-1 = all)")
	noColor := fs.Bool("no-color", os.Getenv("NO_COLOR") != "" || !isatty.IsTerminal(os.Stdout.Fd()), "Disable ANSI colors")
	_ = fs.Parse(args)

	cfg := &config.Config{}
	if *cfgPath != "" {
		var err error
		cfg, err = config.LoadUnchecked(*cfgPath)
		exitOnErr(err)
	}

	if *profile != "" {
		p, err := loadProfile(*profileDir, *profile)
		exitOnErr(err)
		cfg.Simulation = config.MergeSimulation(p.Simulation, cfg.Simulation)
	}

	var overrides config.SimulationConfig
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "balance":
			overrides.InitialBalance = balance
		case "win-rate":
			overrides.WinRate = winRate
		case "rr":
			overrides.RiskRewardRatio = rr
		case "trades":
			overrides.TotalTrades = trades
		case "compounding":
			overrides.Compounding = compounding
		case "fee":
			overrides.PlatformFeeRate = fee
		case "seed":
			cfg.Seed = seed
		case "outcomes":
			cfg.Outcomes = *outcomes
		}
	})
	cfg.Simulation = config.MergeSimulation(cfg.Simulation, overrides)

	exitOnErr(cfg.Validate())
	params, err := cfg.Params()
	exitOnErr(err)
	fixed, err := cfg.FixedOutcomes()
	exitOnErr(err)

	engine := backtest.New()
	var res *backtest.Result
	if fixed != nil {
		res, err = engine.Run(params, fixed)
		cfg.Seed = nil
	} else {
		if cfg.Seed == nil {
			s := sequence.RandomSeed()
			cfg.Seed = &s
		}
		res, err = engine.Simulate(params, sequence.NewSource(*cfg.Seed))
	}
	exitOnErr(err)

	proj, err := analysis.Project(params)
	exitOnErr(err)

	if *outPath != "" {
		exitOnErr(os.MkdirAll(filepath.Dir(*outPath), 0o755))
		exitOnErr(backtest.WriteLedgerCSV(*outPath, res.Ledger))
		fmt.Fprintf(os.Stderr, "Wrote %d rows to %s\n", len(res.Ledger), *outPath)
	}

	if *asJSON {
		exitOnErr(report.WriteJSON(os.Stdout, struct {
			Seed       *uint64             `json:"seed,omitempty"`
			Outcomes   string              `json:"outcomes"`
			Result     *backtest.Result    `json:"result"`
			Projection analysis.Projection `json:"projection"`
		}{cfg.Seed, sequence.Format(res.Outcomes()), res, proj}))
		return
	}

	pr := report.NewPrinter(os.Stdout, !*noColor)
	if *tail != 0 {
		from := 0
		if *tail > 0 {
			from = len(res.Ledger) - *tail
		}
		pr.Ledger(res.Ledger, from, len(res.Ledger))
	}
	pr.Summary(res)
	pr.Projection(proj)
	if cfg.Seed != nil {
		fmt.Printf("Seed:          %d\n", *cfg.Seed)
	}
}

func cmdRank(args []string) {
	fs := flag.NewFlagSet("rank", flag.ExitOnError)
	profileDir := fs.String("profiles", config.DefaultProfileDir, "Profile directory")
	_ = fs.Parse(args)

	profiles, skipped, err := config.ListProfiles(*profileDir)
	exitOnErr(err)
	for path, err := range skipped {
		fmt.Fprintf(os.Stderr, "skipping %s: %v\n", path, err)
	}

	byID := map[string]model.Params{}
	for _, p := range profiles {
		params, err := p.Simulation.Builder().Build()
		if err != nil {
			fmt.Fprintf(os.Stderr, "skipping %s: %v\n", p.ID, err)
			continue
		}
		byID[p.ID] = params
	}

	ranked, _ := analysis.RankByProjectedReturn(byID)
	report.NewPrinter(os.Stdout, false).Ranking(ranked)
}

// loadProfile accepts either a bare ID inside dir or a path to a YAML file.
func loadProfile(dir, ref string) (*config.Profile, error) {
	if strings.ContainsRune(ref, os.PathSeparator) || strings.HasSuffix(ref, ".yaml") {
		return config.LoadProfile(ref)
	}
	path, err := config.ProfilePath(dir, ref)
	if err != nil {
		return nil, err
	}
	return config.LoadProfile(path)
}

func exitOnErr(err error) {
	if err == nil {
		return
	}
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintln(os.Stderr, "invalid simulation config:")
		for _, f := range verr.Fields {
			fmt.Fprintf(os.Stderr, "  - %s\n", f)
		}
		os.Exit(2)
	}
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
