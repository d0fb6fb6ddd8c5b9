package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/gaste/wasp/internal/dimacs"
	"github.com/gaste/wasp/internal/sat"
)

var flagCPUProfile = flag.Bool(
	"cpuprof",
	false,
	"save pprof CPU profile in cpuprof",
)

var flagMemProfile = flag.Bool(
	"memprof",
	false,
	"save pprof memory profile in memprof",
)

var flagMaxConflicts = flag.Int64(
	"max_conflicts",
	-1,
	"maximum number of conflicts allowed to solve the problem (-1 = no maximum)",
)

var flagMaxRestarts = flag.Int64(
	"max_restarts",
	-1,
	"maximum number of restarts allowed to solve the problem (-1 = no maximum)",
)

var flagTimeout = flag.Duration(
	"timeout",
	-1,
	"wall-clock budget for the search (-1 = no timeout)",
)

var flagHeuristic = flag.String(
	"heuristic",
	"minisat",
	"decision/restart/deletion trio to use: minisat or glucose",
)

var flagMaxModels = flag.Int(
	"max_models",
	1,
	"maximum number of models to enumerate (0 = unbounded)",
)

func parseConfig() (*config, error) {
	flag.Parse()

	if flag.NArg() == 0 || flag.Arg(0) == "" {
		return nil, fmt.Errorf("missing instance file")
	}

	var opts sat.Options
	switch *flagHeuristic {
	case "minisat":
		opts = sat.DefaultOptions
	case "glucose":
		opts = sat.GlucoseOptions
	default:
		return nil, fmt.Errorf("unknown heuristic %q (want minisat or glucose)", *flagHeuristic)
	}
	if *flagMaxConflicts >= 0 {
		opts.MaxConflicts = *flagMaxConflicts
	}
	if *flagMaxRestarts >= 0 {
		opts.MaxRestarts = *flagMaxRestarts
	}
	opts.Timeout = *flagTimeout

	return &config{
		instanceFile: flag.Arg(0),
		memProfile:   *flagMemProfile,
		cpuProfile:   *flagCPUProfile,
		maxModels:    *flagMaxModels,
		options:      opts,
	}, nil
}

type config struct {
	instanceFile string
	memProfile   bool
	cpuProfile   bool
	maxModels    int
	options      sat.Options
}

// run loads the instance, solves it, and returns the process exit code:
// 10 = coherent, 20 = incoherent, 30 = unknown or budget exhaustion.
func run(cfg *config) (int, error) {
	instance, err := dimacs.ParseFile(cfg.instanceFile)
	if err != nil {
		return 30, fmt.Errorf("could not parse instance: %w", err)
	}

	s := sat.NewSolver(cfg.options)
	if err := dimacs.Instantiate(s, instance); err != nil {
		return 30, fmt.Errorf("could not load instance: %w", err)
	}

	fmt.Printf("c variables:  %d\n", instance.Variables)
	fmt.Printf("c clauses:    %d\n", len(instance.Clauses))

	t := time.Now()
	status := s.EnumerateModels(nil, cfg.maxModels)
	elapsed := time.Since(t)

	fmt.Printf("c time (sec): %f\n", elapsed.Seconds())
	fmt.Printf("c conflicts:  %d (%.2f /sec)\n", s.TotalConflicts, float64(s.TotalConflicts)/elapsed.Seconds())
	fmt.Printf("c models:     %d\n", len(s.Models))
	fmt.Printf("c status:     %s\n", status)

	switch status {
	case sat.Coherent:
		return 10, nil
	case sat.Incoherent:
		return 20, nil
	default:
		return 30, nil
	}
}

func main() {
	cfg, err := parseConfig()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.cpuProfile {
		f, err := os.Create("cpuprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
	}

	code, err := run(cfg)
	if err != nil {
		log.Fatal(err)
	}

	if cfg.cpuProfile {
		pprof.StopCPUProfile()
	}

	if cfg.memProfile {
		f, err := os.Create("memprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}

	os.Exit(code)
}
