package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"projectilelab/internal/config"
	"projectilelab/internal/kinematics"
	"projectilelab/internal/logger"
	"projectilelab/internal/practice"
	"projectilelab/internal/repository"
)

func main() {
	// Define subcommands
	simulateCmd := flag.NewFlagSet("simulate", flag.ExitOnError)
	problemCmd := flag.NewFlagSet("problem", flag.ExitOnError)
	purgeCmd := flag.NewFlagSet("purge-sessions", flag.ExitOnError)

	// Simulate flags
	v0 := simulateCmd.Float64("v0", 0, "Initial speed in m/s (required)")
	angle := simulateCmd.Float64("angle", 0, "Launch angle in degrees, -90 to 90")
	h0 := simulateCmd.Float64("h0", 0, "Launch height in m")
	hf := simulateCmd.Float64("hf", 0, "Target height in m")
	samples := simulateCmd.Int("samples", kinematics.DefaultSamples, "Number of trajectory samples")
	asJSON := simulateCmd.Bool("json", false, "Print the full result as JSON")

	// Problem flags
	level := problemCmd.Int("level", 1, "Level to generate a problem for")
	seed := problemCmd.Int64("seed", 0, "Random seed (default: current time)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "simulate":
		simulateCmd.Parse(os.Args[2:])
		params := kinematics.LaunchParameters{V0: *v0, AngleDeg: *angle, H0: *h0, Hf: *hf}
		if err := runSimulate(os.Stdout, params, *samples, *asJSON); err != nil {
			log.Fatalf("Simulation failed: %v", err)
		}

	case "problem":
		problemCmd.Parse(os.Args[2:])
		if *seed == 0 {
			*seed = time.Now().UnixNano()
		}
		if err := runProblem(os.Stdout, *level, *seed); err != nil {
			log.Fatalf("Problem generation failed: %v", err)
		}

	case "purge-sessions":
		purgeCmd.Parse(os.Args[2:])
		if err := runPurge(); err != nil {
			log.Fatalf("Purge failed: %v", err)
		}

	default:
		printUsage()
		os.Exit(1)
	}
}

func runSimulate(w io.Writer, params kinematics.LaunchParameters, samples int, asJSON bool) error {
	res, err := kinematics.SimulateSamples(params, samples)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	fmt.Fprintf(w, "Launch: v0=%g m/s angle=%g° h0=%g m hf=%g m\n", params.V0, params.AngleDeg, params.H0, params.Hf)
	fmt.Fprintf(w, "Velocity components: v0x=%.2f m/s v0y=%.2f m/s\n", res.V0x, res.V0y)
	fmt.Fprintf(w, "Max height:          %.2f m at t=%.2f s\n", res.MaxHeight, res.TimeToMaxHeight)
	if !res.Reachable() {
		fmt.Fprintln(w, "Target height is never reached.")
		return nil
	}
	fmt.Fprintf(w, "Total time:          %.2f s\n", res.TotalTime)
	fmt.Fprintf(w, "Range:               %.2f m\n", res.Range)
	fmt.Fprintf(w, "Impact velocity:     %.2f m/s at %.2f°\n", res.ImpactVelocity, res.ImpactAngleDeg)
	fmt.Fprintf(w, "Trajectory samples:  %d\n", len(res.Trajectory))
	return nil
}

func runProblem(w io.Writer, level int, seed int64) error {
	problem, err := practice.GenerateProblem(level, rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(problem)
}

func runPurge() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logg, err := logger.New(cfg.LogMode)
	if err != nil {
		return err
	}
	defer logg.Sync()

	backend, err := repository.OpenSessionBackend(cfg, logg)
	if err != nil {
		return err
	}
	defer backend.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	removed, err := backend.Store.DeleteExpired(ctx)
	if err != nil {
		return err
	}
	logg.Info("expired sessions purged", "backend", backend.Name, "removed", removed)
	return nil
}

func printUsage() {
	fmt.Println("Projectile Lab CLI")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  projectile simulate -v0 <m/s> -angle <deg> [-h0 <m>] [-hf <m>] [-samples N] [-json]")
	fmt.Println("  projectile problem -level <N> [-seed <S>]")
	fmt.Println("  projectile purge-sessions")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  projectile simulate -v0 50 -angle 45")
	fmt.Println("  projectile problem -level 3 -seed 42")
	fmt.Println()
	fmt.Println("purge-sessions reads the same environment as the server (SESSION_BACKEND, DATABASE_TYPE, ...).")
}
