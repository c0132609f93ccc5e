/*
Cryptosim is the simulation runner: it loads a run configuration, parses and
installs a simulation's agents via internal/driver, then advances the market
tick by tick, optionally logging every tick to a sqlite run log
(internal/persist) and/or serving a read-only monitoring HTTP server
(internal/api) for the duration of the run.

Usage:

	cryptosim [flags]

The flags are:

	-c, --config FILE
		Path to the TOML run-configuration file. Defaults to "cryptosim.toml".

	--sim FILE
		Override the configuration's simulation source file path.

	--ticks N
		Override the configuration's tick count.

	--seed N
		Override the configuration's RNG seed.

	-i, --interactive
		Drop into a readline REPL that steps the simulation one tick at a
		time instead of running it straight through.
*/
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/lassiter/cryptolang/internal/api"
	"github.com/lassiter/cryptolang/internal/config"
	"github.com/lassiter/cryptolang/internal/driver"
	"github.com/lassiter/cryptolang/internal/input"
	"github.com/lassiter/cryptolang/internal/market"
	"github.com/lassiter/cryptolang/internal/persist"
	"github.com/spf13/pflag"
)

const (
	ExitSuccess = iota
	ExitConfigError
	ExitInitError
	ExitRunError
)

var (
	returnCode  int     = ExitSuccess
	configFile  *string = pflag.StringP("config", "c", "cryptosim.toml", "Path to the run-configuration TOML file")
	simOverride *string = pflag.String("sim", "", "Override the configured simulation source file path")
	ticksFlag   *int    = pflag.Int("ticks", 0, "Override the configured tick count")
	seedFlag    *int64  = pflag.Int64("seed", 0, "Override the configured RNG seed")
	interactive *bool   = pflag.BoolP("interactive", "i", false, "Step the simulation tick-by-tick in a REPL")
)

func main() {
	defer func() { os.Exit(returnCode) }()

	pflag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitConfigError
		return
	}
	if *simOverride != "" {
		cfg.Source = *simOverride
	}
	if *ticksFlag > 0 {
		cfg.Ticks = *ticksFlag
	}
	seeded := cfg.Seeded()
	if *seedFlag != 0 {
		cfg.Seed = *seedFlag
		seeded = true
	}

	source, err := os.ReadFile(cfg.Source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: reading simulation source %q: %s\n", cfg.Source, err.Error())
		returnCode = ExitInitError
		return
	}

	seed := cfg.Seed
	if !seeded {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	drv, err := driver.New(string(source), rng, float64(cfg.Ticks))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	var runLog *persist.RunLog
	if cfg.Log.Enabled {
		runLog, err = persist.Open(cfg.Log.SQLitePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: opening run log %q: %s\n", cfg.Log.SQLitePath, err.Error())
			returnCode = ExitInitError
			return
		}
		defer runLog.Close()
	}

	if cfg.Monitor.Enabled {
		auth := api.Authenticator{
			AdminUser:         cfg.Monitor.AdminUser,
			AdminPasswordHash: cfg.Monitor.AdminPasswordHash,
			JWTSecret:         []byte(cfg.Monitor.JWTSecret),
		}
		srv := api.New(auth, drv, runLog)
		go func() {
			if err := http.ListenAndServe(cfg.Monitor.ListenAddr, srv.Handler()); err != nil {
				fmt.Fprintf(os.Stderr, "ERROR: monitoring server: %s\n", err.Error())
			}
		}()
		log.Printf("monitoring server listening on %s", cfg.Monitor.ListenAddr)
	}

	tickFn := buildTickFunc(runLog)

	if *interactive {
		err = runInteractive(drv, cfg.Ticks, tickFn)
	} else {
		err = runStraight(drv, cfg.Ticks, cfg.TickSleepMS, tickFn)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitRunError
		return
	}
}

// buildTickFunc returns a driver.TickFunc that logs every tick's snapshot
// when a run log is attached, and a no-op otherwise.
func buildTickFunc(runLog *persist.RunLog) driver.TickFunc {
	if runLog == nil {
		return nil
	}
	return func(tick int, mkt *market.Market) {
		coins, traders := persist.SnapshotMarket(mkt)
		if err := runLog.LogTick(context.Background(), tick, coins, traders); err != nil {
			log.Printf("run log: tick %d: %v", tick, err)
		}
	}
}

// runStraight advances the simulation ticks times without operator
// interaction, sleeping sleepMS between ticks when non-zero (for watching a
// run live alongside the monitoring server).
func runStraight(drv *driver.Driver, ticks, sleepMS int, tickFn driver.TickFunc) error {
	if sleepMS <= 0 {
		return drv.Run(ticks, tickFn)
	}

	wrapped := func(tick int, mkt *market.Market) {
		if tickFn != nil {
			tickFn(tick, mkt)
		}
		time.Sleep(time.Duration(sleepMS) * time.Millisecond)
	}
	return drv.Run(ticks, wrapped)
}

// runInteractive steps the simulation one tick at a time under operator
// control, reading commands from a readline REPL grounded on
// internal/input.InteractiveCommandReader.
//
// Recognized commands:
//
//	n, next    advance one tick
//	status     print the market's current time/coin/trader counts
//	q, quit    stop the run early
func runInteractive(drv *driver.Driver, ticks int, tickFn driver.TickFunc) error {
	reader, err := input.NewInteractiveReader()
	if err != nil {
		return fmt.Errorf("cryptosim: starting interactive reader: %w", err)
	}
	defer reader.Close()

	fmt.Println("cryptosim interactive mode: n/next to step, status to inspect, q/quit to stop")

	for t := 0; t < ticks; t++ {
		if drv.Market.EndTime > 0 && drv.Market.Time >= drv.Market.EndTime {
			break
		}

		for {
			reader.SetPrompt(fmt.Sprintf("tick %d> ", t))
			cmd, err := reader.ReadCommand()
			if err != nil {
				return fmt.Errorf("cryptosim: reading command: %w", err)
			}

			switch cmd {
			case "n", "next":
			case "status":
				printStatus(drv, t)
				continue
			case "q", "quit":
				return nil
			default:
				fmt.Printf("unrecognized command %q\n", cmd)
				continue
			}
			break
		}

		if err := drv.Run(1, tickFn); err != nil {
			return err
		}
	}
	return nil
}

func printStatus(drv *driver.Driver, tick int) {
	fmt.Printf("tick %d: time=%.0f coins=%d traders=%d leaved=%d\n",
		tick, drv.Market.Time, len(drv.Coins), len(drv.Traders), len(drv.Market.Leaved))
	for _, c := range drv.Coins {
		fmt.Printf("  coin  %-12s value=%.2f miners=%d\n", c.Name, c.Value, c.Miners)
	}
	for _, t := range drv.Traders {
		left := ""
		if drv.Market.Leaved[t] {
			left = " (left)"
		}
		fmt.Printf("  trader %-12s money=%.2f%s\n", t.Name, t.Money, left)
	}
}
