package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/driftfield/arcade/internal/config"
	"github.com/driftfield/arcade/internal/core/event"
	"github.com/driftfield/arcade/internal/core/invariant"
	"github.com/driftfield/arcade/internal/data"
	"github.com/driftfield/arcade/internal/persist"
	"github.com/driftfield/arcade/internal/scripting"
	"github.com/driftfield/arcade/internal/sim"
	"github.com/driftfield/arcade/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func printBanner(seed uint64, ruleset string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌──────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m             driftfield arcade            \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └──────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mseed:\033[0m %d \033[90m(rules %s)\033[0m\n\n", seed, ruleset)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

var numbers = message.NewPrinter(language.English)

func printStat(label string, count int) {
	numStr := numbers.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

func run() error {
	cfgPath := "config/arcade.toml"
	if p := os.Getenv("ARCADE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()
	invariant.SetLogger(log)

	printSection("data")
	materials, err := data.LoadMaterialTable(cfg.Data.Materials)
	if err != nil {
		return fmt.Errorf("materials: %w", err)
	}
	printStat("materials", materials.Count())
	phases, err := data.LoadBossPhaseTable(cfg.Data.BossPhases)
	if err != nil {
		return fmt.Errorf("boss phases: %w", err)
	}
	printStat("boss phases", phases.Count())

	opts := []sim.Option{sim.WithLogger(log)}
	if cfg.Scripting.Enabled {
		lua, err := scripting.NewEngine(cfg.Scripting.Dir, log)
		if err != nil {
			return fmt.Errorf("scripting: %w", err)
		}
		defer lua.Close()
		opts = append(opts, sim.WithVolleyPlanner(lua), sim.WithBonusScorer(lua))
		printOK(fmt.Sprintf("Lua scripts loaded from %s", cfg.Scripting.Dir))
	}

	engine, err := sim.New(cfg, sim.Tables{Materials: materials, Phases: phases}, opts...)
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	ruleset, err := cfg.Fingerprint()
	if err != nil {
		return fmt.Errorf("fingerprint: %w", err)
	}
	printBanner(engine.Seed(), ruleset)

	if cfg.Database.Enabled {
		printSection("database")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		version, err := db.Migrate(ctx)
		if err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		printOK(fmt.Sprintf("PostgreSQL connected, schema v%d", version))

		runs := persist.NewRunRepo(db)
		if best, err := runs.Best(ctx, ruleset); err != nil {
			log.Warn("load best score", zap.Error(err))
		} else {
			printStat("best score", int(best))
		}
		rec := persist.NewRecorder(runs, engine.Seed(), ruleset, engine.PlayTime, log)
		rec.Attach(engine.Bus())
		defer rec.Close()
	}

	event.Subscribe(engine.Bus(), func(ev world.ShipDestroyed) {
		log.Info("ship destroyed", zap.Int("lives_left", ev.LivesLeft))
	})
	event.Subscribe(engine.Bus(), func(ev world.BossPhaseChanged) {
		log.Info("boss phase", zap.String("phase", ev.Name), zap.Int("index", ev.To))
	})

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Simulation.TickRate)
	defer ticker.Stop()

	printSection("running")
	printReady(fmt.Sprintf("autopilot engaged (tick: %s)", cfg.Simulation.TickRate))
	fmt.Println()

	pilot := newAutopilot()
	last := time.Now()
	for {
		select {
		case now := <-ticker.C:
			f := engine.Tick(now.Sub(last), pilot.Intent(engine.Latest()))
			last = now
			if f != nil && f.Over {
				printSummary(f)
				return nil
			}
		case sig := <-shutdownCh:
			log.Info("shutdown", zap.String("signal", sig.String()))
			return nil
		}
	}
}

func printSummary(f *sim.Frame) {
	fmt.Println()
	printSection("game over")
	printStat("score", int(f.Wave.Score))
	printStat("wave", f.Wave.Wave)
	printStat("asteroids destroyed", f.Stats.AsteroidsDestroyed)
	printStat("enemies destroyed", f.Stats.EnemiesDestroyed)
	printStat("bosses defeated", f.Stats.BossesDefeated)
	printStat("shots fired", f.Stats.ShotsFired)
	printStat("seconds played", int(f.Stats.PlayTime))
	fmt.Println()
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
