// arcadectl checks a deployment's config, tables and scripts, applies the
// leaderboard schema, and lists the best recorded runs.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/driftfield/arcade/internal/ai"
	"github.com/driftfield/arcade/internal/config"
	"github.com/driftfield/arcade/internal/data"
	"github.com/driftfield/arcade/internal/persist"
	"github.com/driftfield/arcade/internal/scripting"
	"github.com/driftfield/arcade/internal/wave"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: arcadectl check [config.toml]")
	fmt.Fprintln(os.Stderr, "       arcadectl top [config.toml] [limit]")
	fmt.Fprintln(os.Stderr, "       arcadectl migrate [config.toml]")
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	cfgPath := "config/arcade.toml"
	if len(os.Args) > 2 {
		cfgPath = os.Args[2]
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "check":
		err = check(cfg)
	case "top":
		limit := 10
		if len(os.Args) > 3 {
			if limit, err = strconv.Atoi(os.Args[3]); err != nil || limit <= 0 {
				usage()
			}
		}
		err = top(cfg, limit)
	case "migrate":
		err = migrate(cfg)
	default:
		usage()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func check(cfg *config.Config) error {
	mats, err := data.LoadMaterialTable(cfg.Data.Materials)
	if err != nil {
		return err
	}
	fmt.Printf("materials: %d entries\n", mats.Count())

	phases, err := data.LoadBossPhaseTable(cfg.Data.BossPhases)
	if err != nil {
		return err
	}
	for i := 0; i < phases.Count(); i++ {
		ph := phases.Phase(i)
		fmt.Printf("boss phase %d: %-10s below %.2f  %s/%s\n", i, ph.Name, ph.Threshold, ph.Movement, ph.Attack)
	}

	if !cfg.Scripting.Enabled {
		fmt.Println("scripting: disabled")
		return nil
	}
	lua, err := scripting.NewEngine(cfg.Scripting.Dir, zap.NewNop())
	if err != nil {
		return err
	}
	defer lua.Close()
	// Dry-run both hooks so a broken script fails here rather than mid-game.
	if angles, ok := lua.PlanVolley(ai.VolleyRequest{Pattern: data.AttackRing, Shots: 8}); ok {
		fmt.Printf("boss_volley: ring of 8 -> %d angles\n", len(angles))
	} else {
		fmt.Println("boss_volley: not defined, built-in patterns apply")
	}
	if bonus, ok := lua.WaveBonus(wave.BonusContext{Wave: 1, Elapsed: 30, Difficulty: 1}); ok {
		fmt.Printf("wave_bonus: wave 1 in 30s -> %d\n", bonus)
	} else {
		fmt.Println("wave_bonus: not defined, default formula applies")
	}
	return nil
}

func migrate(cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := persist.NewDB(ctx, cfg.Database, zap.NewNop())
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()
	version, err := db.Migrate(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("schema at version %d\n", version)
	return nil
}

func top(cfg *config.Config, limit int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := persist.NewDB(ctx, cfg.Database, zap.NewNop())
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()

	ruleset, err := cfg.Fingerprint()
	if err != nil {
		return err
	}
	runs, err := persist.NewRunRepo(db).Top(ctx, ruleset, limit)
	if err != nil {
		return err
	}
	fmt.Printf("rules %s\n", ruleset)
	for i, r := range runs {
		fmt.Printf("%2d. %8d  wave %-3d  %4.0fs  seed %d  %s\n",
			i+1, r.Score, r.Wave, r.PlaySeconds, r.Seed, r.EndedAt.Format(time.DateOnly))
	}
	return nil
}
