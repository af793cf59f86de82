package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/driftfield/arcade/internal/ai"
	"github.com/driftfield/arcade/internal/wave"
)

// Engine wraps a single gopher-lua VM holding the gameplay hooks.
// Single-goroutine access only (simulation loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	// Helpers first, then hook directories
	for _, sub := range []string{"core", "boss", "wave"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}

	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// Has reports whether a global hook function is defined.
func (e *Engine) Has(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// PlanVolley calls the Lua boss_volley(ctx) hook, which returns an array of
// firing angles in radians. ok=false when the hook is missing, fails or
// returns nothing usable.
func (e *Engine) PlanVolley(req ai.VolleyRequest) ([]float64, bool) {
	fn := e.vm.GetGlobal("boss_volley")
	if fn == lua.LNil {
		return nil, false
	}

	t := e.vm.NewTable()
	t.RawSetString("phase", lua.LString(req.Phase))
	t.RawSetString("pattern", lua.LString(req.Pattern))
	t.RawSetString("shots", lua.LNumber(req.Shots))
	t.RawSetString("spread", lua.LNumber(req.Spread))
	t.RawSetString("base", lua.LNumber(req.Base))
	t.RawSetString("volley", lua.LNumber(req.Volley))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Warn("lua boss_volley error", zap.Error(err), zap.String("phase", req.Phase))
		return nil, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		e.log.Warn("lua boss_volley returned non-table", zap.String("phase", req.Phase))
		return nil, false
	}

	angles := make([]float64, 0, rt.Len())
	for i := 1; i <= rt.Len(); i++ {
		if n, ok := rt.RawGetInt(i).(lua.LNumber); ok {
			angles = append(angles, float64(n))
		}
	}
	if len(angles) == 0 {
		return nil, false
	}
	return angles, true
}

// WaveBonus calls the Lua wave_bonus(ctx) hook. ok=false when the hook is
// missing or fails.
func (e *Engine) WaveBonus(ctx wave.BonusContext) (int64, bool) {
	fn := e.vm.GetGlobal("wave_bonus")
	if fn == lua.LNil {
		return 0, false
	}

	t := e.vm.NewTable()
	t.RawSetString("wave", lua.LNumber(ctx.Wave))
	t.RawSetString("elapsed", lua.LNumber(ctx.Elapsed))
	t.RawSetString("difficulty", lua.LNumber(ctx.Difficulty))
	t.RawSetString("score", lua.LNumber(ctx.Score))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Warn("lua wave_bonus error", zap.Error(err), zap.Int("wave", ctx.Wave))
		return 0, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Warn("lua wave_bonus returned non-number", zap.Int("wave", ctx.Wave))
		return 0, false
	}
	return int64(n), true
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
