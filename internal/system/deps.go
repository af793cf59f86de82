package system

import (
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/driftfield/arcade/internal/ai"
	"github.com/driftfield/arcade/internal/collision"
	"github.com/driftfield/arcade/internal/config"
	"github.com/driftfield/arcade/internal/core/event"
	"github.com/driftfield/arcade/internal/split"
	"github.com/driftfield/arcade/internal/wave"
	"github.com/driftfield/arcade/internal/world"
)

// Deps holds shared dependencies injected into all tick systems.
type Deps struct {
	Config   *config.Config
	Log      *zap.Logger
	Bus      *event.Bus
	Registry *world.Registry
	Factory  *world.Factory
	Session  *world.Session
	Director *wave.Director
	AI       *ai.Controller
	Split    *split.Policy
	Resolver *collision.Resolver
	Loot     *rand.Rand // power-up drop rolls
	Wells    []world.GravityWell
}
