package sim

import (
	"fmt"
	"log"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/bevatsal1122/agentverse-sub000/ecs/component"
	"github.com/bevatsal1122/agentverse-sub000/ecs/system"
	"github.com/bevatsal1122/agentverse-sub000/station"
)

const arrivalDispatchScript = `
__result = arrive(__agent, __tile)
`

var knownActivities = map[component.ActivityLabel]bool{
	component.ActivityWalking:     true,
	component.ActivityWorking:     true,
	component.ActivityResting:     true,
	component.ActivityEating:      true,
	component.ActivityResearching: true,
	component.ActivityMaintaining: true,
}

// ScriptedArrivalRules lets a tengo script override arrival outcomes.
// The script defines arrive(agent, tile); returning undefined, or a map
// without a known activity, defers to the fallback rules. A script that
// fails at runtime is disabled after its first error.
type ScriptedArrivalRules struct {
	fallback *DefaultArrivalRules
	compiled *tengo.Compiled
	logger   *log.Logger
	failed   bool
}

func NewScriptedArrivalRules(src []byte, fallback *DefaultArrivalRules, logger *log.Logger) (*ScriptedArrivalRules, error) {
	if logger == nil {
		logger = log.Default()
	}

	script := tengo.NewScript(append(append([]byte(nil), src...), arrivalDispatchScript...))
	_ = script.Add("__agent", map[string]any{})
	_ = script.Add("__tile", "")
	_ = script.Add("__result", nil)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("sim: compile arrival script: %w", err)
	}
	return &ScriptedArrivalRules{fallback: fallback, compiled: compiled, logger: logger}, nil
}

func (r *ScriptedArrivalRules) Arrive(agent component.Agent, tile station.TileType, found bool) system.Arrival {
	if r.failed {
		return r.fallback.Arrive(agent, tile, found)
	}

	out, err := r.run(agent, tile, found)
	if err != nil {
		r.failed = true
		r.logger.Printf("sim: arrival script disabled: %v", err)
		return r.fallback.Arrive(agent, tile, found)
	}

	name, _ := out["activity"].(string)
	label := component.ActivityLabel(name)
	if !knownActivities[label] {
		return r.fallback.Arrive(agent, tile, found)
	}
	arrival := system.Arrival{
		Activity: label,
		Dwell:    r.fallback.DwellFor(label),
		Message:  ArrivalMessage(agent.Name, label),
	}
	if msg, ok := out["message"].(string); ok {
		arrival.Message = msg
	}
	if secs, ok := seconds(out["dwell"]); ok {
		arrival.Dwell = secs
	}
	return arrival
}

// run evaluates the script once. Faults the VM raises as panics, such as
// integer division by zero, come back as errors.
func (r *ScriptedArrivalRules) run(agent component.Agent, tile station.TileType, found bool) (out map[string]any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			out, err = nil, fmt.Errorf("sim: arrival script panic: %v", rec)
		}
	}()

	tileName := ""
	if found {
		tileName = string(tile)
	}
	err = r.compiled.Set("__agent", map[string]any{
		"id":   agent.ID,
		"name": agent.Name,
		"kind": string(agent.Kind),
	})
	if err != nil {
		return nil, err
	}
	if err := r.compiled.Set("__tile", tileName); err != nil {
		return nil, err
	}
	if err := r.compiled.Set("__result", nil); err != nil {
		return nil, err
	}
	if err := r.compiled.Run(); err != nil {
		return nil, err
	}
	return r.compiled.Get("__result").Map(), nil
}

func seconds(v any) (time.Duration, bool) {
	switch n := v.(type) {
	case int64:
		return time.Duration(n) * time.Second, n >= 0
	case float64:
		return time.Duration(n * float64(time.Second)), n >= 0
	}
	return 0, false
}
