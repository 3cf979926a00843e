package sim

import (
	"fmt"
	"time"

	"github.com/bevatsal1122/agentverse-sub000/ecs/component"
	"github.com/bevatsal1122/agentverse-sub000/ecs/system"
	"github.com/bevatsal1122/agentverse-sub000/prefabs"
	"github.com/bevatsal1122/agentverse-sub000/station"
)

var arrivalMessages = map[component.ActivityLabel]string{
	component.ActivityResting:     "%s is resting in quarters",
	component.ActivityResearching: "%s started an experiment",
	component.ActivityMaintaining: "%s is servicing the engineering bay",
	component.ActivityEating:      "%s grabbed a bite in the rec room",
	component.ActivityWorking:     "%s got to work",
}

// DefaultArrivalRules maps the destination tile to an activity. Research
// and maintenance only happen at an agent's own specialty; anyone else
// arriving there just works.
type DefaultArrivalRules struct {
	Dwell map[string]prefabs.DurationRange
	rng   system.Rand
}

func NewDefaultArrivalRules(dwell map[string]prefabs.DurationRange, rng system.Rand) *DefaultArrivalRules {
	return &DefaultArrivalRules{Dwell: dwell, rng: rng}
}

func (r *DefaultArrivalRules) Arrive(agent component.Agent, tile station.TileType, found bool) system.Arrival {
	label := ActivityFor(agent.Kind, tile, found)
	return system.Arrival{
		Activity: label,
		Dwell:    r.DwellFor(label),
		Message:  ArrivalMessage(agent.Name, label),
	}
}

// DwellFor picks a dwell time for label from its configured range.
func (r *DefaultArrivalRules) DwellFor(label component.ActivityLabel) time.Duration {
	span, ok := r.Dwell[string(label)]
	if !ok {
		return 0
	}
	frac := 0.0
	if r.rng != nil {
		frac = r.rng.Float64()
	}
	return span.Pick(frac)
}

func ActivityFor(kind component.AgentKind, tile station.TileType, found bool) component.ActivityLabel {
	if !found {
		return component.ActivityWorking
	}
	switch tile {
	case station.LivingQuarters:
		return component.ActivityResting
	case station.ResearchLab:
		if kind == component.KindScientist {
			return component.ActivityResearching
		}
	case station.EngineeringBay:
		if kind == component.KindEngineer {
			return component.ActivityMaintaining
		}
	case station.Recreation:
		return component.ActivityEating
	}
	return component.ActivityWorking
}

func ArrivalMessage(name string, label component.ActivityLabel) string {
	format, ok := arrivalMessages[label]
	if !ok {
		return ""
	}
	return fmt.Sprintf(format, name)
}
