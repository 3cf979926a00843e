package system

import (
	"fmt"
	"sort"
	"time"

	"github.com/dhconnelly/rtreego"

	"github.com/bevatsal1122/agentverse-sub000/ecs"
	"github.com/bevatsal1122/agentverse-sub000/ecs/component"
	"github.com/bevatsal1122/agentverse-sub000/station"
)

// Rand is the random source systems draw from. *math/rand/v2.Rand
// satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

type agentEntry struct {
	e     ecs.Entity
	agent *component.Agent
	pos   station.Point
	rect  rtreego.Rect
}

func (a *agentEntry) Bounds() rtreego.Rect {
	return a.rect
}

// InteractionSystem starts conversations between agents standing within
// Range tiles (Manhattan) of each other. Each free agent rolls Chance per
// tick against its nearest free neighbours, in id order.
type InteractionSystem struct {
	Range          int
	Chance         float64
	Duration       time.Duration
	BubbleDuration time.Duration

	rng Rand
}

func NewInteractionSystem(rng Rand) *InteractionSystem {
	return &InteractionSystem{
		Range:          3,
		Chance:         0.02,
		Duration:       4 * time.Second,
		BubbleDuration: 4 * time.Second,
		rng:            rng,
	}
}

func (s *InteractionSystem) Update(w *ecs.World) {
	if s.rng == nil || s.Range < 0 || s.Chance <= 0 {
		return
	}
	entries := collectAgents(w)
	if len(entries) < 2 {
		return
	}

	tree := rtreego.NewTree(2, 2, 8)
	for _, entry := range entries {
		tree.Insert(entry)
	}

	busy := make(map[ecs.Entity]bool, len(entries))
	for _, entry := range entries {
		busy[entry.e] = ecs.Has(w, entry.e, component.InteractionComponent.Kind())
	}

	for _, entry := range entries {
		if busy[entry.e] {
			continue
		}
		for _, other := range s.neighbours(tree, entry) {
			if busy[other.e] {
				continue
			}
			if s.rng.Float64() < s.Chance {
				s.start(w, entry, other)
				busy[entry.e], busy[other.e] = true, true
				break
			}
		}
	}
}

func (s *InteractionSystem) neighbours(tree *rtreego.Rtree, self *agentEntry) []*agentEntry {
	r := float64(s.Range)
	query, err := rtreego.NewRect(
		rtreego.Point{float64(self.pos.X) - r, float64(self.pos.Y) - r},
		[]float64{2*r + 1, 2*r + 1},
	)
	if err != nil {
		return nil
	}
	var out []*agentEntry
	for _, hit := range tree.SearchIntersect(query) {
		other := hit.(*agentEntry)
		if other.e == self.e || self.pos.Manhattan(other.pos) > s.Range {
			continue
		}
		out = append(out, other)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].agent.ID < out[j].agent.ID })
	return out
}

func (s *InteractionSystem) start(w *ecs.World, a, b *agentEntry) {
	now := w.Clock().Now()
	for _, pair := range [][2]*agentEntry{{a, b}, {b, a}} {
		self, partner := pair[0], pair[1]
		if in, ok := ecs.Get(w, self.e, component.InteractionComponent.Kind()); ok {
			in.Partner, in.LastStarted = partner.agent.ID, now
		} else {
			_ = ecs.Add(w, self.e, component.InteractionComponent.Kind(), &component.Interaction{Partner: partner.agent.ID, LastStarted: now})
		}
		w.Timers().CancelKind(self.e, TimerInteractionEnd)
		w.Timers().Schedule(now+s.Duration, self.e, TimerInteractionEnd, nil)
	}
	ShowBubble(w, a.e, "Talking with "+b.agent.Name, s.BubbleDuration)
	ShowBubble(w, b.e, "Chatting with "+a.agent.Name, s.BubbleDuration)

	w.Bus().Publish(ecs.Event{Kind: EventChat, Entity: a.e, Data: ChatMessage{
		AgentID: a.agent.ID,
		Text:    s.line(*a.agent, *b.agent),
		At:      now,
		Type:    ChatInteraction,
	}})
	w.Bus().Publish(ecs.Event{Kind: EventInteraction, Entity: a.e, Data: Interacted{A: a.agent.ID, B: b.agent.ID}})
}

func (s *InteractionSystem) line(a, b component.Agent) string {
	lines := []string{
		fmt.Sprintf("%s greets %s", a.Name, b.Name),
		fmt.Sprintf("%s and %s have a friendly chat", a.Name, b.Name),
		fmt.Sprintf("%s shares ideas with %s", a.Name, b.Name),
		fmt.Sprintf("%s asks %s about their work", a.Name, b.Name),
		fmt.Sprintf("%s and %s discuss the station", a.Name, b.Name),
	}
	if a.Kind == b.Kind {
		lines = append(lines, fmt.Sprintf("%s and %s bond over their shared profession", a.Name, b.Name))
	}
	if a.Kind == component.KindCaptain || b.Kind == component.KindCaptain {
		lines = append(lines, fmt.Sprintf("Leadership discussion between %s and %s", a.Name, b.Name))
	}
	return lines[s.rng.IntN(len(lines))]
}

// collectAgents gathers agents with positions, ordered by id.
func collectAgents(w *ecs.World) []*agentEntry {
	var out []*agentEntry
	ecs.ForEach2(w, component.AgentComponent.Kind(), component.GridPositionComponent.Kind(), func(e ecs.Entity, a *component.Agent, pos *component.GridPosition) {
		rect, err := rtreego.NewRect(rtreego.Point{float64(pos.X) + 0.25, float64(pos.Y) + 0.25}, []float64{0.5, 0.5})
		if err != nil {
			return
		}
		out = append(out, &agentEntry{e: e, agent: a, pos: pos.Point(), rect: rect})
	})
	sort.Slice(out, func(i, j int) bool { return out[i].agent.ID < out[j].agent.ID })
	return out
}
