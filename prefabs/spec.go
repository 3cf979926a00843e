package prefabs

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	StationFile = "station.yaml"
	AgentsFile  = "agents.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// DurationRange is an inclusive [min, max] span written in YAML as a
// two-element list, e.g. [3s, 8s], or a single duration.
type DurationRange struct {
	Min time.Duration
	Max time.Duration
}

func (r *DurationRange) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var d time.Duration
		if err := node.Decode(&d); err != nil {
			return err
		}
		r.Min, r.Max = d, d
		return nil
	case yaml.SequenceNode:
		var pair []time.Duration
		if err := node.Decode(&pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return fmt.Errorf("prefabs: line %d: duration range needs 2 values, got %d", node.Line, len(pair))
		}
		r.Min, r.Max = pair[0], pair[1]
		if r.Max < r.Min {
			r.Min, r.Max = r.Max, r.Min
		}
		return nil
	}
	return fmt.Errorf("prefabs: line %d: invalid duration range", node.Line)
}

// Pick returns a duration in [Min, Max] using frac in [0, 1).
func (r DurationRange) Pick(frac float64) time.Duration {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + time.Duration(frac*float64(r.Max-r.Min))
}

type PointSpec struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

type PathfindingSpec struct {
	SnapRadius    int `yaml:"snap_radius"`
	MaxExpansions int `yaml:"max_expansions"`
}

type PlayerSpec struct {
	Speed           float64   `yaml:"speed"`
	ArriveThreshold float64   `yaml:"arrive_threshold"`
	Spawn           PointSpec `yaml:"spawn"`
}

type AgentTuningSpec struct {
	MoveInterval DurationRange `yaml:"move_interval"`
	MaxAgents    int           `yaml:"max_agents"`
	AutoRoam     bool          `yaml:"auto_roam"`
	Bubble       time.Duration `yaml:"bubble"`
}

type ChatSpec struct {
	MaxMessages int           `yaml:"max_messages"`
	Expiry      time.Duration `yaml:"expiry"`
}

type InteractionSpec struct {
	Range    int           `yaml:"range"`
	Chance   float64       `yaml:"chance"`
	Duration time.Duration `yaml:"duration"`
}

type CameraSpec struct {
	Follow     string  `yaml:"follow"`
	Smoothness float64 `yaml:"smoothness"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
}

type ServerSpec struct {
	Addr           string        `yaml:"addr"`
	Tick           time.Duration `yaml:"tick"`
	BroadcastEvery int           `yaml:"broadcast_every"`
}

// StationSpec is the simulation tuning in station.yaml.
type StationSpec struct {
	Name          string                   `yaml:"name"`
	Level         string                   `yaml:"level"`
	Seed          uint64                   `yaml:"seed"`
	TileSize      float64                  `yaml:"tile_size"`
	Pathfinding   PathfindingSpec          `yaml:"pathfinding"`
	Player        PlayerSpec               `yaml:"player"`
	Agents        AgentTuningSpec          `yaml:"agents"`
	Dwell         map[string]DurationRange `yaml:"dwell"`
	Chat          ChatSpec                 `yaml:"chat"`
	Interaction   InteractionSpec          `yaml:"interaction"`
	Camera        CameraSpec               `yaml:"camera"`
	Server        ServerSpec               `yaml:"server"`
	ArrivalScript string                   `yaml:"arrival_script"`
}

// DefaultStationSpec is used for any field station.yaml leaves unset.
func DefaultStationSpec() StationSpec {
	return StationSpec{
		Name:     "station",
		TileSize: 64,
		Pathfinding: PathfindingSpec{
			SnapRadius: 10,
		},
		Player: PlayerSpec{
			Speed:           200,
			ArriveThreshold: 4,
			Spawn:           PointSpec{X: 12, Y: 12},
		},
		Agents: AgentTuningSpec{
			MoveInterval: DurationRange{Min: 200 * time.Millisecond, Max: 400 * time.Millisecond},
			MaxAgents:    8,
			Bubble:       3 * time.Second,
		},
		Dwell: map[string]DurationRange{
			"resting":     {Min: 3 * time.Second, Max: 8 * time.Second},
			"researching": {Min: 5 * time.Second, Max: 13 * time.Second},
			"maintaining": {Min: 4 * time.Second, Max: 10 * time.Second},
			"eating":      {Min: 2 * time.Second, Max: 6 * time.Second},
			"working":     {Min: 3 * time.Second, Max: 6 * time.Second},
		},
		Chat: ChatSpec{
			MaxMessages: 100,
			Expiry:      5 * time.Minute,
		},
		Interaction: InteractionSpec{
			Range:    3,
			Chance:   0.02,
			Duration: 4 * time.Second,
		},
		Camera: CameraSpec{
			Follow: "player",
			Width:  1280,
			Height: 720,
		},
		Server: ServerSpec{
			Addr:           ":8080",
			Tick:           50 * time.Millisecond,
			BroadcastEvery: 2,
		},
	}
}

// ApplyDefaults fills every unset field from DefaultStationSpec.
func (s *StationSpec) ApplyDefaults() {
	def := DefaultStationSpec()
	if s.Name == "" {
		s.Name = def.Name
	}
	if s.TileSize <= 0 {
		s.TileSize = def.TileSize
	}
	if s.Pathfinding.SnapRadius <= 0 {
		s.Pathfinding.SnapRadius = def.Pathfinding.SnapRadius
	}
	if s.Player.Speed <= 0 {
		s.Player.Speed = def.Player.Speed
	}
	if s.Player.ArriveThreshold <= 0 {
		s.Player.ArriveThreshold = def.Player.ArriveThreshold
	}
	if s.Agents.MoveInterval.Max <= 0 {
		s.Agents.MoveInterval = def.Agents.MoveInterval
	}
	if s.Agents.MaxAgents <= 0 {
		s.Agents.MaxAgents = def.Agents.MaxAgents
	}
	if s.Agents.Bubble <= 0 {
		s.Agents.Bubble = def.Agents.Bubble
	}
	if s.Dwell == nil {
		s.Dwell = make(map[string]DurationRange)
	}
	for k, v := range def.Dwell {
		if _, ok := s.Dwell[k]; !ok {
			s.Dwell[k] = v
		}
	}
	if s.Chat.MaxMessages <= 0 {
		s.Chat.MaxMessages = def.Chat.MaxMessages
	}
	if s.Chat.Expiry <= 0 {
		s.Chat.Expiry = def.Chat.Expiry
	}
	if s.Interaction.Range <= 0 {
		s.Interaction.Range = def.Interaction.Range
	}
	if s.Interaction.Duration <= 0 {
		s.Interaction.Duration = def.Interaction.Duration
	}
	if s.Camera.Follow == "" {
		s.Camera.Follow = def.Camera.Follow
	}
	if s.Camera.Width <= 0 || s.Camera.Height <= 0 {
		s.Camera.Width, s.Camera.Height = def.Camera.Width, def.Camera.Height
	}
	if s.Server.Addr == "" {
		s.Server.Addr = def.Server.Addr
	}
	if s.Server.Tick <= 0 {
		s.Server.Tick = def.Server.Tick
	}
	if s.Server.BroadcastEvery <= 0 {
		s.Server.BroadcastEvery = def.Server.BroadcastEvery
	}
}

// LoadStationSpec reads station.yaml and fills unset fields with defaults.
func LoadStationSpec() (StationSpec, error) {
	spec, err := LoadSpec[StationSpec](StationFile)
	if err != nil {
		return StationSpec{}, err
	}
	spec.ApplyDefaults()
	return spec, nil
}

// ArchetypeSpec describes one kind of crewmate.
type ArchetypeSpec struct {
	Kind    string         `yaml:"kind"`
	Work    string         `yaml:"work"`
	Goals   []string       `yaml:"goals"`
	Weights map[string]int `yaml:"weights"`
}

// AgentsSpec is the crew roster template in agents.yaml.
type AgentsSpec struct {
	Names      []string        `yaml:"names"`
	Colors     []string        `yaml:"colors"`
	Archetypes []ArchetypeSpec `yaml:"archetypes"`
}

// Archetype returns the archetype for kind.
func (s AgentsSpec) Archetype(kind string) (ArchetypeSpec, bool) {
	for _, a := range s.Archetypes {
		if a.Kind == kind {
			return a, true
		}
	}
	return ArchetypeSpec{}, false
}

func LoadAgentsSpec() (AgentsSpec, error) {
	spec, err := LoadSpec[AgentsSpec](AgentsFile)
	if err != nil {
		return AgentsSpec{}, err
	}
	if len(spec.Archetypes) == 0 {
		return AgentsSpec{}, fmt.Errorf("prefabs: %s: no archetypes", AgentsFile)
	}
	return spec, nil
}
