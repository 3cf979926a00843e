package component

import (
	"time"

	"github.com/bevatsal1122/agentverse-sub000/station"
)

type AgentKind string

const (
	KindCrew      AgentKind = "crew"
	KindScientist AgentKind = "scientist"
	KindEngineer  AgentKind = "engineer"
	KindCaptain   AgentKind = "captain"
)

// Agent is the identity and routine of an autonomous crewmate.
type Agent struct {
	ID       string
	Name     string
	Kind     AgentKind
	Color    string
	Home     station.Point
	Work     station.Point
	AutoRoam bool
	Goals    []string
}

var AgentComponent = NewComponent[Agent]()

// AgentMotion gates discrete stepping. LastMoveTime is simulation time.
// Target is the direct-step destination used when no path is active.
type AgentMotion struct {
	MoveInterval time.Duration
	LastMoveTime time.Duration
	Target       *station.Point
}

var AgentMotionComponent = NewComponent[AgentMotion]()

type ActivityLabel string

const (
	ActivityWalking     ActivityLabel = "walking"
	ActivityWorking     ActivityLabel = "working"
	ActivityResting     ActivityLabel = "resting"
	ActivityEating      ActivityLabel = "eating"
	ActivityResearching ActivityLabel = "researching"
	ActivityMaintaining ActivityLabel = "maintaining"
)

// Activity is what an entity is currently doing.
type Activity struct {
	Label ActivityLabel
	Since time.Duration
}

var ActivityComponent = NewComponent[Activity]()

// ChatBubble is a transient speech line shown over an entity.
type ChatBubble struct {
	Text  string
	Until time.Duration
}

var ChatBubbleComponent = NewComponent[ChatBubble]()

// Interaction marks two agents talking to each other.
type Interaction struct {
	Partner     string
	LastStarted time.Duration
}

var InteractionComponent = NewComponent[Interaction]()
