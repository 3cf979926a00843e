package system

import (
	"fmt"
	"time"

	"github.com/bevatsal1122/agentverse-sub000/ecs"
)

type ChatType string

const (
	ChatThinking    ChatType = "thinking"
	ChatAction      ChatType = "action"
	ChatInteraction ChatType = "interaction"
)

// ChatMessage is one line of the station chat log.
type ChatMessage struct {
	ID      string        `json:"id"`
	AgentID string        `json:"agent_id"`
	Text    string        `json:"message"`
	At      time.Duration `json:"at"`
	Type    ChatType      `json:"type"`
}

// ChatLog keeps the most recent messages, bounded by count and age.
type ChatLog struct {
	max    int
	expiry time.Duration
	seq    uint64
	msgs   []ChatMessage
}

func NewChatLog(max int, expiry time.Duration) *ChatLog {
	return &ChatLog{max: max, expiry: expiry}
}

// Configure changes the bounds. The next Record or Prune applies them.
func (l *ChatLog) Configure(max int, expiry time.Duration) {
	l.max, l.expiry = max, expiry
}

// Record appends msg, assigning an id when it has none, and drops the
// oldest entries past the cap.
func (l *ChatLog) Record(msg ChatMessage) {
	l.seq++
	if msg.ID == "" {
		msg.ID = fmt.Sprintf("msg_%d", l.seq)
	}
	l.msgs = append(l.msgs, msg)
	if l.max > 0 && len(l.msgs) > l.max {
		l.msgs = append([]ChatMessage(nil), l.msgs[len(l.msgs)-l.max:]...)
	}
}

// Prune drops messages older than the expiry.
func (l *ChatLog) Prune(now time.Duration) {
	if l.expiry <= 0 {
		return
	}
	keep := l.msgs[:0]
	for _, m := range l.msgs {
		if now-m.At < l.expiry {
			keep = append(keep, m)
		}
	}
	l.msgs = keep
}

// Messages returns a copy of the log, oldest first.
func (l *ChatLog) Messages() []ChatMessage {
	return append([]ChatMessage(nil), l.msgs...)
}

// Attach records every chat event published on bus.
func (l *ChatLog) Attach(bus *ecs.EventBus) (detach func()) {
	return bus.Subscribe(EventChat, func(evt ecs.Event) {
		if msg, ok := evt.Data.(ChatMessage); ok {
			l.Record(msg)
		}
	})
}

// ChatLogSystem ages out old chat messages.
type ChatLogSystem struct {
	log *ChatLog
}

func NewChatLogSystem(log *ChatLog) *ChatLogSystem {
	return &ChatLogSystem{log: log}
}

func (s *ChatLogSystem) Update(w *ecs.World) {
	s.log.Prune(w.Clock().Now())
}
