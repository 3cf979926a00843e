package sim

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bevatsal1122/agentverse-sub000/station"
)

func TestCommandBufferFIFOAndOverflow(t *testing.T) {
	buf := NewCommandBuffer(2)

	assert.True(t, buf.Push(Command{Type: CommandMoveAgent, AgentID: "a"}))
	assert.True(t, buf.Push(Command{Type: CommandCancelPath, AgentID: "b"}))
	assert.False(t, buf.Push(Command{Type: CommandRemoveAgent, AgentID: "c"}))
	assert.Equal(t, 2, buf.Len())
	assert.Equal(t, uint64(1), buf.Dropped())

	cmds := buf.Drain()
	require.Len(t, cmds, 2)
	assert.Equal(t, "a", cmds[0].AgentID)
	assert.Equal(t, "b", cmds[1].AgentID)
	assert.Nil(t, buf.Drain())

	assert.True(t, buf.Push(Command{Type: CommandMoveAgent, AgentID: "d"}))
	assert.Equal(t, "d", buf.Drain()[0].AgentID)
}

func TestCommandBufferConcurrentProducers(t *testing.T) {
	buf := NewCommandBuffer(1000)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				buf.Push(Command{Type: CommandFollowPlayer})
			}
		}()
	}
	wg.Wait()
	assert.Len(t, buf.Drain(), 500)
}

func TestNilCommandBuffer(t *testing.T) {
	var buf *CommandBuffer
	assert.False(t, buf.Push(Command{}))
	assert.Nil(t, buf.Drain())
	assert.Zero(t, buf.Len())
}

func TestApplyCommands(t *testing.T) {
	s, logs := testSim(t, nil)
	spawn(t, s, AgentSpec{ID: "a", Position: station.Pt(1, 0)})

	n := s.ApplyAll([]Command{
		{Type: CommandMoveAgent, AgentID: "a", X: 4, Y: 0},
		{Type: CommandMoveAgent, AgentID: "ghost", X: 4, Y: 0},
		{Type: "teleport"},
		{Type: CommandMovePlayer, X: 4, Y: 1},
		{Type: CommandFollowAgent, AgentID: "a"},
		{Type: CommandSpawnAgent},
	})
	assert.Equal(t, 4, n)
	assert.Contains(t, logs.String(), `sim: unknown command "teleport"`)
	assert.Contains(t, logs.String(), "sim: command rejected: move_agent ghost (4,0)")

	assert.True(t, agentState(t, s, "a").Following)
	assert.NotEmpty(t, s.PlayerRoute())
	assert.Len(t, s.AgentIDs(), 2)

	assert.True(t, s.Apply(Command{Type: CommandCancelPath, AgentID: "a"}))
	assert.False(t, agentState(t, s, "a").Following)
	assert.True(t, s.Apply(Command{Type: CommandMoveAgentToNearest, AgentID: "a", TileType: station.EngineeringBay}))
	assert.True(t, s.Apply(Command{Type: CommandPlayerInput, DX: 1}))
	assert.True(t, s.Apply(Command{Type: CommandRemoveAgent, AgentID: "a"}))
}
