package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/bevatsal1122/agentverse-sub000/sim"
)

type HandlerConfig struct {
	Logger   *log.Logger
	Hub      *Hub
	Commands *sim.CommandBuffer
}

type moveRequest struct {
	X          *int   `json:"x"`
	Y          *int   `json:"y"`
	BuildingID string `json:"building_id"`
}

type queuedResponse struct {
	Queued  bool   `json:"queued"`
	Command string `json:"command"`
}

type handler struct {
	logger   *log.Logger
	hub      *Hub
	commands *sim.CommandBuffer
	upgrader websocket.Upgrader
}

// NewHTTPHandler serves station state and accepts commands. Commands are
// only queued here; the simulation loop applies them on its next tick.
func NewHTTPHandler(cfg HandlerConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	h := &handler{
		logger:   logger,
		hub:      cfg.Hub,
		commands: cfg.Commands,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /state", h.state)
	mux.HandleFunc("GET /ws", h.websocket)
	mux.HandleFunc("POST /agents", h.spawnAgent)
	mux.HandleFunc("POST /agents/{id}/move", h.moveAgent)
	mux.HandleFunc("POST /agents/{id}/cancel", h.cancelAgent)
	mux.HandleFunc("DELETE /agents/{id}", h.removeAgent)
	mux.HandleFunc("POST /agents/{id}/follow", h.followAgent)
	mux.HandleFunc("POST /player/move", h.movePlayer)
	return mux
}

func (h *handler) state(w http.ResponseWriter, r *http.Request) {
	data := h.hub.Latest()
	if data == nil {
		http.Error(w, "simulation not started", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (h *handler) websocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("server: upgrade failed: %v", err)
		return
	}
	sub := h.hub.subscribe(conn)
	defer h.hub.unsubscribe(sub)

	// Clients only listen; reading detects the disconnect.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *handler) spawnAgent(w http.ResponseWriter, r *http.Request) {
	h.enqueue(w, sim.Command{Type: sim.CommandSpawnAgent})
}

func (h *handler) moveAgent(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body: "+err.Error(), http.StatusBadRequest)
		return
	}
	id := r.PathValue("id")
	switch {
	case req.BuildingID != "":
		h.enqueue(w, sim.Command{Type: sim.CommandMoveAgentToBuilding, AgentID: id, BuildingID: req.BuildingID})
	case req.X != nil && req.Y != nil:
		h.enqueue(w, sim.Command{Type: sim.CommandMoveAgent, AgentID: id, X: *req.X, Y: *req.Y})
	default:
		http.Error(w, "need x and y or building_id", http.StatusBadRequest)
	}
}

func (h *handler) cancelAgent(w http.ResponseWriter, r *http.Request) {
	h.enqueue(w, sim.Command{Type: sim.CommandCancelPath, AgentID: r.PathValue("id")})
}

func (h *handler) removeAgent(w http.ResponseWriter, r *http.Request) {
	h.enqueue(w, sim.Command{Type: sim.CommandRemoveAgent, AgentID: r.PathValue("id")})
}

func (h *handler) followAgent(w http.ResponseWriter, r *http.Request) {
	h.enqueue(w, sim.Command{Type: sim.CommandFollowAgent, AgentID: r.PathValue("id")})
}

func (h *handler) movePlayer(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.X == nil || req.Y == nil {
		http.Error(w, "need x and y", http.StatusBadRequest)
		return
	}
	h.enqueue(w, sim.Command{Type: sim.CommandMovePlayer, X: *req.X, Y: *req.Y})
}

func (h *handler) enqueue(w http.ResponseWriter, cmd sim.Command) {
	if !h.commands.Push(cmd) {
		h.logger.Printf("server: command buffer full, dropped %s", cmd)
		http.Error(w, "command queue full", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(queuedResponse{Queued: true, Command: string(cmd.Type)})
}
