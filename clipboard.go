package main

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"golang.design/x/clipboard"

	"github.com/bevatsal1122/agentverse-sub000/station"
)

var (
	clipboardOnce sync.Once
	clipboardErr  error
)

// copyRoute writes the remaining player route to the system clipboard as
// "x,y" pairs and returns a status line for the HUD.
func copyRoute(route []station.Point) string {
	if len(route) == 0 {
		return "no route to copy"
	}
	clipboardOnce.Do(func() {
		clipboardErr = clipboard.Init()
		if clipboardErr != nil {
			log.Printf("viewer: clipboard unavailable: %v", clipboardErr)
		}
	})
	if clipboardErr != nil {
		return "clipboard unavailable"
	}
	clipboard.Write(clipboard.FmtText, []byte(formatRoute(route)))
	return fmt.Sprintf("copied %d waypoints", len(route))
}

func formatRoute(route []station.Point) string {
	parts := make([]string, len(route))
	for i, p := range route {
		parts[i] = fmt.Sprintf("%d,%d", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}
