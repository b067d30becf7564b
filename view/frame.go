package view

import "github.com/marben/fraktaly"

// Frame is a server reply: the grid computed for State, or an error.
// Seq echoes the sequence number of the command that produced it; frames of
// superseded commands are never sent.
type Frame struct {
	Seq       uint64         `json:"seq"`
	State     State          `json:"state"`
	Grid      *fraktaly.Grid `json:"grid,omitempty"`
	ElapsedMs int64          `json:"elapsed_ms,omitempty"`
	Error     string         `json:"error,omitempty"`
}
