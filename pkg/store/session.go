package store

import (
	"time"

	"paraphrase-be/pkg/rewrite"
	"paraphrase-be/pkg/wizard"
)

// Session is the live state of one anonymous client: its wizard and the
// orchestrator that submits it.
type Session struct {
	ID        string
	Wizard    *wizard.Machine
	Rewrite   *rewrite.Orchestrator
	CreatedAt time.Time
}
