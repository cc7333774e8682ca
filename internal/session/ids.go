package session

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/cognitive-os/orchestra/internal/util"
)

// NewID generates a session ID of the form "<type>-<8 hex chars>",
// e.g. "debug_assistant-3fa1b2c4". The type is slugged because IDs
// become filenames, and overlay-defined types are arbitrary strings.
func NewID(agentType string) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%s-%s", util.Slug(agentType), hex[:8])
}

// NewTeamID generates a team ID of the form "team-<8 hex chars>".
func NewTeamID() string {
	return NewID("team")
}
