package agent

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed agent.json
var agentCard []byte

var (
	// AgentCardData holds the validated card once LoadAgentCard succeeds.
	AgentCardData []byte

	loadOnce sync.Once
	loadErr  error
)

// LoadAgentCard validates the embedded card and compacts it into
// AgentCardData. It is safe to call repeatedly.
func LoadAgentCard() error {
	loadOnce.Do(func() {
		var card map[string]any
		if err := json.Unmarshal(agentCard, &card); err != nil {
			loadErr = fmt.Errorf("invalid agent card: %w", err)
			return
		}
		for _, field := range []string{"name", "description", "version", "capabilities", "endpoints"} {
			if _, ok := card[field]; !ok {
				loadErr = fmt.Errorf("agent card missing %q", field)
				return
			}
		}
		AgentCardData, loadErr = json.Marshal(card)
	})
	return loadErr
}
