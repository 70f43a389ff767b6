package consensus

import (
	"errors"
	"fmt"
)

// Member is one validator in the fixed set.
type Member struct {
	ID        string
	PublicKey string
}

// Config describes the validator set as seen by one validator.
type Config struct {
	SelfID     string
	ProposerID string
	View       uint64
	Members    []Member
}

// Validate checks that the set is non-empty and names both self and proposer.
func (c Config) Validate() error {
	if len(c.Members) == 0 {
		return errors.New("validator set is empty")
	}
	seen := make(map[string]struct{}, len(c.Members))
	for _, m := range c.Members {
		if m.ID == "" || m.PublicKey == "" {
			return errors.New("validator id and public key are required")
		}
		if _, dup := seen[m.ID]; dup {
			return fmt.Errorf("duplicate validator %q", m.ID)
		}
		seen[m.ID] = struct{}{}
	}
	if _, ok := seen[c.SelfID]; !ok {
		return fmt.Errorf("self %q is not a validator", c.SelfID)
	}
	if _, ok := seen[c.ProposerID]; !ok {
		return fmt.Errorf("proposer %q is not a validator", c.ProposerID)
	}
	return nil
}

// Quorum returns 2f+1 for n validators, f = floor((n-1)/3).
func Quorum(n int) int {
	if n <= 0 {
		return 0
	}
	f := (n - 1) / 3
	return 2*f + 1
}
