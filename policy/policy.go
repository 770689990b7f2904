package policy

import (
	"context"
	"fmt"
	"strings"
)

// Admission modes.
const (
	ModeAsk  = "ask"  // consult Ask before every admitted syscall
	ModeAuto = "auto" // admit by lists only (default)
	ModeDeny = "deny" // refuse every syscall
)

// AskFunc is invoked when Mode==ask. Returning true admits the call.
// Implementations may mutate the policy, for example switching to ModeAuto
// after the first approval.
type AskFunc func(ctx context.Context, syscall string, args []uint64, p *Policy) bool

// Policy represents syscall admission settings.
//
//   - Mode controls the high-level behaviour (ask / auto / deny).
//   - AllowList, BlockList filter by syscall name regardless of Mode.
//   - Ask is only used when Mode==ask.
type Policy struct {
	Mode      string
	AllowList []string
	BlockList []string
	Ask       AskFunc
}

// Config represents the declarative, serialisable part of a Policy.
type Config struct {
	Mode      string   `json:"mode,omitempty" yaml:"mode,omitempty"`
	AllowList []string `json:"allow,omitempty" yaml:"allow,omitempty"`
	BlockList []string `json:"block,omitempty" yaml:"block,omitempty"`
}

// Validate checks the mode.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	switch c.Mode {
	case "", ModeAuto, ModeDeny, ModeAsk:
		return nil
	}
	return fmt.Errorf("unsupported policy mode: %v", c.Mode)
}

// ToConfig converts a runtime Policy into a persistable Config.
func ToConfig(p *Policy) *Config {
	if p == nil {
		return nil
	}
	return &Config{
		Mode:      p.Mode,
		AllowList: append([]string(nil), p.AllowList...),
		BlockList: append([]string(nil), p.BlockList...),
	}
}

// FromConfig converts a stored Config back to a runtime Policy (without
// AskFunc).
func FromConfig(c *Config) *Policy {
	if c == nil {
		return nil
	}
	return &Policy{
		Mode:      c.Mode,
		AllowList: append([]string(nil), c.AllowList...),
		BlockList: append([]string(nil), c.BlockList...),
	}
}

// IsAllowed evaluates AllowList / BlockList by case-insensitive syscall name.
func (p *Policy) IsAllowed(syscall string) bool {
	if p == nil {
		return true
	}
	normalized := strings.ToLower(syscall)

	// BlockList has priority.
	for _, b := range p.BlockList {
		if normalized == strings.ToLower(b) {
			return false
		}
	}
	if len(p.AllowList) == 0 {
		return true
	}
	for _, a := range p.AllowList {
		if normalized == strings.ToLower(a) {
			return true
		}
	}
	return false
}

// Admit combines the lists with the mode. Ask mode without an AskFunc
// refuses.
func (p *Policy) Admit(ctx context.Context, syscall string, args []uint64) bool {
	if p == nil {
		return true
	}
	if !p.IsAllowed(syscall) {
		return false
	}
	switch p.Mode {
	case ModeDeny:
		return false
	case ModeAsk:
		if p.Ask == nil {
			return false
		}
		return p.Ask(ctx, syscall, args, p)
	}
	return true
}
