package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rules is the tunable rule set for a settlement session. Zero values
// are filled from defaults on load so a partial file stays valid.
type Rules struct {
	// HandLimit is the card count above which a roll of seven forces a
	// discard of half the hand.
	HandLimit int `yaml:"hand_limit"`

	MaxSettlements int `yaml:"max_settlements"`
	MaxCities      int `yaml:"max_cities"`
	MaxRoads       int `yaml:"max_roads"`

	// BankTradeRatio is how many units of one kind buy one unit of
	// another at the bank.
	BankTradeRatio int `yaml:"bank_trade_ratio"`

	MinPlayers int `yaml:"min_players"`
	MaxPlayers int `yaml:"max_players"`
}

func defaults() Rules {
	return Rules{
		HandLimit:      7,
		MaxSettlements: 5,
		MaxCities:      4,
		MaxRoads:       15,
		BankTradeRatio: 4,
		MinPlayers:     2,
		MaxPlayers:     4,
	}
}

// Default returns the base-game rule set.
func Default() Rules {
	return defaults()
}

// Load reads a rules file. An empty path returns the defaults.
func Load(path string) (Rules, error) {
	cfg := defaults()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("settlers.yaml: %w", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("settlers.yaml: %w", err)
	}
	return cfg, nil
}

// Normalize fills unset values from the defaults.
func (r *Rules) Normalize() {
	d := defaults()
	if r.HandLimit == 0 {
		r.HandLimit = d.HandLimit
	}
	if r.MaxSettlements == 0 {
		r.MaxSettlements = d.MaxSettlements
	}
	if r.MaxCities == 0 {
		r.MaxCities = d.MaxCities
	}
	if r.MaxRoads == 0 {
		r.MaxRoads = d.MaxRoads
	}
	if r.BankTradeRatio == 0 {
		r.BankTradeRatio = d.BankTradeRatio
	}
	if r.MinPlayers == 0 {
		r.MinPlayers = d.MinPlayers
	}
	if r.MaxPlayers == 0 {
		r.MaxPlayers = d.MaxPlayers
	}
}

// Validate rejects rule sets that cannot host a game.
func (r Rules) Validate() error {
	if r.HandLimit < 1 {
		return fmt.Errorf("hand_limit must be positive, got %d", r.HandLimit)
	}
	if r.MaxSettlements < 1 || r.MaxCities < 1 || r.MaxRoads < 1 {
		return fmt.Errorf("building limits must be positive")
	}
	if r.BankTradeRatio < 1 {
		return fmt.Errorf("bank_trade_ratio must be positive, got %d", r.BankTradeRatio)
	}
	if r.MinPlayers < 2 {
		return fmt.Errorf("min_players must be at least 2, got %d", r.MinPlayers)
	}
	if r.MaxPlayers < r.MinPlayers {
		return fmt.Errorf("max_players %d below min_players %d", r.MaxPlayers, r.MinPlayers)
	}
	return nil
}
