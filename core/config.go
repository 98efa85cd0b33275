package core

import (
	"time"

	"github.com/fox-one/pkg/store/db"
)

// Config lever config
type Config struct {
	DB          db.Config   `json:"db"`
	API         API         `json:"api"`
	PriceOracle PriceOracle `json:"price_oracle"`
	Worker      Worker      `json:"worker"`
	Admins      []string    `json:"admins"`
}

// IsAdmin check if the user is admin
func (c *Config) IsAdmin(userID string) bool {
	for _, a := range c.Admins {
		if a == userID {
			return true
		}
	}
	return false
}

// API api config
type API struct {
	Port int `json:"port"`
}

// PriceOracle external price feed config; endpoint may be empty, prices
// are then administrative only
type PriceOracle struct {
	EndPoint string `json:"end_point"`
}

// Worker worker cadence config
type Worker struct {
	AccrualSpec      string        `json:"accrual_spec"`
	PriceInterval    time.Duration `json:"price_interval"`
	SentinelInterval time.Duration `json:"sentinel_interval"`
}
