// Package session wires a radio backend, the transmit chain, and the
// receive-chain scheduler behind the application-facing
// Transmitter/Receiver contract of spec §6, loading hardware and
// pipeline parameters from YAML the way the teacher's cmd/project3
// config package does.
package session

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the recognized session options of spec §6: center
// frequency, sample rate, hardware gains, transmit amplitude scaling,
// and the device selector.
type Config struct {
	Freq       float64 `yaml:"freq"`
	Rate       float64 `yaml:"rate"`
	TxGain     float64 `yaml:"tx_gain"`
	RxGain     float64 `yaml:"rx_gain"`
	TxAmp      float64 `yaml:"tx_amp"`
	DeviceAddr string  `yaml:"device_addr"`
}

// DefaultRate is the 5 MHz half-rate baseband sample rate the
// standard specifies for an 802.11a implementation (spec §6).
const DefaultRate = 5_000_000

// LoadConfig reads and validates a session configuration from filename.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	cfg := &Config{Rate: DefaultRate, TxAmp: 1.0}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.TxAmp > 1.0 {
		cfg.TxAmp = 1.0
	}
	return cfg, nil
}
