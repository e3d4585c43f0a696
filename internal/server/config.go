package server

import "time"

// Config carries the transport-level knobs. MaxRequestBytes caps what a
// single connection may send before the header block completes.
//
// Zero values select the defaults from DefaultConfig. In particular a zero
// or negative ReadTimeout means the default 30s deadline, not "no deadline";
// the per-connection read deadline cannot be disabled.
type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	MaxRequestBytes int
}

func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		ReadTimeout:     30 * time.Second,
		MaxRequestBytes: 64 << 10,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Addr == "" {
		c.Addr = def.Addr
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = def.ReadTimeout
	}
	if c.MaxRequestBytes <= 0 {
		c.MaxRequestBytes = def.MaxRequestBytes
	}
	return c
}
