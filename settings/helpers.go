package settings

import (
	"strconv"
	"time"

	"github.com/ordishs/gocore"
)

func getString(key, defaultValue string) string {
	value, found := gocore.Config().Get(key)
	if !found {
		return defaultValue
	}

	return value
}

func getBool(key string, defaultValue bool) bool {
	return gocore.Config().GetBool(key, defaultValue)
}

// the parse helpers below record malformed values on p, Validate reports them

type parser struct {
	invalid []string
}

func (p *parser) getUint64(key string, defaultValue uint64) uint64 {
	value, found := gocore.Config().Get(key)
	if !found || value == "" {
		return defaultValue
	}

	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		p.invalid = append(p.invalid, key)
		return defaultValue
	}

	return n
}

func (p *parser) getFloat64(key string, defaultValue float64) float64 {
	value, found := gocore.Config().Get(key)
	if !found || value == "" {
		return defaultValue
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		p.invalid = append(p.invalid, key)
		return defaultValue
	}

	return f
}

func (p *parser) getDuration(key string, defaultValue time.Duration) time.Duration {
	value, found := gocore.Config().Get(key)
	if !found || value == "" {
		return defaultValue
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		p.invalid = append(p.invalid, key)
		return defaultValue
	}

	return d
}
