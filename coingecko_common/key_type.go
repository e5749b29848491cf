package coingecko_common

import "github.com/status-im/coin-tracker/config"

// KeyType defines the API key type
type KeyType int

const (
	// NoKey means no API key is available
	NoKey KeyType = iota
	// ProKey means using a Pro API key
	ProKey
	// DemoKey means using a demo API key
	DemoKey
)

// ParseKeyType maps a config key type name to KeyType
func ParseKeyType(name string) KeyType {
	switch name {
	case config.KeyTypePro:
		return ProKey
	case config.KeyTypeDemo:
		return DemoKey
	default:
		return NoKey
	}
}

// HeaderName returns the header carrying a key of this type
func (k KeyType) HeaderName() string {
	switch k {
	case ProKey:
		return "x-cg-pro-api-key"
	case DemoKey:
		return "x-cg-demo-api-key"
	default:
		return ""
	}
}

func (k KeyType) String() string {
	switch k {
	case ProKey:
		return config.KeyTypePro
	case DemoKey:
		return config.KeyTypeDemo
	default:
		return "none"
	}
}
