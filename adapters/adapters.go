// Package adapters holds one gateway implementation per database engine.
package adapters

import (
	"errors"
	"fmt"

	"tablesync/core"
)

var (
	errNoValidTypeAliases   = errors.New("no valid type aliases provided")
	ErrUnsupportedTypeAlias = errors.New("no adapter registered for provided type alias")
)

// registeredAdapters holds implemented adapters - specific adapters register
// themselves in their init functions. The main reason is to be able to compile
// the binary without unsupported os/arch of specific drivers.
var registeredAdapters = make(map[string]core.Adapter)

// register registers a new adapter for a specific database
func register(adapter core.Adapter, aliases ...string) error {
	if len(aliases) < 1 {
		return errNoValidTypeAliases
	}

	invalidCount := 0
	for _, alias := range aliases {
		if alias == "" {
			invalidCount++
			continue
		}
		registeredAdapters[alias] = adapter
	}

	if invalidCount == len(aliases) {
		return errNoValidTypeAliases
	}

	return nil
}

// Mux is an interface to all internal adapters.
type Mux struct{}

func (*Mux) GetAdapter(typ string) (core.Adapter, error) {
	adapter, ok := registeredAdapters[typ]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedTypeAlias, typ)
	}

	return adapter, nil
}

// Connect resolves an adapter by type alias and opens a gateway on it.
func Connect(typ, url string) (core.Gateway, error) {
	adapter, err := new(Mux).GetAdapter(typ)
	if err != nil {
		return nil, fmt.Errorf("Mux.GetAdapter: %w", err)
	}

	gateway, err := adapter.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("adapter.Connect: %w", err)
	}

	return gateway, nil
}
