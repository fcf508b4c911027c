// Package mock provides an in-memory adapter and gateway for tests.
package mock

import (
	"context"
	"fmt"
	"sync"

	"tablesync/core"
)

var (
	_ core.Adapter = (*Adapter)(nil)
	_ core.Gateway = (*Gateway)(nil)
)

// Gateway keeps tables in memory and records every operation in order,
// so tests can assert e.g. that truncate happens before the bulk write.
type Gateway struct {
	mu     sync.Mutex
	config *gatewayConfig

	tables map[string]*core.Buffer
	ops    []string
	closed bool
}

// Adapter hands out the same gateway instance for every Connect call.
type Adapter struct {
	gateway *Gateway
}

func NewAdapter(gateway *Gateway) *Adapter {
	return &Adapter{gateway: gateway}
}

func (a *Adapter) Connect(_ string) (core.Gateway, error) {
	if a.gateway.config.connectErr != nil {
		return nil, a.gateway.config.connectErr
	}
	return a.gateway, nil
}

func NewGateway(opts ...GatewayOption) *Gateway {
	config := &gatewayConfig{}
	for _, opt := range opts {
		opt(config)
	}

	return &Gateway{
		config: config,
		tables: make(map[string]*core.Buffer),
	}
}

// Seed places a buffer under a table name without recording an operation.
func (g *Gateway) Seed(table string, buf *core.Buffer) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.tables[table] = buf
}

// Table returns the current contents of a table (nil when never written).
func (g *Gateway) Table(table string) *core.Buffer {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.tables[table]
}

// Ops returns the ordered operation log, entries like "truncate t1".
func (g *Gateway) Ops() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.ops...)
}

func (g *Gateway) Closed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.closed
}

func (g *Gateway) Export(_ context.Context, table string) (*core.Buffer, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.ops = append(g.ops, "export "+table)

	if g.config.exportErr != nil {
		return nil, g.config.exportErr
	}

	buf, ok := g.tables[table]
	if !ok {
		return nil, fmt.Errorf("%w: unknown table %q", core.ErrQuery, table)
	}
	return buf, nil
}

func (g *Gateway) Truncate(_ context.Context, table string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.ops = append(g.ops, "truncate "+table)

	if g.config.truncateErr != nil {
		return g.config.truncateErr
	}

	empty, _ := core.NewBuffer(core.Header{}, nil)
	g.tables[table] = empty
	return nil
}

func (g *Gateway) BulkWrite(_ context.Context, table string, buf *core.Buffer) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if buf.IsEmpty() {
		return nil
	}

	g.ops = append(g.ops, "bulkwrite "+table)

	if g.config.bulkWriteErr != nil {
		return g.config.bulkWriteErr
	}

	g.tables[table] = buf
	return nil
}

func (g *Gateway) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.closed = true
}
