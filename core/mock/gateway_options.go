package mock

type gatewayConfig struct {
	connectErr   error
	exportErr    error
	truncateErr  error
	bulkWriteErr error
}

type GatewayOption func(*gatewayConfig)

func WithConnectError(err error) GatewayOption {
	return func(c *gatewayConfig) {
		c.connectErr = err
	}
}

func WithExportError(err error) GatewayOption {
	return func(c *gatewayConfig) {
		c.exportErr = err
	}
}

func WithTruncateError(err error) GatewayOption {
	return func(c *gatewayConfig) {
		c.truncateErr = err
	}
}

func WithBulkWriteError(err error) GatewayOption {
	return func(c *gatewayConfig) {
		c.bulkWriteErr = err
	}
}
