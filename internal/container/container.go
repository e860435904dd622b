// Package container provides dependency injection for the bank-report application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"

	"bank-report/internal/aggregator"
	"bank-report/internal/config"
	"bank-report/internal/enrichment"
	"bank-report/internal/loader"
	"bank-report/internal/logging"
	"bank-report/internal/report"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger     logging.Logger
	closeLog   func() error
	config     *config.Config
	loader     *loader.Loader
	aggregator *aggregator.Aggregator
	enricher   *enrichment.Enricher
	builder    *report.Builder
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	// Create logger first as it's needed by other components
	logger, closeLog, err := config.ConfigureLogger(cfg)
	if err != nil {
		return nil, err
	}

	c, err := NewContainerWithLogger(cfg, logger)
	if err != nil {
		_ = closeLog()
		return nil, err
	}
	c.closeLog = closeLog
	return c, nil
}

// NewContainerWithLogger wires the dependencies around an existing logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("invalid input timezone: %w", err)
	}

	ld := loader.New(loader.OptionsFromConfig(cfg), logger)
	agg := aggregator.New(logger, nil, loc)
	enricher := enrichment.NewFromConfig(cfg, logger)
	builder := report.NewBuilder(ld, agg, enricher, logger)

	logger.Debug("Container initialized successfully",
		logging.Field{Key: logging.FieldSource, Value: cfg.Input.Source},
		logging.Field{Key: "enrichment_enabled", Value: cfg.Enrichment.Enabled})

	return &Container{
		logger:     logger,
		closeLog:   func() error { return nil },
		config:     cfg,
		loader:     ld,
		aggregator: agg,
		enricher:   enricher,
		builder:    builder,
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetLoader returns the record source.
func (c *Container) GetLoader() *loader.Loader {
	return c.loader
}

// GetAggregator returns the aggregator.
func (c *Container) GetAggregator() *aggregator.Aggregator {
	return c.aggregator
}

// GetEnricher returns the rate and price enricher.
func (c *Container) GetEnricher() *enrichment.Enricher {
	return c.enricher
}

// GetBuilder returns the report pipeline.
func (c *Container) GetBuilder() *report.Builder {
	return c.builder
}

// Close releases the log file, if any.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	return c.closeLog()
}
