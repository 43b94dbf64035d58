// Package config loads and validates simulation scenarios.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/ISibboI/economy-sim/internal/consumer"
	"github.com/ISibboI/economy-sim/internal/economy"
	"github.com/ISibboI/economy-sim/internal/factory"
)

// Config describes one complete simulation run.
type Config struct {
	Seed       int64            `mapstructure:"seed"`
	Hours      uint64           `mapstructure:"hours"`
	Factories  []FactoryConfig  `mapstructure:"factories"`
	Consumers  []ConsumerConfig `mapstructure:"consumers"`
	Statistics StatisticsConfig `mapstructure:"statistics"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// FactoryConfig declares one factory's recipe, wages, and starting balance.
type FactoryConfig struct {
	Inputs          []WareAmountConfig `mapstructure:"inputs"`
	Outputs         []WareAmountConfig `mapstructure:"outputs"`
	RatePerHour     uint64             `mapstructure:"rate_per_hour"`
	HourlyWages     uint64             `mapstructure:"hourly_wages"`
	StartingBalance uint64             `mapstructure:"starting_balance"`
}

// WareAmountConfig names a commodity quantity.
type WareAmountConfig struct {
	Ware   string `mapstructure:"ware"`
	Amount uint64 `mapstructure:"amount"`
}

// ConsumerConfig declares one consumer's demand parameters.
type ConsumerConfig struct {
	Ware        string  `mapstructure:"ware"`
	Amount      uint64  `mapstructure:"amount"`
	TargetPrice uint64  `mapstructure:"target_price"`
	Decay       float64 `mapstructure:"decay"`
}

// StatisticsConfig controls the observers attached to the run.
type StatisticsConfig struct {
	DBPath  string `mapstructure:"db_path"`
	Console bool   `mapstructure:"console"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads a scenario file, applying defaults and environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)

	v.SetEnvPrefix("ECONOMY_SIM")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("seed", 0)
	v.SetDefault("hours", 10)
	v.SetDefault("statistics.db_path", "data/economy.db")
	v.SetDefault("statistics.console", true)
	v.SetDefault("logging.level", "info")
}

// Default returns the built-in demonstration scenario: a water well, a seed
// harvester, and an apple farm feeding one apple consumer.
func Default() *Config {
	return &Config{
		Seed:  0,
		Hours: 10,
		Factories: []FactoryConfig{
			{
				Outputs:         []WareAmountConfig{{Ware: "water", Amount: 10}},
				RatePerHour:     100,
				HourlyWages:     100,
				StartingBalance: 10_000,
			},
			{
				Outputs:         []WareAmountConfig{{Ware: "seed", Amount: 1}},
				RatePerHour:     1,
				HourlyWages:     100,
				StartingBalance: 10_000,
			},
			{
				Inputs: []WareAmountConfig{
					{Ware: "water", Amount: 100},
					{Ware: "seed", Amount: 1},
				},
				Outputs: []WareAmountConfig{
					{Ware: "apple", Amount: 10},
					{Ware: "seed", Amount: 2},
				},
				RatePerHour:     10,
				HourlyWages:     100,
				StartingBalance: 10_000,
			},
		},
		Consumers: []ConsumerConfig{
			{Ware: "apple", Amount: 10, TargetPrice: 2, Decay: 0.9},
		},
		Statistics: StatisticsConfig{DBPath: "data/economy.db", Console: true},
		Logging:    LoggingConfig{Level: "info"},
	}
}

// Validate checks that the scenario can be instantiated.
func (c *Config) Validate() error {
	if c.Hours == 0 {
		return fmt.Errorf("hours must be at least 1")
	}
	if len(c.Factories) == 0 {
		return fmt.Errorf("at least one factory is required")
	}
	for i, f := range c.Factories {
		if f.RatePerHour == 0 {
			return fmt.Errorf("factory %d: rate_per_hour must be at least 1", i)
		}
		if f.HourlyWages%f.RatePerHour != 0 {
			return fmt.Errorf("factory %d: hourly_wages %d not divisible by rate_per_hour %d",
				i, f.HourlyWages, f.RatePerHour)
		}
		if len(f.Outputs) == 0 {
			return fmt.Errorf("factory %d: outputs must not be empty", i)
		}
		for _, wa := range append(append([]WareAmountConfig(nil), f.Inputs...), f.Outputs...) {
			if _, err := economy.ParseWare(wa.Ware); err != nil {
				return fmt.Errorf("factory %d: %w", i, err)
			}
		}
	}
	for i, con := range c.Consumers {
		if _, err := economy.ParseWare(con.Ware); err != nil {
			return fmt.Errorf("consumer %d: %w", i, err)
		}
		if con.Decay < 0 || con.Decay > 1 {
			return fmt.Errorf("consumer %d: decay must be within [0, 1]", i)
		}
		if con.TargetPrice == 0 {
			return fmt.Errorf("consumer %d: target_price must be at least 1", i)
		}
	}
	return nil
}

// BuildFactories instantiates the configured factories in order.
func (c *Config) BuildFactories() ([]*factory.Factory, error) {
	factories := make([]*factory.Factory, 0, len(c.Factories))
	for i, fc := range c.Factories {
		inputs, err := parseWareAmounts(fc.Inputs)
		if err != nil {
			return nil, fmt.Errorf("factory %d: %w", i, err)
		}
		outputs, err := parseWareAmounts(fc.Outputs)
		if err != nil {
			return nil, fmt.Errorf("factory %d: %w", i, err)
		}
		recipe := economy.NewRecipe(inputs, outputs, economy.NewProductionRate(fc.RatePerHour))
		template := factory.NewTemplate(recipe, economy.Money(fc.HourlyWages))
		factories = append(factories, factory.New(template, economy.Money(fc.StartingBalance)))
	}
	return factories, nil
}

// BuildConsumers instantiates the configured consumers in order.
func (c *Config) BuildConsumers() ([]*consumer.Consumer, error) {
	consumers := make([]*consumer.Consumer, 0, len(c.Consumers))
	for i, cc := range c.Consumers {
		ware, err := economy.ParseWare(cc.Ware)
		if err != nil {
			return nil, fmt.Errorf("consumer %d: %w", i, err)
		}
		consumers = append(consumers, consumer.New(
			economy.NewWareAmount(ware, cc.Amount),
			economy.Money(cc.TargetPrice),
			cc.Decay,
		))
	}
	return consumers, nil
}

func parseWareAmounts(configs []WareAmountConfig) ([]economy.WareAmount, error) {
	amounts := make([]economy.WareAmount, 0, len(configs))
	for _, wc := range configs {
		ware, err := economy.ParseWare(wc.Ware)
		if err != nil {
			return nil, err
		}
		amounts = append(amounts, economy.NewWareAmount(ware, wc.Amount))
	}
	return amounts, nil
}
