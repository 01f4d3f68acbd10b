// Package rates loads the freight rate table used by the estimator.
//
// A rate file overrides individual entries of the default table:
//
//	vehicles:
//	  truck:
//	    consumption_rate: 4.5
//	    maintenance_rate: 0.85
//	    driver_rate: 1.6
//	urgency:
//	  high: 0.35
//
// Keys accept the same labels as the API (canonical names or the Portuguese
// dashboard labels). Omitted classes and levels keep their default values.
package rates

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ecolog/freightquote/internal/config"
	"github.com/ecolog/freightquote/internal/domain"
	"github.com/ecolog/freightquote/internal/observability"
)

type fileFormat struct {
	Vehicles map[string]vehicleOverride `yaml:"vehicles"`
	Urgency  map[string]float64         `yaml:"urgency"`
}

type vehicleOverride struct {
	ConsumptionRate *float64 `yaml:"consumption_rate"`
	MaintenanceRate *float64 `yaml:"maintenance_rate"`
	DriverRate      *float64 `yaml:"driver_rate"`
}

func (o vehicleOverride) apply(rates domain.VehicleRates) domain.VehicleRates {
	if o.ConsumptionRate != nil {
		rates.ConsumptionRate = *o.ConsumptionRate
	}
	if o.MaintenanceRate != nil {
		rates.MaintenanceRate = *o.MaintenanceRate
	}
	if o.DriverRate != nil {
		rates.DriverRate = *o.DriverRate
	}
	return rates
}

// Load returns the table configured by cfg: the default table when no file is set.
func Load(cfg *config.RatesConfig) (domain.RateTable, error) {
	if cfg == nil || cfg.File == "" {
		return domain.DefaultRateTable(), nil
	}

	table, err := LoadFile(cfg.File)
	if err != nil {
		return domain.RateTable{}, err
	}

	observability.FromContext(context.Background()).Info("loaded rate table",
		observability.String("file", cfg.File))
	return table, nil
}

// LoadFile reads a YAML rate file and merges it over the default table.
func LoadFile(path string) (domain.RateTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.RateTable{}, fmt.Errorf("failed to open rate file: %w", err)
	}
	defer f.Close()

	table, err := Parse(f)
	if err != nil {
		return domain.RateTable{}, fmt.Errorf("rate file %s: %w", path, err)
	}
	return table, nil
}

// Parse decodes a YAML rate document and merges it over the default table.
func Parse(r io.Reader) (domain.RateTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return domain.RateTable{}, fmt.Errorf("failed to read rates: %w", err)
	}

	var doc fileFormat
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if decodeErr := decoder.Decode(&doc); decodeErr != nil && !errors.Is(decodeErr, io.EOF) {
		return domain.RateTable{}, fmt.Errorf("failed to decode rates: %w", decodeErr)
	}

	defaults := domain.DefaultRateTable()
	vehicles := defaults.Vehicles()
	urgency := defaults.UrgencyFactors()

	seenVehicles := make(map[domain.VehicleClass]string, len(doc.Vehicles))
	for label, entry := range doc.Vehicles {
		class, parseErr := domain.ParseVehicleClass(label)
		if parseErr != nil {
			return domain.RateTable{}, parseErr
		}
		if other, dup := seenVehicles[class]; dup {
			return domain.RateTable{}, duplicateKeyError("vehicles", class.String(), other, label)
		}
		seenVehicles[class] = label
		vehicles[class] = entry.apply(vehicles[class])
	}

	seenUrgency := make(map[domain.UrgencyLevel]string, len(doc.Urgency))
	for label, factor := range doc.Urgency {
		level, parseErr := domain.ParseUrgencyLevel(label)
		if parseErr != nil {
			return domain.RateTable{}, parseErr
		}
		if other, dup := seenUrgency[level]; dup {
			return domain.RateTable{}, duplicateKeyError("urgency", level.String(), other, label)
		}
		seenUrgency[level] = label
		urgency[level] = factor
	}

	return domain.NewRateTable(vehicles, urgency)
}

func duplicateKeyError(section, canonical, first, second string) error {
	if first > second {
		first, second = second, first
	}
	return fmt.Errorf("%s: %q and %q both set %s", section, first, second, canonical)
}
