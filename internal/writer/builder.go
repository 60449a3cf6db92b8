// internal/writer/builder.go
package writer

import (
	"errors"
	"fmt"
	"time"

	cfg "github.com/tamzrod/sedscan/internal/config"
	"github.com/tamzrod/sedscan/internal/writer/ingest"
	wmodbus "github.com/tamzrod/sedscan/internal/writer/modbus"
)

// BuildPlan converts one device config into a Writer Plan.
// Assumes config has already passed Validate and Normalize.
func BuildPlan(d cfg.DeviceConfig) (Plan, error) {
	if d.ID == "" {
		return Plan{}, errors.New("writer: device.id required")
	}

	plan := Plan{
		DeviceID:   d.ID,
		DeviceName: d.DeviceName,
	}

	for i, t := range d.Targets {
		if t.StatusSlot == nil {
			return Plan{}, fmt.Errorf("writer: device %s target[%d]: status_slot required", d.ID, i)
		}
		plan.Targets = append(plan.Targets, TargetPlan{
			Endpoint: t.Endpoint,
			Protocol: t.Protocol,
			UnitID:   t.UnitID,
			BaseSlot: *t.StatusSlot,
		})
	}

	return plan, nil
}

type closer interface {
	Close() error
}

// BuildEndpointClients creates one client per unique endpoint and protocol.
func BuildEndpointClients(d cfg.DeviceConfig) (map[string]EndpointClient, func() error, error) {
	clients := make(map[string]EndpointClient)
	var closers []func() error

	closeAll := func() error {
		var last error
		for _, fn := range closers {
			if err := fn(); err != nil {
				last = err
			}
		}
		return last
	}

	for _, t := range d.Targets {
		key := ClientKey(t.Endpoint, t.Protocol)
		if _, ok := clients[key]; ok {
			continue
		}

		timeout := time.Duration(t.TimeoutMs) * time.Millisecond

		var (
			c   EndpointClient
			err error
		)
		switch t.Protocol {
		case cfg.ProtocolModbus:
			c, err = wmodbus.NewEndpointClient(wmodbus.Config{Endpoint: t.Endpoint, Timeout: timeout})
		case cfg.ProtocolIngest:
			c, err = ingest.NewEndpointClient(ingest.Config{Endpoint: t.Endpoint, Timeout: timeout})
		default:
			err = fmt.Errorf("writer: unsupported protocol %q", t.Protocol)
		}
		if err != nil {
			_ = closeAll()
			return nil, nil, err
		}

		clients[key] = c
		if cl, ok := c.(closer); ok {
			closers = append(closers, cl.Close)
		}
	}

	return clients, closeAll, nil
}
