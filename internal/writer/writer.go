// internal/writer/writer.go
package writer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tamzrod/sedscan/internal/status"
)

// EndpointClient is the exact contract the writer uses.
// Both the Modbus and the raw ingest clients implement it.
type EndpointClient interface {
	WriteRegisters(area byte, unitID uint8, addr uint16, regs []uint16) error
}

type writerImpl struct {
	plan    Plan
	targets []*deviceStatusWriter
}

// New builds the fan-out writer for one device.
// clients is keyed by ClientKey(endpoint, protocol).
func New(plan Plan, clients map[string]EndpointClient) Writer {
	w := &writerImpl{plan: plan}
	for _, t := range plan.Targets {
		cli := clients[ClientKey(t.Endpoint, t.Protocol)]
		w.targets = append(w.targets, NewDeviceStatusWriter(t, plan.DeviceName, cli))
	}
	return w
}

// WriteStatus writes s into every target. A failing target does not stop the others.
func (w *writerImpl) WriteStatus(s status.Snapshot) error {
	var errs []string

	for _, sw := range w.targets {
		if err := sw.WriteStatus(s); err != nil {
			errs = append(errs, fmt.Sprintf(
				"writer: device=%s ep=%s unit=%d slot=%d err=%v",
				w.plan.DeviceID, sw.target.Endpoint, sw.target.UnitID, sw.target.BaseSlot, err,
			))
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, " | "))
	}

	return nil
}

// ClientKey identifies one endpoint client.
func ClientKey(endpoint, protocol string) string {
	return protocol + "://" + endpoint
}
