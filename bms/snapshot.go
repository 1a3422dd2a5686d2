package bms

import (
	"context"
	"fmt"
	"time"

	"github.com/moffa90/go-fortelion/fault"
	"github.com/moffa90/go-fortelion/protocol"
)

// Snapshot is a complete reading of a battery module.
type Snapshot struct {
	Time time.Time `json:"time" yaml:"time"`

	// CellVoltages is in mV, in cell order
	CellVoltages  []uint32 `json:"cell_voltages_mv" yaml:"cell_voltages_mv"`
	ModuleVoltage uint32   `json:"module_voltage_mv" yaml:"module_voltage_mv"`

	// Current is in mA; positive is charge
	Current int32 `json:"current_ma" yaml:"current_ma"`

	MaxTemperature float64 `json:"max_temperature_c" yaml:"max_temperature_c"`
	MinTemperature float64 `json:"min_temperature_c" yaml:"min_temperature_c"`

	RemainingCapacity  uint32 `json:"remaining_capacity_mah" yaml:"remaining_capacity_mah"`
	FullChargeCapacity uint32 `json:"full_charge_capacity_mah" yaml:"full_charge_capacity_mah"`
	DesignCapacity     uint32 `json:"design_capacity_mah" yaml:"design_capacity_mah"`

	AbsoluteStateOfCharge uint32 `json:"absolute_state_of_charge" yaml:"absolute_state_of_charge"`
	RelativeStateOfCharge uint32 `json:"relative_state_of_charge" yaml:"relative_state_of_charge"`
	StateOfHealth         uint32 `json:"state_of_health" yaml:"state_of_health"`

	Faults []fault.Reading `json:"faults" yaml:"faults"`
}

// ActiveFaults returns the items of the snapshot that are in the NG state.
func (s *Snapshot) ActiveFaults() []fault.Item {
	var out []fault.Item
	for _, r := range s.Faults {
		if r.State == fault.NG {
			out = append(out, r.Item)
		}
	}
	return out
}

// Snapshot reads summary data and BM information and combines them.
// Summary data supplies every scalar and all three fail status registers;
// BM information supplies the cell voltages.
func (c *Client) Snapshot(ctx context.Context) (*Snapshot, error) {
	summary, err := c.Read(ctx, protocol.CmdSummaryData)
	if err != nil {
		return nil, fmt.Errorf("read summary data: %w", err)
	}

	info, err := c.Read(ctx, protocol.CmdBMInformation)
	if err != nil {
		return nil, fmt.Errorf("read bm information: %w", err)
	}

	snap := &Snapshot{Time: time.Now()}
	d := decoder{}

	snap.CellVoltages, d.err = info.CellVoltages()
	d.readUint(&snap.ModuleVoltage, summary.ModuleVoltage)
	d.readInt(&snap.Current, summary.Current)
	d.readFloat(&snap.MaxTemperature, summary.Temperature)
	d.readFloat(&snap.MinTemperature, summary.MinTemperature)
	d.readUint(&snap.RemainingCapacity, summary.RemainingCapacity)
	d.readUint(&snap.FullChargeCapacity, summary.FullChargeCapacity)
	d.readUint(&snap.DesignCapacity, summary.DesignCapacity)
	d.readUint(&snap.AbsoluteStateOfCharge, summary.AbsoluteStateOfCharge)
	d.readUint(&snap.RelativeStateOfCharge, summary.RelativeStateOfCharge)
	d.readUint(&snap.StateOfHealth, summary.StateOfHealth)
	if d.err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", d.err)
	}

	snap.Faults = fault.Collect(summary)

	c.logInfo("snapshot",
		"relative_soc", snap.RelativeStateOfCharge,
		"current_ma", snap.Current,
		"active_faults", len(snap.ActiveFaults()),
	)

	return snap, nil
}

// decoder keeps the first accessor error and skips the rest.
type decoder struct {
	err error
}

func (d *decoder) readUint(dst *uint32, get func() (uint32, error)) {
	if d.err == nil {
		*dst, d.err = get()
	}
}

func (d *decoder) readInt(dst *int32, get func() (int32, error)) {
	if d.err == nil {
		*dst, d.err = get()
	}
}

func (d *decoder) readFloat(dst *float64, get func() (float64, error)) {
	if d.err == nil {
		*dst, d.err = get()
	}
}
