package protocol

import (
	"math"

	"github.com/moffa90/go-fortelion/fault"
)

// FrameView decodes physical quantities from a validated data frame.
//
// A quantity is only available when the frame's response command carries
// it; asking for anything else returns a *NoAppropriateDataError naming the
// commands that would. Values are decoded on every call, nothing is cached.
type FrameView struct {
	frame *DataFrame
}

// NewFrameView validates frame and returns a view over it.
func NewFrameView(frame *DataFrame) (*FrameView, error) {
	if err := frame.Validate(); err != nil {
		return nil, err
	}
	return &FrameView{frame: frame}, nil
}

// Command returns the response command of the underlying frame.
func (v *FrameView) Command() Command {
	return v.frame.Command()
}

// Frame returns the underlying data frame.
func (v *FrameView) Frame() *DataFrame {
	return v.frame
}

// locate finds the source of q for the frame's command and cuts its window
// out of the payload. The window is nil for derived quantities.
func (v *FrameView) locate(q quantity) (source, []byte, error) {
	cmd := v.frame.Command()
	for _, s := range layouts[q] {
		if s.command != cmd {
			continue
		}
		if s.derived {
			return s, nil, nil
		}
		payload := v.frame.Payload()
		if s.length == wholePayload {
			return s, payload, nil
		}
		window, err := cutSlice(payload, s.offset, s.length, q.String())
		return s, window, err
	}
	return source{}, nil, &NoAppropriateDataError{
		Quantity: q.String(),
		Command:  cmd,
		Accepted: acceptedCommands(q),
	}
}

func (v *FrameView) readByte(q quantity) (byte, error) {
	_, window, err := v.locate(q)
	if err != nil {
		return 0, err
	}
	if len(window) < 1 {
		return 0, &DataBytesShortageError{What: q.String(), Need: 1, Have: len(window)}
	}
	return window[0], nil
}

// readUnsigned decodes a big-endian unsigned value and applies the source
// factor.
func (v *FrameView) readUnsigned(q quantity) (uint32, error) {
	s, window, err := v.locate(q)
	if err != nil {
		return 0, err
	}
	raw, err := bytesToUint16(window)
	if err != nil {
		return 0, err
	}
	return uint32(math.Round(float64(raw) * s.factor)), nil
}

// readSigned decodes a big-endian two's complement value and applies the
// source factor.
func (v *FrameView) readSigned(q quantity) (float64, error) {
	s, window, err := v.locate(q)
	if err != nil {
		return 0, err
	}
	raw, err := bytesToInt16(window)
	if err != nil {
		return 0, err
	}
	return float64(raw) * s.factor, nil
}

// CellVoltages returns the voltage of each cell in mV, in cell order.
func (v *FrameView) CellVoltages() ([]uint32, error) {
	_, window, err := v.locate(qtyCellVoltages)
	if err != nil {
		return nil, err
	}
	if len(window)%2 != 0 {
		return nil, &DataBytesShortageError{What: qtyCellVoltages.String(), Need: len(window) + 1, Have: len(window)}
	}

	voltages := make([]uint32, 0, len(window)/2)
	for i := 0; i < len(window); i += 2 {
		mv, err := bytesToUint16(window[i:])
		if err != nil {
			return nil, err
		}
		voltages = append(voltages, uint32(mv))
	}
	return voltages, nil
}

// Current returns the module current in mA. Positive values are charge,
// negative values are discharge.
func (v *FrameView) Current() (int32, error) {
	ma, err := v.readSigned(qtyCurrent)
	if err != nil {
		return 0, err
	}
	return int32(math.Round(ma)), nil
}

// Temperature returns the module temperature in °C. For summary data this is
// the maximum temperature.
func (v *FrameView) Temperature() (float64, error) {
	return v.readSigned(qtyTemperature)
}

// MinTemperature returns the minimum module temperature in °C. Only summary
// data carries it.
func (v *FrameView) MinTemperature() (float64, error) {
	return v.readSigned(qtyMinTemperature)
}

// RemainingCapacity returns the remaining capacity in mAh.
func (v *FrameView) RemainingCapacity() (uint32, error) {
	return v.readUnsigned(qtyRemainingCapacity)
}

// FullChargeCapacity returns the current full charge capacity in mAh.
func (v *FrameView) FullChargeCapacity() (uint32, error) {
	return v.readUnsigned(qtyFullChargeCapacity)
}

// DesignCapacity returns the design capacity in mAh.
func (v *FrameView) DesignCapacity() (uint32, error) {
	return v.readUnsigned(qtyDesignCapacity)
}

// AbsoluteStateOfCharge returns the remaining capacity as a percentage of
// the design capacity.
//
// Summary data carries the value directly. For BM information it is derived
// as round(100 * remaining / design).
func (v *FrameView) AbsoluteStateOfCharge() (uint32, error) {
	s, window, err := v.locate(qtyAbsoluteStateOfCharge)
	if err != nil {
		return 0, err
	}
	if !s.derived {
		return uint32(window[0]), nil
	}

	remaining, err := v.RemainingCapacity()
	if err != nil {
		return 0, err
	}
	design, err := v.DesignCapacity()
	if err != nil {
		return 0, err
	}
	if design == 0 {
		return 0, ErrZeroCapacity
	}
	return uint32(math.Round(100 * float64(remaining) / float64(design))), nil
}

// RelativeStateOfCharge returns the remaining capacity as a percentage of
// the full charge capacity.
//
// Summary data carries the value directly. For BM information it is derived
// as 100 * remaining / full with integer truncation.
func (v *FrameView) RelativeStateOfCharge() (uint32, error) {
	s, window, err := v.locate(qtyRelativeStateOfCharge)
	if err != nil {
		return 0, err
	}
	if !s.derived {
		return uint32(window[0]), nil
	}

	remaining, err := v.RemainingCapacity()
	if err != nil {
		return 0, err
	}
	full, err := v.FullChargeCapacity()
	if err != nil {
		return 0, err
	}
	if full == 0 {
		return 0, ErrZeroCapacity
	}
	return 100 * remaining / full, nil
}

// StateOfHealth returns the state of health in percent.
func (v *FrameView) StateOfHealth() (uint32, error) {
	b, err := v.readByte(qtyStateOfHealth)
	if err != nil {
		return 0, err
	}
	return uint32(b), nil
}

// ModuleVoltage returns the module voltage in mV. Summary data carries it
// directly; for BM information it is the sum of the cell voltages.
func (v *FrameView) ModuleVoltage() (uint32, error) {
	s, _, err := v.locate(qtyModuleVoltage)
	if err != nil {
		return 0, err
	}
	if !s.derived {
		return v.readUnsigned(qtyModuleVoltage)
	}

	cells, err := v.CellVoltages()
	if err != nil {
		return 0, err
	}
	var sum uint32
	for _, mv := range cells {
		sum += mv
	}
	return sum, nil
}

// FailStatus1 returns fail status register 1.
func (v *FrameView) FailStatus1() (fault.Status1, error) {
	b, err := v.readByte(qtyFailStatus1)
	return fault.Status1(b), err
}

// FailStatus2 returns fail status register 2.
func (v *FrameView) FailStatus2() (fault.Status2, error) {
	b, err := v.readByte(qtyFailStatus2)
	return fault.Status2(b), err
}

// FailStatus3 returns fail status register 3. Only summary data carries it.
func (v *FrameView) FailStatus3() (fault.Status3, error) {
	b, err := v.readByte(qtyFailStatus3)
	return fault.Status3(b), err
}

// VersionInformation returns the raw three version bytes.
func (v *FrameView) VersionInformation() (VersionInfo, error) {
	_, window, err := v.locate(qtyVersionInformation)
	if err != nil {
		return VersionInfo{}, err
	}
	var info VersionInfo
	if len(window) != len(info) {
		return VersionInfo{}, &DataBytesShortageError{What: qtyVersionInformation.String(), Need: len(info), Have: len(window)}
	}
	copy(info[:], window)
	return info, nil
}

var _ fault.Source = (*FrameView)(nil)
