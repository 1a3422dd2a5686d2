package protocol

// quantity is a physical value or register that a frame may carry.
type quantity int

const (
	qtyCellVoltages quantity = iota
	qtyCurrent
	qtyTemperature
	qtyMinTemperature
	qtyRemainingCapacity
	qtyFullChargeCapacity
	qtyDesignCapacity
	qtyAbsoluteStateOfCharge
	qtyRelativeStateOfCharge
	qtyStateOfHealth
	qtyModuleVoltage
	qtyFailStatus1
	qtyFailStatus2
	qtyFailStatus3
	qtyVersionInformation
)

var quantityNames = map[quantity]string{
	qtyCellVoltages:          "cell voltages",
	qtyCurrent:               "current",
	qtyTemperature:           "temperature",
	qtyMinTemperature:        "minimum temperature",
	qtyRemainingCapacity:     "remaining capacity",
	qtyFullChargeCapacity:    "full charge capacity",
	qtyDesignCapacity:        "design capacity",
	qtyAbsoluteStateOfCharge: "absolute state of charge",
	qtyRelativeStateOfCharge: "relative state of charge",
	qtyStateOfHealth:         "state of health",
	qtyModuleVoltage:         "module voltage",
	qtyFailStatus1:           "fail status 1",
	qtyFailStatus2:           "fail status 2",
	qtyFailStatus3:           "fail status 3",
	qtyVersionInformation:    "version information",
}

func (q quantity) String() string {
	return quantityNames[q]
}

// wholePayload selects the entire payload of the response.
const wholePayload = -1

// source locates a quantity in the payload of one response command.
type source struct {
	command Command

	// offset and length select the payload window; length may be wholePayload
	offset int
	length int

	// factor converts the raw integer to the quantity's unit
	factor float64

	// derived quantities are computed from other quantities of the same frame
	derived bool
}

// layouts maps each quantity to the response commands that carry it.
// The dedicated command comes first, then BM information, then summary data.
// Offsets differ between the BM information and summary layouts; neither is
// a subset of the other.
var layouts = map[quantity][]source{
	qtyCellVoltages: {
		{command: CmdCellVoltage, length: wholePayload, factor: 1},
		{command: CmdBMInformation, offset: bmInfoCellVoltageIndex, length: NumberOfCells * 2, factor: 1},
	},
	qtyCurrent: {
		{command: CmdCurrent, length: wholePayload, factor: 1},
		{command: CmdBMInformation, offset: bmInfoCurrentIndex, length: 2, factor: 10},
		{command: CmdSummaryData, offset: summaryCurrentIndex, length: 2, factor: 10},
	},
	qtyTemperature: {
		{command: CmdTemperature, length: wholePayload, factor: 1},
		{command: CmdBMInformation, offset: bmInfoTemperatureIndex, length: 2, factor: 0.1},
		{command: CmdSummaryData, offset: summaryMaxTemperatureIndex, length: 2, factor: 0.1},
	},
	qtyMinTemperature: {
		{command: CmdSummaryData, offset: summaryMinTemperatureIndex, length: 2, factor: 0.1},
	},
	qtyRemainingCapacity: {
		{command: CmdRemainingCapacity, length: wholePayload, factor: 1},
		{command: CmdBMInformation, offset: bmInfoRemainingCapacityIndex, length: 2, factor: 1},
		{command: CmdSummaryData, offset: summaryRemainingCapacityIndex, length: 2, factor: 10},
	},
	qtyFullChargeCapacity: {
		{command: CmdFullChargeCapacity, length: wholePayload, factor: 1},
		{command: CmdBMInformation, offset: bmInfoFullChargeCapacityIndex, length: 2, factor: 1},
		{command: CmdSummaryData, offset: summaryFullChargeCapacityIndex, length: 2, factor: 10},
	},
	qtyDesignCapacity: {
		{command: CmdDesignCapacity, length: wholePayload, factor: 1},
		{command: CmdBMInformation, offset: bmInfoDesignCapacityIndex, length: 2, factor: 1},
		{command: CmdSummaryData, offset: summaryDesignCapacityIndex, length: 2, factor: 10},
	},
	qtyAbsoluteStateOfCharge: {
		{command: CmdBMInformation, derived: true},
		{command: CmdSummaryData, offset: summaryAbsoluteStateOfChargeIndex, length: 1, factor: 1},
	},
	qtyRelativeStateOfCharge: {
		{command: CmdBMInformation, derived: true},
		{command: CmdSummaryData, offset: summaryRelativeStateOfChargeIndex, length: 1, factor: 1},
	},
	qtyStateOfHealth: {
		{command: CmdStateOfHealth, offset: 0, length: 1, factor: 1},
		{command: CmdBMInformation, offset: bmInfoStateOfHealthIndex, length: 1, factor: 1},
		{command: CmdSummaryData, offset: summaryStateOfHealthIndex, length: 1, factor: 1},
	},
	qtyModuleVoltage: {
		{command: CmdBMInformation, derived: true},
		{command: CmdSummaryData, offset: summaryModuleVoltageMaxIndex, length: 2, factor: 1},
	},
	qtyFailStatus1: {
		{command: CmdFailStatus1, offset: 0, length: 1},
		{command: CmdBMInformation, offset: bmInfoFailStatus1Index, length: 1},
		{command: CmdSummaryData, offset: summaryFailStatus1Index, length: 1},
	},
	qtyFailStatus2: {
		{command: CmdFailStatus2, offset: 0, length: 1},
		{command: CmdBMInformation, offset: bmInfoFailStatus2Index, length: 1},
		{command: CmdSummaryData, offset: summaryFailStatus2Index, length: 1},
	},
	qtyFailStatus3: {
		{command: CmdSummaryData, offset: summaryFailStatus3Index, length: 1},
	},
	qtyVersionInformation: {
		{command: CmdVersionInformation, length: wholePayload},
	},
}

// acceptedCommands returns the commands that carry q, in table order.
func acceptedCommands(q quantity) []Command {
	sources := layouts[q]
	out := make([]Command, len(sources))
	for i, s := range sources {
		out[i] = s.command
	}
	return out
}
