package fault

// Status1 is fail status register 1.
type Status1 byte

// Status2 is fail status register 2.
type Status2 byte

// Status3 is fail status register 3 (self-test results).
type Status3 byte

// Bit positions in fail status register 1.
const (
	status1OverCurrentDischarge65ABit  = 0
	status1OverCurrentDischarge90ABit  = 1
	status1OverChargeProtectionBit     = 2
	status1OverCurrentCharge45ABit     = 3
	status1OverTemperatureDischargeBit = 4
	status1LowVoltageBit               = 5
	status1FullyChargedBit             = 6
	status1OverCurrentDischarge200ABit = 7
)

// Bit positions in fail status register 2.
const (
	status2OverCurrentDischarge110ABit = 0
	status2OverCurrentCharge65ABit     = 1
	status2OverTemperatureChargeBit    = 2
	status2CellUnbalanceBit            = 3
	status2OverChargeBit               = 4
	status2DeepDischargeBit            = 5
	status2FuseBlownBit                = 6
	status2FETUncontrolledBit          = 7
)

// Bit positions in fail status register 3.
const (
	status3ClockFailBit         = 0
	status3ROMFailBit           = 1
	status3RegisterFailBit      = 2
	status3PSWRegisterFailBit   = 3
	status3StackRegisterFailBit = 4
	status3CSRegisterFailBit    = 5
	status3ESRegisterFailBit    = 6
	status3RAMFailDFFailBit     = 7
)

// OverCurrentDischarge65A reports discharge over-current above 65 A, bit 0 of fail status register 1.
func (s Status1) OverCurrentDischarge65A() State {
	return bitState(byte(s), status1OverCurrentDischarge65ABit)
}

// OverCurrentDischarge90A reports discharge over-current above 90 A, bit 1 of fail status register 1.
func (s Status1) OverCurrentDischarge90A() State {
	return bitState(byte(s), status1OverCurrentDischarge90ABit)
}

// OverChargeProtection reports the over-charge protection, bit 2 of fail status register 1.
func (s Status1) OverChargeProtection() State {
	return bitState(byte(s), status1OverChargeProtectionBit)
}

// OverCurrentCharge45A reports charge over-current above 45 A, bit 3 of fail status register 1.
func (s Status1) OverCurrentCharge45A() State {
	return bitState(byte(s), status1OverCurrentCharge45ABit)
}

// OverTemperatureDischarge reports over-temperature while discharging, bit 4 of fail status register 1.
func (s Status1) OverTemperatureDischarge() State {
	return bitState(byte(s), status1OverTemperatureDischargeBit)
}

// LowVoltage reports low voltage, bit 5 of fail status register 1.
func (s Status1) LowVoltage() State {
	return bitState(byte(s), status1LowVoltageBit)
}

// FullyCharged reports the fully charged flag, bit 6 of fail status register 1.
func (s Status1) FullyCharged() State {
	return bitState(byte(s), status1FullyChargedBit)
}

// OverCurrentDischarge200A reports discharge over-current above 200 A, bit 7 of fail status register 1.
func (s Status1) OverCurrentDischarge200A() State {
	return bitState(byte(s), status1OverCurrentDischarge200ABit)
}

// OverCurrentDischarge110A reports discharge over-current above 110 A, bit 0 of fail status register 2.
func (s Status2) OverCurrentDischarge110A() State {
	return bitState(byte(s), status2OverCurrentDischarge110ABit)
}

// OverCurrentCharge65A reports charge over-current above 65 A, bit 1 of fail status register 2.
func (s Status2) OverCurrentCharge65A() State {
	return bitState(byte(s), status2OverCurrentCharge65ABit)
}

// OverTemperatureCharge reports over-temperature while charging, bit 2 of fail status register 2.
func (s Status2) OverTemperatureCharge() State {
	return bitState(byte(s), status2OverTemperatureChargeBit)
}

// CellUnbalance reports cell unbalance, bit 3 of fail status register 2.
func (s Status2) CellUnbalance() State {
	return bitState(byte(s), status2CellUnbalanceBit)
}

// OverCharge reports over-charge, bit 4 of fail status register 2.
func (s Status2) OverCharge() State {
	return bitState(byte(s), status2OverChargeBit)
}

// DeepDischarge reports deep discharge, bit 5 of fail status register 2.
func (s Status2) DeepDischarge() State {
	return bitState(byte(s), status2DeepDischargeBit)
}

// FuseBlown reports a blown fuse, bit 6 of fail status register 2.
func (s Status2) FuseBlown() State {
	return bitState(byte(s), status2FuseBlownBit)
}

// FETUncontrolled reports an uncontrollable FET, bit 7 of fail status register 2.
func (s Status2) FETUncontrolled() State {
	return bitState(byte(s), status2FETUncontrolledBit)
}

// SelfTestClockFail reports a clock self-test failure, bit 0 of fail status register 3.
func (s Status3) SelfTestClockFail() State {
	return bitState(byte(s), status3ClockFailBit)
}

// SelfTestROMFail reports a ROM self-test failure, bit 1 of fail status register 3.
func (s Status3) SelfTestROMFail() State {
	return bitState(byte(s), status3ROMFailBit)
}

// SelfTestRegisterFail reports a register self-test failure, bit 2 of fail status register 3.
func (s Status3) SelfTestRegisterFail() State {
	return bitState(byte(s), status3RegisterFailBit)
}

// SelfTestPSWRegisterFail reports a PSW register self-test failure, bit 3 of fail status register 3.
func (s Status3) SelfTestPSWRegisterFail() State {
	return bitState(byte(s), status3PSWRegisterFailBit)
}

// SelfTestStackRegisterFail reports a stack register self-test failure, bit 4 of fail status register 3.
func (s Status3) SelfTestStackRegisterFail() State {
	return bitState(byte(s), status3StackRegisterFailBit)
}

// SelfTestCSRegisterFail reports a CS register self-test failure, bit 5 of fail status register 3.
func (s Status3) SelfTestCSRegisterFail() State {
	return bitState(byte(s), status3CSRegisterFailBit)
}

// SelfTestESRegisterFail reports an ES register self-test failure, bit 6 of fail status register 3.
func (s Status3) SelfTestESRegisterFail() State {
	return bitState(byte(s), status3ESRegisterFailBit)
}

// SelfTestRAMFailDFFail reports a RAM or data flash self-test failure, bit 7 of fail status register 3.
func (s Status3) SelfTestRAMFailDFFail() State {
	return bitState(byte(s), status3RAMFailDFFailBit)
}
