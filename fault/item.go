package fault

import "fmt"

// Item names one of the 24 fault conditions carried by the three fail status
// registers. Items are ordered by register, then by bit.
type Item int

// Fail status register 1.
const (
	OverCurrentDischarge65A Item = iota
	OverCurrentDischarge90A
	OverChargeProtection
	OverCurrentCharge45A
	OverTemperatureDischarge
	LowVoltage
	FullyCharged
	OverCurrentDischarge200A
)

// Fail status register 2.
const (
	OverCurrentDischarge110A Item = iota + 8
	OverCurrentCharge65A
	OverTemperatureCharge
	CellUnbalance
	OverCharge
	DeepDischarge
	FuseBlown
	FETUncontrolled
)

// Fail status register 3.
const (
	SelfTestClockFail Item = iota + 16
	SelfTestROMFail
	SelfTestRegisterFail
	SelfTestPSWRegisterFail
	SelfTestStackRegisterFail
	SelfTestCSRegisterFail
	SelfTestESRegisterFail
	SelfTestRAMFailDFFail
)

// NumItems is the number of named faults.
const NumItems = 24

type itemInfo struct {
	name     string
	register int
	bit      uint
}

var itemTable = [NumItems]itemInfo{
	OverCurrentDischarge65A:  {"over-current-discharge-65a", 1, status1OverCurrentDischarge65ABit},
	OverCurrentDischarge90A:  {"over-current-discharge-90a", 1, status1OverCurrentDischarge90ABit},
	OverChargeProtection:     {"over-charge-protection", 1, status1OverChargeProtectionBit},
	OverCurrentCharge45A:     {"over-current-charge-45a", 1, status1OverCurrentCharge45ABit},
	OverTemperatureDischarge: {"over-temperature-discharge", 1, status1OverTemperatureDischargeBit},
	LowVoltage:               {"low-voltage", 1, status1LowVoltageBit},
	FullyCharged:             {"fully-charged", 1, status1FullyChargedBit},
	OverCurrentDischarge200A: {"over-current-discharge-200a", 1, status1OverCurrentDischarge200ABit},

	OverCurrentDischarge110A: {"over-current-discharge-110a", 2, status2OverCurrentDischarge110ABit},
	OverCurrentCharge65A:     {"over-current-charge-65a", 2, status2OverCurrentCharge65ABit},
	OverTemperatureCharge:    {"over-temperature-charge", 2, status2OverTemperatureChargeBit},
	CellUnbalance:            {"cell-unbalance", 2, status2CellUnbalanceBit},
	OverCharge:               {"over-charge", 2, status2OverChargeBit},
	DeepDischarge:            {"deep-discharge", 2, status2DeepDischargeBit},
	FuseBlown:                {"fuse-blown", 2, status2FuseBlownBit},
	FETUncontrolled:          {"fet-uncontrolled", 2, status2FETUncontrolledBit},

	SelfTestClockFail:         {"self-test-clock-fail", 3, status3ClockFailBit},
	SelfTestROMFail:           {"self-test-rom-fail", 3, status3ROMFailBit},
	SelfTestRegisterFail:      {"self-test-register-fail", 3, status3RegisterFailBit},
	SelfTestPSWRegisterFail:   {"self-test-psw-register-fail", 3, status3PSWRegisterFailBit},
	SelfTestStackRegisterFail: {"self-test-stack-register-fail", 3, status3StackRegisterFailBit},
	SelfTestCSRegisterFail:    {"self-test-cs-register-fail", 3, status3CSRegisterFailBit},
	SelfTestESRegisterFail:    {"self-test-es-register-fail", 3, status3ESRegisterFailBit},
	SelfTestRAMFailDFFail:     {"self-test-ram-fail-df-fail", 3, status3RAMFailDFFailBit},
}

// Items returns all 24 items in register and bit order.
func Items() []Item {
	out := make([]Item, NumItems)
	for i := range out {
		out[i] = Item(i)
	}
	return out
}

// Valid reports whether i names a fault.
func (i Item) Valid() bool {
	return i >= 0 && i < NumItems
}

// Register returns the fail status register (1, 2 or 3) holding the item,
// or 0 for an invalid item.
func (i Item) Register() int {
	if !i.Valid() {
		return 0
	}
	return itemTable[i].register
}

// Bit returns the bit position of the item inside its register.
func (i Item) Bit() uint {
	if !i.Valid() {
		return 0
	}
	return itemTable[i].bit
}

func (i Item) String() string {
	if !i.Valid() {
		return fmt.Sprintf("item(%d)", int(i))
	}
	return itemTable[i].name
}

// MarshalText renders the item as its String form.
func (i Item) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}
