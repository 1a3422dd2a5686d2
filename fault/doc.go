// Package fault decodes the three Fortelion fail status registers.
//
// Each register is one byte whose eight bits name eight fault conditions.
// A bit that is clear decodes to OK and a bit that is set decodes to NG.
// Registers are only present in some responses; asking for a fault whose
// register the active response does not carry yields Unknown instead of an
// error.
//
// # Registers
//
//	bit  Status1                      Status2                     Status3
//	0    over-current discharge 65A   over-current discharge 110A self-test clock fail
//	1    over-current discharge 90A   over-current charge 65A     self-test ROM fail
//	2    over-charge protection       over-temperature charge     self-test register fail
//	3    over-current charge 45A      cell unbalance              self-test PSW register fail
//	4    over-temperature discharge   over-charge                 self-test stack register fail
//	5    low voltage                  deep discharge              self-test CS register fail
//	6    fully charged                fuse blown                  self-test ES register fail
//	7    over-current discharge 200A  FET uncontrolled            self-test RAM/DF fail
//
// # Usage
//
// Any type with FailStatus1/2/3 accessors is a Source; protocol.FrameView is
// the usual one:
//
//	view, err := protocol.NewFrameView(frame)
//	if err != nil {
//	    return err
//	}
//	if fault.StatusOf(view, fault.FuseBlown) == fault.NG {
//	    // ...
//	}
//
//	for item, state := range fault.All(view) {
//	    fmt.Printf("%-32s %s\n", item, state)
//	}
package fault
