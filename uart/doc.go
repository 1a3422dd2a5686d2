// Package uart opens the serial link to a Fortelion battery module.
//
// The line settings are fixed by the module and are not configurable:
//
//	port, err := uart.Open("/dev/ttyUSB0", 500*time.Millisecond)
//	if err != nil {
//	    return err
//	}
//	defer port.Close()
//
// A Port is an io.ReadWriteCloser and can be handed directly to bms.New.
package uart
