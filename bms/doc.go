// Package bms talks to a Fortelion battery module over any io.ReadWriter.
//
// # Overview
//
// Each exchange sends one command frame and reads exactly one data frame:
//   - the request is built by protocol.BuildCommandFrame
//   - the response buffer is sized from the command's data length
//   - the response is validated before it is returned
//
// # Basic Usage
//
//	port, err := uart.Open("/dev/ttyUSB0", time.Second)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer port.Close()
//
//	client := bms.New(port)
//
//	view, err := client.Read(context.Background(), protocol.CmdBMInformation)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cells, _ := view.CellVoltages()
//
// Snapshot combines summary data and BM information into one reading:
//
//	snap, err := client.Snapshot(ctx)
//
// # Configuration Options
//
//	client := bms.New(port,
//	    bms.WithLogger(myLogger),
//	    bms.WithCommandDelay(20*time.Millisecond),
//	    bms.WithExchangeCallback(func(x bms.Exchange) {
//	        log.Printf("%s: % X", x.Command, x.Response)
//	    }),
//	)
//
// # Error Handling
//
// Transport failures are reported as *SendError or *ReceiveError; a
// malformed response is reported as *protocol.FrameError. Nothing is
// retried.
//
//	var re *bms.ReceiveError
//	if errors.As(err, &re) && errors.Is(err, uart.ErrTimeout) {
//	    // module did not answer in time
//	}
//
// # Thread Safety
//
// A Client must not be shared between goroutines. The link carries one
// exchange at a time and Client does not serialize callers.
package bms
