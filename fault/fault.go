package fault

import "iter"

// Source provides the raw fail status registers, typically a decoded
// response frame. A register that the source cannot provide is reported as
// an error.
type Source interface {
	FailStatus1() (Status1, error)
	FailStatus2() (Status2, error)
	FailStatus3() (Status3, error)
}

// StatusOf returns the state of one fault. Missing registers are an expected
// condition for most response commands, so a register that cannot be read
// yields Unknown rather than an error.
func StatusOf(src Source, item Item) State {
	switch item.Register() {
	case 1:
		s, err := src.FailStatus1()
		if err != nil {
			return Unknown
		}
		return bitState(byte(s), item.Bit())
	case 2:
		s, err := src.FailStatus2()
		if err != nil {
			return Unknown
		}
		return bitState(byte(s), item.Bit())
	case 3:
		s, err := src.FailStatus3()
		if err != nil {
			return Unknown
		}
		return bitState(byte(s), item.Bit())
	default:
		return Unknown
	}
}

// All yields every item with its state, in Items order. Each state is read
// from src only when the sequence reaches it, and the sequence can be ranged
// over any number of times.
//
// Example:
//
//	for item, state := range fault.All(view) {
//	    if state == fault.NG {
//	        fmt.Println(item)
//	    }
//	}
func All(src Source) iter.Seq2[Item, State] {
	return func(yield func(Item, State) bool) {
		for i := Item(0); i < NumItems; i++ {
			if !yield(i, StatusOf(src, i)) {
				return
			}
		}
	}
}

// Reading pairs an item with its state.
type Reading struct {
	Item  Item  `json:"item" yaml:"item"`
	State State `json:"state" yaml:"state"`
}

// Collect reads all 24 states from src into a slice.
func Collect(src Source) []Reading {
	out := make([]Reading, 0, NumItems)
	for item, state := range All(src) {
		out = append(out, Reading{Item: item, State: state})
	}
	return out
}

// Active returns the items currently in the NG state.
func Active(src Source) []Item {
	var out []Item
	for item, state := range All(src) {
		if state == NG {
			out = append(out, item)
		}
	}
	return out
}
