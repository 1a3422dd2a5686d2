package protocol

// Frame structure constants per the Fortelion UART specification.
const (
	// CommandFrameStartCode marks the start of a request sent by the leader (0x05)
	CommandFrameStartCode = 0x05

	// DataFrameStartCode marks the start of a response sent by the battery module (0x02)
	DataFrameStartCode = 0x02

	// LeaderID identifies the requesting controller on the bus (0x01)
	LeaderID = 0x01

	// CommandFrameSize is the size of every request frame:
	// START(1) + LEADER(1) + CMD(1) + LEN(1) + CHECKSUM(1)
	CommandFrameSize = 5

	// DataFrameOverhead is the number of non-payload bytes in a response frame:
	// START(1) + LEADER(1) + CMD(1) + LEN(1) + CHECKSUM(1) + RESERVED(1)
	DataFrameOverhead = 6

	// DataOffset is the index of the first payload byte in a data frame
	DataOffset = 4
)

// Byte positions inside a data frame header.
const (
	startCodeIndex = 0
	leaderIDIndex  = 1
	commandIndex   = 2
	lengthIndex    = 3
)

// Serial link parameters. These are physical-link constants of the module,
// they are never negotiated.
const (
	// BaudRate is the fixed UART speed
	BaudRate = 38400

	// DataBits is the number of data bits per character
	DataBits = 8
)

// NumberOfCells is the cell count of an all-in-one battery module.
const NumberOfCells = 8

// Payload offsets in the BM information (0x10) response.
const (
	bmInfoFailStatus1Index        = 0
	bmInfoCellVoltageIndex        = 1
	bmInfoCurrentIndex            = 17
	bmInfoTemperatureIndex        = 19
	bmInfoRemainingCapacityIndex  = 21
	bmInfoFullChargeCapacityIndex = 23
	bmInfoDesignCapacityIndex     = 25
	bmInfoFailStatus2Index        = 27
	bmInfoStateOfHealthIndex      = 28
)

// Payload offsets in the summary data (0x20) response.
const (
	summaryFailStatus1Index           = 0
	summaryAbsoluteStateOfChargeIndex = 2
	summaryRelativeStateOfChargeIndex = 3
	summaryStateOfHealthIndex         = 4
	summaryCurrentIndex               = 7
	summaryModuleVoltageMaxIndex      = 11
	summaryFailStatus2Index           = 13
	summaryFailStatus3Index           = 14
	summaryDesignCapacityIndex        = 17
	summaryFullChargeCapacityIndex    = 19
	summaryRemainingCapacityIndex     = 21
	summaryMaxTemperatureIndex        = 32
	summaryMinTemperatureIndex        = 35
)
