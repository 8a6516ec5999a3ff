package models

import (
	"time"
)

// RunSummary records the statistics of one extraction run. It never holds
// the extracted bits themselves.
type RunSummary struct {
	// ID is the unique identifier for the run
	ID string

	// Mode is how rolls were read
	Mode Mode

	// Policy is how excess outcomes were handled
	Policy Policy

	// WordWidth is the accumulator word width in bits
	WordWidth uint

	// RollsRead is the number of rolls read from the input
	RollsRead int

	// RollsAccepted is the number of rolls that produced bits
	RollsAccepted int

	// RollsRejected is the number of well-formed rolls the extractor rejected
	RollsRejected int

	// RollsMalformed is the number of orientation tokens that were not two faces
	RollsMalformed int

	// BitsAppended is the number of entropy bits handed to the accumulator
	BitsAppended int

	// BitsFlushed is the number of bits delivered to the output
	BitsFlushed int

	// BitsDropped is the number of appended bits that never reached the output
	BitsDropped int

	// BytesWritten is the number of bytes delivered to the output
	BytesWritten int

	// StartedAt is when the run started
	StartedAt time.Time

	// FinishedAt is when the run finished
	FinishedAt time.Time

	// Error is the message of the error that ended the run, if any
	Error string
}
