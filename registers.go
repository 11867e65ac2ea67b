package max7219

import "fmt"

// Opcode is the register address half of a 16 bit MAX7219 word.
type Opcode byte

const (
	NoOp        Opcode = 0x00
	Digit0      Opcode = 0x01 // Row 0, rows 1-7 follow at Digit0+row
	DecodeMode  Opcode = 0x09
	Intensity   Opcode = 0x0A
	ScanLimit   Opcode = 0x0B
	ShutdownReg Opcode = 0x0C
	DisplayTest Opcode = 0x0F
)

// RowOpcode returns the digit register holding row.
func RowOpcode(row int) Opcode {
	return Digit0 + Opcode(row)
}

func (o Opcode) String() string {
	switch {
	case o == NoOp:
		return "NoOp"
	case o >= Digit0 && o <= Digit0+7:
		return fmt.Sprintf("Digit%d", o-Digit0)
	case o == DecodeMode:
		return "DecodeMode"
	case o == Intensity:
		return "Intensity"
	case o == ScanLimit:
		return "ScanLimit"
	case o == ShutdownReg:
		return "Shutdown"
	case o == DisplayTest:
		return "DisplayTest"
	}
	return fmt.Sprintf("Opcode(0x%02X)", byte(o))
}

// Decode selects 7-segment Code B decoding per digit. Matrix use wants
// DecodeNone.
type Decode byte

const (
	DecodeNone Decode = 0x00
	DecodeB    Decode = 0xFF
)

// Register values.
const (
	shutdownOn  byte = 0x00 // Datasheet: D0=0 is shutdown mode.
	shutdownOff byte = 0x01

	// MaxIntensity is the highest duty cycle step.
	MaxIntensity = 15
	// DefaultIntensity is the mid-level brightness applied by Init.
	DefaultIntensity = 8
	// MaxScanLimit scans all eight rows.
	MaxScanLimit = 7
)

const (
	// Rows and Columns of a single cell.
	Rows    = 8
	Columns = 8
	// MaxCells bounds the status buffer.
	MaxCells = 8
	// DefaultCells is the two-cell board layout.
	DefaultCells = 2
)
