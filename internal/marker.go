package internal

// Fixed markers of the format block that ends every declaration ROM.
// Slot Manager rejects a card whose markers differ from these values.
const (
	// DirectoryMarker occupies the high byte of the directory offset field.
	DirectoryMarker = 0xFF
	// FormatRevision is the revision level (high byte) and format (low byte).
	FormatRevision uint16 = 0x0101
	// TestPattern is used by the firmware to verify the byte lanes.
	TestPattern uint32 = 0x5A932BC7
	// ByteLanes declares that all four byte lanes of the bus are in use.
	ByteLanes uint16 = 0x000F
)
