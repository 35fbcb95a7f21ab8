package declrom

import "fmt"

// RomErr reports problems with the contents of a declaration ROM image.
type RomErr string

func (o *RomErr) Error() string {
	return string(*o)
}

func newRomErr(format string, a ...interface{}) *RomErr {
	err := RomErr(fmt.Sprintf(format, a...))
	return &err
}
