package driver

import (
	"fmt"
	"strings"
)

var HEX = [16]string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "A", "B", "C", "D", "E", "F"}

func HexData(data uint8) string {
	return fmt.Sprintf("%s%s", HEX[data>>4], HEX[data&15])
}

// HexBytes renders bs as space separated hex pairs.
func HexBytes(bs []byte) string {
	parts := make([]string, len(bs))
	for i, b := range bs {
		parts[i] = HexData(b)
	}
	return strings.Join(parts, " ")
}

// DumpLine describes an event for the keys listing. Raw mode turns off
// output post-processing, so lines end in CR LF.
func DumpLine(ev Event) string {
	switch ev.Kind {
	case EventRaw:
		return fmt.Sprintf("%-20s raw %q\r\n", HexBytes(ev.Raw), ev.Raw)
	case EventMouse:
		return fmt.Sprintf("%-20s %s\r\n", HexBytes(ev.Raw), ev.Mouse)
	default:
		return fmt.Sprintf("%-20s %s\r\n", HexBytes(ev.Raw), ev.Key)
	}
}
