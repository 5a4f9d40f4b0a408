package serialport

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidBaudRates lists the line speeds the monitor accepts.
var ValidBaudRates = []int{300, 1200, 2400, 4800, 9600, 19200, 38400, 57600, 115200}

// ParseBaud parses and validates a baud rate argument.
func ParseBaud(s string) (int, error) {
	baud, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("baud rate must be a number, one of %v", ValidBaudRates)
	}
	if err := ValidateBaud(baud); err != nil {
		return 0, err
	}
	return baud, nil
}

// ValidateBaud checks the rate against the allowed set.
func ValidateBaud(baud int) error {
	for _, b := range ValidBaudRates {
		if b == baud {
			return nil
		}
	}
	return fmt.Errorf("invalid baud rate: %d. Must be one of %v", baud, ValidBaudRates)
}

// ValidatePort checks that the port looks like a serial device path:
// /dev/tty* on Unix-likes, COM* on Windows.
func ValidatePort(port string) error {
	if strings.HasPrefix(port, "/dev/tty") {
		return nil
	}
	if strings.HasPrefix(strings.ToUpper(port), "COM") {
		return nil
	}
	return fmt.Errorf("invalid port: %s. Must start with '/dev/tty' (Unix) or 'COM' (Windows)", port)
}
