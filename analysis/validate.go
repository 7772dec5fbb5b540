package analysis

import (
	"fmt"
	"net/url"

	"github.com/pagelens/pagelens/capture"
)

const maxURLLen = 4096

// allowedDevices is the set of valid device_type values.
var allowedDevices = map[string]capture.Device{
	"desktop": capture.DeviceDesktop,
	"tablet":  capture.DeviceTablet,
	"mobile":  capture.DeviceMobile,
}

// validateInput checks the request fields before any capture work starts.
// An empty device defaults to desktop.
func validateInput(rawURL, device string) (capture.Device, error) {
	if rawURL == "" {
		return "", fmt.Errorf("%w: url is required", ErrInvalidInput)
	}
	if len(rawURL) > maxURLLen {
		return "", fmt.Errorf("%w: url exceeds %d characters", ErrInvalidInput, maxURLLen)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: url is not parseable", ErrInvalidInput)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: url scheme must be http or https", ErrInvalidInput)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: url has no host", ErrInvalidInput)
	}

	if device == "" {
		return capture.DeviceDesktop, nil
	}
	d, ok := allowedDevices[device]
	if !ok {
		return "", fmt.Errorf("%w: unknown device_type %q", ErrInvalidInput, device)
	}
	return d, nil
}
