package invoiceform

import "time"

// captureConfig holds internal configuration for a ChromeCapturer.
type captureConfig struct {
	chromePath   string
	autoDownload bool
	timeout      time.Duration
	noSandbox    bool
	headless     string
	selector     string
	width        int64
	height       int64
	scale        float64
	logger       Logger
}

func defaultConfig() captureConfig {
	return captureConfig{
		timeout:  30 * time.Second,
		headless: "new",
		selector: "#invoice",
		width:    1024,
		height:   768,
		scale:    1,
		logger:   NopLogger{},
	}
}

// Option configures a [ChromeCapturer].
type Option func(*captureConfig)

// WithChromePath sets the path to the Chrome or Chromium executable.
// By default the library searches standard locations automatically.
func WithChromePath(path string) Option {
	return func(c *captureConfig) {
		c.chromePath = path
	}
}

// WithAutoDownload downloads a compatible Chromium build when no
// explicit path is configured. The binary is cached between runs.
func WithAutoDownload() Option {
	return func(c *captureConfig) {
		c.autoDownload = true
	}
}

// WithTimeout sets the maximum duration for a single capture.
// Defaults to 30 seconds. A zero or negative value disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *captureConfig) {
		c.timeout = d
	}
}

// WithNoSandbox disables the Chrome sandbox. This is required when
// running as root, for example inside Docker containers.
func WithNoSandbox() Option {
	return func(c *captureConfig) {
		c.noSandbox = true
	}
}

// WithSelector sets the CSS selector of the element to capture.
// Defaults to "#invoice".
func WithSelector(sel string) Option {
	return func(c *captureConfig) {
		if sel != "" {
			c.selector = sel
		}
	}
}

// WithViewport sets the browser window size in CSS pixels used for
// layout. The capture itself is clipped to the selected element.
func WithViewport(width, height int64) Option {
	return func(c *captureConfig) {
		if width > 0 {
			c.width = width
		}
		if height > 0 {
			c.height = height
		}
	}
}

// WithDeviceScale sets the device pixel ratio of the capture. Values
// above 1 produce sharper images at the cost of larger PDFs.
func WithDeviceScale(scale float64) Option {
	return func(c *captureConfig) {
		if scale > 0 {
			c.scale = scale
		}
	}
}

// WithLogger sets the logger used for capture diagnostics.
func WithLogger(l Logger) Option {
	return func(c *captureConfig) {
		if l != nil {
			c.logger = l
		}
	}
}
