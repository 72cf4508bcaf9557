package wrapper

// Option configures a Wrapper.
type Option func(*config)

type config struct {
	tracker   *Tracker
	sysfsRoot string
	signature string
}

func defaultConfig() config {
	return config{
		sysfsRoot: DefaultSysfsRoot,
		signature: DefaultSignature,
	}
}

// WithTracker shares t with the wrapper instead of allocating a new one.
func WithTracker(t *Tracker) Option {
	return func(c *config) {
		if t != nil {
			c.tracker = t
		}
	}
}

// WithSysfsRoot changes where the classifier looks up /dev/char links.
func WithSysfsRoot(root string) Option {
	return func(c *config) {
		c.sysfsRoot = root
	}
}

// WithSignature changes the link target segment that identifies a target
// device.
func WithSignature(signature string) Option {
	return func(c *config) {
		if signature != "" {
			c.signature = signature
		}
	}
}
