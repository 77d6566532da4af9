package proc

import (
	"github.com/kbukum/pipekit/validation"
)

const (
	defaultShell      = "/bin/sh"
	defaultBufferSize = 64 << 10
)

// Config configures a process sink.
type Config struct {
	// Name identifies this sink instance in logs and metrics.
	// A short unique name is generated when empty.
	Name string `yaml:"name,omitempty" mapstructure:"name"`
	// ItemSize is the fixed record size in bytes. Established at
	// construction, immutable for the sink's lifetime.
	ItemSize int `yaml:"item_size" mapstructure:"item_size" validate:"required,gt=0"`
	// Command is the command line the child runs. It is handed to the
	// shell as a single argument, so pipelines and redirection work.
	Command string `yaml:"command" mapstructure:"command" validate:"required"`
	// Shell is the command interpreter. Defaults to /bin/sh.
	Shell string `yaml:"shell,omitempty" mapstructure:"shell"`
	// Unbuffered pushes records toward the kernel pipe after every
	// batch, trading throughput for child-visible latency.
	Unbuffered bool `yaml:"unbuffered,omitempty" mapstructure:"unbuffered"`
	// BufferSize is the capacity in bytes of the buffer between the
	// caller and the kernel pipe. Defaults to 64 KiB and is raised to
	// one record if ItemSize is larger.
	BufferSize int `yaml:"buffer_size,omitempty" mapstructure:"buffer_size" validate:"omitempty,gt=0"`
}

// ApplyDefaults applies default values to the sink configuration.
func (c *Config) ApplyDefaults() {
	if c.Shell == "" {
		c.Shell = defaultShell
	}
	if c.BufferSize == 0 {
		c.BufferSize = defaultBufferSize
	}
	if c.BufferSize < c.ItemSize {
		c.BufferSize = c.ItemSize
	}
}

// Validate validates the sink configuration.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
