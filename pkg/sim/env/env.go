package env

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/l0boot/pkg/boot"
	"github.com/robotalks/l0boot/pkg/sim"
)

// Image formats.
const (
	FormatAuto   = "auto"
	FormatBinary = "bin"
	FormatCyacd  = "cyacd"
)

// Config provides options to setup the simulated device.
type Config struct {
	// ImagePath is the partition image to load into flash.
	ImagePath string
	// Format is one of FormatAuto, FormatBinary, FormatCyacd.
	Format string
	// FlashBase is the address the image is mapped at.
	FlashBase AddrValue
	// Partition is the partition address passed to the boot sequence.
	Partition AddrValue
	// Timeout bounds a simulated boot.
	Timeout time.Duration
}

var defaultConfig = Config{
	Format:    FormatAuto,
	FlashBase: 0x08000000,
	Partition: 0x08000000,
	Timeout:   time.Second,
}

func init() {
	if val := os.Getenv("BOOTSIM_IMAGE"); val != "" {
		defaultConfig.ImagePath = val
	}
	if val := os.Getenv("BOOTSIM_FORMAT"); val != "" {
		defaultConfig.Format = val
	}
	if val := os.Getenv("BOOTSIM_FLASH_BASE"); val != "" {
		if err := defaultConfig.FlashBase.Set(val); err != nil {
			glog.Warningf("BOOTSIM_FLASH_BASE: %v", err)
		}
	}
	if val := os.Getenv("BOOTSIM_PARTITION"); val != "" {
		if err := defaultConfig.Partition.Set(val); err != nil {
			glog.Warningf("BOOTSIM_PARTITION: %v", err)
		}
	}
}

// SetupFlags sets up command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.ImagePath, "image", defaultConfig.ImagePath, "Partition image to load.")
	flag.StringVar(&defaultConfig.Format, "format", defaultConfig.Format, "Image format: auto, bin, cyacd.")
	flag.Var(&defaultConfig.FlashBase, "flash-base", "Address the image is mapped at.")
	flag.Var(&defaultConfig.Partition, "partition", "Partition address to boot.")
	flag.DurationVar(&defaultConfig.Timeout, "timeout", defaultConfig.Timeout, "Timeout of a simulated boot.")
}

// Default gets the default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Load loads the image into simulated flash.
func (c *Config) Load() (*sim.Flash, error) {
	if c.ImagePath == "" {
		return nil, fmt.Errorf("image path must be specified")
	}
	format := c.Format
	if format == "" || format == FormatAuto {
		format = FormatBinary
		if strings.EqualFold(filepath.Ext(c.ImagePath), ".cyacd") {
			format = FormatCyacd
		}
	}
	switch format {
	case FormatBinary:
		return sim.LoadFile(c.ImagePath, boot.Addr(c.FlashBase))
	case FormatCyacd:
		return sim.LoadCyacdFile(c.ImagePath, boot.Addr(c.FlashBase))
	default:
		return nil, fmt.Errorf("unknown image format: %q", c.Format)
	}
}

// AddrValue is a flag.Value parsing a 32-bit address.
// Hex (0x), octal (0) and decimal forms are accepted, as are
// '_' digit separators.
type AddrValue boot.Addr

// ParseAddr parses a 32-bit address.
func ParseAddr(s string) (boot.Addr, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %v", s, err)
	}
	return boot.Addr(v), nil
}

// String implements flag.Value.
func (v *AddrValue) String() string {
	return fmt.Sprintf("0x%08x", uint32(*v))
}

// Set implements flag.Value.
func (v *AddrValue) Set(s string) error {
	addr, err := ParseAddr(s)
	if err != nil {
		return err
	}
	*v = AddrValue(addr)
	return nil
}
