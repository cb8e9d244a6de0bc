// Package config provides the common options of the easyvr binaries.
package config

import (
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/denisbrodbeck/machineid"
	"gopkg.in/yaml.v3"

	"github.com/robotalks/easyvr.go/pkg/easyvr"
	"github.com/robotalks/easyvr.go/pkg/link"
)

// AppID salts the machine ID so the device ID doesn't leak it.
const AppID = "easyvr.go"

// Config defines how to reach the module and where to publish.
type Config struct {
	// Port is the serial device connected to the module.
	Port string `yaml:"port"`
	// Baud is the bit rate the module is currently configured with.
	Baud int `yaml:"baud"`
	// ReadTimeout bounds each read from the serial device.
	ReadTimeout time.Duration `yaml:"read_timeout"`
	// DetectRetries is the number of Detect calls before giving up,
	// 0 retries forever.
	DetectRetries int `yaml:"detect_retries"`

	// ID identifies this device in MQTT topics.
	ID string `yaml:"id"`
	// MQTTURL is the broker to publish events to, the path is the topic
	// prefix, e.g. mqtt://host:port/easyvr/
	MQTTURL string `yaml:"mqtt_url"`

	Recognition Recognition `yaml:"recognition"`
	Timeouts    Timeouts    `yaml:"timeouts"`
}

// Recognition configures continuous recognition.
type Recognition struct {
	Language string `yaml:"language"`
	// Group is the custom command group to recognize, -1 to use Wordset.
	Group   int `yaml:"group"`
	Wordset int `yaml:"wordset"`
	// Timeout in seconds, 0 for infinite.
	Timeout  int  `yaml:"timeout"`
	Knob     int  `yaml:"knob"`
	Level    int  `yaml:"level"`
	Distance int  `yaml:"distance"`
	Labels   bool `yaml:"labels"`
}

// Timeouts overrides easyvr.DefaultTimeouts, zero keeps the default.
type Timeouts struct {
	Reply   time.Duration `yaml:"reply"`
	Wake    time.Duration `yaml:"wake"`
	Play    time.Duration `yaml:"play"`
	Token   time.Duration `yaml:"token"`
	Storage time.Duration `yaml:"storage"`
	Reset   time.Duration `yaml:"reset"`
}

var defaultConfig = Config{
	Port:        "/dev/ttyUSB0",
	Baud:        easyvr.DefaultBaudrate,
	ReadTimeout: 100 * time.Millisecond,
	MQTTURL:     "mqtt://localhost:1883/easyvr/",
	Recognition: Recognition{
		Language: easyvr.English.String(),
		Group:    1,
		Wordset:  easyvr.WordsetAction,
		Timeout:  5,
		Knob:     int(easyvr.KnobTypical),
		Level:    int(easyvr.LevelNormal),
		Distance: int(easyvr.ArmsLength),
		Labels:   true,
	},
}

func init() {
	if val := os.Getenv("EASYVR_PORT"); val != "" {
		defaultConfig.Port = val
	}
	if val := os.Getenv("EASYVR_BAUD"); val != "" {
		if baud, err := strconv.Atoi(val); err == nil {
			defaultConfig.Baud = baud
		}
	}
	if val := os.Getenv("EASYVR_MQTT_URL"); val != "" {
		defaultConfig.MQTTURL = val
	}
	if val := os.Getenv("EASYVR_ID"); val != "" {
		defaultConfig.ID = val
	}
}

// SetupFlags sets up command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Port, "port", defaultConfig.Port, "Serial device of the module.")
	flag.IntVar(&defaultConfig.Baud, "baud", defaultConfig.Baud, "Bit rate of the module.")
	flag.StringVar(&defaultConfig.ID, "id", defaultConfig.ID, "Device ID, defaults to one derived from the machine ID.")
	flag.StringVar(&defaultConfig.MQTTURL, "mqtt", defaultConfig.MQTTURL, "MQTT broker URL with topic prefix, empty to disable.")
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

// LoadFile overlays the YAML document in path on c.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Validate checks the values are usable.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("serial port must be specified")
	}
	if _, err := easyvr.BaudrateOf(c.Baud); err != nil {
		return err
	}
	if c.DetectRetries < 0 {
		return fmt.Errorf("invalid detect_retries %d", c.DetectRetries)
	}
	if c.MQTTURL != "" {
		u, err := url.Parse(c.MQTTURL)
		if err != nil {
			return fmt.Errorf("invalid MQTT URL: %w", err)
		}
		switch u.Scheme {
		case "mqtt", "tcp", "ssl", "ws", "wss":
		default:
			return fmt.Errorf("unknown MQTT URL scheme: %q", u.Scheme)
		}
	}
	r := c.Recognition
	if _, err := easyvr.ParseLanguage(r.Language); err != nil {
		return err
	}
	if r.Group < -1 || r.Group > easyvr.MaxGroup {
		return fmt.Errorf("invalid recognition group %d", r.Group)
	}
	if r.Group < 0 && (r.Wordset < easyvr.WordsetTrigger || r.Wordset > easyvr.WordsetNumber) {
		return fmt.Errorf("invalid recognition wordset %d", r.Wordset)
	}
	if r.Timeout < 0 || r.Timeout > 31 {
		return fmt.Errorf("invalid recognition timeout %d", r.Timeout)
	}
	return nil
}

// DeviceID returns ID, or an ID derived from the machine ID when empty.
func (c *Config) DeviceID() (string, error) {
	if c.ID != "" {
		return c.ID, nil
	}
	id, err := machineid.ProtectedID(AppID)
	if err != nil {
		return "", fmt.Errorf("machine id: %w", err)
	}
	return id[:12], nil
}

// Serial returns the link configuration.
func (c *Config) Serial() link.SerialConfig {
	return link.SerialConfig{Device: c.Port, Baud: c.Baud, ReadTimeout: c.ReadTimeout}
}

// Apply copies the non-zero values into to.
func (t Timeouts) Apply(to *easyvr.Timeouts) {
	set := func(dst *time.Duration, val time.Duration) {
		if val > 0 {
			*dst = val
		}
	}
	set(&to.Reply, t.Reply)
	set(&to.Wake, t.Wake)
	set(&to.Play, t.Play)
	set(&to.Token, t.Token)
	set(&to.Storage, t.Storage)
	if t.Reset > 0 {
		to.ResetAll = t.Reset
		to.ResetAllFast = t.Reset
		to.ResetCommands = t.Reset
		to.ResetMessages = t.Reset
	}
}

// SessionTimeouts returns easyvr.DefaultTimeouts with overrides applied.
func (c *Config) SessionTimeouts() easyvr.Timeouts {
	t := easyvr.DefaultTimeouts()
	c.Timeouts.Apply(&t)
	return t
}

// OpenSession opens the serial port and creates a Session on it.
func (c *Config) OpenSession() (*easyvr.Session, *link.Serial, error) {
	port, err := link.OpenSerial(c.Serial())
	if err != nil {
		return nil, nil, err
	}
	s := easyvr.NewSession(port)
	s.Timeouts = c.SessionTimeouts()
	return s, port, nil
}

// MustOpenSession opens the session and fails on error.
func (c *Config) MustOpenSession() (*easyvr.Session, *link.Serial) {
	s, port, err := c.OpenSession()
	if err != nil {
		log.Fatalln(err)
	}
	return s, port
}
