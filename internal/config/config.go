package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/juju/loggo"
)

var logger = loggo.GetLogger("main.config")

type Config struct {
	Profile     string
	ToneBackend string
	PWMChip     string
	PWMChannel  int
	TonePin     string

	GPIOBackend string
	GPIOBase    string
	ModePin     string
	PowerPin    string
	Debounce    time.Duration

	Tick      time.Duration
	BaseTempo time.Duration

	StatePath         string
	LogConfig         string
	TelegramToken     string
	TelegramChannelID int64
	Display           bool
}

// Get reads the config from the environment and exits on invalid values
func Get() *Config {
	cfg, err := Load(os.Getenv)
	if err != nil {
		logger.Criticalf("%v", err)
		os.Exit(1)
	}

	return cfg
}

// Load reads the config through getenv, unset variables take their defaults
func Load(getenv func(string) string) (*Config, error) {
	env := func(key, def string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Profile:       env("PROFILE", "improv"),
		ToneBackend:   env("TONE_BACKEND", "sysfs"),
		PWMChip:       env("PWM_CHIP", "/sys/class/pwm/pwmchip0"),
		TonePin:       env("TONE_PIN", "GPIO23"),
		GPIOBackend:   env("GPIO_BACKEND", "sysfs"),
		GPIOBase:      env("GPIO_BASE", "/sys/class/gpio"),
		ModePin:       env("MODE_PIN", "19"),
		PowerPin:      env("POWER_PIN", "18"),
		StatePath:     getenv("STATE_PATH"),
		LogConfig:     env("LOG_CONFIG", "<root>=INFO"),
		TelegramToken: getenv("TELEGRAM_TOKEN"),
	}

	if err := oneOf("PROFILE", cfg.Profile, "beeper", "cycle", "improv"); err != nil {
		return nil, err
	}
	if err := oneOf("TONE_BACKEND", cfg.ToneBackend, "sysfs", "periph", "log"); err != nil {
		return nil, err
	}
	if err := oneOf("GPIO_BACKEND", cfg.GPIOBackend, "sysfs", "periph"); err != nil {
		return nil, err
	}

	ch, err := strconv.Atoi(env("PWM_CHANNEL", "0"))
	if err != nil || ch < 0 {
		return nil, fmt.Errorf("Failed parsing PWM_CHANNEL env var: %q", getenv("PWM_CHANNEL"))
	}
	cfg.PWMChannel = ch

	if cfg.Debounce, err = millis(getenv, "DEBOUNCE_MS", 30, 0); err != nil {
		return nil, err
	}
	if cfg.Tick, err = millis(getenv, "TICK_MS", 20, 1); err != nil {
		return nil, err
	}
	if cfg.BaseTempo, err = millis(getenv, "BASE_TEMPO_MS", 1800, 1); err != nil {
		return nil, err
	}

	// not DISPLAY, desktop sessions set that to the X11 server
	if d := getenv("SCREEN"); d != "" {
		if cfg.Display, err = strconv.ParseBool(d); err != nil {
			return nil, fmt.Errorf("Failed parsing SCREEN env var: %q", d)
		}
	}

	if cfg.TelegramToken != "" {
		cid := getenv("TELEGRAM_CHANNELID")
		if cid == "" {
			return nil, fmt.Errorf("Empty TELEGRAM_CHANNELID env var with TELEGRAM_TOKEN set!")
		}
		if cfg.TelegramChannelID, err = strconv.ParseInt(cid, 10, 64); err != nil {
			return nil, fmt.Errorf("Failed parsing TELEGRAM_CHANNELID env var: %q", cid)
		}
	}

	return cfg, nil
}

func oneOf(key, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("Invalid %v env var: %q, expected one of %v", key, value, allowed)
}

// millis parses a millisecond count no smaller than min
func millis(getenv func(string) string, key string, def, min int64) (time.Duration, error) {
	v := getenv(key)
	if v == "" {
		return time.Duration(def) * time.Millisecond, nil
	}

	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < min {
		return 0, fmt.Errorf("Failed parsing %v env var: %q", key, v)
	}
	return time.Duration(n) * time.Millisecond, nil
}
