package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/xyproto/randomstring"
	"gopkg.in/yaml.v3"
)

// Roster tags understood by the elevator bank.
const (
	StandardCar = "StandardCar"
	ExpressCar  = "ExpressCar"
)

const nameLength = 10

// Keys read from an env file by ApplyEnv.
const (
	EnvBankName         = "LIFT_BANK_NAME"
	EnvNumFloors        = "LIFT_NUM_FLOORS"
	EnvCars             = "LIFT_CARS"
	EnvPerFloorDuration = "LIFT_PER_FLOOR_DURATION"
	EnvPauseDuration    = "LIFT_PAUSE_DURATION"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Bank describes one elevator bank: how many floors it serves and which cars it
// runs, in dispatch order.
type Bank struct {
	Name             string        `yaml:"Name"`
	NumFloors        int           `yaml:"NumFloors"`
	Cars             []string      `yaml:"Cars"`
	PerFloorDuration time.Duration `yaml:"PerFloorDuration"` // travel time per floor crossed
	PauseDuration    time.Duration `yaml:"PauseDuration"`    // stop between two destinations
}

func Default() Bank {
	return Bank{
		NumFloors:        10,
		Cars:             []string{StandardCar, StandardCar, ExpressCar},
		PerFloorDuration: 3 * time.Second,
		PauseDuration:    3 * time.Second,
	}
}

// Load decodes the YAML file at path on top of Default(). Keys missing from the
// file keep their default.
func Load(path string) (Bank, error) {
	c := Default()
	file, err := os.Open(path)
	if err != nil {
		return c, fmt.Errorf("opening config: %w", err)
	}
	defer file.Close()

	err = yaml.NewDecoder(file).Decode(&c)
	if err != nil && !errors.Is(err, io.EOF) {
		return c, fmt.Errorf("decoding config %s: %w", path, err)
	}
	return c, nil
}

// ApplyEnv overrides c with the LIFT_* keys found in the env file at path.
func ApplyEnv(c *Bank, path string) error {
	envFile, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("reading env file: %w", err)
	}

	if v, ok := envFile[EnvBankName]; ok {
		c.Name = v
	}
	if v, ok := envFile[EnvNumFloors]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, EnvNumFloors, v)
		}
		c.NumFloors = n
	}
	if v, ok := envFile[EnvCars]; ok {
		c.Cars = nil
		for _, tag := range strings.Split(v, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				c.Cars = append(c.Cars, tag)
			}
		}
	}
	if v, ok := envFile[EnvPerFloorDuration]; ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvPerFloorDuration, v, err)
		}
		c.PerFloorDuration = d
	}
	if v, ok := envFile[EnvPauseDuration]; ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvPauseDuration, v, err)
		}
		c.PauseDuration = d
	}
	return nil
}

func (c Bank) Validate() error {
	if c.NumFloors < 0 {
		return fmt.Errorf("%w: number of floors %d is negative", ErrInvalidConfig, c.NumFloors)
	}
	if len(c.Cars) == 0 {
		return fmt.Errorf("%w: no cars configured", ErrInvalidConfig)
	}
	for i, tag := range c.Cars {
		if tag != StandardCar && tag != ExpressCar {
			return fmt.Errorf("%w: car %d has unknown kind %q", ErrInvalidConfig, i, tag)
		}
	}
	if c.PerFloorDuration <= 0 {
		return fmt.Errorf("%w: per floor duration must be positive, got %v", ErrInvalidConfig, c.PerFloorDuration)
	}
	if c.PauseDuration <= 0 {
		return fmt.Errorf("%w: pause duration must be positive, got %v", ErrInvalidConfig, c.PauseDuration)
	}
	return nil
}

// EnsureName gives an unnamed bank a random name and reports whether it did.
func (c *Bank) EnsureName() bool {
	if c.Name != "" {
		return false
	}
	c.Name = randomstring.EnglishFrequencyString(nameLength) //this should be random enough
	return true
}
