package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/delliston/liftbank/config"
	"github.com/delliston/liftbank/lift"
	"github.com/delliston/liftbank/logger"
	"github.com/eiannone/keyboard"
)

var Logger = logger.GetLogger()

// Plays a number of riders against one elevator bank and exits when they are done.
func main() {
	configPath := flag.String("config", "", "YAML bank configuration. Defaults to built-in settings")
	envPath := flag.String("env", "", "Env file with LIFT_* overrides")
	riders := flag.Int("riders", 5, "Number of riders to simulate")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed for rider floors")
	logLevel := flag.String("loglevel", "info", "Log level: debug, info, warn, error, disabled")
	interactive := flag.Bool("interactive", false, "Read keys: r adds a rider, s prints cars, q quits")
	direction := flag.String("direction", "", "Only simulate riders travelling up or down. Defaults to both")
	flag.Parse()

	Logger = logger.GetLoggerConfigured(logger.ParseLevel(*logLevel))

	dir := lift.NoDirection
	if *direction != "" {
		var err error
		if dir, err = lift.ParseDirection(*direction); err != nil {
			Logger.Error().Err(err).Msg("Parsing -direction")
			os.Exit(1)
		}
	}

	cfg, err := loadConfig(*configPath, *envPath)
	if err != nil {
		Logger.Error().Err(err).Msg("Loading configuration")
		os.Exit(1)
	}
	if cfg.EnsureName() {
		Logger.Warn().Msgf("No bank name provided, generated random name %q", cfg.Name)
	}

	bank, err := lift.NewBank(cfg)
	if err != nil {
		Logger.Error().Err(err).Msg("Creating bank")
		os.Exit(1)
	}
	defer bank.Stop()

	bank.AddCarStateListener(lift.CarStateListenerFunc(func(s lift.CarState) {
		Logger.Info().Msgf("publishing car state: %v", s)
	}))
	bank.AddRiderCueListener(lift.RiderCueListenerFunc(func(c lift.RiderCue) {
		Logger.Info().Msgf("publishing rider cue: %v", c)
	}))

	sim := &simulation{
		bank:     bank,
		rnd:      rand.New(rand.NewSource(*seed)),
		floors:   cfg.NumFloors,
		dir:      dir,
		boarding: cfg.PauseDuration / 2,
		patience: time.Duration(4*cfg.NumFloors+10) * (cfg.PerFloorDuration + cfg.PauseDuration),
	}

	if *interactive {
		sim.interact()
	} else {
		for i := 0; i < *riders; i++ {
			sim.spawn()
			time.Sleep(cfg.PerFloorDuration)
		}
	}
	sim.wg.Wait() // Waits until all riders complete or give up.
	Logger.Info().Msg("All riders have been serviced")
}

func loadConfig(configPath, envPath string) (config.Bank, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return cfg, err
		}
	}
	if envPath != "" {
		if err := config.ApplyEnv(&cfg, envPath); err != nil {
			return cfg, err
		}
	}
	return cfg, cfg.Validate()
}

type simulation struct {
	bank     *lift.Bank
	rnd      *rand.Rand
	floors   int
	dir      lift.Direction // NoDirection lets riders go either way
	boarding time.Duration  // rider picking floors after the cue
	patience time.Duration  // how long a rider waits for each step
	nextID   int
	wg       sync.WaitGroup
}

func (s *simulation) spawn() {
	if s.floors < 2 {
		Logger.Warn().Msgf("Cannot simulate riders in a building with %d floors", s.floors)
		return
	}
	s.nextID++
	start, dest := riderFloors(s.rnd, s.floors, s.dir)
	p := &Rider{id: s.nextID, start: start, dest: dest}
	Logger.Info().Msgf("Rider-%d: created with start %s, dest %s", p.id, p.start, p.dest)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := p.ride(s.bank, s.boarding, s.patience); err != nil {
			Logger.Warn().Err(err).Msgf("Rider-%d gave up", p.id)
		}
	}()
}

// riderFloors picks a start and destination. With a direction they differ and
// the trip goes that way; without one they may even be equal.
func riderFloors(rnd *rand.Rand, floors int, dir lift.Direction) (start, dest lift.Floor) {
	start = lift.Floor(rnd.Intn(floors))
	if !dir.Valid() {
		return start, lift.Floor(rnd.Intn(floors))
	}
	dest = lift.Floor(rnd.Intn(floors - 1))
	if dest >= start {
		dest++
	}
	if start.DirectionTo(dest) != dir {
		start, dest = dest, start
	}
	return start, dest
}

func (s *simulation) interact() {
	fmt.Println("r: add rider, s: show cars, q: quit")
	for {
		char, key, err := keyboard.GetSingleKey()
		if err != nil {
			Logger.Error().Err(err).Msg("Reading keyboard")
			return
		}
		if key == keyboard.KeyCtrlC || char == 'q' || char == 'Q' {
			s.bank.Stop()
			return
		}
		switch char {
		case 'r', 'R':
			s.spawn()
		case 's', 'S':
			snaps, err := s.bank.Snapshot()
			if err != nil {
				Logger.Error().Err(err).Msg("Snapshot")
				continue
			}
			for _, snap := range snaps {
				fmt.Println(snap)
			}
		}
	}
}

// Rider requests a pickup, boards whichever car cues it and rides to dest.
type Rider struct {
	id    int
	start lift.Floor
	dest  lift.Floor
}

func (p *Rider) ride(bank *lift.Bank, boarding, patience time.Duration) error {
	if p.start == p.dest {
		Logger.Info().Msgf("Rider-%d skipping elevator: start %s == dest %s", p.id, p.start, p.dest)
		return nil
	}

	// Request pickup and wait for a car.
	req := lift.NewServiceRequest(p.start.DirectionTo(p.dest), p.start)
	chCue := make(chan lift.RiderCue, 1)
	removeCue := bank.AddRiderCueListener(lift.RiderCueListenerFunc(func(c lift.RiderCue) {
		if c.Request.ID == req.ID {
			select {
			case chCue <- c:
			default:
			}
		}
	}))
	defer removeCue()

	Logger.Info().Msgf("Rider-%d requesting pickup %s %s", p.id, p.start, req.Direction)
	if err := bank.ProcessServiceRequest(req); err != nil {
		return err
	}

	var cue lift.RiderCue
	select {
	case cue = <-chCue:
	case <-bank.Done():
		return lift.ErrBankStopped
	case <-time.After(patience):
		return fmt.Errorf("no car came to floor %s", p.start)
	}

	// Board and press button.
	Logger.Info().Msgf("Rider-%d boarded %s at %s", p.id, cue.CarID, p.start)
	chArrival := make(chan lift.CarState, 1)
	removeState := bank.AddCarStateListener(lift.CarStateListenerFunc(func(s lift.CarState) {
		if s.CarName == cue.CarID && s.Floor == p.dest && s.Status != lift.Moving {
			select {
			case chArrival <- s:
			default:
			}
		}
	}))
	defer removeState()

	time.Sleep(boarding)
	Logger.Info().Msgf("Rider-%d requesting floor %s", p.id, p.dest)
	if err := bank.ProcessFloorsRequest(lift.NewFloorsRequest(req.ID, p.dest)); err != nil {
		return err
	}

	select {
	case <-chArrival:
		Logger.Info().Msgf("Rider-%d arrived at destination floor %s", p.id, p.dest)
		return nil
	case <-bank.Done():
		return lift.ErrBankStopped
	case <-time.After(patience):
		return fmt.Errorf("%s never reached floor %s", cue.CarID, p.dest)
	}
}
