// Gray Logic Access - door access controller
//
// This is the main entry point for the door controller. It wires the keypad,
// RFID reader, servo lock, indicator and OLED menu to the credential store
// and runs the access state machine until interrupted.
//
// With hardware.backend "sim" the terminal stands in for the hardware:
// keystrokes feed the keypad matrix and the OLED frame is drawn in place.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	_ "github.com/nerrad567/gray-logic-access/migrations"

	"github.com/nerrad567/gray-logic-access/internal/access"
	"github.com/nerrad567/gray-logic-access/internal/controller"
	"github.com/nerrad567/gray-logic-access/internal/credential"
	"github.com/nerrad567/gray-logic-access/internal/door"
	"github.com/nerrad567/gray-logic-access/internal/events"
	"github.com/nerrad567/gray-logic-access/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-access/internal/infrastructure/logging"
	"github.com/nerrad567/gray-logic-access/internal/keypad"
	"github.com/nerrad567/gray-logic-access/internal/menu"
	"github.com/nerrad567/gray-logic-access/internal/screen"
	"github.com/nerrad567/gray-logic-access/internal/tag"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Default file locations.
const (
	defaultConfigPath = "configs/config.yaml"
	defaultEnvPath    = ".env"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var err error
	if args := os.Args[1:]; len(args) > 0 && args[0] == "audit" {
		err = runAudit(ctx, args[1:], os.Stdout)
	} else {
		err = run(ctx, os.Stdin, os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the application logic, separated from main for testability.
// in and out are the simulator's terminal.
func run(ctx context.Context, in io.Reader, out io.Writer) error {
	log := logging.Default()
	log.Info("starting Gray Logic Access",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	if err := loadEnv(getEnvPath()); err != nil {
		return fmt.Errorf("loading environment file: %w", err)
	}

	configPath := getConfigPath()
	cfg, fromFile, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath, "from_file", fromFile)

	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	recorder, closeSinks, err := openSinks(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeSinks()

	hw, err := newHardware(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	term, err := newConsole(hw, in, out)
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	defer term.Close()
	go term.Run(ctx, cancel)

	ctrl := build(cfg, hw, recorder, log)

	log.Info("initialisation complete, controller running", "site", cfg.Site.ID)
	if err := ctrl.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("running controller: %w", err)
	}

	log.Info("Gray Logic Access stopped")
	return nil
}

// build wires the access components over hw.
func build(cfg *config.Config, hw *hardware, recorder events.Recorder, log *logging.Logger) *controller.Controller {
	emitter := events.NewEmitter(cfg.Site.ID, hw.clock, recorder)
	emitter.SetLogger(log.With("component", "events"))

	store := credential.NewStore(cfg.Storage.Dir)
	store.SetLogger(log.With("component", "credential"))
	store.Load()

	scr := screen.New(hw.display, hw.clock)

	lock := door.NewActuator(hw.servo, hw.clock, doorConfig(cfg.Door))
	lock.SetFeedback(scr)
	lock.SetEmitter(emitter)
	lock.SetLogger(log.With("component", "door"))

	reader := tag.NewReader(hw.rfid, lock.Indicator())
	reader.SetLogger(log.With("component", "rfid"))

	keys := keypad.NewScanner(hw.matrix, hw.clock, keypad.Config{
		DebounceDelay:  cfg.Keypad.DebounceDelay,
		LongPressDelay: cfg.Keypad.LongPressDelay,
	})

	m := menu.New(keys, reader, store, lock, scr, hw.clock)
	m.SetEmitter(emitter)
	m.SetLogger(log.With("component", "menu"))

	ctrl := controller.New(controller.Deps{
		Keys:   keys,
		Tags:   reader,
		Store:  store,
		Lock:   lock,
		Screen: scr,
		Menu:   m,
		Policy: access.NewRetryPolicy(cfg.Security.MaxAttempts, cfg.Security.Backoff, hw.clock),
		Clock:  hw.clock,
	})
	ctrl.SetEmitter(emitter)
	ctrl.SetLogger(log.With("component", "controller"))
	return ctrl
}

// doorConfig maps the door section of config.yaml onto the actuator.
func doorConfig(c config.DoorConfig) door.Config {
	return door.Config{
		MinDutyPercent: c.MinDutyPercent,
		MaxDutyPercent: c.MaxDutyPercent,
		OpenAngle:      c.OpenAngle,
		ClosedAngle:    c.ClosedAngle,
		HoldSeconds:    c.HoldSeconds,
		SettleDelay:    c.SettleDelay,
	}
}

// loadConfig reads path when it exists and falls back to the built-in
// defaults otherwise. The bool reports which was used.
func loadConfig(path string) (*config.Config, bool, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		cfg, err := config.Default()
		return cfg, false, err
	}
	cfg, err := config.Load(path)
	return cfg, true, err
}

// loadEnv loads GRAYLOGIC_* overrides from an optional .env file.
// Variables already set in the environment win.
func loadEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

// getConfigPath returns the configuration file path.
// Uses GRAYLOGIC_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("GRAYLOGIC_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// getEnvPath returns the .env file path.
func getEnvPath() string {
	if path := os.Getenv("GRAYLOGIC_ENV_FILE"); path != "" {
		return path
	}
	return defaultEnvPath
}
