package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/eiannone/keyboard"

	"scanvator/lib/driver-go/elevio"
	"scanvator/src/config"
	"scanvator/src/console"
	"scanvator/src/dispatcher"
	"scanvator/src/executor"
	"scanvator/src/timer"
	"scanvator/src/utils"
)

var _ executor.Panel = (*elevio.Panel)(nil)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	envFile := flag.String("env", ".env", "env file with ELEVATOR_* overrides")
	flag.Parse()

	if err := run(*configPath, *envFile); err != nil {
		slog.Error("Elevator stopped", "err", err)
		os.Exit(1)
	}
}

func run(configPath, envFile string) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}
	if err := cfg.ApplyEnv(envFile); err != nil {
		return err
	}
	if err := cfg.Finalize(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	closeLog, err := utils.InitLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	d := dispatcher.New(cfg, timer.FromConfig(cfg), timer.Clock{})

	sinks := []executor.Sink{executor.NewNarrator(os.Stdout, true)}
	if cfg.SimulatorAddr != "" {
		panel, err := elevio.Dial(cfg.SimulatorAddr, 2*time.Second)
		if err != nil {
			slog.Warn("Running without display panel", "err", err)
		} else {
			defer panel.Close()
			_ = panel.SetFloorIndicator(cfg.InitialFloor)
			sinks = append(sinks, executor.NewPanelSink(panel))
		}
	}
	go executor.Run(ctx, d.Events(), sinks...)

	loopErr := make(chan error, 1)
	go func() { loopErr <- d.Run(ctx) }()

	keys, err := keyboard.GetKeys(10)
	if err != nil {
		return fmt.Errorf("open keyboard: %w", err)
	}
	defer keyboard.Close()

	fmt.Println(console.Help)
	fmt.Println(utils.FormatStatus(d.Status()))

	var parser console.Parser
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-loopErr:
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		case ev := <-keys:
			if ev.Err != nil {
				return fmt.Errorf("read key: %w", ev.Err)
			}
			cmd, ok := parser.Feed(ev.Rune, ev.Key)
			if !ok {
				continue
			}
			if cmd.Kind == console.Quit {
				return nil
			}
			line, err := console.Apply(d, cmd)
			if err != nil {
				fmt.Println("Rejected:", err)
				continue
			}
			fmt.Println(line)
		}
	}
}
