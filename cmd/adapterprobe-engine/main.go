// Command adapterprobe-engine runs one Adapter-Probe clicktrain
// experiment against real or simulated output registers, driven by a
// time.Ticker standing in for the out-of-scope real-time kernel
// scheduler (spec.md §1's "host real-time kernel scheduler" is
// deliberately left external; this dev/bench driver is not a
// real-time scheduler itself).
package main

import (
	"context"
	"encoding/binary"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/eeglab/adapterprobe/internal/command"
	"github.com/eeglab/adapterprobe/internal/engine"
	"github.com/eeglab/adapterprobe/internal/expconfig"
	"github.com/eeglab/adapterprobe/internal/hwreg"
	"github.com/eeglab/adapterprobe/internal/platform"
	"github.com/eeglab/adapterprobe/internal/sessionlog"
)

func main() {
	var configPath = pflag.StringP("config", "c", "experiment.yaml", "Experiment descriptor YAML file.")
	var logDir = pflag.StringP("log-dir", "l", "./logs", "Directory for the daily-rotated trial-event CSV log.")
	var audioDevice = pflag.StringP("audio-device", "a", "", "Open a real PortAudio output device instead of running silent.")
	var announce = pflag.BoolP("announce", "d", false, "Advertise the command channel over DNS-SD.")
	var commandPort = pflag.IntP("command-port", "p", 7654, "Port advertised for the command channel, if --announce is set.")
	pflag.Parse()

	logger := sessionlog.NewOperationalLogger("adapterprobe-engine")

	exp, err := expconfig.Load(*configPath)
	if err != nil {
		logger.Fatal("load experiment descriptor", "err", err)
	}

	csvLog, err := sessionlog.NewCSVLogger(*logDir, "adapterprobe-%Y-%m-%d.csv")
	if err != nil {
		logger.Fatal("open session log", "err", err)
	}
	defer csvLog.Close()

	registers := hwreg.Registers{}
	if *audioDevice != "" {
		dac, audioErr := platform.OpenPortAudioDAC(exp.SampleRate, 64)
		if audioErr != nil {
			logger.Fatal("open audio output", "err", audioErr)
		}
		defer dac.Close()
		registers.DAC = dac
	}

	eng, err := exp.NewEngine(registers)
	if err != nil {
		logger.Fatal("build engine", "err", err)
	}

	cmdTransport, err := platform.OpenPTYTransport()
	if err != nil {
		logger.Fatal("open command channel transport", "err", err)
	}
	defer cmdTransport.Close()
	logger.Info("command channel open", "slave_path", cmdTransport.Slave.Name())

	dispatcher := &command.Dispatcher{Engine: eng, Trigger: registers.Trigger}

	if *announce {
		ann, annErr := platform.Announce("adapterprobe-engine", *commandPort)
		if annErr != nil {
			logger.Error("dns-sd announce failed", "err", annErr)
		} else {
			defer ann.Stop()
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go serveCommands(ctx, cmdTransport.Master, dispatcher, logger)

	eng.Start()
	logger.Info("engine started", "pattern", exp.Pattern, "variant", exp.VariantName, "sample_rate", exp.SampleRate)

	runTickLoop(ctx, eng, csvLog, logger)
	logger.Info("engine stopped")
}

// runTickLoop drives one Tick() per period and logs a CSV row each
// time the pattern sequencer consumes a new trial byte (counter0==0),
// the same moment Engine.Tick itself treats as the trial boundary.
func runTickLoop(ctx context.Context, eng *engine.Engine, csvLog *sessionlog.CSVLogger, logger *log.Logger) {
	ticker := time.NewTicker(time.Second / time.Duration(eng.Config().SampleRate))
	defer ticker.Stop()

	trialCount := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			res := eng.Tick()
			if res.Counter0 == 0 {
				trialCount++
				ev := sessionlog.TrialEvent{
					Time:          time.Now(),
					PatternOffset: eng.PatternOffset(),
					TrialCount:    trialCount,
					PatternByte:   eng.CurrentPatternByte(),
					AdapterJitter: eng.Jitter(),
				}
				if err := csvLog.Write(ev); err != nil {
					logger.Error("write session log row", "err", err)
				}
			}
		}
	}
}

// serveCommands decodes §6 command messages off transport and applies
// them to dispatcher until ctx is done or the transport is closed.
func serveCommands(ctx context.Context, transport io.Reader, dispatcher *command.Dispatcher, logger *log.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		msg, err := command.Read(transport, binary.BigEndian)
		if err != nil {
			return
		}
		if _, _, err := dispatcher.Handle(msg); err != nil {
			logger.Error("command dispatch failed", "opcode", msg.ID, "err", err)
		}
	}
}
