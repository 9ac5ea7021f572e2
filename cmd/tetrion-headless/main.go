// Command tetrion-headless drives a tetrion from a packed replay file
// instead of a live input device, the same entrypoint shape as the
// teacher's cmd/server (a small flag-parsed main wired to one package) but
// pointed at the simulation core instead of a gRPC listener.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/OpenTetrisProtocolFoundation/simulator/internal/boundary"
	"github.com/OpenTetrisProtocolFoundation/simulator/tetrion"
)

type options struct {
	replayPath string
	seed       uint64
	startFrame uint64
	untilFrame uint64
	playerName string
}

func parseFlags(args []string) (options, error) {
	fs := flag.NewFlagSet("tetrion-headless", flag.ContinueOnError)
	o := options{}
	fs.StringVar(&o.replayPath, "replay", "", "path to a packed replay file ({u8 key, u8 type, u64 frame} records)")
	fs.Uint64Var(&o.seed, "seed", 1, "tetrion RNG seed")
	fs.Uint64Var(&o.startFrame, "start-frame", 0, "tetrion start frame")
	fs.Uint64Var(&o.untilFrame, "until-frame", 0, "frame to simulate up to; 0 means simulate every event in the replay")
	fs.StringVar(&o.playerName, "name", "player", "opaque player name tag")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if o.replayPath == "" {
		return options{}, fmt.Errorf("tetrion-headless: -replay is required")
	}
	return o, nil
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	o, err := parseFlags(os.Args[1:])
	if err != nil {
		logger.Error("failed to parse flags", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := run(logger, o); err != nil {
		logger.Error("run failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger, o options) error {
	data, err := os.ReadFile(o.replayPath)
	if err != nil {
		return fmt.Errorf("failed to read replay file: %w", err)
	}

	events, err := decodeReplay(data)
	if err != nil {
		return fmt.Errorf("failed to decode replay file: %w", err)
	}

	h := boundary.Create(o.seed, o.startFrame, o.playerName)
	defer boundary.Destroy(h)

	if err := boundary.SetActionHandler(h, func(a tetrion.Action) {
		logger.Debug("action", slog.Int("kind", int(a.Kind)), slog.Int("lines_cleared", a.LinesCleared))
	}); err != nil {
		return fmt.Errorf("failed to install action handler: %w", err)
	}

	for _, e := range events {
		if err := boundary.EnqueueEvent(h, e); err != nil {
			return fmt.Errorf("failed to enqueue event at frame %d: %w", e.Frame, err)
		}
	}

	targetFrame := o.untilFrame
	if targetFrame == 0 && len(events) > 0 {
		targetFrame = events[len(events)-1].Frame
	}

	garbage, err := boundary.SimulateUpUntil(h, targetFrame)
	if err != nil {
		return fmt.Errorf("failed to simulate: %w", err)
	}

	snapshot, err := boundary.GetSnapshot(h)
	if err != nil {
		return fmt.Errorf("failed to read final snapshot: %w", err)
	}

	logger.Info("replay finished",
		slog.Uint64("next_frame", snapshot.NextFrame),
		slog.Uint64("score", snapshot.Score),
		slog.Int("lines_cleared", int(snapshot.NumLinesCleared)),
		slog.Int("outgoing_garbage_events", len(garbage)))
	return nil
}

// decodeReplay splits a packed replay file into its fixed-size wire-format
// events (spec §6: little-endian {u8 key, u8 type, u64 frame}).
func decodeReplay(data []byte) ([]tetrion.Event, error) {
	const recordSize = 10
	if len(data)%recordSize != 0 {
		return nil, fmt.Errorf("replay file length %d is not a multiple of the %d-byte event record size", len(data), recordSize)
	}
	events := make([]tetrion.Event, 0, len(data)/recordSize)
	for offset := 0; offset < len(data); offset += recordSize {
		var e tetrion.Event
		if err := e.UnmarshalBinary(data[offset : offset+recordSize]); err != nil {
			return nil, fmt.Errorf("record at byte %d: %w", offset, err)
		}
		events = append(events, e)
	}
	return events, nil
}
