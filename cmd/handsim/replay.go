package main

import (
	"fmt"
	"io"

	"github.com/LdDl/hands-go/hands"
	"github.com/LdDl/hands-go/replay"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var replayCmd = &cobra.Command{
	Use:   "replay <session.yaml>",
	Short: "Replay a session and print controller lifecycle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := replay.LoadSession(args[0])
		if err != nil {
			return err
		}
		return runReplay(cmd.OutOrStdout(), session, cfg, logger)
	},
}

// printNotifier writes lifecycle events
type printNotifier struct {
	out  io.Writer
	tick func() int
}

func (n printNotifier) RaiseSourceDetected(sourceID uuid.UUID, controller *hands.HandController) {
	fmt.Fprintf(n.out, "tick %d: source detected %s %s (%s)\n", n.tick(), controller.Handedness(), controller.Type(), sourceID)
}

func (n printNotifier) RaiseSourceLost(sourceID uuid.UUID, controller *hands.HandController) {
	fmt.Fprintf(n.out, "tick %d: source lost %s %s (%s)\n", n.tick(), controller.Handedness(), controller.Type(), sourceID)
}

func runReplay(out io.Writer, session *replay.Session, cfg configSource, logger *zap.Logger) error {
	if !hands.PlatformAvailable(session.Subsystems) {
		return errors.New("hand tracking is not available: mesh and input extension subsystems must be running")
	}
	runtime, err := replay.NewRuntime(session, replay.WithLogger(logger))
	if err != nil {
		return err
	}
	options := append(cfg.RegistryOptions(),
		hands.WithRigLocator(runtime.Rig()),
		hands.WithNotifier(printNotifier{out: out, tick: runtime.Tick}),
		hands.WithLogger(logger),
	)
	registry := hands.NewControllerRegistry(runtime, options...)
	for runtime.Advance() {
		registry.Update()
		fmt.Fprintf(out, "tick %d:", runtime.Tick())
		for _, h := range hands.Hands {
			controller, ok := registry.Controller(h)
			if !ok {
				fmt.Fprintf(out, " %s=absent", h)
				continue
			}
			fmt.Fprintf(out, " %s=%s joints=%d mesh_vertices=%d", h, controller.TrackingState(), len(controller.JointPoses()), len(controller.Mesh().Vertices))
		}
		fmt.Fprintln(out)
	}
	registry.Disable()
	logger.Info("session finished", zap.Int("ticks", runtime.Len()))
	return nil
}

// configSource is the part of configuration the replay needs
type configSource interface {
	RegistryOptions() []hands.RegistryOption
}
