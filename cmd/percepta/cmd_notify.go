package main

import (
	"fmt"
	"net"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/percepta/journal/internal/notify"
	"github.com/percepta/journal/internal/rpc"
)

// #region notify

var (
	notifyCmd = &cobra.Command{
		Use:       "notify [on|off|status]",
		Short:     "Manage the 22:30 evening prompt",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off", "status"},
		RunE:      runNotify,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the journal over gRPC and deliver the evening prompt",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
)

func runNotify(cmd *cobra.Command, args []string) error {
	if err := requireLocal(); err != nil {
		return err
	}
	ctx := cmd.Context()
	switch args[0] {
	case "on", "off":
		if err := notifier.HandleToggle(ctx, args[0] == "on"); err != nil {
			return err
		}
	case "status":
		if err := notifier.RescheduleIfNeeded(ctx); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown notify action %q (want on, off or status)", args[0])
	}

	next, scheduled := center.NextFireTime(notify.DailyPromptID)
	if jsonOut {
		out := map[string]any{
			"enabled":      notifier.Enabled(),
			"status":       notifier.Status(),
			"deniedNotice": notifier.ShowDeniedWarning(ctx),
		}
		if scheduled {
			out["next"] = next
		}
		return printJSON(out)
	}

	fmt.Printf("evening prompt: %s · permission: %s\n", onOff(notifier.Enabled()), notifier.Status())
	if scheduled {
		fmt.Printf("next: %s\n", next.Format("2006-01-02 15:04 MST"))
	}
	if notifier.ShowDeniedWarning(ctx) {
		fmt.Println("알림 권한이 꺼져 있어요. 설정에서 알림을 허용하면 저녁 알림을 받을 수 있어요.")
	}
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// #endregion notify

// #region serve

func runServe(cmd *cobra.Command, _ []string) error {
	if err := requireLocal(); err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := notifier.RescheduleIfNeeded(ctx); err != nil {
		log.Warn("evening prompt not rescheduled", zap.Error(err))
	}

	lis, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Server.Addr, err)
	}
	prompts := make(chan error, 1)
	go func() {
		prompts <- center.Run(ctx, func(req notify.Request) {
			log.Info("evening prompt", zap.String("id", req.ID), zap.String("title", req.Title), zap.String("body", req.Body))
		})
	}()

	err = rpc.NewServer(svc, log.Named("rpc")).Serve(ctx, lis)
	stop()
	<-prompts
	return err
}

// #endregion serve
