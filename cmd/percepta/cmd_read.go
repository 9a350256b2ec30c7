package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/percepta/journal/internal/app"
	"github.com/percepta/journal/internal/brief"
	"github.com/percepta/journal/internal/logging"
)

// #region commands

var (
	timelineDays int
	eventsLimit  int
	eventsToday  bool

	insightCmd = &cobra.Command{
		Use:   "insight",
		Short: "Show today's insight, generating it if none exists yet",
		Args:  cobra.NoArgs,
		RunE:  runInsight,
	}
	todayCmd = &cobra.Command{
		Use:   "today",
		Short: "Show today's entries, insight and state",
		Args:  cobra.NoArgs,
		RunE:  runToday,
	}
	timelineCmd = &cobra.Command{
		Use:   "timeline",
		Short: "Show the last N days, newest first",
		Args:  cobra.NoArgs,
		RunE:  runTimeline,
	}
	briefCmd = &cobra.Command{
		Use:   "brief",
		Short: "Show today's five-part macro brief",
		Args:  cobra.NoArgs,
		RunE:  runBrief,
	}
	eventsCmd = &cobra.Command{
		Use:   "events",
		Short: "Show the interaction log",
		Args:  cobra.NoArgs,
		RunE:  runEvents,
	}
)

func init() {
	timelineCmd.Flags().IntVarP(&timelineDays, "days", "d", 7, "number of days")
	eventsCmd.Flags().IntVarP(&eventsLimit, "limit", "l", logging.DefaultRecent, "number of events")
	eventsCmd.Flags().BoolVar(&eventsToday, "today", false, "only today's events")
}

// #endregion commands

// #region run

func runInsight(cmd *cobra.Command, _ []string) error {
	ctx, cancel := callContext(cmd)
	defer cancel()
	res, err := api.RefreshInsight(ctx)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(res)
	}
	fmt.Printf("상태: %s\n", res.State.DisplayName())
	if res.Insight == nil {
		fmt.Println("오늘은 아직 보여드릴 관찰이 없어요.")
		log.Debug("no insight", zap.String("action", res.Action), zap.String("reason", res.Reason))
		return nil
	}
	fmt.Printf("[%s] %s\n", res.Insight.Type.DisplayName(), res.Insight.Message)
	log.Debug("insight", zap.String("action", res.Action), zap.String("reason", res.Reason))
	return nil
}

func runToday(cmd *cobra.Command, _ []string) error {
	ctx, cancel := callContext(cmd)
	defer cancel()
	snap, err := api.Today(ctx)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(snap)
	}
	fmt.Printf("%s (%s) · 상태: %s\n", snap.Label, snap.DateKey, snap.State.DisplayName())
	printDay(snap.Day)
	return nil
}

func runTimeline(cmd *cobra.Command, _ []string) error {
	if timelineDays < 1 {
		return fmt.Errorf("--days must be positive, got %d", timelineDays)
	}
	ctx, cancel := callContext(cmd)
	defer cancel()
	days, err := api.Timeline(ctx, timelineDays)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(days)
	}
	for _, d := range days {
		fmt.Printf("── %s (%s)\n", d.Label, d.DateKey)
		if d.Empty() {
			fmt.Println("  기록 없음")
			continue
		}
		printDay(d)
	}
	return nil
}

func runBrief(cmd *cobra.Command, _ []string) error {
	ctx, cancel := callContext(cmd)
	defer cancel()
	b, err := api.Brief(ctx)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(b)
	}
	for i, p := range b.Parts() {
		fmt.Printf("%d. %s\n   %s\n   └ %s\n", i+1, brief.PartTitles[i], p.Message, p.Why)
	}
	return nil
}

func runEvents(_ *cobra.Command, _ []string) error {
	if err := requireLocal(); err != nil {
		return err
	}
	var events []logging.Event
	if eventsToday {
		events = svc.Events().Today()
	} else {
		events = svc.Events().Recent(eventsLimit)
	}
	if jsonOut {
		return printJSON(events)
	}
	for _, e := range events {
		fmt.Printf("%s  %-28s %s\n", e.Timestamp.Format("2006-01-02 15:04:05"), e.Type, formatParams(e.Parameters))
	}
	return nil
}

// #endregion run

// #region output

func printDay(d app.Day) {
	if p := d.Perception; p != nil {
		line := fmt.Sprintf("  체감  %s %s", p.Mood.Emoji(), p.Mood.DisplayName())
		if p.Note != "" {
			line += " · " + p.Note
		}
		fmt.Println(line)
	}
	if inv := d.Investment; inv != nil {
		line := "  행동  " + inv.Action.DisplayName()
		if inv.Memo != "" {
			line += " · " + inv.Memo
		}
		fmt.Println(line)
	}
	if t := d.Thinking; t != nil {
		fmt.Printf("  생각  %s → %s → %s\n", t.Cause.DisplayName(), t.Effect.DisplayName(), t.Conclusion.DisplayName())
	}
	if ins := d.Insight; ins != nil {
		fmt.Printf("  관찰  %s\n", ins.Message)
	}
}

func formatParams(params map[string]string) string {
	parts := make([]string, 0, len(params))
	for k, v := range params {
		parts = append(parts, k+"="+v)
	}
	sort.Strings(parts)
	return strings.Join(parts, " ")
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// #endregion output
