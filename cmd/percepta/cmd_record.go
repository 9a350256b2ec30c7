package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/percepta/journal/internal/journal"
)

// #region commands

var (
	moodNote   string
	investMemo string

	moodCmd = &cobra.Command{
		Use:       "mood [stable|neutral|anxious]",
		Short:     "Record today's economic mood",
		Args:      cobra.ExactArgs(1),
		ValidArgs: enumArgs(journal.AllMoods()),
		RunE:      runMood,
	}
	investCmd = &cobra.Command{
		Use:       "invest [none|buy|sell|watch]",
		Short:     "Record today's investment action (defaults to none)",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: enumArgs(journal.AllActions()),
		RunE:      runInvest,
	}
	thinkCmd = &cobra.Command{
		Use:   "think [cause] [effect] [conclusion]",
		Short: "Record today's cause, effect and conclusion",
		Long: fmt.Sprintf(`Record today's macro thought. All three parts are required.

causes:      %v
effects:     %v
conclusions: %v`, journal.AllCauses(), journal.AllEffects(), journal.AllConclusions()),
		Args: cobra.ExactArgs(3),
		RunE: runThink,
	}
)

func init() {
	moodCmd.Flags().StringVarP(&moodNote, "note", "n", "", fmt.Sprintf("optional note (up to %d characters)", journal.MaxNoteLength))
	investCmd.Flags().StringVarP(&investMemo, "memo", "m", "", fmt.Sprintf("optional memo (up to %d characters)", journal.MaxMemoLength))
}

func enumArgs[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// #endregion commands

// #region run

func runMood(cmd *cobra.Command, args []string) error {
	ctx, cancel := callContext(cmd)
	defer cancel()
	entry, err := api.RecordPerception(ctx, journal.PerceptionDraft{Mood: journal.Mood(args[0]), Note: moodNote})
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(entry)
	}
	fmt.Printf("%s %s 기록했어요 (%s)\n", entry.Mood.Emoji(), entry.Mood.DisplayName(), entry.DateKey)
	return nil
}

func runInvest(cmd *cobra.Command, args []string) error {
	draft := journal.InvestmentDraft{Memo: investMemo}
	if len(args) == 1 {
		draft.Action = journal.InvestmentAction(args[0])
	}
	ctx, cancel := callContext(cmd)
	defer cancel()
	entry, err := api.RecordInvestment(ctx, draft)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(entry)
	}
	fmt.Printf("%s 기록했어요 (%s)\n", entry.Action.DisplayName(), entry.DateKey)
	return nil
}

func runThink(cmd *cobra.Command, args []string) error {
	draft := journal.ThinkingDraft{
		Cause:      journal.Cause(args[0]),
		Effect:     journal.Effect(args[1]),
		Conclusion: journal.Conclusion(args[2]),
	}
	ctx, cancel := callContext(cmd)
	defer cancel()
	entry, err := api.RecordThinking(ctx, draft)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(entry)
	}
	fmt.Printf("%s → %s → %s (%s)\n",
		entry.Cause.DisplayName(), entry.Effect.DisplayName(), entry.Conclusion.DisplayName(), entry.DateKey)
	return nil
}

// #endregion run
