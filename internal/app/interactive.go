package app

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/codegauge/internal/analyzer"
	"github.com/blackwell-systems/codegauge/internal/estimate"
	"github.com/blackwell-systems/codegauge/internal/output"
)

var (
	interactiveFlags    seedFlags
	interactiveSection  string
	interactivePlatform string
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Analyze targets read line by line from stdin",
	Long: `Read repository URLs or archive paths from stdin, one per line, and
analyze each as it arrives. Submitting a new target while an analysis is
still running supersedes it: only the latest submission is reported.
Invalid lines are reported immediately and leave a running analysis alone.`,
	Args: cobra.NoArgs,
	RunE: runInteractive,
}

func init() {
	interactiveFlags.register(interactiveCmd)
	interactiveCmd.Flags().StringVar(&interactiveSection, "section", sectionOverview, "Section to show (overview, quality, security, operations, all)")
	interactiveCmd.Flags().StringVar(&interactivePlatform, "platform", "", "Repository platform; detected from the URL when omitted")
	rootCmd.AddCommand(interactiveCmd)
}

// interactiveEvent is a line to print, produced by the reader or by a
// finished analysis.
type interactiveEvent struct {
	result *analyzer.Result
	notice string
}

func runInteractive(cmd *cobra.Command, _ []string) error {
	if !validSection(interactiveSection) {
		return fmt.Errorf("unknown section %q", interactiveSection)
	}

	ctx := cmd.Context()
	sess := analyzer.NewSession(newAnalyzer(cmd, &interactiveFlags))
	defer sess.Abandon()

	events := make(chan interactiveEvent)
	var pending sync.WaitGroup

	// send gives up once ctx is done so no goroutine outlives the command.
	send := func(ev interactiveEvent) bool {
		select {
		case events <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}

	go func() {
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() && ctx.Err() == nil {
			target := strings.TrimSpace(scanner.Text())
			if target == "" || strings.HasPrefix(target, "#") {
				continue
			}

			d, err := parseTarget(target, estimate.Platform(interactivePlatform))
			var ch <-chan analyzer.Result
			if err == nil {
				ch, err = sess.Submit(ctx, d)
			}
			if err != nil {
				if !send(interactiveEvent{notice: fmt.Sprintf("%s: %v", target, err)}) {
					break
				}
				continue
			}

			pending.Add(1)
			go func() {
				defer pending.Done()
				r := <-ch
				send(interactiveEvent{result: &r})
			}()
		}
		if err := scanner.Err(); err != nil {
			send(interactiveEvent{notice: fmt.Sprintf("reading input: %v", err)})
		}
		pending.Wait()
		close(events)
	}()

	w := cmd.OutOrStdout()
	for {
		var ev interactiveEvent
		var ok bool
		select {
		case <-ctx.Done():
			// Interrupted: stop quietly like an EOF.
			return nil
		case ev, ok = <-events:
		}
		if !ok {
			return nil
		}

		if ev.result == nil {
			fmt.Fprintf(w, " %s\n", output.StyleError.Render(ev.notice))
			continue
		}

		r := ev.result
		switch {
		case errors.Is(r.Err, analyzer.ErrSuperseded):
			fmt.Fprintf(w, " %s\n", output.StyleMuted.Render("superseded: "+sourceLabel(r.Descriptor)))
		case r.Err != nil:
			fmt.Fprintf(w, " %s\n", output.StyleError.Render(fmt.Sprintf("%s: %v", sourceLabel(r.Descriptor), r.Err)))
		default:
			renderReport(w, analysisReport{Descriptor: r.Descriptor, Seed: r.Seed, Bundle: r.Bundle}, interactiveSection)
			fmt.Fprintln(w)
		}
	}
}
