package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"travelmitra-backend/internal/client"
	"travelmitra-backend/internal/config"
	"travelmitra-backend/internal/types"
	"travelmitra-backend/internal/ui"
)

var (
	budgetOptions    = []string{"low", "medium", "luxury"}
	transportOptions = []string{"train", "bus", "flight", "car"}
	dietOptions      = []string{"veg", "non-veg", "vegan", "jain"}
)

type planOptions struct {
	trip     types.TripRequest
	relayURL string
	out      string
	feedback string
	ask      bool
}

func newPlanCmd(cfg config.ClientConfig) *cobra.Command {
	opts := planOptions{}
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate a trip plan and write it as an HTML page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.check(); err != nil {
				return err
			}
			return runPlan(cmd.Context(), opts, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.trip.Prompt, "prompt", "", "describe the trip, e.g. \"3 days in Goa with friends\"")
	f.StringVar(&opts.trip.Budget, "budget", "medium", "budget: "+strings.Join(budgetOptions, "|"))
	f.StringVar(&opts.trip.Transport, "transport", "train", "transport: "+strings.Join(transportOptions, "|"))
	f.StringVar(&opts.trip.Diet, "diet", "veg", "diet: "+strings.Join(dietOptions, "|"))
	f.StringVar(&opts.trip.Language, "language", "en", "response language as a BCP-47 tag (en, hi, ta, bn)")
	f.StringVar(&opts.relayURL, "relay", cfg.RelayURL, "relay generate endpoint")
	f.StringVarP(&opts.out, "out", "o", "trip.html", "output HTML file, - for stdout")
	f.StringVar(&opts.feedback, "feedback", "", "record feedback on the plan: up|down")
	f.BoolVar(&opts.ask, "ask", false, "ask for feedback on stdin after the plan renders")
	return cmd
}

func (o planOptions) check() error {
	if err := checkOption("budget", o.trip.Budget, budgetOptions); err != nil {
		return err
	}
	if err := checkOption("transport", o.trip.Transport, transportOptions); err != nil {
		return err
	}
	if err := checkOption("diet", o.trip.Diet, dietOptions); err != nil {
		return err
	}
	if _, err := language.Parse(o.trip.Language); err != nil {
		return fmt.Errorf("invalid --language %q: %w", o.trip.Language, err)
	}
	if o.feedback != "" && o.feedback != string(ui.FeedbackUp) && o.feedback != string(ui.FeedbackDown) {
		return ui.ErrInvalidFeedback
	}
	return nil
}

func checkOption(name, v string, allowed []string) error {
	if !lo.Contains(allowed, v) {
		return fmt.Errorf("invalid --%s %q (want %s)", name, v, strings.Join(allowed, "|"))
	}
	return nil
}

// runPlan submits the trip, optionally records feedback, and writes the
// resulting page. The page is written on failure too so the alert is visible.
func runPlan(ctx context.Context, o planOptions, in io.Reader, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	c := client.New(http.DefaultClient, o.relayURL)
	s := ui.NewSession(ui.WithStatusFunc(func(msg string) {
		fmt.Fprintf(stderr, "%s\n", msg)
	}))

	submitErr := s.Submit(ctx, c, o.trip)
	if submitErr == nil {
		kind := o.feedback
		if kind == "" && o.ask {
			kind = askFeedback(in, stderr)
		}
		if kind != "" {
			if err := s.RecordFeedback(kind); err != nil {
				fmt.Fprintf(stderr, "feedback not recorded: %v\n", err)
			}
		}
	}

	if err := writePage(o.out, stdout, s.State()); err != nil {
		return err
	}
	if submitErr != nil {
		return errors.New(s.State().Alert)
	}
	if o.out != "-" {
		fmt.Fprintf(stderr, "plan written to %s\n", o.out)
	}
	return nil
}

func askFeedback(in io.Reader, stderr io.Writer) string {
	fmt.Fprint(stderr, "Was this plan helpful? [up/down, empty to skip]: ")
	line, _ := bufio.NewReader(in).ReadString('\n')
	return strings.ToLower(strings.TrimSpace(line))
}

func writePage(path string, stdout io.Writer, st ui.State) error {
	if path == "-" {
		return ui.Render(stdout, st)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := ui.Render(f, st); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
