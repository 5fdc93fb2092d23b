package terminal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wolfman30/window-quote/internal/leads"
	"github.com/wolfman30/window-quote/internal/quoteform"
	"github.com/wolfman30/window-quote/pkg/logging"
)

// clearToken empties a text field. An empty line keeps the shown default.
const clearToken = "-"

const (
	actionContinue = "Continue"
	actionSubmit   = "Get my quotes"
	actionBack     = "Back"
)

// LeadCapturer receives the session once it has been submitted.
type LeadCapturer interface {
	Capture(ctx context.Context, s *quoteform.Session) (*leads.Lead, error)
}

// Runner walks a quote session step by step through a PromptDriver.
type Runner struct {
	driver PromptDriver
	logger *logging.Logger
	intake LeadCapturer
}

// NewRunner builds a runner. intake may be nil.
func NewRunner(driver PromptDriver, intake LeadCapturer, logger *logging.Logger) *Runner {
	if driver == nil {
		panic("terminal: prompt driver cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Runner{driver: driver, logger: logger, intake: intake}
}

// Run prompts until the session is submitted or the user aborts.
func (r *Runner) Run(ctx context.Context, s *quoteform.Session) (quoteform.Confirmation, error) {
	def := s.Definition()
	for {
		step := s.CurrentStep()
		st, _ := def.Step(step)
		progress := s.Progress()
		if err := r.driver.Info(ctx, fmt.Sprintf("\nStep %d of %d (%d%%) %s", step, s.TotalSteps(), progress.Percent, st.Title)); err != nil {
			return quoteform.Confirmation{}, err
		}

		for _, f := range st.Fields {
			if err := r.ask(ctx, s, f); err != nil {
				return quoteform.Confirmation{}, err
			}
		}

		final := step == s.TotalSteps()
		action, err := r.chooseAction(ctx, step, final)
		if err != nil {
			return quoteform.Confirmation{}, err
		}

		switch {
		case action == actionBack:
			if err := s.Retreat(step); err != nil {
				return quoteform.Confirmation{}, err
			}
		case final:
			c, err := s.Submit()
			if err != nil {
				if errors.Is(err, quoteform.ErrValidation) {
					if err := r.showErrors(ctx, s, st); err != nil {
						return quoteform.Confirmation{}, err
					}
					continue
				}
				return quoteform.Confirmation{}, err
			}
			r.capture(ctx, s)
			return c, r.showConfirmation(ctx, c)
		default:
			if err := s.Advance(step); err != nil {
				if errors.Is(err, quoteform.ErrValidation) {
					if err := r.showErrors(ctx, s, st); err != nil {
						return quoteform.Confirmation{}, err
					}
					continue
				}
				return quoteform.Confirmation{}, err
			}
		}
	}
}

func (r *Runner) ask(ctx context.Context, s *quoteform.Session, f quoteform.FieldDescriptor) error {
	switch f.Kind {
	case quoteform.KindRadio:
		labels := make([]string, len(f.Options))
		def := -1
		for i, opt := range f.Options {
			labels[i] = opt.Label
			if s.IsSelected(f.ID, opt.Value) {
				def = i
			}
		}
		idx, err := r.driver.Select(ctx, SelectConfig{Message: f.Label, Options: labels, DefaultIndex: def})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(f.Options) {
			return fmt.Errorf("terminal: option %d out of range for %s", idx, f.ID)
		}
		return s.SelectOption(f.ID, f.Options[idx].Value)
	case quoteform.KindCheckbox:
		ok, err := r.driver.Confirm(ctx, ConfirmConfig{Message: f.Label, Default: s.Checked(f.ID)})
		if err != nil {
			return err
		}
		return s.SetChecked(f.ID, ok)
	default:
		current := s.Value(f.ID)
		cfg := InputConfig{Message: f.Label, Default: current}
		if current != "" {
			cfg.Help = "Enter " + clearToken + " to clear"
		}
		raw, err := r.driver.Input(ctx, cfg)
		if err != nil {
			return err
		}
		if strings.TrimSpace(raw) == clearToken {
			raw = ""
		}
		stored, err := s.SetField(f.ID, raw)
		if err != nil {
			return err
		}
		if stored != raw && stored != "" {
			if err := r.driver.Info(ctx, "  saved as "+stored); err != nil {
				return err
			}
		}
		return r.checkOnBlur(ctx, s, f, stored)
	}
}

// checkOnBlur reports an email or phone problem as soon as it is typed
// rather than waiting for the step to be submitted.
func (r *Runner) checkOnBlur(ctx context.Context, s *quoteform.Session, f quoteform.FieldDescriptor, value string) error {
	if value == "" || (f.Format != quoteform.FormatEmail && f.Format != quoteform.FormatPhone) {
		return nil
	}
	kind, err := s.ValidateField(f.ID)
	if err != nil || kind == "" {
		return err
	}
	return r.driver.Info(ctx, fmt.Sprintf("  ! %s: %s", f.Label, kind.Message()))
}

func (r *Runner) chooseAction(ctx context.Context, step int, final bool) (string, error) {
	forward := actionContinue
	if final {
		forward = actionSubmit
	}
	if step <= 1 {
		return forward, nil
	}
	options := []string{forward, actionBack}
	idx, err := r.driver.Select(ctx, SelectConfig{Message: "Next", Options: options, DefaultIndex: 0})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(options) {
		return "", fmt.Errorf("terminal: action %d out of range", idx)
	}
	return options[idx], nil
}

// showErrors prints the inline messages of the step in field order.
func (r *Runner) showErrors(ctx context.Context, s *quoteform.Session, st quoteform.Step) error {
	for _, f := range st.Fields {
		if kind, ok := s.FieldError(f.ID); ok {
			if err := r.driver.Info(ctx, fmt.Sprintf("  ! %s: %s", f.Label, kind.Message())); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Runner) showConfirmation(ctx context.Context, c quoteform.Confirmation) error {
	for _, line := range []string{"\n" + c.Heading, c.Message, c.FollowUp} {
		if line == "" {
			continue
		}
		if err := r.driver.Info(ctx, line); err != nil {
			return err
		}
	}
	return nil
}

// capture hands the submitted session to the intake. Failures are logged;
// the visitor already has their confirmation.
func (r *Runner) capture(ctx context.Context, s *quoteform.Session) {
	if r.intake == nil {
		return
	}
	if _, err := r.intake.Capture(ctx, s); err != nil {
		r.logger.Error("failed to capture lead from terminal", "session_id", s.ID(), "error", err)
	}
}
