package main

import (
	"context"
	"errors"
	"testing"

	appconfig "github.com/wolfman30/window-quote/internal/config"
	"github.com/wolfman30/window-quote/internal/terminal"
	"github.com/wolfman30/window-quote/pkg/logging"
)

// scriptedDriver answers every prompt with the first option or a fixed value.
type scriptedDriver struct {
	inputs []string
	pos    int
	infos  []string
}

func (d *scriptedDriver) Input(context.Context, terminal.InputConfig) (string, error) {
	if d.pos >= len(d.inputs) {
		return "", errors.New("out of inputs")
	}
	v := d.inputs[d.pos]
	d.pos++
	return v, nil
}

func (d *scriptedDriver) Confirm(context.Context, terminal.ConfirmConfig) (bool, error) {
	return true, nil
}

func (d *scriptedDriver) Select(context.Context, terminal.SelectConfig) (int, error) {
	return 0, nil
}

func (d *scriptedDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func TestRunCompletesQuote(t *testing.T) {
	driver := &scriptedDriver{inputs: []string{"60614", "Jane", "Doe", "jane@example.com", "3125550199"}}
	cfg := &appconfig.Config{EmailProvider: appconfig.EmailProviderStub}

	if err := run(context.Background(), cfg, driver, logging.Discard()); err != nil {
		t.Fatalf("run: %v", err)
	}
	last := driver.infos[len(driver.infos)-1]
	if last == "" {
		t.Fatalf("expected confirmation output")
	}
}

func TestRunBadDefinitionPath(t *testing.T) {
	cfg := &appconfig.Config{FormDefinitionPath: t.TempDir() + "/missing.yaml"}
	if err := run(context.Background(), cfg, &scriptedDriver{}, logging.Discard()); err == nil {
		t.Fatalf("expected error for missing definition")
	}
}
