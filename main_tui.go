package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"causalflow/config"
	"causalflow/core"
	"causalflow/editor"
	"causalflow/export"
	"causalflow/layout"
	"causalflow/logging"
	"causalflow/render"
)

type editOptions struct {
	path   string // model file, may be empty
	watch  bool
	output string // lavaan file written by the export key
}

// RunInteractive launches the terminal editor and blocks until the user quits.
func RunInteractive(ctx context.Context, opts editOptions) error {
	m := core.NewModel()
	if opts.path != "" {
		var err error
		if _, m, err = loadModel(opts.path); err != nil {
			return err
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to set up terminal: %w", err)
	}
	defer screen.Fini()

	d := editor.NewDiagram(layout.CellGrid(), editor.WithModel(m), editor.WithNotifier(editor.LogNotifier{}))
	tui := editor.NewTUI(screen, d, render.DetectCapabilities().Style())
	tui.OnWrite = lavaanWriter(opts.output)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if opts.watch {
		go watchModel(ctx, tui, opts.path)
	}

	if err := tui.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// watchModel posts every reload of path to the editor.
func watchModel(ctx context.Context, tui *editor.TUI, path string) {
	name := filepath.Base(path)
	err := config.Watch(ctx, path, func(f *config.File, err error) {
		if perr := tui.Post(reloadUpdate(name, f, err)); perr != nil {
			logging.Debugf("dropping reload of %s: %v", name, perr)
		}
	})
	if err != nil {
		_ = tui.Post(func(*editor.Diagram) (string, error) { return "", err })
	}
}

// reloadUpdate replaces the diagram model with the reloaded file, keeping the
// ids of variables and paths that survived the edit.
func reloadUpdate(name string, f *config.File, loadErr error) editor.Update {
	return func(d *editor.Diagram) (string, error) {
		if loadErr != nil {
			return "", loadErr
		}
		m, err := config.Apply(f, d.Model())
		if err != nil {
			return "", fmt.Errorf("reloading %s: %w", name, err)
		}
		d.Load(m)
		return "Reloaded " + name, nil
	}
}

func lavaanWriter(path string) editor.WriteFunc {
	e := export.NewLavaanExporter()
	if path == "" {
		path = export.DefaultFileName(e)
	}
	return func(m *core.Model) (string, error) {
		data, err := e.Export(m)
		if err != nil {
			return "", err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return "", fmt.Errorf("writing %s: %w", path, err)
		}
		logging.Infof("wrote lavaan model to %s", path)
		return path, nil
	}
}
