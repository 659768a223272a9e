package patch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/aymanbagabas/go-udiff"
	"github.com/beevik/etree"

	"ide-config/internal/config"
	"ide-config/internal/ideaxml"
)

// Result describes what a patch did (or would do, on a dry run) to its file.
type Result struct {
	Patch   string
	Path    string
	Created bool
	Changed bool
	Diff    string
}

// Runner applies patches one file at a time: load, mutate, save.
// There is no rollback; files saved before a failure stay saved.
type Runner struct {
	Config *config.Config
	Logger *slog.Logger
	// DryRun renders every document and records a diff without touching disk.
	DryRun bool
}

func (r *Runner) Run(ctx context.Context, patches []Patch) ([]Result, error) {
	if r.Config == nil {
		return nil, errors.New("runner config is nil")
	}

	results := make([]Result, 0, len(patches))
	for _, p := range patches {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res, err := r.apply(p)
		if err != nil {
			r.logger().Error("patch failed", "patch", p.Name, "path", res.Path, "error", err)
			return results, fmt.Errorf("%s: %w", p.Name, err)
		}
		results = append(results, res)
	}

	return results, nil
}

func (r *Runner) apply(p Patch) (Result, error) {
	path := r.Config.Path(p.File)
	res := Result{Patch: p.Name, Path: path}
	log := r.logger().With("patch", p.Name, "path", path)

	before, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		res.Created = true
	case err != nil:
		return res, fmt.Errorf("read %s: %w", path, err)
	}

	var doc *etree.Document
	if r.DryRun {
		doc, _, err = ideaxml.Read(path, ideaxml.DefaultDocument)
	} else {
		doc, err = ideaxml.Load(path, ideaxml.DefaultDocument)
	}
	if err != nil {
		return res, err
	}

	if err := p.Apply(doc.Root(), r.Config); err != nil {
		return res, err
	}

	after, err := ideaxml.Render(doc)
	if err != nil {
		return res, err
	}
	res.Changed = res.Created || !bytes.Equal(before, after)

	if r.DryRun {
		if res.Changed {
			res.Diff = udiff.Unified(path, path, string(before), string(after))
		}
		log.Debug("dry run", "created", res.Created, "changed", res.Changed)
		return res, nil
	}

	if err := ideaxml.Save(doc, path); err != nil {
		return res, err
	}
	log.Info("patched", "created", res.Created, "changed", res.Changed)

	return res, nil
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}
