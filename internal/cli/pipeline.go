package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"surveygen/internal/codebook"
	"surveygen/internal/config"
	"surveygen/internal/promptgen"
	"surveygen/internal/spec"
	"surveygen/internal/survey"
)

// pipeline bundles the loaded inputs shared by every generating command.
type pipeline struct {
	cfg      spec.Config
	root     string
	book     *codebook.Book
	selected *survey.Table
}

// loadConfigAndBook resolves and loads the config plus its codebook without
// touching the survey file. Used by validate, which must work even when the
// input data is not present.
func loadConfigAndBook(configPath string) (spec.Config, string, *codebook.Book, error) {
	resolved, err := resolveConfigPath(configPath)
	if err != nil {
		return spec.Config{}, "", nil, err
	}
	cfg, err := config.Load(resolved)
	if err != nil {
		return spec.Config{}, "", nil, err
	}
	root := config.RootFromConfigPath(resolved)

	var book *codebook.Book
	if cfg.Codebook == "" {
		book, err = codebook.Embedded()
	} else {
		book, err = codebook.Load(resolvePath(root, cfg.Codebook))
	}
	if err != nil {
		return spec.Config{}, "", nil, err
	}
	return cfg, root, book, nil
}

// loadPipeline loads the config, codebook, and survey file, and applies the
// configured column selection.
func loadPipeline(ctx context.Context, configPath string) (*pipeline, error) {
	cfg, root, book, err := loadConfigAndBook(configPath)
	if err != nil {
		return nil, err
	}
	table, err := survey.Load(ctx, resolvePath(root, cfg.Input))
	if err != nil {
		return nil, err
	}
	selected, err := table.Select(cfg.DemographicColumns, cfg.ResponseColumns)
	if err != nil {
		return nil, err
	}
	return &pipeline{cfg: cfg, root: root, book: book, selected: selected}, nil
}

// assembler builds the prompt assembler for the loaded selection with
// recodes enabled.
func (p *pipeline) assembler() (*promptgen.Assembler, error) {
	assembler, err := promptgen.NewAssembler(p.book, p.cfg.Perspective,
		p.cfg.DemographicColumns, p.cfg.ResponseColumns, p.cfg.QuestionText)
	if err != nil {
		return nil, err
	}
	assembler.EnableRecodes()
	return assembler, nil
}

// outputPath picks the destination file: the explicit flag when given,
// otherwise the configured output directory. The parent directory is
// created as needed.
func (p *pipeline) outputPath(explicit, defaultName string) (string, error) {
	path := explicit
	if path == "" {
		path = filepath.Join(p.root, p.cfg.Output.Dir, defaultName)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	return path, nil
}

func resolvePath(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// writeFileAtomic writes contents via a temp file and rename, so partial
// output never lands under the final name.
func writeFileAtomic(path string, contents []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(contents); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return os.Rename(tmp.Name(), path)
}
