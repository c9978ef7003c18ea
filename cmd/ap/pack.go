package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	appack "github.com/catforgor/appack"
	"github.com/catforgor/appack/internal/config"
	"github.com/catforgor/appack/internal/fileutil"
)

// runPack is the default command: validate inputs, run the auto-doc
// pipeline (or copy a manual doc), and assemble the submission bundle.
func runPack(args []string) error {
	var flags packFlags
	fs := newPackFlagSet(&flags)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if flags.help {
		fs.Usage()
		return nil
	}
	if flags.version {
		fmt.Println(Version)
		return nil
	}
	setVerbose(flags.verbose)

	cfgPath, err := config.Path()
	if err != nil {
		return err
	}
	saved, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(&flags, saved)
	if err != nil {
		return err
	}

	logger.Info("Packing", "assignment", cfg.Assignment, "student", cfg.Name, "id", cfg.StudentID)

	folder := fmt.Sprintf("%s_%s_%s_Submission", cfg.Assignment, cfg.Name, cfg.StudentID)
	subDir := filepath.Join(cfg.OutputDir, folder)
	zipPath := filepath.Join(cfg.OutputDir, folder+".zip")
	docName := fmt.Sprintf("%s_%s_%s.doc", cfg.Assignment, cfg.Name, cfg.StudentID)
	docDest := filepath.Join(subDir, docName)

	// Manual doc must exist before any destructive write happens.
	manualDoc := ""
	if !cfg.AutoDoc && cfg.DocFile != "" {
		manualDoc = cfg.DocFile
		if err := appack.CheckExtension(manualDoc, []string{"doc"}, "Word document"); err != nil {
			return err
		}
	}

	if err := appack.PrepareOutput(subDir, zipPath, cfg.Force); err != nil {
		return err
	}
	if err := os.MkdirAll(subDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", subDir, err)
	}

	logger.Debug("Copying files", "into", subDir)
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("current directory: %w", err)
	}
	if err := appack.CopyNonBinaryFiles(cwd, subDir); err != nil {
		return err
	}

	cDest := filepath.Join(subDir, filepath.Base(cfg.CFile))
	if !fileutil.PathsEqual(filepath.Dir(cfg.CFile), cwd) && !fileutil.FileExists(cDest) {
		if err := fileutil.CopyFile(cfg.CFile, cDest); err != nil {
			return err
		}
	}

	docWritten := false
	switch {
	case cfg.AutoDoc:
		if err := generateDoc(cfg, docDest); err != nil {
			return err
		}
		docWritten = true
	case manualDoc != "":
		if fileutil.PathsEqual(manualDoc, docDest) {
			return fmt.Errorf("%w: doc source and destination resolve to the same file", errUsage)
		}
		if err := fileutil.CopyFile(manualDoc, docDest); err != nil {
			return err
		}
		docWritten = true
	default:
		logger.Warn("no .doc included, pass --auto-doc or --doc-file")
	}

	if err := writeBundleManifest(subDir, cfg); err != nil {
		return err
	}

	logger.Debug("Zipping", "into", zipPath)
	if err := appack.CreateZip(subDir, zipPath); err != nil {
		return err
	}

	logger.Info("Created", "folder", subDir)
	logger.Info("Zipped", "zip", zipPath)
	if docWritten {
		logger.Info("Doc", "path", docDest)
	}
	return nil
}

// resolveConfig merges flags over saved defaults into the resolved Config
// the pipeline consumes. Flags win; saved values fill gaps.
func resolveConfig(flags *packFlags, saved *config.File) (*appack.Config, error) {
	if flags.autoDoc && flags.docFile != "" {
		return nil, fmt.Errorf("%w: --doc-file and --auto-doc are mutually exclusive", errUsage)
	}
	if flags.assignment == "" {
		return nil, fmt.Errorf("%w: missing --assignment (-a)", errUsage)
	}

	label, num, err := appack.ParseAssignment(flags.assignment)
	if err != nil {
		return nil, err
	}

	name := flags.name
	if name == "" {
		name = saved.Name
	}
	if name == "" {
		return nil, fmt.Errorf("%w: missing --name (or set in config)", errUsage)
	}
	if name, err = appack.CleanName(name, "name"); err != nil {
		return nil, err
	}

	id := flags.studentID
	if id == "" {
		id = saved.StudentID
	}
	if id == "" {
		return nil, fmt.Errorf("%w: missing --id (or set in config)", errUsage)
	}
	if id, err = appack.CleanName(id, "student ID"); err != nil {
		return nil, err
	}

	cFile, err := appack.ResolveCFile(flags.cFile)
	if err != nil {
		return nil, err
	}
	if err := appack.CheckExtension(cFile, []string{"c"}, "C source"); err != nil {
		return nil, err
	}

	autoDoc := flags.autoDoc
	if !autoDoc && flags.docFile == "" && saved.AutoDoc != nil {
		autoDoc = *saved.AutoDoc
	}
	if !autoDoc {
		switch {
		case flags.runCommand != "":
			return nil, fmt.Errorf("%w: --run-command requires --auto-doc", errUsage)
		case flags.runDisplayTemplate != "":
			return nil, fmt.Errorf("%w: --run-display-template requires --auto-doc", errUsage)
		case flags.theme != "":
			return nil, fmt.Errorf("%w: --theme requires --auto-doc", errUsage)
		}
	}

	outDir := flags.outputDir
	if outDir == "" {
		outDir = saved.OutputDir
	}
	if outDir == "" {
		outDir = "."
	}
	if !fileutil.DirExists(outDir) {
		return nil, fmt.Errorf("%w: output directory not found: %s", errUsage, outDir)
	}

	cfg := &appack.Config{
		Assignment:         label,
		AssignmentNumber:   num,
		Name:               name,
		StudentID:          id,
		CFile:              cFile,
		DocFile:            flags.docFile,
		AutoDoc:            autoDoc,
		RunCommand:         pick(flags.runCommand, saved.RunCommand),
		RunDisplayTemplate: pick(flags.runDisplayTemplate, saved.RunDisplayTemplate),
		Theme:              pick(flags.theme, saved.Theme),
		OutputDir:          outDir,
		Watermark:          !flags.noWatermark && (saved.Watermark == nil || *saved.Watermark),
		Force:              flags.force,
	}
	if !autoDoc {
		cfg.RunCommand = ""
		cfg.RunDisplayTemplate = ""
		cfg.Theme = ""
	}
	return cfg, nil
}

// generateDoc runs the auto-doc pipeline and writes the document.
func generateDoc(cfg *appack.Config, docDest string) error {
	themesDir, err := config.ThemesDir()
	if err != nil {
		return err
	}

	logger.Info("Compiling and running", "c_file", cfg.CFile)
	svc := appack.New(appack.WithThemesDir(themesDir))
	res, err := svc.Document(context.Background(), cfg)
	if err != nil {
		return err
	}

	switch {
	case res.Run.TimedOut:
		logger.Warn("program timed out; transcript is partial",
			"after", appack.RunTimeout)
	case res.Run.ExitCode != nil && *res.Run.ExitCode != 0:
		logger.Warn("program exited non-zero", "exit_code", *res.Run.ExitCode)
	default:
		logger.Debug("run finished", "duration", res.Run.Duration.Round(time.Millisecond))
	}
	logger.Debug("screenshot rendered", "width", res.Image.Width, "height", res.Image.Height)

	if err := os.WriteFile(docDest, res.Doc, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", docDest, err)
	}
	return nil
}

// writeBundleManifest records the bundle contents for graders.
func writeBundleManifest(subDir string, cfg *appack.Config) error {
	entries, err := os.ReadDir(subDir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", subDir, err)
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			files = append(files, e.Name())
		}
	}

	return appack.WriteManifest(subDir, &appack.Manifest{
		Tool:       "appack",
		Version:    Version,
		Assignment: cfg.Assignment,
		Name:       cfg.Name,
		StudentID:  cfg.StudentID,
		CFile:      filepath.Base(cfg.CFile),
		AutoDoc:    cfg.AutoDoc,
		Files:      files,
		CreatedAt:  time.Now().UTC(),
	})
}

// pick returns the first non-empty string.
func pick(primary, fallback string) string {
	if primary != "" {
		return primary
	}
	return fallback
}
