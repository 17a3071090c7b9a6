package site

import (
	"os"
	"path/filepath"
	"slices"

	"git.home.luguber.info/inful/webhelp/internal/foundation/errors"
	"git.home.luguber.info/inful/webhelp/internal/logfields"
)

// beginStaging creates the sibling staging directory "<output>_stage" and removes any
// leftover from an interrupted run.
func (bs *buildState) beginStaging() error {
	stage := bs.outputDir + "_stage"
	if err := os.RemoveAll(stage); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to clear stale staging directory").
			Fatal().
			WithContext(logfields.KeyFile, stage).
			Build()
	}
	if err := os.MkdirAll(stage, 0o755); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create staging directory").
			Fatal().
			WithContext(logfields.KeyFile, stage).
			Build()
	}
	bs.stageDir = stage
	bs.logger.Debug("Initialized staging directory", logfields.Path(stage), logfields.Output(bs.outputDir))
	return nil
}

// carryOverAssets copies everything in the current output that the build does not
// generate (stylesheets, scripts, the index page) into the staging directory.
func (bs *buildState) carryOverAssets() error {
	entries, err := os.ReadDir(bs.outputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to read output directory").
			Fatal().
			WithContext(logfields.KeyFile, bs.outputDir).
			Build()
	}
	generated := []string{bs.cfg.Output.PagesDir, bs.cfg.Output.NavigationFile, bs.cfg.Output.MetadataFile, ReportFileName}
	for _, entry := range entries {
		if slices.Contains(generated, entry.Name()) {
			continue
		}
		src := filepath.Join(bs.outputDir, entry.Name())
		dst := filepath.Join(bs.stageDir, entry.Name())
		switch {
		case entry.IsDir():
			err = os.CopyFS(dst, os.DirFS(src))
		case entry.Type().IsRegular():
			err = copyFile(src, dst)
		default:
			continue
		}
		if err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to carry over site asset").
				Fatal().
				WithContext(logfields.KeyFile, src).
				Build()
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644) //nolint:gosec // public site asset
}

// finalizeStaging promotes the staging directory to the output location:
//  1. move the existing output to "<output>.prev",
//  2. rename staging to output,
//  3. remove the backup.
//
// If step 2 fails the backup is moved back.
func (bs *buildState) finalizeStaging() error {
	if bs.stageDir == "" {
		return errors.InternalError("no staging directory initialized").Build()
	}
	if _, err := os.Stat(bs.stageDir); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "staging directory missing").
			Fatal().
			WithContext(logfields.KeyFile, bs.stageDir).
			Build()
	}

	prev := bs.outputDir + ".prev"
	if err := os.RemoveAll(prev); err != nil {
		bs.logger.Warn("Failed to remove previous backup", logfields.Path(prev), logfields.Error(err))
	}
	hadOutput := false
	if _, err := os.Stat(bs.outputDir); err == nil {
		if err := os.Rename(bs.outputDir, prev); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to back up existing output").
				Fatal().
				WithContext(logfields.KeyFile, bs.outputDir).
				Build()
		}
		hadOutput = true
	}
	if err := os.Rename(bs.stageDir, bs.outputDir); err != nil {
		if hadOutput {
			_ = os.Rename(prev, bs.outputDir)
		}
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to promote staging directory").
			Fatal().
			WithContext(logfields.KeyFile, bs.outputDir).
			Build()
	}
	bs.stageDir = ""
	if hadOutput {
		if err := os.RemoveAll(prev); err != nil {
			bs.logger.Warn("Failed to remove previous backup", logfields.Path(prev), logfields.Error(err))
		}
	}
	bs.logger.Info("Promoted staging directory", logfields.Output(bs.outputDir))
	return nil
}

// abortStaging removes the staging directory after a failed build.
func (bs *buildState) abortStaging() {
	if bs.stageDir == "" {
		return
	}
	dir := bs.stageDir
	bs.stageDir = ""
	if err := os.RemoveAll(dir); err != nil {
		bs.logger.Warn("Failed to remove staging directory after abort", logfields.Path(dir), logfields.Error(err))
		return
	}
	bs.logger.Debug("Removed staging directory after abort", logfields.Path(dir))
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundError("file not found").WithContext(logfields.KeyFile, path).Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read file").
			Fatal().
			WithContext(logfields.KeyFile, path).
			Build()
	}
	return data, nil
}
