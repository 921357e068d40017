package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/grunt24/grading-api/internal/scoring"
	"github.com/grunt24/grading-api/internal/service"
	"github.com/grunt24/grading-api/pkg/export"
)

type calcOptions struct {
	term        scoring.Term
	recordsPath string
	weightsPath string
	scalePath   string
	format      string
	title       string
}

func run(cmd *cobra.Command, term string) error {
	v := viperForCmd(cmd)
	opts := calcOptions{
		term:        scoring.Term(term),
		recordsPath: v.GetString("records"),
		weightsPath: v.GetString("weights"),
		scalePath:   v.GetString("scale"),
		format:      strings.ToLower(v.GetString("format")),
		title:       v.GetString("title"),
	}
	for flag, value := range map[string]string{"records": opts.recordsPath, "weights": opts.weightsPath, "scale": opts.scalePath} {
		if value == "" {
			return fmt.Errorf("--%s is required", flag)
		}
	}

	logr := newLogger(v.GetString("log-level"))
	defer logr.Sync() //nolint:errcheck

	out := cmd.OutOrStdout()
	if path := v.GetString("output"); path != "" && path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}
	return calculate(opts, out, logr)
}

func calculate(opts calcOptions, out io.Writer, logr *zap.Logger) error {
	records, err := loadRecords(opts.recordsPath)
	if err != nil {
		return err
	}
	weights, err := loadWeights(opts.weightsPath)
	if err != nil {
		return err
	}
	scale, err := loadScale(opts.scalePath)
	if err != nil {
		return err
	}
	logr.Debug("inputs loaded",
		zap.String("term", string(opts.term)),
		zap.Int("records", len(records)),
		zap.Int("bands", len(scale)))

	exporter := service.NewExportService(opts.title, logr)
	switch opts.term {
	case scoring.TermMidterm:
		grades := make([]scoring.MidtermGrade, len(records))
		for i, r := range records {
			grades[i] = scoring.CalculateMidterm(r, weights, scale)
		}
		if opts.format == "json" {
			return writeJSON(out, grades)
		}
		return writeSheet(out, exporter, opts, exporter.MidtermSheet(grades, opts.title))
	default:
		grades := make([]scoring.FinalsGrade, len(records))
		for i, r := range records {
			grades[i] = scoring.CalculateFinals(r, weights, scale)
		}
		if opts.format == "json" {
			return writeJSON(out, grades)
		}
		return writeSheet(out, exporter, opts, exporter.FinalsSheet(grades, opts.title))
	}
}

func writeJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSheet(out io.Writer, exporter *service.ExportService, opts calcOptions, sheet export.Sheet) error {
	file, err := exporter.Render(opts.term, opts.format, sheet)
	if err != nil {
		return err
	}
	_, err = out.Write(file.Body)
	return err
}

func newLogger(level string) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	lvl := zapcore.WarnLevel
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.WarnLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	logr, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logr
}
