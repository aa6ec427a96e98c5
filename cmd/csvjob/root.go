package main

import (
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	fblock "github.com/YuukanOO/FBlock"
	"github.com/YuukanOO/FBlock/components/csvio"
	"github.com/YuukanOO/FBlock/components/table"
	"github.com/YuukanOO/FBlock/drawer"
)

const jobName = "csvjob"

type rootFlags struct {
	config    string
	header    bool
	separator string
	columns   []string
	dot       string
	verbose   bool
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "csvjob <file>",
		Short: "Read a delimited text file and print selected columns as YAML",
		Long: `csvjob runs a read, select and encode job over a delimited text file.

Fields are split on the separator as is: quotes are not interpreted.
Without --header, columns are named Column1, Column2 and so on.`,
		Args:          cobra.ExactArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, &flags, args[0])
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	f := cmd.Flags()
	f.StringVar(&flags.config, "config", "", "YAML file with default options")
	f.BoolVar(&flags.header, "header", false, "First line holds the column names")
	f.StringVar(&flags.separator, "separator", csvio.DefaultSeparator, "Field separator")
	f.StringSliceVar(&flags.columns, "columns", nil, "Columns to keep, in order (default all)")
	f.StringVar(&flags.dot, "dot", "", "Write the job graph in DOT format to this file")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "Log every stage")

	return cmd
}

// resolve merges the config file with the flags set on the command line.
func resolve(cmd *cobra.Command, flags *rootFlags) (config, error) {
	cfg := defaultConfig()
	if flags.config != "" {
		if err := loadConfig(flags.config, &cfg); err != nil {
			return cfg, err
		}
	}

	f := cmd.Flags()
	if f.Changed("header") {
		cfg.Header = flags.header
	}
	if f.Changed("separator") {
		cfg.Separator = flags.separator
	}
	if f.Changed("columns") {
		cfg.Columns = flags.columns
	}
	if f.Changed("dot") {
		cfg.Dot = flags.dot
	}
	if f.Changed("verbose") {
		cfg.Verbose = flags.verbose
	}
	return cfg, nil
}

func newJob(cfg config, logger *slog.Logger) *fblock.Job[string, []byte] {
	job := fblock.NewJob[string, []byte](jobName).WithLogger(logger)

	reader := csvio.NewReader(csvio.WithHeader(cfg.Header), csvio.WithSeparator(cfg.Separator))
	fblock.Start(job, reader).
		Then(table.Select(cfg.Columns...)).
		End(table.EncodeYAML(csvio.KeySource))
	return job
}

func run(cmd *cobra.Command, flags *rootFlags, path string) error {
	cfg, err := resolve(cmd, flags)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	job := newJob(cfg, logger)
	defer job.Close()

	var d *drawer.Drawer
	if cfg.Dot != "" {
		d = drawer.New(job)
		if err := d.Observe(); err != nil {
			return err
		}
	}

	out, err := job.Run(cmd.Context(), path)
	if err != nil {
		return errors.Wrap(err, jobName)
	}
	if _, err := cmd.OutOrStdout().Write(out); err != nil {
		return errors.Wrap(err, "unable to write output")
	}
	logger.Debug("job complete", "job", job.Name(), "file", path)

	if d != nil {
		// Stage events reach the drawer once every queued hook handler returned.
		if err := job.Close(); err != nil {
			return errors.Wrap(err, "unable to close job")
		}
		if err := writeDot(d, cfg.Dot); err != nil {
			return err
		}
		logger.Info("graph written", "file", cfg.Dot)
	}
	return nil
}

func writeDot(d *drawer.Drawer, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "unable to create %s", path)
	}
	defer file.Close()

	if err := d.Draw(file); err != nil {
		return errors.Wrapf(err, "unable to draw %s", path)
	}
	return file.Close()
}
