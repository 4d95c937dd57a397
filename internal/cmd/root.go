package cmd

import (
	"fmt"

	"rime/internal/config"
	"rime/internal/lister"
	"rime/internal/log"
	"rime/internal/navigator"
	"rime/internal/selection"
	"rime/internal/tags"
	"rime/internal/tui"
	"rime/internal/tui/styles"
	"rime/internal/watch"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "dev"

type options struct {
	cfgFile  string
	debug    bool
	logFile  string
	watch    bool
	patterns []string

	cfg *config.Config
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "rime [directory]",
		Short: "Browse audio files and summarize their tags",
		Long: `rime is a terminal browser for audio files. Select files or whole
directories and see the tags they have in common.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.runBrowser(cmd, args)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			log.Discard()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.config/rime/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "write logs to this file")
	rootCmd.PersistentFlags().StringArrayVar(&opts.patterns, "pattern", nil, "file pattern to list (repeatable, default *.mp3)")
	rootCmd.Flags().BoolVar(&opts.watch, "watch", false, "refresh the listing when the directory changes")

	rootCmd.AddCommand(newLsCmd(opts))
	rootCmd.AddCommand(newSummaryCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// setup loads the configuration, applies flag overrides and configures
// logging.
func (o *options) setup(cmd *cobra.Command) error {
	var err error
	if o.cfgFile != "" {
		o.cfg, err = config.LoadConfigFile(o.cfgFile)
	} else {
		o.cfg, err = config.LoadConfig()
	}
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\nUsing default settings.\n", err)
		o.cfg = config.New()
	}

	flags := cmd.Flags()
	if flags.Changed("debug") {
		o.cfg.Logging.Debug = o.debug
	}
	if flags.Changed("log-file") {
		o.cfg.Logging.File = o.logFile
	}
	if flags.Changed("pattern") {
		o.cfg.Browser.Patterns = o.patterns
	}
	if flags.Lookup("watch") != nil && flags.Changed("watch") {
		o.cfg.Browser.Watch = o.watch
	}
	if err := o.cfg.Validate(); err != nil {
		return err
	}

	// The terminal belongs to the browser, so logs only go to a file
	if o.cfg.Logging.File != "" {
		log.Configure(log.WithFile(o.cfg.Logging.File))
	} else {
		log.Discard()
	}
	log.SetDebug(o.cfg.Logging.Debug)
	return nil
}

func (o *options) lister() (*lister.Lister, error) {
	return lister.New(o.cfg.ListerOptions()...)
}

// startDir picks the directory argument, falling back to the configured one.
func (o *options) startDir(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return o.cfg.Directories.Start
}

func (o *options) runBrowser(cmd *cobra.Command, args []string) error {
	l, err := o.lister()
	if err != nil {
		return err
	}
	nav, err := navigator.New(o.startDir(args), l, selection.New(l, tags.NewID3Parser()))
	if err != nil {
		return err
	}

	modelOpts := []tui.Option{tui.WithStyles(styles.FromTheme(o.cfg.Theme))}
	if o.cfg.Browser.Watch {
		w, err := watch.New()
		if err != nil {
			return err
		}
		if err := w.Start(); err != nil {
			return err
		}
		defer w.Stop()
		modelOpts = append(modelOpts, tui.WithWatcher(w))
	}

	log.LogWithFields(log.F("dir", nav.Dir()), log.F("watch", o.cfg.Browser.Watch)).Info("starting browser")
	p := tea.NewProgram(tui.New(nav, modelOpts...), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.LogError(err, "browser exited")
		return err
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "rime %s\n", Version)
		},
	}
}
