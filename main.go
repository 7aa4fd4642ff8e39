// Command kittyfont inspects and rewrites the font configuration of the
// kitty terminal: check the current font, list the fonts kitty can
// render, set the family or size, and signal running kitties to reload.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ihatemodels/kittyfont/internal/config"
	"github.com/ihatemodels/kittyfont/internal/fonts"
	"github.com/ihatemodels/kittyfont/internal/kitty"
	"github.com/ihatemodels/kittyfont/internal/service"
	"github.com/ihatemodels/kittyfont/internal/ui/picker"
	"github.com/ihatemodels/kittyfont/internal/ui/styles"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styles.Error.Render("Error: ")+err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgPath string
		verbose bool

		cfg *config.Config
		svc *service.Service
	)

	root := &cobra.Command{
		Use:   "kittyfont",
		Short: "Manage the font configuration of the kitty terminal",
		Long: styles.Title.Render("kittyfont") + `

Reads and rewrites the font_family and font_size lines of kitty.conf,
lists the installed fonts kitty can actually render, and signals
running kitty processes to reload after every change.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfgPath != "" {
				cfg, err = config.LoadFromPath(cfgPath)
			} else {
				cfg, err = config.Load()
			}
			if err != nil {
				return err
			}

			log := newLogger(cfg, verbose)
			svc, err = buildService(cfg, log)
			return err
		},
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to the kittyfont config file")
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Show the font family and size configured in kitty.conf",
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := svc.Check(cmd.Context())
			if errors.Is(err, kitty.ErrNotConfigured) {
				fmt.Println(styles.Status.Render("font_family is not set in " + cfg.Kitty.ConfPath))
				if set.Size != "" {
					fmt.Println(styles.Label.Render("Font size:   ") + styles.Value.Render(set.Size))
				}
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Println(styles.Label.Render("Font family: ") + styles.Value.Render(set.Family))
			if set.Size != "" {
				fmt.Println(styles.Label.Render("Font size:   ") + styles.Value.Render(set.Size))
			} else {
				fmt.Println(styles.Label.Render("Font size:   ") + styles.Dim.Render("not set"))
			}
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List installed fonts that kitty can render",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := svc.List(cmd.Context())
			if len(names) == 0 {
				fmt.Println(styles.Dim.Render("No compatible fonts found. Are fc-list and kitty on your PATH?"))
				return nil
			}
			fmt.Println(styles.Title.Render(fmt.Sprintf("Compatible fonts (%d)", len(names))))
			for _, name := range names {
				fmt.Println("  " + styles.Item.Render(name))
			}
			return nil
		},
	}

	var rawFont bool
	setFontCmd := &cobra.Command{
		Use:   "set-font [name]",
		Short: "Set font_family in kitty.conf",
		Long: `Set font_family in kitty.conf and reload running kitties.

The name must be one of the compatible fonts reported by "list", in
either its raw or whitespace-stripped spelling. Pass --raw to skip the
compatibility check and write the name verbatim.`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return svc.Keys(cmd.Context()), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			var err error
			if rawFont {
				err = svc.SetFontRaw(cmd.Context(), name)
			} else {
				err = svc.SetFontByKey(cmd.Context(), name)
			}
			if err != nil {
				return err
			}
			fmt.Println(styles.Selected.Render("✓ ") + "Font family set to " + styles.Value.Render(name))
			return nil
		},
	}
	setFontCmd.Flags().BoolVar(&rawFont, "raw", false, "write the name as given, without checking compatibility")

	setSizeCmd := &cobra.Command{
		Use:   "set-size <size>",
		Short: "Set font_size in kitty.conf",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := svc.SetSize(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println(styles.Selected.Render("✓ ") + "Font size set to " + styles.Value.Render(args[0]))
			return nil
		},
	}

	sizeCmd := &cobra.Command{
		Use:   "size",
		Short: "Step the font size up or down",
	}
	sizeCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Increase font_size by half a point",
			RunE: func(cmd *cobra.Command, args []string) error {
				return stepSize(cmd, svc, 0.5)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Decrease font_size by half a point",
			RunE: func(cmd *cobra.Command, args []string) error {
				return stepSize(cmd, svc, -0.5)
			},
		},
	)

	pickCmd := &cobra.Command{
		Use:   "pick",
		Short: "Choose a font interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			applied, err := picker.Run(cmd.Context(), svc, cfg.UI.Border)
			if err != nil {
				return err
			}
			if applied != "" {
				fmt.Println(styles.Selected.Render("✓ ") + "Font family set to " + styles.Value.Render(applied))
			}
			return nil
		},
	}

	reloadCmd := &cobra.Command{
		Use:   "reload",
		Short: "Signal running kitty processes to re-read their config",
		RunE: func(cmd *cobra.Command, args []string) error {
			sig, err := cfg.Signal()
			if err != nil {
				return err
			}
			log := newLogger(cfg, verbose)
			kitty.Reloader{ProcessName: cfg.Kitty.ProcessName, Signal: sig, Log: log}.Reload(cmd.Context())
			return nil
		},
	}

	root.AddCommand(checkCmd, listCmd, setFontCmd, setSizeCmd, sizeCmd, pickCmd, reloadCmd)
	return root
}

func stepSize(cmd *cobra.Command, svc *service.Service, delta float64) error {
	size, err := svc.AdjustSize(cmd.Context(), delta)
	if err != nil {
		return err
	}
	fmt.Println(styles.Selected.Render("✓ ") + "Font size set to " + styles.Value.Render(size))
	return nil
}

func newLogger(cfg *config.Config, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	switch cfg.Logging.Level {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}
	if verbose {
		level = zerolog.DebugLevel
	}

	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

func buildService(cfg *config.Config, log zerolog.Logger) (*service.Service, error) {
	strategy, err := cfg.Strategy()
	if err != nil {
		return nil, err
	}
	sig, err := cfg.Signal()
	if err != nil {
		return nil, err
	}

	enum := fonts.NewEnumerator(
		fonts.SystemSource{Timeout: cfg.Fonts.CommandTimeout},
		kitty.FontSource{Binary: cfg.Kitty.Binary, Timeout: cfg.Fonts.CommandTimeout},
		log,
	)
	reloader := kitty.Reloader{ProcessName: cfg.Kitty.ProcessName, Signal: sig, Log: log}

	return service.New(
		kitty.NewConf(cfg.Kitty.ConfPath),
		enum,
		&fonts.IndexCache{},
		strategy,
		reloader,
		log,
	), nil
}
