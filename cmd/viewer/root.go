package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"ftc-event-service/internal/aggregator"
	"ftc-event-service/internal/config"
	"ftc-event-service/internal/providers"
	"ftc-event-service/internal/providers/ftcscout"
	"ftc-event-service/internal/tui"
	"ftc-event-service/internal/viewer"
)

type viewerOptions struct {
	eventCode  string
	baseURL    string
	debounce   time.Duration
	timeout    time.Duration
	upstream   config.UpstreamConfig
	allowEmpty bool
}

type runFunc func(opts viewerOptions) error

func newRootCmd(run runFunc) *cobra.Command {
	cfg := config.Load()
	opts := viewerOptions{upstream: cfg.Upstream, allowEmpty: cfg.Aggregate.AllowEmptyRoster}

	cmd := &cobra.Command{
		Use:   "viewer [event-code]",
		Short: "Browse the teams of an FTC event ranked by OPR",
		Long: `viewer looks up an FTC event on FTCScout and lists its teams ranked
by OPR. Type an event code to load a roster, sort by number, name or OPR,
and select a team to see its profile and links.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.eventCode = strings.TrimSpace(args[0])
			}
			return run(opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.baseURL, "base-url", cfg.Upstream.BaseURL, "FTCScout REST API base URL")
	flags.DurationVar(&opts.debounce, "debounce", cfg.Viewer.Debounce, "delay after typing before the event is fetched")
	flags.DurationVar(&opts.timeout, "timeout", cfg.Aggregate.Timeout, "maximum time to build one event roster")
	return cmd
}

func runViewer(opts viewerOptions) error {
	client := ftcscout.NewClient(ftcscout.Config{
		BaseURL:    opts.baseURL,
		HTTPClient: &http.Client{Timeout: opts.upstream.Timeout},
	})
	source := providers.NewRetryingSource(client, nil, nil, opts.upstream.MaxAttempts, opts.upstream.Backoff)
	agg := aggregator.New(source, aggregator.Config{
		AllowEmptyRoster: opts.allowEmpty,
		MaxConcurrency:   opts.upstream.MaxConcurrency,
		Timeout:          opts.timeout,
	}, nil, nil)

	return tui.Run(agg, viewer.Options{Debounce: opts.debounce}, opts.eventCode)
}
