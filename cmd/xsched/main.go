package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"xsched/internal/app"
)

func main() {
	// A .env file is optional; real environment variables win either way.
	_ = godotenv.Load()

	var opts app.Options
	flag.StringVar(&opts.TimeRaw, "time", "", "first schedule time, e.g. \"9:30 PM\" or \"21:30 25-12-2026\" (required)")
	flag.StringVar(&opts.IntervalRaw, "interval", envOr("XSCHED_INTERVAL", "1h"), "gap between posts without their own schedule, e.g. 2h, 30m, 45")
	flag.StringVar(&opts.PostsDir, "posts-dir", envOr("XSCHED_POSTS_DIR", "posts"), "directory holding the numbered posts")
	flag.StringVar(&opts.CookieFile, "cookies", envOr("XSCHED_COOKIES", "cookies.json"), "exported session cookies (JSON array)")
	flag.StringVar(&opts.ConfigPath, "config", envOr("XSCHED_CONFIG", ""), "optional config file (YAML or JSON)")
	flag.Parse()

	if opts.TimeRaw == "" {
		fmt.Fprintln(os.Stderr, "xsched: --time is required")
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "xsched: %v\n", err)
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
