package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/wiltodelta/find-my-next-job/internal/config"
	"github.com/wiltodelta/find-my-next-job/internal/recon"
	"github.com/wiltodelta/find-my-next-job/internal/scheduler"
	"github.com/wiltodelta/find-my-next-job/internal/scrape"
	"github.com/wiltodelta/find-my-next-job/internal/scrape/util"
	"github.com/wiltodelta/find-my-next-job/internal/secrets"
	"github.com/wiltodelta/find-my-next-job/internal/state"
	"github.com/wiltodelta/find-my-next-job/internal/store"
)

func main() {
	var (
		cfgPath     = flag.String("config", filepath.Join("config", "config.yml"), "path to config file")
		sourcesPath = flag.String("sources", filepath.Join("config", "sources.yml"), "path to sources file")
		ids         = flag.String("ids", "", "comma-separated source ids to check (default: all enabled)")
		days        = flag.Int("days", 0, "only keep listings posted within N days (default: config value)")
		listOnly    = flag.Bool("list", false, "list available source ids and exit")
		login       = flag.Bool("login", false, "store the YC session cookie (and IMAP password) in the keychain")
		watch       = flag.Duration("watch", 0, "re-run on this interval instead of once (e.g. 30m)")
		serve       = flag.Bool("serve", false, "expose the localhost status API while running")
	)
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Printf("[config] %s unusable, falling back to defaults: %v", *cfgPath, err)
		cfg = config.Default()
	}
	if err := config.OverlaySources(&cfg, *sourcesPath); err != nil {
		log.Printf("[config] sources overlay %s unusable, keeping inline sources: %v", *sourcesPath, err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("[config] %v", err)
	}

	if dir := os.Getenv("JOBCHECKER_DATA_DIR"); dir != "" {
		cfg.App.DataDir = dir
	}

	if *listOnly {
		listSources(cfg)
		return
	}
	if *login {
		if err := runLogin(cfg); err != nil {
			log.Fatalf("[login] %v", err)
		}
		return
	}

	sources, unknown := config.EnabledSources(cfg, splitIDs(*ids))
	if len(unknown) > 0 {
		log.Printf("[config] unknown source ids: %s (use -list to see valid ids)", strings.Join(unknown, ", "))
	}
	if len(sources) == 0 {
		log.Println("no sources to check")
		return
	}

	dayThreshold := cfg.Run.DaysThreshold
	if *days > 0 {
		dayThreshold = *days
	}

	if err := os.MkdirAll(cfg.App.DataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	lock, err := state.LockRun(cfg.App.DataDir)
	if err != nil {
		log.Fatalf("[run] %v", err)
	}
	defer func() { _ = lock.Unlock() }()

	var archive *store.DB
	if db, err := store.Open(filepath.Join(cfg.App.DataDir, "listings.db")); err != nil {
		log.Printf("[archive] disabled: %v", err)
	} else {
		archive = db
		defer archive.Close()
	}

	limiter := util.NewHostLimiter(1.0, 2)
	runner := &recon.Runner{
		Cfg:     cfg,
		Sources: sources,
		NewFetcher: func(src config.Source) scrape.Fetcher {
			return scrape.NewFetcher(src, cfg, limiter)
		},
		StateStore: &state.Store{Path: filepath.Join(cfg.App.DataDir, "state.json")},
		BatchDir:   filepath.Join(cfg.App.DataDir, "new_jobs"),
		Archive:    archive,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var lastRun atomic.Value // recon.Summary
	if *serve {
		go serveStatus(ctx, cfg, archive, &lastRun)
	}

	runOnce := func(ctx context.Context) error {
		sum, err := runner.Run(ctx, dayThreshold)
		if err != nil {
			return err
		}
		lastRun.Store(sum)
		printSummary(sum, dayThreshold)
		return nil
	}

	if *watch > 0 {
		scheduler.Every(ctx, *watch, "recon", runOnce)
		return
	}
	if err := runOnce(ctx); err != nil {
		log.Fatalf("[run] %v", err)
	}
}

func splitIDs(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func listSources(cfg config.Config) {
	fmt.Println("Available source ids:")
	for _, s := range cfg.Sources {
		status := ""
		if !s.Enabled {
			status = " (disabled)"
		}
		fmt.Printf("  %-20s %s%s\n", s.ID, s.Name, status)
	}
}

// runLogin reads secrets from the terminal and stores them in the OS
// keychain; they never touch a config file.
func runLogin(cfg config.Config) error {
	in := bufio.NewReader(os.Stdin)

	fmt.Println("Paste the Work at a Startup session Cookie header (blank to skip):")
	cookie, _ := in.ReadString('\n')
	if cookie = strings.TrimSpace(cookie); cookie != "" {
		if err := secrets.SetYCSession(cookie); err != nil {
			return err
		}
		fmt.Println("YC session saved.")
	}

	if cfg.Email.Enabled {
		fmt.Printf("IMAP password for %s@%s (blank to skip):\n", cfg.Email.Username, cfg.Email.IMAPHost)
		pw, _ := in.ReadString('\n')
		if pw = strings.TrimSpace(pw); pw != "" {
			account := secrets.IMAPAccount(cfg.Email.Username, cfg.Email.IMAPHost)
			if err := secrets.SetIMAPPassword(account, pw); err != nil {
				return err
			}
			fmt.Println("IMAP password saved.")
		}
	}
	return nil
}

func printSummary(sum recon.Summary, dayThreshold int) {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Run time: %s\n", sum.RunAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Listings fetched: %d\n", sum.TotalFetched)
	fmt.Printf("Within %d days and matching filters: %d\n", dayThreshold, sum.Filtered)
	fmt.Printf("New since last run: %d\n", sum.NewCount)
	if sum.NewCount > 0 {
		fmt.Printf("  - unique: %d\n", sum.NewCount-sum.Duplicates)
		fmt.Printf("  - potential duplicates: %d\n", sum.Duplicates)
	}
	if sum.DroppedItems > 0 {
		fmt.Printf("Dropped malformed listings: %d\n", sum.DroppedItems)
	}
	if len(sum.FailedSources) > 0 {
		fmt.Printf("Failed sources: %s\n", strings.Join(sum.FailedSources, ", "))
	}
	if sum.BatchPath != "" {
		fmt.Printf("New listings saved to: %s\n", sum.BatchPath)
	}

	if sum.NewCount == 0 {
		return
	}
	fmt.Println(strings.Repeat("-", 60))
	for _, l := range sum.NewListings {
		ago := ""
		if l.DaysAgo != nil {
			ago = fmt.Sprintf(" (%dd ago)", *l.DaysAgo)
		}
		dup := ""
		if l.PotentialDuplicate {
			dup = " [dup?]"
		}
		fmt.Printf("  [%s] %s @ %s%s%s\n", l.SourceID, l.Title, orUnknown(l.Company), ago, dup)
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
