package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/itchan-dev/forumstate/frontend/internal/router"
	"github.com/itchan-dev/forumstate/frontend/internal/setup"
	"github.com/itchan-dev/forumstate/shared/config"
	"github.com/itchan-dev/forumstate/shared/domain"
	"github.com/itchan-dev/forumstate/shared/logger"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var configFolder string

var rootCmd = &cobra.Command{
	Use:   "forum",
	Short: "Client-side state layer for the forum backend",
	Long: `Keeps a normalized view of threads, thread details, the session and the
leaderboard, and exposes it to a UI over a local HTTP/websocket bridge.`,
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local bridge",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var threadsCmd = &cobra.Command{
	Use:   "threads",
	Short: "Fetch threads and users and print the thread list",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := load()
		if err != nil {
			return err
		}
		if _, err := deps.Forum.FetchThreadsAndUsers(cmd.Context()); err != nil {
			return err
		}
		return printJSON(deps.Forum.Threads())
	},
}

var threadCmd = &cobra.Command{
	Use:   "thread THREAD_ID",
	Short: "Fetch one thread with its comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := load()
		if err != nil {
			return err
		}
		if _, err := deps.Forum.FetchThreadDetail(cmd.Context(), domain.ThreadId(args[0])); err != nil {
			return err
		}
		return printJSON(deps.Forum.Detail())
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Fetch and print the leaderboard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := load()
		if err != nil {
			return err
		}
		if _, err := deps.Forum.FetchLeaderboard(cmd.Context()); err != nil {
			return err
		}
		return printJSON(deps.Forum.Leaderboard())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFolder, "config_folder", "frontend/config", "folder with public.yaml and optional private.yaml")
	rootCmd.AddCommand(serveCmd, threadsCmd, threadCmd, leaderboardCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func load() (*setup.Dependencies, error) {
	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.Log.Level, cfg.Public.Log.Format)
	return setup.SetupDependencies(cfg)
}

func runServe(cmd *cobra.Command, args []string) error {
	deps, err := load()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	// The bridge still starts when the backend is down; the error is in the snapshots.
	if err := deps.Forum.Init(ctx); err != nil {
		logger.Log.Warn("initial fetch failed", "error", err)
	}

	server := &http.Server{
		Addr:         deps.Public.Bridge.Addr,
		Handler:      router.New(deps),
		ReadTimeout:  deps.Public.Bridge.ReadTimeout,
		WriteTimeout: deps.Public.Bridge.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Log.Info("starting bridge", "addr", server.Addr, "backend", deps.Public.Api.BaseURL)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("bridge stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Log.Info("shutting down bridge")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("bridge shutdown: %w", err)
	}
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
