package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"bingelog/internal/daemonctl"
	"bingelog/internal/ipc"
)

func newDaemonCommands(ctx *commandContext) []*cobra.Command {
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start the bingelog daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			exe, err := daemonExecutable()
			if err != nil {
				return err
			}

			result, err := daemonctl.EnsureStarted(
				ctx.socketPath(),
				exe,
				daemonctl.LaunchOptions{
					SocketPath: ctx.socketPath(),
					ConfigPath: ctx.configPath(),
				},
				10*time.Second,
			)
			if err != nil {
				return err
			}

			if result.AlreadyRunning {
				fmt.Fprintln(stdout, "Daemon already running")
				return nil
			}
			if result.PID > 0 {
				fmt.Fprintf(stdout, "Daemon started (pid %d)\n", result.PID)
			} else {
				fmt.Fprintln(stdout, "Daemon started")
			}
			return nil
		},
	}

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the bingelog daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			result, err := daemonctl.Stop(ctx.socketPath(), 5*time.Second)
			if errors.Is(err, daemonctl.ErrDaemonNotRunning) {
				fmt.Fprintln(stdout, "Daemon is not running")
				return nil
			}
			if err != nil {
				return err
			}
			if result.PID > 0 {
				fmt.Fprintf(stdout, "Stopping daemon process (pid %d)...\n", result.PID)
			}
			fmt.Fprintln(stdout, "Daemon stopped")
			return nil
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon and data store status",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			colorize := shouldColorize(stdout)

			for _, line := range renderSectionHeader("Daemon", colorize) {
				fmt.Fprintln(stdout, line)
			}

			reachable, _, err := daemonctl.ProcessInfo(ctx.socketPath())
			if err != nil {
				return err
			}
			if !reachable {
				fmt.Fprintln(stdout, renderStatusLine("Running", statusWarn, "daemon is not running", colorize))
				return nil
			}

			return ctx.withClient(func(client *ipc.Client) error {
				status, err := client.Status()
				if err != nil {
					return err
				}
				fmt.Fprintln(stdout, renderStatusLine("Running", statusOK, fmt.Sprintf("pid %d", status.PID), colorize))
				fmt.Fprintln(stdout, renderStatusLine("Session", statusInfo, status.SessionID, colorize))
				fmt.Fprintln(stdout, renderStatusLine("Lock file", statusInfo, status.LockPath, colorize))
				fmt.Fprintln(stdout)
				for _, line := range renderSectionHeader("Data Stores", colorize) {
					fmt.Fprintln(stdout, line)
				}
				fmt.Fprintln(stdout, renderStatusLine("Catalog dir", statusInfo, status.DataDir, colorize))
				fmt.Fprintln(stdout, renderStatusLine("Users dir", statusInfo, status.UsersDir, colorize))
				fmt.Fprintln(stdout, renderStatusLine("Anime shows", statusInfo, fmt.Sprintf("%d", status.AnimeShows), colorize))
				fmt.Fprintln(stdout, renderStatusLine("Manga shows", statusInfo, fmt.Sprintf("%d", status.MangaShows), colorize))
				return nil
			})
		},
	}

	return []*cobra.Command{startCmd, stopCmd, statusCmd}
}

func daemonExecutable() (string, error) {
	if self, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(self), "bingelogd")
		if info, statErr := os.Stat(candidate); statErr == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	path, err := exec.LookPath("bingelogd")
	if err != nil {
		return "", fmt.Errorf("locate bingelogd: %w", err)
	}
	return path, nil
}
