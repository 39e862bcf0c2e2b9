package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-cells/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with the level picker.
Progress is stored per server (all users share the same database).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, uses server.host_key_path from config
  - Otherwise, auto-generates a key at ~/.cells/host_key

Examples:
  cells serve                           # Listen on server.ssh_addr (default :23234)
  cells serve --ssh :2222               # Listen on port 2222
  cells serve --host-key ./my_host_key  # Use specific host key
  cells serve --db ./cells.db           # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	logger := newLogger("cells-ssh")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	srvCfg := tui.DefaultSSHServerConfig()
	srvCfg.Address = cfg.Server.SSHAddr
	if flagSSHAddr != "" {
		srvCfg.Address = flagSSHAddr
	}
	srvCfg.HostKeyPath = cfg.Server.HostKeyPath
	if flagHostKey != "" {
		srvCfg.HostKeyPath = flagHostKey
	}
	srvCfg.DBPath = flagDBPath
	srvCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	srvCfg.TickRate = flagFPS
	srvCfg.Catalog = cat
	srvCfg.NewGame = gameFactory(cat, cfg)
	srvCfg.Logger = logger

	server, err := tui.NewSSHServer(srvCfg)
	if err != nil {
		return err
	}

	logger.Info("press Ctrl+C to stop", "connect", "ssh localhost -p <port>")
	return server.ListenAndServe()
}
