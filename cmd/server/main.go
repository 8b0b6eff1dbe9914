package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Mshel/torus/internal/game"
	"github.com/Mshel/torus/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "6996"

	maxConnectionsPerIP = 2
)

var (
	ipCounter = make(map[string]int)
	ipMutex   sync.Mutex
)

func getIP(s ssh.Session) string {
	if addr, ok := s.RemoteAddr().(*net.TCPAddr); ok {
		return addr.IP.String()
	}
	return s.RemoteAddr().String()
}

// tryIncrementIP reserves a slot for ip, reporting the count it would have had.
func tryIncrementIP(ip string) (int, bool) {
	ipMutex.Lock()
	defer ipMutex.Unlock()
	if ipCounter[ip] >= maxConnectionsPerIP {
		return ipCounter[ip], false
	}
	ipCounter[ip]++
	return ipCounter[ip], true
}

func decrementIP(ip string) int {
	ipMutex.Lock()
	defer ipMutex.Unlock()
	ipCounter[ip]--
	if ipCounter[ip] <= 0 {
		delete(ipCounter, ip)
	}
	return ipCounter[ip]
}

func connectionLimiterMiddleware(next ssh.Handler) ssh.Handler {
	return func(s ssh.Session) {
		ip := getIP(s)

		count, ok := tryIncrementIP(ip)
		if !ok {
			log.Warn("Connection denied: IP limit exceeded", "ip", ip, "attempted_count", count+1, "current_limit", maxConnectionsPerIP)
			errorMessage := fmt.Sprintf("Too many active connections from your IP (%d/%d). Please try again later.\r\n", count+1, maxConnectionsPerIP)
			s.Write([]byte(errorMessage))
			s.Close()
			return
		}

		log.Info("Connection accepted", "ip", ip, "current_count", count, "limit", maxConnectionsPerIP)
		next(s)
		log.Info("Connection closed and counter decremented", "ip", ip, "count_after", decrementIP(ip))
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	log.SetLevel(log.DebugLevel)
	if err := run(); err != nil {
		log.Error("Torus server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := game.LoadConfigFromEnv(game.DefaultConfig())
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	highScores, err := game.NewHighScoreService(getEnv("TORUS_DB_PATH", game.HighScoreDBPath))
	if err != nil {
		return fmt.Errorf("could not open high scores: %w", err)
	}
	defer highScores.Close()

	playerManager := game.NewPlayerManager(highScores)
	defer playerManager.Close()

	// stops games still running after shutdown, before playerManager.Close waits on them
	sessionsCtx, stopSessions := context.WithCancel(context.Background())
	defer stopSessions()

	host := getEnv("TORUS_HOST", defaultHost)
	port := getEnv("TORUS_PORT", defaultPort)

	viewHandler := func(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, _ := sshSession.Pty()
		options := ui.SessionOptions{
			Config:        cfg,
			PlayerManager: playerManager,
			HighScores:    highScores,
			Session:       sshSession,
			Context:       sessionsCtx,
		}
		controllerModel := ui.NewControllerModel(options, pty.Window.Width, pty.Window.Height)
		return controllerModel, []tea.ProgramOption{tea.WithAltScreen()}
	}

	sshServer, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithHostKeyPath(getEnv("TORUS_PRIVATE_KEY_PATH", ".ssh/id_ed25519")),
		wish.WithMiddleware(
			bubbletea.Middleware(viewHandler),
			logging.Middleware(),
			activeterm.Middleware(),
			connectionLimiterMiddleware,
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create ssh server: %w", err)
	}

	serverDoneChannel := make(chan os.Signal, 1)
	signal.Notify(serverDoneChannel, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	log.Info("Starting SSH server", "host", host, "port", port, "on_collision", cfg.OnCollision)
	go func() {
		if err := sshServer.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Error("Could not start server", "error", err)
			serverDoneChannel <- nil
		}
	}()

	<-serverDoneChannel

	log.Info("Stopping SSH server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := sshServer.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		log.Error("Could not stop server", "error", err)
	}
	return nil
}
