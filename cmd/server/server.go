package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"mclauncher/cmd/root"
	"mclauncher/controllers"
	"mclauncher/internal/env"
	"mclauncher/internal/logger"
	"mclauncher/internal/middleware"
	"mclauncher/internal/utils"
	"mclauncher/services"
)

var socketPath string

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP server",
	Long:  "Start the HTTP server exposing version check, synchronization, classpath and /metrics endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := root.Context()
		defer cancel()
		return startServer(ctx)
	},
}

func listenAddrs() []ListenAddr {
	address := root.Config().Server.Address
	if env.ListenPort > 0 {
		host, _, err := net.SplitHostPort(address)
		if err != nil {
			host = "127.0.0.1"
		}
		address = net.JoinHostPort(host, strconv.Itoa(env.ListenPort))
	}
	addrs := []ListenAddr{{Network: "tcp", Address: address}}
	if socketPath != "" && IsUnixSocketSupported() {
		addrs = append(addrs, ListenAddr{Network: "unix", Address: socketPath})
	}
	return addrs
}

/**
 * Start HTTP server and background monitoring
 * @param {context.Context} ctx - Server shuts down when done
 * @returns {error} Listener or serve errors
 */
func startServer(ctx context.Context) error {
	cfg := root.Config()
	gin.SetMode(cfg.Server.Mode)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.MetricsMiddleware())

	launcher := root.Launcher()
	controllers.NewAPIController(launcher, root.Version).RegisterRoutes(router)
	controllers.NewVersionController(launcher).RegisterRoutes(router)

	addrs := listenAddrs()
	if !utils.CheckPortAvailable(addrs[0].Address) {
		return fmt.Errorf("address %s is already in use", addrs[0].Address)
	}
	listeners, err := CreateListeners(addrs)
	if len(listeners) == 0 {
		return fmt.Errorf("failed to start server: %v", err)
	}
	err = nil

	// version integrity monitor
	svc := services.NewServerService(launcher, cfg.Server.MonitorInterval)
	go svc.StartMonitoring(ctx)

	srv := &http.Server{Handler: router}
	errCh := make(chan error, len(listeners))
	for _, l := range listeners {
		logger.Infof("listening on %s://%s", l.Addr().Network(), l.Addr().String())
		go func(l net.Listener) {
			if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}(l)
	}

	select {
	case <-ctx.Done():
		logger.Info("shutting down server")
	case err = <-errCh:
		logger.Errorf("server error: %v", err)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if serr := srv.Shutdown(shutdownCtx); serr != nil && err == nil {
		err = serr
	}
	return err
}

func init() {
	serverCmd.Flags().SortFlags = false
	serverCmd.Flags().IntVarP(&env.ListenPort, "port", "p", 0, "listen port, overrides the port of server.address")
	serverCmd.Flags().StringVar(&socketPath, "socket", "", "also listen on this unix socket")
	root.RootCmd.AddCommand(serverCmd)

	serverCmd.Example = `  mclauncher server
  mclauncher server -p 8765 --socket /tmp/mclauncher.sock`
}
