package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/terminal"

	"servelatest/internal/xslog"
	"servelatest/server"
)

func main() {
	cfgPath := flag.String("config", "servelatest.toml", "path to the config file")
	addr := flag.String("addr", "", "listen address, overrides the config file")
	dir := flag.String("dir", "", "directory to serve, overrides the config file")
	flag.Parse()

	cfg, err := server.LoadConfig(*cfgPath)
	if err != nil {
		slog.Error("Failed to load config", slog.Any("err", err))
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *dir != "" {
		cfg.Watch.Dir = *dir
	}

	setupLogger(cfg.Log)
	slog.Debug("Loaded config", slog.String("config", cfg.String()))

	srv, err := server.New(cfg)
	if err != nil {
		if errors.Is(err, server.ErrNoCandidate) {
			where := cfg.Watch.Dir
			if where == "." {
				where = "the current directory"
			}
			fmt.Fprintf(os.Stderr, "Error: Could not find any files matching %q in %s.\n",
				cfg.Watch.Pattern().Glob(), where)
		} else {
			slog.Error("Failed to start server", slog.Any("err", err))
		}
		os.Exit(1)
	}

	name, _ := srv.Current()
	color.Cyan("Serving %q at %s", name, cfg.Server.URL())
	fmt.Println("Press Ctrl+C to stop the server.")

	if cfg.Server.QR {
		printQR(cfg.Server.Addr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err = srv.Run(ctx); err != nil {
		slog.Error("Server failed", slog.Any("err", err))
		os.Exit(1)
	}

	fmt.Println("\nServer stopped.")
}

func setupLogger(cfg server.LogConfig) {
	opts := &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	switch cfg.Format {
	case server.LogFormatJSON:
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(xslog.NewFilterHandler(handler, dropBrowserNoise)))
}

// Browsers request these on their own. Logging every hit buries the requests
// the page actually made.
var noisePaths = map[string]bool{
	"/favicon.ico": true,
	"/.well-known/appspecific/com.chrome.devtools.json": true,
}

func dropBrowserNoise(_ context.Context, record slog.Record) bool {
	if record.Message != "Request" {
		return true
	}
	keep := true
	record.Attrs(func(attr slog.Attr) bool {
		if attr.Key == "path" && noisePaths[attr.Value.String()] {
			keep = false
			return false
		}
		return true
	})
	return keep
}

// printQR renders the network URL as a QR code on the terminal so the page
// can be opened on a phone on the same network. Skipped silently when no
// routable interface address is found.
func printQR(addr string) {
	url, ok := networkURL(addr)
	if !ok {
		slog.Debug("No network address found, skipping QR code")
		return
	}

	qr, err := qrcode.New(url)
	if err != nil {
		slog.Error("Failed to create qrcode", slog.Any("err", err))
		return
	}

	fmt.Printf("Network: %s\n", url)
	w := terminal.New()
	if err = qr.Save(w); err != nil {
		slog.Error("Failed to render qrcode", slog.Any("err", err))
	}
}

// networkURL rebuilds the listen address around the first non-loopback IPv4
// address of the host, the one another device on the LAN can reach.
func networkURL(addr string) (string, bool) {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "", false
	}

	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", false
	}
	for _, a := range addrs {
		ipNet, ok := a.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() {
			continue
		}
		if ip := ipNet.IP.To4(); ip != nil {
			return "http://" + net.JoinHostPort(ip.String(), port), true
		}
	}
	return "", false
}
