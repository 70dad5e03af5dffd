package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/toolkits/pkg/runner"

	"github.com/flashcatcloud/thriftmux/conf"
	"github.com/flashcatcloud/thriftmux/pkg/httpx"
	"github.com/flashcatcloud/thriftmux/pkg/logx"
	"github.com/flashcatcloud/thriftmux/pkg/version"
	"github.com/flashcatcloud/thriftmux/thriftmux"
	"github.com/flashcatcloud/thriftmux/thriftmux/examples/echo"
	"github.com/flashcatcloud/thriftmux/thriftmux/examples/metrics"
)

var (
	showVersion = flag.Bool("version", false, "Show version.")
	configDir   = flag.String("configs", getEnv("THRIFTMUX_CONFIGS", "etc"), "Specify configuration directory.(env:THRIFTMUX_CONFIGS)")
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Version)
		os.Exit(0)
	}

	printEnv()

	cleanFunc, err := initialize(*configDir)
	if err != nil {
		log.Fatalln("failed to initialize:", err)
	}

	code := 1
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

EXIT:
	for {
		sig := <-sc
		fmt.Println("received signal:", sig.String())
		switch sig {
		case syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGINT:
			code = 0
			break EXIT
		case syscall.SIGHUP:
			// reload configuration?
		default:
			break EXIT
		}
	}

	cleanFunc()
	fmt.Println("process exited")
	os.Exit(code)
}

func printEnv() {
	runner.Init()
	fmt.Println("runner.cwd:", runner.Cwd)
	fmt.Println("runner.hostname:", runner.Hostname)
	fmt.Println("runner.fd_limits:", runner.FdLimits())
	fmt.Println("runner.vm_limits:", runner.VMLimits())
}

func initialize(configDir string) (func(), error) {
	c, err := conf.InitConfig(configDir)
	if err != nil {
		return nil, err
	}

	loggerClean, err := logx.Init(c.Log)
	if err != nil {
		return nil, err
	}

	formats, err := thriftmux.ConfiguredFormats(c.Mux.DefaultFormat, c.Mux.EnabledFormats)
	if err != nil {
		return nil, err
	}

	dt, err := thriftmux.NewDispatchTable(map[string][]thriftmux.Implementation{
		"echo": {echo.Implementation(echo.Impl{})},
	})
	if err != nil {
		return nil, err
	}

	base := thriftmux.NewHandler(dt)
	handler := thriftmux.Decorate(base, metrics.Decorator(prometheus.DefaultRegisterer))
	svc, err := thriftmux.NewService(formats, handler,
		thriftmux.WithVerboseResponses(c.Mux.VerboseResponses),
		thriftmux.WithMaxBodyBytes(c.Mux.MaxBodyBytes),
		thriftmux.WithLogBuilder(func(ctx context.Context, entry thriftmux.LogEntry) {
			logx.LogCall(entry.RequestID, entry.EnvelopeName, len(entry.Request), len(entry.Response))
		}),
	)
	if err != nil {
		return nil, err
	}

	engine := httpx.GinEngine(c.Global.RunMode, c.HTTP)
	engine.POST("/api/thriftmux/rpc", gin.WrapH(svc))

	httpClean := httpx.Init(c.HTTP, engine)

	return func() {
		httpClean()
		loggerClean()
	}, nil
}
