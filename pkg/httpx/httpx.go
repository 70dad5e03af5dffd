package httpx

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/flashcatcloud/thriftmux/pkg/aop"
	"github.com/flashcatcloud/thriftmux/pkg/version"
)

// Config describes the HTTP front end the example binary hosts the
// adapter behind. The adapter core itself never depends on this package.
type Config struct {
	Host             string
	Port             int
	CertFile         string
	KeyFile          string
	PProf            bool
	PrintAccessLog   bool
	ExposeMetrics    bool
	ShutdownTimeout  int
	MaxContentLength int64
	ReadTimeout      int
	WriteTimeout     int
	IdleTimeout      int
}

// GinEngine builds a gin.Engine with the ops endpoints every thriftmux
// deployment gets for free, regardless of which services are mounted.
func GinEngine(mode string, cfg Config) *gin.Engine {
	gin.SetMode(mode)

	if strings.ToLower(mode) == "release" {
		aop.DisableConsoleColor()
	}

	r := gin.New()
	r.Use(aop.Recovery())
	if cfg.PrintAccessLog {
		r.Use(aop.Logger())
	}

	if cfg.PProf {
		pprof.Register(r, "/api/thriftmux/debug/pprof")
	}

	r.GET("/ping", func(c *gin.Context) { c.String(200, "pong") })
	r.GET("/pid", func(c *gin.Context) { c.String(200, fmt.Sprintf("%d", os.Getpid())) })
	r.GET("/addr", func(c *gin.Context) { c.String(200, c.Request.RemoteAddr) })
	r.GET("/api/thriftmux/version", func(c *gin.Context) { c.String(200, version.Version) })

	if cfg.ExposeMetrics {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	return r
}

// Init starts an http.Server in the background and returns a function
// that shuts it down gracefully.
func Init(cfg Config, handler http.Handler) func() {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.IdleTimeout) * time.Second,
	}

	go func() {
		fmt.Println("thriftmux http server listening on:", addr)

		var err error
		if cfg.CertFile != "" && cfg.KeyFile != "" {
			srv.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
			err = srv.ListenAndServeTLS(cfg.CertFile, cfg.KeyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*time.Duration(cfg.ShutdownTimeout))
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		if err := srv.Shutdown(ctx); err != nil {
			fmt.Println("cannot shutdown thriftmux http server:", err)
		}
	}
}
