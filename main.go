package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/golang/glog"
	metrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/viper"

	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/config"
	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/router"
	"github.com/soycamiloorozco/Shareflow-Ads-DSP-sub005/server"
)

// Rev holds the binary revision string.
// Set manually at build time using:
//
//	go build -ldflags "-X main.Rev=`git rev-parse --short HEAD`"
var Rev string

// Version is the release tag the binary was built from.
var Version string

func main() {
	flag.Parse() // required for glog flags and testing package flags

	cfg, err := loadConfig()
	if err != nil {
		glog.Exitf("Configuration could not be loaded or did not pass validation: %v", err)
	}

	if err := serve(Version, Rev, cfg); err != nil {
		glog.Exitf("shareflow exchange failed: %v", err)
	}
}

const configFileName = "sfx"

func loadConfig() (*config.Configuration, error) {
	v := viper.New()
	config.SetupViper(v, configFileName)
	return config.New(v)
}

func serve(version string, revision string, cfg *config.Configuration) error {
	r, err := router.New(cfg)
	if err != nil {
		return err
	}

	if cfg.Metrics.IntervalSeconds > 0 {
		go metrics.Log(r.MetricsEngine.MetricsRegistry,
			time.Duration(cfg.Metrics.IntervalSeconds)*time.Second,
			log.New(os.Stderr, "metrics: ", log.Lmicroseconds))
	}

	corsRouter := router.SupportCORS(r)
	server.Listen(cfg, router.NoCache{Handler: corsRouter}, router.Admin(version, revision), r.MetricsEngine)
	return nil
}
