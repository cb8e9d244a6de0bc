package main

import (
	"flag"
	"log"

	"github.com/robotalks/easyvr.go/pkg/cli/sh"
	"github.com/robotalks/easyvr.go/pkg/config"

	_ "github.com/robotalks/easyvr.go/pkg/cli/cmds/all"
)

//go-build: CGO_ENABLED=0

var configFile string

func init() {
	config.SetupFlags()
	flag.StringVar(&configFile, "config", configFile, "YAML config file.")
}

func main() {
	flag.Parse()
	conf := config.Default()
	if configFile != "" {
		if err := conf.LoadFile(configFile); err != nil {
			log.Fatalln(err)
		}
	}
	sh.New(conf).WithAutoOpen(true).Run(flag.Args()...)
}
