package main

//go-build: CGO_ENABLED=0

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/easyvr.go/pkg/config"
	"github.com/robotalks/easyvr.go/pkg/easyvr"
	fx "github.com/robotalks/easyvr.go/pkg/framework"
	"github.com/robotalks/easyvr.go/pkg/listener"
	"github.com/robotalks/easyvr.go/pkg/mqtt"
)

const detectPause = time.Second

var configFile string

func init() {
	config.SetupFlags()
	flag.StringVar(&configFile, "config", configFile, "YAML config file.")
}

func detect(s *easyvr.Session, retries int) error {
	for n := 1; ; n++ {
		err := s.Detect()
		if err == nil {
			return nil
		}
		if retries > 0 && n >= retries {
			return err
		}
		glog.Warningf("detect: %v, retrying", err)
		time.Sleep(detectPause)
	}
}

// prepare identifies the module and applies the recognition settings.
func prepare(s *easyvr.Session, conf *config.Config) (*listener.Meta, error) {
	if err := detect(s, conf.DetectRetries); err != nil {
		return nil, fmt.Errorf("detect: %w", err)
	}
	id, err := s.ID()
	if err != nil {
		return nil, fmt.Errorf("identify: %w", err)
	}
	glog.Infof("module %s detected", id)

	rec := conf.Recognition
	lang, err := easyvr.ParseLanguage(rec.Language)
	if err != nil {
		return nil, err
	}
	steps := []struct {
		name string
		fn   func() error
	}{
		{"language", func() error { return s.SetLanguage(lang) }},
		{"timeout", func() error { return s.SetTimeout(rec.Timeout) }},
		{"knob", func() error { return s.SetKnob(easyvr.Knob(rec.Knob)) }},
		{"level", func() error { return s.SetLevel(easyvr.Level(rec.Level)) }},
		{"distance", func() error { return s.SetMicDistance(easyvr.Distance(rec.Distance)) }},
	}
	for _, step := range steps {
		if err := step.fn(); err != nil {
			return nil, fmt.Errorf("set %s: %w", step.name, err)
		}
	}

	meta := &listener.Meta{
		Module:   id.String(),
		ModuleID: int(id),
		Language: lang.String(),
		Group:    rec.Group,
	}
	if rec.Group < 0 {
		meta.Wordset = rec.Wordset
	} else if rec.Labels {
		if meta.Labels, err = s.CommandLabels(rec.Group); err != nil {
			return nil, fmt.Errorf("read labels: %w", err)
		}
	}
	return meta, nil
}

func main() {
	flag.Parse()
	conf := config.Default()
	if configFile != "" {
		if err := conf.LoadFile(configFile); err != nil {
			log.Fatalln(err)
		}
	}
	if err := conf.Validate(); err != nil {
		log.Fatalln(err)
	}
	deviceID, err := conf.DeviceID()
	if err != nil {
		log.Fatalln(err)
	}

	session, port := conf.MustOpenSession()
	defer port.Close()
	meta, err := prepare(session, conf)
	if err != nil {
		log.Fatalln(err)
	}
	meta.Device = deviceID

	loop := fx.NewLoop()
	l := listener.New(session, nil, conf.Recognition.Group)
	l.Wordset, l.Labels = conf.Recognition.Wordset, meta.Labels
	if conf.MQTTURL != "" {
		pub, err := mqtt.NewPublisher(conf.MQTTURL, deviceID)
		if err != nil {
			log.Fatalln(err)
		}
		if err = pub.SetMeta(meta); err != nil {
			log.Fatalln(err)
		}
		pub.OnCommand(func(payload []byte) {
			cmd, err := listener.ParseCommand(payload)
			if err != nil {
				glog.Warningf("remote command: %v", err)
				return
			}
			loop.PostMessage(cmd)
		})
		l.Sink = pub
		loop.Add(pub)
	}
	loop.Add(l)

	runner := fx.NewRunner().HandleSignals()
	runner.Go(fx.NamedRun("loop", loop))
	if err := runner.Wait(); err != nil && !errors.Is(err, fx.ErrForcedExit) {
		log.Fatalln(err)
	}
	if session.Busy() {
		session.Stop()
	}
}
