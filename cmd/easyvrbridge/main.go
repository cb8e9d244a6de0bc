package main

//go-build: CGO_ENABLED=0

import (
	"context"
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"

	"github.com/robotalks/easyvr.go/pkg/config"
	"github.com/robotalks/easyvr.go/pkg/easyvr"
	"github.com/robotalks/easyvr.go/pkg/easyvr/bridge"
	fx "github.com/robotalks/easyvr.go/pkg/framework"
	"github.com/robotalks/easyvr.go/pkg/link"
)

var (
	companionDev string
	listenAddr   string
)

func init() {
	config.SetupFlags()
	flag.StringVar(&companionDev, "companion", companionDev, "Serial device of the companion host.")
	flag.StringVar(&listenAddr, "listen", listenAddr, "Accept companions over websocket on this address, path /bridge.")
}

// relay serves one bridge request from companion.
type relay struct {
	module *link.Serial
	baud   int
	busy   chan struct{}
}

func (r *relay) serve(ctx context.Context, companion easyvr.Port) error {
	mode, err := bridge.Requested(companion, easyvr.SystemClock)
	if err != nil || mode == bridge.None {
		return err
	}
	glog.Infof("%s bridge requested", mode)
	if mode == bridge.Boot {
		if err = r.module.SetBaudrate(bridge.BootBaudrate); err != nil {
			return err
		}
		defer r.module.SetBaudrate(r.baud)
	}
	err = bridge.Relay(ctx, r.module, companion, easyvr.SystemClock)
	glog.Infof("%s bridge closed: %v", mode, err)
	return err
}

func (r *relay) serveSerial(ctx context.Context) error {
	companion, err := link.OpenSerial(link.SerialConfig{Device: companionDev, Baud: r.baud})
	if err != nil {
		return err
	}
	defer companion.Close()
	for ctx.Err() == nil {
		if err = r.serve(ctx, companion); err != nil && ctx.Err() == nil {
			return err
		}
	}
	return ctx.Err()
}

func (r *relay) serveWebsocket(ctx context.Context) error {
	handler := websocket.Handler(func(conn *websocket.Conn) {
		select {
		case r.busy <- struct{}{}:
			defer func() { <-r.busy }()
		default:
			glog.Warningf("%s: bridge busy", conn.Request().RemoteAddr)
			conn.Close()
			return
		}
		conn.PayloadType = websocket.BinaryFrame
		companion := link.NewStream(conn)
		defer companion.Close()
		if err := r.serve(ctx, companion); err != nil {
			glog.Errorf("%s: %v", conn.Request().RemoteAddr, err)
		}
	})
	mux := http.NewServeMux()
	mux.Handle("/bridge", handler)
	server := &http.Server{Addr: listenAddr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	glog.Infof("listening on %s", listenAddr)
	return fx.RunWithContextCloser(ctx, server, server.ListenAndServe)
}

func main() {
	flag.Parse()
	conf := config.Default()
	if err := conf.Validate(); err != nil {
		log.Fatalln(err)
	}
	if (companionDev == "") == (listenAddr == "") {
		log.Fatalln("exactly one of -companion or -listen is required")
	}
	module, err := link.OpenSerial(conf.Serial())
	if err != nil {
		log.Fatalln(err)
	}
	defer module.Close()

	r := &relay{module: module, baud: conf.Baud, busy: make(chan struct{}, 1)}
	runner := fx.NewRunner().HandleSignals()
	if listenAddr != "" {
		runner.Go(fx.NamedRun("websocket", fx.RunFunc(r.serveWebsocket)))
	} else {
		runner.Go(fx.NamedRun("serial", fx.RunFunc(r.serveSerial)))
	}
	if err := runner.Wait(); err != nil {
		log.Fatalln(err)
	}
}
