package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/robotalks/easyvr.go/pkg/listener"
	"github.com/robotalks/easyvr.go/pkg/mqtt"
)

var (
	mqttURL = "mqtt://localhost:1883/easyvr/"
)

func init() {
	if val := os.Getenv("EASYVR_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	q, err := mqtt.NewQueueFromURL(mqttURL)
	if err != nil {
		log.Fatalln(err)
	}
	q.Sub("+/"+mqtt.TopicMeta, func(topic string, payload []byte) {
		if len(payload) == 0 {
			log.Printf("%s: offline", strings.TrimSuffix(topic, "/"+mqtt.TopicMeta))
			return
		}
		log.Printf("%s: %s", topic, string(payload))
	})
	q.Sub("+/"+mqtt.TopicEvent, func(topic string, payload []byte) {
		var ev listener.Event
		if err := json.Unmarshal(payload, &ev); err != nil {
			log.Printf("%s: bad event: %v", topic, err)
			return
		}
		device := strings.TrimSuffix(topic, "/"+mqtt.TopicEvent)
		switch ev.Type {
		case listener.EventCommand, listener.EventWord:
			log.Printf("%s: %s %d %q", device, ev.Type, ev.Index, ev.Label)
		case listener.EventError:
			log.Printf("%s: error %s", device, ev.Error)
		default:
			log.Printf("%s: %s %s", device, ev.Type, ev.State)
		}
	})
	if token := q.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalln(token.Error())
	}
	defer q.Close()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	<-sigCh
}
