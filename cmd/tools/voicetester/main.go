// Command voicetester exercises the speech-to-text websocket endpoint
// directly, outside the assistant session.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/neurofolio/neurofolio/internal/config"
	"github.com/neurofolio/neurofolio/internal/model/options"
	"github.com/neurofolio/neurofolio/internal/speech"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env, using system environment: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	endpoint := flag.String("endpoint", cfg.Speech.EndpointURL, "speech websocket endpoint")
	language := flag.String("lang", string(options.DefaultLanguage), "recognition language")
	timeout := flag.Duration("timeout", 45*time.Second, "session timeout")
	flag.Parse()

	if *endpoint == "" {
		log.Fatal("no endpoint configured; set SPEECH_WS_URL or pass -endpoint")
	}

	lang := options.Language(*language)
	if !lang.Valid() {
		log.Fatalf("unknown language %q", *language)
	}

	recognizer := speech.NewStreamRecognizer(*endpoint, cfg.Speech.APIKey, lang)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	log.Printf("starting recognition session against %s (lang=%s)", *endpoint, lang)
	if err := recognizer.Start(ctx); err != nil {
		log.Fatalf("failed to start recognition: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			recognizer.Stop()
			log.Fatal("session timed out")
		case ev := <-recognizer.Events():
			switch ev.Kind {
			case speech.EventUtterance:
				log.Printf("utterance: %q", ev.Text)
			case speech.EventError:
				log.Printf("recognition error: %v", ev.Err)
			case speech.EventEnded:
				log.Println("session ended")
				return
			}
		}
	}
}
