// Command assistant runs the NeuroFolio session in a terminal. It is the
// thinnest possible observer of the session state; all sequencing lives in
// the controller.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"mime"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/neurofolio/neurofolio/internal/config"
	"github.com/neurofolio/neurofolio/internal/controller"
	"github.com/neurofolio/neurofolio/internal/gateway"
	"github.com/neurofolio/neurofolio/internal/model/options"
	"github.com/neurofolio/neurofolio/internal/session"
	"github.com/neurofolio/neurofolio/internal/speech"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	store := session.NewStore()
	client := gateway.NewClient(cfg.Client.BaseURL, cfg.Client.Timeout)

	var recognizer speech.Recognizer
	if cfg.Speech.Enabled() {
		recognizer = speech.NewStreamRecognizer(cfg.Speech.EndpointURL, cfg.Speech.APIKey, options.DefaultLanguage)
		log.Println("voice input enabled")
	}

	ctrl := controller.New(store, client, controller.Config{
		Recognizer:  recognizer,
		DownloadDir: cfg.Client.DownloadDir,
		Preview:     tempFilePreview,
	})
	defer ctrl.Close()

	fmt.Println("NeuroFolio assistant. Type a message, or /help for commands.")
	runREPL(ctx, ctrl, store)
}

func runREPL(ctx context.Context, ctrl *controller.Controller, store *session.Store) {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if quit := runCommand(ctx, ctrl, store, scanner, line); quit {
				return
			}
		} else {
			ctrl.SetDraft(line)
			if err := ctrl.SendChat(ctx); err == nil {
				printLastReply(store)
			}
		}

		printBanner(store)
	}
}

func runCommand(ctx context.Context, ctrl *controller.Controller, store *session.Store, scanner *bufio.Scanner, line string) bool {
	command, arg, _ := strings.Cut(line[1:], " ")
	arg = strings.TrimSpace(arg)

	switch command {
	case "help":
		printHelp()
	case "text":
		fmt.Println("Enter project text; finish with a single '.' line:")
		var lines []string
		for scanner.Scan() {
			row := scanner.Text()
			if strings.TrimSpace(row) == "." {
				break
			}
			lines = append(lines, row)
		}
		store.SetProjectText(strings.Join(lines, "\n"))
	case "summarize":
		if err := ctrl.Summarize(ctx); err == nil {
			fmt.Println("summary:", store.Snapshot().Summary)
		}
	case "translate":
		if err := ctrl.Translate(ctx); err == nil {
			fmt.Println("translated:", store.Snapshot().TranslatedSummary)
		}
	case "voice":
		if err := ctrl.VoiceToggle(ctx); err == nil {
			if store.Snapshot().Listening {
				fmt.Println("listening... toggle again to stop")
			} else {
				fmt.Println("stopped listening; draft:", ctrl.Draft())
			}
		}
	case "image":
		if arg == "" {
			fmt.Println("usage: /image <path>")
			break
		}
		data, err := os.ReadFile(arg)
		if err != nil {
			fmt.Println("cannot read file:", err)
			break
		}
		mediaType := mime.TypeByExtension(filepath.Ext(arg))
		if err := ctrl.UploadImage(ctx, filepath.Base(arg), mediaType, data); err == nil {
			printLastReply(store)
		}
	case "remove-image":
		ctrl.RemoveImage()
	case "save":
		if path, err := ctrl.SaveChat(); err == nil {
			fmt.Println("saved to", path)
		}
	case "load":
		if arg == "" {
			fmt.Println("usage: /load <path>")
			break
		}
		if err := ctrl.LoadChat(arg); err == nil {
			fmt.Printf("loaded %d turns\n", len(store.Snapshot().Transcript))
		}
	case "clear":
		ctrl.ClearChat()
	case "export":
		if path, err := ctrl.ExportSummary(); err == nil {
			fmt.Println("exported to", path)
		}
	case "model":
		if err := ctrl.SetModel(options.Model(arg)); err != nil {
			fmt.Println(err)
		}
	case "lang":
		if err := ctrl.SetLanguage(options.Language(arg)); err != nil {
			fmt.Println(err)
		}
	case "persona":
		if err := ctrl.SetPersona(options.Persona(arg)); err != nil {
			fmt.Println(err)
		}
	case "state":
		printState(store)
	case "quit", "exit":
		return true
	default:
		fmt.Println("unknown command; /help lists commands")
	}
	return false
}

func printLastReply(store *session.Store) {
	transcript := store.Snapshot().Transcript
	if len(transcript) == 0 {
		return
	}
	last := transcript[len(transcript)-1]
	fmt.Printf("[%s] %s\n", last.Role, last.Text)
}

func printBanner(store *session.Store) {
	if banner := store.Snapshot().LastError; banner != "" {
		fmt.Println("! " + banner)
	}
}

func printState(store *session.Store) {
	snap := store.Snapshot()
	fmt.Printf("model=%s lang=%s persona=%s turns=%d listening=%v busy=%v\n",
		snap.Model, snap.Language, snap.Persona, len(snap.Transcript), snap.Listening, snap.Busy)
	if snap.Summary != "" {
		fmt.Println("summary:", snap.Summary)
	}
	if snap.TranslatedSummary != "" {
		fmt.Println("translated:", snap.TranslatedSummary)
	}
	if snap.PendingImage != nil {
		fmt.Printf("pending image: %s (%s)\n", snap.PendingImage.Name, snap.PendingImage.MediaType)
	}
}

func printHelp() {
	fmt.Println(`commands:
  /text                enter project text (terminate with '.')
  /summarize           summarize the project text
  /translate           translate the summary into the selected language
  /voice               toggle voice input
  /image <path>        attach an image and analyze it
  /remove-image        discard the pending image
  /save                save the chat log
  /load <path>         load a chat log
  /clear               clear the transcript
  /export              export the summary as PDF
  /model|/lang|/persona <value>
  /state               show session state
  /quit`)
}

// tempFilePreview materializes previews as temp files; release removes
// them, the terminal analogue of revoking an object URL.
func tempFilePreview(name string, data []byte) (string, func(), error) {
	f, err := os.CreateTemp("", "neurofolio-preview-*"+filepath.Ext(name))
	if err != nil {
		return "", nil, err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", nil, err
	}

	path := f.Name()
	release := func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("warning: failed to remove preview %s: %v", path, err)
		}
	}
	return path, release, nil
}
