// Command spectate follows a running match over its websocket feed and draws
// it as ASCII in the terminal.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lguibr/asciiring/helpers"
	"github.com/lguibr/duopong/game"
	"github.com/lguibr/duopong/render"
	"github.com/lguibr/duopong/utils"
	"golang.org/x/net/websocket"
)

func main() {
	feedURL := flag.String("url", "ws://localhost:3001/subscribe", "spectator feed URL")
	cols := flag.Int("cols", 100, "field width in characters")
	rows := flag.Int("rows", 32, "field height in characters")
	fps := flag.Int("fps", 15, "maximum redraws per second")
	color := flag.Bool("color", true, "use ANSI colours")
	flag.Parse()

	log := utils.NewLogger(os.Stderr, "spectate")

	origin, err := originFor(*feedURL)
	if err != nil {
		log.Fatal().Err(err).Str("url", *feedURL).Msg("Invalid feed URL")
	}
	ws, err := websocket.Dial(*feedURL, "", origin)
	if err != nil {
		log.Fatal().Err(err).Str("url", *feedURL).Msg("Error connecting to server")
	}
	defer ws.Close()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-interrupt
		_ = ws.Close()
	}()

	minInterval := time.Duration(0)
	if *fps > 0 {
		minInterval = time.Second / time.Duration(*fps)
	}

	var (
		lastDraw  time.Time
		lastPoint string
	)
	for {
		var data []byte
		if err := websocket.Message.Receive(ws, &data); err != nil {
			if !errors.Is(err, io.EOF) {
				log.Error().Err(err).Msg("Error reading from server")
			}
			fmt.Println("Feed closed.")
			return
		}

		msg, err := game.DecodeSpectatorMessage(data)
		if err != nil {
			log.Warn().Err(err).Msg("Skipping message")
			continue
		}

		switch m := msg.(type) {
		case game.ScoreUpdate:
			lastPoint = fmt.Sprintf("Point for %s (round %d)", m.Event.Scorer, m.Event.Round)
		case game.SpectatorFrame:
			if time.Since(lastDraw) < minInterval {
				continue
			}
			lastDraw = time.Now()
			helpers.ClearScreen()
			fmt.Print(render.RenderSnapshotASCII(m.Snapshot, m.Paused, *cols, *rows, *color))
			fmt.Printf("match %s   %s\n", m.MatchID, lastPoint)
		}
	}
}

// originFor derives the http origin the websocket handshake expects.
func originFor(feed string) (string, error) {
	u, err := url.Parse(feed)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "ws":
		u.Scheme = "http"
	case "wss":
		u.Scheme = "https"
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	u.Path = "/"
	u.RawQuery = ""
	return u.String(), nil
}
