package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"poker-lab/client"
	"poker-lab/projection"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
)

// Config defines the viewer-side environment variables.
type Config struct {
	ServerAddress string `env:"POKER_SERVER_ADDR,default=http://localhost:3001"`
	LogLevel      string `env:"LOG_LEVEL,default=info"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Viewer error: %v\n", err)
		os.Exit(1)
	}
}

// run joins the lobby as a guest and re-renders the room table on every
// push, until interrupted.
func run() error {
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stream, err := client.Connect(ctx, config.ServerAddress+"/lobby")
	if err != nil {
		return fmt.Errorf("could not join lobby at %s: %w", config.ServerAddress, err)
	}
	defer stream.Close()

	log.Info("Watching lobby", "address", config.ServerAddress)

	for {
		select {
		case <-ctx.Done():
			return nil
		case frame, ok := <-stream.Frames():
			if !ok {
				return fmt.Errorf("lobby stream closed by server")
			}
			var rooms []projection.RoomSummary
			if err := json.Unmarshal([]byte(frame), &rooms); err != nil {
				log.Warn("Skipping unreadable lobby frame", "error", err)
				continue
			}
			render(rooms)
		}
	}
}

func render(rooms []projection.RoomSummary) {
	header := color.New(color.BgBlack, color.FgGreen).Render(" ====== Active rooms ====== ")
	fmt.Println(header)

	if len(rooms) == 0 {
		fmt.Println("No active rooms.")
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Room", "Occupants"})
	for _, room := range rooms {
		table.Append([]string{room.ID, fmt.Sprintf("%d", room.Size)})
	}
	table.Render()
}
