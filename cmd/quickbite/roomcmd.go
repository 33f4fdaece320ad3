package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/jcmexdev/quickbite/internal/domain"
	"github.com/jcmexdev/quickbite/internal/pkg/config"
	"github.com/jcmexdev/quickbite/internal/room"
)

const roomUsage = `usage: quickbite room <subcommand> [flags]

  create -f menu.json          create a room seeded with a menu
  submit <roomID> -f order.json  add or refresh your order
  get    <roomID>              print the room document
  watch  <roomID>              follow the room until interrupted
`

func cmdRoom(cfg *config.Config, args []string) {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, roomUsage)
		os.Exit(2)
	}
	if cfg.Client.StoreURL == "" {
		log.Fatal("room: ROOM_STORE_URL is not configured")
	}

	client := room.NewClient(cfg.Client.StoreURL, nil)
	rest := args[1:]

	switch args[0] {
	case "create":
		roomCreate(client, rest)
	case "submit":
		roomSubmit(client, rest)
	case "get":
		roomGet(client, rest)
	case "watch":
		roomWatch(cfg, client, rest)
	default:
		fmt.Fprintf(os.Stderr, "unknown room subcommand %q\n\n%s", args[0], roomUsage)
		os.Exit(2)
	}
}

func roomCreate(client *room.Client, args []string) {
	fs := pflag.NewFlagSet("room create", pflag.ExitOnError)
	file := fs.StringP("file", "f", "", "menu JSON file")
	_ = fs.Parse(args)

	if *file == "" {
		log.Fatal("room create: --file is required")
	}
	menu := readMenuFile(*file)

	id, err := client.CreateRoom(context.Background(), menu)
	if err != nil {
		log.Fatalf("room create failed, share a manual token instead: %v", err)
	}
	fmt.Println(id)
}

func roomSubmit(client *room.Client, args []string) {
	fs := pflag.NewFlagSet("room submit", pflag.ExitOnError)
	file := fs.StringP("file", "f", "", "order JSON file")
	keep := fs.Bool("keep-inactive", false, "keep zero-quantity lines")
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		log.Fatal("room submit: pass exactly one room id")
	}
	if *file == "" {
		log.Fatal("room submit: --file is required")
	}
	order := finalizeOrder(readOrderFile(*file), *keep)

	doc, err := client.SubmitOrder(context.Background(), fs.Arg(0), order)
	if err != nil {
		log.Fatalf("sync failed, notify the organizer: %v", err)
	}
	fmt.Printf("submitted; room now has %d order(s)\n", len(doc.Orders))
}

func roomGet(client *room.Client, args []string) {
	fs := pflag.NewFlagSet("room get", pflag.ExitOnError)
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		log.Fatal("room get: pass exactly one room id")
	}
	doc, err := client.PollRoom(context.Background(), fs.Arg(0))
	if err != nil {
		log.Fatalf("sync failed, notify the organizer: %v", err)
	}
	printJSON(doc)
}

func roomWatch(cfg *config.Config, client *room.Client, args []string) {
	fs := pflag.NewFlagSet("room watch", pflag.ExitOnError)
	interval := fs.Duration("interval", cfg.Client.PollInterval, "poll interval")
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		log.Fatal("room watch: pass exactly one room id")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := client.Watch(ctx, fs.Arg(0), *interval, func(r domain.Room) {
		fmt.Printf("-- %d order(s) --\n", len(r.Orders))
		printSummary(r.Orders)
	})
	if err != nil && ctx.Err() == nil {
		log.Fatalf("room watch: %v", err)
	}
}
