package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/jcmexdev/quickbite/internal/codec"
	"github.com/jcmexdev/quickbite/internal/domain"
	"github.com/jcmexdev/quickbite/internal/ledger"
	"github.com/jcmexdev/quickbite/internal/pkg/config"
	"github.com/jcmexdev/quickbite/internal/report"
	"github.com/jcmexdev/quickbite/internal/room"
	"github.com/jcmexdev/quickbite/internal/share"
)

// bom marks comma-delimited file exports as UTF-8 so spreadsheet imports
// keep non-ASCII names intact.
const bom = "\ufeff"

func cmdImport(cfg *config.Config, args []string) {
	fs := pflag.NewFlagSet("import", pflag.ExitOnError)
	_ = fs.Parse(args)

	inputs := fs.Args()
	if len(inputs) == 0 {
		log.Fatal("import: pass one or more order codes or a room id")
	}

	repo := openLedger(cfg)
	defer repo.Close()

	ctx := context.Background()
	var added, skipped int
	for _, raw := range inputs {
		in := share.ClassifyInput(raw)
		switch in.Kind {
		case share.InputRoomID:
			a, s := importRoom(ctx, cfg, repo, in.Value)
			added, skipped = added+a, skipped+s
		default:
			payload, err := codec.Decode(in.Value)
			if err != nil {
				log.Fatalf("import: decode %q: %v", raw, err)
			}
			if payload.Kind != codec.KindOrder {
				log.Fatalf("import: %q is a menu token, expected an order", raw)
			}
			ok, err := repo.Append(ctx, *payload.Order, "token")
			if err != nil {
				log.Fatalf("import: store order: %v", err)
			}
			if ok {
				added++
			} else {
				skipped++
			}
		}
	}
	fmt.Printf("imported %d order(s), %d duplicate(s) skipped\n", added, skipped)
}

// importRoom pulls every order currently in a cloud room into the ledger.
// Re-importing the same room later picks up only orders not seen before.
func importRoom(ctx context.Context, cfg *config.Config, repo ledger.Repository, roomID string) (added, skipped int) {
	if cfg.Client.StoreURL == "" {
		log.Fatal("import: ROOM_STORE_URL is not configured, cannot read rooms")
	}
	client := room.NewClient(cfg.Client.StoreURL, nil)
	doc, err := client.PollRoom(ctx, roomID)
	if err != nil {
		log.Fatalf("import: fetch room %s: %v", roomID, err)
	}
	for _, o := range doc.Orders {
		ok, err := repo.Append(ctx, o, "room:"+roomID)
		if err != nil {
			log.Fatalf("import: store order from room %s: %v", roomID, err)
		}
		if ok {
			added++
		} else {
			skipped++
		}
	}
	return added, skipped
}

func cmdExport(cfg *config.Config, args []string) {
	fs := pflag.NewFlagSet("export", pflag.ExitOnError)
	tab := fs.Bool("tab", false, "tab-delimited output for spreadsheet paste")
	out := fs.StringP("output", "o", "", "write to a file instead of stdout")
	_ = fs.Parse(args)

	repo := openLedger(cfg)
	defer repo.Close()

	entries, err := repo.List(context.Background())
	if err != nil {
		log.Fatalf("export: list orders: %v", err)
	}
	orders := entryOrders(entries)

	delimiter := ","
	if *tab {
		delimiter = "\t"
	}
	text := report.Render(orders, delimiter)

	if *out == "" {
		fmt.Println(text)
		return
	}
	if delimiter == "," {
		text = bom + text
	}
	if err := os.WriteFile(*out, []byte(text+"\n"), 0o644); err != nil {
		log.Fatalf("export: write %s: %v", *out, err)
	}
	fmt.Printf("wrote %d order(s) to %s\n", len(orders), *out)
}

func cmdSummary(cfg *config.Config, args []string) {
	fs := pflag.NewFlagSet("summary", pflag.ExitOnError)
	_ = fs.Parse(args)

	repo := openLedger(cfg)
	defer repo.Close()

	entries, err := repo.List(context.Background())
	if err != nil {
		log.Fatalf("summary: list orders: %v", err)
	}
	orders := entryOrders(entries)
	printSummary(orders)
}

func printSummary(orders []domain.Order) {
	summary := report.Summarize(orders)
	if len(summary) == 0 {
		fmt.Println("no orders collected yet")
		return
	}
	for _, item := range summary {
		line := item.Name + " x" + strconv.Itoa(item.Quantity) +
			"  (" + strconv.FormatFloat(item.Total, 'f', -1, 64) + ")"
		if len(item.Details) > 0 {
			line += "  [" + strings.Join(item.Details, "; ") + "]"
		}
		fmt.Println(line)
	}

	var total float64
	for _, o := range orders {
		total += o.Total
	}
	fmt.Printf("total: %s across %d order(s)\n",
		strconv.FormatFloat(total, 'f', -1, 64), len(orders))
}

func entryOrders(entries []ledger.Entry) []domain.Order {
	orders := make([]domain.Order, len(entries))
	for i, e := range entries {
		orders[i] = e.Order
	}
	return orders
}
