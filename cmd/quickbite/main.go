// Command quickbite is the host/participant tool for shared food orders:
// it encodes menus and orders as copy-paste-safe tokens, decodes whatever
// a colleague pasted back, collects orders into a local ledger, exports
// the aggregate report, and drives the optional cloud room path.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/jcmexdev/quickbite/internal/domain"
	"github.com/jcmexdev/quickbite/internal/ledger"
	ledgersqlite "github.com/jcmexdev/quickbite/internal/ledger/sqlite"
	"github.com/jcmexdev/quickbite/internal/pkg/config"
)

const usage = `usage: quickbite <command> [flags]

Tokens
  menu      encode a menu file as a share token or link
  order     encode an order file as a submission token
  decode    decode a pasted token or share URL
  send      post an order to a menu's callback endpoint

Collecting
  import    import order codes or a room id into the local ledger
  export    render the collected orders as CSV/TSV
  summary   per-item aggregate of the collected orders

Cloud rooms
  room      create | submit | get | watch

Menu photos
  scan      extract a menu from a photo via the vision service
`

func main() {
	log.SetFlags(0)
	log.SetPrefix("quickbite: ")

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load configuration: %v", err)
	}

	args := os.Args[2:]
	switch os.Args[1] {
	case "menu":
		cmdMenu(cfg, args)
	case "order":
		cmdOrder(cfg, args)
	case "decode":
		cmdDecode(cfg, args)
	case "send":
		cmdSend(cfg, args)
	case "import":
		cmdImport(cfg, args)
	case "export":
		cmdExport(cfg, args)
	case "summary":
		cmdSummary(cfg, args)
	case "room":
		cmdRoom(cfg, args)
	case "scan":
		cmdScan(cfg, args)
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}
}

func readMenuFile(path string) []domain.MenuItem {
	var menu []domain.MenuItem
	readJSONFile(path, &menu)
	return menu
}

func readOrderFile(path string) domain.Order {
	var order domain.Order
	readJSONFile(path, &order)
	return order
}

func readJSONFile(path string, v any) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("read %s: %v", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Fatalf("parse %s: %v", path, err)
	}
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("render output: %v", err)
	}
	fmt.Println(string(out))
}

func openLedger(cfg *config.Config) ledger.Repository {
	repo, err := ledgersqlite.Open(cfg.Ledger.Path)
	if err != nil {
		log.Fatalf("open ledger: %v", err)
	}
	return repo
}
