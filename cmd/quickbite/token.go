package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/spf13/pflag"

	"github.com/jcmexdev/quickbite/internal/codec"
	"github.com/jcmexdev/quickbite/internal/domain"
	"github.com/jcmexdev/quickbite/internal/pkg/config"
	"github.com/jcmexdev/quickbite/internal/share"
)

func cmdMenu(cfg *config.Config, args []string) {
	fs := pflag.NewFlagSet("menu", pflag.ExitOnError)
	file := fs.StringP("file", "f", "", "menu JSON file")
	callback := fs.String("callback", "", "callback URL participants post finished orders to")
	link := fs.Bool("link", false, "print a share URL instead of the bare token")
	base := fs.String("base", cfg.Client.ShareBaseURL, "base URL for --link")
	_ = fs.Parse(args)

	if *file == "" {
		log.Fatal("menu: --file is required")
	}
	menu := readMenuFile(*file)
	if len(menu) == 0 {
		log.Fatal("menu: file contains no items")
	}

	var extra map[string]any
	if *callback != "" {
		extra = map[string]any{"callback": *callback}
	}

	token, err := codec.EncodeMenu(menu, extra)
	if err != nil {
		log.Fatalf("menu: %v", err)
	}

	if *link {
		if *base == "" {
			log.Fatal("menu: --link needs --base or SHARE_BASE_URL")
		}
		url, err := share.MenuURL(*base, token)
		if err != nil {
			log.Fatalf("menu: %v", err)
		}
		fmt.Println(url)
		return
	}
	fmt.Println(token)
}

func cmdOrder(cfg *config.Config, args []string) {
	fs := pflag.NewFlagSet("order", pflag.ExitOnError)
	file := fs.StringP("file", "f", "", "order JSON file")
	keepInactive := fs.Bool("keep-inactive", false, "encode zero-quantity lines instead of dropping them")
	_ = fs.Parse(args)

	if *file == "" {
		log.Fatal("order: --file is required")
	}
	order := finalizeOrder(readOrderFile(*file), *keepInactive)

	token, err := codec.EncodeOrder(order)
	if err != nil {
		log.Fatalf("order: %v", err)
	}
	fmt.Println(token)
}

// finalizeOrder fills in what the order form fills in for the user: active
// lines only, a computed total and a submission timestamp when missing.
func finalizeOrder(order domain.Order, keepInactive bool) domain.Order {
	if !keepInactive {
		order.Items = domain.ActiveLines(order.Items)
	}
	if order.Total == 0 {
		order.Total = domain.Subtotal(order.Items)
	}
	if order.Timestamp == "" {
		order.Timestamp = time.Now().UTC().Format(time.RFC3339Nano)
	}
	return order
}

func cmdDecode(_ *config.Config, args []string) {
	fs := pflag.NewFlagSet("decode", pflag.ExitOnError)
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		log.Fatal("decode: pass exactly one token or share URL")
	}

	payload, err := codec.Decode(share.ExtractToken(fs.Arg(0)))
	if err != nil {
		log.Fatalf("could not read code: %v", err)
	}

	switch payload.Kind {
	case codec.KindMenu:
		printJSON(domain.MenuEnvelope{Menu: payload.Menu, Extra: payload.Extra})
		if cb := share.CallbackURL(payload.Extra); cb != "" {
			fmt.Printf("// callback endpoint: %s\n", cb)
		}
	case codec.KindOrder:
		printJSON(payload.Order)
	}
}

func cmdSend(cfg *config.Config, args []string) {
	fs := pflag.NewFlagSet("send", pflag.ExitOnError)
	file := fs.StringP("file", "f", "", "order JSON file")
	menuToken := fs.String("menu", "", "menu token carrying the callback endpoint")
	to := fs.String("to", "", "callback URL (overrides --menu)")
	_ = fs.Parse(args)

	if *file == "" {
		log.Fatal("send: --file is required")
	}
	target := *to
	if target == "" && *menuToken != "" {
		payload, err := codec.Decode(share.ExtractToken(*menuToken))
		if err != nil {
			log.Fatalf("could not read code: %v", err)
		}
		if payload.Kind != codec.KindMenu {
			log.Fatal("send: --menu is not a menu token")
		}
		target = share.CallbackURL(payload.Extra)
	}
	if target == "" {
		log.Fatal("send: no callback endpoint; pass --to or a --menu with one configured")
	}

	order := finalizeOrder(readOrderFile(*file), false)
	body, err := json.Marshal(order)
	if err != nil {
		log.Fatalf("send: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		log.Fatalf("send: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("send failed, notify the organizer: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Fatalf("send failed, notify the organizer: callback returned %s", resp.Status)
	}
	fmt.Println("order sent")
}
