package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/jcmexdev/quickbite/internal/pkg/config"
	"github.com/jcmexdev/quickbite/internal/vision"
)

func cmdScan(cfg *config.Config, args []string) {
	fs := pflag.NewFlagSet("scan", pflag.ExitOnError)
	file := fs.StringP("file", "f", "", "menu photo (jpeg/png/webp)")
	_ = fs.Parse(args)

	if *file == "" {
		log.Fatal("scan: --file is required")
	}
	if cfg.Vision.APIKey == "" {
		log.Fatal("scan: GEMINI_API_KEY is not configured")
	}

	image, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("scan: read %s: %v", *file, err)
	}

	analyzer := vision.NewGeminiAnalyzer(cfg.Vision.APIKey, cfg.Vision.Model, nil)
	items, err := analyzer.AnalyzeMenu(context.Background(), image, imageMIME(*file))
	if err != nil {
		log.Fatalf("scan: %v", err)
	}
	if len(items) == 0 {
		log.Fatal("scan: no menu items recognized in the photo")
	}
	printJSON(vision.MenuItems(items))
}

func imageMIME(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	default:
		return "image/jpeg"
	}
}
