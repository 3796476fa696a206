package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"bittorrentparser/internal/file"
	"bittorrentparser/internal/report"
	"bittorrentparser/internal/torrent"
)

func main() {
	dir := flag.String("dir", ".", "directory containing .torrent files")
	root := flag.String("root", "", "directory holding the payload files (defaults to -dir)")
	hashName := flag.String("hash", string(file.MD5), "checksum algorithm: md5 or sha256")
	asJSON := flag.Bool("json", false, "print one JSON report per line")
	flag.Parse()

	alg, err := file.ParseAlgorithm(*hashName)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	if *root == "" {
		*root = *dir
	}

	paths, err := file.ListTorrents(*dir)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	if len(paths) == 0 {
		fmt.Println("No torrent files available...")
		return
	}

	summer := file.NewChecksummer(*root, alg)
	enc := json.NewEncoder(os.Stdout)
	failed := 0

	for _, path := range paths {
		if !*asJSON {
			fmt.Printf("🔍 Parsing %s\n", path)
		}

		t, err := torrent.Open(path)
		if err != nil {
			log.Printf("❌ %s: %v", path, err)
			failed++
			continue
		}

		r := report.Build(path, t, summer)

		if *asJSON {
			if err := enc.Encode(r); err != nil {
				log.Fatalf("❌ failed to write report: %v", err)
			}
			continue
		}

		if err := r.WriteText(os.Stdout); err != nil {
			log.Fatalf("❌ failed to write report: %v", err)
		}
		if info := t.Info(); info != nil {
			fmt.Printf("   💾 Size: %s\n", formatBytes(info.TotalLength()))
		}
		fmt.Println(strings.Repeat("-", 100))
		fmt.Println()
	}

	if failed > 0 {
		log.Printf("⚠️  %d of %d torrent files could not be decoded", failed, len(paths))
		os.Exit(1)
	}
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
