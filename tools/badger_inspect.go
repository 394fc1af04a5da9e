package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"no-regret/domain"
	"no-regret/storage"
	"os"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/olekukonko/tablewriter"
)

// Lists the snapshots of a local store: one row per key with a short summary.
func main() {
	dbPath := flag.String("db", "./data/no-regret", "Path to badger DB")
	prefix := flag.String("prefix", "nr_", "Prefix to scan")
	flag.Parse()

	// BypassLockGuard allows reading while the application holds the lock
	db, err := badger.Open(badger.DefaultOptions(*dbPath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLogger(nil))
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	entries, err := storage.NewBadgerStore(db, slog.Default()).Scan(context.Background(), *prefix)
	if err != nil {
		log.Fatal(err)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Bytes", "Summary"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	for _, e := range entries {
		table.Append([]string{e.Key, fmt.Sprint(len(e.Value)), describe(e.Key, e.Value)})
	}
	table.Render()
}

func describe(key string, value []byte) string {
	switch key {
	case storage.MessagesKey:
		var messages []domain.ChatMessage
		if err := json.Unmarshal(value, &messages); err != nil {
			return "malformed: " + err.Error()
		}
		if len(messages) == 0 {
			return "no message"
		}
		last := messages[len(messages)-1]
		return fmt.Sprintf("%d messages, last by %s at %s", len(messages), last.DisplayName,
			last.SentTime().Format(time.TimeOnly))
	case storage.TodayKey:
		var data domain.TodayData
		if err := json.Unmarshal(value, &data); err != nil {
			return "malformed: " + err.Error()
		}
		done := 0
		for _, p := range data.Items {
			if p.Done {
				done++
			}
		}
		return fmt.Sprintf("%s: %d/%d done", data.Date, done, len(data.Items))
	case storage.ProfileKey:
		var profile domain.Profile
		if err := json.Unmarshal(value, &profile); err != nil {
			return "malformed: " + err.Error()
		}
		return strings.TrimSpace(fmt.Sprintf("%s %s", profile.AuthorID, profile.DisplayName))
	default:
		return string(value)
	}
}
